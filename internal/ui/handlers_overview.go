package ui

import (
	"context"
	"net/http"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"
	"github.com/benjaminwootton/QueryDog-sub000/internal/format"
)

func (h *Handler) Overview(w http.ResponseWriter, r *http.Request) {
	d := h.overviewData(r.Context())
	renderHTML(w, http.StatusOK, appPage("Overview", "home", h.chrome(r), overviewPage(d)))
}

func (h *Handler) OverviewFragment(w http.ResponseWriter, r *http.Request) {
	renderHTML(w, http.StatusOK, overviewView(h.overviewData(r.Context())))
}

// overviewData collects the landing-page numbers. Every tile degrades to a
// dash on its own; a down server still renders the page.
func (h *Handler) overviewData(ctx context.Context) overviewPageData {
	d := overviewPageData{
		Connection:     h.System.Connection(),
		QueriesLastHr:  "-",
		Processes:      "-",
		Merges:         "-",
		Memory:         "-",
		Uptime:         "-",
		RefreshSeconds: h.RefreshSeconds,
	}

	recentQuery := domain.TableQuery{
		TimeRange: domain.LastHours(1),
		Filters:   domain.DefaultFieldFilters(domain.TableQueryLog),
		Sort:      domain.DefaultSort(domain.TableQueryLog),
		Limit:     recentQueryRows,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := h.QueryLog.Count(ctx, recentQuery)
		if err == nil {
			d.QueriesLastHr = format.Count(n)
		}
		return nil
	})
	g.Go(func() error {
		procs, err := h.System.Processes(ctx)
		if err == nil {
			d.Processes = strconv.Itoa(len(procs))
		}
		return nil
	})
	g.Go(func() error {
		merges, err := h.System.Merges(ctx)
		if err == nil {
			d.Merges = strconv.Itoa(len(merges))
		}
		return nil
	})
	g.Go(func() error {
		metrics, err := h.System.Metrics(ctx, "MemoryTracking")
		if err != nil {
			return nil
		}
		for _, m := range metrics {
			if m.Name == "MemoryTracking" && m.Value >= 0 {
				d.Memory = format.Bytes(uint64(m.Value))
			}
		}
		return nil
	})
	g.Go(func() error {
		metrics, err := h.System.AsyncMetrics(ctx, "Uptime")
		if err != nil {
			return nil
		}
		for _, m := range metrics {
			if m.Name == "Uptime" {
				d.Uptime = format.Seconds(m.Value)
			}
		}
		return nil
	})
	g.Go(func() error {
		rows, err := h.QueryLog.List(ctx, recentQuery)
		if err != nil {
			d.RecentErr = err.Error()
			return nil
		}
		d.Recent = rows
		return nil
	})
	_ = g.Wait()
	return d
}
