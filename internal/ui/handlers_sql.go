package ui

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"
)

const sqlEditorMaxRows = 200
const sqlEditorCSVMaxRows = 5000

func (h *Handler) SQLPage(w http.ResponseWriter, r *http.Request) {
	sqlText := strings.TrimSpace(r.URL.Query().Get("sql"))
	if sqlText == "" {
		sqlText = defaultSQLSnippet(r.URL.Query().Get("snippet"))
	}
	h.renderSQLConsole(w, r, sqlPageData{SQL: sqlText})
}

func (h *Handler) SQLRun(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRenderBadRequest(w, r) {
		return
	}
	sqlText := strings.TrimSpace(r.Form.Get("sql"))
	result, err := h.Analyze.Execute(r.Context(), domain.QueryRequest{Query: sqlText})
	if err != nil {
		h.renderSQLConsole(w, r, sqlPageData{SQL: sqlText, RunErr: err.Error()})
		return
	}
	h.renderSQLConsole(w, r, sqlPageData{SQL: sqlText, Result: result})
}

// SQLExplain runs every EXPLAIN variant at once. A variant the server
// rejects shows its error inside its own tab; the others still render.
func (h *Handler) SQLExplain(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRenderBadRequest(w, r) {
		return
	}
	sqlText := strings.TrimSpace(r.Form.Get("sql"))

	tabs := make([]explainTab, len(domain.ExplainTypes))
	g, ctx := errgroup.WithContext(r.Context())
	for i, kind := range domain.ExplainTypes {
		tabs[i].Kind = kind
		g.Go(func() error {
			lines, err := h.Analyze.Explain(ctx, kind, sqlText)
			if err != nil {
				tabs[i].Err = err.Error()
				return nil
			}
			tabs[i].Lines = lines
			return nil
		})
	}
	_ = g.Wait()

	h.renderSQLConsole(w, r, sqlPageData{SQL: sqlText, Explains: tabs})
}

func (h *Handler) SQLDownloadCSV(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRenderBadRequest(w, r) {
		return
	}
	sqlText := strings.TrimSpace(r.Form.Get("sql"))
	result, err := h.Analyze.Execute(r.Context(), domain.QueryRequest{Query: sqlText, Limit: sqlEditorCSVMaxRows})
	if err != nil {
		h.renderSQLConsole(w, r, sqlPageData{SQL: sqlText, RunErr: err.Error()})
		return
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	header := make([]string, 0, len(result.Columns))
	for _, c := range result.Columns {
		header = append(header, c.Name)
	}
	if err := writer.Write(header); err != nil {
		renderHTML(w, http.StatusInternalServerError, errorPage("Export Failed", "Failed writing CSV header."))
		return
	}
	for _, row := range result.Data {
		record := make([]string, 0, len(result.Columns))
		for _, c := range result.Columns {
			record = append(record, row[c.Name].Display())
		}
		if err := writer.Write(record); err != nil {
			renderHTML(w, http.StatusInternalServerError, errorPage("Export Failed", "Failed writing CSV rows."))
			return
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		renderHTML(w, http.StatusInternalServerError, errorPage("Export Failed", "Failed finalizing CSV."))
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "query-results.csv"))
	if len(result.Data) >= sqlEditorCSVMaxRows {
		w.Header().Set("X-QueryDog-Results-Truncated", "true")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) renderSQLConsole(w http.ResponseWriter, r *http.Request, d sqlPageData) {
	renderHTML(w, http.StatusOK, appPage("SQL Console", "sql", h.chrome(r), sqlConsolePage(d)))
}

// defaultSQLSnippet returns a starter statement for the ?snippet= links.
func defaultSQLSnippet(snippetID string) string {
	switch snippetID {
	case "slow_queries":
		return "SELECT event_time, query_duration_ms, read_rows, query\nFROM system.query_log\nWHERE type = 'QueryFinish' AND event_time > now() - INTERVAL 1 HOUR\nORDER BY query_duration_ms DESC\nLIMIT 20;"
	case "table_sizes":
		return "SELECT database, table, sum(rows) AS rows, formatReadableSize(sum(bytes_on_disk)) AS size\nFROM system.parts\nWHERE active\nGROUP BY database, table\nORDER BY sum(bytes_on_disk) DESC\nLIMIT 20;"
	case "recent_errors":
		return "SELECT event_time, exception_code, exception, query\nFROM system.query_log\nWHERE type = 'ExceptionWhileProcessing' AND event_time > now() - INTERVAL 1 DAY\nORDER BY event_time DESC\nLIMIT 20;"
	case "merge_activity":
		return "SELECT event_time, event_type, database, table, part_name, rows\nFROM system.part_log\nWHERE event_time > now() - INTERVAL 1 HOUR\nORDER BY event_time DESC\nLIMIT 50;"
	default:
		return ""
	}
}
