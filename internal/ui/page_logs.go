package ui

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"

	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"
	"github.com/benjaminwootton/QueryDog-sub000/internal/format"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// histogramPanel is one filter rail panel: the top values of a column with
// the currently selected ones marked.
type histogramPanel struct {
	Field   string
	Buckets []domain.HistogramBucket
	Active  []string
	Err     string
}

// logPageData is everything the query-log and part-log pages render from.
// Handlers fill it from the store snapshot after ensuring the load.
type logPageData struct {
	Title          string
	Base           string
	Table          domain.LogicalTable
	TimeRange      domain.TimeRange
	Search         string
	SearchHint     string
	Chart          domain.ChartConfig
	ChartInput     chartInput
	RangeFilters   domain.RangeFilters
	RangeFields    []string
	Histograms     []histogramPanel
	Columns        []domain.ColumnConfig
	Rows           []domain.Row
	Sort           domain.SortSpec
	Page           domain.Pagination
	Total          int
	Err            string
	Detail         domain.Row
	RefreshSeconds int
}

func logViewID(t domain.LogicalTable) string {
	if t == domain.TablePartLog {
		return "part-log-view"
	}
	return "query-log-view"
}

// logPageBody assembles the full page: toolbar, filter rail, and the polled
// data view. The toolbar and rail stay outside the fragment so polling never
// clobbers a half-typed form.
func logPageBody(d logPageData) Node {
	var detail Node
	if d.Detail != nil {
		detail = rowDetailModal(d.Base, d.Columns, d.Detail)
	}
	return Group([]Node{
		logToolbar(d),
		Div(Class("log-layout"),
			filterRail(d),
			Div(Class("log-main"), logView(d)),
		),
		detail,
	})
}

// logView is the polled fragment: error banner, chart, and grid.
func logView(d logPageData) Node {
	return Div(
		ID(logViewID(d.Table)),
		pollAttr(d.RefreshSeconds, d.Base+"/fragment"),
		errorBanner(d.Err),
		chartCard(d.ChartInput),
		Div(Class(cardClass()), logGridView(d.Base, d.Columns, d.Rows, d.Sort, d.Page, d.Total)),
	)
}

func logToolbar(d logPageData) Node {
	presets := []Node{
		A(Href(d.Base+"/shift?dir=back"), Class("btn btn-sm"), Title("Step back one window"), Text("←")),
	}
	for _, p := range timePresets {
		presets = append(presets, A(Href(d.Base+"/range?last="+p), Class("btn btn-sm"), Text(p)))
	}
	presets = append(presets,
		A(Href(d.Base+"/shift?dir=fwd"), Class("btn btn-sm"), Title("Step forward one window"), Text("→")))

	return Div(Class(cardClass()),
		Div(Class("toolbar d-flex flex-items-center flex-wrap gap-2"),
			Div(Class("d-flex gap-2"), Group(presets)),
			Form(Method("post"), Action(d.Base+"/range"), Class("d-flex flex-items-center gap-2"),
				Label(Text("From")),
				Input(Type("text"), Name("start"), Value(domain.FormatTime(d.TimeRange.Start)), Placeholder(domain.TimeLayout)),
				Label(Text("To")),
				Input(Type("text"), Name("end"), Value(domain.FormatTime(d.TimeRange.End)), Placeholder(domain.TimeLayout)),
				Button(Type("submit"), Class(secondaryButtonClass()+" btn-sm"), Text("Apply")),
			),
			Form(Method("post"), Action(d.Base+"/search"), Class("d-flex flex-items-center gap-2 flex-1"),
				Input(Type("search"), Name("search"), Value(d.Search), Placeholder(d.SearchHint), Class("flex-1")),
				Button(Type("submit"), Class(secondaryButtonClass()+" btn-sm"), Text("Search")),
			),
		),
		Div(Class("toolbar d-flex flex-items-center flex-wrap gap-2 mt-2"),
			chartConfigForm(d.Base, d.Chart),
			P(Class(mutedClass()+" mb-0"),
				Text(fmt.Sprintf("%s to %s, %s buckets",
					domain.FormatTime(d.TimeRange.Start), domain.FormatTime(d.TimeRange.End), d.ChartInput.Bucket)),
			),
		),
	)
}

func chartConfigForm(base string, cfg domain.ChartConfig) Node {
	metricSelect := Select(Name("metric"),
		optionSelected("count", string(cfg.Metric), "count"),
		optionSelected("duration", string(cfg.Metric), "duration"),
		optionSelected("memory", string(cfg.Metric), "memory"),
		optionSelected("read_rows", string(cfg.Metric), "read rows"),
	)
	typeSelect := Select(Name("type"),
		optionSelected("bar", string(cfg.Type), "bar"),
		optionSelected("stacked-bar", string(cfg.Type), "stacked bar"),
		optionSelected("line", string(cfg.Type), "line"),
		optionSelected("stacked-line", string(cfg.Type), "stacked line"),
		optionSelected("scatter", string(cfg.Type), "scatter"),
	)
	aggSelect := Select(Name("aggregation"),
		optionSelected("avg", string(cfg.Aggregation), "avg"),
		optionSelected("sum", string(cfg.Aggregation), "sum"),
		optionSelected("min", string(cfg.Aggregation), "min"),
		optionSelected("max", string(cfg.Aggregation), "max"),
	)
	return Form(Method("post"), Action("/ui/chart"), Class("d-flex flex-items-center gap-2"),
		Input(Type("hidden"), Name("back"), Value(base)),
		Label(Text("Chart")), metricSelect, typeSelect, aggSelect,
		Button(Type("submit"), Class(secondaryButtonClass()+" btn-sm"), Text("Update")),
	)
}

func optionSelected(value, selected, label string) Node {
	if value == selected {
		return Option(Value(value), Selected(), Text(label))
	}
	return Option(Value(value), Text(label))
}

// filterRail holds the histogram panels, range filter forms, column
// visibility dropdown, and the per-view clear button.
func filterRail(d logPageData) Node {
	var panels []Node
	for _, p := range d.Histograms {
		panels = append(panels, histogramPanelView(d.Base, p))
	}
	var ranges []Node
	for _, field := range d.RangeFields {
		ranges = append(ranges, rangeFilterForm(d.Base, field, d.RangeFilters[field]))
	}

	return Div(Class("filter-rail"),
		Div(Class("d-flex flex-items-center flex-justify-between mb-3"),
			columnDropdown(d.Base, d.Columns),
			Form(Method("post"), Action(d.Base+"/filters/clear"),
				Button(Type("submit"), Class(secondaryButtonClass()+" btn-sm"), Text("Clear filters")),
			),
		),
		Group(panels),
		Group(ranges),
	)
}

// histogramPanelView renders one clickable value panel. Clicking a row
// toggles that value in the field filter; selected values stay listed even
// when they fall out of the top counts.
func histogramPanelView(base string, p histogramPanel) Node {
	if p.Err != "" {
		return Div(Class(cardClass()),
			H3(Class("text-small"), Text(p.Field)),
			P(Class(mutedClass()+" mb-0"), Text("Unavailable: "+p.Err)),
		)
	}

	maxCount := uint64(1)
	for _, b := range p.Buckets {
		maxCount = max(maxCount, b.Count)
	}

	rowFor := func(name string, count uint64, counted bool) Node {
		cls := "hist-row"
		if slices.Contains(p.Active, name) {
			cls += " active"
		}
		countText := "-"
		width := 0
		if counted {
			countText = format.Count(count)
			width = int(count * 100 / maxCount)
		}
		href := base + "/filter?" + url.Values{"field": {p.Field}, "value": {name}}.Encode()
		return A(Class(cls), Href(href),
			Div(Class("hist-bar"), StyleAttr("width:"+strconv.Itoa(width)+"%")),
			Span(Class("hist-name"), Text(dashIfEmpty(name))),
			Span(Class("hist-count"), Text(countText)),
		)
	}

	var rows []Node
	seen := make(map[string]bool, len(p.Buckets))
	for _, b := range p.Buckets {
		seen[b.Name] = true
		rows = append(rows, rowFor(b.Name, b.Count, true))
	}
	for _, name := range p.Active {
		if !seen[name] {
			rows = append(rows, rowFor(name, 0, false))
		}
	}
	if len(rows) == 0 {
		rows = append(rows, P(Class(mutedClass()+" mb-0"), Text("No values in this window.")))
	}

	return Div(Class(cardClass()),
		H3(Class("text-small"), Text(p.Field)),
		Group(rows),
	)
}

func rangeFilterForm(base, field string, b domain.Bounds) Node {
	formatBound := func(v *float64) string {
		if v == nil {
			return ""
		}
		return strconv.FormatFloat(*v, 'f', -1, 64)
	}
	return Div(Class(cardClass()),
		H3(Class("text-small"), Text(field)),
		Form(Method("post"), Action(base+"/range-filter"), Class("d-flex flex-items-center gap-2"),
			Input(Type("hidden"), Name("field"), Value(field)),
			Input(Type("text"), Name("min"), Value(formatBound(b.Min)), Placeholder("min")),
			Input(Type("text"), Name("max"), Value(formatBound(b.Max)), Placeholder("max")),
			Button(Type("submit"), Class(secondaryButtonClass()+" btn-sm"), Text("Apply")),
		),
	)
}

func columnDropdown(base string, cols []domain.ColumnConfig) Node {
	var rows []Node
	for _, c := range cols {
		var checked Node
		if c.Visible {
			checked = Checked()
		}
		rows = append(rows, Label(Class("dropdown-check"),
			Input(Type("checkbox"), Name("col"), Value(c.Name), checked),
			Text(c.Name),
		))
	}
	return Details(Class("dropdown"),
		Summary(Class(secondaryButtonClass()+" btn-sm"), Text("Columns")),
		Div(Class("dropdown-menu"),
			Form(Method("post"), Action(base+"/columns"),
				Group(rows),
				Button(Type("submit"), Class(primaryButtonClass()+" btn-sm mt-2"), Text("Apply")),
			),
		),
	)
}
