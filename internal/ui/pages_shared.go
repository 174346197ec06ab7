package ui

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"
	"github.com/benjaminwootton/QueryDog-sub000/internal/format"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

type navItem struct {
	Label string
	Href  string
	Key   string
	Icon  string
}

var navItems = []navItem{
	{Label: "Overview", Href: "/ui", Key: "home", Icon: "gauge"},
	{Label: "Query Log", Href: "/ui/query-log", Key: "query-log", Icon: "scroll-text"},
	{Label: "Part Log", Href: "/ui/part-log", Key: "part-log", Icon: "layers"},
	{Label: "Tables", Href: "/ui/tables", Key: "tables", Icon: "table-2"},
	{Label: "System", Href: "/ui/system", Key: "system", Icon: "activity"},
	{Label: "Browser", Href: "/ui/browser", Key: "browser", Icon: "folder-tree"},
	{Label: "SQL Console", Href: "/ui/sql", Key: "sql", Icon: "square-terminal"},
}

// pageChrome is the shell state shared by every page: the current path (for
// post-redirect round trips), the monitored host shown in the topbar, and
// whether the onboarding modal is still due.
type pageChrome struct {
	Path       string
	Host       string
	Onboarding bool
}

func appPage(title, active string, c pageChrome, body ...Node) Node {
	nav := make([]Node, 0, len(navItems))
	for _, item := range navItems {
		className := "app-nav-link d-flex flex-items-center"
		if item.Key == active {
			className += " active"
		}
		nav = append(nav, A(
			Href(item.Href),
			Class(className),
			I(Class("nav-icon"), Attr("data-lucide", item.Icon), Attr("aria-hidden", "true")),
			Span(Text(item.Label)),
		))
	}

	onboarding := Node(nil)
	if c.Onboarding {
		onboarding = onboardingModal(c.Path)
	}

	return HTML(
		Lang("en"),
		Attr("data-color-mode", "auto"),
		Attr("data-light-theme", "light"),
		Attr("data-dark-theme", "dark"),
		Head(
			Meta(Charset("utf-8")),
			Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
			TitleEl(Text(title+" | Query Dog")),
			Link(Rel("icon"), Href("data:,")),
			Link(Rel("preconnect"), Href("https://fonts.googleapis.com")),
			Link(Rel("preconnect"), Href("https://fonts.gstatic.com"), Attr("crossorigin", "")),
			Link(Rel("stylesheet"), Href("https://fonts.googleapis.com/css2?family=Inter:wght@400;500;600;700&display=swap")),
			Link(Rel("stylesheet"), Href(uiStylesheetHref())),
			Script(Raw(themeInitScript)),
			Script(Src("https://unpkg.com/lucide@latest/dist/umd/lucide.min.js")),
			Script(
				Type("module"),
				Src("https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.7/bundles/datastar.js"),
			),
		),
		Body(
			Main(Class("app-shell"),
				Aside(
					ID("app-sidebar"),
					Class("app-sidebar"),
					Div(
						Class("brand"),
						Strong(Text("Query Dog")),
						P(Class(mutedClass()+" mb-0"), Text("ClickHouse observability")),
						Button(
							ID("sidebar-toggle"),
							Type("button"),
							Class("btn btn-sm btn-icon sidebar-toggle"),
							Title("Collapse sidebar"),
							Attr("aria-label", "Collapse sidebar"),
							I(Class("btn-icon-glyph"), Attr("data-lucide", "panel-left"), Attr("aria-hidden", "true")),
						),
					),
					Nav(Class("app-nav"), Group(nav)),
				),
				Div(ID("app-overlay"), Class("app-overlay"), Attr("aria-hidden", "true")),
				Section(
					Class("app-main"),
					Div(
						Class("topbar"),
						Div(
							Class("d-flex flex-items-center gap-2"),
							Button(
								ID("nav-toggle"),
								Type("button"),
								Class("btn btn-sm btn-icon nav-toggle"),
								Attr("aria-label", "Toggle navigation"),
								Attr("aria-expanded", "false"),
								I(Class("btn-icon-glyph"), Attr("data-lucide", "menu"), Attr("aria-hidden", "true")),
							),
							H1(Class("page-title"), Text(title)),
						),
						Div(
							Class("d-flex flex-items-center gap-2"),
							P(Class(mutedClass()+" mb-0"), Text("Monitoring "+c.Host)),
							Form(
								Method("post"),
								Action("/ui/refresh"),
								Input(Type("hidden"), Name("back"), Value(c.Path)),
								Button(Type("submit"), Class("btn btn-sm btn-icon"), Attr("aria-label", "Refresh data"), Title("Refetch everything now"),
									I(Class("btn-icon-glyph"), Attr("data-lucide", "refresh-cw"), Attr("aria-hidden", "true")),
								),
							),
							Form(
								Method("post"),
								Action("/ui/reset"),
								Input(Type("hidden"), Name("back"), Value(c.Path)),
								Button(Type("submit"), Class("btn btn-sm"), Title("Restore default filters and time range"), Text("Reset filters")),
							),
							Button(
								ID("theme-toggle"),
								Type("button"),
								Class("btn btn-sm btn-icon"),
								Attr("aria-label", "Switch theme"),
								I(ID("theme-icon-sun"), Class("btn-icon-glyph"), Attr("data-lucide", "sun"), Attr("aria-hidden", "true")),
								I(ID("theme-icon-moon"), Class("btn-icon-glyph is-hidden"), Attr("data-lucide", "moon"), Attr("aria-hidden", "true")),
							),
						),
					),
					Div(Class("content"), Group(body)),
				),
				onboarding,
			),
			Script(Raw(lucideInitScript)),
			Script(Raw(themeBehaviorScript)),
			Script(Raw(shellBehaviorScript)),
		),
	)
}

func errorPage(title, message string) Node {
	return HTML(
		Lang("en"),
		Attr("data-color-mode", "auto"),
		Attr("data-light-theme", "light"),
		Attr("data-dark-theme", "dark"),
		Head(
			Meta(Charset("utf-8")),
			Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
			TitleEl(Text(title+" | Query Dog")),
			Link(Rel("icon"), Href("data:,")),
			Link(Rel("stylesheet"), Href(uiStylesheetHref())),
			Script(Raw(themeInitScript)),
		),
		Body(
			Main(
				Class("layout"),
				H1(Class("page-title"), Text(title)),
				P(Text(message)),
				P(A(Href("/ui"), Text("Back to overview"))),
			),
		),
	)
}

// onboardingModal is rendered over any page until the visited cookie is set.
func onboardingModal(backPath string) Node {
	return Div(
		Class("modal-overlay"),
		Div(
			Class("modal card"),
			H2(Text("Welcome to Query Dog")),
			P(Class(mutedClass()), Text("A dashboard over the ClickHouse system tables.")),
			Ul(
				Li(Text("Query Log and Part Log chart and filter server activity over a shared time window.")),
				Li(Text("Tables and Browser show how data lands in parts and partitions on disk.")),
				Li(Text("System covers live processes, merges, mutations, metrics and settings.")),
				Li(Text("The SQL Console runs guarded queries and explains them six different ways.")),
			),
			Form(
				Method("post"),
				Action("/ui/onboarding/dismiss"),
				Input(Type("hidden"), Name("back"), Value(backPath)),
				Button(Type("submit"), Class(primaryButtonClass()), Text("Get started")),
			),
		),
	)
}

func cardClass(extra ...string) string {
	parts := []string{"Box", "p-3", "mb-3", "card"}
	parts = append(parts, extra...)
	return strings.Join(parts, " ")
}

func mutedClass() string {
	return "color-fg-muted text-small"
}

func primaryButtonClass() string {
	return "btn btn-primary"
}

func secondaryButtonClass() string {
	return "btn"
}

func statusLabel(text, tone string) Node {
	className := "Label"
	if tone != "" {
		className += " Label--" + tone
	}
	return Span(Class(className), Text(text))
}

// errorBanner renders a table's recorded fetch failure; nothing when healthy.
func errorBanner(msg string) Node {
	if msg == "" {
		return nil
	}
	return Div(Class("flash flash-error"), Text(msg))
}

// pollAttr re-fetches a fragment on a fixed cadence. Responses are plain
// HTML; datastar morphs them into the elements with matching IDs.
func pollAttr(seconds int, href string) Node {
	if seconds <= 0 {
		return nil
	}
	return Attr(fmt.Sprintf("data-on-interval__duration.%ds", seconds), fmt.Sprintf("@get('%s')", href))
}

// containsExpr is the client-side match expression for a quick filter bound
// to signal: empty filter shows everything, otherwise case-insensitive
// substring match against value.
func containsExpr(signal, value string) string {
	lower := strings.ToLower(value)
	return "$" + signal + " === '' || " + strconv.Quote(lower) + ".includes($" + signal + ".toLowerCase())"
}

// sortHeader renders a column header that toggles the grid's sort: clicking
// the active column flips direction, another column starts descending.
func sortHeader(base, field, label string, sort domain.SortSpec, width int) Node {
	marker := ""
	if sort.Field == field {
		if sort.Order == domain.SortAsc {
			marker = " ↑"
		} else {
			marker = " ↓"
		}
	}
	style := Node(nil)
	if width > 0 {
		style = StyleAttr(fmt.Sprintf("min-width:%dpx", width))
	}
	return Th(style, A(Href(base+"/sort?field="+url.QueryEscape(field)), Text(label+marker)))
}

// paginationFooter renders the grid footer: the visible row window plus
// previous/next page links.
func paginationFooter(base string, page domain.Pagination, total int) Node {
	lo, hi := 0, 0
	if total > 0 {
		lo = page.Offset() + 1
		hi = min(page.Offset()+page.PageSize, total)
		if hi < lo {
			lo, hi = 0, 0
		}
	}

	prev := Node(Span(Class("btn btn-sm disabled"), Text("Previous")))
	if page.Page > 0 {
		prev = A(Href(fmt.Sprintf("%s/page?page=%d", base, page.Page-1)), Class("btn btn-sm"), Text("Previous"))
	}
	next := Node(Span(Class("btn btn-sm disabled"), Text("Next")))
	if hi < total {
		next = A(Href(fmt.Sprintf("%s/page?page=%d", base, page.Page+1)), Class("btn btn-sm"), Text("Next"))
	}

	return Div(
		Class("grid-footer d-flex flex-items-center flex-justify-between"),
		P(Class(mutedClass()+" mb-0"), Text(fmt.Sprintf("rows %d-%d of %s", lo, hi, format.Count(uint64(total))))),
		Div(Class("d-flex gap-2"), prev, next),
	)
}

// formatCell renders one grid cell. The value carries its own kind; the
// column name picks the human formatting for numeric fields.
func formatCell(meta domain.ColumnMeta, v domain.Value) string {
	switch v.Kind {
	case domain.KindNull:
		return "-"
	case domain.KindTime:
		return format.Time(v.Time)
	case domain.KindNumber:
		name := meta.Name
		switch {
		case strings.Contains(name, "memory") || strings.Contains(name, "bytes"):
			if v.Num < 0 {
				return v.Display()
			}
			return format.Bytes(uint64(v.Num))
		case strings.HasSuffix(name, "_ms"):
			return format.DurationMs(v.Num)
		case strings.HasSuffix(name, "rows"):
			if v.Num < 0 {
				return v.Display()
			}
			return format.Count(uint64(v.Num))
		}
		return v.Display()
	default:
		return v.Display()
	}
}

func dashIfEmpty(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
