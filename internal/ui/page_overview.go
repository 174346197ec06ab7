package ui

import (
	"fmt"

	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// recentQueryRows bounds the landing-page query list.
const recentQueryRows = 8

type overviewPageData struct {
	Connection     domain.ConnectionInfo
	QueriesLastHr  string
	Processes      string
	Merges         string
	Memory         string
	Uptime         string
	Recent         []domain.Row
	RecentErr      string
	RefreshSeconds int
}

func overviewPage(d overviewPageData) Node {
	return Group([]Node{
		connectionCard(d.Connection),
		overviewView(d),
	})
}

// overviewView is the polled fragment: summary tiles plus recent queries.
func overviewView(d overviewPageData) Node {
	return Div(
		ID("overview-view"),
		pollAttr(d.RefreshSeconds, "/ui/overview/fragment"),
		Div(Class("tile-grid mb-3"),
			overviewTile("Queries (1h)", d.QueriesLastHr),
			overviewTile("Active queries", d.Processes),
			overviewTile("Active merges", d.Merges),
			overviewTile("Memory tracked", d.Memory),
			overviewTile("Uptime", d.Uptime),
		),
		recentQueriesCard(d),
	)
}

func connectionCard(c domain.ConnectionInfo) Node {
	scheme := statusLabel("plain", "secondary")
	if c.Secure {
		scheme = statusLabel("tls", "success")
	}
	return Div(Class(cardClass()),
		Div(Class("d-flex flex-items-center flex-justify-between"),
			Div(
				H2(Text("Connection")),
				P(Class(mutedClass()+" mb-0"), Text(fmt.Sprintf("%s:%d as %s", c.Host, c.Port, c.User))),
			),
			scheme,
		),
	)
}

func overviewTile(label, value string) Node {
	return Div(Class("Box p-3 card"),
		P(Class(mutedClass()+" mb-0"), Text(label)),
		P(Class("tile-value mb-0"), Text(value)),
	)
}

// recentQueriesCard lists the latest finished queries with a fixed column
// set; the full grid lives on the query-log page.
func recentQueriesCard(d overviewPageData) Node {
	cols := []string{"event_time", "type", "query", "query_duration_ms", "user"}

	var rows []Node
	for _, row := range d.Recent {
		var cells []Node
		for _, name := range cols {
			v := row[name]
			if name == "query" {
				cells = append(cells, Td(Class("cell-query"), Title(v.Display()), Text(dashIfEmpty(v.Display()))))
				continue
			}
			cells = append(cells, Td(Text(formatCell(domain.ColumnMeta{Name: name}, v))))
		}
		rows = append(rows, Tr(Group(cells)))
	}
	if len(rows) == 0 && d.RecentErr == "" {
		rows = append(rows, Tr(Td(ColSpan("5"), P(Class(mutedClass()+" mb-0"), Text("No queries in the last hour.")))))
	}

	var headers []Node
	for _, name := range cols {
		headers = append(headers, Th(Text(name)))
	}

	return Div(Class(cardClass()),
		Div(Class("d-flex flex-items-center flex-justify-between mb-2"),
			H2(Class("mb-0"), Text("Recent queries")),
			A(Href("/ui/query-log"), Class(secondaryButtonClass()+" btn-sm"), Text("Open query log")),
		),
		errorBanner(d.RecentErr),
		Div(Class("table-wrap"),
			Table(THead(Tr(Group(headers))), TBody(Group(rows))),
		),
	)
}
