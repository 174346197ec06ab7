package ui

import (
	"net/url"

	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"

	. "maragu.dev/gomponents"
	data "maragu.dev/gomponents-datastar"
	. "maragu.dev/gomponents/html"
)

// browserFilterLimit is the column size at which a quick filter input
// appears above the node list.
const browserFilterLimit = 8

// browserNode is one selectable row in a drill-down column.
type browserNode struct {
	Name     string
	Sub      string
	Selected bool
}

// browserColumn is one level of the drill-down, left to right.
type browserColumn struct {
	Title string
	Level string
	Nodes []browserNode
	Err   string
}

// browserDetail is the card describing the deepest selected node.
type browserDetail struct {
	Title  string
	Fields [][2]string
}

type browserPageData struct {
	Sel     domain.BrowserSelection
	Columns []browserColumn
	Detail  *browserDetail
}

func browserPage(d browserPageData) Node {
	var cols []Node
	for _, c := range d.Columns {
		cols = append(cols, browserColumnView(c))
	}

	var detail Node
	if d.Detail != nil {
		var fields []Node
		for _, f := range d.Detail.Fields {
			fields = append(fields, Dt(Text(f[0])), Dd(Text(f[1])))
		}
		detail = Div(Class(cardClass("browser-detail")),
			H2(Text(d.Detail.Title)),
			Dl(Group(fields)),
		)
	}

	return Group([]Node{
		Div(Class("browser-cols"), Group(cols)),
		detail,
	})
}

func browserColumnView(c browserColumn) Node {
	signal := "q_" + c.Level
	filtered := len(c.Nodes) >= browserFilterLimit

	var nodes []Node
	if c.Err != "" {
		nodes = append(nodes, P(Class(mutedClass()), Text("Unavailable: "+c.Err)))
	}
	if filtered {
		nodes = append(nodes, Input(Type("search"), Class("browser-filter"),
			Placeholder("Filter"), data.Bind(signal), AutoComplete("off")))
	}
	for _, n := range c.Nodes {
		cls := "node"
		if n.Selected {
			cls += " selected"
		}
		href := "/ui/browser/select?" + url.Values{"level": {c.Level}, "name": {n.Name}}.Encode()
		var sub Node
		if n.Sub != "" {
			sub = Span(Class("node-sub"), Text(n.Sub))
		}
		var show Node
		if filtered {
			show = data.Show(containsExpr(signal, n.Name+" "+n.Sub))
		}
		nodes = append(nodes, A(Class(cls), Href(href), show,
			Span(Class("node-name"), Text(dashIfEmpty(n.Name))),
			sub,
		))
	}
	if len(c.Nodes) == 0 && c.Err == "" {
		nodes = append(nodes, P(Class(mutedClass()+" mb-0"), Text("Empty.")))
	}

	var signals Node
	if filtered {
		signals = data.Signals(map[string]any{signal: ""})
	}
	return Div(Class("browser-col Box card"),
		signals,
		H3(Class("text-small"), Text(c.Title)),
		Group(nodes),
	)
}
