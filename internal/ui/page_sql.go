package ui

import (
	"fmt"
	"strings"

	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"
	"github.com/benjaminwootton/QueryDog-sub000/internal/format"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// explainTab is one EXPLAIN variant's output, or its isolated failure.
type explainTab struct {
	Kind  domain.ExplainType
	Lines []string
	Err   string
}

type sqlPageData struct {
	SQL      string
	RunErr   string
	Result   *domain.QueryResult
	Explains []explainTab
}

var explainLabels = map[domain.ExplainType]string{
	domain.ExplainPlan:     "Plan",
	domain.ExplainIndexes:  "Indexes",
	domain.ExplainPipeline: "Pipeline",
	domain.ExplainAST:      "AST",
	domain.ExplainSyntax:   "Syntax",
	domain.ExplainEstimate: "Estimate",
}

func sqlConsolePage(d sqlPageData) Node {
	return Group([]Node{
		sqlEditorCard(d),
		errorBanner(d.RunErr),
		sqlResultCard(d.Result),
		sqlExplainTabs(d.Explains),
	})
}

func sqlEditorCard(d sqlPageData) Node {
	return Div(Class(cardClass()),
		Form(Method("post"), Action("/ui/sql/run"),
			Label(Text("SQL")),
			Textarea(Name("sql"), Rows("10"), Required(), Text(d.SQL)),
			Div(Class("button-row"),
				Button(Type("submit"), Class(primaryButtonClass()), Text("Run query")),
				Button(Type("submit"), Class(secondaryButtonClass()), FormAction("/ui/sql/explain"), Text("Explain")),
				Button(Type("submit"), Class(secondaryButtonClass()), FormAction("/ui/sql/download.csv"), Text("Download CSV")),
			),
		),
		P(Class(mutedClass()+" mb-0"), Text("Read-only console. DDL and mutation statements are rejected.")),
		sqlSnippetLinks(),
	)
}

func sqlSnippetLinks() Node {
	snippets := []struct {
		ID    string
		Label string
	}{
		{ID: "slow_queries", Label: "Slow queries"},
		{ID: "table_sizes", Label: "Table sizes"},
		{ID: "recent_errors", Label: "Recent errors"},
		{ID: "merge_activity", Label: "Merge activity"},
	}
	var links []Node
	for _, s := range snippets {
		links = append(links, A(Href("/ui/sql?snippet="+s.ID), Class("btn btn-sm"), Text(s.Label)))
	}
	return Div(Class("snippet-list d-flex gap-2 mt-2"), Group(links))
}

func sqlResultCard(result *domain.QueryResult) Node {
	if result == nil {
		return nil
	}

	meta := fmt.Sprintf("%d rows in %s", result.RowCount, format.DurationMs(result.Duration))
	rows := result.Data
	truncated := len(rows) > sqlEditorMaxRows
	if truncated {
		rows = rows[:sqlEditorMaxRows]
		meta += fmt.Sprintf(", showing first %d", sqlEditorMaxRows)
	}

	var headers []Node
	for _, c := range result.Columns {
		headers = append(headers, Th(Title(c.Type), Text(c.Name)))
	}
	var body []Node
	for _, row := range rows {
		var cells []Node
		for _, c := range result.Columns {
			cells = append(cells, Td(Text(row[c.Name].Display())))
		}
		body = append(body, Tr(Group(cells)))
	}

	return Div(Class(cardClass()),
		Div(Class("d-flex flex-items-center flex-justify-between mb-2"),
			H2(Class("mb-0"), Text("Results")),
			P(Class(mutedClass()+" mb-0"), Text(meta)),
		),
		Div(Class("table-wrap"),
			Table(THead(Tr(Group(headers))), TBody(Group(body))),
		),
	)
}

func sqlExplainTabs(tabs []explainTab) Node {
	if len(tabs) == 0 {
		return nil
	}
	var nodes []Node
	for i, tab := range tabs {
		var open Node
		if i == 0 {
			open = Attr("open")
		}
		var content Node
		if tab.Err != "" {
			content = P(Class(mutedClass()+" mb-0"), Text("Failed: "+tab.Err))
		} else {
			content = Pre(Class("snippet"), Code(Text(strings.Join(tab.Lines, "\n"))))
		}
		nodes = append(nodes, Details(Class("explain-tab"), open,
			Summary(Text(explainLabels[tab.Kind])),
			Div(Class("explain-body"), content),
		))
	}
	return Div(Class(cardClass()),
		H2(Text("Explain")),
		Group(nodes),
	)
}
