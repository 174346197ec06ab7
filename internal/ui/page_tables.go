package ui

import (
	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

type tablesPageData struct {
	Tab            string
	Database       string
	TableName      string
	Sort           domain.SortSpec
	Page           domain.Pagination
	Total          int
	Parts          []domain.PartInfo
	Partitions     []domain.PartitionInfo
	Err            string
	RefreshSeconds int
}

func tablesPage(d tablesPageData) Node {
	return Group([]Node{
		tablesTabs(d.Tab),
		tablesFilterCard(d),
		tablesView(d),
	})
}

func tablesTabs(active string) Node {
	tab := func(id, label string) Node {
		cls := "tab"
		if id == active {
			cls += " active"
		}
		return A(Href("/ui/tables?tab="+id), Class(cls), Text(label))
	}
	return Div(Class("tabs"),
		tab("parts", "Parts"),
		tab("partitions", "Partitions"),
	)
}

// tablesFilterCard narrows the active tab to one database or table.
func tablesFilterCard(d tablesPageData) Node {
	return Div(Class(cardClass()),
		Div(Class("toolbar d-flex flex-items-center flex-wrap gap-2"),
			Form(Method("post"), Action("/ui/tables/filter"), Class("d-flex flex-items-center gap-2"),
				Label(Text("Database")),
				Input(Type("text"), Name("database"), Value(d.Database), Placeholder("any")),
				Label(Text("Table")),
				Input(Type("text"), Name("table"), Value(d.TableName), Placeholder("any")),
				Button(Type("submit"), Class(secondaryButtonClass()+" btn-sm"), Text("Apply")),
			),
			Form(Method("post"), Action("/ui/tables/"+d.Tab+"/filters/clear"),
				Button(Type("submit"), Class(secondaryButtonClass()+" btn-sm"), Text("Clear filters")),
			),
		),
	)
}

// tablesView is the polled fragment holding the active tab's grid.
func tablesView(d tablesPageData) Node {
	var grid Node
	if d.Tab == "partitions" {
		grid = partitionsGridView("/ui/tables/partitions", d.Partitions, d.Sort, d.Page, d.Total)
	} else {
		grid = partsGridView("/ui/tables/parts", d.Parts, d.Sort, d.Page, d.Total)
	}
	return Div(
		ID("tables-view"),
		pollAttr(d.RefreshSeconds, "/ui/tables/fragment"),
		errorBanner(d.Err),
		Div(Class(cardClass()), grid),
	)
}
