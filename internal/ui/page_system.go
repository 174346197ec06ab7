package ui

import (
	"net/url"
	"strconv"

	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"
	"github.com/benjaminwootton/QueryDog-sub000/internal/format"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

type systemPageData struct {
	Panel          string
	Query          string
	Err            string
	RefreshSeconds int
	Processes      []domain.ProcessEntry
	Merges         []domain.MergeEntry
	Mutations      []domain.MutationEntry
	Metrics        []domain.MetricEntry
	Users          []domain.UserEntry
	Settings       []domain.SettingEntry
}

func (d systemPageData) fragmentURL() string {
	q := url.Values{"panel": {d.Panel}}
	if d.Query != "" {
		q.Set("q", d.Query)
	}
	return "/ui/system/fragment?" + q.Encode()
}

func systemPage(d systemPageData) Node {
	var tabs []Node
	for _, p := range systemPanels {
		cls := "tab"
		if p.ID == d.Panel {
			cls += " active"
		}
		tabs = append(tabs, A(Href("/ui/system?panel="+p.ID), Class(cls), Text(p.Label)))
	}

	var search Node
	for _, p := range systemPanels {
		if p.ID == d.Panel && p.Searchable {
			search = Div(Class(cardClass()),
				Form(Method("get"), Action("/ui/system"), Class("d-flex flex-items-center gap-2"),
					Input(Type("hidden"), Name("panel"), Value(d.Panel)),
					Input(Type("search"), Name("q"), Value(d.Query), Placeholder("Filter by name"), Class("flex-1")),
					Button(Type("submit"), Class(secondaryButtonClass()+" btn-sm"), Text("Filter")),
				),
			)
		}
	}

	return Group([]Node{
		Div(Class("tabs"), Group(tabs)),
		search,
		systemView(d),
	})
}

// systemView is the polled fragment rendering the active panel's table.
func systemView(d systemPageData) Node {
	var panel Node
	switch d.Panel {
	case "merges":
		panel = mergesTable(d.Merges)
	case "mutations":
		panel = mutationsTable(d.Mutations)
	case "metrics", "async-metrics", "events":
		panel = metricsTable(d.Metrics)
	case "users":
		panel = usersTable(d.Users)
	case "settings":
		panel = settingsTable(d.Settings)
	default:
		panel = processesTable(d.Processes)
	}
	return Div(
		ID("system-view"),
		pollAttr(d.RefreshSeconds, d.fragmentURL()),
		errorBanner(d.Err),
		Div(Class(cardClass()), Div(Class("table-wrap"), panel)),
	)
}

func emptyPanelRow(span int, msg string) Node {
	return Tr(Td(ColSpan(strconv.Itoa(span)), P(Class(mutedClass()+" mb-0"), Text(msg))))
}

func processesTable(entries []domain.ProcessEntry) Node {
	var rows []Node
	for _, p := range entries {
		mem := "-"
		if p.MemoryUsage >= 0 {
			mem = format.Bytes(uint64(p.MemoryUsage))
		}
		peak := "-"
		if p.PeakMemoryUsage >= 0 {
			peak = format.Bytes(uint64(p.PeakMemoryUsage))
		}
		rows = append(rows, Tr(
			Td(Text(p.QueryID)),
			Td(Text(p.User)),
			Td(Text(p.Address)),
			Td(Text(format.Seconds(p.Elapsed))),
			Td(Class("cell-query"), Title(p.Query), Text(p.Query)),
			Td(Text(format.Count(p.ReadRows))),
			Td(Text(format.Bytes(p.ReadBytes))),
			Td(Text(mem)),
			Td(Text(peak)),
		))
	}
	if len(rows) == 0 {
		rows = append(rows, emptyPanelRow(9, "No queries running."))
	}
	return Table(
		THead(Tr(
			Th(Text("query id")), Th(Text("user")), Th(Text("address")), Th(Text("elapsed")),
			Th(Text("query")), Th(Text("read rows")), Th(Text("read bytes")), Th(Text("memory")), Th(Text("peak memory")),
		)),
		TBody(Group(rows)),
	)
}

func mergesTable(entries []domain.MergeEntry) Node {
	var rows []Node
	for _, m := range entries {
		kind := statusLabel("merge", "secondary")
		if m.IsMutation {
			kind = statusLabel("mutation", "attention")
		}
		rows = append(rows, Tr(
			Td(Text(m.Database+"."+m.Table)),
			Td(Text(m.ResultPartName)),
			Td(kind),
			Td(Text(format.Seconds(m.Elapsed))),
			Td(Text(format.Percent(m.Progress))),
			Td(Text(format.Count(m.NumParts))),
			Td(Text(format.Bytes(m.TotalSizeBytes))),
			Td(Text(format.Count(m.RowsRead))),
			Td(Text(format.Count(m.RowsWritten))),
			Td(Text(format.Bytes(m.MemoryUsage))),
		))
	}
	if len(rows) == 0 {
		rows = append(rows, emptyPanelRow(10, "No merges running."))
	}
	return Table(
		THead(Tr(
			Th(Text("table")), Th(Text("result part")), Th(Text("kind")), Th(Text("elapsed")),
			Th(Text("progress")), Th(Text("parts")), Th(Text("size")), Th(Text("rows read")),
			Th(Text("rows written")), Th(Text("memory")),
		)),
		TBody(Group(rows)),
	)
}

func mutationsTable(entries []domain.MutationEntry) Node {
	var rows []Node
	for _, m := range entries {
		state := statusLabel("running", "attention")
		if m.IsDone {
			state = statusLabel("done", "success")
		}
		fail := Node(Td(Text("-")))
		if m.LatestFailReason != "" {
			fail = Td(Class("cell-wrap"), statusLabel(m.LatestFailedPart, "danger"), Text(" "+m.LatestFailReason))
		}
		rows = append(rows, Tr(
			Td(Text(m.Database+"."+m.Table)),
			Td(Text(m.MutationID)),
			Td(Class("cell-query"), Title(m.Command), Text(m.Command)),
			Td(Text(format.Time(m.CreateTime.Time()))),
			Td(Text(strconv.FormatInt(m.PartsToDo, 10))),
			Td(state),
			fail,
		))
	}
	if len(rows) == 0 {
		rows = append(rows, emptyPanelRow(7, "No mutations recorded."))
	}
	return Table(
		THead(Tr(
			Th(Text("table")), Th(Text("mutation id")), Th(Text("command")), Th(Text("created")),
			Th(Text("parts to do")), Th(Text("state")), Th(Text("latest failure")),
		)),
		TBody(Group(rows)),
	)
}

func metricsTable(entries []domain.MetricEntry) Node {
	var rows []Node
	for _, m := range entries {
		rows = append(rows, Tr(
			Td(Text(m.Name)),
			Td(Text(strconv.FormatFloat(m.Value, 'f', -1, 64))),
			Td(Class("cell-wrap"), Text(m.Description)),
		))
	}
	if len(rows) == 0 {
		rows = append(rows, emptyPanelRow(3, "No matching entries."))
	}
	return Table(
		THead(Tr(Th(Text("name")), Th(Text("value")), Th(Text("description")))),
		TBody(Group(rows)),
	)
}

func usersTable(entries []domain.UserEntry) Node {
	var rows []Node
	for _, u := range entries {
		roles := statusLabel("explicit", "secondary")
		if u.DefaultRolesAll {
			roles = statusLabel("all", "success")
		}
		rows = append(rows, Tr(
			Td(Text(u.Name)),
			Td(Text(u.ID)),
			Td(Text(u.Storage)),
			Td(Text(dashIfEmpty(u.AuthType))),
			Td(roles),
		))
	}
	if len(rows) == 0 {
		rows = append(rows, emptyPanelRow(5, "No users visible."))
	}
	return Table(
		THead(Tr(Th(Text("name")), Th(Text("id")), Th(Text("storage")), Th(Text("auth")), Th(Text("default roles")))),
		TBody(Group(rows)),
	)
}

func settingsTable(entries []domain.SettingEntry) Node {
	var rows []Node
	for _, s := range entries {
		changed := Node(Td(Text("-")))
		if s.Changed {
			changed = Td(statusLabel("changed", "attention"))
		}
		rows = append(rows, Tr(
			Td(Text(s.Name)),
			Td(Class("cell-wrap"), Text(dashIfEmpty(s.Value))),
			Td(Class("cell-wrap"), Text(dashIfEmpty(s.Default))),
			changed,
			Td(Text(s.Type)),
			Td(Class("cell-wrap"), Text(s.Description)),
		))
	}
	if len(rows) == 0 {
		rows = append(rows, emptyPanelRow(6, "No matching settings."))
	}
	return Table(
		THead(Tr(
			Th(Text("name")), Th(Text("value")), Th(Text("default")), Th(Text("changed")),
			Th(Text("type")), Th(Text("description")),
		)),
		TBody(Group(rows)),
	)
}
