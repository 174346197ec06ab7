package ui

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"
	"github.com/benjaminwootton/QueryDog-sub000/internal/format"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// Chart viewport in SVG user units. The element scales to its card width.
const (
	chartViewW = 960
	chartViewH = 260
	chartPadL  = 62
	chartPadR  = 8
	chartPadT  = 8
	chartPadB  = 22
)

// chartSeries is one plotted series; stacked charts carry several.
type chartSeries struct {
	Label  string
	Values []float64
}

// chartInput is everything the SVG renderer needs, already sliced for the
// selected metric and aggregation so rendering is pure geometry.
type chartInput struct {
	Cfg       domain.ChartConfig
	Times     []time.Time
	Bucket    time.Duration
	Series    []chartSeries
	DrillBase string
}

// queryLogChartInput slices the fetched query-log series for the current
// chart config. Stacked renderings use the by-kind series; everything else
// picks one aggregate column out of the combined points.
func queryLogChartInput(cfg domain.ChartConfig, points []domain.TimeSeriesPoint, stacked []domain.QueryStackedPoint, bucket time.Duration, drillBase string) chartInput {
	in := chartInput{Cfg: cfg, Bucket: bucket, DrillBase: drillBase}
	if cfg.Stacked() {
		sel := chartSeries{Label: "Select"}
		ins := chartSeries{Label: "Insert"}
		del := chartSeries{Label: "Delete"}
		other := chartSeries{Label: "Other"}
		for _, p := range stacked {
			in.Times = append(in.Times, p.Time.Time())
			sel.Values = append(sel.Values, float64(p.Select))
			ins.Values = append(ins.Values, float64(p.Insert))
			del.Values = append(del.Values, float64(p.Delete))
			other.Values = append(other.Values, float64(p.Other))
		}
		in.Series = []chartSeries{sel, ins, del, other}
		return in
	}
	s := chartSeries{Label: chartMetricLabel(cfg)}
	for _, p := range points {
		in.Times = append(in.Times, p.Time.Time())
		s.Values = append(s.Values, p.Metric(cfg.Metric, cfg.Aggregation))
	}
	in.Series = []chartSeries{s}
	return in
}

// partLogChartInput is the part-log counterpart, stacking by event type.
func partLogChartInput(cfg domain.ChartConfig, points []domain.TimeSeriesPoint, stacked []domain.PartStackedPoint, bucket time.Duration, drillBase string) chartInput {
	in := chartInput{Cfg: cfg, Bucket: bucket, DrillBase: drillBase}
	if cfg.Stacked() {
		newPart := chartSeries{Label: "NewPart"}
		merge := chartSeries{Label: "MergeParts"}
		remove := chartSeries{Label: "RemovePart"}
		other := chartSeries{Label: "Other"}
		for _, p := range stacked {
			in.Times = append(in.Times, p.Time.Time())
			newPart.Values = append(newPart.Values, float64(p.NewPart))
			merge.Values = append(merge.Values, float64(p.MergeParts))
			remove.Values = append(remove.Values, float64(p.RemovePart))
			other.Values = append(other.Values, float64(p.Other))
		}
		in.Series = []chartSeries{newPart, merge, remove, other}
		return in
	}
	s := chartSeries{Label: chartMetricLabel(cfg)}
	for _, p := range points {
		in.Times = append(in.Times, p.Time.Time())
		s.Values = append(s.Values, p.Metric(cfg.Metric, cfg.Aggregation))
	}
	in.Series = []chartSeries{s}
	return in
}

func chartMetricLabel(cfg domain.ChartConfig) string {
	if cfg.Metric == domain.MetricCount {
		return "count"
	}
	return string(cfg.Aggregation) + " " + strings.ReplaceAll(string(cfg.Metric), "_", " ")
}

// chartValueLabel renders an axis or tooltip value in the metric's unit.
func chartValueLabel(m domain.ChartMetric, v float64) string {
	switch m {
	case domain.MetricDuration:
		return format.DurationMs(v)
	case domain.MetricMemory:
		if v < 0 {
			v = 0
		}
		return format.Bytes(uint64(v))
	default:
		return format.CompactCount(v)
	}
}

// niceCeil rounds up to a 1/2/5 step so the axis maximum lands on a round
// number.
func niceCeil(v float64) float64 {
	if v <= 0 {
		return 1
	}
	base := math.Pow(10, math.Floor(math.Log10(v)))
	switch frac := v / base; {
	case frac <= 1:
		return base
	case frac <= 2:
		return 2 * base
	case frac <= 5:
		return 5 * base
	default:
		return 10 * base
	}
}

// chartMax returns the raw axis maximum: the tallest stack for stacked
// renderings, the tallest single value otherwise.
func chartMax(in chartInput) float64 {
	maxV := 0.0
	for i := range in.Times {
		if in.Cfg.Stacked() {
			sum := 0.0
			for _, s := range in.Series {
				sum += s.Values[i]
			}
			maxV = math.Max(maxV, sum)
		} else {
			for _, s := range in.Series {
				maxV = math.Max(maxV, s.Values[i])
			}
		}
	}
	return maxV
}

func fx(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// drillURL builds the click-a-bar zoom target: the clicked bucket becomes
// the new time range.
func drillURL(base string, t time.Time, bucket time.Duration) string {
	q := url.Values{}
	q.Set("start", domain.FormatTime(t))
	q.Set("width", strconv.Itoa(int(bucket/time.Second)))
	return base + "?" + q.Encode()
}

func timeTickLabel(t time.Time, span time.Duration, bucket time.Duration) string {
	if span > 24*time.Hour {
		return t.Format("01-02 15:04")
	}
	if bucket < time.Minute {
		return t.Format("15:04:05")
	}
	return t.Format("15:04")
}

// chartCard renders the activity chart for one log view. The effective type
// silently downgrades combinations the data cannot express.
func chartCard(in chartInput) Node {
	if len(in.Times) == 0 {
		return Div(Class(cardClass("chart-card")), P(Class(mutedClass()), Text("No data in this window.")))
	}

	axisMax := niceCeil(chartMax(in))
	plotW := float64(chartViewW - chartPadL - chartPadR)
	plotH := float64(chartViewH - chartPadT - chartPadB)
	n := len(in.Times)
	slotW := plotW / float64(n)
	span := in.Times[n-1].Sub(in.Times[0]) + in.Bucket

	yFor := func(v float64) float64 {
		return chartPadT + plotH - v/axisMax*plotH
	}
	xFor := func(i int) float64 {
		return chartPadL + float64(i)*slotW
	}

	var nodes []Node

	// Horizontal gridlines with value labels.
	for _, frac := range []float64{0, 0.25, 0.5, 0.75, 1} {
		y := yFor(axisMax * frac)
		nodes = append(nodes, El("line",
			Attr("x1", fx(chartPadL)), Attr("y1", fx(y)),
			Attr("x2", fx(chartPadL+plotW)), Attr("y2", fx(y)),
			Class("chart-grid-line"),
		))
		nodes = append(nodes, El("text",
			Attr("x", fx(chartPadL-6)), Attr("y", fx(y+3)),
			Attr("text-anchor", "end"),
			Class("chart-axis-label"),
			Text(chartValueLabel(in.Cfg.Metric, axisMax*frac)),
		))
	}

	// Time labels at the edges and the middle.
	for _, i := range []int{0, n / 2, n - 1} {
		nodes = append(nodes, El("text",
			Attr("x", fx(xFor(i)+slotW/2)), Attr("y", fx(chartViewH-6)),
			Attr("text-anchor", "middle"),
			Class("chart-axis-label"),
			Text(timeTickLabel(in.Times[i], span, in.Bucket)),
		))
	}

	switch in.Cfg.EffectiveType() {
	case domain.ChartBar, domain.ChartStackedBar:
		barW := slotW * 0.8
		for i := 0; i < n; i++ {
			x := xFor(i) + slotW*0.1
			base := 0.0
			var rects []Node
			var tip []string
			for si, s := range in.Series {
				v := s.Values[i]
				if v <= 0 {
					continue
				}
				top := yFor(base + v)
				h := yFor(base) - top
				rects = append(rects, El("rect",
					Attr("x", fx(x)), Attr("y", fx(top)),
					Attr("width", fx(barW)), Attr("height", fx(h)),
					Class("chart-bar-"+strconv.Itoa(si)),
				))
				tip = append(tip, s.Label+": "+chartValueLabel(in.Cfg.Metric, v))
				base += v
			}
			if len(rects) == 0 {
				continue
			}
			title := El("title", Text(domain.FormatTime(in.Times[i])+"\n"+strings.Join(tip, "\n")))
			group := El("g", title, Group(rects))
			if in.DrillBase != "" {
				group = El("a", Attr("href", drillURL(in.DrillBase, in.Times[i], in.Bucket)), group)
			}
			nodes = append(nodes, group)
		}

	case domain.ChartLine, domain.ChartStackedLine:
		// Stacked lines plot cumulative heights so the bands read top down.
		base := make([]float64, n)
		for si, s := range in.Series {
			var points []string
			for i := 0; i < n; i++ {
				v := s.Values[i]
				if in.Cfg.Stacked() {
					v += base[i]
					base[i] = v
				}
				points = append(points, fx(xFor(i)+slotW/2)+","+fx(yFor(v)))
			}
			nodes = append(nodes, El("polyline",
				Attr("points", strings.Join(points, " ")),
				Class("chart-line-"+strconv.Itoa(si)),
			))
		}

	case domain.ChartScatter:
		for _, s := range in.Series {
			for i := 0; i < n; i++ {
				if s.Values[i] <= 0 {
					continue
				}
				nodes = append(nodes, El("circle",
					Attr("cx", fx(xFor(i)+slotW/2)), Attr("cy", fx(yFor(s.Values[i]))),
					Attr("r", "2.5"),
					Class("chart-dot-0"),
					El("title", Text(domain.FormatTime(in.Times[i])+"\n"+chartValueLabel(in.Cfg.Metric, s.Values[i]))),
				))
			}
		}
	}

	legend := Div(Class("chart-legend"), Span(Span(Class("legend-swatch s0")), Text(chartMetricLabel(in.Cfg))))
	if in.Cfg.Stacked() {
		items := make([]Node, 0, len(in.Series))
		for si, s := range in.Series {
			items = append(items, Span(Span(Class("legend-swatch s"+strconv.Itoa(si))), Text(s.Label)))
		}
		legend = Div(Class("chart-legend"), Group(items))
	}

	return Div(
		Class(cardClass("chart-card")),
		El("svg",
			Attr("viewBox", fmt.Sprintf("0 0 %d %d", chartViewW, chartViewH)),
			Attr("preserveAspectRatio", "xMidYMid meet"),
			Attr("role", "img"),
			Group(nodes),
		),
		legend,
	)
}
