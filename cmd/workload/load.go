package main

import (
	"context"
	"math/rand/v2"
	"time"

	"golang.org/x/time/rate"
)

type opKind string

const (
	opSelect opKind = "select"
	opInsert opKind = "insert"
	opUpdate opKind = "update"
	opDelete opKind = "delete"
)

// classifyRoll maps a uniform [0,1) roll onto the operation mix: 40% reads,
// 40% single-row inserts, 10% update sweeps, 10% delete sweeps.
func classifyRoll(roll float64) opKind {
	switch {
	case roll < 0.4:
		return opSelect
	case roll < 0.8:
		return opInsert
	case roll < 0.9:
		return opUpdate
	default:
		return opDelete
	}
}

type opStats struct {
	started time.Time
	total   int
	failed  int
	busy    time.Duration
	byKind  map[opKind]int
}

// loadLoop issues the mixed operation stream at the configured rate until
// the context is cancelled.
func (g *generator) loadLoop(ctx context.Context, opsPerSecond float64) {
	limiter := rate.NewLimiter(rate.Limit(opsPerSecond), 1)
	stats := opStats{started: time.Now(), byKind: make(map[opKind]int)}

	for {
		if err := limiter.Wait(ctx); err != nil {
			return
		}

		kind := classifyRoll(rand.Float64())
		name, took, err := g.runOp(ctx, kind)
		if ctx.Err() != nil {
			return
		}

		stats.total++
		stats.busy += took
		stats.byKind[kind]++
		if err != nil {
			stats.failed++
			g.logger.Warn("operation failed", "kind", string(kind), "op", name, "error", err)
		}

		if stats.total%100 == 0 {
			elapsed := time.Since(stats.started)
			g.logger.Info("load summary",
				"ops", stats.total,
				"failed", stats.failed,
				"selects", stats.byKind[opSelect],
				"inserts", stats.byKind[opInsert],
				"updates", stats.byKind[opUpdate],
				"deletes", stats.byKind[opDelete],
				"actual_ops_per_second", float64(stats.total)/elapsed.Seconds(),
				"avg_op_ms", stats.busy.Milliseconds()/int64(stats.total),
			)
		}
	}
}

// runOp executes one operation of the given kind and reports the pattern
// name and elapsed time.
func (g *generator) runOp(ctx context.Context, kind opKind) (string, time.Duration, error) {
	start := time.Now()
	var name string
	var err error
	switch kind {
	case opSelect:
		p := pick(selectPatterns)
		name = p.name
		_, err = g.runSelect(ctx, p.build())
	case opInsert:
		name, err = g.runInsert(ctx)
	case opUpdate:
		p := pick(updatePatterns)
		name = p.name
		_, err = g.db.ExecContext(ctx, p.build())
	case opDelete:
		p := pick(deletePatterns)
		name = p.name
		_, err = g.db.ExecContext(ctx, p.build())
	}
	return name, time.Since(start), err
}

// runSelect executes the query and drains the result, returning the row
// count so the work is not optimized away at the client.
func (g *generator) runSelect(ctx context.Context, query string) (int, error) {
	rows, err := g.db.QueryContext(ctx, query)
	if err != nil {
		return 0, err
	}
	defer rows.Close() //nolint:errcheck

	n := 0
	for rows.Next() {
		n++
	}
	return n, rows.Err()
}

// runInsert adds one record to a weighted-random demo table, mirroring the
// shape of real traffic where page views dominate.
func (g *generator) runInsert(ctx context.Context) (string, error) {
	switch weightedPick([]string{"page_views", "shopping_cart", "orders", "customers"}, []float64{0.45, 0.25, 0.2, 0.1}) {
	case "page_views":
		return "insert_page_views", g.insertPageViews(ctx, 1)
	case "shopping_cart":
		return "insert_shopping_cart", g.insertCarts(ctx, 1)
	case "orders":
		return "insert_orders", g.insertOrders(ctx, 1)
	default:
		return "insert_customers", g.insertCustomers(ctx, 1)
	}
}
