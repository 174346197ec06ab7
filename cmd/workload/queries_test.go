package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"
)

func TestSelectPatternsWellFormed(t *testing.T) {
	t.Parallel()

	require.Len(t, selectPatterns, 20)
	for _, p := range selectPatterns {
		p := p
		t.Run(p.name, func(t *testing.T) {
			t.Parallel()
			for range 5 {
				q := p.build()
				assert.NotEmpty(t, q)
				assert.Contains(t, q, "FROM ")
				assert.NotContains(t, q, "%!", "formatting verb mismatch")
			}
		})
	}
}

func TestUpdatePatternsAreSampledSweeps(t *testing.T) {
	t.Parallel()

	require.Len(t, updatePatterns, 4)
	for _, p := range updatePatterns {
		q := p.build()
		assert.True(t, strings.HasPrefix(q, "ALTER TABLE "), "%s must be an ALTER: %s", p.name, q)
		assert.Contains(t, q, " UPDATE ")
		assert.Contains(t, q, "rand() % 100 <", "%s must sample rows", p.name)
		assert.NotContains(t, q, "%!")
	}
}

func TestDeletePatternsAreSampledSweeps(t *testing.T) {
	t.Parallel()

	require.Len(t, deletePatterns, 4)
	for _, p := range deletePatterns {
		q := p.build()
		assert.True(t, strings.HasPrefix(q, "ALTER TABLE "), "%s must be an ALTER: %s", p.name, q)
		assert.Contains(t, q, " DELETE")
		assert.Contains(t, q, "rand() % 100 <", "%s must sample rows", p.name)
		assert.NotContains(t, q, "%!")
	}
}

func TestUpdatePatternsAvoidOrderingKeys(t *testing.T) {
	t.Parallel()

	// ClickHouse rejects ALTER UPDATE on key columns, so the sweeps must
	// only touch columns outside each table's ORDER BY.
	for range 20 {
		for _, p := range updatePatterns {
			q := p.build()
			setClause := q[strings.Index(q, " UPDATE ")+len(" UPDATE "):]
			whereAt := strings.Index(setClause, "\nWHERE")
			require.True(t, whereAt > 0, "%s has no WHERE clause: %s", p.name, q)
			setClause = setClause[:whereAt]
			for _, key := range []string{"registration_date =", "customer_id =", "order_date =", "order_id =", "cart_created_at =", "cart_id =", "customer_segment ="} {
				assert.NotContains(t, setClause, key, "%s mutates a key column", p.name)
			}
		}
	}
}

func TestRandomWindow(t *testing.T) {
	t.Parallel()

	for range 20 {
		s := randomWindow(7)
		ts, err := domain.ParseTime(s)
		require.NoError(t, err)
		assert.True(t, ts.Before(time.Now()))
		assert.True(t, ts.After(time.Now().Add(-8*24*time.Hour)))
	}
}

func TestRandomLimit(t *testing.T) {
	t.Parallel()

	allowed := map[int]bool{10: true, 25: true, 50: true, 100: true, 250: true, 500: true, 1000: true}
	for range 50 {
		assert.True(t, allowed[randomLimit()])
	}
}
