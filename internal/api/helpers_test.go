package api

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjaminwootton/QueryDog-sub000/internal/domain"
)

func TestParseBucket(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		want    time.Duration
		wantErr bool
	}{
		{name: "absent means auto", raw: "", want: 0},
		{name: "whole seconds", raw: "60", want: time.Minute},
		{name: "half hour", raw: "1800", want: 30 * time.Minute},
		{name: "negative rejected", raw: "-1", wantErr: true},
		{name: "not a number rejected", raw: "1m", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			vals := url.Values{}
			if tt.raw != "" {
				vals.Set("bucket", tt.raw)
			}
			got, err := parseBucket(vals)
			if tt.wantErr {
				var verr *domain.ValidationError
				require.ErrorAs(t, err, &verr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeParam(t *testing.T) {
	t.Parallel()

	t.Run("parses the wire layout in the local zone", func(t *testing.T) {
		t.Parallel()
		vals := url.Values{"start": {"2026-08-22 09:15:00"}}
		got, err := timeParam(vals, "start")
		require.NoError(t, err)
		assert.True(t, got.Equal(time.Date(2026, 8, 22, 9, 15, 0, 0, time.Local)))
	})

	t.Run("rejects ISO-T timestamps", func(t *testing.T) {
		t.Parallel()
		vals := url.Values{"start": {"2026-08-22T09:15:00Z"}}
		_, err := timeParam(vals, "start")
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("requires a value", func(t *testing.T) {
		t.Parallel()
		_, err := timeParam(url.Values{}, "end")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "end is required")
	})
}

func TestIntParam(t *testing.T) {
	t.Parallel()

	vals := url.Values{"limit": {"250"}, "offset": {"abc"}}

	got, err := intParam(vals, "limit")
	require.NoError(t, err)
	assert.Equal(t, 250, got)

	got, err = intParam(vals, "missing")
	require.NoError(t, err)
	assert.Zero(t, got)

	_, err = intParam(vals, "offset")
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestParseGridQueryNormalizesSortOrder(t *testing.T) {
	t.Parallel()

	params := url.Values{"sortField": {"rows"}, "sortOrder": {"asc"}}
	req := httptest.NewRequest(http.MethodGet, "/parts?"+params.Encode(), nil)
	q, err := parseGridQuery(req)
	require.NoError(t, err)
	assert.Equal(t, domain.SortSpec{Field: "rows", Order: domain.SortAsc}, q.Sort)
}
