package handlers

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	apierrors "github.com/pribylovaa/go-qa-service/internal/errors"
)

func TestParsePagination(t *testing.T) {
	t.Parallel()

	tcs := []struct {
		name       string
		query      string
		wantLimit  *int
		wantOffset int
		wantErr    bool
	}{
		{name: "none", query: ""},
		{name: "unrelated_param", query: "sort=asc"},
		{name: "both", query: "limit=10&offset=5", wantLimit: intPtr(10), wantOffset: 5},
		{name: "zero", query: "limit=0&offset=0", wantLimit: intPtr(0)},
		{name: "only_limit", query: "limit=10", wantErr: true},
		{name: "only_offset", query: "offset=1", wantErr: true},
		{name: "bad_limit", query: "limit=ten&offset=1", wantErr: true},
		{name: "bad_offset", query: "limit=1&offset=x", wantErr: true},
		{name: "negative", query: "limit=-1&offset=0", wantErr: true},
		{name: "empty_values", query: "limit=&offset=", wantErr: true},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			q, err := url.ParseQuery(tc.query)
			require.NoError(t, err)

			p, err := parsePagination(q)
			if tc.wantErr {
				require.Error(t, err)
				require.Equal(t, apierrors.KindValidation, apierrors.Classify(err))
				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.wantLimit, p.Limit)
			require.Equal(t, tc.wantOffset, p.Offset)
		})
	}
}

func intPtr(v int) *int { return &v }
