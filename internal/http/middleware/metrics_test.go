package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetrics_CountsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Metrics())
	r.Get("/questions/{id}/answers", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	c := httpRequests.WithLabelValues(http.MethodGet, "/questions/{id}/answers", "202")
	before := testutil.ToFloat64(c)

	for _, id := range []string{"1", "2"} {
		r.ServeHTTP(httptest.NewRecorder(), makeReq(http.MethodGet, "/questions/"+id+"/answers"))
	}

	require.Equal(t, before+2, testutil.ToFloat64(c))
}

func TestRoutePattern_Unmatched(t *testing.T) {
	require.Equal(t, "unmatched", routePattern(makeReq(http.MethodGet, "/x")))
}
