package providers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dummyHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}

func TestRouterProvider_GetAddsRoute(t *testing.T) {
	rp := NewRouterProvider()
	rp.Get("/", dummyHandler())
	rp.Get("/health", dummyHandler())

	routes := rp.GetRoutes()
	require.Len(t, routes, 2)
	assert.Equal(t, "/", routes[0].Url)
	assert.Equal(t, []string{"/", "/health"}, rp.Paths())
}

func TestRouterProvider_AllowsGetAndHead(t *testing.T) {
	rp := NewRouterProvider()
	rp.Get("/", dummyHandler())
	h := rp.GetRoutes()[0].Handler

	for _, method := range []string{http.MethodGet, http.MethodHead} {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(method, "/", nil))
		assert.Equal(t, http.StatusOK, rr.Code, method)
	}
}

func TestRouterProvider_RejectsPost(t *testing.T) {
	rp := NewRouterProvider()
	rp.Get("/", dummyHandler())

	rr := httptest.NewRecorder()
	rp.GetRoutes()[0].Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
