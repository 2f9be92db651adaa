package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestPing(t *testing.T) {
	service := newTestService(t, testConfig, nil)
	recorder := httptest.NewRecorder()

	request, err := http.NewRequest(http.MethodGet, PingURL, nil)
	require.NoError(t, err)

	service.router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, "pong", recorder.Body.String())
}

func TestRequestIDMiddleware(t *testing.T) {
	service := newTestService(t, testConfig, nil)

	t.Run("KeepsValidID", func(t *testing.T) {
		id := uuid.NewString()
		recorder := httptest.NewRecorder()

		request, err := http.NewRequest(http.MethodGet, PingURL, nil)
		require.NoError(t, err)
		request.Header.Set(RequestIDHeader, id)

		service.router.ServeHTTP(recorder, request)
		require.Equal(t, id, recorder.Header().Get(RequestIDHeader))
	})

	t.Run("ReplacesInvalidID", func(t *testing.T) {
		recorder := httptest.NewRecorder()

		request, err := http.NewRequest(http.MethodGet, PingURL, nil)
		require.NoError(t, err)
		request.Header.Set(RequestIDHeader, "not-a-uuid")

		service.router.ServeHTTP(recorder, request)

		got := recorder.Header().Get(RequestIDHeader)
		require.NotEqual(t, "not-a-uuid", got)
		_, err = uuid.Parse(got)
		require.NoError(t, err)
	})
}

func TestCorsMiddleware(t *testing.T) {
	testCases := []struct {
		name       string
		allowed    []string
		origin     string
		wantOrigin string
	}{
		{name: "AllowAll", allowed: []string{"*"}, origin: "http://a.com", wantOrigin: "*"},
		{name: "Listed", allowed: []string{"http://a.com"}, origin: "http://a.com", wantOrigin: "http://a.com"},
		{name: "NotListed", allowed: []string{"http://a.com"}, origin: "http://b.com", wantOrigin: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			config := testConfig
			config.AllowedOrigins = tc.allowed
			service := newTestService(t, config, nil)

			recorder := httptest.NewRecorder()
			request, err := http.NewRequest(http.MethodOptions, RenderURL, nil)
			require.NoError(t, err)
			request.Header.Set("Origin", tc.origin)

			service.router.ServeHTTP(recorder, request)

			require.Equal(t, http.StatusNoContent, recorder.Code)
			require.Equal(t, tc.wantOrigin, recorder.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}
