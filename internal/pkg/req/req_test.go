package req

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agora/internal/pkg/errs"
)

type sample struct {
	Name string `json:"name"`
}

func jsonRequest(body string, contentType string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	if contentType != "" {
		r.Header.Set("Content-Type", contentType)
	}
	return r
}

func TestBindJSON(t *testing.T) {
	var dst sample
	customErr := BindJSON(httptest.NewRecorder(), jsonRequest(`{"name":"ada"}`, "application/json; charset=utf-8"), &dst)
	require.Nil(t, customErr)
	assert.Equal(t, "ada", dst.Name)
}

func TestBindJSONErrors(t *testing.T) {
	cases := []struct {
		name        string
		body        string
		contentType string
		wantCode    int
	}{
		{"wrong content type", `{"name":"ada"}`, "text/plain", errs.ErrUnsupportedMediaType},
		{"missing content type", `{"name":"ada"}`, "", errs.ErrUnsupportedMediaType},
		{"malformed", `{"name":`, "application/json", errs.ErrInvalidJSONFormat},
		{"unknown field", `{"nick":"ada"}`, "application/json", errs.ErrInvalidJSONFormat},
		{"trailing content", `{"name":"ada"}{"name":"bob"}`, "application/json", errs.ErrExtraContentInBody},
		{"too large", `{"name":"` + strings.Repeat("a", int(MaxJSONBodySize)) + `"}`, "application/json", errs.ErrRequestEntityTooLarge},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var dst sample
			customErr := BindJSON(httptest.NewRecorder(), jsonRequest(tc.body, tc.contentType), &dst)
			require.NotNil(t, customErr)
			assert.Equal(t, tc.wantCode, customErr.Code)
		})
	}
}

func TestSearchQuery(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?q=%20noob%20", nil)
	assert.Equal(t, "noob", SearchQuery(r))

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "", SearchQuery(r))
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestPathID(t *testing.T) {
	id := uuid.NewString()

	r := withURLParam(httptest.NewRequest(http.MethodGet, "/", nil), "id", id)
	got, ok := PathID(r, "id")
	assert.True(t, ok)
	assert.Equal(t, id, got)

	r = withURLParam(httptest.NewRequest(http.MethodGet, "/", nil), "id", "42")
	_, ok = PathID(r, "id")
	assert.False(t, ok)

	_, ok = PathID(httptest.NewRequest(http.MethodGet, "/", nil), "id")
	assert.False(t, ok)
}
