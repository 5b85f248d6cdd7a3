package jwt

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken(&Payload{ID: "user-1", Username: "ada"}, testSecret, time.Hour)
	require.NoError(t, err)

	payload, err := ParseToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "user-1", payload.ID)
	assert.Equal(t, "ada", payload.Username)
	assert.Equal(t, TokenIssuer, payload.Issuer)
}

func TestParseTokenRejects(t *testing.T) {
	valid, err := GenerateToken(&Payload{ID: "user-1"}, testSecret, time.Hour)
	require.NoError(t, err)

	expired, err := GenerateToken(&Payload{ID: "user-1"}, testSecret, -time.Minute)
	require.NoError(t, err)

	noID, err := GenerateToken(&Payload{}, testSecret, time.Hour)
	require.NoError(t, err)

	cases := map[string]struct {
		token  string
		secret string
	}{
		"wrong secret": {valid, "other-secret"},
		"expired":      {expired, testSecret},
		"missing id":   {noID, testSecret},
		"garbage":      {"not.a.token", testSecret},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseToken(tc.token, tc.secret)
			assert.Error(t, err)
		})
	}
}

func TestIdentityExtractorMiddleware(t *testing.T) {
	token, err := GenerateToken(&Payload{ID: "user-1", Username: "ada"}, testSecret, time.Hour)
	require.NoError(t, err)

	var seen *Payload
	handler := IdentityExtractorMiddleware(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetPayloadFromContext(r)
		w.WriteHeader(http.StatusNoContent)
	}))

	cases := []struct {
		name   string
		header string
		wantID string
	}{
		{"valid bearer", "Bearer " + token, "user-1"},
		{"no header", "", ""},
		{"wrong scheme", "Basic " + token, ""},
		{"invalid token", "Bearer nope", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			seen = nil
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				r.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, r)

			// Bad tokens never block the request.
			assert.Equal(t, http.StatusNoContent, w.Code)
			if tc.wantID == "" {
				assert.Nil(t, seen)
				return
			}
			require.NotNil(t, seen)
			assert.Equal(t, tc.wantID, seen.ID)
		})
	}
}
