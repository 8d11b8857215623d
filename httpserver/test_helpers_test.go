//nolint:unused
package httpserver_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"moviecatalog/pkg/config"
	pkgjwt "moviecatalog/pkg/jwt"
	"moviecatalog/user"

	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-jwt-secret"

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Auth.JWTSecret = testJWTSecret
	cfg.Auth.TokenTTL = 15 * time.Minute
	cfg.Auth.RefreshTTL = time.Hour
	return cfg
}

func testTokens() *pkgjwt.JWTProvider {
	return pkgjwt.NewJWTProvider(testJWTSecret, time.Hour, time.Hour)
}

func signTestToken(t *testing.T, userID int64, admin bool) string {
	t.Helper()
	token, err := testTokens().GenerateAccessToken(user.User{
		ID:          userID,
		Email:       "user@mail.com",
		IsSuperuser: admin,
	})
	require.NoError(t, err)
	return token
}

func userToken(t *testing.T) string {
	return signTestToken(t, 7, false)
}

func adminToken(t *testing.T) string {
	return signTestToken(t, 1, true)
}

type apiResponse struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
	Info    string          `json:"info"`
}

func decodeAPIResponse(t *testing.T, rec *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var resp apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), "failed to decode response: %s", rec.Body.String())
	return resp
}

func decodeAPIResult(t *testing.T, raw json.RawMessage, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(raw, v), "failed to decode result")
}

func newJSONRequest(t *testing.T, method, path string, body interface{}) *http.Request {
	t.Helper()
	var payload []byte
	switch b := body.(type) {
	case nil:
	case string:
		payload = []byte(b)
	default:
		var err error
		payload, err = json.Marshal(b)
		require.NoError(t, err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func withToken(req *http.Request, token string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
