// Package testutil holds helpers shared by the HTTP tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// NewJSONRequest creates a request whose body is body encoded as JSON. A string
// body is sent verbatim so tests can submit malformed payloads.
func NewJSONRequest(t testing.TB, method, target string, body any) *http.Request {
	t.Helper()
	r := httptest.NewRequest(method, target, jsonBody(t, body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func jsonBody(t testing.TB, body any) io.Reader {
	t.Helper()
	switch b := body.(type) {
	case nil:
		return http.NoBody
	case string:
		return bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		return bytes.NewReader(raw)
	}
}

// Do sends a JSON request to srv and decodes a JSON response body, if any.
func Do(t testing.TB, srv *httptest.Server, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(method, srv.URL+path, jsonBody(t, body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	return resp, DecodeJSON(t, resp.Header.Get("Content-Type"), resp.Body)
}

// DecodeJSON decodes body into a map when contentType is JSON, returning nil
// otherwise.
func DecodeJSON(t testing.TB, contentType string, body io.Reader) map[string]any {
	t.Helper()
	if contentType != "application/json" {
		return nil
	}
	var decoded map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&decoded))
	return decoded
}

// RecordedJSON decodes the body captured by w.
func RecordedJSON(t testing.TB, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	decoded := DecodeJSON(t, w.Header().Get("Content-Type"), w.Body)
	require.NotNil(t, decoded, "expected a JSON response")
	return decoded
}
