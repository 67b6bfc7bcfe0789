package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Request describes one request sent through a handler under test.
type Request struct {
	Method  string
	Path    string
	Body    interface{}
	Token   string
	Headers map[string]string
}

// Do serves req through h and returns the recorded response.
// A non-nil Body is sent as JSON; Token becomes a bearer Authorization header.
func Do(t *testing.T, h http.Handler, req Request) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if req.Body != nil {
		body = ToJSONReader(t, req.Body)
	}
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	r := httptest.NewRequest(method, req.Path, body)
	if req.Body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	if req.Token != "" {
		r.Header.Set("Authorization", "Bearer "+req.Token)
	}
	for k, v := range req.Headers {
		r.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

// DecodeJSON parses a recorded response body as a JSON object.
func DecodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var result map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &result)
	require.NoError(t, err, "Failed to parse JSON response: %s", w.Body.String())
	return result
}

// JSONResponseAs parses the response body into the provided type.
func JSONResponseAs[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var result T
	err := json.Unmarshal(w.Body.Bytes(), &result)
	require.NoError(t, err, "Failed to parse JSON response")
	return result
}

// AssertFieldError asserts the response carries message for field in its
// {"errors": {...}} container.
func AssertFieldError(t *testing.T, w *httptest.ResponseRecorder, field, message string) {
	t.Helper()

	resp := DecodeJSON(t, w)
	errs, ok := resp["errors"].(map[string]interface{})
	require.True(t, ok, "errors container missing: %s", w.Body.String())
	assert.Equal(t, message, errs[field], "Unexpected message for field %s", field)
}

// AssertNoFieldErrors asserts the response has no errors container.
func AssertNoFieldErrors(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()

	resp := DecodeJSON(t, w)
	assert.NotContains(t, resp, "errors", "Unexpected errors: %v", resp["errors"])
}

// AssertErrorResponse asserts the response is a failed API envelope.
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedCode string) {
	t.Helper()

	resp := DecodeJSON(t, w)
	assert.Equal(t, false, resp["success"], "Expected success to be false")

	errMap, ok := resp["error"].(map[string]interface{})
	require.True(t, ok, "Expected error object in response")
	assert.Equal(t, expectedCode, errMap["code"], "Unexpected error code")
}

// ToJSONReader converts a value to a JSON io.Reader.
func ToJSONReader(t *testing.T, v interface{}) io.Reader {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err, "Failed to marshal to JSON")
	return bytes.NewReader(data)
}
