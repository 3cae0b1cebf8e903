// HTTP response assertion helpers.

package helpers

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"
)

// AssertStatus fails the test when the response code differs.
func AssertStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("Expected status %d, got %d: %s", want, resp.StatusCode, string(body))
	}
}

// ParseJSON decodes the response body into out.
func ParseJSON(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		t.Fatalf("Failed to parse response body %q: %v", string(body), err)
	}
}

// ParseJSONMap decodes the response body into a generic map.
func ParseJSONMap(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	out := map[string]interface{}{}
	ParseJSON(t, resp, &out)
	return out
}
