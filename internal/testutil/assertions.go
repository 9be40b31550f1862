package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dom/league-roulette/internal/roulette"
)

// AssertStatusCode verifies the HTTP response status code
func AssertStatusCode(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	assert.Equal(t, expected, resp.StatusCode, "unexpected status code")
}

// AssertJSONResponse decodes JSON response into v
func AssertJSONResponse(t *testing.T, resp *http.Response, v any) {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	err = json.Unmarshal(body, v)
	require.NoError(t, err, "failed to unmarshal response: %s", string(body))
}

// AssertErrorResponse verifies error response with expected status and message
func AssertErrorResponse(t *testing.T, resp *http.Response, expectedStatus int, expectedMessage string) {
	t.Helper()

	assert.Equal(t, expectedStatus, resp.StatusCode, "unexpected status code")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	// Error responses are plain text in this API
	assert.Contains(t, string(body), expectedMessage, "error message mismatch")
}

// AssertUniqueAssignments checks that no role, champion, item or suffix
// repeats across the slots. Nil values are ignored.
func AssertUniqueAssignments(t *testing.T, slots []roulette.Assignment) {
	t.Helper()

	roles := make(map[string]bool)
	champions := make(map[string]bool)
	items := make(map[string]bool)
	suffixes := make(map[string]bool)

	for i, a := range slots {
		if a.Role != nil {
			assert.False(t, roles[string(a.Role.Role)], "slot %d repeats role %s", i, a.Role.Role)
			roles[string(a.Role.Role)] = true
		}
		if a.Champion != nil {
			assert.False(t, champions[a.Champion.ID], "slot %d repeats champion %s", i, a.Champion.ID)
			champions[a.Champion.ID] = true
		}
		if a.Item != nil {
			assert.False(t, items[a.Item.ID], "slot %d repeats item %s", i, a.Item.ID)
			items[a.Item.ID] = true
		}
		if a.Suffix != nil {
			assert.False(t, suffixes[*a.Suffix], "slot %d repeats suffix %s", i, *a.Suffix)
			suffixes[*a.Suffix] = true
		}
	}
}
