package items

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"item-catalog/core/server"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const adminToken = "s3cret"

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()
	svc, _ := setupService(t, nil)

	app := fiber.New()
	NewHandler(svc, server.Config{AdminToken: adminToken}).RegisterRoutes(app)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body any, headers ...string) (*http.Response, map[string]any) {
	t.Helper()

	var req *http.Request
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		req = httptest.NewRequest(method, target, strings.NewReader(string(payload)))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	var out map[string]any
	json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

func summaryOf(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	summary, ok := body["summary"].(map[string]any)
	require.True(t, ok, "response has no summary: %v", body)
	return summary
}

func firstResult(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	results, ok := body["results"].([]any)
	require.True(t, ok)
	require.NotEmpty(t, results)
	return results[0].(map[string]any)
}

func TestHandleIngestAndList(t *testing.T) {
	app := setupTestApp(t)

	resp, body := doJSON(t, app, "POST", "/items", map[string]any{"raw": daggerDump, "submittedBy": "Alice"})
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, float64(1), summaryOf(t, body)["new"])

	resp, body = doJSON(t, app, "GET", "/items", nil)
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "MISS", resp.Header.Get("X-Cache"))
	assert.Equal(t, "public, max-age=3600", resp.Header.Get("Cache-Control"))
	assert.Equal(t, float64(1), body["count"])

	items := body["items"].([]any)
	item := items[0].(map[string]any)
	assert.Equal(t, "a rusty dagger", item["name"])
	assert.Equal(t, float64(1), item["submissionCount"])

	resp, _ = doJSON(t, app, "GET", "/items", nil)
	assert.Equal(t, "HIT", resp.Header.Get("X-Cache"))

	resp, body = doJSON(t, app, "GET", "/items?type=worn", nil)
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, float64(0), body["count"])

	resp, body = doJSON(t, app, "GET", "/items?q=rusty", nil)
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, float64(1), body["count"])
}

func TestHandleIngestHeldThenConfirmed(t *testing.T) {
	app := setupTestApp(t)

	resp, _ := doJSON(t, app, "POST", "/items", map[string]any{"raw": daggerDump})
	require.Equal(t, 200, resp.StatusCode)

	resp, body := doJSON(t, app, "POST", "/items", map[string]any{"raw": heavyDaggerDump})
	require.Equal(t, 409, resp.StatusCode)
	assert.Equal(t, true, body["held"])
	assert.Equal(t, "needs_confirmation", firstResult(t, body)["outcome"])

	resp, body = doJSON(t, app, "POST", "/items/confirm", map[string]any{"raw": heavyDaggerDump, "decision": "proceed"})
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "merged", firstResult(t, body)["outcome"])

	resp, body = doJSON(t, app, "POST", "/items/confirm", map[string]any{"raw": heavyDaggerDump, "decision": "later"})
	assert.Equal(t, 400, resp.StatusCode)
	assert.Equal(t, ErrInvalidDecision.Error(), body["error"])
}

func TestHandleIngestPreParsedItems(t *testing.T) {
	app := setupTestApp(t)

	resp, body := doJSON(t, app, "POST", "/items", map[string]any{
		"name":        "a bone",
		"type":        "trash",
		"flags":       "GLOW, HUM",
		"submittedBy": "Dana",
	})
	require.Equal(t, 200, resp.StatusCode)
	result := firstResult(t, body)
	assert.Equal(t, "new", result["outcome"])
	obs := result["observation"].(map[string]any)
	assert.Equal(t, []any{"GLOW", "HUM"}, obs["flags"])
	assert.Equal(t, "Dana", obs["submittedBy"])

	resp, body = doJSON(t, app, "POST", "/items", map[string]any{"item": map[string]any{"name": "a crown"}})
	require.Equal(t, 200, resp.StatusCode)
	result = firstResult(t, body)
	assert.Equal(t, "rejected", result["outcome"])
	assert.Equal(t, "name and type are required", result["reason"])

	resp, body = doJSON(t, app, "POST", "/items", map[string]any{"items": []any{
		map[string]any{"name": "a crown", "type": "worn", "worn": []string{"head"}},
		map[string]any{"name": "a cape", "type": "worn", "worn": "back"},
	}})
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, float64(2), summaryOf(t, body)["new"])
}

func TestHandleIngestBadRequests(t *testing.T) {
	app := setupTestApp(t)

	resp, body := doJSON(t, app, "POST", "/items", map[string]any{})
	assert.Equal(t, 400, resp.StatusCode)
	assert.Equal(t, ErrEmptyRequest.Error(), body["error"])

	req := httptest.NewRequest("POST", "/items", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, res.StatusCode)
}

func TestHandlePreview(t *testing.T) {
	app := setupTestApp(t)

	resp, body := doJSON(t, app, "POST", "/items/preview", map[string]any{"raw": daggerDump + ringDump})
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, float64(2), body["count"])

	_, list := doJSON(t, app, "GET", "/items", nil)
	assert.Equal(t, float64(0), list["count"], "preview must not write")

	assert.Equal(t, []any{"wield", "finger1"}, body["slots"])

	resp, _ = doJSON(t, app, "POST", "/items/preview", map[string]any{"raw": " "})
	assert.Equal(t, 400, resp.StatusCode)
}

func TestHandleGetAndReview(t *testing.T) {
	app := setupTestApp(t)

	_, body := doJSON(t, app, "POST", "/items", map[string]any{"raw": daggerDump, "submittedBy": "Alice"})
	id := firstResult(t, body)["itemId"].(string)

	resp, item := doJSON(t, app, "GET", "/items/"+id, nil)
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, id, item["id"])
	assert.Equal(t, []any{"Alice"}, item["contributors"])

	resp, _ = doJSON(t, app, "GET", "/items/missing", nil)
	assert.Equal(t, 404, resp.StatusCode)

	resp, item = doJSON(t, app, "POST", "/items/"+id+"/review", map[string]any{"flaggedForReview": true})
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, true, item["flaggedForReview"])

	resp, body = doJSON(t, app, "GET", "/items?flagged=yes", nil)
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, float64(1), body["count"])

	resp, body = doJSON(t, app, "GET", "/items?flagged=off", nil)
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, float64(0), body["count"])

	resp, _ = doJSON(t, app, "POST", "/items/"+id+"/review", map[string]any{"duplicateOf": "missing"})
	assert.Equal(t, 400, resp.StatusCode)

	resp, _ = doJSON(t, app, "POST", "/items/missing/review", map[string]any{"flaggedForReview": true})
	assert.Equal(t, 404, resp.StatusCode)
}

func TestHandleDelete(t *testing.T) {
	app := setupTestApp(t)
	bearer := "Bearer " + adminToken

	_, body := doJSON(t, app, "POST", "/items", map[string]any{"raw": daggerDump + ringDump})
	id := firstResult(t, body)["itemId"].(string)

	resp, body := doJSON(t, app, "DELETE", "/items?id="+id, nil)
	assert.Equal(t, 401, resp.StatusCode)
	assert.Equal(t, "Unauthorized", body["error"])

	resp, _ = doJSON(t, app, "DELETE", "/items?id="+id, nil, "Authorization", "Bearer wrong")
	assert.Equal(t, 401, resp.StatusCode)

	resp, body = doJSON(t, app, "DELETE", "/items", nil, "Authorization", bearer)
	assert.Equal(t, 400, resp.StatusCode)
	assert.Equal(t, "id is required to delete an item (or set all=true to wipe)", body["error"])

	resp, body = doJSON(t, app, "DELETE", "/items?id="+id, nil, "Authorization", bearer)
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, true, body["deleted"])

	resp, _ = doJSON(t, app, "DELETE", "/items?id="+id, nil, "Authorization", bearer)
	assert.Equal(t, 404, resp.StatusCode)

	resp, body = doJSON(t, app, "DELETE", "/items?all=true", nil, "Authorization", bearer)
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, float64(1), body["count"])
}

func TestHandleContributor(t *testing.T) {
	app := setupTestApp(t)

	doJSON(t, app, "POST", "/items", map[string]any{"raw": daggerDump, "submittedBy": "Alice"})

	resp, body := doJSON(t, app, "GET", "/contributors/ALICE", nil)
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "Alice", body["name"])
	assert.Equal(t, float64(1), body["submissionCount"])

	resp, _ = doJSON(t, app, "GET", "/contributors/nobody", nil)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestHandleIngestIgnoresSubmittedRanges(t *testing.T) {
	app := setupTestApp(t)

	resp, body := doJSON(t, app, "POST", "/items", map[string]any{"items": []any{
		map[string]any{
			"name": "a bone", "type": "trash",
			"stats": map[string]any{"weight": 3, "weightMin": 1, "weightMax": 9},
		},
	}})
	require.Equal(t, 200, resp.StatusCode)
	id := firstResult(t, body)["itemId"].(string)

	resp, item := doJSON(t, app, "GET", "/items/"+id, nil)
	require.Equal(t, 200, resp.StatusCode)
	stats := item["stats"].(map[string]any)
	assert.Equal(t, float64(3), stats["weight"])
	assert.Equal(t, float64(3), stats["weightMin"])
	assert.Equal(t, float64(3), stats["weightMax"])
}

func TestHandleIngestCreditsItemSubmitter(t *testing.T) {
	app := setupTestApp(t)

	resp, _ := doJSON(t, app, "POST", "/items", map[string]any{"items": []any{
		map[string]any{"name": "a bone", "type": "trash", "owner": "Bob"},
	}})
	require.Equal(t, 200, resp.StatusCode)

	resp, body := doJSON(t, app, "GET", "/contributors/bob", nil)
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "Bob", body["name"])
	assert.Equal(t, float64(1), body["submissionCount"])
}

func TestHandleInvalidate(t *testing.T) {
	app := setupTestApp(t)

	doJSON(t, app, "POST", "/items", map[string]any{"raw": daggerDump})
	resp, _ := doJSON(t, app, "GET", "/items", nil)
	assert.Equal(t, "MISS", resp.Header.Get("X-Cache"))
	resp, _ = doJSON(t, app, "GET", "/items", nil)
	assert.Equal(t, "HIT", resp.Header.Get("X-Cache"))

	resp, _ = doJSON(t, app, "POST", "/items/invalidate", nil)
	assert.Equal(t, 401, resp.StatusCode)
	resp, _ = doJSON(t, app, "GET", "/items", nil)
	assert.Equal(t, "HIT", resp.Header.Get("X-Cache"))

	resp, body := doJSON(t, app, "POST", "/items/invalidate", nil, "Authorization", "Bearer "+adminToken)
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, true, body["cleared"])

	resp, _ = doJSON(t, app, "GET", "/items", nil)
	assert.Equal(t, "MISS", resp.Header.Get("X-Cache"))
}
