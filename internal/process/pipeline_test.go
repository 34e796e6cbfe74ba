package process

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"financeingest/internal/ingest"
	"financeingest/internal/ratelimit"
	"financeingest/internal/testutil"
)

// TestPipeline_PullThenReact drives both pipelines back to back the way
// production runs them: the puller writes raw objects, then each written key
// is delivered to the processor as an object-created notification.
func TestPipeline_PullThenReact(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Query().Get("symbol") != "":
			io.WriteString(w, `[
				{"symbol": "AAPL", "date": "2024-01-01", "revenue": 1000, "netIncome": 250, "currency": "USD"},
				{"symbol": "AAPL", "date": "2023-10-01", "revenue": 900, "netIncome": 0, "currency": "USD"}
			]`)
		default:
			io.WriteString(w, `[{"index": "SPX", "date": "2024-01-01", "open": 4700, "close": 4747, "volume": 2000000}]`)
		}
	}))
	defer server.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := testutil.NewMemStore()

	ingestor := ingest.New(server.URL, "test-key", store, rawBucket, rawPrefix, ratelimit.Unlimited(), logger)
	keys := ingestor.RunDailyIngestion(context.Background(), []string{"AAPL"}, []string{"SPX"})
	require.Len(t, keys, 2)

	event := Event{}
	for _, key := range keys {
		event.Records = append(event.Records, Notification{Bucket: rawBucket, Key: key})
	}

	processor := newTestProcessor(store)
	resp, err := processor.Handle(context.Background(), event)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	// Path symmetry: each processed key mirrors its raw key's trailing
	// data_type/date/filename triple under the processed prefix
	for _, rawKey := range keys {
		processedKey := processedPrefix + rawKey[len(rawPrefix):]
		body, ok := store.Object(processedBucket, processedKey)
		require.True(t, ok, "missing processed object for %s", rawKey)

		// The quarterly record with zero net income was filtered out, so
		// both payloads normalize down to a single record
		var records []map[string]any
		require.NoError(t, json.Unmarshal(body, &records))
		require.Len(t, records, 1)
	}
}
