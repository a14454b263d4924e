package engine

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/latentgrid/internal/graph"
)

func sampleGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New("t2i-test")
	require.NoError(t, g.AddNode(graph.NodeNoise, &graph.NoiseNode{Seed: 1, Width: 512, Height: 512}))
	return g
}

func TestEnqueue(t *testing.T) {
	var got EnqueueRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, enqueuePath, r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"item_id":"item-1","status":"pending"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	defer c.Close()

	ack, err := c.Enqueue(context.Background(), sampleGraph(t), 3)
	require.NoError(t, err)
	assert.Equal(t, "item-1", ack.ItemID)
	assert.Equal(t, "pending", ack.Status)

	assert.NotEmpty(t, got.BatchID)
	assert.Equal(t, 3, got.Runs)
	require.NotNil(t, got.Graph)
	assert.Equal(t, "t2i-test", got.Graph.ID)
	assert.True(t, got.Graph.HasNode(graph.NodeNoise))
}

func TestEnqueueClampsRuns(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req EnqueueRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 1, req.Runs)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"item_id":"item-1","status":"pending"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	defer c.Close()

	_, err := c.Enqueue(context.Background(), sampleGraph(t), 0)
	require.NoError(t, err)
}

func TestEnqueueEngineError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"invalid graph"}`, http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	defer c.Close()

	_, err := c.Enqueue(context.Background(), sampleGraph(t), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "engine rejected graph")
}

func TestEnqueueMissingItemID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"pending"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	defer c.Close()

	_, err := c.Enqueue(context.Background(), sampleGraph(t), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "without an item id")
}

func TestEnqueueConnectionRefused(t *testing.T) {
	c := NewClient("http://127.0.0.1:1")
	defer c.Close()

	_, err := c.Enqueue(context.Background(), sampleGraph(t), 1)
	require.Error(t, err)
}

func TestWatchRejectsBadURL(t *testing.T) {
	c := NewClient("not a url")
	defer c.Close()

	err := c.Watch(context.Background(), "item-1")
	require.Error(t, err)
}

func TestDecodeStatus(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		p, err := decodeStatus([]any{map[string]any{
			"item_id": "item-1",
			"status":  "failed",
			"error":   "out of memory",
		}})
		require.NoError(t, err)
		assert.Equal(t, statusPayload{ItemID: "item-1", Status: "failed", Error: "out of memory"}, p)
	})

	t.Run("empty args", func(t *testing.T) {
		_, err := decodeStatus(nil)
		require.Error(t, err)
	})

	t.Run("wrong payload type", func(t *testing.T) {
		_, err := decodeStatus([]any{"completed"})
		require.Error(t, err)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := decodeStatus([]any{map[string]any{"status": "completed"}})
		require.Error(t, err)
	})
}

func statusArgs(itemID, status, errText string) []any {
	return []any{map[string]any{
		"item_id": itemID,
		"status":  status,
		"error":   errText,
	}}
}

func TestTerminalResult(t *testing.T) {
	result, terminal := terminalResult(statusPayload{Status: StatusCompleted})
	assert.True(t, terminal)
	assert.NoError(t, result)

	result, terminal = terminalResult(statusPayload{Status: StatusFailed, Error: "out of memory"})
	assert.True(t, terminal)
	require.Error(t, result)
	assert.Contains(t, result.Error(), "out of memory")

	result, terminal = terminalResult(statusPayload{Status: StatusCanceled})
	assert.True(t, terminal)
	require.Error(t, result)

	_, terminal = terminalResult(statusPayload{Status: "in_progress"})
	assert.False(t, terminal)
}

func TestStatusHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("reports first terminal event", func(t *testing.T) {
		doneChan := make(chan error, 1)
		handler := statusHandler(logger, "item-1", doneChan)

		handler(statusArgs("item-1", "in_progress", "")...)
		handler(statusArgs("other-item", StatusFailed, "not ours")...)
		handler(statusArgs("item-1", StatusCompleted, "")...)

		assert.NoError(t, <-doneChan)
	})

	t.Run("repeat terminal event does not block", func(t *testing.T) {
		doneChan := make(chan error, 1)
		handler := statusHandler(logger, "item-1", doneChan)

		handler(statusArgs("item-1", StatusFailed, "boom")...)
		// With nothing draining the channel, a second terminal event must
		// return instead of hanging the callback goroutine.
		handler(statusArgs("item-1", StatusCompleted, "")...)

		err := <-doneChan
		require.Error(t, err)
		assert.Contains(t, err.Error(), "boom")
	})
}
