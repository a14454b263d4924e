package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/vk/latentgrid/internal/ctxlog"
	"github.com/vk/latentgrid/internal/graph"
	"resty.dev/v3"
)

const enqueuePath = "/api/v1/queue/enqueue"

// EnqueueRequest is the submission envelope: a batch id, the wire-format
// graph, and the number of runs (the prompt-variant batch multiplier).
type EnqueueRequest struct {
	BatchID string       `json:"batch_id"`
	Graph   *graph.Graph `json:"graph"`
	Runs    int          `json:"runs"`
}

// EnqueueResponse is the engine's acknowledgement of a queued batch.
type EnqueueResponse struct {
	ItemID string `json:"item_id"`
	Status string `json:"status"`
}

// Client talks to one engine instance.
type Client struct {
	baseURL string
	http    *resty.Client
}

// NewClient creates a client for the engine at the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    resty.New().SetBaseURL(baseURL),
	}
}

// Close releases the underlying HTTP client resources.
func (c *Client) Close() error {
	return c.http.Close()
}

// Enqueue submits an assembled graph for execution. Runs below one are
// submitted as a single run.
func (c *Client) Enqueue(ctx context.Context, g *graph.Graph, runs int) (*EnqueueResponse, error) {
	logger := ctxlog.FromContext(ctx)
	if runs < 1 {
		runs = 1
	}

	body := EnqueueRequest{
		BatchID: uuid.NewString(),
		Graph:   g,
		Runs:    runs,
	}
	logger.Debug("Enqueueing graph...", "graph_id", g.ID, "batch_id", body.BatchID, "runs", runs)

	var ack EnqueueResponse
	res, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&ack).
		Post(enqueuePath)
	if err != nil {
		return nil, fmt.Errorf("failed to enqueue graph: %w", err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("engine rejected graph %s: %s: %s", g.ID, res.Status(), res.String())
	}
	if ack.ItemID == "" {
		return nil, fmt.Errorf("engine acknowledged graph %s without an item id", g.ID)
	}

	logger.Info("Graph enqueued.", "graph_id", g.ID, "item_id", ack.ItemID, "status", ack.Status)
	return &ack, nil
}
