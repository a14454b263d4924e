package engine

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/vk/latentgrid/internal/ctxlog"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// Queue item statuses reported over the event stream.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusCanceled  = "canceled"
)

const (
	statusEvent    = "queue_item_status_changed"
	connectTimeout = 15 * time.Second
)

// statusPayload is the body of a queue_item_status_changed event.
type statusPayload struct {
	ItemID string `json:"item_id"`
	Status string `json:"status"`
	Error  string `json:"error"`
}

// Watch connects to the engine's socket.io stream and blocks until the given
// queue item reaches a terminal status, the context is cancelled, or the
// connection cannot be established.
func (c *Client) Watch(ctx context.Context, itemID string) error {
	logger := ctxlog.FromContext(ctx).With("item_id", itemID)

	parsedURL, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("failed to parse engine URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return fmt.Errorf("engine URL %q has no scheme or host", c.baseURL)
	}

	opts := socket.DefaultOptions()
	opts.SetTransports(types.NewSet(transports.WebSocket))

	connectChan := make(chan error, 1)
	doneChan := make(chan error, 1)

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket("/", opts)

	io.Once(types.EventName("connect"), func(...any) {
		logger.Debug("Connected to engine event stream.", "sid", io.Id())
		connectChan <- nil
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		err, ok := errs[0].(error)
		if !ok {
			err = fmt.Errorf("connect_error: %v", errs[0])
		}
		connectChan <- err
	})

	io.On(types.EventName(statusEvent), statusHandler(logger, itemID, doneChan))

	io.Connect()
	defer io.Disconnect()

	select {
	case err := <-connectChan:
		if err != nil {
			return fmt.Errorf("engine event stream connection failed: %w", err)
		}
	case <-ctx.Done():
		return fmt.Errorf("context cancelled while connecting to engine event stream")
	case <-time.After(connectTimeout):
		return fmt.Errorf("timed out after %s waiting for engine event stream", connectTimeout)
	}

	select {
	case err := <-doneChan:
		return err
	case <-ctx.Done():
		return fmt.Errorf("context cancelled while waiting for generation: %w", ctx.Err())
	}
}

// statusHandler builds the queue_item_status_changed callback for one queue
// item. Only the first terminal event for the item is reported; the send
// never blocks the socket.io callback goroutine, even when a repeat terminal
// event arrives or Watch has already returned.
func statusHandler(logger *slog.Logger, itemID string, doneChan chan<- error) func(args ...any) {
	return func(args ...any) {
		payload, err := decodeStatus(args)
		if err != nil {
			logger.Warn("Dropping malformed status event.", "error", err)
			return
		}
		if payload.ItemID != itemID {
			return
		}
		logger.Debug("Status changed.", "status", payload.Status)
		result, terminal := terminalResult(payload)
		if !terminal {
			return
		}
		select {
		case doneChan <- result:
		default:
		}
	}
}

// terminalResult maps a status payload to Watch's return value. Non-terminal
// statuses report terminal=false and are ignored by the caller.
func terminalResult(p statusPayload) (result error, terminal bool) {
	switch p.Status {
	case StatusCompleted:
		return nil, true
	case StatusFailed:
		return fmt.Errorf("generation failed: %s", p.Error), true
	case StatusCanceled:
		return fmt.Errorf("generation canceled"), true
	}
	return nil, false
}

// decodeStatus pulls a status payload out of a socket.io event argument list.
func decodeStatus(args []any) (statusPayload, error) {
	var p statusPayload
	if len(args) == 0 {
		return p, fmt.Errorf("event carried no payload")
	}
	fields, ok := args[0].(map[string]any)
	if !ok {
		return p, fmt.Errorf("unexpected payload type %T", args[0])
	}
	if v, ok := fields["item_id"].(string); ok {
		p.ItemID = v
	}
	if v, ok := fields["status"].(string); ok {
		p.Status = v
	}
	if v, ok := fields["error"].(string); ok {
		p.Error = v
	}
	if p.ItemID == "" || p.Status == "" {
		return p, fmt.Errorf("payload missing item_id or status")
	}
	return p, nil
}
