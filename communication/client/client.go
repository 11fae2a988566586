package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"madn/communication"
	"madn/game"
)

// ErrNoState is returned while the server has no snapshot to serve yet.
var ErrNoState = errors.New("no state published yet")

// Client reads from a watch server.
type Client struct {
	serverURL string
	http      *http.Client
}

// NewClient returns a client for a server listening at serverURL, e.g. http://localhost:8080.
func NewClient(serverURL string) *Client {
	return &Client{
		serverURL: strings.TrimSuffix(serverURL, "/"),
		http:      http.DefaultClient,
	}
}

func (c *Client) State(ctx context.Context) (game.State, error) {
	var st game.State
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.serverURL+communication.StatePath, nil)
	if err != nil {
		return st, fmt.Errorf("failed to create state request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return st, fmt.Errorf("failed to get state: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return st, ErrNoState
	default:
		return st, fmt.Errorf("failed to get state: %s", resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		return st, fmt.Errorf("failed to decode state: %w", err)
	}
	return st, nil
}

// Watch streams the events of the server to handle until handle returns false, the server
// closes the stream or ctx is done. A normal close by the server is not an error.
func (c *Client) Watch(ctx context.Context, handle func(communication.Event) bool) error {
	url := "ws" + strings.TrimPrefix(c.serverURL, "http") + communication.EventsPath
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", url, err)
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	for {
		var e communication.Event
		if err := conn.ReadJSON(&e); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return nil
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("failed to read event: %w", err)
		}
		if !handle(e) {
			return nil
		}
	}
}
