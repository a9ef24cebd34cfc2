package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	http_common "github.com/humanbelnik/kinoswap/matchroom/internal/delivery/http/common"
	http_room "github.com/humanbelnik/kinoswap/matchroom/internal/delivery/http/room"
	http_swipe "github.com/humanbelnik/kinoswap/matchroom/internal/delivery/http/swipe"
	ws_room "github.com/humanbelnik/kinoswap/matchroom/internal/delivery/ws/room"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Status, http.StatusText(e.Status), e.Message)
}

// Client talks to one server as one participant. The token is taken from the
// first response that mints it and sent on every later request.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) Token() string {
	return c.token
}

func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) Genres(ctx context.Context) ([]string, error) {
	var out http_room.GenresDTO
	if err := c.do(ctx, http.MethodGet, "/genres", nil, &out); err != nil {
		return nil, err
	}
	return out.Genres, nil
}

func (c *Client) CreateRoom(ctx context.Context, genre string) (http_room.RoomDTO, error) {
	var out http_room.RoomDTO
	err := c.do(ctx, http.MethodPost, "/rooms", http_room.CreateRequestDTO{Genre: genre}, &out)
	return out, err
}

func (c *Client) JoinRoom(ctx context.Context, code string) (http_room.RoomDTO, error) {
	var out http_room.RoomDTO
	err := c.do(ctx, http.MethodPost, "/rooms/join", http_room.JoinRequestDTO{Code: code}, &out)
	return out, err
}

func (c *Client) Current(ctx context.Context) (http_room.StateDTO, error) {
	var out http_room.StateDTO
	err := c.do(ctx, http.MethodGet, "/rooms/current", nil, &out)
	return out, err
}

func (c *Client) State(ctx context.Context, roomID string) (http_room.StateDTO, error) {
	var out http_room.StateDTO
	err := c.do(ctx, http.MethodGet, "/rooms/"+roomID, nil, &out)
	return out, err
}

func (c *Client) Deck(ctx context.Context, roomID string) ([]http_room.MovieDTO, error) {
	var out []http_room.MovieDTO
	err := c.do(ctx, http.MethodGet, "/rooms/"+roomID+"/deck", nil, &out)
	return out, err
}

func (c *Client) Swipe(ctx context.Context, roomID, movieID, decision string) (http_swipe.SwipeDTO, error) {
	var out http_swipe.SwipeDTO
	req := http_swipe.SwipeRequestDTO{MovieID: movieID, Decision: decision}
	err := c.do(ctx, http.MethodPost, "/rooms/"+roomID+"/swipes", req, &out)
	return out, err
}

func (c *Client) History(ctx context.Context, roomID string) ([]http_swipe.SwipeDTO, error) {
	var out []http_swipe.SwipeDTO
	err := c.do(ctx, http.MethodGet, "/rooms/"+roomID+"/swipes", nil, &out)
	return out, err
}

func (c *Client) Matches(ctx context.Context, roomID string) ([]http_swipe.MatchDTO, error) {
	var out []http_swipe.MatchDTO
	err := c.do(ctx, http.MethodGet, "/rooms/"+roomID+"/matches", nil, &out)
	return out, err
}

func (c *Client) Leave(ctx context.Context, roomID string) (http_room.RoomDTO, error) {
	var out http_room.RoomDTO
	err := c.do(ctx, http.MethodPost, "/rooms/"+roomID+"/leave", nil, &out)
	return out, err
}

// Stream opens the room websocket and calls handle for every message until the
// room closes, the server hangs up or ctx is done.
func (c *Client) Stream(ctx context.Context, roomID string, handle func(ws_room.Message)) error {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	u.Scheme = strings.Replace(u.Scheme, "http", "ws", 1)
	u.Path += "/rooms/" + roomID + "/ws"
	u.RawQuery = url.Values{"token": {c.token}}.Encode()

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return fmt.Errorf("websocket connection failed: %w", err)
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	for {
		var msg ws_room.Message
		if err := conn.ReadJSON(&msg); err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return nil
			}
			return err
		}
		handle(msg)
	}
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set(http_common.TokenHeader, c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if token := resp.Header.Get(http_common.TokenHeader); token != "" && c.token == "" {
		c.token = token
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var e http_common.ErrorResponse
		raw, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(raw, &e) != nil || e.Message == "" {
			e.Message = string(raw)
		}
		return &APIError{Status: resp.StatusCode, Message: e.Message}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
