package client

import (
	"context"
	"crypto/rand"
	"io"
	"net/http"
	"net/url"
	"sync"
)

const (
	roomCodeAlphabet  = "0123456789abcdefghijklmnopqrstuvwxyz"
	roomCodeLength    = 9
	// Bytes at or above this would map unevenly onto the alphabet.
	roomCodeByteLimit = 256 - 256%len(roomCodeAlphabet)
)

// NewRoomCode returns a random nine character room name, every character
// drawn uniformly from [0-9a-z].
func NewRoomCode() string {
	code, err := roomCodeFrom(rand.Reader)
	if err != nil {
		panic("client: crypto/rand failed: " + err.Error())
	}
	return code
}

func roomCodeFrom(r io.Reader) (string, error) {
	code := make([]byte, 0, roomCodeLength)
	buf := make([]byte, roomCodeLength*2)
	for len(code) < roomCodeLength {
		if _, err := io.ReadFull(r, buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if int(b) >= roomCodeByteLimit {
				continue
			}
			code = append(code, roomCodeAlphabet[int(b)%len(roomCodeAlphabet)])
			if len(code) == roomCodeLength {
				break
			}
		}
	}
	return string(code), nil
}

func (c *Client) RoomToken(ctx context.Context, identity, room string) (string, error) {
	var resp roomTokenResponse
	query := url.Values{"identity": []string{identity}, "room": []string{room}}
	if _, err := c.do(ctx, http.MethodGet, "/room", query, nil, &resp, "Failed to get video token"); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// VideoSession fetches the room credential once and hands the same value to
// every reconnect attempt. A failed fetch is not cached.
type VideoSession struct {
	client   *Client
	identity string
	room     string

	mu    sync.Mutex
	token string
}

func (c *Client) NewVideoSession(identity, room string) *VideoSession {
	return &VideoSession{client: c, identity: identity, room: room}
}

func (s *VideoSession) Room() string {
	return s.room
}

func (s *VideoSession) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != "" {
		return s.token, nil
	}

	token, err := s.client.RoomToken(ctx, s.identity, s.room)
	if err != nil {
		return "", err
	}
	s.token = token
	return token, nil
}
