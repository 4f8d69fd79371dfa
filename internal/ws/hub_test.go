package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestHubPushReachesConnectedUser(t *testing.T) {
	hub := NewHub("test", nil)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.ServeWS(w, r, r.URL.Query().Get("user"))
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "?user=u1"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for !hub.Connected("u1") {
		if time.Now().After(deadline) {
			t.Fatal("user never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	hub.Push("u1", map[string]string{"type": "hello"})
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var got map[string]string
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got["type"] != "hello" {
		t.Fatalf("unexpected payload %v", got)
	}
}

func TestHubRejectsAnonymous(t *testing.T) {
	hub := NewHub("test", nil)
	rec := httptest.NewRecorder()
	hub.ServeWS(rec, httptest.NewRequest(http.MethodGet, "/ws", nil), "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestPushWithoutConnectionIsNoop(t *testing.T) {
	hub := NewHub("test", nil)
	hub.Push("nobody", map[string]string{"a": "b"})
	if hub.Connected("nobody") {
		t.Fatal("expected no connection")
	}
}
