package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/tieubaoca/roskai-be/types"
	"go.uber.org/zap"
)

func dialTestWebsocket(t *testing.T, ai AIService) *websocket.Conn {
	t.Helper()
	ws := NewWebsocketService(newTestChatService(ai, NewChatHistoryService(100, 0)), zap.NewNop())
	srv := httptest.NewServer(http.HandlerFunc(ws.HandleChat))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func decodePayload(t *testing.T, payload interface{}, v interface{}) {
	t.Helper()
	b, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
}

func TestWebsocket_pingPong(t *testing.T) {
	conn := dialTestWebsocket(t, &fakeAI{})

	if err := conn.WriteJSON(types.WebsocketRequest{Type: types.TypeWebsocketPing}); err != nil {
		t.Fatalf("write: %v", err)
	}
	var resp types.WebsocketResponse
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("read: %v", err)
	}
	if resp.Type != types.TypeWebsocketPong {
		t.Errorf("type = %q, want pong", resp.Type)
	}
}

func TestWebsocket_chat(t *testing.T) {
	conn := dialTestWebsocket(t, &fakeAI{replies: []string{"Chào bạn!"}})

	err := conn.WriteJSON(types.WebsocketRequest{
		Type:    types.TypeWebsocketChat,
		Payload: types.WebsocketChatPayload{Message: "hi", SessionID: "s1"},
	})
	if err != nil {
		t.Fatalf("write: %v", err)
	}

	var resp types.WebsocketResponse
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("read: %v", err)
	}
	if resp.Type != types.TypeWebsocketChat {
		t.Fatalf("type = %q, want chat", resp.Type)
	}
	var payload types.WebsocketChatResponse
	decodePayload(t, resp.Payload, &payload)
	if payload.Response != "Chào bạn!" {
		t.Errorf("response = %q", payload.Response)
	}
	if payload.SessionID != "s1" {
		t.Errorf("session_id = %q, want s1", payload.SessionID)
	}
}

func TestWebsocket_emptyChatIsError(t *testing.T) {
	conn := dialTestWebsocket(t, &fakeAI{})

	err := conn.WriteJSON(types.WebsocketRequest{
		Type:    types.TypeWebsocketChat,
		Payload: types.WebsocketChatPayload{},
	})
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	var resp types.WebsocketResponse
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("read: %v", err)
	}
	if resp.Type != types.TypeWebsocketError {
		t.Fatalf("type = %q, want error", resp.Type)
	}
	var payload types.WebsocketErrorResponse
	decodePayload(t, resp.Payload, &payload)
	if payload.Error != EmptyRequestMessage {
		t.Errorf("error = %q", payload.Error)
	}
}
