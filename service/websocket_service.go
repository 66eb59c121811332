package service

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/tieubaoca/roskai-be/types"
	"go.uber.org/zap"
)

// WebsocketService relays message-only chat over a websocket. Replies are
// sent whole, there is no token streaming.
type WebsocketService struct {
	chat     *ChatService
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

func NewWebsocketService(chat *ChatService, logger *zap.Logger) *WebsocketService {
	return &WebsocketService{
		chat:   chat,
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins (adjust for production)
			},
		},
	}
}

func (s *WebsocketService) HandleChat(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	conn.SetReadLimit(512 * 1024) // 512KB max message size
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, p, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				s.logger.Warn("websocket read error", zap.Error(err))
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))

		var req types.WebsocketRequest
		if err := json.Unmarshal(p, &req); err != nil {
			s.writeError(conn, "Không thể đọc yêu cầu.")
			continue
		}

		switch req.Type {
		case types.TypeWebsocketPing:
			s.writeJSON(conn, types.WebsocketResponse{Type: types.TypeWebsocketPong})
		case types.TypeWebsocketChat:
			s.handleChatMessage(r, conn, req.Payload)
		default:
			s.writeError(conn, "Loại tin nhắn không hợp lệ.")
		}
	}
}

func (s *WebsocketService) handleChatMessage(r *http.Request, conn *websocket.Conn, rawPayload interface{}) {
	payloadBytes, err := json.Marshal(rawPayload)
	if err != nil {
		s.writeError(conn, "Không thể đọc yêu cầu.")
		return
	}
	var payload types.WebsocketChatPayload
	if err := json.Unmarshal(payloadBytes, &payload); err != nil {
		s.writeError(conn, "Không thể đọc yêu cầu.")
		return
	}

	result, err := s.chat.Chat(r.Context(), ChatInput{
		Message:      payload.Message,
		ThinkingMode: payload.ThinkingMode,
		SessionID:    payload.SessionID,
	})
	if err != nil {
		if errors.Is(err, ErrEmptyRequest) {
			s.writeError(conn, EmptyRequestMessage)
			return
		}
		s.logger.Error("websocket generation failed", zap.Error(err))
		s.writeError(conn, UserMessage(err))
		return
	}

	s.writeJSON(conn, types.WebsocketResponse{
		Type: types.TypeWebsocketChat,
		Payload: types.WebsocketChatResponse{
			Response:  result.Reply,
			SessionID: result.SessionID,
		},
	})
}

func (s *WebsocketService) writeError(conn *websocket.Conn, msg string) {
	s.writeJSON(conn, types.WebsocketResponse{
		Type:    types.TypeWebsocketError,
		Payload: types.WebsocketErrorResponse{Error: msg},
	})
}

func (s *WebsocketService) writeJSON(conn *websocket.Conn, v interface{}) {
	if err := conn.WriteJSON(v); err != nil {
		s.logger.Warn("websocket write error", zap.Error(err))
	}
}
