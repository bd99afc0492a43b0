package handlers

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	socketio "github.com/googollee/go-socket.io"
	"github.com/googollee/go-socket.io/engineio"
	"github.com/googollee/go-socket.io/engineio/transport"
	"github.com/googollee/go-socket.io/engineio/transport/polling"
	"github.com/googollee/go-socket.io/engineio/transport/websocket"
	"go.uber.org/zap"
)

// PanelSocket fans session events out to admin panel clients over Socket.IO.
// Clients join one room per chat after presenting a socket token.
type PanelSocket struct {
	Server    *socketio.Server
	jwtSecret string
}

// InitializePanelSocket initializes the Socket.IO server for panel clients
func InitializePanelSocket(jwtSecret string) *PanelSocket {
	p := &PanelSocket{jwtSecret: jwtSecret}

	server := socketio.NewServer(&engineio.Options{
		Transports: []transport.Transport{
			polling.Default,
			websocket.Default,
		},
	})

	server.OnConnect("/", func(s socketio.Conn) error {
		s.SetContext("")
		zap.S().Debugw("panel client connected", "socket_id", s.ID())
		return nil
	})

	server.OnError("/", func(s socketio.Conn, e error) {
		zap.S().Warnw("panel socket error", "error", e)
	})

	server.OnDisconnect("/", func(s socketio.Conn, reason string) {
		zap.S().Debugw("panel client disconnected", "socket_id", s.ID(), "reason", reason)
	})

	server.OnEvent("/", "panel:join", func(s socketio.Conn, msg map[string]interface{}) {
		token, _ := msg["token"].(string)
		chatID, err := p.verifySocketToken(token)
		if err != nil {
			zap.S().Warnw("panel join rejected", "socket_id", s.ID(), "error", err)
			s.Emit("panel:error", map[string]interface{}{"error": "invalid socket token"})
			return
		}
		room := chatRoom(chatID)
		s.Join(room)
		zap.S().Infow("panel client joined room", "socket_id", s.ID(), "room", room)
		s.Emit("panel:joined", map[string]interface{}{"room": room})
	})

	server.OnEvent("/", "panel:leave", func(s socketio.Conn, msg map[string]interface{}) {
		chatID, ok := msg["chatId"].(float64)
		if ok {
			s.Leave(chatRoom(int(chatID)))
		}
	})

	go func() {
		if err := server.Serve(); err != nil {
			zap.S().Fatalw("panel socket server error", "error", err)
		}
	}()

	p.Server = server
	return p
}

// Notify broadcasts a session event to every panel client watching the chat.
func (p *PanelSocket) Notify(chatID int, event string, data interface{}) {
	if p.Server == nil {
		return
	}
	p.Server.BroadcastToRoom("/", chatRoom(chatID), event, data)
}

// Close shuts the underlying Socket.IO server down.
func (p *PanelSocket) Close() error {
	if p.Server == nil {
		return nil
	}
	return p.Server.Close()
}

func (p *PanelSocket) verifySocketToken(raw string) (int, error) {
	if raw == "" {
		return 0, fmt.Errorf("missing token")
	}
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(p.jwtSecret), nil
	})
	if err != nil {
		return 0, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, fmt.Errorf("invalid token claims")
	}
	if typ, _ := claims["typ"].(string); typ != "socket" {
		return 0, fmt.Errorf("wrong token type")
	}
	chatID, ok := claims["chatId"].(float64)
	if !ok {
		return 0, fmt.Errorf("token missing chatId")
	}
	return int(chatID), nil
}

func chatRoom(chatID int) string {
	return fmt.Sprintf("chat:%d", chatID)
}
