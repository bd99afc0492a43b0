package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"

	"github.com/natan-gtecnologia/admin-panel-sub000/config"
	"github.com/natan-gtecnologia/admin-panel-sub000/models"
	"github.com/natan-gtecnologia/admin-panel-sub000/realtime"
)

// SocketToken struct mostly used for mocking tests
type SocketToken struct {
	Manager   *realtime.Manager
	JWTSecret string
}

type socketTokenResponse struct {
	Token  string `json:"token"`
	ChatID int    `json:"chatId"`
}

// SocketTokenHandler mints a short-lived token scoped to one open session's
// chat room, used by the panel to attach to the event fanout
func (s SocketToken) SocketTokenHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	sessionUUID := mux.Vars(r)["uuid"]

	session, ok := s.Manager.Get(sessionUUID)
	if !ok {
		config.ErrorStatus("no open session for live stream", http.StatusNotFound, w, realtime.ErrSessionNotFound)
		return
	}

	if s.JWTSecret == "" {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(models.ErrorResponse{
			Success: false,
			Error:   "server misconfigured",
			Code:    "MISSING_JWT_SECRET",
		})
		return
	}

	claims := jwt.MapClaims{
		"sub":    sessionUUID,
		"chatId": session.ChatID(),
		"scope":  "live-session",
		"typ":    "socket",
		"iat":    time.Now().Unix(),
		"exp":    time.Now().Add(15 * time.Minute).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.JWTSecret))
	if err != nil {
		config.ErrorStatus("token generation failed", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(socketTokenResponse{
		Token:  signed,
		ChatID: session.ChatID(),
	})
}
