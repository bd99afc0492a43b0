package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/natan-gtecnologia/admin-panel-sub000/api"
	"github.com/natan-gtecnologia/admin-panel-sub000/cms"
	"github.com/natan-gtecnologia/admin-panel-sub000/config"
	"github.com/natan-gtecnologia/admin-panel-sub000/databases"
	"github.com/natan-gtecnologia/admin-panel-sub000/realtime"
)

// LiveSession struct mostly used for mocking tests
type LiveSession struct {
	Manager  *realtime.Manager
	Audit    databases.ModerationEventDatabase
	Validate *validator.Validate
}

type sendMessageRequest struct {
	Message string `json:"message" validate:"required"`
}

// OpenSessionHandler bootstraps the livestream and opens its moderation
// session. Reopening an already-open session returns the running one.
func (l LiveSession) OpenSessionHandler(w http.ResponseWriter, r *http.Request) {
	sessionUUID := mux.Vars(r)["uuid"]
	if _, err := uuid.Parse(sessionUUID); err != nil {
		config.ErrorStatus("invalid live stream uuid", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	session, err := l.Manager.Open(ctx, sessionUUID)
	if err != nil {
		if errors.Is(err, cms.ErrNoChatRoom) {
			config.ErrorStatus("live stream has no chat", http.StatusNotFound, w, err)
			return
		}
		config.ErrorStatus("failed to open moderation session", http.StatusNotFound, w, err)
		return
	}

	b, err := json.Marshal(session.Status())
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// SessionStatusHandler reports the state of an open moderation session
func (l LiveSession) SessionStatusHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := l.session(w, r)
	if !ok {
		return
	}

	b, err := json.Marshal(session.Status())
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// CloseSessionHandler tears the moderation session down
func (l LiveSession) CloseSessionHandler(w http.ResponseWriter, r *http.Request) {
	sessionUUID := mux.Vars(r)["uuid"]

	if err := l.Manager.Close(r.Context(), sessionUUID); err != nil {
		config.ErrorStatus("failed to close moderation session", http.StatusNotFound, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"closed": "` + sessionUUID + `"}`))
}

// SessionMessagesHandler returns the transcript: persisted history first,
// then live events in arrival order
func (l LiveSession) SessionMessagesHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := l.session(w, r)
	if !ok {
		return
	}

	b, err := json.Marshal(session.Messages())
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// SendMessageHandler emits a system-authored message into the chat. Delivery
// is fire-and-forget; an empty body is rejected before anything is emitted.
func (l LiveSession) SendMessageHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := l.session(w, r)
	if !ok {
		return
	}

	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if err := l.Validate.Struct(req); err != nil {
		config.ErrorStatus("invalid message payload", http.StatusUnprocessableEntity, w, err)
		return
	}

	if err := session.SendMessage(r.Context(), req.Message); err != nil {
		if errors.Is(err, realtime.ErrEmptyMessage) {
			config.ErrorStatus("message body is empty", http.StatusUnprocessableEntity, w, err)
			return
		}
		config.ErrorStatus("failed to send message", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"sent": true}`))
}

// SessionParticipantsHandler returns the reconciled roster
func (l LiveSession) SessionParticipantsHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := l.session(w, r)
	if !ok {
		return
	}

	b, err := json.Marshal(session.Participants())
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// BlockParticipantHandler emits a block intent for a participant and flips
// the roster entry
func (l LiveSession) BlockParticipantHandler(w http.ResponseWriter, r *http.Request) {
	l.setBlocked(w, r, true)
}

// UnblockParticipantHandler reverses a block
func (l LiveSession) UnblockParticipantHandler(w http.ResponseWriter, r *http.Request) {
	l.setBlocked(w, r, false)
}

func (l LiveSession) setBlocked(w http.ResponseWriter, r *http.Request, blocked bool) {
	session, ok := l.session(w, r)
	if !ok {
		return
	}

	participantID, err := strconv.Atoi(mux.Vars(r)["participant_id"])
	if err != nil {
		config.ErrorStatus("invalid participant id", http.StatusBadRequest, w, err)
		return
	}

	var participant interface{}
	if blocked {
		participant, err = session.BlockUser(r.Context(), participantID)
	} else {
		participant, err = session.UnblockUser(r.Context(), participantID)
	}
	if err != nil {
		config.ErrorStatus("participant not found", http.StatusNotFound, w, err)
		return
	}

	b, err := json.Marshal(participant)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// SessionAuditHandler pages through the moderation audit log for a session
func (l LiveSession) SessionAuditHandler(w http.ResponseWriter, r *http.Request) {
	sessionUUID := mux.Vars(r)["uuid"]

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 50
	}
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page <= 0 {
		page = 1
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	events, err := l.Audit.FindBySessionUUID(ctx, sessionUUID, limit, page)
	if err != nil {
		config.ErrorStatus("failed to get audit events", http.StatusInternalServerError, w, err)
		return
	}
	total, err := l.Audit.CountBySessionUUID(ctx, sessionUUID)
	if err != nil {
		config.ErrorStatus("failed to count audit events", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(map[string]interface{}{
		"events": events,
		"total":  total,
		"limit":  limit,
		"page":   page,
	})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

func (l LiveSession) session(w http.ResponseWriter, r *http.Request) (*realtime.Session, bool) {
	sessionUUID := mux.Vars(r)["uuid"]
	session, ok := l.Manager.Get(sessionUUID)
	if !ok {
		config.ErrorStatus("no open session for live stream", http.StatusNotFound, w, realtime.ErrSessionNotFound)
		return nil, false
	}
	return session, true
}
