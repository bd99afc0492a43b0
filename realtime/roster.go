package realtime

import (
	"sync"
	"time"

	"github.com/natan-gtecnologia/admin-panel-sub000/models"
)

// Roster is the single authoritative chat-room membership set, keyed by
// participant id. The bootstrap snapshot is the initial population and every
// live join event is an upsert into the same map; block and unblock are field
// mutations on the existing entry, never a separate filtered view.
type Roster struct {
	mu        sync.RWMutex
	entries   map[int]*models.Participant
	order     []int
	synthetic int
}

// NewRoster seeds the roster from the bootstrap snapshot, preserving its
// order for listing.
func NewRoster(snapshot []models.Participant) *Roster {
	r := &Roster{
		entries: make(map[int]*models.Participant, len(snapshot)),
	}
	for i := range snapshot {
		p := snapshot[i]
		if _, ok := r.entries[p.ID]; !ok {
			r.order = append(r.order, p.ID)
		}
		r.entries[p.ID] = &p
	}
	return r
}

// ApplyPresence folds a live join event into the roster. When the event
// carries a participant id it upserts that entry; otherwise a synthetic
// negative id is allocated so the join still shows up exactly once.
func (r *Roster) ApplyPresence(ev models.PresenceEvent, at time.Time) models.Participant {
	id, user := presenceIdentity(ev)

	r.mu.Lock()
	defer r.mu.Unlock()

	if id == 0 {
		r.synthetic--
		id = r.synthetic
	}

	if existing, ok := r.entries[id]; ok {
		existing.IsOnline = true
		if existing.ChatUser.FirstName == "" {
			existing.ChatUser.FirstName = ev.FirstName
		}
		return *existing
	}

	joined := at
	p := &models.Participant{
		ID:       id,
		JoinedAt: &joined,
		IsOnline: true,
		ChatUser: user,
	}
	if p.ChatUser.FirstName == "" {
		p.ChatUser.FirstName = ev.FirstName
	}
	r.entries[id] = p
	r.order = append(r.order, id)
	return *p
}

// presenceIdentity digs the participant identity out of the untyped chat
// payload carried by a join event. Zero id means the payload had none.
func presenceIdentity(ev models.PresenceEvent) (int, models.ChatUser) {
	var user models.ChatUser

	payload, ok := ev.Chat.(map[string]interface{})
	if !ok {
		return 0, user
	}

	id := 0
	if raw, ok := payload["id"].(float64); ok {
		id = int(raw)
	}

	if profile, ok := payload["chat_user"].(map[string]interface{}); ok {
		if raw, ok := profile["id"].(float64); ok {
			user.ID = int(raw)
		}
		if s, ok := profile["firstName"].(string); ok {
			user.FirstName = s
		}
		if s, ok := profile["lastName"].(string); ok {
			user.LastName = s
		}
		if s, ok := profile["email"].(string); ok {
			user.Email = s
		}
		if s, ok := profile["socketId"].(string); ok {
			user.SocketID = s
		}
	}

	return id, user
}

// SetBlocked flips the blocked flag on an existing entry. Returns the
// updated participant and whether the id was known.
func (r *Roster) SetBlocked(id int, blocked bool, at time.Time) (models.Participant, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.entries[id]
	if !ok {
		return models.Participant{}, false
	}
	p.Blocked = blocked
	if blocked {
		blockedAt := at
		p.BlockedAt = &blockedAt
	} else {
		p.BlockedAt = nil
	}
	return *p, true
}

// Get returns the participant for the given id
func (r *Roster) Get(id int) (models.Participant, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.entries[id]
	if !ok {
		return models.Participant{}, false
	}
	return *p, true
}

// List returns the roster in stable order: snapshot order first, then live
// joins in arrival order.
func (r *Roster) List() []models.Participant {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Participant, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.entries[id])
	}
	return out
}

// Len returns the roster size
func (r *Roster) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
