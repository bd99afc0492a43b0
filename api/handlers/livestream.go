package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/natan-gtecnologia/admin-panel-sub000/api"
	"github.com/natan-gtecnologia/admin-panel-sub000/config"
	"github.com/natan-gtecnologia/admin-panel-sub000/realtime"
)

// LiveStream struct mostly used for mocking tests
type LiveStream struct {
	Rooms realtime.RoomLoader
	Cache *gocache.Cache
}

// LiveStreamHandler returns a livestream with its chat room given an id. A
// uuid-shaped id is resolved through the uuid sub-path, a numeric one as a
// primary key. Cache-first: a previously fetched description is served
// immediately and refreshed in the background, so the panel keeps showing the
// last known value until the refetch resolves.
func (l LiveStream) LiveStreamHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	_, err := uuid.Parse(id)
	isUUID := err == nil

	zap.S().Debugf("live-stream id: %v, isUUID: %v", id, isUUID)

	cacheKey := "live-stream:" + id
	if cached, ok := l.Cache.Get(cacheKey); ok {
		go l.refresh(id, isUUID, cacheKey)
		writeLiveRoom(w, cached)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	room, err := l.Rooms.Bootstrap(ctx, id, isUUID)
	if err != nil {
		config.ErrorStatus("failed to get live stream", http.StatusNotFound, w, err)
		return
	}

	l.Cache.Set(cacheKey, room, gocache.DefaultExpiration)
	writeLiveRoom(w, room)
}

func (l LiveStream) refresh(id string, isUUID bool, cacheKey string) {
	ctx, cancel := api.WithQueryTimeout(context.Background())
	defer cancel()

	room, err := l.Rooms.Bootstrap(ctx, id, isUUID)
	if err != nil {
		zap.S().Warnw("background refresh of live stream failed",
			"id", id,
			"error", err,
		)
		return
	}
	l.Cache.Set(cacheKey, room, gocache.DefaultExpiration)
}

func writeLiveRoom(w http.ResponseWriter, room interface{}) {
	b, err := json.Marshal(room)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
