package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	gocache "github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"

	"github.com/natan-gtecnologia/admin-panel-sub000/api/handlers"
	"github.com/natan-gtecnologia/admin-panel-sub000/cms"
)

type countingRoomLoader struct {
	mu    sync.Mutex
	calls int
	room  *cms.LiveRoom
	err   error
}

func (c *countingRoomLoader) Bootstrap(_ context.Context, _ string, _ bool) (*cms.LiveRoom, error) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	if c.err != nil {
		return nil, c.err
	}
	return c.room, nil
}

func (c *countingRoomLoader) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func liveStreamRequest(id string) *http.Request {
	req := httptest.NewRequest("GET", "/api/v1/live-streams/"+id, nil)
	return mux.SetURLVars(req, map[string]string{"id": id})
}

func TestLiveStream_LiveStreamHandlerByUUID(t *testing.T) {
	loader := &countingRoomLoader{room: testLiveRoom()}
	l := handlers.LiveStream{Rooms: loader, Cache: gocache.New(time.Minute, time.Minute)}

	rr := httptest.NewRecorder()
	l.LiveStreamHandler(rr, liveStreamRequest(testSessionUUID))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), testSessionUUID)
	assert.Contains(t, rr.Body.String(), `"liveStream"`)
	assert.Contains(t, rr.Body.String(), `"chat"`)
	assert.Equal(t, 1, loader.callCount())
}

func TestLiveStream_LiveStreamHandlerByNumericID(t *testing.T) {
	loader := &countingRoomLoader{room: testLiveRoom()}
	l := handlers.LiveStream{Rooms: loader, Cache: gocache.New(time.Minute, time.Minute)}

	rr := httptest.NewRecorder()
	l.LiveStreamHandler(rr, liveStreamRequest("5"))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"id":5`)
}

func TestLiveStream_LiveStreamHandlerServesCachedValue(t *testing.T) {
	loader := &countingRoomLoader{room: testLiveRoom()}
	l := handlers.LiveStream{Rooms: loader, Cache: gocache.New(time.Minute, time.Minute)}

	rr := httptest.NewRecorder()
	l.LiveStreamHandler(rr, liveStreamRequest("5"))
	assert.Equal(t, http.StatusOK, rr.Code)

	// second hit is served from cache while the refetch runs in the
	// background
	rr = httptest.NewRecorder()
	l.LiveStreamHandler(rr, liveStreamRequest("5"))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), testSessionUUID)
}

func TestLiveStream_LiveStreamHandlerNotFound(t *testing.T) {
	loader := &countingRoomLoader{err: errors.New("cms returned status 404 for /live-streams/999")}
	l := handlers.LiveStream{Rooms: loader, Cache: gocache.New(time.Minute, time.Minute)}

	rr := httptest.NewRecorder()
	l.LiveStreamHandler(rr, liveStreamRequest("999"))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "failed to get live stream")
}

func TestLiveStream_LiveStreamHandlerNoChatRoom(t *testing.T) {
	loader := &countingRoomLoader{err: cms.ErrNoChatRoom}
	l := handlers.LiveStream{Rooms: loader, Cache: gocache.New(time.Minute, time.Minute)}

	rr := httptest.NewRecorder()
	l.LiveStreamHandler(rr, liveStreamRequest("5"))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "no chat room found for livestream")
}
