package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// State is the lifecycle of one realtime connection
type State int32

// Connection states. A dropped connection moves to Reconnecting and retries
// with capped exponential backoff; once the retry budget is exhausted the
// connection is Failed and stays that way.
const (
	Disconnected State = iota
	Connecting
	Active
	Reconnecting
	Failed
	Closed
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Active:
		return "active"
	case Reconnecting:
		return "reconnecting"
	case Failed:
		return "failed"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// Event is one frame on the realtime channel
type Event struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Dialer abstracts websocket dialing; satisfied by *websocket.Dialer
type Dialer interface {
	DialContext(ctx context.Context, urlStr string, requestHeader http.Header) (*websocket.Conn, *http.Response, error)
}

// ErrNotConnected is returned by Emit when no active connection is available
var ErrNotConnected = errors.New("realtime connection is not active")

// ErrConnClosed is returned once Close has been called
var ErrConnClosed = errors.New("realtime connection closed")

// DefaultDialTimeout bounds a single connect attempt
const DefaultDialTimeout = 10 * time.Second

// Conn is one duplex realtime connection. It is owned by exactly one session
// view: opened once, torn down exactly once, never shared across sessions.
type Conn struct {
	url    string
	dialer Dialer

	mu    sync.Mutex
	ws    *websocket.Conn
	state State

	events     chan Event
	done       chan struct{}
	closeOnce  sync.Once
	eventsOnce sync.Once

	onConnect func(*Conn)
	onState   func(State)

	// maximum elapsed reconnect time before the connection is Failed
	retryWindow time.Duration
}

// NewConn creates a connection for the given websocket url. A nil dialer
// falls back to the default gorilla dialer.
func NewConn(url string, dialer Dialer) *Conn {
	if dialer == nil {
		dialer = websocket.DefaultDialer
	}
	return &Conn{
		url:         url,
		dialer:      dialer,
		state:       Disconnected,
		events:      make(chan Event, 64),
		done:        make(chan struct{}),
		retryWindow: 2 * time.Minute,
	}
}

// OnConnect registers the handler invoked after every successful connect and
// reconnect, before any event is read. Must be set before Open.
func (c *Conn) OnConnect(fn func(*Conn)) {
	c.onConnect = fn
}

// OnStateChange registers a state observer. Must be set before Open.
func (c *Conn) OnStateChange(fn func(State)) {
	c.onState = fn
}

// Events returns the inbound event channel. The channel is closed when the
// connection permanently fails.
func (c *Conn) Events() <-chan Event {
	return c.events
}

// State returns the current connection state
func (c *Conn) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Conn) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
	if c.onState != nil {
		c.onState(s)
	}
}

// Open dials the remote endpoint and starts the read loop. An initial dial
// failure leaves the connection Failed; reconnection only applies to drops
// after a successful connect.
func (c *Conn) Open(ctx context.Context) error {
	c.setState(Connecting)
	if err := c.dial(ctx); err != nil {
		c.setState(Failed)
		c.closeEvents()
		return err
	}
	c.setState(Active)
	if c.onConnect != nil {
		c.onConnect(c)
	}
	go c.readLoop()
	return nil
}

func (c *Conn) dial(ctx context.Context) error {
	dialCtx, cancel := context.WithTimeout(ctx, DefaultDialTimeout)
	defer cancel()

	ws, resp, err := c.dialer.DialContext(dialCtx, c.url, nil)
	if err != nil {
		if resp != nil && resp.Body != nil {
			resp.Body.Close()
		}
		return err
	}

	c.mu.Lock()
	if c.ws != nil {
		c.ws.Close()
	}
	c.ws = ws
	c.mu.Unlock()
	return nil
}

func (c *Conn) readLoop() {
	for {
		c.mu.Lock()
		ws := c.ws
		c.mu.Unlock()
		if ws == nil {
			return
		}

		var ev Event
		if err := ws.ReadJSON(&ev); err != nil {
			select {
			case <-c.done:
				return
			default:
			}
			if !c.reconnect() {
				c.closeEvents()
				return
			}
			continue
		}

		select {
		case c.events <- ev:
		case <-c.done:
			return
		}
	}
}

// reconnect retries the dial with capped exponential backoff. Returns false
// when the retry budget is exhausted or the connection was closed meanwhile.
func (c *Conn) reconnect() bool {
	c.setState(Reconnecting)
	zap.S().Warnw("realtime connection dropped, reconnecting",
		"url", c.url,
	)

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = time.Second
	bo.MaxInterval = 30 * time.Second
	bo.MaxElapsedTime = c.retryWindow

	err := backoff.Retry(func() error {
		select {
		case <-c.done:
			return backoff.Permanent(ErrConnClosed)
		default:
		}
		return c.dial(context.Background())
	}, bo)

	if err != nil {
		if errors.Is(err, ErrConnClosed) {
			return false
		}
		zap.S().Errorw("realtime reconnect failed, giving up",
			"url", c.url,
			"error", err,
		)
		c.setState(Failed)
		return false
	}

	c.setState(Active)
	if c.onConnect != nil {
		c.onConnect(c)
	}
	return true
}

// Emit writes one event frame. Delivery is fire-and-forget: no
// acknowledgement is awaited.
func (c *Conn) Emit(event string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ws == nil || c.state != Active {
		return ErrNotConnected
	}
	return c.ws.WriteJSON(Event{Event: event, Data: payload})
}

// Close tears the connection down exactly once. Events arriving after Close
// are never delivered.
func (c *Conn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		c.mu.Lock()
		c.state = Closed
		if c.ws != nil {
			err = c.ws.Close()
		}
		c.mu.Unlock()
		if c.onState != nil {
			c.onState(Closed)
		}
	})
	return err
}

func (c *Conn) closeEvents() {
	c.eventsOnce.Do(func() {
		close(c.events)
	})
}
