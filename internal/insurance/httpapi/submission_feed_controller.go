package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"insurance-server/internal/infra/async"
	"insurance-server/internal/infra/httpserver"
	"insurance-server/internal/insurance/communication"
	"insurance-server/internal/insurance/domain"
	"insurance-server/internal/insurance/httpapi/internal"

	"github.com/gorilla/websocket"
)

const (
	_writeWait    = 10 * time.Second
	_pongWait     = 60 * time.Second
	_pingPeriod   = 54 * time.Second
	_readLimit    = 512
	_broadcastBuf = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// SubmissionFeedController pushes every new submission to the connected
// websocket clients.
type SubmissionFeedController struct {
	broker     async.InternalBroker
	clients    map[*websocket.Conn]struct{}
	clientsMux sync.Mutex
	broadcast  chan internal.SubmissionEvent
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	ready      chan struct{}
	ctx        context.Context
	cancel     context.CancelFunc
	once       sync.Once
}

func NewSubmissionFeedController(broker async.InternalBroker) *SubmissionFeedController {
	ctx, cancel := context.WithCancel(context.Background())

	c := &SubmissionFeedController{
		broker:     broker,
		clients:    make(map[*websocket.Conn]struct{}),
		broadcast:  make(chan internal.SubmissionEvent, _broadcastBuf),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		ready:      make(chan struct{}),
		ctx:        ctx,
		cancel:     cancel,
	}

	go c.run()

	return c
}

var _ httpserver.Controller = (*SubmissionFeedController)(nil)

func (c *SubmissionFeedController) AddRoutes(router *http.ServeMux) {
	router.Handle("GET /api/insurance/submissions/ws", c.handleWebSocket())
}

// Ready is closed once the controller listens to the broker.
func (c *SubmissionFeedController) Ready() <-chan struct{} {
	return c.ready
}

func (c *SubmissionFeedController) handleWebSocket() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.Error("websocket upgrade failed", slog.String("error", err.Error()))
			return
		}

		slog.Info("new websocket connection established", slog.String("remote_addr", r.RemoteAddr))

		select {
		case c.register <- conn:
		case <-c.ctx.Done():
			conn.Close()
			return
		}

		go c.keepAlive(conn)
		go c.readClient(conn)
	}
}

// readClient discards client messages; it exists to notice closed
// connections and to process pongs.
func (c *SubmissionFeedController) readClient(conn *websocket.Conn) {
	defer func() {
		select {
		case c.unregister <- conn:
		case <-c.ctx.Done():
		}
	}()

	conn.SetReadLimit(_readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(_pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(_pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Error("websocket read error", slog.String("error", err.Error()))
			} else {
				slog.Debug("websocket connection closed", slog.String("error", err.Error()))
			}
			return
		}
	}
}

func (c *SubmissionFeedController) keepAlive(conn *websocket.Conn) {
	ticker := time.NewTicker(_pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			c.clientsMux.Lock()
			_, connected := c.clients[conn]
			var err error
			if connected {
				err = conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(_writeWait))
			}
			c.clientsMux.Unlock()
			if !connected || err != nil {
				return
			}
		}
	}
}

// run owns the client set. Once it returns the controller is done and new
// connections are refused.
func (c *SubmissionFeedController) run() {
	defer c.cancel()

	subscription, err := c.broker.Subscribe(communication.FeedTopic)
	if err != nil {
		slog.Error("failed to subscribe to submission feed", slog.String("error", err.Error()))
		return
	}
	defer func() {
		_ = c.broker.Unsubscribe(communication.FeedTopic, subscription)
	}()
	close(c.ready)

	for {
		select {
		case <-c.ctx.Done():
			return

		case conn := <-c.register:
			c.clientsMux.Lock()
			c.clients[conn] = struct{}{}
			total := len(c.clients)
			c.clientsMux.Unlock()
			slog.Info("websocket client registered", slog.Int("total_clients", total))

		case conn := <-c.unregister:
			c.drop(conn)

		case event := <-c.broadcast:
			c.send(event)

		case msg, ok := <-subscription.Receiver:
			if !ok {
				slog.Warn("submission feed closed, refusing new websocket clients")
				return
			}
			submission, isSubmission := msg.Value.(domain.Submission)
			if msg.Event != communication.SubmissionCreatedEvent || !isSubmission {
				continue
			}
			select {
			case c.broadcast <- internal.SubmissionEvent{Type: msg.Event, Submission: internal.FromSubmission(submission)}:
			default:
				slog.Warn("broadcast channel full, dropping submission", slog.Int64("id", submission.ID))
			}
		}
	}
}

func (c *SubmissionFeedController) send(event internal.SubmissionEvent) {
	c.clientsMux.Lock()
	defer c.clientsMux.Unlock()

	for conn := range c.clients {
		_ = conn.SetWriteDeadline(time.Now().Add(_writeWait))
		if err := conn.WriteJSON(event); err != nil {
			slog.Error("failed to write to websocket client", slog.String("error", err.Error()))
			conn.Close()
			delete(c.clients, conn)
		}
	}
}

func (c *SubmissionFeedController) drop(conn *websocket.Conn) {
	c.clientsMux.Lock()
	defer c.clientsMux.Unlock()

	if _, ok := c.clients[conn]; ok {
		delete(c.clients, conn)
		conn.Close()
		slog.Info("websocket client unregistered", slog.Int("total_clients", len(c.clients)))
	}
}

func (c *SubmissionFeedController) Shutdown() {
	c.once.Do(func() {
		slog.Info("shutting down submission feed controller")
		c.cancel()

		c.clientsMux.Lock()
		defer c.clientsMux.Unlock()
		for conn := range c.clients {
			conn.Close()
			delete(c.clients, conn)
		}
	})
}
