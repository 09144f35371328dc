package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"homecafe/internal/domain/entity"
	"homecafe/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// Message is the envelope pushed to clients; Type tells the view which
// snapshot arrived.
type Message struct {
	Type   string             `json:"type"`
	Items  []entity.MenuItem  `json:"items,omitempty"`
	Config *entity.MenuConfig `json:"config,omitempty"`
	Orders []entity.Order     `json:"orders,omitempty"`
	Error  string             `json:"error,omitempty"`
}

// HandlerParams holds dependencies for the WebSocket handler, injected by Fx.
type HandlerParams struct {
	fx.In

	CatalogUC usecase.CatalogUsecase
	QueueUC   usecase.QueueUsecase
	Logger    *slog.Logger
}

// Handler upgrades connections and bridges store subscriptions onto them.
type Handler struct {
	catalogUC usecase.CatalogUsecase
	queueUC   usecase.QueueUsecase
	logger    *slog.Logger
}

// NewHandler is the constructor for the WebSocket handler
func NewHandler(params HandlerParams) *Handler {
	return &Handler{
		catalogUC: params.CatalogUC,
		queueUC:   params.QueueUC,
		logger:    params.Logger,
	}
}

// MenuStream pushes catalog and config snapshots on every change.
// Endpoint: GET /ws/menu
func (h *Handler) MenuStream(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", slog.Any("error", err))

		return err
	}

	client := newClient(conn, h.logger)

	// The request context dies the moment this handler returns, which is
	// long before the connection does. The subscription gets its own
	// context, cancelled on disconnect.
	ctx, cancel := context.WithCancel(context.Background())

	unsubItems, err := h.catalogUC.SubscribeItems(ctx,
		func(items []entity.MenuItem) {
			client.enqueue(h.marshal(Message{Type: "items", Items: items}))
		},
		func(err error) {
			client.enqueue(h.marshal(Message{Type: "error", Error: err.Error()}))
		},
	)
	if err != nil {
		cancel()
		conn.Close()

		return err
	}

	unsubConfig, err := h.catalogUC.SubscribeConfig(ctx,
		func(config entity.MenuConfig) {
			client.enqueue(h.marshal(Message{Type: "config", Config: &config}))
		},
		func(err error) {
			client.enqueue(h.marshal(Message{Type: "error", Error: err.Error()}))
		},
	)
	if err != nil {
		cancel()
		unsubItems()
		conn.Close()

		return err
	}

	h.run(client, func() {
		cancel()
		unsubItems()
		unsubConfig()
	})

	return nil
}

// OrdersStream pushes queue snapshots, newest first, on every change.
// Endpoint: GET /ws/orders
func (h *Handler) OrdersStream(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", slog.Any("error", err))

		return err
	}

	client := newClient(conn, h.logger)

	// Same as MenuStream: the subscription must outlive the request context.
	ctx, cancel := context.WithCancel(context.Background())

	unsub, err := h.queueUC.SubscribeOrders(ctx,
		func(orders []entity.Order) {
			client.enqueue(h.marshal(Message{Type: "orders", Orders: orders}))
		},
		func(err error) {
			client.enqueue(h.marshal(Message{Type: "error", Error: err.Error()}))
		},
	)
	if err != nil {
		cancel()
		conn.Close()

		return err
	}

	h.run(client, func() {
		cancel()
		unsub()
	})

	return nil
}

// run drives the pumps and guarantees the subscription is released exactly
// once, whichever pump exits first.
func (h *Handler) run(client *client, unsubscribe func()) {
	var once sync.Once
	release := func() {
		once.Do(unsubscribe)
	}

	go client.writePump()
	go client.readPump(release)
}

func (h *Handler) marshal(msg Message) []byte {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("failed to marshal ws message", slog.Any("error", err))

		return []byte(`{"type":"error","error":"internal encoding failure"}`)
	}

	return data
}
