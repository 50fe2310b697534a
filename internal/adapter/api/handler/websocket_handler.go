package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"saturnalia/internal/domain/entity"
	"saturnalia/internal/domain/repository"
	ws "saturnalia/internal/infrastructure/websocket"
	"saturnalia/internal/state"
	"saturnalia/internal/usecase"
	"saturnalia/pkg/logger"
)

// WebSocketHandler serves the live feed: each connection gets its own
// synchronized session whose cart and order mirrors are pushed on every
// snapshot, alongside the shared product catalog.
type WebSocketHandler struct {
	manager     *ws.Manager
	authUseCase *usecase.AuthUseCase
	catalog     *state.Catalog
	cartRepo    repository.CartRepository
	orderRepo   repository.OrderRepository
	upgrader    websocket.Upgrader
}

func NewWebSocketHandler(
	manager *ws.Manager,
	authUseCase *usecase.AuthUseCase,
	catalog *state.Catalog,
	cartRepo repository.CartRepository,
	orderRepo repository.OrderRepository,
) *WebSocketHandler {
	h := &WebSocketHandler{
		manager:     manager,
		authUseCase: authUseCase,
		catalog:     catalog,
		cartRepo:    cartRepo,
		orderRepo:   orderRepo,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}

	// The product mirror is global, so its snapshots fan out to every
	// connected client through the manager instead of per-connection wiring.
	catalog.OnChange(func() {
		payload, err := json.Marshal(feedMessage{Type: "products", Data: catalog.Products()})
		if err != nil {
			logger.Error("Failed to encode product feed message: %v", err)
			return
		}
		manager.Broadcast(payload)
	})

	return h
}

type feedMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

func (h *WebSocketHandler) HandleConnection(c echo.Context) error {
	// A token is optional: guests still see the product feed, but carry no
	// cart or order streams.
	var identity *entity.Identity
	if token := c.QueryParam("token"); token != "" {
		var err error
		identity, err = h.authUseCase.VerifySession(c.Request().Context(), token)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
		}
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	uid := ""
	if identity != nil {
		uid = identity.UID
	}

	client := &ws.Client{UserID: uid, Conn: conn, Send: make(chan []byte, 16)}
	h.manager.Register <- client

	send := func(msg feedMessage) {
		payload, err := json.Marshal(msg)
		if err != nil {
			logger.Error("Failed to encode feed message: %v", err)
			return
		}
		select {
		case client.Send <- payload:
		default:
			logger.Warn("Dropping feed message for slow client %s", uid)
		}
	}

	// The session outlives the HTTP request context; it is torn down
	// explicitly when the connection closes.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sess := state.NewSession(h.cartRepo, h.orderRepo)
	unsubState := sess.OnChange(func(concern state.Concern) {
		switch concern {
		case state.ConcernCart:
			send(feedMessage{Type: "cart", Data: sess.Cart()})
		case state.ConcernOrders:
			send(feedMessage{Type: "orders", Data: sess.Orders()})
		case state.ConcernSession:
			send(feedMessage{Type: "session", Data: sess.Identity()})
		}
	})
	// Prime the connection with the current product mirror, then start the
	// per-identity streams. Later product snapshots arrive via broadcast.
	send(feedMessage{Type: "products", Data: h.catalog.Products()})
	sess.SetIdentity(ctx, identity)

	go client.WritePump()
	client.ReadPump(h.manager)

	// Connection closed: sign the session out and release everything.
	sess.SetIdentity(ctx, nil)
	sess.Close()
	unsubState()

	return nil
}
