package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"uniket/internal/config"
	"uniket/internal/middleware"
	"uniket/internal/realtime"

	"github.com/labstack/echo/v4"
)

// SSEで通知イベントを流す
type RealtimeHandler struct {
	hub *realtime.Hub
}

func NewRealtimeHandler(hub *realtime.Hub) *RealtimeHandler {
	return &RealtimeHandler{hub: hub}
}

func (h *RealtimeHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/realtime")
	g.Use(middleware.AuthJWT(cfg))

	g.GET("/stream", h.stream)
}

func (h *RealtimeHandler) stream(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set(echo.HeaderCacheControl, "no-cache")
	w.Header().Set(echo.HeaderConnection, "keep-alive")
	w.WriteHeader(http.StatusOK)
	w.Flush()

	ch := h.hub.Subscribe(userID)
	defer h.hub.Unsubscribe(userID, ch)

	//無通信でも接続を生かすためのping
	ping := time.NewTicker(30 * time.Second)
	defer ping.Stop()

	for {
		select {
		case <-c.Request().Context().Done():
			return nil

		case ev, open := <-ch:
			if !open {
				return nil
			}
			payload, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, payload)
			w.Flush()

		case <-ping.C:
			fmt.Fprint(w, ": ping\n\n")
			w.Flush()
		}
	}
}
