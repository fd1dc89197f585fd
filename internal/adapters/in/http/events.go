package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"restaurant/internal/core/ports"
)

// StreamEvents handles GET /api/orders/events - a server-sent events stream
// of lifecycle notifications. ?room= selects a named room (staff-<id>,
// customer-<id>); without it the client receives the broadcast feed only.
func (s *Server) StreamEvents(ctx echo.Context) error {
	events, cancel := s.subscriber.Subscribe(ctx.QueryParam("room"))
	defer cancel()

	response := ctx.Response()
	response.Header().Set(echo.HeaderContentType, "text/event-stream")
	response.Header().Set("Cache-Control", "no-cache")
	response.Header().Set("Connection", "keep-alive")
	response.WriteHeader(http.StatusOK)
	response.Flush()

	done := ctx.Request().Context().Done()
	for {
		select {
		case <-done:
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if err := writeSSE(response, event); err != nil {
				return nil
			}
		}
	}
}

func writeSSE(response *echo.Response, event ports.Event) error {
	payload := EventResponse{
		Kind:    string(event.Kind),
		Message: event.Message,
	}
	if event.Order != nil {
		body := orderResponseFromDomain(event.Order)
		payload.Order = &body
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if _, err = fmt.Fprintf(response, "event: %s\ndata: %s\n\n", event.Kind, data); err != nil {
		return err
	}
	response.Flush()
	return nil
}
