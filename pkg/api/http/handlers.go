package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aescanero/statebus/pkg/eventbus"
)

// EventInfo describes one registered event
type EventInfo struct {
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	Listeners int    `json:"listeners"`
}

// EventListResponse represents the registered events
type EventListResponse struct {
	Events []EventInfo `json:"events"`
	Total  int         `json:"total"`
}

// StateResponse represents the bus state
type StateResponse struct {
	State map[string]any `json:"state"`
}

// handleHealth handles health check requests
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"checks": gin.H{
			"eventbus": "ok",
		},
	})
}

// handleListEvents lists registered events
func (s *Server) handleListEvents(c *gin.Context) {
	names := s.bus.Events()

	events := make([]EventInfo, 0, len(names))
	for _, name := range names {
		events = append(events, EventInfo{
			Name:      name.String(),
			Kind:      nameKind(name),
			Listeners: s.bus.Listeners(name),
		})
	}

	c.JSON(http.StatusOK, EventListResponse{
		Events: events,
		Total:  len(events),
	})
}

// handleGetState returns the state with stringified keys
func (s *Server) handleGetState(c *gin.Context) {
	s.stateLock.Lock()
	state := make(map[string]any, len(s.bus.State))
	for name, value := range s.bus.State {
		state[name.String()] = jsonValue(value)
	}
	s.stateLock.Unlock()

	c.JSON(http.StatusOK, StateResponse{State: state})
}

func nameKind(name eventbus.Name) string {
	if _, ok := name.(eventbus.Symbol); ok {
		return "symbol"
	}
	return "key"
}

// jsonValue falls back to the fmt form for values JSON cannot encode
func jsonValue(v any) any {
	if _, err := json.Marshal(v); err != nil {
		return fmt.Sprint(v)
	}
	return v
}
