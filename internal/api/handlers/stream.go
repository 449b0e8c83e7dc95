package handlers

import (
	"log"
	"net/http"

	"backup-power-sim/internal/api/models"
	"backup-power-sim/internal/dispatch"
	"backup-power-sim/internal/sim"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// StreamHandler streams simulation ledger rows over a websocket.
type StreamHandler struct {
	upgrader websocket.Upgrader
}

// NewStreamHandler creates a new stream handler. Origin checking follows the
// CORS middleware's policy, so the upgrader accepts all origins here.
func NewStreamHandler() *StreamHandler {
	return &StreamHandler{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// StreamSimulation handles GET /api/v1/simulate/stream.
//
// The client sends one SimulateRequest as the first message; the server
// answers with one "row" frame per interval, a final "summary" frame, and
// then closes. Errors arrive as an "error" frame before the close.
func (h *StreamHandler) StreamSimulation(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the HTTP error response.
		log.Printf("StreamHandler: upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	var req models.SimulateRequest
	if err := conn.ReadJSON(&req); err != nil {
		writeStreamError(conn, "INVALID_REQUEST", err.Error())
		return
	}

	intervals, err := buildIntervals(&req)
	if err != nil {
		writeStreamError(conn, "INVALID_PROFILE", err.Error())
		return
	}
	if req.Options.LimitIntervals > 0 && req.Options.LimitIntervals < len(intervals) {
		intervals = intervals[:req.Options.LimitIntervals]
	}

	cfg, err := buildConfig(req.Config)
	if err != nil {
		writeStreamError(conn, "INVALID_CONFIG", err.Error())
		return
	}

	bank, hfs, err := cfg.ToInputs().Build()
	if err != nil {
		writeStreamError(conn, "INVALID_ASSETS", err.Error())
		return
	}

	pol, err := dispatch.Build(cfg.Policy.Name, cfg.Policy.Params, bank.Params.CapacityKWh())
	if err != nil {
		writeStreamError(conn, "INVALID_POLICY", err.Error())
		return
	}

	engine := sim.New()
	result, err := engine.RunFunc(intervals, bank, hfs, pol, func(row sim.LedgerRow) error {
		dto := convertRow(row)
		return conn.WriteJSON(models.StreamFrame{Type: "row", Row: &dto})
	})
	if err != nil {
		writeStreamError(conn, "SIMULATION_ERROR", err.Error())
		return
	}

	summary := buildSummary(result)
	if err := conn.WriteJSON(models.StreamFrame{Type: "summary", Summary: &summary}); err != nil {
		log.Printf("StreamHandler: summary write failed: %v", err)
		return
	}

	closeMsg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	if err := conn.WriteMessage(websocket.CloseMessage, closeMsg); err != nil {
		log.Printf("StreamHandler: close failed: %v", err)
	}
}

func writeStreamError(conn *websocket.Conn, code, message string) {
	frame := models.StreamFrame{
		Type:  "error",
		Error: &models.ErrorDetail{Code: code, Message: message},
	}
	if err := conn.WriteJSON(frame); err != nil {
		log.Printf("StreamHandler: error write failed: %v", err)
	}
}
