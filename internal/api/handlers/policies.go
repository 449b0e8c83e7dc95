package handlers

import (
	"net/http"

	"backup-power-sim/internal/api/models"

	"github.com/gin-gonic/gin"
)

// PolicyHandler handles dispatch policy requests
type PolicyHandler struct{}

// NewPolicyHandler creates a new policy handler
func NewPolicyHandler() *PolicyHandler {
	return &PolicyHandler{}
}

// ListPolicies handles GET /api/v1/policies
func (h *PolicyHandler) ListPolicies(c *gin.Context) {
	policies := []models.PolicyInfo{
		{
			Name:        "greedy",
			Description: "Serve deficits from the battery first, then the fuel cell; store surplus into the battery first, then the electrolyzer.",
			Parameters: []models.ParameterInfo{
				{
					Name:        "battery_max_kw",
					Type:        "float",
					Description: "Battery power limit in kW",
					Default:     "bank capacity at 1C",
				},
			},
		},
		{
			Name:        "schedule",
			Description: "Charge and run the electrolyzer during a fixed storing window, discharge and run the fuel cell during a fixed serving window, idle otherwise.",
			Parameters: []models.ParameterInfo{
				{Name: "store_start", Type: "string", Description: "Storing window start (HH:MM)", Default: "10:00"},
				{Name: "store_end", Type: "string", Description: "Storing window end (HH:MM)", Default: "serve_start"},
				{Name: "serve_start", Type: "string", Description: "Serving window start (HH:MM)", Default: "18:00"},
				{Name: "serve_end", Type: "string", Description: "Serving window end (HH:MM)", Default: "serve_start"},
				{Name: "battery_kw", Type: "float", Description: "Battery power limit in kW", Default: "bank capacity at 1C"},
				{Name: "electrolyzer_kw", Type: "float", Description: "Electrolyzer setpoint in kW during the storing window", Default: 0},
				{Name: "fuelcell_kw", Type: "float", Description: "Fuel cell setpoint in kW during the serving window", Default: 0},
			},
		},
	}

	c.JSON(http.StatusOK, gin.H{"policies": policies})
}
