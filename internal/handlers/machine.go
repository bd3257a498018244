package handlers

import (
	"net/http"

	cnc "cnc_simulator"

	"github.com/gin-gonic/gin"
)

const (
	statusOK               = "ok"
	statusEmergencyStopped = "emergency_stopped"
	statusToolChanged      = "tool_changed"
	statusCountersReset    = "counters_reset"
	statusOverrideSet      = "feed_override_set"
	statusStateSet         = "state_set"

	errEmergencyStop = "failed to trigger emergency stop"
	errToolChange    = "failed to change tool"
	errResetCounters = "failed to reset production counters"
	errFeedOverride  = "failed to set feed override"
	errSetState      = "failed to set state"
	errGetSnapshot   = "failed to load machine snapshot"
)

// ToolChangeRequest selects the tool to mount.
type ToolChangeRequest struct {
	ToolNumber int `json:"tool_number" binding:"required" example:"3"`
}

// FeedOverrideRequest sets the operator feed override.
type FeedOverrideRequest struct {
	// Percent of programmed feed, greater than zero
	Percent float64 `json:"percent" binding:"required" example:"110"`
}

// StateRequest moves the machine into an operator-selectable state.
type StateRequest struct {
	// Idle, Maintenance or Setup
	State string `json:"state" binding:"required" example:"Maintenance"`
}

// commandResponse is the body of every successful command.
type commandResponse struct {
	Status string            `json:"status"`
	State  cnc.MachineStatus `json:"state"`
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": statusOK})
}

// @Summary      Emergency stop
// @Description  Forces the Alarm state from any state and cancels the running program.
// @Tags         machine
// @Produce      json
// @Success      200  {object}  commandResponse
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /api/v1/machine/emergency-stop [post]
// @Security     BearerAuth
func (h *Handler) emergencyStop(c *gin.Context) {
	st, err := h.services.Machine.EmergencyStop(c.Request.Context())
	if err != nil {
		h.respondServiceError(c, err, errEmergencyStop, "machine_emergency_stop_failed")
		return
	}
	if h.log != nil {
		h.log.Warnw("machine_emergency_stop", "user_id", c.GetInt(userCtxKey))
	}
	c.JSON(http.StatusOK, commandResponse{Status: statusEmergencyStopped, State: st})
}

// @Summary      Change tool
// @Description  Mounts a fresh tool with zero wear. The operating state is unchanged.
// @Tags         machine
// @Accept       json
// @Produce      json
// @Param        body  body      ToolChangeRequest  true  "Tool number, 1 or greater"
// @Success      200   {object}  commandResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Failure      503   {object}  map[string]string
// @Router       /api/v1/machine/tool-change [post]
// @Security     BearerAuth
func (h *Handler) changeTool(c *gin.Context) {
	var req ToolChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	st, err := h.services.Machine.ChangeTool(c.Request.Context(), req.ToolNumber)
	if err != nil {
		h.respondServiceError(c, err, errToolChange, "machine_tool_change_failed", "tool_number", req.ToolNumber)
		return
	}
	c.JSON(http.StatusOK, commandResponse{Status: statusToolChanged, State: st})
}

// @Summary      Reset production counters
// @Description  Zeroes parts produced, good, rejected and efficiency. The last cycle time is kept.
// @Tags         machine
// @Produce      json
// @Success      200  {object}  commandResponse
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /api/v1/machine/production/reset [post]
// @Security     BearerAuth
func (h *Handler) resetProduction(c *gin.Context) {
	st, err := h.services.Machine.ResetProductionCounters(c.Request.Context())
	if err != nil {
		h.respondServiceError(c, err, errResetCounters, "machine_reset_counters_failed")
		return
	}
	c.JSON(http.StatusOK, commandResponse{Status: statusCountersReset, State: st})
}

// @Summary      Set feed override
// @Tags         machine
// @Accept       json
// @Produce      json
// @Param        body  body      FeedOverrideRequest  true  "Override in percent"
// @Success      200   {object}  commandResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Failure      503   {object}  map[string]string
// @Router       /api/v1/machine/feed-override [post]
// @Security     BearerAuth
func (h *Handler) setFeedOverride(c *gin.Context) {
	var req FeedOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	st, err := h.services.Machine.SetFeedOverride(c.Request.Context(), req.Percent)
	if err != nil {
		h.respondServiceError(c, err, errFeedOverride, "machine_feed_override_failed", "percent", req.Percent)
		return
	}
	c.JSON(http.StatusOK, commandResponse{Status: statusOverrideSet, State: st})
}

// @Summary      Set operating state
// @Description  Enters Idle, Maintenance or Setup. Running is reached by starting a program and Alarm by emergency stop.
// @Tags         machine
// @Accept       json
// @Produce      json
// @Param        body  body      StateRequest  true  "Target state"
// @Success      200   {object}  commandResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Failure      503   {object}  map[string]string
// @Router       /api/v1/machine/state [post]
// @Security     BearerAuth
func (h *Handler) setState(c *gin.Context) {
	var req StateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	st, err := h.services.Machine.SetState(c.Request.Context(), req.State)
	if err != nil {
		h.respondServiceError(c, err, errSetState, "machine_set_state_failed", "state", req.State)
		return
	}
	c.JSON(http.StatusOK, commandResponse{Status: statusStateSet, State: st})
}
