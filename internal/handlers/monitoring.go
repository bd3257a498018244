package handlers

import (
	"net/http"

	cnc "cnc_simulator"

	"github.com/gin-gonic/gin"
)

// @Summary      Current machine snapshot
// @Tags         monitoring
// @Produce      json
// @Success      200  {object}  cnc_simulator.MachineStatus
// @Failure      500  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /api/v1/machine/snapshot [get]
func (h *Handler) getSnapshot(c *gin.Context) {
	st, err := h.services.Monitoring.GetStatus(c.Request.Context())
	if err != nil {
		h.respondServiceError(c, err, errGetSnapshot, "machine_get_snapshot_failed")
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Machine nameplate
// @Tags         monitoring
// @Produce      json
// @Success      200  {object}  cnc_simulator.MachineInfo
// @Router       /api/v1/machine/info [get]
func (h *Handler) getInfo(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Monitoring.GetInfo())
}

// @Summary      Engineering units
// @Description  Maps snapshot field paths (e.g. spindle.speed) to their units.
// @Tags         monitoring
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/v1/machine/units [get]
func (h *Handler) getUnits(c *gin.Context) {
	c.JSON(http.StatusOK, cnc.Units)
}
