package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary Resolve a postal pincode
// @Description Resolve a pincode to city/state/country. Local reference table first, external providers on miss.
// @Tags Pincode
// @Accept json
// @Produce json
// @Param pincode path string true "Postal pincode"
// @Success 200 {object} PincodeResponse
// @Failure 404 {object} map[string]string "Pincode not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /pincode/{pincode} [get]
func (h *Handler) lookupPincode(c *gin.Context) {
	pincode := c.Param("pincode")
	log := h.logger.WithField("method", "lookupPincode").WithField("pincode", pincode)

	data, err := h.pincodeService.Lookup(c.Request.Context(), pincode)
	if err != nil {
		log.WithError(err).Warn("Failed to resolve pincode")
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, ModelToPincodeResponse(data))
}
