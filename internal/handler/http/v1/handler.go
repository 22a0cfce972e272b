package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rmg-labs/incident-service/internal/service"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	userService     service.UserService
	incidentService service.IncidentService
	pincodeService  service.PincodeService
	logger          *logrus.Logger
	validate        *validator.Validate
}

func NewHandler(userService service.UserService, incidentService service.IncidentService, pincodeService service.PincodeService, logger *logrus.Logger) *Handler {
	return &Handler{
		userService:     userService,
		incidentService: incidentService,
		pincodeService:  pincodeService,
		logger:          logger,
		validate:        validator.New(),
	}
}

// respondServiceError сопоставляет ошибки бизнес-логики с HTTP-статусами.
// Единая точка сопоставления, чтобы ответы не расходились между эндпоинтами.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrIncidentClosed):
		c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrIncidentClosed.Error()})
	case errors.Is(err, service.ErrAlreadyClosed):
		c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrAlreadyClosed.Error()})
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": service.ErrEmailTaken.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": service.ErrInvalidCredentials.Error()})
	case errors.Is(err, service.ErrUserInactive):
		c.JSON(http.StatusUnauthorized, gin.H{"error": service.ErrUserInactive.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
