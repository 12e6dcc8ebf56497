package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/bookkeeper-backend/internal/http/response"
	"github.com/yungbote/bookkeeper-backend/internal/platform/apierr"
)

func respondServiceError(c *gin.Context, err error, fallbackCode string) {
	var ae *apierr.Error
	if errors.As(err, &ae) {
		response.RespondError(c, ae.Status, ae.Code, ae.Err)
		return
	}
	response.RespondError(c, http.StatusInternalServerError, fallbackCode, err)
}

func parsePathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "validation_failed", errors.New("invalid "+name))
		return uuid.Nil, false
	}
	return id, true
}

// parseJourneyFilter reads the optional journey_id query param used by the
// journey context switcher. Absent or blank means "all journeys".
func parseJourneyFilter(c *gin.Context) (*uuid.UUID, bool) {
	raw := strings.TrimSpace(c.Query("journey_id"))
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "validation_failed", errors.New("invalid journey_id"))
		return nil, false
	}
	return &id, true
}
