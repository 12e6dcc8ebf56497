package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/bookkeeper-backend/internal/http/response"
	"github.com/yungbote/bookkeeper-backend/internal/pkg/logger"
	"github.com/yungbote/bookkeeper-backend/internal/services"
)

type ProgressHandler struct {
	log             *logger.Logger
	progressService services.ProgressService
}

func NewProgressHandler(log *logger.Logger, progressService services.ProgressService) *ProgressHandler {
	return &ProgressHandler{
		log:             log.With("handler", "ProgressHandler"),
		progressService: progressService,
	}
}

// GET /api/books/:bookID/progress?journey_id=
func (h *ProgressHandler) Overview(c *gin.Context) {
	bookID, ok := parsePathUUID(c, "bookID")
	if !ok {
		return
	}
	journeyID, ok := parseJourneyFilter(c)
	if !ok {
		return
	}
	overview, err := h.progressService.Overview(c.Request.Context(), bookID, journeyID)
	if err != nil {
		respondServiceError(c, err, "progress_overview_failed")
		return
	}
	response.RespondOK(c, gin.H{"progress": overview})
}
