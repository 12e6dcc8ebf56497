package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/bookkeeper-backend/internal/http/response"
	"github.com/yungbote/bookkeeper-backend/internal/pkg/logger"
	"github.com/yungbote/bookkeeper-backend/internal/services"
)

type ThoughtHandler struct {
	log            *logger.Logger
	thoughtService services.ThoughtService
}

func NewThoughtHandler(log *logger.Logger, thoughtService services.ThoughtService) *ThoughtHandler {
	return &ThoughtHandler{
		log:            log.With("handler", "ThoughtHandler"),
		thoughtService: thoughtService,
	}
}

// POST /api/books/:bookID/thoughts
func (h *ThoughtHandler) AddThought(c *gin.Context) {
	bookID, ok := parsePathUUID(c, "bookID")
	if !ok {
		return
	}
	var input services.AddThoughtInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, http.StatusBadRequest, "validation_failed", err)
		return
	}
	thought, err := h.thoughtService.Add(c.Request.Context(), bookID, input)
	if err != nil {
		respondServiceError(c, err, "add_thought_failed")
		return
	}
	response.RespondCreated(c, gin.H{"thought": thought})
}

// GET /api/books/:bookID/thoughts?journey_id=
func (h *ThoughtHandler) ListThoughts(c *gin.Context) {
	bookID, ok := parsePathUUID(c, "bookID")
	if !ok {
		return
	}
	journeyID, ok := parseJourneyFilter(c)
	if !ok {
		return
	}
	thoughts, err := h.thoughtService.ListForBook(c.Request.Context(), bookID, journeyID)
	if err != nil {
		respondServiceError(c, err, "list_thoughts_failed")
		return
	}
	response.RespondOK(c, gin.H{"thoughts": thoughts})
}
