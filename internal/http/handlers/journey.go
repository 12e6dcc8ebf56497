package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	types "github.com/yungbote/bookkeeper-backend/internal/domain"
	"github.com/yungbote/bookkeeper-backend/internal/http/response"
	"github.com/yungbote/bookkeeper-backend/internal/pkg/logger"
	"github.com/yungbote/bookkeeper-backend/internal/services"
)

type JourneyHandler struct {
	log            *logger.Logger
	journeyService services.JourneyService
}

func NewJourneyHandler(log *logger.Logger, journeyService services.JourneyService) *JourneyHandler {
	return &JourneyHandler{
		log:            log.With("handler", "JourneyHandler"),
		journeyService: journeyService,
	}
}

// GET /api/books/:bookID/journeys/active
//
// Responds 200 with a null journey when the book has no active journey;
// "nothing active" is a normal answer here, not an error.
func (h *JourneyHandler) GetActive(c *gin.Context) {
	bookID, ok := parsePathUUID(c, "bookID")
	if !ok {
		return
	}
	journey, err := h.journeyService.GetActive(c.Request.Context(), bookID)
	if err != nil {
		respondServiceError(c, err, "get_active_journey_failed")
		return
	}
	response.RespondOK(c, gin.H{"journey": journey})
}

// POST /api/books/:bookID/journeys
func (h *JourneyHandler) StartJourney(c *gin.Context) {
	bookID, ok := parsePathUUID(c, "bookID")
	if !ok {
		return
	}
	var input services.StartJourneyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, http.StatusBadRequest, "validation_failed", err)
		return
	}
	journey, err := h.journeyService.Start(c.Request.Context(), bookID, input)
	if err != nil {
		respondServiceError(c, err, "start_journey_failed")
		return
	}
	response.RespondCreated(c, gin.H{"journey": journey})
}

// GET /api/books/:bookID/journeys
func (h *JourneyHandler) ListJourneys(c *gin.Context) {
	bookID, ok := parsePathUUID(c, "bookID")
	if !ok {
		return
	}
	journeys, err := h.journeyService.List(c.Request.Context(), bookID)
	if err != nil {
		respondServiceError(c, err, "list_journeys_failed")
		return
	}
	response.RespondOK(c, gin.H{"journeys": journeys})
}

// PATCH /api/journeys/:journeyID/name
func (h *JourneyHandler) RenameJourney(c *gin.Context) {
	journeyID, ok := parsePathUUID(c, "journeyID")
	if !ok {
		return
	}
	var body struct {
		SessionName string `json:"session_name"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.RespondError(c, http.StatusBadRequest, "validation_failed", err)
		return
	}
	if err := h.journeyService.Rename(c.Request.Context(), journeyID, body.SessionName); err != nil {
		respondServiceError(c, err, "rename_journey_failed")
		return
	}
	response.RespondOK(c, gin.H{"updated": true})
}

// PATCH /api/journeys/:journeyID/visibility
func (h *JourneyHandler) SetVisibility(c *gin.Context) {
	journeyID, ok := parsePathUUID(c, "journeyID")
	if !ok {
		return
	}
	var body struct {
		Visibility types.Visibility `json:"visibility"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.RespondError(c, http.StatusBadRequest, "validation_failed", err)
		return
	}
	if err := h.journeyService.SetVisibility(c.Request.Context(), journeyID, body.Visibility); err != nil {
		respondServiceError(c, err, "set_visibility_failed")
		return
	}
	response.RespondOK(c, gin.H{"updated": true})
}

// POST /api/journeys/:journeyID/complete
func (h *JourneyHandler) CompleteJourney(c *gin.Context) {
	journeyID, ok := parsePathUUID(c, "journeyID")
	if !ok {
		return
	}
	var input services.CompleteJourneyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, http.StatusBadRequest, "validation_failed", err)
		return
	}
	journey, err := h.journeyService.Complete(c.Request.Context(), journeyID, input)
	if err != nil {
		respondServiceError(c, err, "complete_journey_failed")
		return
	}
	response.RespondOK(c, gin.H{"journey": journey})
}

// POST /api/journeys/:journeyID/abandon
func (h *JourneyHandler) AbandonJourney(c *gin.Context) {
	journeyID, ok := parsePathUUID(c, "journeyID")
	if !ok {
		return
	}
	var body struct {
		Reason *string `json:"reason,omitempty"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			response.RespondError(c, http.StatusBadRequest, "validation_failed", err)
			return
		}
	}
	journey, err := h.journeyService.Abandon(c.Request.Context(), journeyID, body.Reason)
	if err != nil {
		respondServiceError(c, err, "abandon_journey_failed")
		return
	}
	response.RespondOK(c, gin.H{"journey": journey})
}
