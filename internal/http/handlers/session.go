package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/bookkeeper-backend/internal/http/response"
	"github.com/yungbote/bookkeeper-backend/internal/pkg/logger"
	"github.com/yungbote/bookkeeper-backend/internal/services"
)

type SessionHandler struct {
	log            *logger.Logger
	sessionService services.SessionService
}

func NewSessionHandler(log *logger.Logger, sessionService services.SessionService) *SessionHandler {
	return &SessionHandler{
		log:            log.With("handler", "SessionHandler"),
		sessionService: sessionService,
	}
}

// POST /api/books/:bookID/sessions
func (h *SessionHandler) LogSession(c *gin.Context) {
	bookID, ok := parsePathUUID(c, "bookID")
	if !ok {
		return
	}
	var input services.LogSessionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, http.StatusBadRequest, "validation_failed", err)
		return
	}
	session, err := h.sessionService.Log(c.Request.Context(), bookID, input)
	if err != nil {
		respondServiceError(c, err, "log_session_failed")
		return
	}
	response.RespondCreated(c, gin.H{"session": session})
}

// GET /api/books/:bookID/sessions?journey_id=
func (h *SessionHandler) ListSessions(c *gin.Context) {
	bookID, ok := parsePathUUID(c, "bookID")
	if !ok {
		return
	}
	journeyID, ok := parseJourneyFilter(c)
	if !ok {
		return
	}
	sessions, err := h.sessionService.ListForBook(c.Request.Context(), bookID, journeyID)
	if err != nil {
		respondServiceError(c, err, "list_sessions_failed")
		return
	}
	response.RespondOK(c, gin.H{"sessions": sessions})
}
