package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/bookkeeper-backend/internal/http/response"
	"github.com/yungbote/bookkeeper-backend/internal/pkg/logger"
	"github.com/yungbote/bookkeeper-backend/internal/services"
)

type QuickNoteHandler struct {
	log         *logger.Logger
	noteService services.QuickNoteService
}

func NewQuickNoteHandler(log *logger.Logger, noteService services.QuickNoteService) *QuickNoteHandler {
	return &QuickNoteHandler{
		log:         log.With("handler", "QuickNoteHandler"),
		noteService: noteService,
	}
}

// POST /api/notes
func (h *QuickNoteHandler) AddNote(c *gin.Context) {
	var input services.AddQuickNoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, http.StatusBadRequest, "validation_failed", err)
		return
	}
	note, err := h.noteService.Add(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err, "add_note_failed")
		return
	}
	response.RespondCreated(c, gin.H{"note": note})
}

// GET /api/journeys/:journeyID/notes
func (h *QuickNoteHandler) ListNotes(c *gin.Context) {
	journeyID, ok := parsePathUUID(c, "journeyID")
	if !ok {
		return
	}
	notes, err := h.noteService.List(c.Request.Context(), journeyID)
	if err != nil {
		respondServiceError(c, err, "list_notes_failed")
		return
	}
	response.RespondOK(c, gin.H{"notes": notes})
}

// PATCH /api/notes/:noteID/starred
func (h *QuickNoteHandler) ToggleStarred(c *gin.Context) {
	noteID, ok := parsePathUUID(c, "noteID")
	if !ok {
		return
	}
	var body struct {
		Starred bool `json:"starred"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.RespondError(c, http.StatusBadRequest, "validation_failed", err)
		return
	}
	if err := h.noteService.ToggleStarred(c.Request.Context(), noteID, body.Starred); err != nil {
		respondServiceError(c, err, "star_note_failed")
		return
	}
	response.RespondOK(c, gin.H{"updated": true})
}

// DELETE /api/notes/:noteID
func (h *QuickNoteHandler) DeleteNote(c *gin.Context) {
	noteID, ok := parsePathUUID(c, "noteID")
	if !ok {
		return
	}
	if err := h.noteService.Delete(c.Request.Context(), noteID); err != nil {
		respondServiceError(c, err, "delete_note_failed")
		return
	}
	response.RespondOK(c, gin.H{"deleted": true})
}

// POST /api/notes/:noteID/convert
func (h *QuickNoteHandler) ConvertNote(c *gin.Context) {
	noteID, ok := parsePathUUID(c, "noteID")
	if !ok {
		return
	}
	thought, err := h.noteService.Convert(c.Request.Context(), noteID)
	if err != nil {
		respondServiceError(c, err, "convert_note_failed")
		return
	}
	response.RespondCreated(c, gin.H{"thought": thought})
}
