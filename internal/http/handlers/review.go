package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/bookkeeper-backend/internal/http/response"
	"github.com/yungbote/bookkeeper-backend/internal/pkg/logger"
	"github.com/yungbote/bookkeeper-backend/internal/services"
)

type ReviewHandler struct {
	log           *logger.Logger
	reviewService services.ReviewService
}

func NewReviewHandler(log *logger.Logger, reviewService services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		log:           log.With("handler", "ReviewHandler"),
		reviewService: reviewService,
	}
}

// PUT /api/journeys/:journeyID/review
//
// Submitting twice updates the same row, so PUT rather than POST.
func (h *ReviewHandler) SubmitReview(c *gin.Context) {
	journeyID, ok := parsePathUUID(c, "journeyID")
	if !ok {
		return
	}
	var input services.SubmitReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, http.StatusBadRequest, "validation_failed", err)
		return
	}
	review, err := h.reviewService.Submit(c.Request.Context(), journeyID, input)
	if err != nil {
		respondServiceError(c, err, "submit_review_failed")
		return
	}
	response.RespondOK(c, gin.H{"review": review})
}

// GET /api/journeys/:journeyID/review
func (h *ReviewHandler) GetReview(c *gin.Context) {
	journeyID, ok := parsePathUUID(c, "journeyID")
	if !ok {
		return
	}
	review, err := h.reviewService.GetForJourney(c.Request.Context(), journeyID)
	if err != nil {
		respondServiceError(c, err, "get_review_failed")
		return
	}
	response.RespondOK(c, gin.H{"review": review})
}

// GET /api/books/:bookID/reviews?journey_id=
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	bookID, ok := parsePathUUID(c, "bookID")
	if !ok {
		return
	}
	journeyID, ok := parseJourneyFilter(c)
	if !ok {
		return
	}
	reviews, err := h.reviewService.ListForBook(c.Request.Context(), bookID, journeyID)
	if err != nil {
		respondServiceError(c, err, "list_reviews_failed")
		return
	}
	response.RespondOK(c, gin.H{"reviews": reviews})
}
