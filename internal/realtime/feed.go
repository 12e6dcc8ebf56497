package realtime

import (
	"time"

	"github.com/google/uuid"
)

const (
	FeedEventJourneyCompleted = "journey_completed"
	FeedEventReviewPublished  = "review_published"
)

// FeedEvent is the payload handed to the feed/notification collaborator when
// a journey completes or a review goes public. Delivery is best-effort; the
// originating write never rolls back on a publish failure.
type FeedEvent struct {
	Type       string    `json:"type"`
	UserID     uuid.UUID `json:"user_id"`
	BookID     uuid.UUID `json:"book_id"`
	JourneyID  uuid.UUID `json:"journey_id"`
	Rating     *int      `json:"rating,omitempty"`
	Visibility string    `json:"visibility,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
