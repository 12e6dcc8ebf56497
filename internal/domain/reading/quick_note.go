package reading

import (
	"time"

	"github.com/google/uuid"
)

// QuickNote is a short, page-taggable annotation. Notes can be expanded into
// a ReadingThought; the conversion removes the note, so quick notes are
// hard-deleted rather than soft-deleted.
type QuickNote struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	JourneyID uuid.UUID `gorm:"type:uuid;not null;index;column:journey_id" json:"journey_id"`
	BookID    uuid.UUID `gorm:"type:uuid;not null;index;column:book_id" json:"book_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`

	Content    string `gorm:"not null;column:content" json:"content"`
	PageNumber *int   `gorm:"column:page_number" json:"page_number,omitempty"`
	IsStarred  bool   `gorm:"not null;default:false;column:is_starred" json:"is_starred"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (QuickNote) TableName() string { return "quick_note" }
