package reading

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReadingThought is a detailed annotation tied to a journey.
type ReadingThought struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	JourneyID uuid.UUID `gorm:"type:uuid;not null;index;column:journey_id" json:"journey_id"`
	BookID    uuid.UUID `gorm:"type:uuid;not null;index:idx_thought_book_user;column:book_id" json:"book_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_thought_book_user;column:user_id" json:"user_id"`

	Content          string  `gorm:"not null;column:content" json:"content"`
	PageNumber       *int    `gorm:"column:page_number" json:"page_number,omitempty"`
	Chapter          *string `gorm:"column:chapter" json:"chapter,omitempty"`
	ContainsSpoilers bool    `gorm:"not null;default:false;column:contains_spoilers" json:"contains_spoilers"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (ReadingThought) TableName() string { return "reading_thought" }
