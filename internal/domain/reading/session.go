package reading

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReadingSession is one logged reading event. Sessions are append-only: there
// is no update or delete path once a row is written.
type ReadingSession struct {
	ID uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	// JourneyID is nil only for legacy rows logged before journeys existed;
	// new sessions always resolve one.
	JourneyID *uuid.UUID `gorm:"type:uuid;index;column:journey_id" json:"journey_id,omitempty"`
	BookID    uuid.UUID  `gorm:"type:uuid;not null;index:idx_session_book_user;column:book_id" json:"book_id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index:idx_session_book_user;column:user_id" json:"user_id"`

	SessionDate      time.Time `gorm:"not null;column:session_date" json:"session_date"`
	StartPage        *int      `gorm:"column:start_page" json:"start_page,omitempty"`
	EndPage          *int      `gorm:"column:end_page" json:"end_page,omitempty"`
	PagesRead        int       `gorm:"not null;column:pages_read" json:"pages_read"`
	TimeSpentMinutes *int      `gorm:"column:time_spent_minutes" json:"time_spent_minutes,omitempty"`
	Mood             *string   `gorm:"type:varchar(32);column:mood" json:"mood,omitempty"`
	Notes            *string   `gorm:"column:notes" json:"notes,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (ReadingSession) TableName() string { return "reading_session" }
