package reading

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type JourneyStatus string

const (
	JourneyStatusActive    JourneyStatus = "active"
	JourneyStatusCompleted JourneyStatus = "completed"
	JourneyStatusAbandoned JourneyStatus = "abandoned"
	// JourneyStatusArchived is reachable in data but no transition produces
	// it; rows arrive here only through migrations or manual intervention.
	JourneyStatusArchived JourneyStatus = "archived"
)

type Visibility string

const (
	VisibilityPublic      Visibility = "public"
	VisibilityConnections Visibility = "connections"
	VisibilityPrivate     Visibility = "private"
)

// Journey is one reading attempt at a book by a user. At most one journey per
// (book_id, user_id) may be active at a time; the partial unique index created
// in migrate.go enforces that below the application.
type Journey struct {
	ID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BookID uuid.UUID `gorm:"type:uuid;not null;index:idx_journey_book_user;column:book_id" json:"book_id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index:idx_journey_book_user;column:user_id" json:"user_id"`

	Status      JourneyStatus `gorm:"type:varchar(16);not null;default:'active';column:status" json:"status"`
	SessionName string        `gorm:"column:session_name" json:"session_name"`
	Visibility  Visibility    `gorm:"type:varchar(16);not null;default:'private';column:visibility" json:"visibility"`

	StartedAt time.Time `gorm:"not null;column:started_at" json:"started_at"`
	// FinishedAt is set iff status is completed or abandoned.
	FinishedAt *time.Time `gorm:"column:finished_at" json:"finished_at,omitempty"`
	// Rating is 1-5 and only meaningful once the journey is completed.
	Rating        *int    `gorm:"column:rating" json:"rating,omitempty"`
	AbandonReason *string `gorm:"column:abandon_reason" json:"abandon_reason,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Journey) TableName() string { return "journey" }

func (s JourneyStatus) Valid() bool {
	switch s {
	case JourneyStatusActive, JourneyStatusCompleted, JourneyStatusAbandoned, JourneyStatusArchived:
		return true
	}
	return false
}

func (v Visibility) Valid() bool {
	switch v {
	case VisibilityPublic, VisibilityConnections, VisibilityPrivate:
		return true
	}
	return false
}

// JourneyWithCounts annotates a journey with denormalized counts for list
// display. The counts are computed per query, never stored.
type JourneyWithCounts struct {
	Journey
	SessionsCount int64 `gorm:"column:sessions_count" json:"sessions_count"`
	ThoughtsCount int64 `gorm:"column:thoughts_count" json:"thoughts_count"`
}
