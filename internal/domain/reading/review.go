package reading

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Recommendation string

const (
	RecommendYes   Recommendation = "yes"
	RecommendNo    Recommendation = "no"
	RecommendMaybe Recommendation = "maybe"
)

func (r Recommendation) Valid() bool {
	switch r {
	case RecommendYes, RecommendNo, RecommendMaybe:
		return true
	}
	return false
}

// BookReview is the terminal artifact of a journey, at most one per journey.
// A second submission for the same journey updates the existing row.
type BookReview struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	JourneyID uuid.UUID `gorm:"type:uuid;not null;index;column:journey_id" json:"journey_id"`
	BookID    uuid.UUID `gorm:"type:uuid;not null;index:idx_review_book_user;column:book_id" json:"book_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_review_book_user;column:user_id" json:"user_id"`

	Rating         int            `gorm:"not null;default:5;column:rating" json:"rating"`
	Title          string         `gorm:"column:title" json:"title"`
	ReviewText     string         `gorm:"column:review_text" json:"review_text"`
	WouldRecommend Recommendation `gorm:"type:varchar(8);not null;default:'maybe';column:would_recommend" json:"would_recommend"`
	IsPublic       bool           `gorm:"not null;default:false;column:is_public" json:"is_public"`
	// FavoriteQuotes is a JSON array of strings.
	FavoriteQuotes   datatypes.JSON `gorm:"column:favorite_quotes" json:"favorite_quotes,omitempty"`
	ContainsSpoilers bool           `gorm:"not null;default:false;column:contains_spoilers" json:"contains_spoilers"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (BookReview) TableName() string { return "book_review" }
