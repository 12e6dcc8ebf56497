package reading

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Book struct {
	ID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	Title  string    `gorm:"not null;column:title" json:"title"`
	Author string    `gorm:"column:author" json:"author"`

	// PageCount is nil when the edition's length is unknown; percent complete
	// is reported as unknown in that case.
	PageCount *int   `gorm:"column:page_count" json:"page_count,omitempty"`
	CoverURL  string `gorm:"column:cover_url" json:"cover_url"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Book) TableName() string { return "book" }
