package db

import (
	types "github.com/yungbote/bookkeeper-backend/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(

		// =========================
		// Catalog
		// =========================
		&types.Book{},

		// =========================
		// Reading journeys
		// =========================
		&types.Journey{},
		&types.ReadingSession{},

		// =========================
		// Annotations + reviews
		// =========================
		&types.ReadingThought{},
		&types.QuickNote{},
		&types.BookReview{},
	); err != nil {
		return err
	}

	return migrateIndexes(db)
}

// migrateIndexes creates the partial unique indexes AutoMigrate cannot
// express. The one-active-journey and one-review-per-journey invariants are
// enforced here so that concurrent writers cannot race past the application
// level pre-checks.
func migrateIndexes(db *gorm.DB) error {
	stmts := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS uniq_journey_active
		   ON journey (book_id, user_id)
		   WHERE status = 'active' AND deleted_at IS NULL`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uniq_book_review_journey
		   ON book_review (journey_id)
		   WHERE deleted_at IS NULL`,
	}
	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
