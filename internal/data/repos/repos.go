package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/bookkeeper-backend/internal/data/repos/reading"
	"github.com/yungbote/bookkeeper-backend/internal/pkg/logger"
)

type BookRepo = reading.BookRepo
type JourneyRepo = reading.JourneyRepo
type SessionRepo = reading.SessionRepo
type ThoughtRepo = reading.ThoughtRepo
type QuickNoteRepo = reading.QuickNoteRepo
type ReviewRepo = reading.ReviewRepo

func NewBookRepo(db *gorm.DB, baseLog *logger.Logger) BookRepo {
	return reading.NewBookRepo(db, baseLog)
}
func NewJourneyRepo(db *gorm.DB, baseLog *logger.Logger) JourneyRepo {
	return reading.NewJourneyRepo(db, baseLog)
}
func NewSessionRepo(db *gorm.DB, baseLog *logger.Logger) SessionRepo {
	return reading.NewSessionRepo(db, baseLog)
}
func NewThoughtRepo(db *gorm.DB, baseLog *logger.Logger) ThoughtRepo {
	return reading.NewThoughtRepo(db, baseLog)
}
func NewQuickNoteRepo(db *gorm.DB, baseLog *logger.Logger) QuickNoteRepo {
	return reading.NewQuickNoteRepo(db, baseLog)
}
func NewReviewRepo(db *gorm.DB, baseLog *logger.Logger) ReviewRepo {
	return reading.NewReviewRepo(db, baseLog)
}
