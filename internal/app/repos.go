package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/bookkeeper-backend/internal/data/repos"
	"github.com/yungbote/bookkeeper-backend/internal/pkg/logger"
)

type Repos struct {
	Book      repos.BookRepo
	Journey   repos.JourneyRepo
	Session   repos.SessionRepo
	Thought   repos.ThoughtRepo
	QuickNote repos.QuickNoteRepo
	Review    repos.ReviewRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Book:      repos.NewBookRepo(db, log),
		Journey:   repos.NewJourneyRepo(db, log),
		Session:   repos.NewSessionRepo(db, log),
		Thought:   repos.NewThoughtRepo(db, log),
		QuickNote: repos.NewQuickNoteRepo(db, log),
		Review:    repos.NewReviewRepo(db, log),
	}
}
