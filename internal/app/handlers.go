package app

import (
	"github.com/yungbote/bookkeeper-backend/internal/http/handlers"
	"github.com/yungbote/bookkeeper-backend/internal/pkg/logger"
)

type Handlers struct {
	Book     *handlers.BookHandler
	Journey  *handlers.JourneyHandler
	Session  *handlers.SessionHandler
	Thought  *handlers.ThoughtHandler
	Note     *handlers.QuickNoteHandler
	Review   *handlers.ReviewHandler
	Progress *handlers.ProgressHandler
	Health   *handlers.HealthHandler
}

func wireHandlers(log *logger.Logger, s Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Book:     handlers.NewBookHandler(log, s.Book),
		Journey:  handlers.NewJourneyHandler(log, s.Journey),
		Session:  handlers.NewSessionHandler(log, s.Session),
		Thought:  handlers.NewThoughtHandler(log, s.Thought),
		Note:     handlers.NewQuickNoteHandler(log, s.QuickNote),
		Review:   handlers.NewReviewHandler(log, s.Review),
		Progress: handlers.NewProgressHandler(log, s.Progress),
		Health:   handlers.NewHealthHandler(),
	}
}
