package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/bookkeeper-backend/internal/clients/redis"
	"github.com/yungbote/bookkeeper-backend/internal/pkg/logger"
	"github.com/yungbote/bookkeeper-backend/internal/services"
)

type Services struct {
	Book      services.BookService
	Journey   services.JourneyService
	Session   services.SessionService
	Thought   services.ThoughtService
	QuickNote services.QuickNoteService
	Review    services.ReviewService
	Progress  services.ProgressService
}

// wireServices builds the service set. The feed bus is optional: when redis
// is unreachable the app runs without feed publishing rather than failing
// startup.
func wireServices(db *gorm.DB, log *logger.Logger, r Repos) (Services, redis.FeedBus) {
	log.Info("Wiring services...")

	feedBus, err := redis.NewFeedBus(log)
	if err != nil {
		log.Warn("feed bus unavailable, continuing without feed publishing", "error", err)
		feedBus = nil
	}

	journey := services.NewJourneyService(db, log, r.Book, r.Journey, r.Review, feedBus)

	return Services{
		Book:      services.NewBookService(db, log, r.Book),
		Journey:   journey,
		Session:   services.NewSessionService(db, log, r.Session, r.Journey, journey),
		Thought:   services.NewThoughtService(db, log, r.Thought, r.Journey, journey),
		QuickNote: services.NewQuickNoteService(db, log, r.QuickNote, r.Thought, r.Journey),
		Review:    services.NewReviewService(db, log, r.Review, r.Journey, feedBus),
		Progress:  services.NewProgressService(db, log, r.Book, r.Session, r.Thought),
	}, feedBus
}
