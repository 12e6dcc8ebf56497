package services

import (
	"context"
	"fmt"
	"math"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/bookkeeper-backend/internal/data/repos"
	types "github.com/yungbote/bookkeeper-backend/internal/domain"
	errs "github.com/yungbote/bookkeeper-backend/internal/pkg/errors"
	"github.com/yungbote/bookkeeper-backend/internal/pkg/logger"
	"github.com/yungbote/bookkeeper-backend/internal/platform/apierr"
)

// JourneyStats is derived from the session log on every read. Nothing here is
// ever persisted; the session history is the single source of truth, so a
// stored "current page" can never drift from it.
type JourneyStats struct {
	TotalSessions  int `json:"total_sessions"`
	TotalPagesRead int `json:"total_pages_read"`
	TotalTimeSpent int `json:"total_time_spent"`
	TotalThoughts  int `json:"total_thoughts"`

	AveragePagesPerSession float64 `json:"average_pages_per_session"`
	AverageTimePerSession  float64 `json:"average_time_per_session"`

	CurrentPage int `json:"current_page"`
	// Percent is nil when the book's page count is unknown or zero.
	Percent *int `json:"percent,omitempty"`
}

// ComputeJourneyStats folds a session list into totals and averages. The
// computation is commutative, so session ordering does not matter. Zero
// sessions produce zero totals and zero averages, not an error.
func ComputeJourneyStats(sessions []*types.ReadingSession, thoughtCount int) JourneyStats {
	stats := JourneyStats{
		TotalSessions: len(sessions),
		TotalThoughts: thoughtCount,
	}
	for _, s := range sessions {
		if s == nil {
			continue
		}
		stats.TotalPagesRead += s.PagesRead
		if s.TimeSpentMinutes != nil {
			stats.TotalTimeSpent += *s.TimeSpentMinutes
		}
	}
	if stats.TotalSessions > 0 {
		stats.AveragePagesPerSession = float64(stats.TotalPagesRead) / float64(stats.TotalSessions)
		stats.AverageTimePerSession = float64(stats.TotalTimeSpent) / float64(stats.TotalSessions)
	}
	stats.CurrentPage = stats.TotalPagesRead
	return stats
}

// PercentComplete rounds currentPage/pageCount to a whole percent, clamped to
// [0,100]. A nil or zero pageCount yields nil: unknown, not zero.
func PercentComplete(currentPage int, pageCount *int) *int {
	if pageCount == nil || *pageCount <= 0 {
		return nil
	}
	pct := int(math.Round(float64(currentPage) / float64(*pageCount) * 100))
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return &pct
}

// ProgressOverview is the read model behind the "Page X of Y" display.
type ProgressOverview struct {
	BookID    uuid.UUID    `json:"book_id"`
	JourneyID *uuid.UUID   `json:"journey_id,omitempty"`
	PageCount *int         `json:"page_count,omitempty"`
	Stats     JourneyStats `json:"stats"`
}

type ProgressService interface {
	// Overview aggregates sessions for a book, optionally scoped to one
	// journey. Journey scope means progress resets per journey: an abandoned
	// attempt's pages never leak into a fresh journey's current page.
	Overview(ctx context.Context, bookID uuid.UUID, journeyID *uuid.UUID) (*ProgressOverview, error)
}

type progressService struct {
	db          *gorm.DB
	log         *logger.Logger
	bookRepo    repos.BookRepo
	sessionRepo repos.SessionRepo
	thoughtRepo repos.ThoughtRepo
}

func NewProgressService(db *gorm.DB, log *logger.Logger, bookRepo repos.BookRepo, sessionRepo repos.SessionRepo, thoughtRepo repos.ThoughtRepo) ProgressService {
	serviceLog := log.With("service", "ProgressService")
	return &progressService{
		db:          db,
		log:         serviceLog,
		bookRepo:    bookRepo,
		sessionRepo: sessionRepo,
		thoughtRepo: thoughtRepo,
	}
}

func (ps *progressService) Overview(ctx context.Context, bookID uuid.UUID, journeyID *uuid.UUID) (*ProgressOverview, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	return readWithRetry(ps.log, func() (*ProgressOverview, error) {
		book, err := ps.bookRepo.GetByIDForUser(ctx, nil, bookID, userID)
		if err != nil {
			return nil, dependencyErr(err)
		}
		if book == nil {
			return nil, apierr.New(http.StatusNotFound, "not_found", fmt.Errorf("book: %w", errs.ErrNotFound))
		}

		sessions, err := ps.sessionRepo.ListForBook(ctx, nil, bookID, userID, journeyID)
		if err != nil {
			return nil, dependencyErr(err)
		}
		thoughtCount, err := ps.thoughtRepo.CountForBook(ctx, nil, bookID, userID, journeyID)
		if err != nil {
			return nil, dependencyErr(err)
		}

		stats := ComputeJourneyStats(sessions, int(thoughtCount))
		stats.Percent = PercentComplete(stats.CurrentPage, book.PageCount)

		return &ProgressOverview{
			BookID:    bookID,
			JourneyID: journeyID,
			PageCount: book.PageCount,
			Stats:     stats,
		}, nil
	})
}
