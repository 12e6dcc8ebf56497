package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/bookkeeper-backend/internal/data/repos"
	types "github.com/yungbote/bookkeeper-backend/internal/domain"
	errs "github.com/yungbote/bookkeeper-backend/internal/pkg/errors"
	"github.com/yungbote/bookkeeper-backend/internal/pkg/logger"
	"github.com/yungbote/bookkeeper-backend/internal/platform/apierr"
)

type LogSessionInput struct {
	JourneyID        *uuid.UUID `json:"journey_id,omitempty"`
	SessionDate      time.Time  `json:"session_date"`
	StartPage        *int       `json:"start_page,omitempty"`
	EndPage          *int       `json:"end_page,omitempty"`
	PagesRead        int        `json:"pages_read"`
	TimeSpentMinutes *int       `json:"time_spent_minutes,omitempty"`
	Mood             *string    `json:"mood,omitempty"`
	Notes            *string    `json:"notes,omitempty"`
}

type SessionService interface {
	// Log appends one reading session. When input.JourneyID is nil the active
	// journey for the book is resolved, auto-creating one if needed; a
	// supplied journey id must belong to the caller and to bookID. Sessions
	// never mutate journey or book rows; progress is derived on read.
	Log(ctx context.Context, bookID uuid.UUID, input LogSessionInput) (*types.ReadingSession, error)
	ListForBook(ctx context.Context, bookID uuid.UUID, journeyID *uuid.UUID) ([]*types.ReadingSession, error)
}

type sessionService struct {
	db             *gorm.DB
	log            *logger.Logger
	sessionRepo    repos.SessionRepo
	journeyRepo    repos.JourneyRepo
	journeyService JourneyService
}

func NewSessionService(db *gorm.DB, log *logger.Logger, sessionRepo repos.SessionRepo, journeyRepo repos.JourneyRepo, journeyService JourneyService) SessionService {
	serviceLog := log.With("service", "SessionService")
	return &sessionService{
		db:             db,
		log:            serviceLog,
		sessionRepo:    sessionRepo,
		journeyRepo:    journeyRepo,
		journeyService: journeyService,
	}
}

func (ss *sessionService) Log(ctx context.Context, bookID uuid.UUID, input LogSessionInput) (*types.ReadingSession, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	if err := validateSessionInput(input); err != nil {
		return nil, err
	}

	sessionDate := input.SessionDate
	if sessionDate.IsZero() {
		sessionDate = time.Now().UTC()
	}

	var created *types.ReadingSession
	txErr := ss.db.Transaction(func(tx *gorm.DB) error {
		journeyID := input.JourneyID
		if journeyID != nil {
			journey, err := resolveOwnedJourney(ctx, tx, ss.journeyRepo, *journeyID, bookID, userID)
			if err != nil {
				return err
			}
			journeyID = &journey.ID
		} else {
			journey, err := ss.journeyService.ResolveOrCreateActive(ctx, tx, bookID, userID)
			if err != nil {
				return err
			}
			journeyID = &journey.ID
		}

		rows, err := ss.sessionRepo.Create(ctx, tx, []*types.ReadingSession{{
			ID:               uuid.New(),
			JourneyID:        journeyID,
			BookID:           bookID,
			UserID:           userID,
			SessionDate:      sessionDate,
			StartPage:        input.StartPage,
			EndPage:          input.EndPage,
			PagesRead:        input.PagesRead,
			TimeSpentMinutes: input.TimeSpentMinutes,
			Mood:             input.Mood,
			Notes:            input.Notes,
		}})
		if err != nil {
			return dependencyErr(err)
		}
		created = rows[0]
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return created, nil
}

func (ss *sessionService) ListForBook(ctx context.Context, bookID uuid.UUID, journeyID *uuid.UUID) ([]*types.ReadingSession, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	return readWithRetry(ss.log, func() ([]*types.ReadingSession, error) {
		sessions, err := ss.sessionRepo.ListForBook(ctx, nil, bookID, userID, journeyID)
		if err != nil {
			return nil, dependencyErr(err)
		}
		return sessions, nil
	})
}

func validateSessionInput(input LogSessionInput) error {
	if input.PagesRead < 1 {
		return apierr.New(http.StatusBadRequest, "validation_failed",
			fmt.Errorf("pages_read must be at least 1: %w", errs.ErrInvalidArgument))
	}
	if input.StartPage != nil && input.EndPage != nil && *input.EndPage <= *input.StartPage {
		return apierr.New(http.StatusBadRequest, "validation_failed",
			fmt.Errorf("end_page must be greater than start_page: %w", errs.ErrInvalidArgument))
	}
	if input.SessionDate.After(time.Now().Add(time.Minute)) {
		return apierr.New(http.StatusBadRequest, "validation_failed",
			fmt.Errorf("session_date may not be in the future: %w", errs.ErrInvalidArgument))
	}
	if input.TimeSpentMinutes != nil && *input.TimeSpentMinutes < 0 {
		return apierr.New(http.StatusBadRequest, "validation_failed",
			fmt.Errorf("time_spent_minutes may not be negative: %w", errs.ErrInvalidArgument))
	}
	return nil
}
