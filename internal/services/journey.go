package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/bookkeeper-backend/internal/clients/redis"
	"github.com/yungbote/bookkeeper-backend/internal/data/repos"
	types "github.com/yungbote/bookkeeper-backend/internal/domain"
	errs "github.com/yungbote/bookkeeper-backend/internal/pkg/errors"
	"github.com/yungbote/bookkeeper-backend/internal/pkg/logger"
	"github.com/yungbote/bookkeeper-backend/internal/platform/apierr"
	"github.com/yungbote/bookkeeper-backend/internal/realtime"
)

type StartJourneyInput struct {
	SessionName string           `json:"session_name"`
	Visibility  types.Visibility `json:"visibility"`
}

type CompleteJourneyInput struct {
	Rating     int     `json:"rating"`
	ReviewText *string `json:"review_text,omitempty"`
}

type JourneyService interface {
	GetActive(ctx context.Context, bookID uuid.UUID) (*types.Journey, error)
	Start(ctx context.Context, bookID uuid.UUID, input StartJourneyInput) (*types.Journey, error)
	List(ctx context.Context, bookID uuid.UUID) ([]*types.JourneyWithCounts, error)
	Rename(ctx context.Context, journeyID uuid.UUID, sessionName string) error
	SetVisibility(ctx context.Context, journeyID uuid.UUID, visibility types.Visibility) error
	Complete(ctx context.Context, journeyID uuid.UUID, input CompleteJourneyInput) (*types.Journey, error)
	Abandon(ctx context.Context, journeyID uuid.UUID, reason *string) (*types.Journey, error)

	// ResolveOrCreateActive returns the active journey for a book, creating
	// one when none exists. Session logging and thought creation both funnel
	// through here so the one-active-journey invariant stays in one place.
	ResolveOrCreateActive(ctx context.Context, tx *gorm.DB, bookID, userID uuid.UUID) (*types.Journey, error)
}

type journeyService struct {
	db          *gorm.DB
	log         *logger.Logger
	bookRepo    repos.BookRepo
	journeyRepo repos.JourneyRepo
	reviewRepo  repos.ReviewRepo
	feedBus     redis.FeedBus
}

func NewJourneyService(db *gorm.DB, log *logger.Logger, bookRepo repos.BookRepo, journeyRepo repos.JourneyRepo, reviewRepo repos.ReviewRepo, feedBus redis.FeedBus) JourneyService {
	serviceLog := log.With("service", "JourneyService")
	return &journeyService{
		db:          db,
		log:         serviceLog,
		bookRepo:    bookRepo,
		journeyRepo: journeyRepo,
		reviewRepo:  reviewRepo,
		feedBus:     feedBus,
	}
}

func (js *journeyService) GetActive(ctx context.Context, bookID uuid.UUID) (*types.Journey, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	return readWithRetry(js.log, func() (*types.Journey, error) {
		journey, err := js.journeyRepo.GetActive(ctx, nil, bookID, userID)
		if err != nil {
			return nil, dependencyErr(err)
		}
		return journey, nil
	})
}

func (js *journeyService) Start(ctx context.Context, bookID uuid.UUID, input StartJourneyInput) (*types.Journey, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	visibility := input.Visibility
	if visibility == "" {
		visibility = types.VisibilityPrivate
	}
	if !visibility.Valid() {
		return nil, apierr.New(http.StatusBadRequest, "validation_failed",
			fmt.Errorf("unknown visibility %q: %w", input.Visibility, errs.ErrInvalidArgument))
	}

	var created *types.Journey
	txErr := js.db.Transaction(func(tx *gorm.DB) error {
		book, err := js.bookRepo.GetByIDForUser(ctx, tx, bookID, userID)
		if err != nil {
			return dependencyErr(err)
		}
		if book == nil {
			return apierr.New(http.StatusNotFound, "not_found", fmt.Errorf("book: %w", errs.ErrNotFound))
		}

		existing, err := js.journeyRepo.GetActive(ctx, tx, bookID, userID)
		if err != nil {
			return dependencyErr(err)
		}
		if existing != nil {
			return apierr.New(http.StatusConflict, "active_journey_exists",
				fmt.Errorf("journey %s is still active: %w", existing.ID, errs.ErrConflict))
		}

		rows, err := js.journeyRepo.Create(ctx, tx, []*types.Journey{{
			ID:          uuid.New(),
			BookID:      bookID,
			UserID:      userID,
			Status:      types.JourneyStatusActive,
			SessionName: strings.TrimSpace(input.SessionName),
			Visibility:  visibility,
			StartedAt:   time.Now().UTC(),
		}})
		if err != nil {
			// The partial unique index backstops racing starts past the
			// pre-check above.
			if isUniqueViolation(err) {
				return apierr.New(http.StatusConflict, "active_journey_exists",
					fmt.Errorf("journey already active: %w", errs.ErrConflict))
			}
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

func (js *journeyService) List(ctx context.Context, bookID uuid.UUID) ([]*types.JourneyWithCounts, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	return readWithRetry(js.log, func() ([]*types.JourneyWithCounts, error) {
		journeys, err := js.journeyRepo.ListWithCounts(ctx, nil, bookID, userID)
		if err != nil {
			return nil, dependencyErr(err)
		}
		return journeys, nil
	})
}

func (js *journeyService) Rename(ctx context.Context, journeyID uuid.UUID, sessionName string) error {
	userID, err := callerID(ctx)
	if err != nil {
		return err
	}

	updated, err := js.journeyRepo.UpdateName(ctx, nil, journeyID, userID, strings.TrimSpace(sessionName))
	if err != nil {
		return dependencyErr(err)
	}
	if !updated {
		return apierr.New(http.StatusNotFound, "not_found", fmt.Errorf("journey: %w", errs.ErrNotFound))
	}
	return nil
}

func (js *journeyService) SetVisibility(ctx context.Context, journeyID uuid.UUID, visibility types.Visibility) error {
	userID, err := callerID(ctx)
	if err != nil {
		return err
	}

	if !visibility.Valid() {
		return apierr.New(http.StatusBadRequest, "validation_failed",
			fmt.Errorf("unknown visibility %q: %w", visibility, errs.ErrInvalidArgument))
	}

	updated, err := js.journeyRepo.UpdateVisibility(ctx, nil, journeyID, userID, visibility)
	if err != nil {
		return dependencyErr(err)
	}
	if !updated {
		return apierr.New(http.StatusNotFound, "not_found", fmt.Errorf("journey: %w", errs.ErrNotFound))
	}
	return nil
}

func (js *journeyService) Complete(ctx context.Context, journeyID uuid.UUID, input CompleteJourneyInput) (*types.Journey, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	if input.Rating < 1 || input.Rating > 5 {
		return nil, apierr.New(http.StatusBadRequest, "validation_failed",
			fmt.Errorf("rating must be between 1 and 5: %w", errs.ErrInvalidArgument))
	}

	var completed *types.Journey
	txErr := js.db.Transaction(func(tx *gorm.DB) error {
		rating := input.Rating
		transitioned, err := js.journeyRepo.CompleteIfActive(ctx, tx, journeyID, userID, &rating, time.Now().UTC())
		if err != nil {
			return dependencyErr(err)
		}
		if !transitioned {
			return js.transitionFailure(ctx, tx, journeyID, userID, "complete")
		}

		journey, err := js.journeyRepo.GetByIDForUser(ctx, tx, journeyID, userID)
		if err != nil {
			return dependencyErr(err)
		}
		if journey == nil {
			return apierr.New(http.StatusNotFound, "not_found", fmt.Errorf("journey: %w", errs.ErrNotFound))
		}
		completed = journey

		if input.ReviewText != nil && strings.TrimSpace(*input.ReviewText) != "" {
			review := &types.BookReview{
				ID:             uuid.New(),
				JourneyID:      journeyID,
				BookID:         journey.BookID,
				UserID:         userID,
				Rating:         input.Rating,
				ReviewText:     strings.TrimSpace(*input.ReviewText),
				WouldRecommend: types.RecommendMaybe,
			}
			if err := js.reviewRepo.Upsert(ctx, tx, review); err != nil {
				return dependencyErr(err)
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	js.publishFeed(ctx, realtime.FeedEvent{
		Type:       realtime.FeedEventJourneyCompleted,
		UserID:     userID,
		BookID:     completed.BookID,
		JourneyID:  completed.ID,
		Rating:     completed.Rating,
		Visibility: string(completed.Visibility),
		OccurredAt: time.Now().UTC(),
	})

	return completed, nil
}

func (js *journeyService) Abandon(ctx context.Context, journeyID uuid.UUID, reason *string) (*types.Journey, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	var abandoned *types.Journey
	txErr := js.db.Transaction(func(tx *gorm.DB) error {
		transitioned, err := js.journeyRepo.AbandonIfActive(ctx, tx, journeyID, userID, reason, time.Now().UTC())
		if err != nil {
			return dependencyErr(err)
		}
		if !transitioned {
			return js.transitionFailure(ctx, tx, journeyID, userID, "abandon")
		}

		journey, err := js.journeyRepo.GetByIDForUser(ctx, tx, journeyID, userID)
		if err != nil {
			return dependencyErr(err)
		}
		abandoned = journey
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return abandoned, nil
}

func (js *journeyService) ResolveOrCreateActive(ctx context.Context, tx *gorm.DB, bookID, userID uuid.UUID) (*types.Journey, error) {
	existing, err := js.journeyRepo.GetActive(ctx, tx, bookID, userID)
	if err != nil {
		return nil, dependencyErr(err)
	}
	if existing != nil {
		return existing, nil
	}

	book, err := js.bookRepo.GetByIDForUser(ctx, tx, bookID, userID)
	if err != nil {
		return nil, dependencyErr(err)
	}
	if book == nil {
		return nil, apierr.New(http.StatusNotFound, "not_found", fmt.Errorf("book: %w", errs.ErrNotFound))
	}

	rows, err := js.journeyRepo.Create(ctx, tx, []*types.Journey{{
		ID:         uuid.New(),
		BookID:     bookID,
		UserID:     userID,
		Status:     types.JourneyStatusActive,
		Visibility: types.VisibilityPrivate,
		StartedAt:  time.Now().UTC(),
	}})
	if err != nil {
		if isUniqueViolation(err) {
			// Another request vivified the journey first; use theirs.
			winner, getErr := js.journeyRepo.GetActive(ctx, tx, bookID, userID)
			if getErr == nil && winner != nil {
				return winner, nil
			}
			return nil, apierr.New(http.StatusConflict, "active_journey_exists",
				fmt.Errorf("journey already active: %w", errs.ErrConflict))
		}
		return nil, dependencyErr(err)
	}
	js.log.Info("auto-created journey", "journey_id", rows[0].ID, "book_id", bookID)
	return rows[0], nil
}

// transitionFailure turns a zero-rows-affected conditional update into the
// right taxonomy error: 404 when the journey is missing or foreign, 409 when
// it exists but is not active.
func (js *journeyService) transitionFailure(ctx context.Context, tx *gorm.DB, journeyID, userID uuid.UUID, action string) error {
	journey, err := js.journeyRepo.GetByIDForUser(ctx, tx, journeyID, userID)
	if err != nil {
		return dependencyErr(err)
	}
	if journey == nil {
		return apierr.New(http.StatusNotFound, "not_found", fmt.Errorf("journey: %w", errs.ErrNotFound))
	}
	return apierr.New(http.StatusConflict, "invalid_state",
		fmt.Errorf("cannot %s a journey with status %q: %w", action, journey.Status, errs.ErrInvalidState))
}

func (js *journeyService) publishFeed(ctx context.Context, ev realtime.FeedEvent) {
	if js.feedBus == nil {
		return
	}
	// Best-effort: a feed outage must not turn a finished journey into an
	// error response.
	if err := js.feedBus.Publish(ctx, ev); err != nil {
		js.log.Warn("feed publish failed", "type", ev.Type, "journey_id", ev.JourneyID, "error", err)
	}
}
