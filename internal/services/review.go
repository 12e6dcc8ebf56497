package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/bookkeeper-backend/internal/clients/redis"
	"github.com/yungbote/bookkeeper-backend/internal/data/repos"
	types "github.com/yungbote/bookkeeper-backend/internal/domain"
	errs "github.com/yungbote/bookkeeper-backend/internal/pkg/errors"
	"github.com/yungbote/bookkeeper-backend/internal/pkg/logger"
	"github.com/yungbote/bookkeeper-backend/internal/platform/apierr"
	"github.com/yungbote/bookkeeper-backend/internal/realtime"
)

type SubmitReviewInput struct {
	// Rating defaults to 5 when omitted.
	Rating           *int                 `json:"rating,omitempty"`
	Title            string               `json:"title"`
	ReviewText       string               `json:"review_text"`
	WouldRecommend   types.Recommendation `json:"would_recommend"`
	IsPublic         bool                 `json:"is_public"`
	FavoriteQuotes   []string             `json:"favorite_quotes,omitempty"`
	ContainsSpoilers bool                 `json:"contains_spoilers"`
}

type ReviewService interface {
	// Submit upserts the journey's review: a second submission updates the
	// existing row rather than duplicating it.
	Submit(ctx context.Context, journeyID uuid.UUID, input SubmitReviewInput) (*types.BookReview, error)
	GetForJourney(ctx context.Context, journeyID uuid.UUID) (*types.BookReview, error)
	ListForBook(ctx context.Context, bookID uuid.UUID, journeyID *uuid.UUID) ([]*types.BookReview, error)
}

type reviewService struct {
	db          *gorm.DB
	log         *logger.Logger
	reviewRepo  repos.ReviewRepo
	journeyRepo repos.JourneyRepo
	feedBus     redis.FeedBus
}

func NewReviewService(db *gorm.DB, log *logger.Logger, reviewRepo repos.ReviewRepo, journeyRepo repos.JourneyRepo, feedBus redis.FeedBus) ReviewService {
	serviceLog := log.With("service", "ReviewService")
	return &reviewService{
		db:          db,
		log:         serviceLog,
		reviewRepo:  reviewRepo,
		journeyRepo: journeyRepo,
		feedBus:     feedBus,
	}
}

func (rs *reviewService) Submit(ctx context.Context, journeyID uuid.UUID, input SubmitReviewInput) (*types.BookReview, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	rating := 5
	if input.Rating != nil {
		rating = *input.Rating
	}
	if rating < 1 || rating > 5 {
		return nil, apierr.New(http.StatusBadRequest, "validation_failed",
			fmt.Errorf("rating must be between 1 and 5: %w", errs.ErrInvalidArgument))
	}

	recommend := input.WouldRecommend
	if recommend == "" {
		recommend = types.RecommendMaybe
	}
	if !recommend.Valid() {
		return nil, apierr.New(http.StatusBadRequest, "validation_failed",
			fmt.Errorf("unknown recommendation %q: %w", input.WouldRecommend, errs.ErrInvalidArgument))
	}

	quotes := datatypes.JSON([]byte("[]"))
	if len(input.FavoriteQuotes) > 0 {
		raw, err := json.Marshal(input.FavoriteQuotes)
		if err != nil {
			return nil, apierr.New(http.StatusBadRequest, "validation_failed",
				fmt.Errorf("favorite_quotes: %w", errs.ErrInvalidArgument))
		}
		quotes = datatypes.JSON(raw)
	}

	journey, err := rs.journeyRepo.GetByIDForUser(ctx, nil, journeyID, userID)
	if err != nil {
		return nil, dependencyErr(err)
	}
	if journey == nil {
		return nil, apierr.New(http.StatusNotFound, "not_found", fmt.Errorf("journey: %w", errs.ErrNotFound))
	}

	review := &types.BookReview{
		ID:               uuid.New(),
		JourneyID:        journeyID,
		BookID:           journey.BookID,
		UserID:           userID,
		Rating:           rating,
		Title:            strings.TrimSpace(input.Title),
		ReviewText:       strings.TrimSpace(input.ReviewText),
		WouldRecommend:   recommend,
		IsPublic:         input.IsPublic,
		FavoriteQuotes:   quotes,
		ContainsSpoilers: input.ContainsSpoilers,
	}
	if err := rs.reviewRepo.Upsert(ctx, nil, review); err != nil {
		return nil, dependencyErr(err)
	}

	if review.IsPublic && rs.feedBus != nil {
		ev := realtime.FeedEvent{
			Type:       realtime.FeedEventReviewPublished,
			UserID:     userID,
			BookID:     journey.BookID,
			JourneyID:  journeyID,
			Rating:     &rating,
			Visibility: string(journey.Visibility),
			OccurredAt: time.Now().UTC(),
		}
		if err := rs.feedBus.Publish(ctx, ev); err != nil {
			rs.log.Warn("feed publish failed", "type", ev.Type, "journey_id", journeyID, "error", err)
		}
	}

	return review, nil
}

func (rs *reviewService) GetForJourney(ctx context.Context, journeyID uuid.UUID) (*types.BookReview, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	return readWithRetry(rs.log, func() (*types.BookReview, error) {
		review, err := rs.reviewRepo.GetByJourneyID(ctx, nil, journeyID, userID)
		if err != nil {
			return nil, dependencyErr(err)
		}
		if review == nil {
			return nil, apierr.New(http.StatusNotFound, "not_found", fmt.Errorf("review: %w", errs.ErrNotFound))
		}
		return review, nil
	})
}

func (rs *reviewService) ListForBook(ctx context.Context, bookID uuid.UUID, journeyID *uuid.UUID) ([]*types.BookReview, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	return readWithRetry(rs.log, func() ([]*types.BookReview, error) {
		reviews, err := rs.reviewRepo.ListForBook(ctx, nil, bookID, userID, journeyID)
		if err != nil {
			return nil, dependencyErr(err)
		}
		return reviews, nil
	})
}
