package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/bookkeeper-backend/internal/data/repos"
	types "github.com/yungbote/bookkeeper-backend/internal/domain"
	errs "github.com/yungbote/bookkeeper-backend/internal/pkg/errors"
	"github.com/yungbote/bookkeeper-backend/internal/pkg/logger"
	"github.com/yungbote/bookkeeper-backend/internal/platform/apierr"
)

type AddThoughtInput struct {
	JourneyID        *uuid.UUID `json:"journey_id,omitempty"`
	Content          string     `json:"content"`
	PageNumber       *int       `json:"page_number,omitempty"`
	Chapter          *string    `json:"chapter,omitempty"`
	ContainsSpoilers bool       `json:"contains_spoilers"`
}

type ThoughtService interface {
	// Add records a during-reading thought. A nil JourneyID resolves the
	// book's active journey, creating one when none exists; a supplied
	// journey id must belong to the caller and to bookID.
	Add(ctx context.Context, bookID uuid.UUID, input AddThoughtInput) (*types.ReadingThought, error)
	ListForBook(ctx context.Context, bookID uuid.UUID, journeyID *uuid.UUID) ([]*types.ReadingThought, error)
}

type thoughtService struct {
	db             *gorm.DB
	log            *logger.Logger
	thoughtRepo    repos.ThoughtRepo
	journeyRepo    repos.JourneyRepo
	journeyService JourneyService
}

func NewThoughtService(db *gorm.DB, log *logger.Logger, thoughtRepo repos.ThoughtRepo, journeyRepo repos.JourneyRepo, journeyService JourneyService) ThoughtService {
	serviceLog := log.With("service", "ThoughtService")
	return &thoughtService{
		db:             db,
		log:            serviceLog,
		thoughtRepo:    thoughtRepo,
		journeyRepo:    journeyRepo,
		journeyService: journeyService,
	}
}

func (ts *thoughtService) Add(ctx context.Context, bookID uuid.UUID, input AddThoughtInput) (*types.ReadingThought, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, apierr.New(http.StatusBadRequest, "validation_failed",
			fmt.Errorf("thought content is required: %w", errs.ErrInvalidArgument))
	}

	var created *types.ReadingThought
	txErr := ts.db.Transaction(func(tx *gorm.DB) error {
		journeyID := input.JourneyID
		if journeyID != nil {
			journey, err := resolveOwnedJourney(ctx, tx, ts.journeyRepo, *journeyID, bookID, userID)
			if err != nil {
				return err
			}
			journeyID = &journey.ID
		} else {
			journey, err := ts.journeyService.ResolveOrCreateActive(ctx, tx, bookID, userID)
			if err != nil {
				return err
			}
			journeyID = &journey.ID
		}

		rows, err := ts.thoughtRepo.Create(ctx, tx, []*types.ReadingThought{{
			ID:               uuid.New(),
			JourneyID:        *journeyID,
			BookID:           bookID,
			UserID:           userID,
			Content:          content,
			PageNumber:       input.PageNumber,
			Chapter:          input.Chapter,
			ContainsSpoilers: input.ContainsSpoilers,
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

func (ts *thoughtService) ListForBook(ctx context.Context, bookID uuid.UUID, journeyID *uuid.UUID) ([]*types.ReadingThought, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	return readWithRetry(ts.log, func() ([]*types.ReadingThought, error) {
		thoughts, err := ts.thoughtRepo.ListForBook(ctx, nil, bookID, userID, journeyID)
		if err != nil {
			return nil, dependencyErr(err)
		}
		return thoughts, nil
	})
}
