package services

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/bookkeeper-backend/internal/data/repos"
	types "github.com/yungbote/bookkeeper-backend/internal/domain"
	errs "github.com/yungbote/bookkeeper-backend/internal/pkg/errors"
	"github.com/yungbote/bookkeeper-backend/internal/pkg/logger"
	"github.com/yungbote/bookkeeper-backend/internal/platform/apierr"
)

type AddQuickNoteInput struct {
	JourneyID  uuid.UUID `json:"journey_id"`
	BookID     uuid.UUID `json:"book_id"`
	Content    string    `json:"content"`
	PageNumber *int      `json:"page_number,omitempty"`
}

type QuickNoteService interface {
	Add(ctx context.Context, input AddQuickNoteInput) (*types.QuickNote, error)
	List(ctx context.Context, journeyID uuid.UUID) ([]*types.QuickNote, error)
	ToggleStarred(ctx context.Context, noteID uuid.UUID, starred bool) error
	Delete(ctx context.Context, noteID uuid.UUID) error
	// Convert expands a quick note into a full thought and removes the note.
	// The thought is created first; when the follow-up delete fails, both
	// rows are left in place and the orphan is logged for reconciliation.
	Convert(ctx context.Context, noteID uuid.UUID) (*types.ReadingThought, error)
}

type quickNoteService struct {
	db          *gorm.DB
	log         *logger.Logger
	noteRepo    repos.QuickNoteRepo
	thoughtRepo repos.ThoughtRepo
	journeyRepo repos.JourneyRepo
}

func NewQuickNoteService(db *gorm.DB, log *logger.Logger, noteRepo repos.QuickNoteRepo, thoughtRepo repos.ThoughtRepo, journeyRepo repos.JourneyRepo) QuickNoteService {
	serviceLog := log.With("service", "QuickNoteService")
	return &quickNoteService{
		db:          db,
		log:         serviceLog,
		noteRepo:    noteRepo,
		thoughtRepo: thoughtRepo,
		journeyRepo: journeyRepo,
	}
}

// pagePrefixRe matches a leading "p127:", "page 127:" or "127:" token.
var pagePrefixRe = regexp.MustCompile(`(?i)^(?:p(?:age)?\s*)?(\d+)\s*:\s*`)

// ParsePagePrefix strips a leading page marker out of raw note text. The
// second return is nil when no marker is present; content is returned
// unchanged in that case.
func ParsePagePrefix(raw string) (string, *int) {
	m := pagePrefixRe.FindStringSubmatch(raw)
	if m == nil {
		return raw, nil
	}
	page, err := strconv.Atoi(m[1])
	if err != nil {
		return raw, nil
	}
	rest := strings.TrimSpace(raw[len(m[0]):])
	return rest, &page
}

func (qs *quickNoteService) Add(ctx context.Context, input AddQuickNoteInput) (*types.QuickNote, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	content := strings.TrimSpace(input.Content)
	pageNumber := input.PageNumber
	if parsed, page := ParsePagePrefix(content); page != nil {
		content = parsed
		// An explicit page number wins over the inline marker.
		if pageNumber == nil {
			pageNumber = page
		}
	}
	if content == "" {
		return nil, apierr.New(http.StatusBadRequest, "validation_failed",
			fmt.Errorf("note content is required: %w", errs.ErrInvalidArgument))
	}

	journey, err := qs.journeyRepo.GetByIDForUser(ctx, nil, input.JourneyID, userID)
	if err != nil {
		return nil, dependencyErr(err)
	}
	if journey == nil {
		return nil, apierr.New(http.StatusNotFound, "not_found", fmt.Errorf("journey: %w", errs.ErrNotFound))
	}

	rows, err := qs.noteRepo.Create(ctx, nil, []*types.QuickNote{{
		ID:         uuid.New(),
		JourneyID:  journey.ID,
		BookID:     journey.BookID,
		UserID:     userID,
		Content:    content,
		PageNumber: pageNumber,
	}})
	if err != nil {
		return nil, dependencyErr(err)
	}
	return rows[0], nil
}

func (qs *quickNoteService) List(ctx context.Context, journeyID uuid.UUID) ([]*types.QuickNote, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	return readWithRetry(qs.log, func() ([]*types.QuickNote, error) {
		notes, err := qs.noteRepo.ListForJourney(ctx, nil, journeyID, userID)
		if err != nil {
			return nil, dependencyErr(err)
		}
		return notes, nil
	})
}

func (qs *quickNoteService) ToggleStarred(ctx context.Context, noteID uuid.UUID, starred bool) error {
	userID, err := callerID(ctx)
	if err != nil {
		return err
	}

	updated, err := qs.noteRepo.UpdateStarred(ctx, nil, noteID, userID, starred)
	if err != nil {
		return dependencyErr(err)
	}
	if !updated {
		return apierr.New(http.StatusNotFound, "not_found", fmt.Errorf("quick note: %w", errs.ErrNotFound))
	}
	return nil
}

func (qs *quickNoteService) Delete(ctx context.Context, noteID uuid.UUID) error {
	userID, err := callerID(ctx)
	if err != nil {
		return err
	}

	deleted, err := qs.noteRepo.Delete(ctx, nil, noteID, userID)
	if err != nil {
		return dependencyErr(err)
	}
	if !deleted {
		return apierr.New(http.StatusNotFound, "not_found", fmt.Errorf("quick note: %w", errs.ErrNotFound))
	}
	return nil
}

func (qs *quickNoteService) Convert(ctx context.Context, noteID uuid.UUID) (*types.ReadingThought, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	note, err := qs.noteRepo.GetByIDForUser(ctx, nil, noteID, userID)
	if err != nil {
		return nil, dependencyErr(err)
	}
	if note == nil {
		return nil, apierr.New(http.StatusNotFound, "not_found", fmt.Errorf("quick note: %w", errs.ErrNotFound))
	}

	// Deliberately create-then-delete in two statements rather than one
	// transaction: when the create fails the note survives, and when only
	// the delete fails we keep both rows instead of losing the thought.
	rows, err := qs.thoughtRepo.Create(ctx, nil, []*types.ReadingThought{{
		ID:         uuid.New(),
		JourneyID:  note.JourneyID,
		BookID:     note.BookID,
		UserID:     userID,
		Content:    note.Content,
		PageNumber: note.PageNumber,
	}})
	if err != nil {
		return nil, dependencyErr(err)
	}
	thought := rows[0]

	if _, err := qs.noteRepo.Delete(ctx, nil, noteID, userID); err != nil {
		qs.log.Error("note delete failed after conversion, manual reconciliation needed",
			"note_id", noteID, "thought_id", thought.ID, "error", err)
	}
	return thought, nil
}
