package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/bookkeeper-backend/internal/data/repos"
	"github.com/yungbote/bookkeeper-backend/internal/data/repos/testutil"
	types "github.com/yungbote/bookkeeper-backend/internal/domain"
	"github.com/yungbote/bookkeeper-backend/internal/pkg/ctxutil"
	errs "github.com/yungbote/bookkeeper-backend/internal/pkg/errors"
	"github.com/yungbote/bookkeeper-backend/internal/platform/apierr"
)

func TestQuickNoteCapture(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)

	userID := uuid.New()
	ctx := ctxutil.WithRequestData(context.Background(), &ctxutil.RequestData{UserID: userID})

	noteRepo := repos.NewQuickNoteRepo(tx, log)
	thoughtRepo := repos.NewThoughtRepo(tx, log)
	journeyRepo := repos.NewJourneyRepo(tx, log)
	noteSvc := NewQuickNoteService(tx, log, noteRepo, thoughtRepo, journeyRepo)

	book := testutil.SeedBook(t, ctx, tx, userID, nil)
	journey := testutil.SeedJourney(t, ctx, tx, book.ID, userID, types.JourneyStatusActive)

	note, err := noteSvc.Add(ctx, AddQuickNoteInput{
		JourneyID: journey.ID,
		BookID:    book.ID,
		Content:   "p127: loved this twist",
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if note.Content != "loved this twist" {
		t.Fatalf("content = %q, want page marker stripped", note.Content)
	}
	if note.PageNumber == nil || *note.PageNumber != 127 {
		t.Fatalf("page = %v, want 127", note.PageNumber)
	}

	// An explicit page number beats the inline marker.
	note2, err := noteSvc.Add(ctx, AddQuickNoteInput{
		JourneyID:  journey.ID,
		BookID:     book.ID,
		Content:    "p50: also good",
		PageNumber: testutil.IntPtr(200),
	})
	if err != nil {
		t.Fatalf("Add with explicit page: %v", err)
	}
	if note2.PageNumber == nil || *note2.PageNumber != 200 {
		t.Fatalf("page = %v, want explicit 200", note2.PageNumber)
	}

	if err := noteSvc.ToggleStarred(ctx, note.ID, true); err != nil {
		t.Fatalf("ToggleStarred: %v", err)
	}
	notes, err := noteSvc.List(ctx, journey.ID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(notes) != 2 || notes[0].ID != note.ID {
		t.Fatalf("list = %d notes, want starred note first", len(notes))
	}
}

func TestQuickNoteConvert(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)

	userID := uuid.New()
	ctx := ctxutil.WithRequestData(context.Background(), &ctxutil.RequestData{UserID: userID})

	noteRepo := repos.NewQuickNoteRepo(tx, log)
	thoughtRepo := repos.NewThoughtRepo(tx, log)
	journeyRepo := repos.NewJourneyRepo(tx, log)
	noteSvc := NewQuickNoteService(tx, log, noteRepo, thoughtRepo, journeyRepo)

	book := testutil.SeedBook(t, ctx, tx, userID, nil)
	journey := testutil.SeedJourney(t, ctx, tx, book.ID, userID, types.JourneyStatusActive)
	note := testutil.SeedQuickNote(t, ctx, tx, journey, "expand me", false)

	thought, err := noteSvc.Convert(ctx, note.ID)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if thought.Content != "expand me" {
		t.Fatalf("thought content = %q, want note content", thought.Content)
	}
	if thought.JourneyID != journey.ID || thought.BookID != book.ID {
		t.Fatalf("thought refs = %s/%s, want journey/book carried over", thought.JourneyID, thought.BookID)
	}

	// The note is gone after conversion.
	gone, err := noteRepo.GetByIDForUser(ctx, tx, note.ID, userID)
	if err != nil {
		t.Fatalf("GetByIDForUser: %v", err)
	}
	if gone != nil {
		t.Fatal("note still present after conversion")
	}

	// Converting again is a 404.
	_, err = noteSvc.Convert(ctx, note.ID)
	var ae *apierr.Error
	if !errors.As(err, &ae) || ae.Status != http.StatusNotFound {
		t.Fatalf("second Convert error = %v, want 404", err)
	}
}

// brokenThoughtRepo fails every write so conversion cannot produce a thought.
type brokenThoughtRepo struct{}

func (brokenThoughtRepo) Create(context.Context, *gorm.DB, []*types.ReadingThought) ([]*types.ReadingThought, error) {
	return nil, fmt.Errorf("connection reset by peer")
}

func (brokenThoughtRepo) ListForBook(context.Context, *gorm.DB, uuid.UUID, uuid.UUID, *uuid.UUID) ([]*types.ReadingThought, error) {
	return nil, nil
}

func (brokenThoughtRepo) CountByJourney(context.Context, *gorm.DB, uuid.UUID, uuid.UUID) (int64, error) {
	return 0, nil
}

func (brokenThoughtRepo) CountForBook(context.Context, *gorm.DB, uuid.UUID, uuid.UUID, *uuid.UUID) (int64, error) {
	return 0, nil
}

// TestQuickNoteConvertCreateFailure covers the failing half of the
// create-then-delete sequence: when the thought insert fails the note must
// survive untouched and the caller sees a dependency error.
func TestQuickNoteConvertCreateFailure(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)

	userID := uuid.New()
	ctx := ctxutil.WithRequestData(context.Background(), &ctxutil.RequestData{UserID: userID})

	noteRepo := repos.NewQuickNoteRepo(tx, log)
	journeyRepo := repos.NewJourneyRepo(tx, log)
	noteSvc := NewQuickNoteService(tx, log, noteRepo, brokenThoughtRepo{}, journeyRepo)

	book := testutil.SeedBook(t, ctx, tx, userID, nil)
	journey := testutil.SeedJourney(t, ctx, tx, book.ID, userID, types.JourneyStatusActive)
	note := testutil.SeedQuickNote(t, ctx, tx, journey, "do not lose me", false)

	_, err := noteSvc.Convert(ctx, note.ID)
	if !errors.Is(err, errs.ErrDependency) {
		t.Fatalf("Convert error = %v, want dependency error", err)
	}
	var ae *apierr.Error
	if !errors.As(err, &ae) || ae.Status != http.StatusBadGateway {
		t.Fatalf("Convert error = %v, want 502", err)
	}

	kept, err := noteRepo.GetByIDForUser(ctx, tx, note.ID, userID)
	if err != nil {
		t.Fatalf("GetByIDForUser: %v", err)
	}
	if kept == nil || kept.Content != "do not lose me" {
		t.Fatalf("note after failed conversion = %+v, want untouched", kept)
	}
}
