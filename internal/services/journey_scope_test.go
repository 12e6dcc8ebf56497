package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/bookkeeper-backend/internal/data/repos"
	"github.com/yungbote/bookkeeper-backend/internal/data/repos/testutil"
	types "github.com/yungbote/bookkeeper-backend/internal/domain"
	"github.com/yungbote/bookkeeper-backend/internal/pkg/ctxutil"
	"github.com/yungbote/bookkeeper-backend/internal/platform/apierr"
)

// TestSessionLogScopesSuppliedJourney pins down that an explicit journey id is
// only written to when it belongs to the caller and to the target book.
// Foreign and cross-book ids answer 404 the same as missing rows.
func TestSessionLogScopesSuppliedJourney(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)

	userID := uuid.New()
	otherID := uuid.New()
	ctx := ctxutil.WithRequestData(context.Background(), &ctxutil.RequestData{UserID: userID})

	bookRepo := repos.NewBookRepo(tx, log)
	journeyRepo := repos.NewJourneyRepo(tx, log)
	sessionRepo := repos.NewSessionRepo(tx, log)
	reviewRepo := repos.NewReviewRepo(tx, log)

	journeySvc := NewJourneyService(tx, log, bookRepo, journeyRepo, reviewRepo, nil)
	sessionSvc := NewSessionService(tx, log, sessionRepo, journeyRepo, journeySvc)

	book := testutil.SeedBook(t, ctx, tx, userID, nil)
	otherBook := testutil.SeedBook(t, ctx, tx, userID, nil)
	foreignBook := testutil.SeedBook(t, ctx, tx, otherID, nil)

	own := testutil.SeedJourney(t, ctx, tx, book.ID, userID, types.JourneyStatusActive)
	crossBook := testutil.SeedJourney(t, ctx, tx, otherBook.ID, userID, types.JourneyStatusActive)
	foreign := testutil.SeedJourney(t, ctx, tx, foreignBook.ID, otherID, types.JourneyStatusActive)

	var ae *apierr.Error

	// Another user's journey id is indistinguishable from a missing one.
	_, err := sessionSvc.Log(ctx, book.ID, LogSessionInput{JourneyID: &foreign.ID, PagesRead: 10})
	if !errors.As(err, &ae) || ae.Status != http.StatusNotFound {
		t.Fatalf("foreign journey id error = %v, want 404", err)
	}

	// The caller's own journey on a different book is rejected too.
	_, err = sessionSvc.Log(ctx, book.ID, LogSessionInput{JourneyID: &crossBook.ID, PagesRead: 10})
	if !errors.As(err, &ae) || ae.Status != http.StatusNotFound {
		t.Fatalf("cross-book journey id error = %v, want 404", err)
	}

	// Nothing was written through the rejected ids.
	for _, id := range []uuid.UUID{foreign.ID, crossBook.ID} {
		count, err := sessionRepo.CountByJourney(ctx, tx, id, userID)
		if err != nil {
			t.Fatalf("CountByJourney: %v", err)
		}
		if count != 0 {
			t.Fatalf("journey %s has %d sessions, want 0", id, count)
		}
	}

	// A matching journey id is accepted as-is.
	session, err := sessionSvc.Log(ctx, book.ID, LogSessionInput{JourneyID: &own.ID, PagesRead: 10})
	if err != nil {
		t.Fatalf("Log with own journey: %v", err)
	}
	if session.JourneyID == nil || *session.JourneyID != own.ID {
		t.Fatalf("session journey = %v, want %s", session.JourneyID, own.ID)
	}
}

// TestThoughtAddScopesSuppliedJourney mirrors the session check for thoughts.
func TestThoughtAddScopesSuppliedJourney(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)

	userID := uuid.New()
	otherID := uuid.New()
	ctx := ctxutil.WithRequestData(context.Background(), &ctxutil.RequestData{UserID: userID})

	bookRepo := repos.NewBookRepo(tx, log)
	journeyRepo := repos.NewJourneyRepo(tx, log)
	thoughtRepo := repos.NewThoughtRepo(tx, log)
	reviewRepo := repos.NewReviewRepo(tx, log)

	journeySvc := NewJourneyService(tx, log, bookRepo, journeyRepo, reviewRepo, nil)
	thoughtSvc := NewThoughtService(tx, log, thoughtRepo, journeyRepo, journeySvc)

	book := testutil.SeedBook(t, ctx, tx, userID, nil)
	foreignBook := testutil.SeedBook(t, ctx, tx, otherID, nil)

	own := testutil.SeedJourney(t, ctx, tx, book.ID, userID, types.JourneyStatusActive)
	foreign := testutil.SeedJourney(t, ctx, tx, foreignBook.ID, otherID, types.JourneyStatusActive)

	var ae *apierr.Error
	_, err := thoughtSvc.Add(ctx, book.ID, AddThoughtInput{JourneyID: &foreign.ID, Content: "not mine"})
	if !errors.As(err, &ae) || ae.Status != http.StatusNotFound {
		t.Fatalf("foreign journey id error = %v, want 404", err)
	}

	count, err := thoughtRepo.CountByJourney(ctx, tx, foreign.ID, otherID)
	if err != nil {
		t.Fatalf("CountByJourney: %v", err)
	}
	if count != 0 {
		t.Fatalf("foreign journey has %d thoughts, want 0", count)
	}

	thought, err := thoughtSvc.Add(ctx, book.ID, AddThoughtInput{JourneyID: &own.ID, Content: "mine"})
	if err != nil {
		t.Fatalf("Add with own journey: %v", err)
	}
	if thought.JourneyID != own.ID {
		t.Fatalf("thought journey = %s, want %s", thought.JourneyID, own.ID)
	}
}
