package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/bookkeeper-backend/internal/data/repos"
	"github.com/yungbote/bookkeeper-backend/internal/data/repos/testutil"
	types "github.com/yungbote/bookkeeper-backend/internal/domain"
	"github.com/yungbote/bookkeeper-backend/internal/pkg/ctxutil"
	"github.com/yungbote/bookkeeper-backend/internal/platform/apierr"
	"github.com/yungbote/bookkeeper-backend/internal/realtime"
)

// TestJourneyLifecycle walks a full reread flow: start, log sessions, check
// progress, complete with a review, then start a fresh journey and verify its
// progress starts from zero.
func TestJourneyLifecycle(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)

	userID := uuid.New()
	ctx := ctxutil.WithRequestData(context.Background(), &ctxutil.RequestData{UserID: userID})

	bookRepo := repos.NewBookRepo(tx, log)
	journeyRepo := repos.NewJourneyRepo(tx, log)
	sessionRepo := repos.NewSessionRepo(tx, log)
	thoughtRepo := repos.NewThoughtRepo(tx, log)
	reviewRepo := repos.NewReviewRepo(tx, log)

	journeySvc := NewJourneyService(tx, log, bookRepo, journeyRepo, reviewRepo, nil)
	sessionSvc := NewSessionService(tx, log, sessionRepo, journeyRepo, journeySvc)
	reviewSvc := NewReviewService(tx, log, reviewRepo, journeyRepo, nil)
	progressSvc := NewProgressService(tx, log, bookRepo, sessionRepo, thoughtRepo)

	book := testutil.SeedBook(t, ctx, tx, userID, testutil.IntPtr(300))

	journey, err := journeySvc.Start(ctx, book.ID, StartJourneyInput{SessionName: "first read"})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if journey.Status != types.JourneyStatusActive {
		t.Fatalf("status = %q, want active", journey.Status)
	}

	// A second start while one is active conflicts.
	_, err = journeySvc.Start(ctx, book.ID, StartJourneyInput{})
	var ae *apierr.Error
	if !errors.As(err, &ae) || ae.Status != http.StatusConflict {
		t.Fatalf("second Start error = %v, want 409 conflict", err)
	}

	for _, pages := range []int{50, 69} {
		if _, err := sessionSvc.Log(ctx, book.ID, LogSessionInput{PagesRead: pages}); err != nil {
			t.Fatalf("Log(%d): %v", pages, err)
		}
	}

	overview, err := progressSvc.Overview(ctx, book.ID, &journey.ID)
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if overview.Stats.CurrentPage != 119 {
		t.Fatalf("CurrentPage = %d, want 119", overview.Stats.CurrentPage)
	}
	if overview.Stats.Percent == nil || *overview.Stats.Percent != 40 {
		t.Fatalf("Percent = %v, want 40", overview.Stats.Percent)
	}

	reviewText := "worth the reread"
	completed, err := journeySvc.Complete(ctx, journey.ID, CompleteJourneyInput{Rating: 5, ReviewText: &reviewText})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if completed.Status != types.JourneyStatusCompleted {
		t.Fatalf("status = %q, want completed", completed.Status)
	}
	if completed.Rating == nil || *completed.Rating != 5 {
		t.Fatalf("rating = %v, want 5", completed.Rating)
	}

	// Completing twice is rejected as an invalid transition.
	_, err = journeySvc.Complete(ctx, journey.ID, CompleteJourneyInput{Rating: 4})
	if !errors.As(err, &ae) || ae.Status != http.StatusConflict {
		t.Fatalf("second Complete error = %v, want 409", err)
	}

	review, err := reviewSvc.GetForJourney(ctx, journey.ID)
	if err != nil {
		t.Fatalf("GetForJourney: %v", err)
	}
	if review.Rating != 5 || review.ReviewText != reviewText {
		t.Fatalf("review = %+v, want rating 5 text %q", review, reviewText)
	}

	// A fresh journey starts from zero; the finished one keeps its history.
	second, err := journeySvc.Start(ctx, book.ID, StartJourneyInput{SessionName: "reread"})
	if err != nil {
		t.Fatalf("Start second journey: %v", err)
	}
	overview, err = progressSvc.Overview(ctx, book.ID, &second.ID)
	if err != nil {
		t.Fatalf("Overview second journey: %v", err)
	}
	if overview.Stats.CurrentPage != 0 || overview.Stats.TotalSessions != 0 {
		t.Fatalf("second journey stats = %+v, want zeroes", overview.Stats)
	}

	combined, err := progressSvc.Overview(ctx, book.ID, nil)
	if err != nil {
		t.Fatalf("Overview combined: %v", err)
	}
	if combined.Stats.CurrentPage != 119 {
		t.Fatalf("combined CurrentPage = %d, want 119", combined.Stats.CurrentPage)
	}
}

// TestSessionLogAutoVivifiesJourney covers logging against a book with no
// active journey: one is created implicitly and reused by later writes.
func TestSessionLogAutoVivifiesJourney(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)

	userID := uuid.New()
	ctx := ctxutil.WithRequestData(context.Background(), &ctxutil.RequestData{UserID: userID})

	bookRepo := repos.NewBookRepo(tx, log)
	journeyRepo := repos.NewJourneyRepo(tx, log)
	sessionRepo := repos.NewSessionRepo(tx, log)
	thoughtRepo := repos.NewThoughtRepo(tx, log)
	reviewRepo := repos.NewReviewRepo(tx, log)

	journeySvc := NewJourneyService(tx, log, bookRepo, journeyRepo, reviewRepo, nil)
	sessionSvc := NewSessionService(tx, log, sessionRepo, journeyRepo, journeySvc)
	thoughtSvc := NewThoughtService(tx, log, thoughtRepo, journeyRepo, journeySvc)

	book := testutil.SeedBook(t, ctx, tx, userID, nil)

	session, err := sessionSvc.Log(ctx, book.ID, LogSessionInput{PagesRead: 12})
	if err != nil {
		t.Fatalf("Log: %v", err)
	}
	if session.JourneyID == nil {
		t.Fatal("session created without a journey")
	}

	active, err := journeySvc.GetActive(ctx, book.ID)
	if err != nil {
		t.Fatalf("GetActive: %v", err)
	}
	if active == nil || active.ID != *session.JourneyID {
		t.Fatalf("active journey = %+v, want %s", active, *session.JourneyID)
	}

	thought, err := thoughtSvc.Add(ctx, book.ID, AddThoughtInput{Content: "hooked already"})
	if err != nil {
		t.Fatalf("Add thought: %v", err)
	}
	if thought.JourneyID != active.ID {
		t.Fatalf("thought journey = %s, want %s", thought.JourneyID, active.ID)
	}
}

// downFeedBus records publish attempts and fails every one of them.
type downFeedBus struct {
	published int
	lastType  string
}

func (b *downFeedBus) Publish(_ context.Context, ev realtime.FeedEvent) error {
	b.published++
	b.lastType = ev.Type
	return fmt.Errorf("redis: connection refused")
}

func (b *downFeedBus) Close() error { return nil }

// TestCompleteSurvivesFeedOutage pins the best-effort feed contract with a bus
// that fails, not just a nil one: completion commits, the publish is
// attempted, and the error never reaches the caller.
func TestCompleteSurvivesFeedOutage(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)

	userID := uuid.New()
	ctx := ctxutil.WithRequestData(context.Background(), &ctxutil.RequestData{UserID: userID})

	bookRepo := repos.NewBookRepo(tx, log)
	journeyRepo := repos.NewJourneyRepo(tx, log)
	reviewRepo := repos.NewReviewRepo(tx, log)

	bus := &downFeedBus{}
	journeySvc := NewJourneyService(tx, log, bookRepo, journeyRepo, reviewRepo, bus)

	book := testutil.SeedBook(t, ctx, tx, userID, nil)
	journey := testutil.SeedJourney(t, ctx, tx, book.ID, userID, types.JourneyStatusActive)

	completed, err := journeySvc.Complete(ctx, journey.ID, CompleteJourneyInput{Rating: 4})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if completed.Status != types.JourneyStatusCompleted {
		t.Fatalf("status = %q, want completed", completed.Status)
	}
	if bus.published != 1 || bus.lastType != realtime.FeedEventJourneyCompleted {
		t.Fatalf("publish attempts = %d type %q, want one journey_completed event", bus.published, bus.lastType)
	}

	stored, err := journeyRepo.GetByIDForUser(ctx, tx, journey.ID, userID)
	if err != nil {
		t.Fatalf("GetByIDForUser: %v", err)
	}
	if stored == nil || stored.Status != types.JourneyStatusCompleted {
		t.Fatalf("stored journey = %+v, want committed completion", stored)
	}
}

func TestServicesRequireIdentity(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)

	journeySvc := NewJourneyService(tx, log, repos.NewBookRepo(tx, log), repos.NewJourneyRepo(tx, log), repos.NewReviewRepo(tx, log), nil)

	_, err := journeySvc.GetActive(context.Background(), uuid.New())
	var ae *apierr.Error
	if !errors.As(err, &ae) || ae.Status != http.StatusUnauthorized {
		t.Fatalf("error = %v, want 401", err)
	}
}
