package reading

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/bookkeeper-backend/internal/data/repos/testutil"
	types "github.com/yungbote/bookkeeper-backend/internal/domain"
)

func TestJourneyRepoCompleteIfActive(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewJourneyRepo(db, testutil.Logger(t))

	userID := uuid.New()
	book := testutil.SeedBook(t, ctx, tx, userID, testutil.IntPtr(300))
	journey := testutil.SeedJourney(t, ctx, tx, book.ID, userID, types.JourneyStatusActive)

	ok, err := repo.CompleteIfActive(ctx, tx, journey.ID, userID, testutil.IntPtr(5), time.Now().UTC())
	if err != nil {
		t.Fatalf("CompleteIfActive: %v", err)
	}
	if !ok {
		t.Fatal("CompleteIfActive returned false for an active journey")
	}

	got, err := repo.GetByIDForUser(ctx, tx, journey.ID, userID)
	if err != nil {
		t.Fatalf("GetByIDForUser: %v", err)
	}
	if got.Status != types.JourneyStatusCompleted {
		t.Fatalf("status = %q, want completed", got.Status)
	}
	if got.FinishedAt == nil {
		t.Fatal("FinishedAt not set")
	}
	if got.Rating == nil || *got.Rating != 5 {
		t.Fatalf("rating = %v, want 5", got.Rating)
	}

	// Second complete hits zero rows: the journey is no longer active.
	ok, err = repo.CompleteIfActive(ctx, tx, journey.ID, userID, testutil.IntPtr(4), time.Now().UTC())
	if err != nil {
		t.Fatalf("second CompleteIfActive: %v", err)
	}
	if ok {
		t.Fatal("CompleteIfActive succeeded twice for the same journey")
	}
	got, err = repo.GetByIDForUser(ctx, tx, journey.ID, userID)
	if err != nil {
		t.Fatalf("GetByIDForUser: %v", err)
	}
	if got.Rating == nil || *got.Rating != 5 {
		t.Fatalf("rating overwritten by failed complete: %v", got.Rating)
	}
}

func TestJourneyRepoAbandonIfActive(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewJourneyRepo(db, testutil.Logger(t))

	userID := uuid.New()
	book := testutil.SeedBook(t, ctx, tx, userID, nil)
	journey := testutil.SeedJourney(t, ctx, tx, book.ID, userID, types.JourneyStatusActive)
	testutil.SeedSession(t, ctx, tx, journey, 25)
	testutil.SeedThought(t, ctx, tx, journey, "first thought")
	testutil.SeedQuickNote(t, ctx, tx, journey, "come back to this", false)

	reason := "lost interest"
	ok, err := repo.AbandonIfActive(ctx, tx, journey.ID, userID, &reason, time.Now().UTC())
	if err != nil {
		t.Fatalf("AbandonIfActive: %v", err)
	}
	if !ok {
		t.Fatal("AbandonIfActive returned false for an active journey")
	}

	got, err := repo.GetByIDForUser(ctx, tx, journey.ID, userID)
	if err != nil {
		t.Fatalf("GetByIDForUser: %v", err)
	}
	if got.Status != types.JourneyStatusAbandoned {
		t.Fatalf("status = %q, want abandoned", got.Status)
	}
	if got.AbandonReason == nil || *got.AbandonReason != reason {
		t.Fatalf("abandon reason = %v, want %q", got.AbandonReason, reason)
	}

	// Abandoning preserves sessions, thoughts and quick notes.
	sessionRepo := NewSessionRepo(db, testutil.Logger(t))
	sessions, err := sessionRepo.CountByJourney(ctx, tx, journey.ID, userID)
	if err != nil {
		t.Fatalf("session CountByJourney: %v", err)
	}
	if sessions != 1 {
		t.Fatalf("sessions after abandon = %d, want 1", sessions)
	}
	thoughtRepo := NewThoughtRepo(db, testutil.Logger(t))
	thoughts, err := thoughtRepo.CountByJourney(ctx, tx, journey.ID, userID)
	if err != nil {
		t.Fatalf("thought CountByJourney: %v", err)
	}
	if thoughts != 1 {
		t.Fatalf("thoughts after abandon = %d, want 1", thoughts)
	}
	noteRepo := NewQuickNoteRepo(db, testutil.Logger(t))
	notes, err := noteRepo.CountByJourney(ctx, tx, journey.ID, userID)
	if err != nil {
		t.Fatalf("note CountByJourney: %v", err)
	}
	if notes != 1 {
		t.Fatalf("notes after abandon = %d, want 1", notes)
	}
}

func TestJourneyRepoCompleteWrongUser(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewJourneyRepo(db, testutil.Logger(t))

	userID := uuid.New()
	book := testutil.SeedBook(t, ctx, tx, userID, nil)
	journey := testutil.SeedJourney(t, ctx, tx, book.ID, userID, types.JourneyStatusActive)

	ok, err := repo.CompleteIfActive(ctx, tx, journey.ID, uuid.New(), nil, time.Now().UTC())
	if err != nil {
		t.Fatalf("CompleteIfActive: %v", err)
	}
	if ok {
		t.Fatal("CompleteIfActive succeeded for a different user")
	}
}

func TestJourneyRepoGetActive(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewJourneyRepo(db, testutil.Logger(t))

	userID := uuid.New()
	book := testutil.SeedBook(t, ctx, tx, userID, nil)

	got, err := repo.GetActive(ctx, tx, book.ID, userID)
	if err != nil {
		t.Fatalf("GetActive: %v", err)
	}
	if got != nil {
		t.Fatalf("GetActive = %+v, want nil with no journeys", got)
	}

	testutil.SeedJourney(t, ctx, tx, book.ID, userID, types.JourneyStatusAbandoned)
	active := testutil.SeedJourney(t, ctx, tx, book.ID, userID, types.JourneyStatusActive)

	got, err = repo.GetActive(ctx, tx, book.ID, userID)
	if err != nil {
		t.Fatalf("GetActive: %v", err)
	}
	if got == nil || got.ID != active.ID {
		t.Fatalf("GetActive = %+v, want journey %s", got, active.ID)
	}
}

func TestJourneyRepoListWithCounts(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewJourneyRepo(db, testutil.Logger(t))

	userID := uuid.New()
	book := testutil.SeedBook(t, ctx, tx, userID, nil)

	first := testutil.SeedJourney(t, ctx, tx, book.ID, userID, types.JourneyStatusAbandoned)
	first.StartedAt = time.Now().UTC().Add(-48 * time.Hour)
	if err := tx.Save(first).Error; err != nil {
		t.Fatalf("backdate journey: %v", err)
	}
	second := testutil.SeedJourney(t, ctx, tx, book.ID, userID, types.JourneyStatusActive)
	testutil.SeedSession(t, ctx, tx, second, 10)
	testutil.SeedSession(t, ctx, tx, second, 20)
	testutil.SeedThought(t, ctx, tx, second, "counts")

	rows, err := repo.ListWithCounts(ctx, tx, book.ID, userID)
	if err != nil {
		t.Fatalf("ListWithCounts: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("journeys = %d, want 2", len(rows))
	}
	if rows[0].ID != second.ID {
		t.Fatalf("first row = %s, want newest journey %s", rows[0].ID, second.ID)
	}
	if rows[0].SessionsCount != 2 || rows[0].ThoughtsCount != 1 {
		t.Fatalf("counts = %d/%d, want 2/1", rows[0].SessionsCount, rows[0].ThoughtsCount)
	}
	if rows[1].SessionsCount != 0 || rows[1].ThoughtsCount != 0 {
		t.Fatalf("old journey counts = %d/%d, want 0/0", rows[1].SessionsCount, rows[1].ThoughtsCount)
	}
}

// The unique violation aborts the test's transaction, so no assertions can
// follow the failed insert.
func TestJourneyRepoActiveUniqueViolation(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewJourneyRepo(db, testutil.Logger(t))

	userID := uuid.New()
	book := testutil.SeedBook(t, ctx, tx, userID, nil)
	testutil.SeedJourney(t, ctx, tx, book.ID, userID, types.JourneyStatusActive)

	_, err := repo.Create(ctx, tx, []*types.Journey{{
		ID:         uuid.New(),
		BookID:     book.ID,
		UserID:     userID,
		Status:     types.JourneyStatusActive,
		Visibility: types.VisibilityPrivate,
		StartedAt:  time.Now().UTC(),
	}})
	if err == nil {
		t.Fatal("second active journey for the same book was accepted")
	}
}
