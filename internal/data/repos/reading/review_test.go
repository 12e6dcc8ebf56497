package reading

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/yungbote/bookkeeper-backend/internal/data/repos/testutil"
	types "github.com/yungbote/bookkeeper-backend/internal/domain"
)

func TestReviewRepoUpsert(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewReviewRepo(db, testutil.Logger(t))

	userID := uuid.New()
	book := testutil.SeedBook(t, ctx, tx, userID, nil)
	journey := testutil.SeedJourney(t, ctx, tx, book.ID, userID, types.JourneyStatusCompleted)

	first := &types.BookReview{
		ID:             uuid.New(),
		JourneyID:      journey.ID,
		BookID:         book.ID,
		UserID:         userID,
		Rating:         4,
		ReviewText:     "good",
		WouldRecommend: types.RecommendYes,
	}
	if err := repo.Upsert(ctx, tx, first); err != nil {
		t.Fatalf("first Upsert: %v", err)
	}

	second := &types.BookReview{
		ID:             uuid.New(),
		JourneyID:      journey.ID,
		BookID:         book.ID,
		UserID:         userID,
		Rating:         5,
		ReviewText:     "great on reflection",
		WouldRecommend: types.RecommendYes,
		IsPublic:       true,
	}
	if err := repo.Upsert(ctx, tx, second); err != nil {
		t.Fatalf("second Upsert: %v", err)
	}

	got, err := repo.GetByJourneyID(ctx, tx, journey.ID, userID)
	if err != nil {
		t.Fatalf("GetByJourneyID: %v", err)
	}
	if got == nil {
		t.Fatal("review missing after upsert")
	}
	if got.ID != first.ID {
		t.Fatalf("upsert created a new row: id = %s, want %s", got.ID, first.ID)
	}
	if got.Rating != 5 || got.ReviewText != "great on reflection" || !got.IsPublic {
		t.Fatalf("review not updated: %+v", got)
	}

	reviews, err := repo.ListForBook(ctx, tx, book.ID, userID, nil)
	if err != nil {
		t.Fatalf("ListForBook: %v", err)
	}
	if len(reviews) != 1 {
		t.Fatalf("reviews = %d, want 1 after double submit", len(reviews))
	}
}

// TestUniqueViolationDetection pins the duplicate-key classification that
// Upsert retries on. Racing first submissions surface as a wrapped
// pgconn.PgError with code 23505; any other failure must not trigger the
// re-run.
func TestUniqueViolationDetection(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"duplicate key", &pgconn.PgError{Code: "23505"}, true},
		{"wrapped duplicate key", fmt.Errorf("create review: %w", &pgconn.PgError{Code: "23505"}), true},
		{"other pg error", &pgconn.PgError{Code: "23503"}, false},
		{"plain error", errors.New("connection reset"), false},
		{"nil", nil, false},
	}
	for _, tc := range cases {
		if got := isUniqueViolation(tc.err); got != tc.want {
			t.Errorf("%s: isUniqueViolation = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestReviewRepoScopedToUser(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewReviewRepo(db, testutil.Logger(t))

	userID := uuid.New()
	book := testutil.SeedBook(t, ctx, tx, userID, nil)
	journey := testutil.SeedJourney(t, ctx, tx, book.ID, userID, types.JourneyStatusCompleted)

	review := &types.BookReview{
		ID:             uuid.New(),
		JourneyID:      journey.ID,
		BookID:         book.ID,
		UserID:         userID,
		Rating:         3,
		WouldRecommend: types.RecommendMaybe,
	}
	if err := repo.Upsert(ctx, tx, review); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	got, err := repo.GetByJourneyID(ctx, tx, journey.ID, uuid.New())
	if err != nil {
		t.Fatalf("GetByJourneyID other user: %v", err)
	}
	if got != nil {
		t.Fatal("review visible to a different user")
	}
}
