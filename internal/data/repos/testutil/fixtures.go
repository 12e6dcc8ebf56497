package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/bookkeeper-backend/internal/domain"
)

func SeedBook(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, pageCount *int) *types.Book {
	tb.Helper()
	b := &types.Book{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     "book",
		Author:    "author",
		PageCount: pageCount,
	}
	if err := tx.WithContext(ctx).Create(b).Error; err != nil {
		tb.Fatalf("seed book: %v", err)
	}
	return b
}

func SeedJourney(tb testing.TB, ctx context.Context, tx *gorm.DB, bookID, userID uuid.UUID, status types.JourneyStatus) *types.Journey {
	tb.Helper()
	j := &types.Journey{
		ID:         uuid.New(),
		BookID:     bookID,
		UserID:     userID,
		Status:     status,
		Visibility: types.VisibilityPrivate,
		StartedAt:  time.Now().UTC(),
	}
	if status == types.JourneyStatusCompleted || status == types.JourneyStatusAbandoned {
		now := time.Now().UTC()
		j.FinishedAt = &now
	}
	if err := tx.WithContext(ctx).Create(j).Error; err != nil {
		tb.Fatalf("seed journey: %v", err)
	}
	return j
}

func SeedSession(tb testing.TB, ctx context.Context, tx *gorm.DB, journey *types.Journey, pagesRead int) *types.ReadingSession {
	tb.Helper()
	jid := journey.ID
	s := &types.ReadingSession{
		ID:          uuid.New(),
		JourneyID:   &jid,
		BookID:      journey.BookID,
		UserID:      journey.UserID,
		SessionDate: time.Now().UTC().Add(-time.Hour),
		PagesRead:   pagesRead,
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed session: %v", err)
	}
	return s
}

func SeedThought(tb testing.TB, ctx context.Context, tx *gorm.DB, journey *types.Journey, content string) *types.ReadingThought {
	tb.Helper()
	th := &types.ReadingThought{
		ID:        uuid.New(),
		JourneyID: journey.ID,
		BookID:    journey.BookID,
		UserID:    journey.UserID,
		Content:   content,
	}
	if err := tx.WithContext(ctx).Create(th).Error; err != nil {
		tb.Fatalf("seed thought: %v", err)
	}
	return th
}

func SeedQuickNote(tb testing.TB, ctx context.Context, tx *gorm.DB, journey *types.Journey, content string, starred bool) *types.QuickNote {
	tb.Helper()
	n := &types.QuickNote{
		ID:        uuid.New(),
		JourneyID: journey.ID,
		BookID:    journey.BookID,
		UserID:    journey.UserID,
		Content:   content,
		IsStarred: starred,
	}
	if err := tx.WithContext(ctx).Create(n).Error; err != nil {
		tb.Fatalf("seed quick note: %v", err)
	}
	return n
}

func IntPtr(v int) *int { return &v }
