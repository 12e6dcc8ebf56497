package reading

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/bookkeeper-backend/internal/domain"
	"github.com/yungbote/bookkeeper-backend/internal/pkg/logger"
)

type SessionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.ReadingSession) ([]*types.ReadingSession, error)
	// ListForBook returns sessions for a book scoped to one user, newest
	// session_date first. A non-nil journeyID narrows the result to that
	// journey; nil means combined across all journeys.
	ListForBook(ctx context.Context, tx *gorm.DB, bookID, userID uuid.UUID, journeyID *uuid.UUID) ([]*types.ReadingSession, error)
	CountByJourney(ctx context.Context, tx *gorm.DB, journeyID, userID uuid.UUID) (int64, error)
}

type sessionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSessionRepo(db *gorm.DB, baseLog *logger.Logger) SessionRepo {
	repoLog := baseLog.With("repo", "SessionRepo")
	return &sessionRepo{db: db, log: repoLog}
}

func (sr *sessionRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.ReadingSession) ([]*types.ReadingSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	if len(rows) == 0 {
		return []*types.ReadingSession{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (sr *sessionRepo) ListForBook(ctx context.Context, tx *gorm.DB, bookID, userID uuid.UUID, journeyID *uuid.UUID) ([]*types.ReadingSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var results []*types.ReadingSession
	if bookID == uuid.Nil || userID == uuid.Nil {
		return results, nil
	}

	q := transaction.WithContext(ctx).
		Where("book_id = ? AND user_id = ?", bookID, userID)
	if journeyID != nil {
		q = q.Where("journey_id = ?", *journeyID)
	}

	if err := q.Order("session_date DESC, created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *sessionRepo) CountByJourney(ctx context.Context, tx *gorm.DB, journeyID, userID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.ReadingSession{}).
		Where("journey_id = ? AND user_id = ?", journeyID, userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
