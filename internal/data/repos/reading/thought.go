package reading

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/bookkeeper-backend/internal/domain"
	"github.com/yungbote/bookkeeper-backend/internal/pkg/logger"
)

type ThoughtRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.ReadingThought) ([]*types.ReadingThought, error)
	ListForBook(ctx context.Context, tx *gorm.DB, bookID, userID uuid.UUID, journeyID *uuid.UUID) ([]*types.ReadingThought, error)
	CountByJourney(ctx context.Context, tx *gorm.DB, journeyID, userID uuid.UUID) (int64, error)
	CountForBook(ctx context.Context, tx *gorm.DB, bookID, userID uuid.UUID, journeyID *uuid.UUID) (int64, error)
}

type thoughtRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewThoughtRepo(db *gorm.DB, baseLog *logger.Logger) ThoughtRepo {
	repoLog := baseLog.With("repo", "ThoughtRepo")
	return &thoughtRepo{db: db, log: repoLog}
}

func (tr *thoughtRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.ReadingThought) ([]*types.ReadingThought, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	if len(rows) == 0 {
		return []*types.ReadingThought{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (tr *thoughtRepo) ListForBook(ctx context.Context, tx *gorm.DB, bookID, userID uuid.UUID, journeyID *uuid.UUID) ([]*types.ReadingThought, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var results []*types.ReadingThought
	if bookID == uuid.Nil || userID == uuid.Nil {
		return results, nil
	}

	q := transaction.WithContext(ctx).
		Where("book_id = ? AND user_id = ?", bookID, userID)
	if journeyID != nil {
		q = q.Where("journey_id = ?", *journeyID)
	}

	if err := q.Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *thoughtRepo) CountByJourney(ctx context.Context, tx *gorm.DB, journeyID, userID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.ReadingThought{}).
		Where("journey_id = ? AND user_id = ?", journeyID, userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (tr *thoughtRepo) CountForBook(ctx context.Context, tx *gorm.DB, bookID, userID uuid.UUID, journeyID *uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	q := transaction.WithContext(ctx).
		Model(&types.ReadingThought{}).
		Where("book_id = ? AND user_id = ?", bookID, userID)
	if journeyID != nil {
		q = q.Where("journey_id = ?", *journeyID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
