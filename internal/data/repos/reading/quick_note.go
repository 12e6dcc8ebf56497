package reading

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/bookkeeper-backend/internal/domain"
	"github.com/yungbote/bookkeeper-backend/internal/pkg/logger"
)

type QuickNoteRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.QuickNote) ([]*types.QuickNote, error)
	GetByIDForUser(ctx context.Context, tx *gorm.DB, noteID, userID uuid.UUID) (*types.QuickNote, error)
	// ListForJourney returns starred notes first, then the rest, each group
	// newest first.
	ListForJourney(ctx context.Context, tx *gorm.DB, journeyID, userID uuid.UUID) ([]*types.QuickNote, error)
	UpdateStarred(ctx context.Context, tx *gorm.DB, noteID, userID uuid.UUID, starred bool) (bool, error)
	Delete(ctx context.Context, tx *gorm.DB, noteID, userID uuid.UUID) (bool, error)
	CountByJourney(ctx context.Context, tx *gorm.DB, journeyID, userID uuid.UUID) (int64, error)
}

type quickNoteRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuickNoteRepo(db *gorm.DB, baseLog *logger.Logger) QuickNoteRepo {
	repoLog := baseLog.With("repo", "QuickNoteRepo")
	return &quickNoteRepo{db: db, log: repoLog}
}

func (qr *quickNoteRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.QuickNote) ([]*types.QuickNote, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}

	if len(rows) == 0 {
		return []*types.QuickNote{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (qr *quickNoteRepo) GetByIDForUser(ctx context.Context, tx *gorm.DB, noteID, userID uuid.UUID) (*types.QuickNote, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}

	if noteID == uuid.Nil || userID == uuid.Nil {
		return nil, nil
	}

	var results []*types.QuickNote
	if err := transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", noteID, userID).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (qr *quickNoteRepo) ListForJourney(ctx context.Context, tx *gorm.DB, journeyID, userID uuid.UUID) ([]*types.QuickNote, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}

	var results []*types.QuickNote
	if journeyID == uuid.Nil || userID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("journey_id = ? AND user_id = ?", journeyID, userID).
		Order("is_starred DESC, created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (qr *quickNoteRepo) UpdateStarred(ctx context.Context, tx *gorm.DB, noteID, userID uuid.UUID, starred bool) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}

	res := transaction.WithContext(ctx).
		Model(&types.QuickNote{}).
		Where("id = ? AND user_id = ?", noteID, userID).
		Update("is_starred", starred)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (qr *quickNoteRepo) Delete(ctx context.Context, tx *gorm.DB, noteID, userID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}

	res := transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", noteID, userID).
		Delete(&types.QuickNote{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (qr *quickNoteRepo) CountByJourney(ctx context.Context, tx *gorm.DB, journeyID, userID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.QuickNote{}).
		Where("journey_id = ? AND user_id = ?", journeyID, userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
