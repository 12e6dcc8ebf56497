package reading

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/bookkeeper-backend/internal/domain"
	"github.com/yungbote/bookkeeper-backend/internal/pkg/logger"
)

type BookRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.Book) ([]*types.Book, error)
	GetByIDForUser(ctx context.Context, tx *gorm.DB, bookID, userID uuid.UUID) (*types.Book, error)
	ListForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Book, error)
}

type bookRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBookRepo(db *gorm.DB, baseLog *logger.Logger) BookRepo {
	repoLog := baseLog.With("repo", "BookRepo")
	return &bookRepo{db: db, log: repoLog}
}

func (br *bookRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Book) ([]*types.Book, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	if len(rows) == 0 {
		return []*types.Book{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (br *bookRepo) GetByIDForUser(ctx context.Context, tx *gorm.DB, bookID, userID uuid.UUID) (*types.Book, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	if bookID == uuid.Nil || userID == uuid.Nil {
		return nil, nil
	}

	var results []*types.Book
	if err := transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", bookID, userID).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (br *bookRepo) ListForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Book, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	var results []*types.Book
	if userID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
