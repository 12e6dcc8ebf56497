package reading

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/bookkeeper-backend/internal/domain"
	"github.com/yungbote/bookkeeper-backend/internal/pkg/logger"
)

type JourneyRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.Journey) ([]*types.Journey, error)
	GetByIDForUser(ctx context.Context, tx *gorm.DB, journeyID, userID uuid.UUID) (*types.Journey, error)
	GetActive(ctx context.Context, tx *gorm.DB, bookID, userID uuid.UUID) (*types.Journey, error)
	ListWithCounts(ctx context.Context, tx *gorm.DB, bookID, userID uuid.UUID) ([]*types.JourneyWithCounts, error)
	UpdateName(ctx context.Context, tx *gorm.DB, journeyID, userID uuid.UUID, sessionName string) (bool, error)
	UpdateVisibility(ctx context.Context, tx *gorm.DB, journeyID, userID uuid.UUID, visibility types.Visibility) (bool, error)
	CompleteIfActive(ctx context.Context, tx *gorm.DB, journeyID, userID uuid.UUID, rating *int, finishedAt time.Time) (bool, error)
	AbandonIfActive(ctx context.Context, tx *gorm.DB, journeyID, userID uuid.UUID, reason *string, finishedAt time.Time) (bool, error)
}

type journeyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewJourneyRepo(db *gorm.DB, baseLog *logger.Logger) JourneyRepo {
	repoLog := baseLog.With("repo", "JourneyRepo")
	return &journeyRepo{db: db, log: repoLog}
}

func (jr *journeyRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Journey) ([]*types.Journey, error) {
	transaction := tx
	if transaction == nil {
		transaction = jr.db
	}

	if len(rows) == 0 {
		return []*types.Journey{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (jr *journeyRepo) GetByIDForUser(ctx context.Context, tx *gorm.DB, journeyID, userID uuid.UUID) (*types.Journey, error) {
	transaction := tx
	if transaction == nil {
		transaction = jr.db
	}

	if journeyID == uuid.Nil || userID == uuid.Nil {
		return nil, nil
	}

	var results []*types.Journey
	if err := transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", journeyID, userID).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (jr *journeyRepo) GetActive(ctx context.Context, tx *gorm.DB, bookID, userID uuid.UUID) (*types.Journey, error) {
	transaction := tx
	if transaction == nil {
		transaction = jr.db
	}

	if bookID == uuid.Nil || userID == uuid.Nil {
		return nil, nil
	}

	var results []*types.Journey
	if err := transaction.WithContext(ctx).
		Where("book_id = ? AND user_id = ? AND status = ?", bookID, userID, types.JourneyStatusActive).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (jr *journeyRepo) ListWithCounts(ctx context.Context, tx *gorm.DB, bookID, userID uuid.UUID) ([]*types.JourneyWithCounts, error) {
	transaction := tx
	if transaction == nil {
		transaction = jr.db
	}

	var results []*types.JourneyWithCounts
	if bookID == uuid.Nil || userID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Model(&types.Journey{}).
		Select(`journey.*,
			(SELECT COUNT(*) FROM reading_session s
			   WHERE s.journey_id = journey.id AND s.deleted_at IS NULL) AS sessions_count,
			(SELECT COUNT(*) FROM reading_thought t
			   WHERE t.journey_id = journey.id AND t.deleted_at IS NULL) AS thoughts_count`).
		Where("journey.book_id = ? AND journey.user_id = ?", bookID, userID).
		Order("journey.started_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (jr *journeyRepo) UpdateName(ctx context.Context, tx *gorm.DB, journeyID, userID uuid.UUID, sessionName string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = jr.db
	}

	res := transaction.WithContext(ctx).
		Model(&types.Journey{}).
		Where("id = ? AND user_id = ?", journeyID, userID).
		Update("session_name", sessionName)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (jr *journeyRepo) UpdateVisibility(ctx context.Context, tx *gorm.DB, journeyID, userID uuid.UUID, visibility types.Visibility) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = jr.db
	}

	res := transaction.WithContext(ctx).
		Model(&types.Journey{}).
		Where("id = ? AND user_id = ?", journeyID, userID).
		Update("visibility", visibility)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// CompleteIfActive is a single conditional UPDATE guarded on status=active.
// When two callers race, the loser observes zero affected rows; the journey is
// never completed twice.
func (jr *journeyRepo) CompleteIfActive(ctx context.Context, tx *gorm.DB, journeyID, userID uuid.UUID, rating *int, finishedAt time.Time) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = jr.db
	}

	res := transaction.WithContext(ctx).
		Model(&types.Journey{}).
		Where("id = ? AND user_id = ? AND status = ?", journeyID, userID, types.JourneyStatusActive).
		Updates(map[string]any{
			"status":      types.JourneyStatusCompleted,
			"finished_at": finishedAt,
			"rating":      rating,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// AbandonIfActive mirrors CompleteIfActive. Sessions, thoughts and notes that
// belong to the journey are left untouched.
func (jr *journeyRepo) AbandonIfActive(ctx context.Context, tx *gorm.DB, journeyID, userID uuid.UUID, reason *string, finishedAt time.Time) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = jr.db
	}

	res := transaction.WithContext(ctx).
		Model(&types.Journey{}).
		Where("id = ? AND user_id = ? AND status = ?", journeyID, userID, types.JourneyStatusActive).
		Updates(map[string]any{
			"status":         types.JourneyStatusAbandoned,
			"finished_at":    finishedAt,
			"abandon_reason": reason,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
