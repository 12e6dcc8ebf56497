package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/yungbote/bookkeeper-backend/internal/data/repos"
	types "github.com/yungbote/bookkeeper-backend/internal/domain"
	"github.com/yungbote/bookkeeper-backend/internal/pkg/ctxutil"
	errs "github.com/yungbote/bookkeeper-backend/internal/pkg/errors"
	"github.com/yungbote/bookkeeper-backend/internal/pkg/logger"
	"github.com/yungbote/bookkeeper-backend/internal/platform/apierr"
)

// callerID resolves the authenticated user from request context. Every
// service entry point goes through here; a missing identity is surfaced as
// 401 before any query runs.
func callerID(ctx context.Context) (uuid.UUID, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return uuid.Nil, apierr.New(http.StatusUnauthorized, "unauthenticated", errs.ErrUnauthenticated)
	}
	return rd.UserID, nil
}

// resolveOwnedJourney loads a caller-supplied journey id and requires it to
// belong to the caller and to bookID. Cross-user and cross-book ids answer
// like missing rows, so a foreign journey UUID never accepts writes.
func resolveOwnedJourney(ctx context.Context, tx *gorm.DB, journeyRepo repos.JourneyRepo, journeyID, bookID, userID uuid.UUID) (*types.Journey, error) {
	journey, err := journeyRepo.GetByIDForUser(ctx, tx, journeyID, userID)
	if err != nil {
		return nil, dependencyErr(err)
	}
	if journey == nil || journey.BookID != bookID {
		return nil, apierr.New(http.StatusNotFound, "not_found", fmt.Errorf("journey: %w", errs.ErrNotFound))
	}
	return journey, nil
}

const pgUniqueViolation = "23505"

// isUniqueViolation reports whether err is a Postgres duplicate-key error.
// The partial unique index on active journeys surfaces racing starts this way.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func dependencyErr(err error) error {
	return apierr.New(http.StatusBadGateway, "dependency_failed", fmt.Errorf("%w: %w", errs.ErrDependency, err))
}

// readWithRetry retries an idempotent read once, and only on a dependency
// failure; deterministic errors come back as-is. Writes are never retried
// here: resubmission is the caller's call.
func readWithRetry[T any](log *logger.Logger, fn func() (T, error)) (T, error) {
	out, err := fn()
	if err == nil || !errors.Is(err, errs.ErrDependency) {
		return out, err
	}
	log.Warn("read failed, retrying once", "error", err)
	return fn()
}
