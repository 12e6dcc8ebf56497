package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/bookkeeper-backend/internal/data/repos"
	types "github.com/yungbote/bookkeeper-backend/internal/domain"
	errs "github.com/yungbote/bookkeeper-backend/internal/pkg/errors"
	"github.com/yungbote/bookkeeper-backend/internal/pkg/logger"
	"github.com/yungbote/bookkeeper-backend/internal/platform/apierr"
)

type AddBookInput struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	PageCount *int   `json:"page_count,omitempty"`
	CoverURL  string `json:"cover_url"`
}

type BookService interface {
	Add(ctx context.Context, input AddBookInput) (*types.Book, error)
	Get(ctx context.Context, bookID uuid.UUID) (*types.Book, error)
	List(ctx context.Context) ([]*types.Book, error)
}

type bookService struct {
	db       *gorm.DB
	log      *logger.Logger
	bookRepo repos.BookRepo
}

func NewBookService(db *gorm.DB, log *logger.Logger, bookRepo repos.BookRepo) BookService {
	serviceLog := log.With("service", "BookService")
	return &bookService{db: db, log: serviceLog, bookRepo: bookRepo}
}

func (bs *bookService) Add(ctx context.Context, input AddBookInput) (*types.Book, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apierr.New(http.StatusBadRequest, "validation_failed",
			fmt.Errorf("book title is required: %w", errs.ErrInvalidArgument))
	}
	if input.PageCount != nil && *input.PageCount < 1 {
		return nil, apierr.New(http.StatusBadRequest, "validation_failed",
			fmt.Errorf("page_count must be positive when set: %w", errs.ErrInvalidArgument))
	}

	rows, err := bs.bookRepo.Create(ctx, nil, []*types.Book{{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		Author:    strings.TrimSpace(input.Author),
		PageCount: input.PageCount,
		CoverURL:  strings.TrimSpace(input.CoverURL),
	}})
	if err != nil {
		return nil, dependencyErr(err)
	}
	return rows[0], nil
}

func (bs *bookService) Get(ctx context.Context, bookID uuid.UUID) (*types.Book, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	return readWithRetry(bs.log, func() (*types.Book, error) {
		book, err := bs.bookRepo.GetByIDForUser(ctx, nil, bookID, userID)
		if err != nil {
			return nil, dependencyErr(err)
		}
		if book == nil {
			return nil, apierr.New(http.StatusNotFound, "not_found", fmt.Errorf("book: %w", errs.ErrNotFound))
		}
		return book, nil
	})
}

func (bs *bookService) List(ctx context.Context) ([]*types.Book, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	return readWithRetry(bs.log, func() ([]*types.Book, error) {
		books, err := bs.bookRepo.ListForUser(ctx, nil, userID)
		if err != nil {
			return nil, dependencyErr(err)
		}
		return books, nil
	})
}
