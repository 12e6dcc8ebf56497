package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/bookkeeper-backend/internal/http/response"
	"github.com/yungbote/bookkeeper-backend/internal/pkg/logger"
	"github.com/yungbote/bookkeeper-backend/internal/services"
)

type BookHandler struct {
	log         *logger.Logger
	bookService services.BookService
}

func NewBookHandler(log *logger.Logger, bookService services.BookService) *BookHandler {
	return &BookHandler{
		log:         log.With("handler", "BookHandler"),
		bookService: bookService,
	}
}

// POST /api/books
func (h *BookHandler) CreateBook(c *gin.Context) {
	var input services.AddBookInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, http.StatusBadRequest, "validation_failed", err)
		return
	}
	book, err := h.bookService.Add(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err, "create_book_failed")
		return
	}
	response.RespondCreated(c, gin.H{"book": book})
}

// GET /api/books/:bookID
func (h *BookHandler) GetBook(c *gin.Context) {
	bookID, ok := parsePathUUID(c, "bookID")
	if !ok {
		return
	}
	book, err := h.bookService.Get(c.Request.Context(), bookID)
	if err != nil {
		respondServiceError(c, err, "get_book_failed")
		return
	}
	response.RespondOK(c, gin.H{"book": book})
}

// GET /api/books
func (h *BookHandler) ListBooks(c *gin.Context) {
	books, err := h.bookService.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "list_books_failed")
		return
	}
	response.RespondOK(c, gin.H{"books": books})
}
