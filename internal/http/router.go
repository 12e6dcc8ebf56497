package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/yungbote/bookkeeper-backend/internal/http/handlers"
	httpMW "github.com/yungbote/bookkeeper-backend/internal/http/middleware"
	"github.com/yungbote/bookkeeper-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Logger         *logger.Logger
	AuthMiddleware *httpMW.AuthMiddleware

	BookHandler     *httpH.BookHandler
	JourneyHandler  *httpH.JourneyHandler
	SessionHandler  *httpH.SessionHandler
	ThoughtHandler  *httpH.ThoughtHandler
	NoteHandler     *httpH.QuickNoteHandler
	ReviewHandler   *httpH.ReviewHandler
	ProgressHandler *httpH.ProgressHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.CORS())
	r.Use(httpMW.RequestLogger(cfg.Logger))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	protected := r.Group("/api")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Books
		if cfg.BookHandler != nil {
			protected.POST("/books", cfg.BookHandler.CreateBook)
			protected.GET("/books", cfg.BookHandler.ListBooks)
			protected.GET("/books/:bookID", cfg.BookHandler.GetBook)
		}

		// Journeys
		if cfg.JourneyHandler != nil {
			protected.POST("/books/:bookID/journeys", cfg.JourneyHandler.StartJourney)
			protected.GET("/books/:bookID/journeys", cfg.JourneyHandler.ListJourneys)
			protected.GET("/books/:bookID/journeys/active", cfg.JourneyHandler.GetActive)
			protected.PATCH("/journeys/:journeyID/name", cfg.JourneyHandler.RenameJourney)
			protected.PATCH("/journeys/:journeyID/visibility", cfg.JourneyHandler.SetVisibility)
			protected.POST("/journeys/:journeyID/complete", cfg.JourneyHandler.CompleteJourney)
			protected.POST("/journeys/:journeyID/abandon", cfg.JourneyHandler.AbandonJourney)
		}

		// Reading sessions
		if cfg.SessionHandler != nil {
			protected.POST("/books/:bookID/sessions", cfg.SessionHandler.LogSession)
			protected.GET("/books/:bookID/sessions", cfg.SessionHandler.ListSessions)
		}

		// Thoughts
		if cfg.ThoughtHandler != nil {
			protected.POST("/books/:bookID/thoughts", cfg.ThoughtHandler.AddThought)
			protected.GET("/books/:bookID/thoughts", cfg.ThoughtHandler.ListThoughts)
		}

		// Quick notes
		if cfg.NoteHandler != nil {
			protected.POST("/notes", cfg.NoteHandler.AddNote)
			protected.GET("/journeys/:journeyID/notes", cfg.NoteHandler.ListNotes)
			protected.PATCH("/notes/:noteID/starred", cfg.NoteHandler.ToggleStarred)
			protected.DELETE("/notes/:noteID", cfg.NoteHandler.DeleteNote)
			protected.POST("/notes/:noteID/convert", cfg.NoteHandler.ConvertNote)
		}

		// Reviews
		if cfg.ReviewHandler != nil {
			protected.PUT("/journeys/:journeyID/review", cfg.ReviewHandler.SubmitReview)
			protected.GET("/journeys/:journeyID/review", cfg.ReviewHandler.GetReview)
			protected.GET("/books/:bookID/reviews", cfg.ReviewHandler.ListReviews)
		}

		// Progress
		if cfg.ProgressHandler != nil {
			protected.GET("/books/:bookID/progress", cfg.ProgressHandler.Overview)
		}
	}

	return r
}
