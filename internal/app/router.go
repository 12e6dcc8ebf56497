package app

import (
	"github.com/gin-gonic/gin"

	apphttp "github.com/yungbote/bookkeeper-backend/internal/http"
	"github.com/yungbote/bookkeeper-backend/internal/http/middleware"
	"github.com/yungbote/bookkeeper-backend/internal/pkg/logger"
)

type Middleware struct {
	Auth *middleware.AuthMiddleware
}

func wireMiddleware(log *logger.Logger, cfg Config) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: middleware.NewAuthMiddleware(log, cfg.JWTSecretKey),
	}
}

func wireRouter(log *logger.Logger, h Handlers, mw Middleware) *gin.Engine {
	return apphttp.NewRouter(apphttp.RouterConfig{
		Logger:         log,
		AuthMiddleware: mw.Auth,

		BookHandler:     h.Book,
		JourneyHandler:  h.Journey,
		SessionHandler:  h.Session,
		ThoughtHandler:  h.Thought,
		NoteHandler:     h.Note,
		ReviewHandler:   h.Review,
		ProgressHandler: h.Progress,

		HealthHandler: h.Health,
	})
}
