package app

import (
	"github.com/yungbote/bookkeeper-backend/internal/pkg/envutil"
)

type Config struct {
	JWTSecretKey string
	HTTPAddr     string
}

func LoadConfig() Config {
	return Config{
		JWTSecretKey: envutil.String("JWT_SECRET_KEY", "defaultsecret"),
		HTTPAddr:     envutil.String("HTTP_ADDR", ":8080"),
	}
}
