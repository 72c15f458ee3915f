package app

import (
	"time"

	"github.com/studyloop/studyloop-backend/internal/platform/envutil"
)

type Config struct {
	Port            string
	Environment     string
	JWTSecretKey    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	GroqAPIKey    string
	GroqBaseURL   string
	GroqModel     string
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string
}

func LoadConfig() Config {
	return Config{
		Port:            envutil.String("PORT", "8080"),
		Environment:     envutil.String("APP_ENV", "development"),
		JWTSecretKey:    envutil.String("JWT_SECRET_KEY", ""),
		AccessTokenTTL:  envutil.Seconds("ACCESS_TOKEN_TTL", 3600),
		RefreshTokenTTL: envutil.Seconds("REFRESH_TOKEN_TTL", 604800),

		GroqAPIKey:    envutil.String("GROQ_API_KEY", ""),
		GroqBaseURL:   envutil.String("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		GroqModel:     envutil.String("GROQ_MODEL", "llama-3.3-70b-versatile"),
		OpenAIAPIKey:  envutil.String("OPENAI_API_KEY", ""),
		OpenAIBaseURL: envutil.String("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:   envutil.String("OPENAI_MODEL", "gpt-4o-mini"),
	}
}
