package config

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port        string
	CORSOrigins string
	BodyLimit   int

	// APIKey guards the API when set. Empty means open access.
	APIKey string
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
		BodyLimit:   getEnvInt("BODY_LIMIT_MB", 4) * 1024 * 1024,
		APIKey:      getEnv("API_KEY", ""),
	}
}
