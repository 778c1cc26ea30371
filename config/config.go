package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	Server ServerConfig
	Mongo  MongoConfig
	Auth   AuthConfig
	CORS   CORSConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type MongoConfig struct {
	URI      string
	Database string
}

type AuthConfig struct {
	JWTSecret     string
	TokenTTLHours int
	BcryptCost    int
}

type CORSConfig struct {
	Origins []string
}

// Load reads configuration from the environment, with .env support for
// local development.
func Load() *Config {
	_ = godotenv.Load()

	ttl, _ := strconv.Atoi(getEnv("TOKEN_TTL_HOURS", "24"))
	cost, _ := strconv.Atoi(getEnv("BCRYPT_COST", strconv.Itoa(bcrypt.DefaultCost)))

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Env:  getEnv("ENV", "development"),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGODB_DB", "hakim-livs"),
		},
		Auth: AuthConfig{
			JWTSecret:     getEnv("JWT_SECRET", "your-secret-key"),
			TokenTTLHours: ttl,
			BcryptCost:    cost,
		},
		CORS: CORSConfig{
			Origins: strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000"), ","),
		},
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
