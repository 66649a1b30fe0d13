package common

import (
	"os"
	"strconv"
)

// Config holds the server configuration, populated from environment
// variables with defaults.
type Config struct {
	Host         string // HOST, listen address
	Port         int    // PORT, listen port
	AuthUsername string // AUTH_USERNAME, basic auth user
	AuthPassword string // AUTH_PASSWORD, basic auth password
	LogLevel     string // LOG_LEVEL, debug/info/warn/error
	LogPath      string // LOG_PATH, empty means stderr
	WorkDir      string // WORK_DIR, directory scripts are launched in
}

var config Config

func GetConfig() Config {
	return config
}

func InitConf() {
	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		port = 8080
	}

	workDir := getEnv("WORK_DIR", "")
	if workDir == "" {
		workDir, _ = os.Getwd()
	}

	config = Config{
		Host:         getEnv("HOST", "0.0.0.0"),
		Port:         port,
		AuthUsername: getEnv("AUTH_USERNAME", "admin"),
		AuthPassword: getEnv("AUTH_PASSWORD", "changeme"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogPath:      getEnv("LOG_PATH", ""),
		WorkDir:      workDir,
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
