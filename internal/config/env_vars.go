package config

import (
	"os"
	"path/filepath"
)

const (
	serverURLEnvVar = "LIFTING_LOG_SERVER_URL"
	appNameEnvVar   = "LIFTING_LOG_APP_NAME"
	stateFileEnvVar = "LIFTING_LOG_STATE_FILE"
	logLevelEnvVar  = "LIFTING_LOG_LOG_LEVEL"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetServerURL() string {
	return GetEnv(serverURLEnvVar, "http://localhost:8000")
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameEnvVar, "Lifting Log")
}

// GetStateFile returns where the session is persisted. Defaults to
// ~/.lifting-log/session.json.
func (EnvVars) GetStateFile() string {
	if path := os.Getenv(stateFileEnvVar); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".lifting-log", "session.json")
	}
	return filepath.Join(home, ".lifting-log", "session.json")
}

func (EnvVars) GetLogLevel() string {
	return GetEnv(logLevelEnvVar, "info")
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
