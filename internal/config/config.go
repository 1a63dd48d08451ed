package config

type Config interface {
	EnvConfig
	ClientConfig
}

type EnvConfig interface {
	GetServerURL() string
	GetAppName() string
	GetStateFile() string
	GetLogLevel() string
}

type mainConfig struct {
	EnvVars
	Client
}

func New() Config {
	return mainConfig{}
}
