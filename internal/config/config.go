package config

import "os"

type Config struct {
	APIBaseURL string
	WSBaseURL  string
	StateDir   string
	TaxRate    string
}

func Load() *Config {
	return &Config{
		APIBaseURL: getEnv("MESA_API_URL", "http://localhost:8080/api"),
		WSBaseURL:  getEnv("MESA_WS_URL", "ws://localhost:8080"),
		StateDir:   getEnv("MESA_STATE_DIR", defaultStateDir()),
		TaxRate:    getEnv("MESA_TAX_RATE", "0.05"),
	}
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".mesa-terminal"
	}
	return home + "/.mesa-terminal"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
