package shared

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

const (
	EnvAccessToken = "SPOTIFY_ACCESS_TOKEN"
	EnvConfigPath  = "SPOTX_CONFIG"
)

// LoadEnv loads KEY=value pairs from the given dotenv files (".env" when none are given) into the process environment.
//
// Missing files are ignored and variables already set are left untouched.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
	}
	return nil
}

// ApplyEnv overrides config values with their environment counterparts.
func ApplyEnv(config *Config) {
	if token := os.Getenv(EnvAccessToken); token != "" {
		config.Spotify.AccessToken = token
	}
}

// ConfigPath returns the config file location, honoring [EnvConfigPath] over fallback.
func ConfigPath(fallback string) string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	return fallback
}
