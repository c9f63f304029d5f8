package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables read by LoadEnv.
const (
	EnvStore         = "ARQUIZ_STORE"
	EnvDataFile      = "ARQUIZ_DATA_FILE"
	EnvClassifierURL = "ARQUIZ_CLASSIFIER_URL"
	EnvAddr          = "ARQUIZ_ADDR"
)

// EnvConfig holds overrides taken from the environment. Nil means unset.
type EnvConfig struct {
	StoreEngine   *string
	StorePath     *string
	ClassifierURL *string
	ServeAddr     *string
}

// LoadEnv loads dotenvPath into the process environment, if it exists,
// and reads the overrides. Variables already set win over the file.
func LoadEnv(dotenvPath string) (EnvConfig, error) {
	if dotenvPath != "" {
		if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return EnvConfig{}, fmt.Errorf("failed to load %s: %w", dotenvPath, err)
		}
	}
	return EnvConfig{
		StoreEngine:   lookupEnv(EnvStore),
		StorePath:     lookupEnv(EnvDataFile),
		ClassifierURL: lookupEnv(EnvClassifierURL),
		ServeAddr:     lookupEnv(EnvAddr),
	}, nil
}

func lookupEnv(key string) *string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	return &v
}
