package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

const (
	DefaultEnvFile     = ".env"
	DefaultSecretsFile = "secrets.toml"
)

var (
	mu          sync.RWMutex
	envFilePath string
	secretsPath string
)

// SetEnvFile points New at an explicit dotenv file. A missing explicit file
// is an error; the default .env is optional.
func SetEnvFile(path string) {
	mu.Lock()
	defer mu.Unlock()
	envFilePath = strings.TrimSpace(path)
}

// SetSecretsFile points New at an explicit secrets TOML file.
func SetSecretsFile(path string) {
	mu.Lock()
	defer mu.Unlock()
	secretsPath = strings.TrimSpace(path)
}

func MustNew[T any](prefix string) *T {
	conf, err := New[T](prefix)
	if err != nil {
		panic(err)
	}
	return conf
}

// New exports the dotenv and secrets files into the process environment and
// decodes T from it with envconfig.
func New[T any](prefix string) (*T, error) {
	mu.RLock()
	envPath, secPath := envFilePath, secretsPath
	mu.RUnlock()

	if err := exportFile(envPath, DefaultEnvFile); err != nil {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}
	if err := exportFile(secPath, DefaultSecretsFile); err != nil {
		return nil, fmt.Errorf("failed to load secrets file: %w", err)
	}

	var conf T
	if err := envconfig.Process(prefix, &conf); err != nil {
		return nil, err
	}

	return &conf, nil
}

func exportFile(explicit, fallback string) error {
	if explicit != "" {
		return exportEnvironment(explicit)
	}
	return exportEnvironmentIfExists(fallback)
}

func exportEnvironmentIfExists(filepath string) error {
	info, err := os.Stat(filepath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if info.IsDir() {
		return nil
	}
	return exportEnvironment(filepath)
}

// exportEnvironment sets every key of the file as an upper-case environment
// variable. Nested tables are flattened with underscores, so
// [openrouter] api_key becomes OPENROUTER_API_KEY.
func exportEnvironment(filepath string) error {
	v := viper.New()
	v.SetConfigFile(filepath)
	if err := v.ReadInConfig(); err != nil {
		return err
	}

	for _, k := range v.AllKeys() {
		name := strings.ToUpper(strings.ReplaceAll(k, ".", "_"))
		if err := os.Setenv(name, fmt.Sprint(v.Get(k))); err != nil {
			return err
		}
	}

	return nil
}
