package llm

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	contractx "github.com/tanpawarit/Chative-College-Advisor/agent/contract"
	openrouterx "github.com/tanpawarit/Chative-College-Advisor/pkg/openrouter"
)

// Config is loaded with the OPENROUTER prefix, so the credential is read from
// OPENROUTER_API_KEY.
type Config struct {
	BaseURL            string        `envconfig:"BASE_URL" split_words:"true" default:"https://openrouter.ai/api/v1" validate:"required,url"`
	APIKey             string        `envconfig:"API_KEY" split_words:"true"`
	Model              string        `envconfig:"MODEL" split_words:"true" default:"google/gemini-2.0-flash-001" validate:"required"`
	MaxCompletionToken int           `envconfig:"MAX_COMPLETION_TOKEN" split_words:"true" default:"2000" validate:"gt=0"`
	Temperature        float32       `envconfig:"TEMPERATURE" split_words:"true" default:"0.7" validate:"gte=0,lte=2"`
	Timeout            time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"60s" validate:"gt=0"`
	SiteURL            string        `envconfig:"SITE_URL" split_words:"true" validate:"omitempty,url"`
	SiteName           string        `envconfig:"SITE_NAME" split_words:"true"`
}

var validate = validator.New()

func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("%w: set OPENROUTER_API_KEY in secrets.toml, .env or the environment", contractx.ErrMissingCredential)
	}
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: llm config: %v", contractx.ErrValidation, err)
	}
	return nil
}

func (c Config) OpenRouter() openrouterx.Config {
	maxCompletionToken := c.MaxCompletionToken
	return openrouterx.Config{
		BaseURL:            strings.TrimSpace(c.BaseURL),
		APIKey:             strings.TrimSpace(c.APIKey),
		Model:              strings.TrimSpace(c.Model),
		MaxCompletionToken: &maxCompletionToken,
		Temperature:        c.Temperature,
		Timeout:            c.Timeout,
		SiteURL:            strings.TrimSpace(c.SiteURL),
		SiteName:           strings.TrimSpace(c.SiteName),
	}
}
