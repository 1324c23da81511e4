package openrouter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openaimodel "github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type LLMBuilder interface {
	New(ctx context.Context) (model.ToolCallingChatModel, error)
}

var _ LLMBuilder = (*OpenRouterConfig)(nil)

type OpenRouterConfig struct {
	BaseURL            string        `envconfig:"BASE_URL" split_words:"true" default:"https://openrouter.ai/api/v1"`
	APIKey             string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	Model              string        `envconfig:"MODEL" split_words:"true" required:"true"`
	MaxCompletionToken *int          `envconfig:"MAX_COMPLETION_TOKEN" split_words:"true" default:"2000"`
	Temperature        float32       `envconfig:"TEMPERATURE" split_words:"true" default:"0.7"`
	Timeout            time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"60s"`
	SiteURL            string        `envconfig:"SITE_URL" split_words:"true"`
	SiteName           string        `envconfig:"SITE_NAME" split_words:"true"`
}

type Config = OpenRouterConfig

// attribution returns the app attribution headers OpenRouter reads for its
// rankings. Empty fields are left out.
func (c *OpenRouterConfig) attribution() http.Header {
	h := http.Header{}
	if v := strings.TrimSpace(c.SiteURL); v != "" {
		h.Set("HTTP-Referer", v)
	}
	if v := strings.TrimSpace(c.SiteName); v != "" {
		h.Set("X-Title", v)
	}
	return h
}

type headerTransport struct {
	headers http.Header
	next    http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	for k, vs := range t.headers {
		for _, v := range vs {
			req.Header.Set(k, v)
		}
	}
	return t.next.RoundTrip(req)
}

// New builds the tool-calling chat model used by the advisor gateway.
func (c *OpenRouterConfig) New(ctx context.Context) (model.ToolCallingChatModel, error) {
	conf := &openaimodel.ChatModelConfig{
		BaseURL:     strings.TrimRight(c.BaseURL, "/"),
		APIKey:      strings.TrimSpace(c.APIKey),
		Model:       strings.TrimSpace(c.Model),
		MaxTokens:   c.MaxCompletionToken,
		Temperature: &c.Temperature,
	}

	if headers := c.attribution(); len(headers) > 0 {
		conf.HTTPClient = &http.Client{
			Timeout:   c.Timeout,
			Transport: &headerTransport{headers: headers, next: http.DefaultTransport},
		}
	} else {
		conf.Timeout = c.Timeout
	}

	m, err := openaimodel.NewChatModel(ctx, conf)
	if err != nil {
		return nil, fmt.Errorf("openrouter: create chat model: %w", err)
	}

	return m, nil
}

// NewClient creates a new OpenAI SDK client configured for OpenRouter.
func NewClient(cfg Config) *openaisdk.Client {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil
	}

	opts := []option.RequestOption{
		option.WithAPIKey(strings.TrimSpace(cfg.APIKey)),
	}

	if trimmed := strings.TrimRight(cfg.BaseURL, "/"); trimmed != "" {
		opts = append(opts, option.WithBaseURL(trimmed))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}
	for k, vs := range cfg.attribution() {
		opts = append(opts, option.WithHeader(k, vs[0]))
	}

	client := openaisdk.NewClient(opts...)
	return &client
}

type ProbeResult struct {
	Model   string
	Latency time.Duration
}

var ErrNoCredential = errors.New("openrouter: api key is empty")

// Probe checks the credential and model with a one-token completion.
func Probe(ctx context.Context, cfg Config) (ProbeResult, error) {
	client := NewClient(cfg)
	if client == nil {
		return ProbeResult{}, ErrNoCredential
	}

	start := time.Now()
	resp, err := client.Chat.Completions.New(ctx, openaisdk.ChatCompletionNewParams{
		Messages: []openaisdk.ChatCompletionMessageParamUnion{
			openaisdk.UserMessage("ping"),
		},
		Model:     openaisdk.ChatModel(strings.TrimSpace(cfg.Model)),
		MaxTokens: openaisdk.Int(1),
	})
	if err != nil {
		return ProbeResult{}, fmt.Errorf("openrouter: probe completion: %w", err)
	}

	return ProbeResult{Model: resp.Model, Latency: time.Since(start)}, nil
}
