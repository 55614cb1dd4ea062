// Package openai implements the word-lookup client on an OpenAI-compatible
// chat completion API with a schema-constrained JSON response.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
	"go.uber.org/zap"

	"github.com/leitor-app/leitor/internal/domain"
	"github.com/leitor-app/leitor/internal/domain/dictionary"
	"github.com/leitor-app/leitor/internal/metrics"
)

// promptTemplate is the fixed instruction sent with every lookup.
const promptTemplate = "Você é um dicionário de português. Defina a palavra ou expressão %q " +
	"de forma clara e curta e liste sinônimos em ordem de relevância."

const schemaName = "dictionary_entry"

// Client is a word-lookup provider using the OpenAI-compatible chat API.
type Client struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// Config holds the lookup provider settings.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration // zero means no client-side timeout
	Logger  *zap.Logger
}

// NewClient creates an OpenAI-compatible lookup client.
func NewClient(cfg *Config) *Client {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	if cfg.Timeout > 0 {
		clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
		logger: cfg.Logger,
	}
}

// resultSchema constrains the response to exactly the three expected fields.
var resultSchema = jsonschema.Definition{
	Type: jsonschema.Object,
	Properties: map[string]jsonschema.Definition{
		"word":     {Type: jsonschema.String},
		"meaning":  {Type: jsonschema.String},
		"synonyms": {Type: jsonschema.Array, Items: &jsonschema.Definition{Type: jsonschema.String}},
	},
	Required:             []string{"word", "meaning", "synonyms"},
	AdditionalProperties: false,
}

// lookupPayload mirrors the requested JSON schema.
type lookupPayload struct {
	Word     string   `json:"word"`
	Meaning  string   `json:"meaning"`
	Synonyms []string `json:"synonyms"`
}

// Lookup implements domain.LookupClient. A response that fails the
// structural parse is not an error: it degrades to the fallback result
// with the original input as the word. The call is not retried and not
// cached; a repeated identical lookup re-issues the request.
func (c *Client) Lookup(ctx context.Context, text string) (dictionary.Result, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(promptTemplate, text),
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   schemaName,
				Schema: &resultSchema,
				Strict: true,
			},
		},
	}

	start := time.Now()

	resp, err := c.client.CreateChatCompletion(ctx, req)

	duration := time.Since(start)

	if err != nil {
		metrics.LookupRequestsTotal.WithLabelValues(c.model, "error").Inc()
		return dictionary.Result{}, parseAPIError(err)
	}

	metrics.LookupRequestDuration.WithLabelValues(c.model).Observe(duration.Seconds())
	if resp.Usage.TotalTokens > 0 {
		metrics.LookupTokensTotal.WithLabelValues(c.model, "prompt").Add(float64(resp.Usage.PromptTokens))
		metrics.LookupTokensTotal.WithLabelValues(c.model, "total").Add(float64(resp.Usage.TotalTokens))
	}

	if len(resp.Choices) == 0 {
		return c.fallback(text, fmt.Errorf("empty choices")), nil
	}

	var payload lookupPayload
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &payload); err != nil {
		return c.fallback(text, err), nil
	}

	metrics.LookupRequestsTotal.WithLabelValues(c.model, "success").Inc()
	return dictionary.New(payload.Word, payload.Meaning, payload.Synonyms), nil
}

// fallback logs the single diagnostic for an unparseable response and
// substitutes the fixed not-found result.
func (c *Client) fallback(text string, cause error) dictionary.Result {
	metrics.LookupRequestsTotal.WithLabelValues(c.model, "fallback").Inc()
	c.logger.Warn("unparseable lookup response, using fallback",
		zap.String("text", text),
		zap.Error(cause),
	)
	return dictionary.NotFound(text)
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (c *Client) HealthCheck(ctx context.Context) error {
	if _, err := c.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

// parseAPIError extracts a human-readable error from the API response.
// All errors are wrapped with domain.ErrLookupProviderError for correct 502 mapping.
func parseAPIError(err error) error {
	wrap := domain.ErrLookupProviderError

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("lookup API error %d: %s: %w",
			reqErr.HTTPStatusCode, string(reqErr.Body), wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("lookup API error %d: %s: %w",
			apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	return fmt.Errorf("lookup request failed: %w", wrap)
}
