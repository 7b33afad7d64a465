package genai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	gemini "google.golang.org/genai"
)

// ErrNoAPIKey is returned by every call when no key is configured.
var ErrNoAPIKey = errors.New("genai api key not configured")

type Turn struct {
	Role string // "user" or "model"
	Text string
}

type Config struct {
	APIKey  string
	Model   string
	BaseURL string // empty uses the SDK default endpoint
	Timeout time.Duration
}

// Client generates chat replies through the Gemini API SDK.
type Client struct {
	cfg     Config
	models  *gemini.Models
	initErr error
}

func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	c := &Client{cfg: cfg}
	if cfg.APIKey == "" {
		return c
	}

	sdk, err := gemini.NewClient(context.Background(), &gemini.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    gemini.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
		HTTPOptions: gemini.HTTPOptions{
			BaseURL:    strings.TrimRight(cfg.BaseURL, "/"),
			APIVersion: "v1beta",
		},
	})
	if err != nil {
		c.initErr = fmt.Errorf("create genai client: %w", err)
		return c
	}
	c.models = sdk.Models
	return c
}

func (c *Client) Enabled() bool {
	return c.cfg.APIKey != ""
}

// Generate sends the conversation and returns the text of the first candidate.
func (c *Client) Generate(ctx context.Context, system string, turns []Turn) (string, error) {
	if !c.Enabled() {
		return "", ErrNoAPIKey
	}
	if c.initErr != nil {
		return "", c.initErr
	}

	contents := make([]*gemini.Content, 0, len(turns))
	for _, t := range turns {
		var role gemini.Role = gemini.RoleUser
		if t.Role == "model" {
			role = gemini.RoleModel
		}
		contents = append(contents, gemini.NewContentFromText(t.Text, role))
	}

	var config *gemini.GenerateContentConfig
	if system != "" {
		config = &gemini.GenerateContentConfig{
			SystemInstruction: &gemini.Content{Parts: []*gemini.Part{{Text: system}}},
		}
	}

	resp, err := c.models.GenerateContent(ctx, c.cfg.Model, contents, config)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	reply := resp.Text()
	if reply == "" {
		return "", errors.New("generate content returned no text")
	}
	return reply, nil
}
