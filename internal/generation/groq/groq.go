package groq

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// Client talks to an OpenAI-compatible chat-completions endpoint (Groq by
// default). Retry policy lives here, not in the retrieval core: rate
// limits and transient server errors are backed off and re-tried before an
// error is ever surfaced to the composer.
type Client struct {
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	client      *http.Client
	maxRetries  int
	rateLimitWt time.Duration
}

// Config configures the chat client. The API key is read from the
// environment variable named by APIKeyEnv.
type Config struct {
	BaseURL     string
	APIKeyEnv   string
	Model       string
	Temperature float64
	Timeout     time.Duration
}

// NewClient creates a chat-completions client from the configuration.
func NewClient(cfg Config) (*Client, error) {
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("missing API key in env %s", cfg.APIKeyEnv)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.groq.com/openai/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "llama-3.3-70b-versatile"
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.7
	}
	t := cfg.Timeout
	if t == 0 {
		t = 60 * time.Second
	}
	return &Client{
		baseURL:     cfg.BaseURL,
		apiKey:      key,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		client:      &http.Client{Timeout: t},
		maxRetries:  3,
		rateLimitWt: 15 * time.Second,
	}, nil
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate sends the prompt as a single user message and returns the model
// text. 429 responses wait out the rate limit and retry; 5xx responses
// back off exponentially.
func (c *Client) Generate(prompt string, maxTokens int) (string, error) {
	if maxTokens <= 0 {
		maxTokens = 2048
	}
	url := fmt.Sprintf("%s/chat/completions", c.baseURL)
	body := chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens:   maxTokens,
		Temperature: c.temperature,
	}
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		data, _ := json.Marshal(body)
		req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.apiKey)

		resp, err := c.client.Do(req)
		if err != nil {
			if attempt < c.maxRetries {
				time.Sleep(retryDelay(attempt))
				continue
			}
			return "", err
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			_ = resp.Body.Close()
			if attempt < c.maxRetries {
				time.Sleep(c.rateLimitWt)
				continue
			}
			return "", errors.New("chat completion failed: rate limit exceeded")
		}
		if resp.StatusCode >= 500 {
			_ = resp.Body.Close()
			if attempt < c.maxRetries {
				time.Sleep(retryDelay(attempt))
				continue
			}
			return "", fmt.Errorf("chat completion failed: %s", resp.Status)
		}
		if resp.StatusCode >= 300 {
			detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			_ = resp.Body.Close()
			return "", fmt.Errorf("chat completion failed: %s: %s", resp.Status, bytes.TrimSpace(detail))
		}

		var out chatResponse
		err = json.NewDecoder(resp.Body).Decode(&out)
		_ = resp.Body.Close()
		if err != nil {
			return "", err
		}
		if len(out.Choices) == 0 {
			return "", errors.New("chat completion returned no choices")
		}
		return out.Choices[0].Message.Content, nil
	}
	return "", errors.New("chat completion failed")
}

func retryDelay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	base := 500 * time.Millisecond
	d := base << attempt
	if d > 5*time.Second {
		d = 5 * time.Second
	}
	return d
}
