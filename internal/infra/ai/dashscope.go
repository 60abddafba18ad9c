package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ivankudzin/soulmate/backend/internal/infra/httpclient"
)

// Config describes one DashScope endpoint. An empty APIKey means the
// collaborator is not configured; callers must not construct a client then.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

type dashScopeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type dashScopeTextRequest struct {
	Model string `json:"model"`
	Input struct {
		Messages []dashScopeMessage `json:"messages"`
	} `json:"input"`
	Parameters struct {
		Temperature  float64 `json:"temperature"`
		MaxTokens    int     `json:"max_tokens"`
		ResultFormat string  `json:"result_format"`
	} `json:"parameters"`
}

// dashScopeTextResponse covers the reply shapes DashScope is known to emit,
// plus the OpenAI-compatible one some gateways translate to.
type dashScopeTextResponse struct {
	Output struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Text string `json:"text"`
	} `json:"output"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// replyExtractors is the ordered list of places a reply text may live.
// The first hit wins.
var replyExtractors = []func(dashScopeTextResponse) (string, bool){
	func(r dashScopeTextResponse) (string, bool) {
		if len(r.Output.Choices) > 0 && r.Output.Choices[0].Message.Content != "" {
			return r.Output.Choices[0].Message.Content, true
		}
		return "", false
	},
	func(r dashScopeTextResponse) (string, bool) {
		if r.Output.Text != "" {
			return r.Output.Text, true
		}
		return "", false
	},
	func(r dashScopeTextResponse) (string, bool) {
		if len(r.Choices) > 0 && r.Choices[0].Message.Content != "" {
			return r.Choices[0].Message.Content, true
		}
		return "", false
	},
}

type TextClient struct {
	cfg        Config
	httpClient *http.Client
}

func NewTextClient(cfg Config) (*TextClient, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("dashscope api key is empty")
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("dashscope base url is empty")
	}

	return &TextClient{
		cfg:        cfg,
		httpClient: httpclient.New(defaultTimeout),
	}, nil
}

// Generate sends a single-turn instruction and returns the reply text.
func (c *TextClient) Generate(ctx context.Context, prompt string) (string, error) {
	req := dashScopeTextRequest{Model: c.cfg.Model}
	req.Input.Messages = []dashScopeMessage{{Role: "user", Content: prompt}}
	req.Parameters.Temperature = 0.8
	req.Parameters.MaxTokens = 2000
	req.Parameters.ResultFormat = "message"

	var resp dashScopeTextResponse
	if err := c.post(ctx, req, &resp); err != nil {
		return "", err
	}
	if resp.Code != "" {
		return "", fmt.Errorf("dashscope error: code=%s message=%s", resp.Code, resp.Message)
	}

	for _, extract := range replyExtractors {
		if reply, ok := extract(resp); ok {
			return reply, nil
		}
	}

	return "", fmt.Errorf("dashscope reply has no recognizable text payload")
}

func (c *TextClient) post(ctx context.Context, payload, target any) error {
	return postJSON(ctx, c.httpClient, c.cfg.BaseURL, c.cfg.APIKey, payload, target)
}

func postJSON(ctx context.Context, client *http.Client, url, apiKey string, payload, target any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("call generation api: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read generation response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected generation api status %d: %s", resp.StatusCode, truncate(string(raw), 200))
	}

	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode generation response: %w", err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
