package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ivankudzin/soulmate/backend/internal/infra/httpclient"
)

// Image generation can take noticeably longer than text, 30s covers both.
const defaultTimeout = 30 * time.Second

const (
	portraitPromptPrefix = "帮我生成一张人物画像："
	portraitPromptSuffix = "。要求：真实、高质量、专业摄影风格，柔和光线，温暖氛围，人物看起来友好亲切，背景柔和模糊，中性色调。"
)

type imageContent struct {
	Text string `json:"text"`
}

type imageMessage struct {
	Role    string         `json:"role"`
	Content []imageContent `json:"content"`
}

type dashScopeImageRequest struct {
	Model string `json:"model"`
	Input struct {
		Messages []imageMessage `json:"messages"`
	} `json:"input"`
	Parameters struct {
		PromptExtend bool   `json:"prompt_extend"`
		Size         string `json:"size"`
	} `json:"parameters"`
}

type dashScopeImageResponse struct {
	Output struct {
		Results []struct {
			URL string `json:"url"`
		} `json:"results"`
		Choices []struct {
			Message struct {
				Content []struct {
					Image string `json:"image"`
				} `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		URL string `json:"url"`
	} `json:"output"`
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// imageURLExtractors mirrors replyExtractors for the image endpoint. Model
// families differ in where they put the result URL.
var imageURLExtractors = []func(dashScopeImageResponse) (string, bool){
	func(r dashScopeImageResponse) (string, bool) {
		if len(r.Output.Results) > 0 && r.Output.Results[0].URL != "" {
			return r.Output.Results[0].URL, true
		}
		return "", false
	},
	func(r dashScopeImageResponse) (string, bool) {
		if len(r.Output.Choices) > 0 {
			content := r.Output.Choices[0].Message.Content
			if len(content) > 0 && content[0].Image != "" {
				return content[0].Image, true
			}
		}
		return "", false
	},
	func(r dashScopeImageResponse) (string, bool) {
		if r.Output.URL != "" {
			return r.Output.URL, true
		}
		return "", false
	},
	func(r dashScopeImageResponse) (string, bool) {
		if len(r.Data) > 0 && r.Data[0].URL != "" {
			return r.Data[0].URL, true
		}
		return "", false
	},
}

// ImageClient renders a soulmate portrait from a textual appearance description.
type ImageClient struct {
	cfg        Config
	size       string
	httpClient *http.Client
}

func NewImageClient(cfg Config, size string) (*ImageClient, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("dashscope api key is empty")
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("dashscope base url is empty")
	}
	if size == "" {
		size = "1024*1024"
	}

	return &ImageClient{
		cfg:        cfg,
		size:       size,
		httpClient: httpclient.New(defaultTimeout),
	}, nil
}

// Generate returns a URL of the rendered portrait. The description is wrapped
// into a fixed photographic style brief before it reaches the model.
func (c *ImageClient) Generate(ctx context.Context, description string) (string, error) {
	req := dashScopeImageRequest{Model: c.cfg.Model}
	req.Input.Messages = []imageMessage{{
		Role:    "user",
		Content: []imageContent{{Text: portraitPromptPrefix + description + portraitPromptSuffix}},
	}}
	req.Parameters.PromptExtend = false
	req.Parameters.Size = c.size

	var resp dashScopeImageResponse
	if err := postJSON(ctx, c.httpClient, c.cfg.BaseURL, c.cfg.APIKey, req, &resp); err != nil {
		return "", err
	}
	if resp.Code != "" {
		return "", fmt.Errorf("dashscope error: code=%s message=%s", resp.Code, resp.Message)
	}

	for _, extract := range imageURLExtractors {
		if url, ok := extract(resp); ok {
			return url, nil
		}
	}

	return "", fmt.Errorf("dashscope reply has no image url")
}
