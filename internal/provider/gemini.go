package provider

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"google.golang.org/genai"

	"you_education/internal/logger"
)

// GeminiClient là adapter gọi Gemini API để sinh nội dung
type GeminiClient struct {
	client    *genai.Client
	modelName string
}

// NewGeminiClient tạo mới một GeminiClient.
// Parameters:
//   - ctx: Context cho việc khởi tạo client
//   - apiKey: API key của Gemini
//   - modelName: Tên model (ví dụ: gemini-2.0-flash)
func NewGeminiClient(ctx context.Context, apiKey, modelName string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, NewProviderError("gemini", "init", errors.New("thiếu API key"))
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, NewProviderError("gemini", "init", err)
	}

	return &GeminiClient{
		client:    client,
		modelName: modelName,
	}, nil
}

// Complete gửi prompt tới Gemini và trả về text hoàn chỉnh.
// systemPrompt được truyền qua SystemInstruction, userPrompt là nội dung chính.
// Không hỗ trợ streaming.
func (g *GeminiClient) Complete(ctx context.Context, systemPrompt, userPrompt string, maxTokens int32) (string, error) {
	contents := []*genai.Content{{
		Parts: []*genai.Part{{Text: userPrompt}},
		Role:  "user",
	}}

	config := &genai.GenerateContentConfig{}
	if systemPrompt != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: systemPrompt}},
		}
	}
	if maxTokens > 0 {
		config.MaxOutputTokens = maxTokens
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, contents, config)
	if err != nil {
		logger.GetErrorLogger().WithFields(logrus.Fields{
			"model": g.modelName,
			"error": err.Error(),
		}).Error("🧠 [GEMINI] Lỗi gọi GenerateContent")
		return "", NewProviderError("gemini", "generate_content", err)
	}

	text := resp.Text()
	if text == "" {
		return "", NewProviderError("gemini", "generate_content", errors.New("model trả về response rỗng"))
	}

	return text, nil
}

// ModelName trả về tên model đang dùng
func (g *GeminiClient) ModelName() string {
	return g.modelName
}
