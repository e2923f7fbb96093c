package classifier

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"greenleaf/internal/logger"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.5-flash"

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Gemini classifies through the Gemini API.
type Gemini struct {
	models    contentGenerator
	modelName string
	logger    *zap.Logger
}

func NewGemini(ctx context.Context, apiKey, model string, log *zap.Logger) (*Gemini, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return newGemini(client.Models, model, log), nil
}

func newGemini(models contentGenerator, model string, log *zap.Logger) *Gemini {
	if model = strings.TrimSpace(model); model == "" {
		model = defaultGeminiModel
	}
	return &Gemini{models: models, modelName: model, logger: logger.OrNop(log)}
}

func (g *Gemini) Classify(ctx context.Context, title, description string) (string, error) {
	if g == nil || g.models == nil {
		return "", errors.New("gemini classifier is not initialized")
	}

	prompt := BuildPrompt(title, description)
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(SystemInstruction, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0),
	}

	g.logger.Debug("gemini request",
		zap.String("model", g.modelName),
		zap.String("prompt", logger.TruncateForLog(prompt, 200)),
	)

	resp, err := g.models.GenerateContent(ctx, g.modelName, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	out := geminiText(resp)
	g.logger.Debug("gemini response", zap.String("reply", logger.TruncateForLog(out, 32)))
	if out == "" {
		return "", errEmptyReply
	}
	return out, nil
}

func geminiText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var b strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			b.WriteString(part.Text)
		}
		break
	}
	return strings.TrimSpace(b.String())
}
