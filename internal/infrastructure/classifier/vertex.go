package classifier

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"greenleaf/internal/logger"

	vertex "cloud.google.com/go/vertexai/genai"
	"go.uber.org/zap"
)

const (
	defaultVertexModel    = "gemini-2.5-flash"
	defaultVertexLocation = "us-central1"
)

type vertexModel interface {
	GenerateContent(ctx context.Context, parts ...vertex.Part) (*vertex.GenerateContentResponse, error)
}

// Vertex classifies through Vertex AI using application default credentials.
type Vertex struct {
	client    *vertex.Client
	model     vertexModel
	modelName string
	logger    *zap.Logger
}

func NewVertex(ctx context.Context, project, location, model string, log *zap.Logger) (*Vertex, error) {
	project = strings.TrimSpace(project)
	if project == "" {
		return nil, errors.New("vertex project is required")
	}
	if location = strings.TrimSpace(location); location == "" {
		location = defaultVertexLocation
	}
	if model = strings.TrimSpace(model); model == "" {
		model = defaultVertexModel
	}

	client, err := vertex.NewClient(ctx, project, location)
	if err != nil {
		return nil, fmt.Errorf("create vertex ai client: %w", err)
	}

	m := client.GenerativeModel(model)
	m.SetTemperature(0)
	m.SetMaxOutputTokens(8)
	m.SystemInstruction = &vertex.Content{Parts: []vertex.Part{vertex.Text(SystemInstruction)}}

	return &Vertex{client: client, model: m, modelName: model, logger: logger.OrNop(log)}, nil
}

func (v *Vertex) Classify(ctx context.Context, title, description string) (string, error) {
	if v == nil || v.model == nil {
		return "", errors.New("vertex classifier is not initialized")
	}

	prompt := BuildPrompt(title, description)
	v.logger.Debug("vertex request",
		zap.String("model", v.modelName),
		zap.String("prompt", logger.TruncateForLog(prompt, 200)),
	)

	resp, err := v.model.GenerateContent(ctx, vertex.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	out := vertexText(resp)
	v.logger.Debug("vertex response", zap.String("reply", logger.TruncateForLog(out, 32)))
	if out == "" {
		return "", errEmptyReply
	}
	return out, nil
}

func (v *Vertex) Close() error {
	if v == nil || v.client == nil {
		return nil
	}
	return v.client.Close()
}

func vertexText(resp *vertex.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(vertex.Text); ok {
			b.WriteString(string(text))
		}
	}
	return strings.TrimSpace(b.String())
}
