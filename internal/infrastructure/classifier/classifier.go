package classifier

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"greenleaf/internal/config"
	"greenleaf/internal/logger"
	"greenleaf/internal/pkg/htmltext"

	"go.uber.org/zap"
)

// SystemInstruction is sent with every request. The model must answer with a bare literal.
const SystemInstruction = `You rate how carbon-intensive a job role is from its title and description.
Answer with exactly one of these values and nothing else:
1 if the role has low emissions or directly reduces emissions,
0 if the role is neutral or you cannot tell,
-1 if the role is emissions-heavy.`

const promptDescriptionLimit = 6000

var errEmptyReply = errors.New("classifier returned empty response")

type Classifier interface {
	Classify(ctx context.Context, title, description string) (string, error)
}

// BuildPrompt renders the user turn. HTML in the description is reduced to text.
func BuildPrompt(title, description string) string {
	desc := htmltext.ToText(description)
	if r := []rune(desc); len(r) > promptDescriptionLimit {
		desc = string(r[:promptDescriptionLimit])
	}
	return fmt.Sprintf("Title: %s\nDescription: %s", strings.TrimSpace(title), desc)
}

// New builds the backend selected by cfg.Provider.
func New(ctx context.Context, cfg config.ClassifierConfig, log *zap.Logger) (Classifier, func() error, error) {
	log = logger.Named(log, "classifier")
	noop := func() error { return nil }

	var (
		c       Classifier
		closeFn = noop
	)
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "gemini":
		g, err := NewGemini(ctx, cfg.GeminiAPIKey, cfg.Model, log)
		if err != nil {
			return nil, noop, err
		}
		c = g
	case "vertex":
		v, err := NewVertex(ctx, cfg.VertexProject, cfg.VertexLocation, cfg.Model, log)
		if err != nil {
			return nil, noop, err
		}
		c, closeFn = v, v.Close
	case "static":
		c = Static{Reply: cfg.StaticReply}
	default:
		return nil, noop, fmt.Errorf("unknown classifier provider %q", cfg.Provider)
	}

	log.Info("classifier ready", zap.String("provider", cfg.Provider), zap.String("model", cfg.Model))
	if cfg.Timeout > 0 {
		c = WithTimeout(c, cfg.Timeout)
	}
	return c, closeFn, nil
}

// Static answers every request with the same reply. Used for local runs and tests.
type Static struct {
	Reply string
}

func (s Static) Classify(_ context.Context, _, _ string) (string, error) {
	return strings.TrimSpace(s.Reply), nil
}

type timeoutClassifier struct {
	next    Classifier
	timeout time.Duration
}

// WithTimeout bounds every call to next by d on top of the caller's context.
func WithTimeout(next Classifier, d time.Duration) Classifier {
	return timeoutClassifier{next: next, timeout: d}
}

func (t timeoutClassifier) Classify(ctx context.Context, title, description string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.next.Classify(ctx, title, description)
}
