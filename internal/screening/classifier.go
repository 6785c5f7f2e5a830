package screening

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/aiabusehotline/hotline-core/internal/models"
	openai "github.com/sashabaranov/go-openai"
)

const systemPrompt = `You classify reports for AI Abuse Hotline.
Decide if this report is spam, low signal, or real AI distress.
Focus on whether the text describes AI agents being abused/misused, or harmful AI-mediated behavior.

Respond ONLY as JSON with these fields:
- spam_status: "SPAM" | "MAYBE_SPAM" | "NOT_SPAM"
- signal_label: "DISTRESS" | "LOW_SIGNAL" | "IRRELEVANT"
- severity_bucket: "LOW" | "MEDIUM" | "HIGH"
`

// promptTextLimit caps how much of the transcript snippet is sent to
// the external classifier.
const promptTextLimit = 512

// ErrNoCredentials marks a classifier that was built without an API
// key. Calls fail fast and follow the normal failure path.
var ErrNoCredentials = errors.New("screening: no API key configured")

// Classifier produces a screening verdict for one report.
type Classifier interface {
	// Model identifies the underlying model, recorded on each report
	// the classifier screens.
	Model() string
	Screen(ctx context.Context, origin models.Origin, abuseType models.AbuseType, severityScore float64, text string) (Verdict, error)
}

// OpenRouterClassifier screens reports through an OpenAI-compatible
// chat-completions endpoint.
type OpenRouterClassifier struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	keyless bool
}

func NewOpenRouterClassifier(apiKey, baseURL, model string, timeout time.Duration) *OpenRouterClassifier {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenRouterClassifier{
		client:  openai.NewClientWithConfig(cfg),
		model:   model,
		timeout: timeout,
		keyless: apiKey == "",
	}
}

func (c *OpenRouterClassifier) Model() string {
	return c.model
}

func (c *OpenRouterClassifier) Screen(ctx context.Context, origin models.Origin, abuseType models.AbuseType, severityScore float64, text string) (Verdict, error) {
	if c.keyless {
		return Verdict{}, ErrNoCredentials
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if runes := []rune(text); len(runes) > promptTextLimit {
		text = string(runes[:promptTextLimit])
	}
	prompt := fmt.Sprintf("origin: %s\nabuse_type: %s\nseverity_score: %v\ntext: \"%s\"\n",
		origin, abuseType, severityScore, text)

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   100,
		Temperature: math.SmallestNonzeroFloat32, // omitempty drops a plain 0
	})
	if err != nil {
		return Verdict{}, fmt.Errorf("screening request: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Verdict{}, errors.New("screening reply had no choices")
	}
	return ParseVerdict(resp.Choices[0].Message.Content)
}
