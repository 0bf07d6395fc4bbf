package services

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"

	"astro-report-service/internal/config"
	"astro-report-service/internal/models"
)

// Interpreter produces an optional narrative interpretation of a computed
// chart. It is disabled when no API key is configured; reports are complete
// without it.
type Interpreter struct {
	client *openai.Client
	model  string
	log    *logrus.Logger
}

// NewInterpreter creates an interpreter, or a disabled one when the API key
// is empty
func NewInterpreter(cfg config.OpenAIConfig, log *logrus.Logger) *Interpreter {
	if cfg.APIKey == "" {
		return &Interpreter{log: log}
	}
	return &Interpreter{
		client: openai.NewClient(cfg.APIKey),
		model:  cfg.Model,
		log:    log,
	}
}

// Enabled reports whether an API key was configured
func (i *Interpreter) Enabled() bool {
	return i.client != nil
}

// InterpretKundali returns a short narrative for the chart, or "" when
// disabled or on failure. Interpretation is decorative and never blocks
// report generation.
func (i *Interpreter) InterpretKundali(ctx context.Context, result *models.KundaliResult) string {
	if !i.Enabled() {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Lagna: %s. Moon sign: %s. Sun sign: %s. Moon nakshatra: %s (pada %d).\n",
		result.Lagna, result.MoonSign, result.SunSign, result.MoonNakshatra, result.MoonNakshatraPada)
	for planet, pos := range result.PlanetaryPositions {
		fmt.Fprintf(&sb, "%s in %s, house %d.\n", planet, pos.Sign, pos.House)
	}

	resp, err := i.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: i.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleSystem,
				Content: "You are a Vedic astrology assistant. Write a brief, warm interpretation " +
					"of the given chart in two or three paragraphs. Do not give medical, legal, or financial advice.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: sb.String(),
			},
		},
		MaxTokens: 500,
	})
	if err != nil {
		i.log.WithError(err).Warn("chart interpretation failed, continuing without it")
		return ""
	}
	if len(resp.Choices) == 0 {
		return ""
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content)
}
