// Package summary generates an optional meeting summary from the
// finished transcript. Failures never fail the job.
package summary

import (
	"context"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const systemPrompt = "You summarize meeting transcripts. Reply with a short paragraph " +
	"covering the main topics and any decisions, in the transcript's language."

// maxTranscriptChars keeps the prompt inside model context limits.
const maxTranscriptChars = 24000

// Summarizer produces a one-paragraph meeting summary.
type Summarizer interface {
	Summarize(ctx context.Context, transcriptLines []string) (string, error)
}

// OpenAISummarizer uses chat completion.
type OpenAISummarizer struct {
	client *openai.Client
	logger *zap.Logger
}

func NewOpenAISummarizer(apiKey string, logger *zap.Logger) *OpenAISummarizer {
	return &OpenAISummarizer{
		client: openai.NewClient(apiKey),
		logger: logger,
	}
}

func (s *OpenAISummarizer) Summarize(ctx context.Context, transcriptLines []string) (string, error) {
	if len(transcriptLines) == 0 {
		return "", nil
	}

	transcript := strings.Join(transcriptLines, "\n")
	if len(transcript) > maxTranscriptChars {
		transcript = transcript[:maxTranscriptChars]
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT4oMini,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: transcript},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// NopSummarizer is used when no API key is configured.
type NopSummarizer struct{}

func NewNopSummarizer() *NopSummarizer {
	return &NopSummarizer{}
}

func (s *NopSummarizer) Summarize(ctx context.Context, transcriptLines []string) (string, error) {
	return "", nil
}
