package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/codehub/backend/config"
	goopenai "github.com/sashabaranov/go-openai"
)

const systemPrompt = "You are a helpful code review assistant."

const reviewPromptTemplate = `You are an expert code reviewer and AI assistant for programmers. Analyze the following %[1]s code and provide:
1. A brief summary of what the code does
2. Any potential bugs or issues
3. Suggestions for improvement (performance, readability, best practices)
4. An improved version of the code if applicable

Code to analyze:
` + "```" + `%[1]s
%[2]s
` + "```" + `

Please provide your response in a structured format.`

type Endpoint struct {
	client      *goopenai.Client
	model       string
	maxTokens   int
	temperature float32
}

func New(cfg config.ReviewConfigs) *Endpoint {
	clientCfg := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &Endpoint{
		client:      goopenai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
	}
}

func BuildReviewPrompt(code, language string) string {
	return fmt.Sprintf(reviewPromptTemplate, language, code)
}

// ReviewCode sends exactly one completion request. Errors are returned to the
// caller as is.
func (e *Endpoint) ReviewCode(ctx context.Context, code, language string) (string, error) {
	resp, err := e.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: e.model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: goopenai.ChatMessageRoleUser, Content: BuildReviewPrompt(code, language)},
		},
		MaxTokens:   e.maxTokens,
		Temperature: e.temperature,
	})
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("no choices in completion response")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
