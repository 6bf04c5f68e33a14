package openai

import "context"

type IEndpoint interface {
	// ReviewCode asks the completion api to review code written in language
	// and returns the review as prose.
	ReviewCode(ctx context.Context, code, language string) (string, error)
}
