package testutil

import (
	"context"
	"errors"
)

type MockReviewEndpoint struct {
	ReviewCodeFunc func(ctx context.Context, code, language string) (string, error)

	// Calls counts the invocations of ReviewCode.
	Calls int
}

func (e *MockReviewEndpoint) ReviewCode(ctx context.Context, code, language string) (string, error) {
	e.Calls++
	if e.ReviewCodeFunc != nil {
		return e.ReviewCodeFunc(ctx, code, language)
	}

	return "", errors.New("not implemented")
}
