package domain

import (
	"context"
	"strings"

	"github.com/codehub/backend/internal/model"
	"github.com/codehub/backend/pkg/api/openai"
	"github.com/codehub/backend/pkg/errorx"
	"github.com/codehub/backend/pkg/xcontext"
)

const defaultReviewLanguage = "python"

type ReviewDomain interface {
	SuggestCode(context.Context, *model.SuggestCodeRequest) (*model.SuggestCodeResponse, error)
}

type reviewDomain struct {
	reviewer openai.IEndpoint
}

func NewReviewDomain(reviewer openai.IEndpoint) *reviewDomain {
	return &reviewDomain{reviewer: reviewer}
}

// SuggestCode asks the completion api for a review of the code. A failed call
// is reported as is, it is never retried.
func (d *reviewDomain) SuggestCode(
	ctx context.Context, req *model.SuggestCodeRequest,
) (*model.SuggestCodeResponse, error) {
	if strings.TrimSpace(req.Code) == "" {
		return nil, errorx.New(errorx.BadRequest, "No code provided")
	}

	language := req.Language
	if language == "" {
		language = defaultReviewLanguage
	}

	suggestion, err := d.reviewer.ReviewCode(ctx, req.Code, language)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot review code: %v", err)
		return nil, errorx.New(errorx.Upstream, "AI suggestion failed: %v", err)
	}

	return &model.SuggestCodeResponse{
		Suggestion: suggestion,
		Language:   language,
	}, nil
}
