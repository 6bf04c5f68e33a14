package domain

import (
	"context"
	"errors"
	"testing"

	"github.com/codehub/backend/internal/model"
	"github.com/codehub/backend/pkg/errorx"
	"github.com/codehub/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_reviewDomain_SuggestCode(t *testing.T) {
	tests := []struct {
		name         string
		req          *model.SuggestCodeRequest
		reviewErr    error
		want         *model.SuggestCodeResponse
		wantErr      error
		wantReviewed bool
	}{
		{
			name:         "default language",
			req:          &model.SuggestCodeRequest{Code: "print(1)"},
			want:         &model.SuggestCodeResponse{Suggestion: "looks good: python", Language: "python"},
			wantReviewed: true,
		},
		{
			name:         "explicit language",
			req:          &model.SuggestCodeRequest{Code: "fmt.Println(1)", Language: "go"},
			want:         &model.SuggestCodeResponse{Suggestion: "looks good: go", Language: "go"},
			wantReviewed: true,
		},
		{
			name:    "no code",
			req:     &model.SuggestCodeRequest{Code: "  "},
			wantErr: errorx.New(errorx.BadRequest, "No code provided"),
		},
		{
			name:         "upstream failure",
			req:          &model.SuggestCodeRequest{Code: "print(1)"},
			reviewErr:    errors.New("rate limited"),
			wantErr:      errorx.New(errorx.Upstream, "AI suggestion failed: rate limited"),
			wantReviewed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reviewer := &testutil.MockReviewEndpoint{
				ReviewCodeFunc: func(ctx context.Context, code, language string) (string, error) {
					if tt.reviewErr != nil {
						return "", tt.reviewErr
					}
					return "looks good: " + language, nil
				},
			}

			got, err := NewReviewDomain(reviewer).SuggestCode(testutil.MockContext(), tt.req)
			if tt.wantReviewed {
				require.Equal(t, 1, reviewer.Calls)
			} else {
				require.Zero(t, reviewer.Calls)
			}

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}
