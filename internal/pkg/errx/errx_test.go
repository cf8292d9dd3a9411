package errx_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/ferdiebergado/pneumodetect/internal/pkg/errx"
)

func TestIsContextError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"Canceled", context.Canceled, true},
		{"Wrapped deadline", fmt.Errorf("query: %w", context.DeadlineExceeded), true},
		{"Other", errors.New("boom"), false},
		{"Nil", nil, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := errx.IsContextError(tc.err); got != tc.want {
				t.Errorf("errx.IsContextError(%v) = %v, want: %v", tc.err, got, tc.want)
			}
		})
	}
}
