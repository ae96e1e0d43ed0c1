package handler

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/xcard-server/internal/model"
)

func TestHandleError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		in       error
		wantCode codes.Code
		wantMsg  string
	}{
		{
			name:     "validation -> InvalidArgument",
			in:       model.NewValidationError("username", "must not be empty"),
			wantCode: codes.InvalidArgument,
			wantMsg:  "invalid username: must not be empty",
		},
		{
			name:     "wrapped not found -> NotFound",
			in:       fmt.Errorf("lookup: %w", model.ErrNotFound),
			wantCode: codes.NotFound,
			wantMsg:  "user not found",
		},
		{
			name:     "invalid token -> Unauthenticated",
			in:       model.ErrInvalidToken,
			wantCode: codes.Unauthenticated,
			wantMsg:  "invalid card token",
		},
		{
			name:     "storage -> Internal without details",
			in:       model.NewStorageError("create", errors.New("password=hunter2")),
			wantCode: codes.Internal,
			wantMsg:  "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			st, ok := status.FromError(handleError(tt.in))
			assert.True(t, ok)
			assert.Equal(t, tt.wantCode, st.Code())
			assert.Equal(t, tt.wantMsg, st.Message())
		})
	}
}
