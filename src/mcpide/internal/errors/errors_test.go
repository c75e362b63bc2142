package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsBadRequest(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "duplicate request",
			err:  DuplicateRequestError,
			want: true,
		},
		{
			name: "wrapped duplicate request",
			err:  fmt.Errorf("adding job: %w", DuplicateRequestError),
			want: true,
		},
		{
			name: "connection closed",
			err:  ConnectionClosedError,
			want: false,
		},
		{
			name: "not bad request",
			err:  New("not bad request"),
			want: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsBadRequest(tt.err))
		})
	}
}
