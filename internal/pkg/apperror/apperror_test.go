package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	cause := errors.New("connection reset")

	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "nil", err: nil, want: ""},
		{name: "plain error", err: cause, want: ""},
		{name: "not found", err: NotFound("session %s", "abc"), want: KindNotFound},
		{name: "wrapped upstream", err: fmt.Errorf("generate: %w", Upstream("gemini call failed", cause)), want: KindUpstreamFailure},
		{name: "cooldown", err: Cooldown(12), want: KindCooldown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := Persistence("save analysis", cause)

	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "disk full")
	assert.True(t, Is(err, KindPersistenceFailure))
}

func TestCooldownCarriesDaysRemaining(t *testing.T) {
	appErr, ok := As(fmt.Errorf("analyze: %w", Cooldown(20)))

	assert.True(t, ok)
	assert.Equal(t, 20, appErr.DaysRemaining)
}
