package playsession

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestMapActivityConflict(t *testing.T) {
	dup := &pq.Error{Code: uniqueViolation, Constraint: "game_user_activity_action_unique"}
	other := &pq.Error{Code: "23503"}
	plain := errors.New("connection reset")

	tests := []struct {
		name   string
		err    error
		action Action
		want   error
	}{
		{name: "duplicate start", err: dup, action: ActionStart, want: ErrDuplicateStart},
		{name: "duplicate stop", err: dup, action: ActionStop, want: ErrDuplicateStop},
		{name: "wrapped duplicate", err: fmt.Errorf("insert activity: %w", dup), action: ActionStart, want: ErrDuplicateStart},
		{name: "other pq code passes through", err: other, action: ActionStart, want: other},
		{name: "non pq error passes through", err: plain, action: ActionStop, want: plain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapActivityConflict(tt.err, tt.action)
			assert.ErrorIs(t, got, tt.want)
		})
	}
}
