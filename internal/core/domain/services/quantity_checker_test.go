package services_test

import (
	"testing"

	"allocation/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantityChecker_Validate(t *testing.T) {
	checker := services.NewQuantityChecker()

	testCases := []struct {
		name     string
		required int
		current  int
		delta    int
		wantErr  error
	}{
		{name: "assign into empty item", required: 5, current: 0, delta: 3},
		{name: "assign up to exact quantity", required: 5, current: 3, delta: 2},
		{name: "assign one over quantity", required: 5, current: 3, delta: 3, wantErr: services.ErrQuantityExceeded},
		{name: "assign to already full item", required: 2, current: 2, delta: 1, wantErr: services.ErrQuantityExceeded},
		{name: "unassign part of reserved", required: 5, current: 3, delta: -2},
		{name: "unassign everything", required: 5, current: 3, delta: -3},
		{name: "unassign more than reserved", required: 5, current: 3, delta: -4, wantErr: services.ErrQuantityExceeded},
		{name: "zero delta is a no-op", required: 5, current: 3, delta: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := checker.Validate(tc.required, tc.current, tc.delta)

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}

	t.Run("rejects invalid inputs", func(t *testing.T) {
		err := checker.Validate(0, 0, 1)
		require.Error(t, err)
		assert.NotErrorIs(t, err, services.ErrQuantityExceeded)

		err = checker.Validate(5, -1, 1)
		require.Error(t, err)
		assert.NotErrorIs(t, err, services.ErrQuantityExceeded)
	})
}
