package utils_test

import (
	"context"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/storefront-backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithDBTimeout(t *testing.T) {
	t.Run("Success - Default Deadline", func(t *testing.T) {
		ctx, cancel := utils.WithDBTimeout(context.Background())
		defer cancel()

		deadline, ok := ctx.Deadline()
		require.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(utils.DefaultDBTimeout), deadline, time.Second)
	})

	t.Run("Success - Sooner Caller Deadline Kept", func(t *testing.T) {
		parent, parentCancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
		defer parentCancel()

		want, _ := parent.Deadline()

		ctx, cancel := utils.WithDBTimeout(parent)
		defer cancel()

		got, ok := ctx.Deadline()
		require.True(t, ok)
		assert.Equal(t, want, got)
	})
}
