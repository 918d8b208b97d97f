package helpers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHelpers(t *testing.T) {
	t.Run(`IsContextDone check`, func(t *testing.T) {
		require.True(t, IsContextDone(nil))
		ctx, cancel := context.WithCancel(context.Background())
		require.False(t, IsContextDone(ctx))
		cancel()
		require.True(t, IsContextDone(ctx))
	})

	t.Run(`NilIfEmpty check`, func(t *testing.T) {
		require.Nil(t, NilIfEmpty(""))
		require.Nil(t, NilIfEmpty("  "))
		require.Equal(t, "id", *NilIfEmpty("id"))
	})

	t.Run(`EscapeLike check`, func(t *testing.T) {
		require.Equal(t, `100\%`, EscapeLike("100%"))
		require.Equal(t, `a\_b`, EscapeLike("a_b"))
		require.Equal(t, `a\\b`, EscapeLike(`a\b`))
	})
}
