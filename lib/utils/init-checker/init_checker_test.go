package initchecker

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type provider interface {
	Do()
}

type impl struct{}

func (i *impl) Do() {}

func TestCheckInit(t *testing.T) {
	t.Run(`initialized check`, func(t *testing.T) {
		var p provider = &impl{}
		require.NotPanics(t, func() {
			CheckInit("provider", p, "value", 0)
		})
	})

	t.Run(`nil interface check`, func(t *testing.T) {
		var p provider
		require.Panics(t, func() {
			CheckInit("provider", p)
		})
	})

	t.Run(`typed nil check`, func(t *testing.T) {
		var ptr *impl
		var p provider = ptr
		require.Panics(t, func() {
			CheckInit("provider", p)
		})
	})

	t.Run(`odd arguments check`, func(t *testing.T) {
		require.Panics(t, func() {
			CheckInit("provider")
		})
	})
}
