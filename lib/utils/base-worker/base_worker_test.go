package baseworker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	t.Run(`panic does not stop worker check`, func(t *testing.T) {
		var calls int32
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			NewInstance("test", time.Millisecond, 10*time.Millisecond).Run(ctx, func(ctx context.Context) {
				if atomic.AddInt32(&calls, 1) == 1 {
					panic("first run")
				}
			})
			close(done)
		}()
		require.Eventually(t, func() bool {
			return atomic.LoadInt32(&calls) >= 2
		}, time.Second, 5*time.Millisecond)
		cancel()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("задача не остановлена")
		}
	})
}
