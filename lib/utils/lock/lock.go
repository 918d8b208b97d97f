package lock

import (
	"context"
	"strings"
	"sync"
	"time"
)

const retryInterval = 50 * time.Millisecond

var lockMap sync.Map

// Key собирает ключ блокировки из частей: Key("opportunity_stage", id)
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}

// WithDelay выполняет safeCode под блокировкой по ключу внутри процесса.
// Если блокировку не удалось получить за wait или контекст завершен, возвращает success=false
func WithDelay(ctx context.Context, key string, wait time.Duration, safeCode func() error) (success bool, err error) {
	if !acquire(ctx, key, wait) {
		return false, nil
	}
	defer lockMap.Delete(key)
	return true, safeCode()
}

func acquire(ctx context.Context, key string, wait time.Duration) bool {
	if _, loaded := lockMap.LoadOrStore(key, struct{}{}); !loaded {
		return true
	}
	timeout := time.NewTimer(wait)
	defer timeout.Stop()
	ticker := time.NewTicker(retryInterval)
	defer ticker.Stop()
	for {
		select {
		case <-timeout.C:
			return false
		case <-ctx.Done():
			return false
		case <-ticker.C:
			if _, loaded := lockMap.LoadOrStore(key, struct{}{}); !loaded {
				return true
			}
		}
	}
}

func IsLocked(key string) bool {
	_, ok := lockMap.Load(key)
	return ok
}
