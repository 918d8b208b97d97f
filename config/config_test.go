package config

import (
	"os"
	"testing"
	"time"

	"github.com/gotify/configor"
	"github.com/stretchr/testify/require"
)

func TestConfig(t *testing.T) {
	t.Run(`defaults check`, func(t *testing.T) {
		conf := new(Configuration)
		err := configor.New(&configor.Config{}).Load(conf)
		require.Nil(t, err)
		require.Equal(t, 8080, conf.App.Port)
		require.Equal(t, int64(10485760), conf.App.BodyLimit)
		require.Equal(t, "", conf.App.ErrNotifyUrl)
		require.Equal(t, 3*time.Second, conf.StageLockWait())
		require.Equal(t, time.Minute, conf.StageWorkerInterval())
		require.Equal(t, time.Hour, conf.PresignTTL())
		require.Equal(t, 200, conf.Stage.WorkerBatchSize)
		require.NotNil(t, conf.Metrics.Enabled)
		require.True(t, *conf.Metrics.Enabled)
	})

	t.Run(`env override check`, func(t *testing.T) {
		os.Setenv("STAGE_LOCK_WAIT_MS", "500")
		defer os.Unsetenv("STAGE_LOCK_WAIT_MS")
		conf := new(Configuration)
		err := configor.New(&configor.Config{}).Load(conf)
		require.Nil(t, err)
		require.Equal(t, 500*time.Millisecond, conf.StageLockWait())
	})
}
