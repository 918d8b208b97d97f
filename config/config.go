package config

import (
	"time"

	"github.com/gotify/configor"
)

var Conf *Configuration

type Configuration struct {
	App struct {
		ListenAddr  string `default:"" env:"APP_HOST"`
		Port        int    `default:"8080"  env:"APP_PORT"`
		SwaggerFile string `default:"" env:"APP_SWAGGER_FILE"`
		FontDir     string `default:"static/font/" env:"APP_FONT_DIR"`
		// адрес для оповещения об ошибках 5xx, пустой - не оповещать
		ErrNotifyUrl string `default:"" env:"APP_ERR_NOTIFY_URL"`
		BodyLimit    int64  `default:"10485760" env:"APP_BODY_LIMIT"`
	}
	Database struct {
		Host           string `default:"127.0.0.1" env:"DB_HOST"`
		Port           string `default:"5432" env:"DB_PORT"`
		Name           string `default:"sales-pipeline" env:"DB_NAME"`
		User           string `default:"postgres" env:"DB_USER"`
		Password       string `default:"postgres" env:"DB_PASSWORD"`
		MigrateOnStart *bool  `default:"true" env:"DB_MIGRATE_ON_START"`
		DebugMode      *bool  `default:"false" env:"DB_DEBUG_MODE"`
	}
	Auth struct {
		JWTSecret      string `default:"" env:"AUTH_JWT_SECRET"`
		JWTExpireInSec int    `default:"86400" env:"AUTH_JWT_EXPIRE_IN_SEC"`
	}
	Smtp struct {
		User       string `default:"" env:"SMTP_USER"`
		Password   string `default:"" env:"SMTP_PASSWORD"`
		Host       string `default:"" env:"SMTP_HOST"`
		Port       string `default:"" env:"SMTP_PORT"`
		TLSEnabled *bool  `default:"true" env:"SMTP_TLS_ENABLED"`
	}
	S3 struct {
		Endpoint        string `default:"" env:"S3_ENDPOINT"`
		AccessKeyID     string `default:"" env:"S3_ACCESS_KEY_ID"`
		SecretAccessKey string `default:"" env:"S3_SECRET_ACCESS_KEY"`
		UseSSL          *bool  `default:"false" env:"S3_USE_SSL"`
		BucketName      string `default:"sales-pipeline" env:"S3_BUCKET_NAME"`
		PresignTTLMin   int    `default:"60" env:"S3_PRESIGN_TTL_MIN"`
	}
	Stage struct {
		LockWaitMs        int `default:"3000" env:"STAGE_LOCK_WAIT_MS"`
		WorkerIntervalSec int `default:"60" env:"STAGE_WORKER_INTERVAL_SEC"`
		WorkerBatchSize   int `default:"200" env:"STAGE_WORKER_BATCH_SIZE"`
	}
	Metrics struct {
		Enabled *bool `default:"true" env:"METRICS_ENABLED"`
	}
}

func (c *Configuration) StageLockWait() time.Duration {
	return time.Duration(c.Stage.LockWaitMs) * time.Millisecond
}

func (c *Configuration) StageWorkerInterval() time.Duration {
	return time.Duration(c.Stage.WorkerIntervalSec) * time.Second
}

func (c *Configuration) PresignTTL() time.Duration {
	return time.Duration(c.S3.PresignTTLMin) * time.Minute
}

func configFiles() []string {
	return []string{"config.yml"}
}

func InitConfig() {
	if Conf != nil {
		return
	}
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles()...)
	if err != nil {
		panic(err)
	}
	Conf = conf
}
