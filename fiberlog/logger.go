package fiberlog

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// getLogrusFields вызывает FuncTag для каждого настроенного поля
func getLogrusFields(ftm map[string]FuncTag, c *fiber.Ctx, d *data) log.Fields {
	f := make(log.Fields)
	for k, ft := range ftm {
		value := ft(c, d)
		strValue, ok := value.(string)
		if ok {
			if strValue != "" {
				f[k] = strValue
			}
		} else {
			f[k] = value
		}
	}
	return f
}

// New создает middleware логирования запросов
func New(config ...Config) fiber.Handler {
	cfg := ConfigDefault
	if len(config) != 0 {
		cfg = config[0]
	}
	pid := os.Getpid()
	ftm := getFuncTagMap(cfg)
	return func(c *fiber.Ctx) error {
		d := &data{
			pid:       pid,
			requestID: c.Get(HeaderRequestID),
			start:     time.Now(),
		}
		if d.requestID == "" {
			d.requestID = uuid.NewString()
		}
		c.Set(HeaderRequestID, d.requestID)
		d.err = c.Next()
		d.end = time.Now()
		if c.Method() == fiber.MethodOptions {
			return d.err
		}

		var entity *log.Entry
		if cfg.Logger == nil {
			entity = log.WithFields(getLogrusFields(ftm, c, d))
		} else {
			entity = cfg.Logger.WithFields(getLogrusFields(ftm, c, d))
		}
		if d.err != nil || c.Response().StatusCode() >= fiber.StatusBadRequest {
			entity.Warn(getMessage(c))
		} else {
			entity.Info(getMessage(c))
		}
		return d.err
	}
}

func getMessage(c *fiber.Ctx) string {
	return "запрос api"
}
