package initializers

import (
	"context"
	"sales-pipeline-backend/config"
	filestorage "sales-pipeline-backend/lib/file-storage"
	s3client "sales-pipeline-backend/s3"
	"time"

	log "github.com/sirupsen/logrus"
)

// InitS3 - хранилище необязательно, без него недоступно только сохранение выгрузок
func InitS3(ctx context.Context) {
	if config.Conf.S3.Endpoint == "" {
		log.Warn("S3 не настроен, сохранение выгрузок недоступно")
		return
	}
	client, err := s3client.NewClient(config.Conf.S3.Endpoint, config.Conf.S3.AccessKeyID,
		config.Conf.S3.SecretAccessKey, *config.Conf.S3.UseSSL)
	if err != nil {
		log.WithError(err).Error("ошибка инициализации клиента S3")
		return
	}
	checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err = s3client.EnsureBucket(checkCtx, client, config.Conf.S3.BucketName); err != nil {
		log.WithError(err).Error("S3 недоступен, сохранение выгрузок отключено")
		return
	}
	s3client.Client = client
	filestorage.NewHandler(client, config.Conf.S3.BucketName)
	log.Info("S3 клиент успешно инициализирован")
}
