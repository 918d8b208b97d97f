package filestorage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
)

type Provider interface {
	// Upload сохраняет файл в бакет тенанта, возвращает имя объекта
	Upload(ctx context.Context, tenantID, fileName, contentType string, body []byte) (objectName string, err error)
	PresignedURL(ctx context.Context, objectName, fileName string, ttl time.Duration) (string, error)
}

var Instance Provider

func NewHandler(client *minio.Client, bucketName string) {
	if client == nil {
		return
	}
	Instance = impl{
		client:     client,
		bucketName: bucketName,
	}
}

type impl struct {
	client     *minio.Client
	bucketName string
}

func ObjectName(tenantID, fileName string, now time.Time) string {
	return path.Join(tenantID, "reports", now.Format("2006/01/02"), fmt.Sprintf("%v_%v", now.Format("150405"), fileName))
}

func (i impl) Upload(ctx context.Context, tenantID, fileName, contentType string, body []byte) (string, error) {
	objectName := ObjectName(tenantID, fileName, time.Now())
	_, err := i.client.PutObject(ctx, i.bucketName, objectName, bytes.NewReader(body), int64(len(body)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", errors.Wrapf(err, "ошибка загрузки файла %v", objectName)
	}
	return objectName, nil
}

func (i impl) PresignedURL(ctx context.Context, objectName, fileName string, ttl time.Duration) (string, error) {
	params := url.Values{}
	params.Set("response-content-disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	link, err := i.client.PresignedGetObject(ctx, i.bucketName, objectName, ttl, params)
	if err != nil {
		return "", errors.Wrapf(err, "ошибка получения ссылки на файл %v", objectName)
	}
	return link.String(), nil
}
