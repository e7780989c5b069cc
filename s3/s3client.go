package s3client

import (
	"context"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
)

var Client *minio.Client

// FetchObject скачивает объект целиком. Используется один раз на старте
// для получения файла с набором данных, поэтому потоковое чтение не нужно.
func FetchObject(bucketName, objectName string) ([]byte, error) {
	if Client == nil {
		return nil, errors.New("S3 клиент не инициализирован")
	}
	obj, err := Client.GetObject(context.Background(), bucketName, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения объекта из S3")
	}
	defer obj.Close()
	raw, err := io.ReadAll(obj)
	if err != nil {
		return nil, errors.Wrapf(err, "ошибка чтения объекта %v/%v", bucketName, objectName)
	}
	return raw, nil
}
