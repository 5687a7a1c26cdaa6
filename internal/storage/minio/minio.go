// minio предоставляет реализацию storage.MediaStore на базе MinIO/S3.
// minio.go — конструктор клиента: нормализует endpoint, настраивает
// Secure/creds и выполняет fail-fast-проверку доступности бакета.
// media.go — загрузка/удаление объектов поверх клиента MinIO.
package minio

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	mclient "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pribylovaa/go-video-hosting/internal/config"
	"github.com/pribylovaa/go-video-hosting/internal/storage"
)

// MediaStore — адаптер MinIO для операций с медиафайлами.
type MediaStore struct {
	cfg    *config.Config
	client *mclient.Client
}

// Проверка выполнения контракта верхнего уровня.
var _ storage.MediaStore = (*MediaStore)(nil)

// New создаёт и инициализирует клиент MinIO.
// Делает endpoint-перенастройку (убирает схему), подбирает Secure по схеме
// и выполняет fail-fast-проверку доступности бакета.
func New(ctx context.Context, cfg *config.Config) (*MediaStore, error) {
	const op = "storage/minio/New"

	endpoint := cfg.S3.Endpoint
	secure := cfg.S3.UseSSL || strings.HasPrefix(endpoint, "https://")

	if u, err := url.Parse(endpoint); err == nil && u.Scheme != "" {
		endpoint = u.Host
		secure = u.Scheme == "https"
	}

	client, err := mclient.New(endpoint, &mclient.Options{
		Creds:  credentials.NewStaticV4(cfg.S3.RootUser, cfg.S3.RootPassword, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	exists, err := client.BucketExists(ctx, cfg.S3.Bucket)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !exists {
		return nil, fmt.Errorf("%s: bucket %q does not exist", op, cfg.S3.Bucket)
	}

	return &MediaStore{cfg: cfg, client: client}, nil
}
