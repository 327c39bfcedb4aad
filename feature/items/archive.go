package items

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"item-catalog/core/storage"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// Archive keeps a copy of every raw dump accepted by ingestion in object storage,
// under <prefix>/YYYY/MM/DD/<uuid>.txt.
type Archive struct {
	client storage.Client
	bucket string
	prefix string
	now    func() time.Time
}

// NewArchive creates an archive. A nil client yields a nil archive, which stores nothing.
func NewArchive(client storage.Client, bucket, prefix string) *Archive {
	if client == nil {
		return nil
	}
	return &Archive{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Store uploads raw and returns its object key.
func (a *Archive) Store(ctx context.Context, raw string, metadata map[string]string) (string, error) {
	if a == nil {
		return "", nil
	}

	key := path.Join(a.prefix, a.now().Format("2006/01/02"), uuid.NewString()+".txt")
	_, err := a.client.PutObject(ctx, a.bucket, key, strings.NewReader(raw), int64(len(raw)), minio.PutObjectOptions{
		ContentType:  "text/plain; charset=utf-8",
		UserMetadata: metadata,
	})
	if err != nil {
		return "", fmt.Errorf("failed to archive dump %s: %w", key, err)
	}
	return key, nil
}

// Load returns an archived dump.
func (a *Archive) Load(ctx context.Context, key string) (string, error) {
	if a == nil {
		return "", fmt.Errorf("dump archive is disabled")
	}

	obj, err := a.client.GetObject(ctx, a.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return "", fmt.Errorf("failed to get archived dump %s: %w", key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return "", fmt.Errorf("failed to read archived dump %s: %w", key, err)
	}
	return string(data), nil
}
