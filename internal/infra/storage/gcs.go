package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	gcs "cloud.google.com/go/storage"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
)

const gcsPublicHost = "https://storage.googleapis.com"

// Cloud Storageに保存する
type GCSStore struct {
	client *gcs.Client
	bucket string
	now    func() time.Time
}

// credentialsFileが空ならADC
func NewGCSStore(ctx context.Context, bucket, credentialsFile string) (*GCSStore, error) {
	if strings.TrimSpace(bucket) == "" {
		return nil, errors.New("gcs store: bucket is required")
	}
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "gcs client")
	}
	return &GCSStore{client: client, bucket: bucket, now: time.Now}, nil
}

func (s *GCSStore) Close() error {
	return s.client.Close()
}

func (s *GCSStore) Upload(ctx context.Context, folder, filename, contentType string, r io.Reader) (string, error) {
	name, err := ObjectName(folder, filename, s.now())
	if err != nil {
		return "", err
	}
	w := s.client.Bucket(s.bucket).Object(name).NewWriter(ctx)
	if contentType != "" {
		w.ContentType = contentType
	}
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", errors.Wrap(err, "gcs write")
	}
	if err := w.Close(); err != nil {
		return "", errors.Wrap(err, "gcs close")
	}
	return s.publicURL(name), nil
}

func (s *GCSStore) Delete(ctx context.Context, url string) error {
	name, ok := s.objectName(url)
	if !ok {
		return nil
	}
	err := s.client.Bucket(s.bucket).Object(name).Delete(ctx)
	if err != nil && !errors.Is(err, gcs.ErrObjectNotExist) {
		return errors.Wrap(err, "gcs delete")
	}
	return nil
}

func (s *GCSStore) publicURL(name string) string {
	return fmt.Sprintf("%s/%s/%s", gcsPublicHost, s.bucket, name)
}

func (s *GCSStore) objectName(url string) (string, bool) {
	prefix := fmt.Sprintf("%s/%s/", gcsPublicHost, s.bucket)
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	name := strings.TrimPrefix(url, prefix)
	return name, name != ""
}
