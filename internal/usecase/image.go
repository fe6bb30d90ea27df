package usecase

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/maheshmohan7319/GOODINSIDE/internal/infra/storage"
)

// multipartから受け取った画像
type ImageUpload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

func (i *ImageUpload) present() bool {
	return i != nil && i.Body != nil
}

func uploadImage(ctx context.Context, store storage.ImageStore, folder string, img *ImageUpload) (string, error) {
	return store.Upload(ctx, folder, img.Filename, img.ContentType, img.Body)
}

// 古い画像の削除失敗はログだけ
func deleteImage(ctx context.Context, store storage.ImageStore, logger *zap.Logger, url string) {
	if url == "" {
		return
	}
	if err := store.Delete(ctx, url); err != nil {
		logger.Warn("image delete failed", zap.String("url", url), zap.Error(err))
	}
}
