// Package storage は商品・カテゴリ・プロフィール画像の保存先。
package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// 画像の保存・削除だけを約束
type ImageStore interface {
	// 保存して公開URLを返す
	Upload(ctx context.Context, folder, filename, contentType string, r io.Reader) (string, error)
	// このストアのURLでなければ何もしない
	Delete(ctx context.Context, url string) error
}

var ErrEmptyFolder = errors.New("storage: folder is required")

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// folder/ULID-元のファイル名
func ObjectName(folder, filename string, now time.Time) (string, error) {
	folder = strings.Trim(strings.TrimSpace(folder), "/")
	if folder == "" || strings.Contains(folder, "..") {
		return "", ErrEmptyFolder
	}
	base := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	base = unsafeChars.ReplaceAllString(base, "_")
	base = strings.Trim(base, "._")
	if base == "" {
		base = "image"
	}
	id := ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy())
	return path.Join(folder, strings.ToLower(id.String())+"-"+base), nil
}
