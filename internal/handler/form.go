package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/maheshmohan7319/GOODINSIDE/internal/usecase"
)

// multipart / urlencoded のフォーム値。キーが無ければnil（変更なし）
type form struct {
	values url.Values
}

func readForm(c echo.Context) (form, error) {
	v, err := c.FormParams()
	if err != nil {
		return form{}, err
	}
	return form{values: v}, nil
}

func (f form) str(name string) *string {
	vs, ok := f.values[name]
	if !ok || len(vs) == 0 {
		return nil
	}
	s := vs[0]
	return &s
}

func (f form) int64(name string) (*int64, error) {
	s := f.str(name)
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(strings.TrimSpace(*s), 10, 64)
	if err != nil {
		return nil, usecase.ErrValidation("invalid " + name)
	}
	return &v, nil
}

func (f form) float(name string) (*float64, error) {
	s := f.str(name)
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(*s), 64)
	if err != nil {
		return nil, usecase.ErrValidation("invalid " + name)
	}
	return &v, nil
}

func (f form) bool(name string) (*bool, error) {
	s := f.str(name)
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(strings.TrimSpace(*s))
	if err != nil {
		return nil, usecase.ErrValidation("invalid " + name)
	}
	return &v, nil
}

// JSON配列の文字列か、同じキーの繰り返し
func (f form) list(name string) ([]string, error) {
	vs, ok := f.values[name]
	if !ok {
		return nil, nil
	}
	if len(vs) == 1 && strings.HasPrefix(strings.TrimSpace(vs[0]), "[") {
		var out []string
		if err := json.Unmarshal([]byte(vs[0]), &out); err != nil {
			return nil, usecase.ErrValidation("invalid " + name)
		}
		return out, nil
	}
	return vs, nil
}

// 画像ファイル。無ければnil。closeは必ず呼ぶ
func formImage(c echo.Context, field string) (*usecase.ImageUpload, func(), error) {
	noop := func() {}

	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, noop, nil
	}
	if err != nil {
		return nil, noop, usecase.ErrValidation("invalid " + field)
	}

	ct := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "image/") {
		return nil, noop, usecase.ErrValidation(field + " must be an image")
	}

	f, err := fh.Open()
	if err != nil {
		return nil, noop, usecase.ErrInternal(err)
	}
	return &usecase.ImageUpload{Filename: fh.Filename, ContentType: ct, Body: f}, func() { _ = f.Close() }, nil
}
