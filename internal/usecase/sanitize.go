package usecase

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// タグはすべて落とす
var textPolicy = bluemonday.StrictPolicy()

func sanitizeText(s string) string {
	return strings.TrimSpace(textPolicy.Sanitize(s))
}

func sanitizeList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if v := sanitizeText(s); v != "" {
			out = append(out, v)
		}
	}
	return out
}
