package usecase

import (
	"time"

	"github.com/oklog/ulid/v2"
)

const orderNumberPrefix = "ORD-"

// 注文番号の採番
type OrderNumberGenerator interface {
	Next(now time.Time) string
}

// ORD-<ULID>。一意性はorder_numberのユニークインデックスで担保
type ULIDOrderNumbers struct{}

func (ULIDOrderNumbers) Next(now time.Time) string {
	return orderNumberPrefix + ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()).String()
}
