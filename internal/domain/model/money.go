package model

import "math"

// 1明細あたりの数量上限
const MaxItemQuantity int64 = 10000

// 単価×数量。負の値かint64を超える場合はfalse
func LineAmount(price, qty int64) (int64, bool) {
	if price < 0 || qty < 0 {
		return 0, false
	}
	if price != 0 && qty > math.MaxInt64/price {
		return 0, false
	}
	return price * qty, true
}

// 金額の加算。int64を超える場合はfalse
func AddAmount(a, b int64) (int64, bool) {
	if b > 0 && a > math.MaxInt64-b {
		return 0, false
	}
	if b < 0 && a < math.MinInt64-b {
		return 0, false
	}
	return a + b, true
}
