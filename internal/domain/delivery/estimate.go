// Package delivery は店舗からの距離で配送日数と配送料を見積もる。
package delivery

import (
	"math"
	"time"
)

// 地球半径（m）
const earthRadiusMeters = 6371000.0

type Point struct {
	Latitude  float64
	Longitude float64
}

// 2点間の大円距離（m）。haversine
func Distance(from, to Point) float64 {
	lat1 := toRad(from.Latitude)
	lat2 := toRad(to.Latitude)
	dLat := toRad(to.Latitude - from.Latitude)
	dLng := toRad(to.Longitude - from.Longitude)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMeters * c
}

// 1kmごとに1日。距離0なら当日
func LeadDays(meters float64) int {
	if meters <= 0 {
		return 0
	}
	days := int(math.Ceil(meters / 1000))
	if days < 1 {
		days = 1
	}
	return days
}

// 配送料 = ceil(km) * perKm
func Charge(meters float64, perKm int64) int64 {
	if meters <= 0 || perKm <= 0 {
		return 0
	}
	return int64(math.Ceil(meters/1000)) * perKm
}

type Estimate struct {
	DistanceMeters float64
	LeadDays       int
	ExpectedAt     time.Time
}

type Estimator struct {
	Origin Point
}

func NewEstimator(lat, lng float64) Estimator {
	return Estimator{Origin: Point{Latitude: lat, Longitude: lng}}
}

func (e Estimator) Estimate(now time.Time, dest Point) Estimate {
	d := Distance(e.Origin, dest)
	days := LeadDays(d)
	return Estimate{
		DistanceMeters: d,
		LeadDays:       days,
		ExpectedAt:     now.AddDate(0, 0, days),
	}
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
