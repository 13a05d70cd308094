package utils

import (
	"fmt"
	"math"
)

const earthRadiusKM = 6371.0

// HaversineKM returns the great-circle distance in kilometers
func HaversineKM(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	la1 := lat1 * math.Pi / 180
	la2 := lat2 * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(la1)*math.Cos(la2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKM * c
}

// PresentableDistance formats a distance for display: meters below one
// kilometer, otherwise kilometers with one decimal
func PresentableDistance(km float64) string {
	if km <= 0 {
		return "0 m"
	}
	if km < 1 {
		return fmt.Sprintf("%d m", int(math.Round(km*1000)))
	}
	return fmt.Sprintf("%.1f km", km)
}
