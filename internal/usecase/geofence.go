package usecase

import (
	"errors"
	"fmt"
	"math"
)

var ErrKoordinatTidakValid = errors.New("koordinat tidak valid")

// HaversineMeters menghitung jarak dua titik koordinat dengan rumus Haversine
// (dalam meter). Jaraknya simetris dan jarak titik ke dirinya sendiri nol.
func HaversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	const R = 6371000 // Radius bumi dalam meter
	dLat := (lat2 - lat1) * (math.Pi / 180.0)
	dLon := (lon2 - lon1) * (math.Pi / 180.0)

	lat1Rad := lat1 * (math.Pi / 180.0)
	lat2Rad := lat2 * (math.Pi / 180.0)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return R * c
}

// ValidateCoordinate menolak koordinat NaN/Inf atau di luar rentang bumi.
// Koordinat rusak harus ditolak eksplisit, bukan diam-diam jadi invalid.
func ValidateCoordinate(lat, lon float64) error {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lon) || math.IsInf(lon, 0) {
		return fmt.Errorf("%w: bukan angka", ErrKoordinatTidakValid)
	}
	if lat < -90 || lat > 90 {
		return fmt.Errorf("%w: latitude %v di luar [-90, 90]", ErrKoordinatTidakValid, lat)
	}
	if lon < -180 || lon > 180 {
		return fmt.Errorf("%w: longitude %v di luar [-180, 180]", ErrKoordinatTidakValid, lon)
	}
	return nil
}

type GeofenceResult struct {
	DistanceMeters float64
	Valid          bool
}

// CheckGeofence menghitung jarak titik absen ke kantor dan membandingkannya
// dengan radius maksimum. Valid jika jarak <= radius.
func CheckGeofence(lat, lon, officeLat, officeLon, maxMeters float64) (GeofenceResult, error) {
	if err := ValidateCoordinate(lat, lon); err != nil {
		return GeofenceResult{}, err
	}
	if err := ValidateCoordinate(officeLat, officeLon); err != nil {
		return GeofenceResult{}, err
	}
	jarak := HaversineMeters(lat, lon, officeLat, officeLon)
	return GeofenceResult{DistanceMeters: jarak, Valid: jarak <= maxMeters}, nil
}
