package booking

import (
	"math"
	"time"
)

const day = 24 * time.Hour

// Nights counts started days between check-in and check-out; zero for an empty or inverted range.
func Nights(checkIn, checkOut time.Time) int {
	d := checkOut.Sub(checkIn)
	if d <= 0 {
		return 0
	}
	n := int(d / day)
	if d%day != 0 {
		n++
	}
	return n
}

// ComputeTotal is nightlyRate × nights, rounded to cents
func ComputeTotal(nightlyRate float64, checkIn, checkOut time.Time) float64 {
	return roundCents(nightlyRate * float64(Nights(checkIn, checkOut)))
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
