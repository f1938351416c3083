package godeck

import "math"

// Slide geometry is stored in EMU: 914400 per inch, 12700 per point.
const (
	emuPerInch  = 914400
	emuPerPoint = 12700
	emuLimit    = math.MaxInt64 / 2
)

// Inch returns n inches in EMU, rounded so 10.83in survives a round trip.
func Inch(n float64) int64 { return toEMU(n * emuPerInch) }

// Point returns n points in EMU.
func Point(n float64) int64 { return toEMU(n * emuPerPoint) }

// EMUToInch is the inverse of Inch.
func EMUToInch(emu int64) float64 { return float64(emu) / emuPerInch }

func toEMU(v float64) int64 {
	v = math.Round(v)
	return int64(math.Max(-emuLimit, math.Min(emuLimit, v)))
}
