package engine

// Monitoring intervals in hours.
const (
	ivHourly      = 1
	ivStable      = 2
	scFasting     = 4
	scFed         = 6
	ivStableLow   = 140.0
	ivStableHigh  = 180.0
	ivStableSlots = 4
)

// NextCheckHours returns the interval until the next glucose check. route is
// the delivery route of the chosen protocol. An iv patient whose GRBS1..GRBS4
// are all present and within 140–180 is checked every second hour.
func NextCheckHours(_ Algorithm, readings ReadingWindow, diet Diet, route Route) int {
	if route == RouteIV {
		if readings.allWithin(ivStableSlots, ivStableLow, ivStableHigh) {
			return ivStable
		}
		return ivHourly
	}
	if diet == DietNPO {
		return scFasting
	}
	return scFed
}
