package engine

// Selection thresholds in mg/dL.
const (
	scEscalateAbove   = 350.0 // sc patients with two readings above this go on the drip
	scEscalateCount   = 2
	ivControlledLow   = 150.0
	ivControlledHigh  = 180.0
	ivControlledSlots = 4 // GRBS1..GRBS4
)

// SelectAlgorithm chooses the protocol for a request. Rules are evaluated in
// order and the first match wins:
//
//  1. dual inotropes, or an sc request with two or more readings above 350 → IV infusion;
//  2. an iv request whose GRBS1..GRBS4 are not all present and within 150–180 → IV infusion;
//  3. otherwise Basal Bolus.
func SelectAlgorithm(readings ReadingWindow, flags Flags, route Route) Algorithm {
	if flags.DualInotropes {
		return IVInfusion
	}
	switch route {
	case RouteSC:
		if readings.countAbove(scEscalateAbove) >= scEscalateCount {
			return IVInfusion
		}
	case RouteIV:
		if !readings.allWithin(ivControlledSlots, ivControlledLow, ivControlledHigh) {
			return IVInfusion
		}
	}
	return BasalBolus
}
