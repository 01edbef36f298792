package blackjack

// ObservationSize is the length of the observation vector
const ObservationSize = 4

// Observation is what a betting policy sees before placing a bet. The field
// order of Vector is fixed: true count, fraction of shoe remaining, dealer
// upcard value, and a reserved slot that is always zero (it once carried
// an insurance offer).
type Observation struct {
	TrueCount     float64 `json:"trueCount"`
	ShoeRemaining float64 `json:"shoeRemaining"`
	DealerUpcard  float64 `json:"dealerUpcard"`
	Reserved      float64 `json:"reserved"`
}

// Vector returns the observation in its fixed wire order
func (o Observation) Vector() [ObservationSize]float64 {
	return [ObservationSize]float64{o.TrueCount, o.ShoeRemaining, o.DealerUpcard, o.Reserved}
}

// Nominal bounds of each observation field, in Vector order. The true
// count is not clipped to its bounds.
var (
	ObservationLow  = [ObservationSize]float64{-10, 0, 2, 0}
	ObservationHigh = [ObservationSize]float64{10, 1, 11, 0}
)
