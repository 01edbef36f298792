package strategy

// Caps applied before a total is looked up
const (
	maxHardTotal = 21
	maxSoftTotal = 20
)

type memoKey struct {
	situation Situation
	dealer    int
}

// Table answers basic-strategy questions against a Chart, memoizing each
// answer. A Table belongs to a single engine and is not safe for
// concurrent use.
type Table struct {
	chart *Chart
	memo  map[memoKey]Decision
}

// NewTable creates a lookup table over chart
func NewTable(chart *Chart) *Table {
	return &Table{
		chart: chart,
		memo:  make(map[memoKey]Decision),
	}
}

// Chart returns the underlying chart
func (t *Table) Chart() *Chart {
	return t.chart
}

// Decide returns the play for situation s against a dealer upcard worth
// dealerValue (11 for an ace). A missing pair cell means Hit; a missing
// hard or soft cell means Stand.
func (t *Table) Decide(s Situation, dealerValue int) Decision {
	switch s.Kind {
	case HardTotal:
		s.Key = min(s.Key, maxHardTotal)
	case SoftTotal:
		s.Key = min(s.Key, maxSoftTotal)
	}

	key := memoKey{situation: s, dealer: dealerValue}
	if d, ok := t.memo[key]; ok {
		return d
	}

	var (
		d  Decision
		ok bool
	)
	switch s.Kind {
	case PairRank:
		if d, ok = t.chart.Pairs.Get(s.Key, dealerValue); !ok {
			d = Hit
		}
	case SoftTotal:
		if d, ok = t.chart.Soft.Get(s.Key, dealerValue); !ok {
			d = Stand
		}
	default:
		if d, ok = t.chart.Hard.Get(s.Key, dealerValue); !ok {
			d = Stand
		}
	}

	t.memo[key] = d
	return d
}

// Memoized returns the number of cached answers
func (t *Table) Memoized() int {
	return len(t.memo)
}
