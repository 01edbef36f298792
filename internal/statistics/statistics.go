package statistics

import (
	"fmt"
	"math"
	"sort"
)

// Range of true-count buckets; counts beyond it land in the end buckets
const (
	MinCountBucket = -10
	MaxCountBucket = 10
)

// RoundResult represents the outcome of a single blackjack round
type RoundResult struct {
	Reward        float64 // Net units won/lost
	Bet           int     // Units bet on the round (action + 1)
	Wagered       int     // Units staked across all hands, counting doubles and splits
	TrueCount     float64 // True count the bet was placed on
	Hands         int     // Player hands after splitting
	Splits        int
	Doubles       int
	PlayerNatural bool
	DealerNatural bool
	DealerBust    bool
	PlayerBusts   int // Player hands that busted
	Charlies      int // Six-card Charlie hands
	Reshuffled    bool
}

// BucketStats tracks results for one bet size or true-count bucket
type BucketStats struct {
	Rounds     int
	SumReward  float64
	SumReward2 float64
	Wagered    int
}

// Mean returns the mean reward per round in the bucket
func (b *BucketStats) Mean() float64 {
	if b == nil || b.Rounds == 0 {
		return 0
	}
	return b.SumReward / float64(b.Rounds)
}

func (b *BucketStats) add(reward float64, wagered int) {
	b.Rounds++
	b.SumReward += reward
	b.SumReward2 += reward * reward
	b.Wagered += wagered
}

func (b *BucketStats) merge(other *BucketStats) {
	b.Rounds += other.Rounds
	b.SumReward += other.SumReward
	b.SumReward2 += other.SumReward2
	b.Wagered += other.Wagered
}

// Statistics tracks blackjack simulation statistics
type Statistics struct {
	Rounds     int
	SumReward  float64
	SumReward2 float64   // Sum of squares for variance calculation
	Values     []float64 // Store all values for median/percentile calculation
	Wagered    int       // Total units staked

	// Round outcomes by sign of the reward
	Wins   int
	Losses int
	Pushes int

	// Rule events
	PlayerNaturals int
	DealerNaturals int
	DealerBusts    int
	PlayerBusts    int
	Charlies       int
	Splits         int
	Doubles        int
	Reshuffles     int

	BetLevels    map[int]*BucketStats // keyed by units bet
	CountBuckets map[int]*BucketStats // keyed by CountBucket(true count)
}

// CountBucket returns the bucket a true count falls in: its floor, clamped
// to [MinCountBucket, MaxCountBucket].
func CountBucket(trueCount float64) int {
	b := int(math.Floor(trueCount))
	return max(MinCountBucket, min(MaxCountBucket, b))
}

// Mean returns the arithmetic mean of all results in units per round
func (s *Statistics) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.SumReward / float64(s.Rounds)
}

// Variance returns the sample variance of all results
func (s *Statistics) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumReward2 - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

// StdDev returns the sample standard deviation of all results
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(max(0, s.Variance()))
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// EdgePerUnit returns the net result per unit staked
func (s *Statistics) EdgePerUnit() float64 {
	if s.Wagered == 0 {
		return 0
	}
	return s.SumReward / float64(s.Wagered)
}

// Add incorporates a new round result into the statistics
func (s *Statistics) Add(result RoundResult) {
	reward := result.Reward
	s.Rounds++
	s.SumReward += reward
	s.SumReward2 += reward * reward
	s.Values = append(s.Values, reward)
	s.Wagered += result.Wagered

	switch {
	case reward > 0:
		s.Wins++
	case reward < 0:
		s.Losses++
	default:
		s.Pushes++
	}

	if result.PlayerNatural {
		s.PlayerNaturals++
	}
	if result.DealerNatural {
		s.DealerNaturals++
	}
	if result.DealerBust {
		s.DealerBusts++
	}
	if result.Reshuffled {
		s.Reshuffles++
	}
	s.PlayerBusts += result.PlayerBusts
	s.Charlies += result.Charlies
	s.Splits += result.Splits
	s.Doubles += result.Doubles

	s.bucket(&s.BetLevels, result.Bet).add(reward, result.Wagered)
	s.bucket(&s.CountBuckets, CountBucket(result.TrueCount)).add(reward, result.Wagered)
}

func (s *Statistics) bucket(m *map[int]*BucketStats, key int) *BucketStats {
	if *m == nil {
		*m = make(map[int]*BucketStats)
	}
	b, ok := (*m)[key]
	if !ok {
		b = &BucketStats{}
		(*m)[key] = b
	}
	return b
}

// Merge folds other into s. Used to combine per-worker statistics.
func (s *Statistics) Merge(other *Statistics) {
	s.Rounds += other.Rounds
	s.SumReward += other.SumReward
	s.SumReward2 += other.SumReward2
	s.Values = append(s.Values, other.Values...)
	s.Wagered += other.Wagered
	s.Wins += other.Wins
	s.Losses += other.Losses
	s.Pushes += other.Pushes
	s.PlayerNaturals += other.PlayerNaturals
	s.DealerNaturals += other.DealerNaturals
	s.DealerBusts += other.DealerBusts
	s.PlayerBusts += other.PlayerBusts
	s.Charlies += other.Charlies
	s.Splits += other.Splits
	s.Doubles += other.Doubles
	s.Reshuffles += other.Reshuffles

	for k, b := range other.BetLevels {
		s.bucket(&s.BetLevels, k).merge(b)
	}
	for k, b := range other.CountBuckets {
		s.bucket(&s.CountBuckets, k).merge(b)
	}
}

// Median returns the median value of all results
func (s *Statistics) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// BetMean returns the mean result for rounds bet at the given units
func (s *Statistics) BetMean(units int) float64 {
	return s.BetLevels[units].Mean()
}

// CountMean returns the mean result for rounds in a true-count bucket
func (s *Statistics) CountMean(bucket int) float64 {
	return s.CountBuckets[bucket].Mean()
}

// SortedKeys returns the keys of a bucket map in ascending order
func SortedKeys(m map[int]*BucketStats) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// IsLedgerBalanced checks if the accounting is consistent
func (s *Statistics) IsLedgerBalanced() bool {
	var betSum, countSum float64
	for _, b := range s.BetLevels {
		betSum += b.SumReward
	}
	for _, b := range s.CountBuckets {
		countSum += b.SumReward
	}
	return math.Abs(s.SumReward-betSum) <= 1e-6 && math.Abs(s.SumReward-countSum) <= 1e-6
}

// Validate performs comprehensive validation of statistics data
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: total reward %.6f does not match bucket totals", s.SumReward)
	}

	if s.Rounds <= 0 {
		return fmt.Errorf("invalid rounds count: %d", s.Rounds)
	}

	if len(s.Values) != s.Rounds {
		return fmt.Errorf("values array length (%d) does not match rounds count (%d)",
			len(s.Values), s.Rounds)
	}

	if outcomes := s.Wins + s.Losses + s.Pushes; outcomes != s.Rounds {
		return fmt.Errorf("wins, losses and pushes (%d) do not match rounds (%d)", outcomes, s.Rounds)
	}

	betRounds := 0
	for _, b := range s.BetLevels {
		betRounds += b.Rounds
	}
	if betRounds != s.Rounds {
		return fmt.Errorf("bet level rounds total (%d) does not match total rounds (%d)",
			betRounds, s.Rounds)
	}

	return nil
}
