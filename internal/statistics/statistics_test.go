package statistics

import (
	"math"
	"testing"
)

func TestStatistics_Empty(t *testing.T) {
	stats := &Statistics{}

	if stats.Mean() != 0 {
		t.Errorf("Expected mean of 0 for empty stats, got %f", stats.Mean())
	}
	if stats.Variance() != 0 {
		t.Errorf("Expected variance of 0 for empty stats, got %f", stats.Variance())
	}
	if stats.StdError() != 0 {
		t.Errorf("Expected stderr of 0 for empty stats, got %f", stats.StdError())
	}
	if stats.Median() != 0 {
		t.Errorf("Expected median of 0 for empty stats, got %f", stats.Median())
	}
	if stats.EdgePerUnit() != 0 {
		t.Errorf("Expected edge of 0 for empty stats, got %f", stats.EdgePerUnit())
	}
	if stats.BetMean(1) != 0 {
		t.Errorf("Expected bet mean of 0 for empty stats, got %f", stats.BetMean(1))
	}
	if err := stats.Validate(); err == nil {
		t.Error("Expected validation error for empty stats")
	}
}

func TestStatistics_SingleRound(t *testing.T) {
	stats := &Statistics{}
	stats.Add(RoundResult{
		Reward:        7.5,
		Bet:           5,
		Wagered:       5,
		TrueCount:     2.4,
		Hands:         1,
		PlayerNatural: true,
	})

	if stats.Rounds != 1 {
		t.Errorf("Expected 1 round, got %d", stats.Rounds)
	}
	if stats.Mean() != 7.5 {
		t.Errorf("Expected mean of 7.5, got %f", stats.Mean())
	}
	if stats.Wins != 1 || stats.Losses != 0 || stats.Pushes != 0 {
		t.Errorf("Expected one win, got %d/%d/%d", stats.Wins, stats.Losses, stats.Pushes)
	}
	if stats.PlayerNaturals != 1 {
		t.Errorf("Expected 1 natural, got %d", stats.PlayerNaturals)
	}
	if stats.BetMean(5) != 7.5 {
		t.Errorf("Expected bet-5 mean of 7.5, got %f", stats.BetMean(5))
	}
	if stats.CountMean(2) != 7.5 {
		t.Errorf("Expected count bucket 2 mean of 7.5, got %f", stats.CountMean(2))
	}
	if math.Abs(stats.EdgePerUnit()-1.5) > 1e-9 {
		t.Errorf("Expected edge of 1.5, got %f", stats.EdgePerUnit())
	}
	if err := stats.Validate(); err != nil {
		t.Errorf("Unexpected validation error: %v", err)
	}
}

func TestStatistics_MultipleRounds(t *testing.T) {
	stats := &Statistics{}

	results := []RoundResult{
		{Reward: 1, Bet: 1, Wagered: 1, TrueCount: 0.5},
		{Reward: -2, Bet: 1, Wagered: 2, TrueCount: -1.2, Doubles: 1},
		{Reward: 3, Bet: 1, Wagered: 3, TrueCount: 1.0, Splits: 2, Hands: 3},
		{Reward: 0, Bet: 2, Wagered: 2, TrueCount: 0},
		{Reward: -2, Bet: 2, Wagered: 2, TrueCount: 14, PlayerBusts: 1, DealerNatural: true},
	}
	for _, r := range results {
		stats.Add(r)
	}

	expectedMean := (1.0 - 2.0 + 3.0 + 0.0 - 2.0) / 5.0
	if math.Abs(stats.Mean()-expectedMean) > 1e-9 {
		t.Errorf("Expected mean of %f, got %f", expectedMean, stats.Mean())
	}
	if stats.Median() != 0 {
		t.Errorf("Expected median of 0, got %f", stats.Median())
	}
	if stats.Wins != 2 || stats.Losses != 2 || stats.Pushes != 1 {
		t.Errorf("Expected 2/2/1 outcomes, got %d/%d/%d", stats.Wins, stats.Losses, stats.Pushes)
	}
	if stats.Splits != 2 || stats.Doubles != 1 || stats.PlayerBusts != 1 || stats.DealerNaturals != 1 {
		t.Errorf("Unexpected event counters: %+v", stats)
	}
	if stats.Wagered != 10 {
		t.Errorf("Expected 10 units wagered, got %d", stats.Wagered)
	}
	if stats.BetLevels[1].Rounds != 3 || stats.BetLevels[2].Rounds != 2 {
		t.Errorf("Unexpected bet level split")
	}
	if math.Abs(stats.BetMean(2)-(-1.0)) > 1e-9 {
		t.Errorf("Expected bet-2 mean of -1, got %f", stats.BetMean(2))
	}
	if stats.CountBuckets[MaxCountBucket] == nil || stats.CountBuckets[MaxCountBucket].Rounds != 1 {
		t.Errorf("Expected true count 14 in the top bucket")
	}
	if stats.CountBuckets[-2] == nil {
		t.Errorf("Expected true count -1.2 in bucket -2")
	}
	if !stats.IsLedgerBalanced() {
		t.Error("Expected ledger to be balanced")
	}
	if err := stats.Validate(); err != nil {
		t.Errorf("Unexpected validation error: %v", err)
	}
}

func TestStatistics_Percentiles(t *testing.T) {
	stats := &Statistics{}
	for i := 1; i <= 5; i++ {
		stats.Add(RoundResult{Reward: float64(i), Bet: 1, Wagered: 1})
	}

	tests := []struct {
		percentile float64
		expected   float64
	}{
		{0.0, 1.0},
		{0.25, 2.0},
		{0.5, 3.0},
		{0.75, 4.0},
		{1.0, 5.0},
	}

	for _, test := range tests {
		result := stats.Percentile(test.percentile)
		if math.Abs(result-test.expected) > 1e-9 {
			t.Errorf("Percentile %.2f: expected %f, got %f", test.percentile, test.expected, result)
		}
	}
}

func TestStatistics_ConfidenceInterval(t *testing.T) {
	stats := &Statistics{}
	for _, v := range []float64{1, 2, 3, 4, 5} {
		stats.Add(RoundResult{Reward: v, Bet: 1, Wagered: 1})
	}

	low, high := stats.ConfidenceInterval95()
	mean := stats.Mean()

	if math.Abs((low+high)/2-mean) > 1e-9 {
		t.Errorf("Confidence interval not symmetric around mean. Low: %f, High: %f, Mean: %f", low, high, mean)
	}
	if high-low <= 0 {
		t.Errorf("Confidence interval should be positive width, got %f", high-low)
	}
}

func TestStatistics_Merge(t *testing.T) {
	a := &Statistics{}
	b := &Statistics{}
	combined := &Statistics{}

	for i, r := range []RoundResult{
		{Reward: 1, Bet: 1, Wagered: 1, TrueCount: 1},
		{Reward: -1, Bet: 3, Wagered: 3, TrueCount: -3, Reshuffled: true},
		{Reward: 2, Bet: 1, Wagered: 2, TrueCount: 0, Doubles: 1},
		{Reward: 0, Bet: 2, Wagered: 2, Charlies: 1},
	} {
		if i%2 == 0 {
			a.Add(r)
		} else {
			b.Add(r)
		}
		combined.Add(r)
	}

	a.Merge(b)

	if a.Rounds != combined.Rounds || a.SumReward != combined.SumReward || a.Wagered != combined.Wagered {
		t.Errorf("Merged totals differ: %+v vs %+v", a, combined)
	}
	if a.Reshuffles != 1 || a.Charlies != 1 || a.Doubles != 1 {
		t.Errorf("Merged counters differ")
	}
	for _, k := range SortedKeys(combined.BetLevels) {
		if *a.BetLevels[k] != *combined.BetLevels[k] {
			t.Errorf("Bet level %d differs after merge", k)
		}
	}
	if a.Median() != combined.Median() {
		t.Errorf("Expected merged median %f, got %f", combined.Median(), a.Median())
	}
	if err := a.Validate(); err != nil {
		t.Errorf("Unexpected validation error: %v", err)
	}
}

func TestCountBucket(t *testing.T) {
	tests := []struct {
		trueCount float64
		bucket    int
	}{
		{0, 0},
		{0.99, 0},
		{-0.01, -1},
		{3.5, 3},
		{-25, MinCountBucket},
		{99, MaxCountBucket},
	}
	for _, tt := range tests {
		if got := CountBucket(tt.trueCount); got != tt.bucket {
			t.Errorf("CountBucket(%f) = %d, want %d", tt.trueCount, got, tt.bucket)
		}
	}
}

func TestSortedKeys(t *testing.T) {
	m := map[int]*BucketStats{3: {}, -1: {}, 10: {}}
	keys := SortedKeys(m)
	want := []int{-1, 3, 10}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("SortedKeys() = %v, want %v", keys, want)
		}
	}
}
