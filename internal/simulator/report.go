package simulator

import (
	"fmt"
	"io"
	"os"

	"github.com/lox/blackjackforbots/internal/fileutil"
	"github.com/lox/blackjackforbots/internal/statistics"
)

// Bucket is one row of a per-bet or per-count breakdown
type Bucket struct {
	Key     int     `json:"key"`
	Rounds  int     `json:"rounds"`
	Mean    float64 `json:"mean"`
	Wagered int     `json:"wagered"`
}

// Summary is the machine-readable form of a simulation result
type Summary struct {
	Policy         string     `json:"policy"`
	Seed           int64      `json:"seed"`
	Decks          int        `json:"decks"`
	Workers        int        `json:"workers"`
	Rounds         int        `json:"rounds"`
	DurationMillis int64      `json:"durationMillis"`
	Mean           float64    `json:"mean"`
	Median         float64    `json:"median"`
	StdDev         float64    `json:"stdDev"`
	StdError       float64    `json:"stdError"`
	CI95           [2]float64 `json:"ci95"`
	EdgePerUnit    float64    `json:"edgePerUnit"`
	Wagered        int        `json:"wagered"`
	Wins           int        `json:"wins"`
	Losses         int        `json:"losses"`
	Pushes         int        `json:"pushes"`
	PlayerNaturals int        `json:"playerNaturals"`
	DealerNaturals int        `json:"dealerNaturals"`
	DealerBusts    int        `json:"dealerBusts"`
	PlayerBusts    int        `json:"playerBusts"`
	Charlies       int        `json:"charlies"`
	Splits         int        `json:"splits"`
	Doubles        int        `json:"doubles"`
	Reshuffles     int        `json:"reshuffles"`
	BetLevels      []Bucket   `json:"betLevels"`
	CountBuckets   []Bucket   `json:"countBuckets"`
}

// NewSummary builds a Summary from a result
func NewSummary(res *Result) Summary {
	stats := res.Stats
	low, high := stats.ConfidenceInterval95()
	return Summary{
		Policy:         res.Policy,
		Seed:           res.Seed,
		Decks:          res.Decks,
		Workers:        res.Workers,
		Rounds:         stats.Rounds,
		DurationMillis: res.Duration.Milliseconds(),
		Mean:           stats.Mean(),
		Median:         stats.Median(),
		StdDev:         stats.StdDev(),
		StdError:       stats.StdError(),
		CI95:           [2]float64{low, high},
		EdgePerUnit:    stats.EdgePerUnit(),
		Wagered:        stats.Wagered,
		Wins:           stats.Wins,
		Losses:         stats.Losses,
		Pushes:         stats.Pushes,
		PlayerNaturals: stats.PlayerNaturals,
		DealerNaturals: stats.DealerNaturals,
		DealerBusts:    stats.DealerBusts,
		PlayerBusts:    stats.PlayerBusts,
		Charlies:       stats.Charlies,
		Splits:         stats.Splits,
		Doubles:        stats.Doubles,
		Reshuffles:     stats.Reshuffles,
		BetLevels:      buckets(stats.BetLevels),
		CountBuckets:   buckets(stats.CountBuckets),
	}
}

func buckets(m map[int]*statistics.BucketStats) []Bucket {
	out := make([]Bucket, 0, len(m))
	for _, k := range statistics.SortedKeys(m) {
		b := m[k]
		out = append(out, Bucket{Key: k, Rounds: b.Rounds, Mean: b.Mean(), Wagered: b.Wagered})
	}
	return out
}

// WriteReport writes the summary of res to path as JSON
func WriteReport(path string, res *Result) error {
	return fileutil.WriteJSONAtomic(path, NewSummary(res), 0644)
}

// PrintSummary prints a comprehensive summary of simulation results
func PrintSummary(w io.Writer, res *Result) {
	if w == nil {
		w = os.Stdout
	}
	stats := res.Stats
	low, high := stats.ConfidenceInterval95()

	fmt.Fprintf(w, "\n=== FINAL RESULTS (%s betting) ===\n", res.Policy)
	fmt.Fprintf(w, "Rounds played: %d (%d workers, %d decks, seed %d)\n",
		stats.Rounds, res.Workers, res.Decks, res.Seed)
	if res.Duration > 0 {
		fmt.Fprintf(w, "Duration: %s (%.0f rounds/sec)\n",
			res.Duration.Round(1e6), float64(stats.Rounds)/res.Duration.Seconds())
	}

	fmt.Fprintf(w, "\n=== STATISTICAL RESULTS ===\n")
	fmt.Fprintf(w, "Mean: %.4f units/round\n", stats.Mean())
	fmt.Fprintf(w, "Median: %.4f units/round\n", stats.Median())
	fmt.Fprintf(w, "Std Dev: %.4f units\n", stats.StdDev())
	fmt.Fprintf(w, "Std Error: %.4f units\n", stats.StdError())
	fmt.Fprintf(w, "95%% CI: [%.4f, %.4f] units/round\n", low, high)
	fmt.Fprintf(w, "Edge: %.3f%% of units wagered (%d wagered)\n", stats.EdgePerUnit()*100, stats.Wagered)

	fmt.Fprintf(w, "\n=== ROUND OUTCOMES ===\n")
	fmt.Fprintf(w, "Wins: %d (%.1f%%), Losses: %d (%.1f%%), Pushes: %d (%.1f%%)\n",
		stats.Wins, pct(stats.Wins, stats.Rounds),
		stats.Losses, pct(stats.Losses, stats.Rounds),
		stats.Pushes, pct(stats.Pushes, stats.Rounds))
	fmt.Fprintf(w, "Naturals: player %d, dealer %d\n", stats.PlayerNaturals, stats.DealerNaturals)
	fmt.Fprintf(w, "Busts: player hands %d, dealer %d\n", stats.PlayerBusts, stats.DealerBusts)
	fmt.Fprintf(w, "Splits: %d, Doubles: %d, Charlies: %d, Reshuffles: %d\n",
		stats.Splits, stats.Doubles, stats.Charlies, stats.Reshuffles)

	if len(stats.BetLevels) > 1 {
		fmt.Fprintf(w, "\n=== BET SIZE ANALYSIS ===\n")
		for _, k := range statistics.SortedKeys(stats.BetLevels) {
			b := stats.BetLevels[k]
			fmt.Fprintf(w, "Bet %2d: %d rounds, %.3f units/round\n", k, b.Rounds, b.Mean())
		}
	}

	fmt.Fprintf(w, "\n=== TRUE COUNT ANALYSIS ===\n")
	for _, k := range statistics.SortedKeys(stats.CountBuckets) {
		b := stats.CountBuckets[k]
		fmt.Fprintf(w, "TC %+3d: %d rounds, %.3f units/round\n", k, b.Rounds, b.Mean())
	}
}

func pct(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}
