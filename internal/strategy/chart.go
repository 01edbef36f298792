package strategy

import (
	"embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
)

//go:embed charts/*.csv
var defaultCharts embed.FS

// ErrMalformedChart is returned when a strategy chart cannot be parsed
var ErrMalformedChart = errors.New("malformed strategy chart")

const (
	totalKeyColumn = "PlayerTotal"
	pairKeyColumn  = "Pair"
)

type cell struct {
	row    int
	dealer int
}

// Grid is one decision grid: rows keyed by player total or pair value,
// columns by dealer upcard value 2-11.
type Grid struct {
	name    string
	rows    []int
	dealers []int
	cells   map[cell]Decision
}

// Get returns the decision at (row, dealer) and whether the cell exists
func (g *Grid) Get(row, dealer int) (Decision, bool) {
	d, ok := g.cells[cell{row, dealer}]
	return d, ok
}

// Name returns the grid name
func (g *Grid) Name() string { return g.name }

// Rows returns the row keys in file order
func (g *Grid) Rows() []int { return slices.Clone(g.rows) }

// Dealers returns the dealer upcard columns in file order
func (g *Grid) Dealers() []int { return slices.Clone(g.dealers) }

// Chart holds the three immutable basic-strategy grids. A Chart is safe to
// share between engines; lookups with memoization go through a Table.
type Chart struct {
	Hard  *Grid
	Soft  *Grid
	Pairs *Grid
}

// LoadChart parses the hard, soft and pair grids from CSV readers
func LoadChart(hard, soft, pairs io.Reader) (*Chart, error) {
	h, err := parseGrid("hard", totalKeyColumn, hard)
	if err != nil {
		return nil, err
	}
	s, err := parseGrid("soft", totalKeyColumn, soft)
	if err != nil {
		return nil, err
	}
	p, err := parseGrid("pairs", pairKeyColumn, pairs)
	if err != nil {
		return nil, err
	}
	return &Chart{Hard: h, Soft: s, Pairs: p}, nil
}

// LoadChartFiles loads the three grids from CSV files
func LoadChartFiles(hardPath, softPath, pairsPath string) (*Chart, error) {
	var readers []io.Reader
	for _, path := range []string{hardPath, softPath, pairsPath} {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open strategy chart: %w", err)
		}
		defer f.Close()
		readers = append(readers, f)
	}
	return LoadChart(readers[0], readers[1], readers[2])
}

// DefaultChart returns the embedded multi-deck basic strategy (dealer
// stands on soft 17, double after split allowed).
func DefaultChart() (*Chart, error) {
	var readers []io.Reader
	for _, name := range []string{"hard_totals.csv", "soft_totals.csv", "pairs.csv"} {
		f, err := defaultCharts.Open("charts/" + name)
		if err != nil {
			return nil, fmt.Errorf("failed to open embedded chart %s: %w", name, err)
		}
		defer f.Close()
		readers = append(readers, f)
	}
	return LoadChart(readers[0], readers[1], readers[2])
}

// MustDefaultChart returns DefaultChart and panics on error (for tests)
func MustDefaultChart() *Chart {
	chart, err := DefaultChart()
	if err != nil {
		panic(fmt.Sprintf("failed to load default chart: %v", err))
	}
	return chart
}

func parseGrid(name, keyColumn string, r io.Reader) (*Grid, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: %s grid: no data", ErrMalformedChart, name)
	}

	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s grid: %v", ErrMalformedChart, name, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%w: %s grid: no rows", ErrMalformedChart, name)
	}

	header := records[0]
	if strings.TrimSpace(header[0]) != keyColumn {
		return nil, fmt.Errorf("%w: %s grid: key column is %q, want %q", ErrMalformedChart, name, header[0], keyColumn)
	}

	g := &Grid{name: name, cells: make(map[cell]Decision)}
	for _, col := range header[1:] {
		dealer, err := parseCardValue(col)
		if err != nil || dealer < 2 || dealer > 11 {
			return nil, fmt.Errorf("%w: %s grid: bad dealer column %q", ErrMalformedChart, name, col)
		}
		g.dealers = append(g.dealers, dealer)
	}

	for i, record := range records[1:] {
		var row int
		if keyColumn == pairKeyColumn {
			row, err = parseCardValue(record[0])
		} else {
			row, err = strconv.Atoi(strings.TrimSpace(record[0]))
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s grid: bad row key %q on line %d", ErrMalformedChart, name, record[0], i+2)
		}
		if slices.Contains(g.rows, row) {
			return nil, fmt.Errorf("%w: %s grid: duplicate row %q", ErrMalformedChart, name, record[0])
		}
		g.rows = append(g.rows, row)

		for j, code := range record[1:] {
			code = strings.TrimSpace(code)
			if code == "" {
				continue // missing cells fall back at lookup time
			}
			d, err := ParseDecision(code)
			if err != nil {
				return nil, fmt.Errorf("%w: %s grid line %d: %v", ErrMalformedChart, name, i+2, err)
			}
			g.cells[cell{row, g.dealers[j]}] = d
		}
	}

	return g, nil
}

// parseCardValue reads a row or column label as a blackjack value. Court
// cards and T collapse to 10, A is 11.
func parseCardValue(s string) (int, error) {
	switch s = strings.ToUpper(strings.TrimSpace(s)); s {
	case "A":
		return 11, nil
	case "T", "J", "Q", "K":
		return 10, nil
	}
	return strconv.Atoi(s)
}
