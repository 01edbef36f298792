package main

import (
	"fmt"
	"io"
	"os"

	"github.com/lox/blackjackforbots/internal/display"
	"github.com/lox/blackjackforbots/internal/strategy"
)

// StrategyCmd prints the basic strategy chart in use
type StrategyCmd struct {
	Grid    string `enum:"all,hard,soft,pairs" default:"all" help:"Grid to print (all, hard, soft, pairs)"`
	NoColor bool   `help:"Disable colored output"`
}

func (c *StrategyCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	chart, err := cfg.LoadChart()
	if err != nil {
		return err
	}
	printChart(os.Stdout, display.New(os.Stdout, !c.NoColor), chart, c.Grid)
	return nil
}

func printChart(w io.Writer, d *display.Display, chart *strategy.Chart, which string) {
	for _, grid := range []*strategy.Grid{chart.Hard, chart.Soft, chart.Pairs} {
		if which == "all" || which == grid.Name() {
			fmt.Fprintln(w, d.Grid(grid))
		}
	}
	fmt.Fprintln(w, d.Styles.Info.Render("S stand  H hit  D double  SP split  · not charted"))
}
