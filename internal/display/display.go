// Package display renders cards, rounds and strategy grids for the terminal.
package display

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/blackjackforbots/internal/blackjack"
	"github.com/lox/blackjackforbots/internal/deck"
	"github.com/lox/blackjackforbots/internal/strategy"
	"github.com/muesli/termenv"
)

// Display formats output for one writer
type Display struct {
	r      *lipgloss.Renderer
	Styles Styles
}

// New creates a display for w. With color false all styling is plain text.
func New(w io.Writer, color bool) *Display {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Display{r: r, Styles: newStyles(r)}
}

// Card renders a single card, red or black by suit
func (d *Display) Card(c deck.Card) string {
	if c.IsRed() {
		return d.Styles.RedCard.Render(c.String())
	}
	return d.Styles.BlackCard.Render(c.String())
}

// Cards renders cards as "[A♠ 10♥]"
func (d *Display) Cards(cards []deck.Card) string {
	if len(cards) == 0 {
		return ""
	}
	formatted := make([]string, len(cards))
	for i, c := range cards {
		formatted[i] = d.Card(c)
	}
	return "[" + strings.Join(formatted, " ") + "]"
}

// Hand renders a hand with its total and flags
func (d *Display) Hand(h *blackjack.Hand) string {
	var flags []string
	switch {
	case h.IsNatural():
		flags = append(flags, "blackjack")
	case h.IsBusted():
		flags = append(flags, "bust")
	case h.IsSixCardCharlie():
		flags = append(flags, "charlie")
	case h.IsSoft():
		flags = append(flags, "soft")
	}
	if h.Doubled {
		flags = append(flags, "doubled")
	}
	if h.Split {
		flags = append(flags, "split")
	}

	info := strconv.Itoa(h.Total())
	if len(flags) > 0 {
		info += " " + strings.Join(flags, ", ")
	}
	return d.Cards(h.Cards()) + " " + d.Styles.HandInfo.Render("("+info+")")
}

// Reward renders a signed result in units
func (d *Display) Reward(v float64) string {
	s := fmt.Sprintf("%+.1f", v)
	switch {
	case v > 0:
		return d.Styles.Win.Render(s)
	case v < 0:
		return d.Styles.Loss.Render(s)
	default:
		return d.Styles.Push.Render(s)
	}
}

// Round renders a finished round: each player hand with its payout, the
// dealer, and the total reward
func (d *Display) Round(n int, result blackjack.StepResult) string {
	o := result.Outcome
	var sb strings.Builder

	header := fmt.Sprintf(" Round %d  bet %d  TC %+.2f ", n, o.Bet, o.TrueCount)
	if o.Reshuffled {
		header += " reshuffled "
	}
	sb.WriteString(d.Styles.Header.Render(header))
	sb.WriteString("\n")

	for i, h := range o.Hands {
		fmt.Fprintf(&sb, "  Player %d: %s  %s\n", i+1, d.Hand(h.Hand), d.Reward(h.Payout))
	}
	fmt.Fprintf(&sb, "  Dealer:   %s\n", d.Hand(o.Dealer.Hand))
	fmt.Fprintf(&sb, "  Result:   %s  %s\n", d.Reward(result.Reward),
		d.Styles.Info.Render(fmt.Sprintf("next TC %+.2f, shoe %.0f%%", result.Observation.TrueCount, result.Observation.ShoeRemaining*100)))
	return sb.String()
}

// Grid renders one strategy grid with dealer upcards across the top
func (d *Display) Grid(g *strategy.Grid) string {
	var sb strings.Builder
	sb.WriteString(d.Styles.Header.Render(fmt.Sprintf(" %s ", g.Name())))
	sb.WriteString("\n     ")
	for _, dealer := range g.Dealers() {
		sb.WriteString(d.Styles.Info.Width(3).Align(lipgloss.Center).Render(valueLabel(dealer)))
	}
	sb.WriteString("\n")

	pairs := g.Name() == "pairs"
	for _, row := range g.Rows() {
		label := strconv.Itoa(row)
		if pairs {
			label = valueLabel(row) + "," + valueLabel(row)
		}
		fmt.Fprintf(&sb, "%5s", label)
		for _, dealer := range g.Dealers() {
			dec, ok := g.Get(row, dealer)
			sb.WriteString(d.decision(dec, ok))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (d *Display) decision(dec strategy.Decision, ok bool) string {
	if !ok {
		return d.Styles.Empty.Render("·")
	}
	switch dec {
	case strategy.Hit:
		return d.Styles.Hit.Render(dec.String())
	case strategy.Double:
		return d.Styles.Double.Render(dec.String())
	case strategy.Split:
		return d.Styles.Split.Render(dec.String())
	default:
		return d.Styles.Stand.Render(dec.String())
	}
}

func valueLabel(v int) string {
	if v == 11 {
		return "A"
	}
	return strconv.Itoa(v)
}
