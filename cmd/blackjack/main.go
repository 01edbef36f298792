package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command
type Globals struct {
	Config   string `short:"c" default:"blackjack.hcl" type:"path" help:"HCL config file (missing file uses defaults)"`
	Debug    bool   `help:"Enable debug logging"`
	LogLevel string `help:"Log level (debug, info, warn, error); overrides the config file"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Simulate SimulateCmd      `cmd:"" help:"Simulate rounds with a built-in betting policy"`
	Serve    ServeCmd         `cmd:"" help:"Serve blackjack environments over WebSocket"`
	Deal     DealCmd          `cmd:"" help:"Deal a few rounds and print them"`
	Strategy StrategyCmd      `cmd:"" help:"Print the basic strategy chart"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("blackjack"),
		kong.Description("Blackjack round engine for bet-sizing agents"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
