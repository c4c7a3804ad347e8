package main

import (
	"github.com/alecthomas/kong"
)

const version = "2.0.0"

// globals holds options shared by every command.
type globals struct {
	LogLevel string `name:"log-level" env:"FINANCE_LOG_LEVEL" default:"info" help:"Log level (debug, info, warn, error)."`
	Store    string `env:"FINANCE_STORE" default:"memory:" help:"Where transactions live [memory: jsonfile:/path/file.json sqlite:/path/file.db]."`
}

// cli commands / args available
var cli struct {
	Globals globals `embed:""`

	Version kong.VersionFlag `help:"Print version and exit."`

	Extract extractCmd `cmd:"" help:"Extract candidate transactions from statement PDFs, text dumps or CSV exports."`
	Report  reportCmd  `cmd:"" help:"Generate a report over stored or exported transactions."`
	Serve   serveCmd   `cmd:"" help:"Run the HTTP API."`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("finance"),
		kong.Description("Bank statement extraction and financial reports."),
		kong.Vars{"version": version},
		kong.UsageOnError(),
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
