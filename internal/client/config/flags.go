package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/tuktask/internal/flagx"
)

// FlagsWithValues lists the flags that consume the following argument, so
// callers can tell flag values from subcommands.
var FlagsWithValues = []string{"-a", "-t", "-c", "-config", "--config"}

// parseFlags populates selected Config fields from command-line flags.
// Only -a and -t are considered; everything else is left to other parsers.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-t"})

	fs := flag.NewFlagSet("tuktask", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the TukTask API")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
	return nil
}
