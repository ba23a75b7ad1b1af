package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/fitquest/internal/flagx"
)

var clientFlags = []string{"-a", "-i", "-t"}

// parseFlags populates Config fields from command-line flags. Unknown flags
// are filtered out first so -c/-config does not trip the parser.
func parseFlags(cfg *Config, args []string) {
	fs := flag.NewFlagSet("fitquest-client", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the API server")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(flagx.FilterArgs(args, clientFlags)); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}
