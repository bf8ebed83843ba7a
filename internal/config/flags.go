package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/gophchat/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   storage directory (default from Config)
//	-i int      poll interval in seconds (default from Config)
//	-l string   log backend: slog or zap
//	-dev        development logging
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-i", "-l", "-dev"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.StorageDir, "d", cfg.StorageDir, "storage directory")
	pollInterval := fs.Int("i", int(cfg.PollInterval.Seconds()), "poll interval (in seconds)")
	logBackend := fs.String("l", string(cfg.LogBackend), "log backend (slog or zap)")
	fs.BoolVar(&cfg.Development, "dev", cfg.Development, "development logging")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.PollInterval = time.Duration(*pollInterval) * time.Second
	cfg.LogBackend = LogBackend(*logBackend)
}
