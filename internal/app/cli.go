package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/example/ankistats/internal/config"
	"github.com/example/ankistats/internal/logger"
)

// Main parses args, runs one export and returns the process exit status.
// home is used for default and auto-detected database paths.
func Main(ctx context.Context, name string, args []string, home string, stdout, stderr io.Writer) int {
	opts, err := config.ParseFlags(name, args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}
	opts.Home = home

	cfg, err := config.Load(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Configuration error: %v\n", err)
		return 1
	}

	log, err := logger.New(cfg.Log, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Configuration error: %v\n", err)
		return 1
	}
	defer log.Sync()

	err = New(cfg, home, log, stdout).Run(ctx)
	code := ExitCode(err)
	if err != nil {
		log.Error("run failed", zap.String("reason", Describe(err)), zap.Int("exit_code", code))
	}
	return code
}

// UserHome returns the current user's home directory, or "" when unknown
func UserHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}
