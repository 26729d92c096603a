package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/sul-dlss/dor-services-client-sub000/internal/cli"
)

func main() {
	var (
		natsURL = flag.String("nats", "", "NATS server URL (overrides NATS_URL)")
		prefix  = flag.String("subject-prefix", "", "request subject prefix (overrides NATS_SUBJECT_PREFIX)")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <command> [args]\n\n%s\nflags:\n", os.Args[0], cli.Usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.Run(ctx, cli.Options{
		NATSURL:       *natsURL,
		SubjectPrefix: *prefix,
		Args:          flag.Args(),
		Stdout:        os.Stdout,
	}); err != nil {
		slog.Error("dsc exited with error", "error", err)
		os.Exit(1)
	}
}
