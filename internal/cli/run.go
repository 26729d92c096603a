// Copyright 2025 Nguyen Nhat Nguyen
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/sul-dlss/dor-services-client-sub000/internal/logger"
	"github.com/sul-dlss/dor-services-client-sub000/internal/natsconn"
	"github.com/sul-dlss/dor-services-client-sub000/sdk/client"
	"github.com/sul-dlss/dor-services-client-sub000/sdk/config"
)

const shutdownTimeout = 5 * time.Second

type Options struct {
	NATSURL       string
	SubjectPrefix string
	Args          []string
	Stdout        io.Writer
}

// Run loads configuration from the environment, connects to NATS and runs
// one command.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if opts.NATSURL != "" {
		cfg.NATS.URL = opts.NATSURL
	}
	if opts.SubjectPrefix != "" {
		cfg.NATS.SubjectPrefix = opts.SubjectPrefix
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}

	log, err := logger.NewLogger(ctx, logger.OptionsFromConfig(cfg))
	if err != nil {
		return err
	}
	slog.SetDefault(log.Slogger)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := log.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shut down logger provider", "error", err)
		}
	}()

	conn, err := natsconn.Connect(cfg, log.Slogger)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := conn.Close(shutdownCtx); err != nil {
			slog.Warn("failed to drain NATS connection", "error", err)
		}
	}()
	if !conn.IsConnected() {
		return fmt.Errorf("cannot connect to NATS instance")
	}

	inv, err := client.NewNATSInvoker(conn.NATS(),
		client.WithSubjectPrefix(cfg.NATS.SubjectPrefix),
		client.WithRequestTimeout(cfg.Timeouts.RequestTimeout),
		client.WithNATSLogger(log.Slogger),
	)
	if err != nil {
		return err
	}
	c, err := client.NewClient(&client.Options{
		Invoker: inv,
		Logger:  log.Slogger,
		Poll:    cfg.Poll.Jobs(),
	})
	if err != nil {
		return err
	}

	return Dispatch(ctx, c, opts.Args, opts.Stdout)
}
