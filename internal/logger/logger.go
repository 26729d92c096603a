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

package logger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	color "github.com/fatih/color"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/sul-dlss/dor-services-client-sub000/sdk/config"
)

const serviceName = "dor-services-client"

type Logger struct {
	Slogger *slog.Logger
	*sdklog.LoggerProvider
}

// Shutdown flushes the OTel provider, if one was built.
func (l *Logger) Shutdown(ctx context.Context) error {
	if l == nil || l.LoggerProvider == nil {
		return nil
	}
	return l.LoggerProvider.Shutdown(ctx)
}

type LoggerOptions struct {
	// Mode specifies the application mode (debug/release)
	Mode config.Mode

	// Writer is the writer to write the logs to
	Writer io.Writer

	Level        slog.Level
	Format       string // auto|json|text|pretty
	OTELExporter string // none|otlp-http|otlp-grpc
	OTELEndpoint string
	Version      string
	ExtraFields  map[string]string
}

// OptionsFromConfig derives LoggerOptions from the loaded configuration.
func OptionsFromConfig(cfg *config.Config) *LoggerOptions {
	return &LoggerOptions{
		Mode:         cfg.Mode,
		Writer:       cfg.Logger.Writer(),
		Level:        cfg.Logger.LogLevel(),
		Format:       cfg.Logger.Format,
		OTELExporter: cfg.Logger.OTELExporter,
		OTELEndpoint: cfg.Logger.OTELEndpoint,
		ExtraFields:  cfg.Logger.ParseExtraFields(),
	}
}

func NewLogger(ctx context.Context, opts *LoggerOptions) (*Logger, error) {
	if opts == nil || opts.Writer == nil {
		return nil, fmt.Errorf("no log writer")
	}
	handlers := make([]slog.Handler, 0, 2)
	var provider *sdklog.LoggerProvider

	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if opts.Mode == config.ModeDebug {
		switch format {
		case "json", "text":
			handlers = append(handlers, plainHandler(format, opts.Writer, opts.Level))
		default:
			handlers = append(handlers, &DebugHandler{
				out:   opts.Writer,
				level: opts.Level,
				mut:   &sync.Mutex{},
			})
		}
	} else {
		var err error
		provider, err = newProvider(ctx, opts)
		if err != nil {
			return nil, err
		}
		if provider != nil {
			handlers = append(handlers, otelslog.NewHandler(serviceName, otelslog.WithLoggerProvider(provider)))
		}
		handlers = append(handlers, plainHandler(format, opts.Writer, max(opts.Level, slog.LevelWarn)))
	}

	l := slog.New(&MultiHandler{handlers: handlers})
	for k, v := range opts.ExtraFields {
		l = l.With(k, v)
	}
	return &Logger{Slogger: l, LoggerProvider: provider}, nil
}

// plainHandler writes text for "text" and JSON otherwise.
func plainHandler(format string, w io.Writer, level slog.Level) slog.Handler {
	hopts := &slog.HandlerOptions{Level: level}
	if format == "text" {
		return slog.NewTextHandler(w, hopts)
	}
	return slog.NewJSONHandler(w, hopts)
}

// newProvider returns nil when no exporter is configured.
func newProvider(ctx context.Context, opts *LoggerOptions) (*sdklog.LoggerProvider, error) {
	var (
		exporter sdklog.Exporter
		err      error
	)
	switch strings.ToLower(strings.TrimSpace(opts.OTELExporter)) {
	case "", "none":
		return nil, nil
	case "otlp-http":
		var httpOpts []otlploghttp.Option
		if opts.OTELEndpoint != "" {
			httpOpts = append(httpOpts, otlploghttp.WithEndpointURL(opts.OTELEndpoint))
		}
		exporter, err = otlploghttp.New(ctx, httpOpts...)
	case "otlp-grpc":
		var grpcOpts []otlploggrpc.Option
		if opts.OTELEndpoint != "" {
			grpcOpts = append(grpcOpts, otlploggrpc.WithEndpointURL(opts.OTELEndpoint))
		}
		exporter, err = otlploggrpc.New(ctx, grpcOpts...)
	default:
		return nil, fmt.Errorf("unknown OTEL exporter %q", opts.OTELExporter)
	}
	if err != nil {
		return nil, fmt.Errorf("create OTEL log exporter: %w", err)
	}

	attrs := []resource.Option{resource.WithAttributes(semconv.ServiceName(serviceName))}
	if opts.Version != "" {
		attrs = append(attrs, resource.WithAttributes(semconv.ServiceVersion(opts.Version)))
	}
	res, err := resource.New(ctx, attrs...)
	if err != nil {
		return nil, fmt.Errorf("build OTEL resource: %w", err)
	}

	return sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewBatchProcessor(exporter)),
		sdklog.WithResource(res),
	), nil
}

type (
	DebugHandler struct {
		out   io.Writer
		level slog.Level
		attrs []slog.Attr
		mut   *sync.Mutex
	}

	MultiHandler struct {
		handlers []slog.Handler
	}
)

var (
	_ slog.Handler = (*DebugHandler)(nil)
	_ slog.Handler = (*MultiHandler)(nil)
)

// Handle implements slog.Handler
func (h *DebugHandler) Handle(_ context.Context, r slog.Record) error {
	attrs := make([]slog.Attr, 0, len(h.attrs)+r.NumAttrs())
	attrs = append(attrs, h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, a)
		return true
	})

	line := fmt.Sprintf("%s %s %s%s\n",
		color.New(color.FgHiBlack).Sprint(r.Time.Format("15:04:05")),
		levelColor(r.Level),
		r.Message,
		formatAttributes(attrs),
	)

	h.mut.Lock()
	defer h.mut.Unlock()
	_, err := io.WriteString(h.out, line)
	return err
}

// WithAttrs implements slog.Handler
func (h *DebugHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &DebugHandler{out: h.out, level: h.level, attrs: merged, mut: h.mut}
}

// WithGroup implements slog.Handler
func (h *DebugHandler) WithGroup(string) slog.Handler {
	return h
}

// Enabled implements slog.Handler
func (h *DebugHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

// Enabled implements slog.Handler
func (m *MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle implements slog.Handler
func (m *MultiHandler) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	for _, h := range m.handlers {
		if !h.Enabled(ctx, record.Level) {
			continue
		}
		if err := h.Handle(ctx, record.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// WithAttrs implements slog.Handler
func (m *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		next[i] = h.WithAttrs(attrs)
	}
	return &MultiHandler{handlers: next}
}

// WithGroup implements slog.Handler
func (m *MultiHandler) WithGroup(name string) slog.Handler {
	next := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		next[i] = h.WithGroup(name)
	}
	return &MultiHandler{handlers: next}
}

// levelColor returns a colored string representation of the log level.
func levelColor(level slog.Level) string {
	var bg, fg color.Attribute
	switch {
	case level >= slog.LevelError:
		bg, fg = color.BgRed, color.FgWhite
	case level >= slog.LevelWarn:
		bg, fg = color.BgYellow, color.FgBlack
	case level >= slog.LevelInfo:
		bg, fg = color.BgBlue, color.FgWhite
	default:
		bg, fg = color.BgMagenta, color.FgWhite
	}
	return color.New(bg, fg, color.Bold).Sprint(" " + strings.ToUpper(level.String()) + " ")
}

func formatAttributes(attrs []slog.Attr) string {
	if len(attrs) == 0 {
		return ""
	}
	parts := make([]string, 0, len(attrs))
	for _, attr := range attrs {
		parts = append(parts, fmt.Sprintf("%s=%s", attr.Key, formatAttrValue(attr.Value)))
	}
	return " " + strings.Join(parts, " ")
}

func formatAttrValue(v slog.Value) string {
	v = v.Resolve()
	switch v.Kind() {
	case slog.KindString:
		return fmt.Sprintf("%q", v.String())
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindTime:
		return v.Time().Format(time.RFC3339)
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			return fmt.Sprintf("%q", err.Error())
		}
		return fmt.Sprintf("%v", v.Any())
	default:
		return v.String()
	}
}
