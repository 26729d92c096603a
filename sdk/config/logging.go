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

package config

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

type LoggerConfig struct {
	Level          string `json:"level"         env:"LEVEL"`         // trace|debug|info|warn|error
	Format         string `json:"format"        env:"FORMAT"`        // auto|json|text|pretty
	Output         string `json:"output"        env:"OUTPUT"`        // stdout|stderr|file:/path
	ExtraFieldsRaw string `json:"fields"        env:"FIELDS"`        // key1=val1,key2=val2
	OTELExporter   string `json:"otel_exporter" env:"OTEL_EXPORTER"` // none|otlp-http|otlp-grpc
	OTELEndpoint   string `json:"otel_endpoint" env:"OTEL_ENDPOINT"`
}

// Writer resolves Output. An unopenable file falls back to stderr.
func (lc *LoggerConfig) Writer() io.Writer {
	out := strings.TrimSpace(lc.Output)
	switch lower := strings.ToLower(out); {
	case lower == "stdout":
		return os.Stdout
	case strings.HasPrefix(lower, "file:"):
		path := strings.TrimSpace(out[len("file:"):])
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			slog.Warn("cannot open file for log output", "path", path, "error", err)
			return os.Stderr
		}
		return f
	default:
		return os.Stderr
	}
}

// ParseExtraFields parses ExtraFieldsRaw into a map.
func (lc *LoggerConfig) ParseExtraFields() map[string]string {
	res := make(map[string]string)
	if lc == nil || lc.ExtraFieldsRaw == "" {
		return res
	}
	for _, p := range strings.Split(lc.ExtraFieldsRaw, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(p), "=")
		if !ok {
			continue
		}
		if k = strings.TrimSpace(k); k != "" {
			res[k] = strings.TrimSpace(v)
		}
	}
	return res
}

// LogLevel maps Level onto slog, defaulting to info.
func (lc *LoggerConfig) LogLevel() slog.Level {
	if lc == nil {
		return slog.LevelInfo
	}
	switch strings.ToLower(strings.TrimSpace(lc.Level)) {
	case "trace":
		return slog.Level(-8)
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
