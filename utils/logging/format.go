// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package logging

import (
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

const termTimeFormat = "[01-02|15:04:05.000]"

// Format modes available
const (
	Plain Format = iota
	Colors
	JSON
)

var (
	levelEncoder = func(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(Level(l).AlignedString())
	}
	colorLevelEncoder = func(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
		lvl := Level(l)
		enc.AppendString(lvl.Color().Wrap(lvl.AlignedString()))
	}
	jsonLevelEncoder = func(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(Level(l).String())
	}
	timeEncoder = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.Format(termTimeFormat))
	}

	defaultEncoderConfig = zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		EncodeTime:     timeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	jsonEncoderConfig zapcore.EncoderConfig
)

func init() {
	jsonEncoderConfig = defaultEncoderConfig
	jsonEncoderConfig.EncodeLevel = jsonLevelEncoder
	jsonEncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
}

// Format determines how log lines are rendered
type Format int

// ToFormat chooses a format. "auto" selects Colors only when [fd] is a
// terminal.
func ToFormat(h string, fd uintptr) (Format, error) {
	switch strings.ToUpper(h) {
	case "PLAIN":
		return Plain, nil
	case "COLORS":
		return Colors, nil
	case "JSON":
		return JSON, nil
	case "AUTO":
		if !term.IsTerminal(int(fd)) {
			return Plain, nil
		}
		return Colors, nil
	default:
		return Plain, fmt.Errorf("unknown format mode: %s", h)
	}
}

func (f Format) MarshalJSON() ([]byte, error) {
	switch f {
	case Plain:
		return []byte(`"PLAIN"`), nil
	case Colors:
		return []byte(`"COLORS"`), nil
	case JSON:
		return []byte(`"JSON"`), nil
	default:
		return nil, fmt.Errorf("unknown format %d", f)
	}
}

func (f Format) ConsoleEncoder() zapcore.Encoder {
	switch f {
	case Colors:
		config := defaultEncoderConfig
		config.EncodeLevel = colorLevelEncoder
		return zapcore.NewConsoleEncoder(config)
	case JSON:
		return zapcore.NewJSONEncoder(jsonEncoderConfig)
	default:
		config := defaultEncoderConfig
		config.EncodeLevel = levelEncoder
		return zapcore.NewConsoleEncoder(config)
	}
}

// FileEncoder never emits color escapes.
func (f Format) FileEncoder() zapcore.Encoder {
	if f == JSON {
		return zapcore.NewJSONEncoder(jsonEncoderConfig)
	}
	config := defaultEncoderConfig
	config.EncodeLevel = levelEncoder
	return zapcore.NewConsoleEncoder(config)
}

// Stdout is the display writer used by the factory. Closing it is a no-op.
var Stdout = nopCloser{os.Stdout}
