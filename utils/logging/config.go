// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package logging

// RotatingWriterConfig describes the optional log file written next to the
// display output.
type RotatingWriterConfig struct {
	// Directory is where log files are written. Empty disables file logging.
	Directory string `json:"directory"`
	// MaxSize in megabytes before a file is rotated
	MaxSize int `json:"maxSize"`
	// MaxFiles is the number of rotated files to retain
	MaxFiles int `json:"maxFiles"`
	// MaxAge in days to retain rotated files
	MaxAge   int  `json:"maxAge"`
	Compress bool `json:"compress"`
}

// Config defines the configuration of a logger factory
type Config struct {
	RotatingWriterConfig
	DisableWriterDisplaying bool   `json:"disableWriterDisplaying"`
	LogLevel                Level  `json:"logLevel"`
	DisplayLevel            Level  `json:"displayLevel"`
	LogFormat               Format `json:"logFormat"`
}

// DefaultConfig displays info logs in plain text and does not write files.
func DefaultConfig() Config {
	return Config{
		RotatingWriterConfig: RotatingWriterConfig{
			MaxSize:  8,
			MaxFiles: 7,
			MaxAge:   30,
		},
		LogLevel:     Debug,
		DisplayLevel: Info,
		LogFormat:    Plain,
	}
}
