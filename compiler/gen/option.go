package gen

import (
	"go/token"
	"runtime"
)

// Config holds the generation settings.
type Config struct {
	// Package is the name of the generated package.
	Package string
	// Target is the output directory.
	Target string
	// Header is the comment written at the top of each file.
	Header string
	// Workers bounds the number of files rendered in parallel.
	Workers int
	// Tags lists the struct tag keys carrying the column name.
	Tags []string
}

// DefaultHeader marks generated files.
const DefaultHeader = "Code generated by ibx. DO NOT EDIT."

// Option configures code generation.
type Option func(*Config) error

// NewConfig returns a config with defaults applied before opts.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{
		Header:  DefaultHeader,
		Workers: runtime.GOMAXPROCS(0),
		Tags:    []string{"db"},
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.Package == "" {
		return nil, NewConfigError("Package", nil, "package is required")
	}
	if c.Target == "" {
		return nil, NewConfigError("Target", nil, "target directory is required")
	}
	return c, nil
}

// WithHeader sets the file header comment.
// The header is added at the top of each generated file.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithPackage sets the generated package name.
func WithPackage(pkg string) Option {
	return func(c *Config) error {
		if !token.IsIdentifier(pkg) {
			return NewConfigError("Package", pkg, "package must be a Go identifier")
		}
		c.Package = pkg
		return nil
	}
}

// WithTarget sets the output directory.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Target", nil, "target cannot be empty")
		}
		c.Target = dir
		return nil
	}
}

// WithWorkers sets the number of parallel workers.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n <= 0 {
			return NewConfigError("Workers", n, "workers must be positive")
		}
		c.Workers = n
		return nil
	}
}

// WithTags sets the struct tag keys carrying the column name, for example
// "db" and "json".
func WithTags(keys ...string) Option {
	return func(c *Config) error {
		for _, k := range keys {
			if k == "" {
				return NewConfigError("Tags", keys, "tag key cannot be empty")
			}
		}
		c.Tags = keys
		return nil
	}
}
