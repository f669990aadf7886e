package gitlet

import (
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	DefaultMetaDir     = ".gitlet"
	DefaultBranch      = "master"
	DefaultConcurrency = 4
	DefaultCacheSize   = 256
)

// Options configures a Repository.
type Options struct {
	MetaDir       string
	DefaultBranch string
	Concurrency   int
	CacheSize     int
	Logger        logrus.FieldLogger
	Now           func() time.Time
}

// Option is a functional option for configuring Init and Open.
type Option func(*Options)

func defaultOptions() *Options {
	return &Options{
		MetaDir:       DefaultMetaDir,
		DefaultBranch: DefaultBranch,
		Concurrency:   DefaultConcurrency,
		CacheSize:     DefaultCacheSize,
		Logger:        defaultLogger(os.Stderr),
		Now:           time.Now,
	}
}

func defaultLogger(w io.Writer) logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(logrus.WarnLevel)
	return l
}

// WithMetaDir sets the name of the metadata directory under the root.
func WithMetaDir(name string) Option {
	return func(o *Options) {
		if name != "" {
			o.MetaDir = name
		}
	}
}

// WithDefaultBranch sets the branch created by Init.
func WithDefaultBranch(name string) Option {
	return func(o *Options) {
		if name != "" {
			o.DefaultBranch = name
		}
	}
}

// WithConcurrency sets how many working files are hashed in parallel.
func WithConcurrency(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.Concurrency = n
		}
	}
}

// WithCacheSize sets the number of objects kept in memory per store.
// Zero disables caching.
func WithCacheSize(n int) Option {
	return func(o *Options) {
		if n >= 0 {
			o.CacheSize = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithClock sets the time source used for commit timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *Options) {
		if now != nil {
			o.Now = now
		}
	}
}
