// Package logger hands out module-tagged loggers that share a single
// stderr backend.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/op/go-logging"
)

var (
	format = logging.MustStringFormatter(
		`%{time:15:04:05.000} %{level:.4s} %{module} %{shortfile} ▶ %{message}`,
	)

	mu      sync.Mutex
	leveled logging.LeveledBackend
)

func init() {
	setOutput(os.Stderr)
	leveled.SetLevel(logging.WARNING, "")
}

// NewLogger returns the logger registered for module, creating it on first use.
func NewLogger(module string) *logging.Logger {
	return logging.MustGetLogger(module)
}

// SetLevel sets the level for every module. Accepts the go-logging level
// names (critical, error, warning, notice, info, debug) in any case.
func SetLevel(level string) error {
	lvl, err := logging.LogLevel(strings.ToUpper(level))
	if err != nil {
		return err
	}
	mu.Lock()
	defer mu.Unlock()
	leveled.SetLevel(lvl, "")
	return nil
}

// SetOutput redirects all modules to w, keeping the current level.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	lvl := leveled.GetLevel("")
	setOutput(w)
	leveled.SetLevel(lvl, "")
}

func setOutput(w io.Writer) {
	backend := logging.NewLogBackend(w, "", 0)
	leveled = logging.AddModuleLevel(logging.NewBackendFormatter(backend, format))
	logging.SetBackend(leveled)
}
