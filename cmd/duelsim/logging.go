package main

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/go-logr/logr"
	"github.com/go-logr/zerologr"
	"github.com/nathanieltooley/duelcore/battle"
	"github.com/nathanieltooley/duelcore/dex"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

const (
	mb = 1000000
	kb = 1000
)

// rollingFileWriter appends to <dir>/<name>.log and moves it to <name>-1.log,
// <name>-2.log and so on once it grows past maxSize. The oldest logs are removed
// so at most maxLogs files exist.
type rollingFileWriter struct {
	mu      sync.Mutex
	dir     string
	name    string
	maxSize int64
	maxLogs int
}

func newRollingFileWriter(cfg LogConfig) (*rollingFileWriter, error) {
	dir, err := filepath.Abs(cfg.Dir)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("creating log dir %s: %w", dir, err)
	}

	return &rollingFileWriter{
		dir:     dir,
		name:    cfg.Name,
		maxSize: cfg.MaxSize,
		maxLogs: cfg.MaxLogs,
	}, nil
}

func (w *rollingFileWriter) mainLog() string {
	return filepath.Join(w.dir, w.name+".log")
}

func (w *rollingFileWriter) indexedLog(index int) string {
	return filepath.Join(w.dir, fmt.Sprintf("%s-%d.log", w.name, index))
}

// archived returns the numbered logs, newest first
func (w *rollingFileWriter) archived() ([]string, error) {
	matches, err := fs.Glob(os.DirFS(w.dir), w.name+"-*.log")
	if err != nil {
		return nil, err
	}

	// skip anything that is not name-<number>.log
	matches = lo.Filter(matches, func(match string, _ int) bool {
		_, err := logIndex(w.name, match)
		return err == nil
	})
	slices.SortFunc(matches, func(a, b string) int {
		ia, _ := logIndex(w.name, a)
		ib, _ := logIndex(w.name, b)
		return ia - ib
	})

	return lo.Map(matches, func(match string, _ int) string {
		return filepath.Join(w.dir, match)
	}), nil
}

func (w *rollingFileWriter) Write(b []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	stats, err := os.Stat(w.mainLog())
	if err == nil && stats.Size()+int64(len(b)) > w.maxSize {
		if err := w.rotate(); err != nil {
			return 0, err
		}
	}

	file, err := os.OpenFile(w.mainLog(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	return file.Write(b)
}

func (w *rollingFileWriter) rotate() error {
	logs, err := w.archived()
	if err != nil {
		return err
	}

	// shift from the oldest down so renames never collide
	for i := len(logs) - 1; i >= 0; i-- {
		index, _ := logIndex(w.name, filepath.Base(logs[i]))
		if index+1 >= w.maxLogs {
			if err := os.Remove(logs[i]); err != nil {
				return err
			}
			continue
		}
		if err := os.Rename(logs[i], w.indexedLog(index+1)); err != nil {
			return err
		}
	}

	if w.maxLogs == 1 {
		return os.Remove(w.mainLog())
	}
	return os.Rename(w.mainLog(), w.indexedLog(1))
}

func logIndex(baseName string, fileName string) (int, error) {
	name, _ := strings.CutSuffix(filepath.Base(fileName), ".log")
	indexStr, ok := strings.CutPrefix(name, baseName+"-")
	if !ok {
		return 0, fmt.Errorf("%s is not a log of %s", fileName, baseName)
	}

	index, err := strconv.Atoi(indexStr)
	if err != nil || index < 1 {
		return 0, fmt.Errorf("%s has no valid index", fileName)
	}
	return index, nil
}

// newLogger writes to out and, when configured, to the rolling log file
func newLogger(cfg Config, out io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return zerolog.Nop(), err
	}

	writers := []io.Writer{zerolog.ConsoleWriter{Out: out}}
	if cfg.Log.Dir != "" {
		fileWriter, err := newRollingFileWriter(cfg.Log)
		if err != nil {
			return zerolog.Nop(), err
		}
		writers = append(writers, zerolog.ConsoleWriter{Out: fileWriter, NoColor: true})
	}

	return zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Logger().Level(level), nil
}

// setInternalLoggers routes the engine and data set logs through logger.
// logr's V(1) maps to debug and V(2) to trace.
func setInternalLoggers(logger *zerolog.Logger) logr.Logger {
	sink := zerologr.New(logger)
	battle.SetInternalLogger(sink)
	dex.SetInternalLogger(sink)
	return sink
}
