package config

import (
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
)

// FileWatcher polls file modification times and calls onChange for each file
// that changed, appeared or disappeared since the previous scan.
type FileWatcher struct {
	Paths    []string
	Interval time.Duration
	onChange func(string)

	stopOnce  sync.Once
	stopCh    chan struct{}
	lastMTime map[string]time.Time
}

func NewFileWatcher(paths []string, interval time.Duration, onChange func(string)) *FileWatcher {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &FileWatcher{
		Paths:     paths,
		Interval:  interval,
		onChange:  onChange,
		stopCh:    make(chan struct{}),
		lastMTime: make(map[string]time.Time),
	}
}

// Start primes the mtimes synchronously, then polls in a goroutine.
func (w *FileWatcher) Start() {
	w.scanAll(true)
	ticker := time.NewTicker(w.Interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				w.scanAll(false)
			case <-w.stopCh:
				return
			}
		}
	}()
}

// Stop is safe to call more than once.
func (w *FileWatcher) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
}

// scanAll records mtimes. A missing file has the zero mtime.
func (w *FileWatcher) scanAll(prime bool) {
	for _, p := range w.Paths {
		var mt time.Time
		if fi, err := os.Stat(p); err == nil {
			mt = fi.ModTime()
		}
		last, ok := w.lastMTime[p]
		w.lastMTime[p] = mt
		if prime || !ok || mt.Equal(last) {
			continue
		}
		if w.onChange != nil {
			w.onChange(p)
		}
	}
}

// Watch reloads the profile's catalog whenever one of its layers changes and
// hands every catalog that validates to onReload. A broken edit is logged and
// the previous catalog stays in use.
func Watch(l *Loader, profile string, interval time.Duration, log *zap.Logger, onReload func(Catalog)) *FileWatcher {
	if log == nil {
		log = zap.NewNop()
	}
	w := NewFileWatcher(l.Paths().Files(profile), interval, func(path string) {
		l.Invalidate()
		cat, err := l.Load(profile)
		if err != nil {
			log.Error("catalog reload failed", zap.String("path", path), zap.Error(err))
			return
		}
		for _, warn := range Warnings(cat) {
			log.Warn("catalog", zap.String("warning", warn))
		}
		log.Info("catalog reloaded", zap.String("path", path), zap.String("version", cat.Version))
		onReload(cat)
	})
	w.Start()
	return w
}
