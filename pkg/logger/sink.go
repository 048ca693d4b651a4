package logger

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"sync"
)

// fileSink appends each write to a file, opening and closing it every time,
// so the file may be rotated or removed between writes.
type fileSink struct {
	mu   sync.Mutex
	path string
}

func newFileSink(path string) *fileSink {
	return &fileSink{path: path}
}

func (f *fileSink) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	file, err := os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, fmt.Errorf("open log file: %w", err)
	}
	n, err := file.Write(p)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	return n, err
}

var globalFiles = struct {
	mu    sync.RWMutex
	paths []string
	sinks map[string]*fileSink
}{sinks: make(map[string]*fileSink)}

// SetGlobalFiles sets files that every logger created by New also writes to,
// unless it was built WithoutGlobalFiles. Passing no paths clears the list.
func SetGlobalFiles(paths ...string) {
	globalFiles.mu.Lock()
	defer globalFiles.mu.Unlock()

	globalFiles.paths = slices.Clone(paths)
	for _, p := range paths {
		if _, ok := globalFiles.sinks[p]; !ok {
			globalFiles.sinks[p] = newFileSink(p)
		}
	}
}

// GlobalFiles returns the files set with SetGlobalFiles.
func GlobalFiles() []string {
	globalFiles.mu.RLock()
	defer globalFiles.mu.RUnlock()
	return slices.Clone(globalFiles.paths)
}

// globalSink forwards writes to whatever global files are set at write time.
type globalSink struct{}

func (globalSink) Write(p []byte) (int, error) {
	globalFiles.mu.RLock()
	sinks := make([]*fileSink, 0, len(globalFiles.paths))
	for _, path := range globalFiles.paths {
		sinks = append(sinks, globalFiles.sinks[path])
	}
	globalFiles.mu.RUnlock()

	var errs []error
	for _, s := range sinks {
		if _, err := s.Write(p); err != nil {
			errs = append(errs, err)
		}
	}
	return len(p), errors.Join(errs...)
}

// fanout writes to every writer even when some of them fail.
type fanout []io.Writer

func (f fanout) Write(p []byte) (int, error) {
	var errs []error
	for _, w := range f {
		if _, err := w.Write(p); err != nil {
			errs = append(errs, err)
		}
	}
	return len(p), errors.Join(errs...)
}
