// Package logging provides the slog handler used by the snake binary.
//
// The terminal belongs to the game while it runs, so records go to a file:
// one JSON object per record, optionally indented for reading by hand.
package logging

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"
)

type Options struct {
	Level     slog.Leveler
	AddSource bool
	// Pretty indents each record over several lines.
	Pretty bool
}

// Handler is a slog.Handler writing JSON records.
// It is not tuned for throughput; a game logs a handful of records per round.
type Handler struct {
	w    io.Writer
	mu   *sync.Mutex
	opts Options

	attrs  []slog.Attr
	groups []string
}

func NewHandler(w io.Writer, opts Options) *Handler {
	if opts.Level == nil {
		opts.Level = slog.LevelInfo
	}
	return &Handler{
		w:    w,
		mu:   &sync.Mutex{},
		opts: opts,
	}
}

// New returns a logger backed by a Handler.
func New(w io.Writer, opts Options) *slog.Logger {
	return slog.New(NewHandler(w, opts))
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	payload := make(map[string]any, 4+r.NumAttrs()+len(h.attrs))

	when := r.Time
	if when.IsZero() {
		when = time.Now()
	}
	payload["time"] = when.Format(time.RFC3339Nano)
	payload["level"] = r.Level.String()
	payload["msg"] = r.Message

	if h.opts.AddSource {
		if src := sourceFromPC(r.PC); src != "" {
			payload["source"] = src
		}
	}

	// Handler-level attrs sit outside groups opened later, so only
	// record attrs are nested under h.groups.
	for _, a := range h.attrs {
		addAttrToMap(payload, a)
	}
	dst := groupMap(payload, h.groups)
	r.Attrs(func(a slog.Attr) bool {
		addAttrToMap(dst, a)
		return true
	})

	var (
		b   []byte
		err error
	)
	if h.opts.Pretty {
		b, err = json.MarshalIndent(payload, "", "  ")
	} else {
		b, err = json.Marshal(payload)
	}
	if err != nil {
		b = []byte(`{"time":` + strconv.Quote(payload["time"].(string)) +
			`,"level":` + strconv.Quote(r.Level.String()) +
			`,"msg":` + strconv.Quote(r.Message) +
			`,"log_error":` + strconv.Quote(err.Error()) + `}`)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err = h.w.Write(append(b, '\n'))
	return err
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	clone := *h
	if len(h.groups) > 0 {
		// Wrap so the attrs stay inside the groups open at this point.
		grouped := make([]any, len(attrs))
		for i, a := range attrs {
			grouped[i] = a
		}
		a := slog.Group(h.groups[len(h.groups)-1], grouped...)
		for i := len(h.groups) - 2; i >= 0; i-- {
			a = slog.Group(h.groups[i], a)
		}
		attrs = []slog.Attr{a}
	}
	clone.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &clone
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(append([]string(nil), h.groups...), name)
	return &clone
}

func groupMap(root map[string]any, groups []string) map[string]any {
	dst := root
	for _, g := range groups {
		m, ok := dst[g].(map[string]any)
		if !ok {
			m = map[string]any{}
			dst[g] = m
		}
		dst = m
	}
	return dst
}

func addAttrToMap(dst map[string]any, attr slog.Attr) {
	v := attr.Value.Resolve()
	if attr.Key == "" && v.Kind() != slog.KindGroup {
		return
	}

	if v.Kind() == slog.KindGroup {
		child := dst
		if attr.Key != "" {
			m, ok := dst[attr.Key].(map[string]any)
			if !ok {
				m = map[string]any{}
				dst[attr.Key] = m
			}
			child = m
		}
		for _, ga := range v.Group() {
			addAttrToMap(child, ga)
		}
		return
	}

	dst[attr.Key] = valueToAny(v)
}

func valueToAny(v slog.Value) any {
	switch v.Kind() {
	case slog.KindString:
		return v.String()
	case slog.KindInt64:
		return v.Int64()
	case slog.KindUint64:
		return v.Uint64()
	case slog.KindFloat64:
		return v.Float64()
	case slog.KindBool:
		return v.Bool()
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindTime:
		return v.Time().Format(time.RFC3339Nano)
	case slog.KindAny:
		switch x := v.Any().(type) {
		case error:
			return x.Error()
		case fmt.Stringer:
			return x.String()
		}
		return v.Any()
	default:
		return v.String()
	}
}

func sourceFromPC(pc uintptr) string {
	if pc == 0 {
		return ""
	}
	frames := runtime.CallersFrames([]uintptr{pc})
	f, _ := frames.Next()
	if f.File == "" {
		return ""
	}
	file := f.File
	if idx := strings.LastIndexByte(file, '/'); idx >= 0 {
		file = file[idx+1:]
	}
	return file + ":" + strconv.Itoa(f.Line)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// OpenFile opens path for appending, creating parent directories.
// An empty path discards everything.
func OpenFile(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{io.Discard}, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}
