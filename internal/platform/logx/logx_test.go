package logx

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", LevelDebug},
		{"DBG", LevelDebug},
		{"  debug  ", LevelDebug},
		{"info", LevelInfo},
		{"", LevelInfo}, // empty defaults to Info
		{"warn", LevelWarn},
		{"Warning", LevelWarn},
		{"err", LevelError},
		{"ERROR", LevelError},
		{"garbage", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestKVPairs(t *testing.T) {
	tests := []struct {
		name     string
		input    []any
		expected []string
	}{
		{"empty input", []any{}, []string{}},
		{"single pair", []any{"key", "value"}, []string{"key=value"}},
		{"odd number of elements", []any{"key1", "value1", "key2"}, []string{"key1=value1", "key2=(missing)"}},
		{"numeric values", []any{"count", 42, "enabled", true}, []string{"count=42", "enabled=true"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := kvPairs(tt.input...)
			if len(result) != len(tt.expected) {
				t.Fatalf("expected %d pairs, got %d", len(tt.expected), len(result))
			}
			for i, exp := range tt.expected {
				if result[i] != exp {
					t.Errorf("pair %d: expected %q, got %q", i, exp, result[i])
				}
			}
		})
	}
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, LevelDebug)

	scoped := logger.With("component", "checker", "batch", 3)
	scoped.Info("batch finished")
	logger.Info("plain")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "component=checker") || !strings.Contains(lines[0], "batch=3") {
		t.Errorf("scoped line should carry scope, got: %s", lines[0])
	}
	if strings.Contains(lines[1], "component=checker") {
		t.Errorf("parent logger should not inherit scope, got: %s", lines[1])
	}
}

func TestLogger_SetLevelSharedWithClones(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, LevelInfo)
	scoped := logger.With("component", "probe")

	logger.SetLevel(LevelDebug)
	scoped.Debug("probe sent")

	if !strings.Contains(buf.String(), "probe sent") {
		t.Errorf("clone should follow parent level, got: %q", buf.String())
	}
}

func TestLogger_Tags(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, LevelDebug)

	logger.Debug("d", "key", "value")
	logger.Info("i", "count", 42)
	logger.Warn("w", "enabled", true)
	logger.Err(errors.New("boom"), "source", "omdb")

	out := buf.String()
	for _, want := range []string{"DBG d key=value", "INF i count=42", "WRN w enabled=true", "ERR error=boom source=omdb"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q, got: %s", want, out)
		}
	}
}

func TestLogger_Err_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewWithWriter(&buf, LevelDebug).Err(nil, "source", "omdb")

	if buf.Len() != 0 {
		t.Errorf("nil error should not log anything, got: %s", buf.String())
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		name     string
		level    Level
		expected []string
		absent   []string
	}{
		{"debug level", LevelDebug, []string{"DBG", "INF", "WRN", "ERR"}, nil},
		{"info level", LevelInfo, []string{"INF", "WRN", "ERR"}, []string{"DBG"}},
		{"warn level", LevelWarn, []string{"WRN", "ERR"}, []string{"DBG", "INF"}},
		{"error level", LevelError, []string{"ERR"}, []string{"DBG", "INF", "WRN"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewWithWriter(&buf, tt.level)

			logger.Debug("debug")
			logger.Info("info")
			logger.Warn("warn")
			logger.Err(errors.New("error"))

			out := buf.String()
			for _, tag := range tt.expected {
				if !strings.Contains(out, tag) {
					t.Errorf("output should contain %s, got: %s", tag, out)
				}
			}
			for _, tag := range tt.absent {
				if strings.Contains(out, tag) {
					t.Errorf("output should NOT contain %s, got: %s", tag, out)
				}
			}
		})
	}
}

func TestLogger_ThreadSafety(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, LevelInfo)

	var wg sync.WaitGroup
	iterations := 100

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				logger.With("worker", id).Info("concurrent log", "iteration", j)
			}
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 10*iterations {
		t.Errorf("expected %d log lines, got %d", 10*iterations, len(lines))
	}
}

func TestNew_WithEnv(t *testing.T) {
	tests := []struct {
		envValue string
		logLevel Level
	}{
		{"debug", LevelDebug},
		{"warn", LevelWarn},
		{"", LevelInfo},
	}

	for _, tt := range tests {
		t.Run("env="+tt.envValue, func(t *testing.T) {
			os.Setenv(EnvLevel, tt.envValue)
			defer os.Unsetenv(EnvLevel)

			impl := New().(*simpleLogger)
			if impl.lvl != tt.logLevel {
				t.Errorf("expected log level %v, got %v", tt.logLevel, impl.lvl)
			}
		})
	}
}

func TestLogger_EmptyMessage(t *testing.T) {
	var buf bytes.Buffer
	NewWithWriter(&buf, LevelError).Err(errors.New("test error"), "source", "test")

	out := buf.String()
	if strings.Contains(out, "  ") {
		t.Errorf("output should not contain double spaces: %s", out)
	}
	if !strings.Contains(out, "error=test error") {
		t.Errorf("output should contain error field: %s", out)
	}
}
