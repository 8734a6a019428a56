package shared

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestLogger(t *testing.T) {
	t.Run("NewLogger writes to the given writer", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		logger.Info("hello", "isbn", "978-0451524935")

		if !strings.Contains(buf.String(), "hello") {
			t.Errorf("expected log output to contain message, got %q", buf.String())
		}
		if !strings.Contains(buf.String(), "isbn=978-0451524935") {
			t.Errorf("expected key-value pair in output, got %q", buf.String())
		}
	})

	t.Run("WithLogger adds fields", func(t *testing.T) {
		var buf bytes.Buffer
		logger := WithLogger(NewLogger(&buf), "component", "catalog")
		logger.Info("loaded")

		if !strings.Contains(buf.String(), "component=catalog") {
			t.Errorf("expected component field, got %q", buf.String())
		}
	})

	t.Run("SetLogLevel filters", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		SetLogLevel(logger, log.WarnLevel)
		logger.Info("quiet")

		if buf.Len() != 0 {
			t.Errorf("expected info to be filtered, got %q", buf.String())
		}
	})

	t.Run("NewFileLogger creates directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "dir", "shelf.log")
		logger, err := NewFileLogger(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		logger.Info("written")
	})
}

func TestParseLogLevel(t *testing.T) {
	tt := []struct {
		name    string
		input   string
		want    log.Level
		wantErr bool
	}{
		{name: "empty defaults to info", input: "", want: log.InfoLevel},
		{name: "debug", input: "debug", want: log.DebugLevel},
		{name: "mixed case", input: "WARN", want: log.WarnLevel},
		{name: "unknown", input: "chatty", wantErr: true},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseLogLevel(tc.input)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseLogLevel() error = %v, wantErr %v", err, tc.wantErr)
			}
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("expected ErrInvalidConfig, got %v", err)
				}
				return
			}
			if got != tc.want {
				t.Errorf("ParseLogLevel() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestMarshalJSON(t *testing.T) {
	t.Run("pretty keeps non-ASCII and HTML characters", func(t *testing.T) {
		data, err := MarshalJSON(map[string]string{"title": "Cien años <de> soledad"}, true)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		want := "{\n  \"title\": \"Cien años <de> soledad\"\n}\n"
		if string(data) != want {
			t.Errorf("MarshalJSON() = %q, want %q", string(data), want)
		}
	})

	t.Run("compact", func(t *testing.T) {
		data, err := MarshalJSON([]int{1, 2}, false)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if string(data) != "[1,2]\n" {
			t.Errorf("MarshalJSON() = %q", string(data))
		}
	})

	t.Run("unsupported value", func(t *testing.T) {
		if _, err := MarshalJSON(make(chan int), false); err == nil {
			t.Error("expected error for channel value")
		}
	})
}

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	if a == b {
		t.Error("expected distinct IDs")
	}
	if len(a) != 36 {
		t.Errorf("expected 36 character UUID, got %d", len(a))
	}
}
