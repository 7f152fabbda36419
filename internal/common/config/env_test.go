package config

import (
	"testing"
	"time"
)

func TestIntFromEnv(t *testing.T) {
	t.Run("missing key returns default", func(t *testing.T) {
		got, err := IntFromEnv("SOLARIS_TEST_MISSING_INT", 42)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != 42 {
			t.Errorf("expected 42, got %d", got)
		}
	})

	t.Run("set key is parsed", func(t *testing.T) {
		t.Setenv("SOLARIS_TEST_INT", "7")
		got, err := IntFromEnv("SOLARIS_TEST_INT", 42)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != 7 {
			t.Errorf("expected 7, got %d", got)
		}
	})

	t.Run("blank value returns default", func(t *testing.T) {
		t.Setenv("SOLARIS_TEST_INT_BLANK", "   ")
		got, err := IntFromEnv("SOLARIS_TEST_INT_BLANK", 42)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != 42 {
			t.Errorf("expected 42, got %d", got)
		}
	})

	t.Run("garbage value errors", func(t *testing.T) {
		t.Setenv("SOLARIS_TEST_INT_BAD", "seven")
		if _, err := IntFromEnv("SOLARIS_TEST_INT_BAD", 42); err == nil {
			t.Error("expected error for non-numeric value")
		}
	})
}

func TestBoolFromEnv(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"true", true},
		{"1", true},
		{"false", false},
		{"0", false},
	}

	for _, tt := range tests {
		t.Setenv("SOLARIS_TEST_BOOL", tt.raw)
		got, err := BoolFromEnv("SOLARIS_TEST_BOOL", !tt.want)
		if err != nil {
			t.Fatalf("BoolFromEnv(%q) unexpected error: %v", tt.raw, err)
		}
		if got != tt.want {
			t.Errorf("BoolFromEnv(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestDurationSecondsFromEnv(t *testing.T) {
	t.Setenv("SOLARIS_TEST_DURATION", "30")
	got, err := DurationSecondsFromEnv("SOLARIS_TEST_DURATION", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 30*time.Second {
		t.Errorf("expected 30s, got %v", got)
	}

	t.Setenv("SOLARIS_TEST_DURATION", "-1")
	if _, err := DurationSecondsFromEnv("SOLARIS_TEST_DURATION", 5); err == nil {
		t.Error("expected error for negative duration")
	}
}

func TestStringFromEnvFirstNonEmpty(t *testing.T) {
	t.Setenv("SOLARIS_TEST_FALLBACK_B", "second")
	got := StringFromEnvFirstNonEmpty(
		[]string{"SOLARIS_TEST_FALLBACK_A", "SOLARIS_TEST_FALLBACK_B"},
		"default",
	)
	if got != "second" {
		t.Errorf("expected second, got %q", got)
	}

	got = StringFromEnvFirstNonEmpty([]string{"SOLARIS_TEST_FALLBACK_NONE"}, "default")
	if got != "default" {
		t.Errorf("expected default, got %q", got)
	}
}

func TestStringListFromEnvFirstNonEmpty(t *testing.T) {
	t.Setenv("SOLARIS_TEST_LIST", "a, b, ,c")
	got := StringListFromEnvFirstNonEmpty([]string{"SOLARIS_TEST_LIST"}, nil)
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Errorf("unexpected list: %v", got)
	}
}

func TestInt64ListFromEnvFirstNonEmpty(t *testing.T) {
	t.Setenv("SOLARIS_TEST_ID_LIST", "100, -2,3")
	got, err := Int64ListFromEnvFirstNonEmpty([]string{"SOLARIS_TEST_ID_LIST"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 || got[0] != 100 || got[1] != -2 || got[2] != 3 {
		t.Errorf("unexpected list: %v", got)
	}

	t.Setenv("SOLARIS_TEST_ID_LIST", "1,x")
	if _, err := Int64ListFromEnvFirstNonEmpty([]string{"SOLARIS_TEST_ID_LIST"}, nil); err == nil {
		t.Error("expected error for non-numeric element")
	}
}

func TestReadLogConfigFromEnv(t *testing.T) {
	t.Run("empty dir disables file logging", func(t *testing.T) {
		t.Setenv("LOG_DIR", "")
		cfg, err := ReadLogConfigFromEnv()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Dir != "" {
			t.Errorf("expected empty dir, got %q", cfg.Dir)
		}
	})

	t.Run("invalid size rejected", func(t *testing.T) {
		t.Setenv("LOG_DIR", "/tmp/logs")
		t.Setenv("LOG_FILE_MAX_SIZE_MB", "0")
		if _, err := ReadLogConfigFromEnv(); err == nil {
			t.Error("expected error for zero max size")
		}
	})
}
