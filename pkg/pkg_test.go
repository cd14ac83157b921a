package pkg

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestName(t *testing.T) {
	expected := "doji"
	if Name != expected {
		t.Errorf("Expected Name to be %q, got %q", expected, Name)
	}
}

func TestVersion(t *testing.T) {
	// Version is embedded from VERSION file, so it should not be empty.
	buf, err := os.ReadFile("VERSION")
	if err != nil {
		t.Fatalf("Failed to read VERSION file: %v", err)
	}

	if content := strings.TrimSpace(string(buf)); Version != content {
		t.Errorf("Expected Version to be %q, got %q", content, Version)
	}
}

func TestError(t *testing.T) {
	sentinel := NewError("broken")
	cause := errors.New("disk full")

	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"message only", sentinel, "broken"},
		{"wrapped", sentinel.Wrap(cause), "broken: disk full"},
		{"cause only", WrapError(cause), "disk full"},
		{"with attrs", sentinel.With(slog.Int("n", 1)), "broken"},
		{"empty", &Error{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestError_Is(t *testing.T) {
	sentinel := NewError("broken")
	other := NewError("other")
	cause := errors.New("disk full")

	err := error(sentinel.Wrap(cause).With(slog.String("file", "x")))

	if !errors.Is(err, sentinel) {
		t.Error("decorated error should match its sentinel")
	}

	if errors.Is(err, other) {
		t.Error("decorated error should not match an unrelated sentinel")
	}

	if !errors.Is(err, cause) {
		t.Error("decorated error should match its cause")
	}

	if WrapError(err) != err {
		t.Error("WrapError should return an existing *Error unchanged")
	}
}

func TestError_LogValue(t *testing.T) {
	err := NewError("broken").
		Wrap(errors.New("disk full")).
		With(slog.Int("n", 3))

	v := err.LogValue()
	if v.Kind() != slog.KindGroup {
		t.Fatalf("LogValue kind = %v, want group", v.Kind())
	}

	got := map[string]string{}
	for _, a := range v.Group() {
		got[a.Key] = a.Value.String()
	}

	want := map[string]string{"error": "broken", "cause": "disk full", "n": "3"}
	for k, w := range want {
		if got[k] != w {
			t.Errorf("attr %q = %q, want %q", k, got[k], w)
		}
	}

	if len(err.Attrs()) != 1 {
		t.Errorf("Attrs() len = %d, want 1", len(err.Attrs()))
	}
}

func TestPrefixOf(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/usr/local/bin/doji", "doji"},
		{"doji.exe", "doji"},
		{"/tmp/__debug_bin1234", Name},
		{"/opt/.doji", "doji"},
		{"/opt/..doji.exe", "doji"},
		{"/tmp/__debug_bin99.exe", Name},
		{"/tmp/go-build/cli.test", "cli"},
	}

	for _, tt := range tests {
		if got := prefixOf(tt.path); got != tt.want {
			t.Errorf("prefixOf(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestUserDir(t *testing.T) {
	failing := func() (string, error) { return "", errors.New("unset") }
	fixed := func() (string, error) { return "/base", nil }

	t.Run("environment", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "/custom")

		if got := userDir(EnvConfigDir, fixed, ".config"); got != "/custom" {
			t.Errorf("userDir = %q, want /custom", got)
		}
	})

	t.Run("base", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "")

		want := filepath.Join("/base", Prefix())
		if got := userDir(EnvConfigDir, fixed, ".config"); got != want {
			t.Errorf("userDir = %q, want %q", got, want)
		}
	})

	t.Run("home fallback", func(t *testing.T) {
		t.Setenv(EnvCacheDir, "")
		t.Setenv("HOME", "/home/someone")

		want := filepath.Join("/home/someone", ".cache", Prefix())
		if got := userDir(EnvCacheDir, failing, ".cache"); got != want {
			t.Errorf("userDir = %q, want %q", got, want)
		}
	})
}
