package log

import (
	"slices"
	"strings"
	"testing"
	"time"
)

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelTrace, "trace"},
		{LevelDebug, "debug"},
		{LevelInfo, "info"},
		{LevelWarn, "warn"},
		{LevelError, "error"},
		{LevelTrace + 1, "trace+1"},
		{LevelTrace - 2, "trace-2"},
		{LevelDebug + 2, "debug+2"},
		{LevelError + 4, "error+4"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.level.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}

			if got := ParseLevel(tt.want); got != tt.level {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.want, got, tt.level)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
	}{
		{"TRACE", LevelTrace},
		{" Debug ", LevelDebug},
		{"INFO", LevelInfo},
		{"warn-1", LevelWarn - 1},
		{"error", LevelError},
		{"verbose", DefaultLevel},
		{"", DefaultLevel},
		{"trace+x", DefaultLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLevels(t *testing.T) {
	want := []string{"trace", "debug", "info", "warn", "error"}
	if got := slices.Collect(Levels()); !slices.Equal(got, want) {
		t.Errorf("Levels() = %v, want %v", got, want)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		input string
		want  Format
	}{
		{"json", FormatJSON},
		{" JSON ", FormatJSON},
		{"text", FormatText},
		{"yaml", DefaultFormat},
	}

	for _, tt := range tests {
		if got := ParseFormat(tt.input); got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}

	if got := slices.Collect(Formats()); !slices.Equal(got, []string{"text", "json"}) {
		t.Errorf("Formats() = %v", got)
	}

	if got := Format(7).String(); got != "format(7)" {
		t.Errorf("String() = %q", got)
	}
}

func TestConfig_Options(t *testing.T) {
	c := makeConfig(nil,
		WithLevel(LevelDebug),
		WithFormat(FormatJSON),
		WithCaller(true),
		WithPretty(false),
	)

	if c.level != LevelDebug {
		t.Errorf("level = %v, want %v", c.level, LevelDebug)
	}

	if c.format != FormatJSON {
		t.Errorf("format = %v, want %v", c.format, FormatJSON)
	}

	if !c.caller {
		t.Error("caller disabled")
	}

	if c.pretty {
		t.Error("pretty enabled")
	}

	if c.output == nil {
		t.Error("nil output")
	}

	d := c.clone(WithDefaults(nil))
	if d.level != DefaultLevel || d.format != DefaultFormat || d.caller != DefaultCaller {
		t.Errorf("WithDefaults left %v %v %v", d.level, d.format, d.caller)
	}

	if d.mutex == c.mutex {
		t.Error("clone shares its mutex")
	}

	if c.level != LevelDebug {
		t.Error("clone modified the original")
	}
}

func TestConfig_FormatTime(t *testing.T) {
	now := time.Date(2023, 10, 15, 14, 30, 45, 123456789, time.UTC)

	tests := []struct {
		name   string
		layout string
		want   string
	}{
		{"rfc3339", "RFC3339", "2023-10-15T14:30:45Z"},
		{"rfc3339 nano", "rfc-3339-nano", "2023-10-15T14:30:45.123456789Z"},
		{"kitchen", "Kitchen", "2:30PM"},
		{"datetime", "DateTime", "2023-10-15 14:30:45"},
		{"millis", "ms", "Oct 15 14:30:45.123"},
		{"custom", "2006/01/02", "2023/10/15"},
		{"none", "none", ""},
		{"empty", "", ""},
		{"blank", "   \t  ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := WithTimeLayout(tt.layout)(config{})
			if got := c.formatTime(now); got != tt.want {
				t.Errorf("formatTime = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConfig_ReplaceAttr(t *testing.T) {
	c := makeConfig(nil, WithTimeLayout("none"))

	var b strings.Builder

	l := Make(&b, WithTimeLayout("none"), WithPretty(false), WithLevel(LevelTrace))
	l.Trace("hello")

	if got := b.String(); strings.Contains(got, "time=") || !strings.Contains(got, "level=TRACE") {
		t.Errorf("output = %q", got)
	}

	if c.formatTime(time.Now()) != "" {
		t.Error("timestamps not disabled")
	}
}

func BenchmarkConfig_FormatTime(b *testing.B) {
	c := WithTimeLayout("RFC3339Nano")(config{})
	now := time.Now()

	for b.Loop() {
		_ = c.formatTime(now)
	}
}
