package cli

import (
	"testing"

	"github.com/ardnew/doji/log"
)

func TestLogConfig_Scan(t *testing.T) {
	t.Cleanup(func() {
		log.Config(
			log.WithLevel(log.DefaultLevel),
			log.WithFormat(log.DefaultFormat),
			log.WithCaller(false),
			log.WithPretty(true),
		)
	})

	defaults := logConfig{Level: "warn", Format: "text", TimeLayout: "RFC3339", Pretty: true}

	tests := []struct {
		name string
		args []string
		want logConfig
	}{
		{
			name: "no logger flags",
			args: []string{"parse", "-f", "json", "a.doji"},
			want: defaults,
		},
		{
			name: "separate values",
			args: []string{"--log-level", "debug", "--log-format", "json", "check"},
			want: logConfig{Level: "debug", Format: "json", TimeLayout: "RFC3339", Pretty: true},
		},
		{
			name: "assigned values after command",
			args: []string{"check", "a.doji", "--log-level=trace", "--log-time-layout=Kitchen"},
			want: logConfig{Level: "trace", Format: "text", TimeLayout: "Kitchen", Pretty: true},
		},
		{
			name: "booleans",
			args: []string{"--no-log-pretty", "--log-caller"},
			want: logConfig{Level: "warn", Format: "text", TimeLayout: "RFC3339", Caller: true},
		},
		{
			name: "assigned booleans",
			args: []string{"--log-pretty=false", "--log-caller=true"},
			want: logConfig{Level: "warn", Format: "text", TimeLayout: "RFC3339", Caller: true},
		},
		{
			name: "negated assigned boolean",
			args: []string{"--no-log-pretty=false"},
			want: defaults,
		},
		{
			name: "invalid boolean ignored",
			args: []string{"--log-caller=maybe"},
			want: defaults,
		},
		{
			name: "value is not a flag",
			args: []string{"--log-level", "--log-format", "json"},
			want: logConfig{Level: "", Format: "json", TimeLayout: "RFC3339", Pretty: true},
		},
		{
			name: "only log flags negate",
			args: []string{"--no-log-level", "debug"},
			want: defaults,
		},
		{
			name: "stops at terminator",
			args: []string{"--", "--log-level", "debug"},
			want: defaults,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := defaults
			got.scan(tt.args)

			if got != tt.want {
				t.Errorf("scan(%q) = %+v, want %+v", tt.args, got, tt.want)
			}
		})
	}
}

func TestLogConfig_Vars(t *testing.T) {
	var f logConfig

	vars := f.vars()

	for _, key := range []string{"logLevel", "logLevelEnum", "logFormat", "logFormatEnum"} {
		if vars[key] == "" {
			t.Errorf("vars()[%q] is empty", key)
		}
	}

	if vars["logLevel"] != log.DefaultLevel.String() {
		t.Errorf("logLevel = %q, want %q", vars["logLevel"], log.DefaultLevel.String())
	}
}
