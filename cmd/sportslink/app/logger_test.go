package app

import (
	"testing"
)

func TestDetermineLogLevel(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		want   string
	}{
		{
			name:   "default is info",
			config: Config{},
			want:   "info",
		},
		{
			name:   "verbose means debug",
			config: Config{Verbose: true},
			want:   "debug",
		},
		{
			name:   "quiet means warn",
			config: Config{Quiet: true},
			want:   "warn",
		},
		{
			name:   "quiet wins over verbose",
			config: Config{Verbose: true, Quiet: true},
			want:   "warn",
		},
		{
			name:   "explicit level wins over flags",
			config: Config{Verbose: true, LogLevel: "error"},
			want:   "error",
		},
		{
			name:   "invalid explicit level falls back to info",
			config: Config{LogLevel: "shouty"},
			want:   "info",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := determineLogLevel(&tt.config); got != tt.want {
				t.Errorf("determineLogLevel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateLogLevel(t *testing.T) {
	for _, level := range []string{"trace", "debug", "info", "warn", "error"} {
		if got := validateLogLevel(level); got != level {
			t.Errorf("validateLogLevel(%q) = %q", level, got)
		}
	}
	if got := validateLogLevel("nope"); got != "info" {
		t.Errorf("validateLogLevel(nope) = %q, want info", got)
	}
}
