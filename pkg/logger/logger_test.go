package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		" warn ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestInit_OnceUntilReset(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var first, second bytes.Buffer
	Init(Options{Level: "info", Service: "resume-api", Output: &first})
	Init(Options{Level: "debug", Output: &second})

	cacheLog := Component("cache")
	cacheLog.Info().Msg("hello")
	rootLog := Get()
	rootLog.Debug().Msg("dropped")

	if second.Len() != 0 {
		t.Fatalf("second Init must not replace the logger")
	}

	var line map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(first.Bytes()), &line); err != nil {
		t.Fatalf("expected exactly one JSON line, got %q: %v", first.String(), err)
	}
	if line["service"] != "resume-api" || line["component"] != "cache" || line["message"] != "hello" {
		t.Fatalf("unexpected fields: %v", line)
	}
}

func TestGet_BeforeInitIsDisabled(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if Get().GetLevel() != zerolog.Disabled {
		t.Fatalf("expected a disabled logger before Init")
	}
}
