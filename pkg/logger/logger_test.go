package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestInitThenGet(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var buf bytes.Buffer
	Init(Options{Level: "debug", Output: &buf})

	log := Get()
	log.Info().Str("component", "test").Msg("hello")

	out := buf.String()
	if !strings.Contains(out, "hello") || !strings.Contains(out, "component") {
		t.Fatalf("expected structured output, got %q", out)
	}
}

func TestInit_OnlyFirstCallWins(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var first, second bytes.Buffer
	Init(Options{Output: &first})
	Init(Options{Output: &second})

	log := Get()
	log.Info().Msg("routed")

	if !strings.Contains(first.String(), "routed") {
		t.Fatalf("expected output on the first writer, got %q", first.String())
	}
	if second.Len() != 0 {
		t.Fatalf("second Init must have no effect, got %q", second.String())
	}
}

func TestGet_PanicsBeforeInit(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected Get to panic before Init")
		}
	}()
	Get()
}

func TestReset_AllowsReinit(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var first bytes.Buffer
	Init(Options{Output: &first})
	Reset()

	var second bytes.Buffer
	Init(Options{Output: &second})
	log := Get()
	log.Info().Msg("after reset")

	if !strings.Contains(second.String(), "after reset") {
		t.Fatalf("expected output on the rebuilt logger, got %q", second.String())
	}
}

func TestParseLevel_UnknownFallsBackToInfo(t *testing.T) {
	for _, s := range []string{"", "nonsense", "INFO"} {
		if lvl := parseLevel(s); lvl.String() != "info" {
			t.Fatalf("parseLevel(%q) = %s, expected info", s, lvl)
		}
	}
	if lvl := parseLevel("warn"); lvl.String() != "warn" {
		t.Fatalf("parseLevel(warn) = %s", lvl)
	}
}
