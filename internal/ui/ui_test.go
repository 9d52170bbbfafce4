package ui

import (
	"bytes"
	"testing"
)

func TestWarn(t *testing.T) {
	var buf bytes.Buffer
	SetWriter(&buf)
	defer SetWriter(nil)
	SetColorEnabled(false)

	Warn("credentials file not writable")

	if got := buf.String(); got != "Warning: credentials file not writable\n" {
		t.Errorf("Warn output = %q", got)
	}
}

func TestWarnf(t *testing.T) {
	var buf bytes.Buffer
	SetWriter(&buf)
	defer SetWriter(nil)
	SetColorEnabled(false)

	Warnf("ignoring %q: %s", "PORT", "not a number")

	want := "Warning: ignoring \"PORT\": not a number\n"
	if got := buf.String(); got != want {
		t.Errorf("Warnf output = %q, want %q", got, want)
	}
}

func TestError(t *testing.T) {
	var buf bytes.Buffer
	SetWriter(&buf)
	defer SetWriter(nil)
	SetColorEnabled(false)

	Error("authorization failed")

	if got := buf.String(); got != "Error: authorization failed\n" {
		t.Errorf("Error output = %q", got)
	}
}

func TestErrorf(t *testing.T) {
	var buf bytes.Buffer
	SetWriter(&buf)
	defer SetWriter(nil)
	SetColorEnabled(false)

	Errorf("exchange failed: %s", "timeout")

	want := "Error: exchange failed: timeout\n"
	if got := buf.String(); got != want {
		t.Errorf("Errorf output = %q, want %q", got, want)
	}
}

func TestInfo(t *testing.T) {
	var buf bytes.Buffer
	SetWriter(&buf)
	defer SetWriter(nil)

	Info("waiting for authorization")
	Infof("listening on port %d", 8080)

	want := "waiting for authorization\nlistening on port 8080\n"
	if got := buf.String(); got != want {
		t.Errorf("Info output = %q, want %q", got, want)
	}
}

func TestColorToggle(t *testing.T) {
	SetColorEnabled(true)
	if got := Green("ok"); got != "\033[32mok\033[0m" {
		t.Errorf("colored Green = %q", got)
	}
	if got := OKTag(); got != "\033[32m✓\033[0m" {
		t.Errorf("colored OKTag = %q", got)
	}

	SetColorEnabled(false)
	if got := Green("ok"); got != "ok" {
		t.Errorf("plain Green = %q", got)
	}
	if got := FailTag(); got != "✗" {
		t.Errorf("plain FailTag = %q", got)
	}
	if got := WarnTag(); got != "⚠" {
		t.Errorf("plain WarnTag = %q", got)
	}
}
