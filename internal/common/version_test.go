package common

import (
	"strings"
	"testing"
)

func TestGetVersion(t *testing.T) {
	if GetVersion() == "" {
		t.Error("GetVersion() returned empty string")
	}
}

func TestGetFullVersion(t *testing.T) {
	full := GetFullVersion()
	if !strings.Contains(full, GetVersion()) {
		t.Errorf("GetFullVersion() = %q, want it to contain %q", full, GetVersion())
	}
	if !strings.Contains(full, "build:") || !strings.Contains(full, "commit:") {
		t.Errorf("GetFullVersion() = %q, want build and commit info", full)
	}
}
