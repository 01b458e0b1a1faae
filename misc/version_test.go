package misc

import "testing"

func TestGetAppName(t *testing.T) {
	if got := GetAppName(); got != "fracbin" {
		t.Errorf("GetAppName() = %q, want %q", got, "fracbin")
	}
}

func TestGetVersion(t *testing.T) {
	if GetVersion() == "" {
		t.Error("GetVersion() returned empty string")
	}
}

func TestGetGitHash(t *testing.T) {
	if GetGitHash() == "" {
		t.Error("GetGitHash() returned empty string")
	}
}
