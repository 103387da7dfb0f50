package misc

import "testing"

func TestGetAppName(t *testing.T) {
	if name := GetAppName(); name == "" {
		t.Error("GetAppName() returned empty name")
	}
}

func TestGetVersion(t *testing.T) {
	if v := GetVersion(); v == "" {
		t.Error("GetVersion() returned empty version")
	}
}

func TestGetGitHash(t *testing.T) {
	if h := GetGitHash(); h == "" {
		t.Error("GetGitHash() returned empty hash")
	}
	if h := GetGitHash(); len(h) > 12 {
		t.Errorf("GetGitHash() = %q, expected at most 12 characters", h)
	}
}
