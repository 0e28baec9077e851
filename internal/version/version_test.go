package version

import "testing"

func TestVersion(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}

	// Default value should be "unknown" until set by build
	if Version != "unknown" {
		// In tests, version should be "unknown" unless explicitly set via ldflags
		t.Logf("Version is: %s (expected 'unknown' or version set via ldflags)", Version)
	}
}

func TestBuildInfo(t *testing.T) {
	// Build info variables should exist (even if set to "unknown")
	if BuildTime == "" {
		t.Error("BuildTime should be initialized")
	}

	if GitCommit == "" {
		t.Error("GitCommit should be initialized")
	}
}

func TestString(t *testing.T) {
	saved := [3]string{Version, GitCommit, BuildTime}
	t.Cleanup(func() { Version, GitCommit, BuildTime = saved[0], saved[1], saved[2] })

	Version, GitCommit, BuildTime = "v1.0.0", "unknown", "unknown"
	if got := String(); got != "v1.0.0" {
		t.Errorf("String() = %q, want v1.0.0", got)
	}

	GitCommit, BuildTime = "abc123", "2026-01-02"
	if got, want := String(), "v1.0.0 (commit abc123, built 2026-01-02)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
