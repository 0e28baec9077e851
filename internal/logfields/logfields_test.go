package logfields

import (
	"log/slog"
	"strings"
	"testing"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"RunID", KeyRunID, "7f1c", RunID("7f1c")},
		{"Profile", KeyProfile, "gl4", Profile("gl4")},
		{"Function", KeyFunction, "BindBuffer", Function("BindBuffer")},
		{"File", KeyFile, "glBindBuffer.xml", File("glBindBuffer.xml")},
		{"Path", KeyPath, "/tmp/x", Path("/tmp/x")},
		{"Stage", KeyStage, "normalize", Stage("normalize")},
		{"Token", KeyToken, "GL_FOO", Token("GL_FOO")},
	}

	for _, tc := range cases {
		if tc.attr.Key != tc.attrKey {
			// Key drift would break log ingestion schemas.
			t.Fatalf("%s: expected key %s, got %s", tc.name, tc.attrKey, tc.attr.Key)
		}
		if got := tc.attr.Value.String(); got != tc.attrVal {
			t.Fatalf("%s: expected value %s, got %v", tc.name, tc.attrVal, got)
		}
	}
}

// TestNumericHelpers verifies keys for numeric & float helpers.
func TestNumericHelpers(t *testing.T) {
	if v := Count(5); v.Key != KeyCount {
		t.Fatalf("Count key mismatch: %s", v.Key)
	}
	if v := DurationMS(12.5); v.Key != KeyDurationMS {
		t.Fatalf("DurationMS key mismatch: %s", v.Key)
	}
	if v := Offset(3); v.Key != KeyOffset || v.Value.Int64() != 3 {
		t.Fatalf("Offset mismatch: %v", v)
	}
}

// TestErrorHelper ensures Error() handles nil and non-nil errors predictably.
func TestErrorHelper(t *testing.T) {
	attr := Error(nil)
	if attr.Key != KeyError {
		t.Fatalf("Error key mismatch: %s", attr.Key)
	}
	if attr.Value.String() != "" {
		t.Fatalf("Expected empty error string, got %s", attr.Value.String())
	}
	attr = Error(errTest{})
	if attr.Value.String() != "err-test" {
		t.Fatalf("Expected 'err-test', got %s", attr.Value.String())
	}
}

func TestDumpTruncates(t *testing.T) {
	short := Dump("<refentry/>")
	if short.Value.String() != "<refentry/>" {
		t.Fatalf("short dump altered: %s", short.Value.String())
	}
	long := Dump(strings.Repeat("a", maxDump+10))
	if !strings.HasSuffix(long.Value.String(), "(truncated)") {
		t.Fatal("expected truncation marker")
	}
}

type errTest struct{}

func (e errTest) Error() string { return "err-test" }
