package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.IncLookup("gl4", LookupResolved)
	pr.IncLookup("gl4", LookupResolved)
	pr.IncLookup("gl4", LookupMissing)
	pr.IncResolveTier("gl4", 3)
	pr.IncEquation(EquationComment)
	pr.ObserveDocumentDuration(3 * time.Millisecond)
	pr.SetIndexSize("gl4", 17)

	if got := testutil.ToFloat64(pr.lookups.WithLabelValues("gl4", string(LookupResolved))); got != 2 {
		t.Fatalf("resolved lookups = %v, want 2", got)
	}
	if got := testutil.ToFloat64(pr.resolveTiers.WithLabelValues("gl4", "3")); got != 1 {
		t.Fatalf("tier 3 count = %v, want 1", got)
	}
	if got := testutil.ToFloat64(pr.indexSize.WithLabelValues("gl4")); got != 17 {
		t.Fatalf("index size = %v, want 17", got)
	}

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(mfs) == 0 {
		t.Fatalf("expected metrics, got none")
	}
}

func TestNilPrometheusRecorderIsSafe(t *testing.T) {
	var pr *PrometheusRecorder
	pr.IncLookup("gl4", LookupCacheHit)
	pr.IncEquation(EquationDropped)
	pr.ObserveDocumentDuration(time.Millisecond)
}

func TestWriteTextfile(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.IncEquation(EquationFragment)

	path := filepath.Join(t.TempDir(), "docbind.prom")
	if err := WriteTextfile(path, reg); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}
	if !strings.Contains(string(data), `docbind_equations_total{outcome="fragment"} 1`) {
		t.Fatalf("textfile missing equation counter:\n%s", data)
	}

	if err := WriteTextfile("", reg); err != nil {
		t.Fatalf("empty path should be a no-op, got %v", err)
	}
}
