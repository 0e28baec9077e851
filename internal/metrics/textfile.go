package metrics

import (
	"fmt"

	prom "github.com/prometheus/client_golang/prometheus"
)

// WriteTextfile writes every metric gathered from g to path in the
// Prometheus text exposition format, for pickup by a textfile collector.
// An empty path is a no-op.
func WriteTextfile(path string, g prom.Gatherer) error {
	if path == "" {
		return nil
	}
	if err := prom.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("write metrics textfile %s: %w", path, err)
	}
	return nil
}
