// Package metrics provides observability hooks for the documentation pipeline.
//
// Components receive a Recorder through their options and default to
// NoopRecorder, so no nil checks are needed at call sites:
//
//	ctx, err := docs.NewContext(docs.ContextOptions{
//	    Recorder: metrics.NewPrometheusRecorder(registry),
//	})
//
// docbind is a batch tool, so there is no HTTP exposition endpoint. When a
// metrics textfile is configured the CLI calls WriteTextfile once the run
// finishes.
package metrics
