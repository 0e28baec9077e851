package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", "docbind.yaml").
			Build()

		if err.Category() != CategoryConfig {
			t.Errorf("expected category %s, got %s", CategoryConfig, err.Category())
		}
		if err.Severity() != SeverityFatal {
			t.Errorf("expected severity %s, got %s", SeverityFatal, err.Severity())
		}
		if err.Message() != "invalid configuration" {
			t.Errorf("expected message 'invalid configuration', got %s", err.Message())
		}

		file, exists := err.Context().GetString("file")
		if !exists || file != "docbind.yaml" {
			t.Errorf("expected context file=docbind.yaml, got %v", file)
		}
	})

	t.Run("Error detection through wrapping", func(t *testing.T) {
		base := ConfigError("test error").Build()
		wrapped := fmt.Errorf("loading profile: %w", base)

		if !IsClassified(wrapped) {
			t.Error("expected wrapped error to be classified")
		}
		if !HasCategory(wrapped, CategoryConfig) {
			t.Error("expected error to have config category")
		}
		if !base.IsFatal() {
			t.Error("expected config error to be fatal")
		}
		if GetCategory(errors.New("plain")) != CategoryInternal {
			t.Error("expected plain errors to be internal")
		}
	})

	t.Run("WithContext copies", func(t *testing.T) {
		base := DocsError("parse failed").Build()
		extended := base.WithContext("path", "/docs/glFoo.xml")

		if _, ok := base.Context().Get("path"); ok {
			t.Error("WithContext must not mutate the receiver")
		}
		if p, _ := extended.Context().GetString("path"); p != "/docs/glFoo.xml" {
			t.Errorf("expected path context, got %q", p)
		}
	})
}

func TestErrorBuilder(t *testing.T) {
	t.Run("Fluent API", func(t *testing.T) {
		originalErr := errors.New("permission denied")
		err := WrapError(originalErr, CategoryFileSystem, "documentation directory unreadable").
			Warning().
			WithContext("path", "/docs").
			Build()

		if err.Severity() != SeverityWarning {
			t.Errorf("expected severity %s, got %s", SeverityWarning, err.Severity())
		}
		if !errors.Is(err, originalErr) {
			t.Error("expected error to wrap original error")
		}

		attrs := err.LogAttrs()
		if len(attrs) != 2 || attrs[0].Key != "category" || attrs[1].Key != "path" {
			t.Errorf("unexpected log attrs: %v", attrs)
		}
	})

	t.Run("Convenience constructors", func(t *testing.T) {
		tests := []struct {
			name     string
			builder  *ErrorBuilder
			category ErrorCategory
			severity ErrorSeverity
		}{
			{"ConfigError", ConfigError("test"), CategoryConfig, SeverityFatal},
			{"ValidationError", ValidationError("test"), CategoryValidation, SeverityFatal},
			{"NotFoundError", NotFoundError("test"), CategoryNotFound, SeverityError},
			{"FileSystemError", FileSystemError("test"), CategoryFileSystem, SeverityError},
			{"DocsError", DocsError("test"), CategoryDocs, SeverityError},
			{"OutputError", OutputError("test"), CategoryOutput, SeverityError},
			{"InternalError", InternalError("test"), CategoryInternal, SeverityFatal},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				err := tt.builder.Build()
				if err.Category() != tt.category {
					t.Errorf("expected category %s, got %s", tt.category, err.Category())
				}
				if err.Severity() != tt.severity {
					t.Errorf("expected severity %s, got %s", tt.severity, err.Severity())
				}
			})
		}
	})
}

func TestErrorContextMerge(t *testing.T) {
	ctx1 := ErrorContext{}.Set("key1", "value1").Set("shared", "original")
	ctx2 := ErrorContext{}.Set("key2", "value2").Set("shared", "overridden")

	merged := ctx1.Merge(ctx2)

	value1, _ := merged.GetString("key1")
	value2, _ := merged.GetString("key2")
	shared, _ := merged.GetString("shared")

	if value1 != "value1" || value2 != "value2" {
		t.Errorf("expected both keys, got %q %q", value1, value2)
	}
	if shared != "overridden" {
		t.Errorf("expected shared=overridden, got %s", shared)
	}
}
