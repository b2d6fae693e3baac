package slog_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/fwojciec/diraudit"
	"github.com/fwojciec/diraudit/mock"
	dslog "github.com/fwojciec/diraudit/slog"
	"github.com/stretchr/testify/assert"
)

func TestLoggingRegistry_ExtractProfile(t *testing.T) {
	t.Parallel()

	t.Run("logs extracted field count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		want := &diraudit.RawProfile{Name: "Jane Doe", Phone: "512-555-0100", HasPhoto: true}
		inner := &mock.ExtractorRegistry{
			ExtractProfileFn: func(string, diraudit.Page, string) *diraudit.RawProfile { return want },
		}

		got := dslog.NewLoggingRegistry(inner, logger).ExtractProfile("vitals.com", &mock.Page{}, "https://vitals.com/x")

		assert.Same(t, want, got)
		output := buf.String()
		assert.Contains(t, output, "msg=extract")
		assert.Contains(t, output, "directory=vitals.com")
		assert.Contains(t, output, "fields=3")
	})

	t.Run("warns on failed extraction", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.ExtractorRegistry{
			ExtractProfileFn: func(string, diraudit.Page, string) *diraudit.RawProfile {
				return &diraudit.RawProfile{Error: "extraction panic: boom"}
			},
		}

		dslog.NewLoggingRegistry(inner, logger).ExtractProfile("vitals.com", &mock.Page{}, "https://vitals.com/x")

		output := buf.String()
		assert.Contains(t, output, "level=WARN")
		assert.Contains(t, output, "extraction failed")
		assert.Contains(t, output, "boom")
	})
}

func TestLoggingRegistry_Delegates(t *testing.T) {
	t.Parallel()

	t.Run("delegates lookups and registration", func(t *testing.T) {
		t.Parallel()

		extractor := &mock.ProfileExtractor{}
		var registered string
		inner := &mock.ExtractorRegistry{
			ExtractorFn:   func(string) diraudit.ProfileExtractor { return extractor },
			RegisterFn:    func(id string, _ diraudit.NewExtractorFunc) { registered = id },
			DirectoriesFn: func() []string { return []string{"vitals.com"} },
		}

		registry := dslog.NewLoggingRegistry(inner, slog.New(slog.DiscardHandler))
		registry.Register("webmd.com", nil)

		assert.Same(t, extractor, registry.Extractor("vitals.com"))
		assert.Equal(t, "webmd.com", registered)
		assert.Equal(t, []string{"vitals.com"}, registry.Directories())
	})
}
