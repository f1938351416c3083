package gologger

import (
	"context"
	"testing"

	glog "github.com/goliatone/go-logger/glog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VantageDataChat/godeck/internal/logging"
)

func TestNewProviderCreatesLogger(t *testing.T) {
	p, err := NewProvider(Config{Level: "debug", Format: "console"})
	require.NoError(t, err)

	logger := logging.ModuleLogger(p, logging.QualityModule)
	require.NotNil(t, logger)
	logging.WithFile(logger, "deck.pptx", 2).Debug("verify.start")
}

func TestNewProviderRejectsUnknownFormat(t *testing.T) {
	_, err := NewProvider(Config{Format: "xml"})
	assert.Error(t, err)
}

func TestNilProviderReturnsNoOp(t *testing.T) {
	var p *Provider
	assert.Equal(t, logging.NoOp(), p.GetLogger("x"))
}

func TestAdapterDelegatesToUnderlyingLogger(t *testing.T) {
	stub := &stubLogger{}
	adapted := wrap(stub)

	adapted.Trace("trace", "key", "value")
	adapted.Debug("debug")
	adapted.Info("info")
	adapted.Warn("warn")
	adapted.Error("error")
	adapted.Fatal("fatal")
	assert.Equal(t, []string{"trace", "debug", "info", "warn", "error", "fatal"}, stub.calls)

	fields := map[string]any{"module": "godeck.merge"}
	child := logging.WithFields(adapted, fields)
	require.NotNil(t, child)
	fields["module"] = "changed"
	require.Len(t, stub.fields, 1)
	assert.Equal(t, "godeck.merge", stub.fields[0]["module"])

	ctx := context.WithValue(context.Background(), struct{}{}, "value")
	adapted.WithContext(ctx)
	require.Len(t, stub.contexts, 1)
	assert.Equal(t, ctx, stub.contexts[0])
}

func TestNormalizeLevel(t *testing.T) {
	assert.Equal(t, glog.Warn, normalizeLevel(" WARNING "))
	assert.Equal(t, "", normalizeLevel("verbose"))
	assert.Equal(t, []string{"a", "b"}, normalizeFocus([]string{" a", "", "b "}))
}

type stubLogger struct {
	calls    []string
	fields   []map[string]any
	contexts []context.Context
}

var _ glog.Logger = (*stubLogger)(nil)
var _ glog.FieldsLogger = (*stubLogger)(nil)

func (s *stubLogger) Trace(string, ...any) { s.calls = append(s.calls, "trace") }
func (s *stubLogger) Debug(string, ...any) { s.calls = append(s.calls, "debug") }
func (s *stubLogger) Info(string, ...any)  { s.calls = append(s.calls, "info") }
func (s *stubLogger) Warn(string, ...any)  { s.calls = append(s.calls, "warn") }
func (s *stubLogger) Error(string, ...any) { s.calls = append(s.calls, "error") }
func (s *stubLogger) Fatal(string, ...any) { s.calls = append(s.calls, "fatal") }

func (s *stubLogger) WithContext(ctx context.Context) glog.Logger {
	s.contexts = append(s.contexts, ctx)
	return s
}

func (s *stubLogger) WithFields(fields map[string]any) glog.Logger {
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	s.fields = append(s.fields, copied)
	return s
}
