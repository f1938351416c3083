package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	fields []map[string]any
	infos  []string
}

func (r *recordingLogger) Trace(string, ...any)               {}
func (r *recordingLogger) Debug(string, ...any)               {}
func (r *recordingLogger) Info(msg string, _ ...any)          { r.infos = append(r.infos, msg) }
func (r *recordingLogger) Warn(string, ...any)                {}
func (r *recordingLogger) Error(string, ...any)               {}
func (r *recordingLogger) Fatal(string, ...any)               {}
func (r *recordingLogger) WithContext(context.Context) Logger { return r }

func (r *recordingLogger) WithFields(fields map[string]any) Logger {
	r.fields = append(r.fields, fields)
	return r
}

type recordingProvider struct {
	logger *recordingLogger
	names  []string
}

func (p *recordingProvider) GetLogger(name string) Logger {
	p.names = append(p.names, name)
	return p.logger
}

func TestModuleLoggerDefaultsToNoOp(t *testing.T) {
	logger := ModuleLogger(nil, QualityModule)
	require.NotNil(t, logger)
	assert.Equal(t, NoOp(), logger)
	logger.Info("dropped")
}

func TestModuleLoggerAttachesModuleField(t *testing.T) {
	provider := &recordingProvider{logger: &recordingLogger{}}

	ModuleLogger(provider, "")
	ModuleLogger(provider, OutlineModule)

	assert.Equal(t, []string{rootModule, OutlineModule}, provider.names)
	require.Len(t, provider.logger.fields, 2)
	assert.Equal(t, OutlineModule, provider.logger.fields[1]["module"])
}

func TestWithFileSkipsEmptyValues(t *testing.T) {
	rec := &recordingLogger{}

	WithFile(rec, "  ", 0)
	assert.Empty(t, rec.fields)

	WithFile(rec, "deck.pptx", 3)
	require.Len(t, rec.fields, 1)
	assert.Equal(t, map[string]any{"path": "deck.pptx", "slide": 3}, rec.fields[0])
}

func TestWithFieldsCopiesInput(t *testing.T) {
	rec := &recordingLogger{}
	fields := map[string]any{"k": "v"}
	WithFields(rec, fields)
	fields["k"] = "changed"
	assert.Equal(t, "v", rec.fields[0]["k"])
}

func TestEnsure(t *testing.T) {
	assert.Equal(t, NoOp(), Ensure(nil))
	rec := &recordingLogger{}
	assert.Same(t, rec, Ensure(rec))
}
