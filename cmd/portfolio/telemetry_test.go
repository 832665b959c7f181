package main

import (
	"bytes"
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"github.com/OgnjenAdzic28/portfolio/internal/blog"
	"github.com/OgnjenAdzic28/portfolio/internal/content"
)

func TestSetupTelemetryExportsResolves(t *testing.T) {
	prevTracer, prevMeter := otel.GetTracerProvider(), otel.GetMeterProvider()
	t.Cleanup(func() {
		otel.SetTracerProvider(prevTracer)
		otel.SetMeterProvider(prevMeter)
	})

	var buf bytes.Buffer
	shutdown, err := setupTelemetry(&buf)
	require.NoError(t, err)

	fsys := fstest.MapFS{
		"hello.mdoc": {Data: []byte("---\ntitle: Hello\npublishedDate: 2024-01-01\n---\nHi\n")},
	}
	r := blog.NewResolver(content.NewFileStore(fsys, ".", ".mdoc"), blog.WithFS(fsys, ".", ".mdoc"))
	_, ok := r.ResolvePost(context.Background(), "hello")
	require.True(t, ok)

	require.NoError(t, shutdown(context.Background()))
	out := buf.String()
	assert.Contains(t, out, "blog.ResolvePost")
	assert.Contains(t, out, "blog.strategy")
	assert.Contains(t, out, "blog.resolve.count")
}
