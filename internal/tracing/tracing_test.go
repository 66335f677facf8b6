package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/donaldgifford/bokdeok/internal/config"
)

func TestSetup_Disabled(t *testing.T) {
	t.Parallel()

	shutdown, err := Setup(context.Background(), config.TracingConfig{}, "bokdeok", "test")
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestNewProvider(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		ratio     float64
		wantSpans int
	}{
		{name: "always sample", ratio: 1, wantSpans: 1},
		{name: "never sample", ratio: 0, wantSpans: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			exp := tracetest.NewInMemoryExporter()
			tp := NewProvider(exp, tt.ratio, "bokdeok", "v1.2.3")

			_, span := tp.Tracer("test").Start(ctx, "login")
			span.End()

			require.NoError(t, tp.ForceFlush(ctx))
			spans := exp.GetSpans()
			require.Len(t, spans, tt.wantSpans)

			if tt.wantSpans > 0 {
				assert.Equal(t, "login", spans[0].Name)
				attrs := spans[0].Resource.Attributes()
				assert.Contains(t, attrs, attribute.String("service.name", "bokdeok"))
				assert.Contains(t, attrs, attribute.String("service.version", "v1.2.3"))
			}

			require.NoError(t, tp.Shutdown(ctx))
		})
	}
}
