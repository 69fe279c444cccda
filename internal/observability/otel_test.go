package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mentorship-backend/internal/config"
	"mentorship-backend/internal/logger"
)

func TestParseHeaders(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want map[string]string
	}{
		{"empty", "", nil},
		{"single", "api-key=abc", map[string]string{"api-key": "abc"}},
		{"multiple with spaces", " a=1 , b=2", map[string]string{"a": "1", "b": "2"}},
		{"skips malformed", "a=1,broken,=x,c=", map[string]string{"a": "1"}},
		{"value keeps equals", "auth=Basic a=b", map[string]string{"auth": "Basic a=b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseHeaders(tt.raw))
		})
	}
}

func TestInitOTelDisabled(t *testing.T) {
	shutdown := InitOTel(context.Background(), logger.Nop(), config.OTelConfig{}, "test")
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}
