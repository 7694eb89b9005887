package logger_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fmtpin/internal/adapters/logger"
	"go.trai.ch/zerr"
)

func TestLogger_JSONGolden(t *testing.T) {
	tests := []struct {
		name       string
		log        func(l *logger.Logger)
		goldenName string
	}{
		{
			name:       "info",
			log:        func(l *logger.Logger) { l.Info("/p/.fmtpin.conf: parsed config for engine 3.7.15") },
			goldenName: "json_info",
		},
		{
			name: "download chain",
			log: func(l *logger.Logger) {
				inner := zerr.With(zerr.New("checksum mismatch"), "artifact", "engine.wasm")
				l.Error(zerr.With(zerr.Wrap(inner, "failed to download engine release"), "version", "3.7.15"))
			},
			goldenName: "json_error_chain",
		},
		{
			name:       "plain error",
			log:        func(l *logger.Logger) { l.Error(errors.New("engine is closed")) },
			goldenName: "json_error_plain",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l, err := logger.New(&buf, "debug", logger.FormatJSON)
			require.NoError(t, err)

			tt.log(l)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}
