package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewWithWriter(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf)

	log.Info().Str("entity", "transaction").Msg("created")

	out := buf.String()
	if !strings.Contains(out, `"message":"created"`) {
		t.Errorf("output %q does not carry the message", out)
	}
	if !strings.Contains(out, `"entity":"transaction"`) {
		t.Errorf("output %q does not carry the field", out)
	}
}

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf)

	ctx := WithContext(context.Background(), log)
	ctxLog := FromContext(ctx)
	ctxLog.Info().Msg("through the context")

	if !strings.Contains(buf.String(), "through the context") {
		t.Errorf("logger from context did not write, got %q", buf.String())
	}
}

func TestFromContextMissing(t *testing.T) {
	log := FromContext(context.Background())
	if log.GetLevel() != zerolog.Disabled {
		t.Errorf("want a disabled logger when none is attached, got level %v", log.GetLevel())
	}
}
