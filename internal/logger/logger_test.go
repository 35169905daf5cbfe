package logger_test

import (
	"bytes"
	"strings"
	"testing"

	"go.btindex/internal/logger"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(&buf, logger.WARN)

	log.Debugf("debug %d", 1)
	log.Infof("info %d", 2)
	log.Warnf("warn %d", 3)
	log.Errorf("error %d", 4)

	out := buf.String()
	if strings.Contains(out, "debug 1") || strings.Contains(out, "info 2") {
		t.Fatalf("Expected DEBUG and INFO to be dropped, got %q", out)
	}

	if !strings.Contains(out, "WARN warn 3") || !strings.Contains(out, "ERROR error 4") {
		t.Fatalf("Expected WARN and ERROR lines, got %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	level, err := logger.ParseLevel(" debug ")
	if err != nil {
		t.Fatal(err)
	}
	if level != logger.DEBUG {
		t.Fatalf("Expected DEBUG, got %s", level)
	}

	if _, err := logger.ParseLevel("verbose"); err == nil {
		t.Fatalf("Expected an error for an unknown level")
	}
}

func TestDiscard(t *testing.T) {
	// Must not panic even at ERROR
	logger.Discard().Errorf("dropped %s", "message")
}
