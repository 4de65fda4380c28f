package logger_test

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Gunvolt24/order_queue/pkg/ctxmeta"
	"github.com/Gunvolt24/order_queue/pkg/logger"
)

func TestZapLogger_AddsRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := logger.FromZap(zap.New(core))

	ctx := ctxmeta.WithRequestID(context.Background(), "req-42")
	log.Infof(ctx, "order created id=%d", 7)
	log.Warnf(context.Background(), "queue full")

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("want 2 entries, got %d", len(entries))
	}
	if entries[0].Message != "order created id=7" {
		t.Fatalf("unexpected message: %q", entries[0].Message)
	}
	if got := entries[0].ContextMap()["request_id"]; got != "req-42" {
		t.Fatalf("request_id field = %v", got)
	}
	if _, ok := entries[1].ContextMap()["request_id"]; ok {
		t.Fatalf("request_id must be absent without ctx value")
	}
	if entries[1].Level != zapcore.WarnLevel {
		t.Fatalf("want warn level, got %v", entries[1].Level)
	}
}

func TestNewZapLogger_Level(t *testing.T) {
	log, cleanup, err := logger.NewZapLogger(logger.Options{IsProd: true, Level: "error"})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	defer func() { _ = cleanup() }()

	if log.Base().Core().Enabled(zapcore.WarnLevel) {
		t.Fatalf("warn must be disabled at error level")
	}

	if _, _, err := logger.NewZapLogger(logger.Options{Level: "loud"}); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
