package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/Rutuja-Parab/policyzen/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestLogger(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Logger Suite")
}

var _ = Describe("Logger", func() {
	It("should write json lines when format is json", func() {
		var buf bytes.Buffer
		lg := logger.InitWithWriter(&buf, "info", "json")
		lg.Info("CreatePolicy: created", "policy_id", "p-1")

		var line map[string]any
		Expect(json.Unmarshal(buf.Bytes(), &line)).To(Succeed())
		Expect(line["msg"]).To(Equal("CreatePolicy: created"))
		Expect(line["policy_id"]).To(Equal("p-1"))
		Expect(line["service"]).To(Equal("policyzen"))
	})

	It("should drop records below the configured level", func() {
		var buf bytes.Buffer
		lg := logger.InitWithWriter(&buf, "warn", "text")
		lg.Info("ignored")
		Expect(buf.Len()).To(BeZero())
	})

	It("should parse levels leniently", func() {
		Expect(logger.ParseLevel("DEBUG")).To(Equal(slog.LevelDebug))
		Expect(logger.ParseLevel("warning")).To(Equal(slog.LevelWarn))
		Expect(logger.ParseLevel("nonsense")).To(Equal(slog.LevelInfo))
	})

	It("should carry request fields through the context", func() {
		var buf bytes.Buffer
		logger.InitWithWriter(&buf, "info", "json")
		ctx := logger.With(context.Background(), "traceID", "abc")
		logger.From(ctx).Info("hello")
		Expect(buf.String()).To(ContainSubstring(`"traceID":"abc"`))
	})
})
