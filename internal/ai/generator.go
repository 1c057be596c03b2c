package ai

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
)

// Generator 文本生成能力的注入点。领域层只认这个接口，
// 不关心背后是真实服务还是测试桩。
type Generator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

var (
	genRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "ai_requests_total", Help: "Count of text generation calls"},
		[]string{"outcome"}, // ok / error
	)
	genFallbacks = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "ai_fallbacks_total", Help: "Count of calls served by static fallback"},
	)
)

func init() { prometheus.MustRegister(genRequests, genFallbacks) }

// GenerateOr 调一次生成，任何失败（超时、网络、空结果）都换成 fallback。
// AI 故障永远不能变成对外错误。
func GenerateOr(ctx context.Context, g Generator, system, prompt, fallback string) string {
	if g == nil {
		genFallbacks.Inc()
		return fallback
	}
	out, err := g.Generate(ctx, system, prompt)
	if err != nil || out == "" {
		genRequests.WithLabelValues("error").Inc()
		genFallbacks.Inc()
		return fallback
	}
	genRequests.WithLabelValues("ok").Inc()
	return out
}
