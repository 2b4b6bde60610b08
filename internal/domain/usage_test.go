package domain_test

import (
	"math"
	"testing"

	"github.com/doeshing/shai-term/internal/domain"
)

func TestUsageStats_RecordRequest(t *testing.T) {
	stats := domain.NewUsageStats()
	stats.RecordRequest("openai", 100, 50, 0.0000025, 0.00001)
	stats.RecordRequest("ollama", 10, 5, 0, 0)

	if stats.TotalRequests != 2 {
		t.Fatalf("TotalRequests = %d, want 2", stats.TotalRequests)
	}
	if stats.TotalPromptTokens != 110 || stats.TotalCompletionTokens != 55 {
		t.Fatalf("token totals = %d/%d", stats.TotalPromptTokens, stats.TotalCompletionTokens)
	}
	want := 100*0.0000025 + 50*0.00001
	if math.Abs(stats.TotalCost-want) > 1e-12 {
		t.Fatalf("TotalCost = %v, want %v", stats.TotalCost, want)
	}
	if stats.ByProvider["openai"].RequestCount != 1 || stats.ByProvider["ollama"].TotalCost != 0 {
		t.Fatalf("per-provider stats wrong: %+v", stats.ByProvider)
	}
}

func TestUsageStats_CacheHitRate(t *testing.T) {
	var stats domain.UsageStats
	if stats.CacheHitRate() != 0 {
		t.Fatal("expected zero hit rate without lookups")
	}
	stats.RecordCacheHit()
	stats.RecordCacheHit()
	stats.RecordCacheMiss()

	if rate := stats.CacheHitRate(); math.Abs(rate-0.666) > 0.01 {
		t.Fatalf("CacheHitRate() = %v", rate)
	}
}

func TestModelCosts(t *testing.T) {
	prompt, completion := domain.ModelCosts("openai", "gpt-4o-mini")
	if prompt != 0.00000015 || completion != 0.0000006 {
		t.Fatalf("gpt-4o-mini costs = %v/%v", prompt, completion)
	}
	if p, c := domain.ModelCosts("groq", "llama3-70b-8192"); p != 0 || c != 0 {
		t.Fatalf("groq should be free, got %v/%v", p, c)
	}
}

func TestParseSeverity(t *testing.T) {
	if domain.ParseSeverity(" CRITICAL ") != domain.SeverityCritical {
		t.Fatal("expected critical")
	}
	if domain.ParseSeverity("catastrophic") != domain.SeverityLow {
		t.Fatal("unknown severity should map to low")
	}
}
