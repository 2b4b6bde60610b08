package domain

import "strings"

// ProviderUsage aggregates request counters for a single provider.
type ProviderUsage struct {
	RequestCount     uint64  `json:"request_count"`
	PromptTokens     uint64  `json:"prompt_tokens"`
	CompletionTokens uint64  `json:"completion_tokens"`
	TotalCost        float64 `json:"total_cost"`
}

// UsageStats mirrors usage.json.
type UsageStats struct {
	TotalRequests         uint64                   `json:"total_requests"`
	TotalPromptTokens     uint64                   `json:"total_prompt_tokens"`
	TotalCompletionTokens uint64                   `json:"total_completion_tokens"`
	TotalCost             float64                  `json:"total_cost"`
	ByProvider            map[string]ProviderUsage `json:"by_provider"`
	CacheHits             uint64                   `json:"cache_hits"`
	CacheMisses           uint64                   `json:"cache_misses"`
}

// NewUsageStats returns zeroed statistics.
func NewUsageStats() UsageStats {
	return UsageStats{ByProvider: map[string]ProviderUsage{}}
}

// RecordRequest adds one request and its token cost.
func (u *UsageStats) RecordRequest(provider string, promptTokens, completionTokens uint64, promptCost, completionCost float64) {
	cost := float64(promptTokens)*promptCost + float64(completionTokens)*completionCost

	u.TotalRequests++
	u.TotalPromptTokens += promptTokens
	u.TotalCompletionTokens += completionTokens
	u.TotalCost += cost

	if u.ByProvider == nil {
		u.ByProvider = map[string]ProviderUsage{}
	}
	p := u.ByProvider[provider]
	p.RequestCount++
	p.PromptTokens += promptTokens
	p.CompletionTokens += completionTokens
	p.TotalCost += cost
	u.ByProvider[provider] = p
}

func (u *UsageStats) RecordCacheHit()  { u.CacheHits++ }
func (u *UsageStats) RecordCacheMiss() { u.CacheMisses++ }

// CacheHitRate is hits / (hits + misses), zero when nothing was looked up.
func (u UsageStats) CacheHitRate() float64 {
	total := u.CacheHits + u.CacheMisses
	if total == 0 {
		return 0
	}
	return float64(u.CacheHits) / float64(total)
}

// AverageCostPerRequest is zero before the first request.
func (u UsageStats) AverageCostPerRequest() float64 {
	if u.TotalRequests == 0 {
		return 0
	}
	return u.TotalCost / float64(u.TotalRequests)
}

// ModelCosts returns (prompt, completion) cost per token in USD.
func ModelCosts(provider, model string) (float64, float64) {
	switch ParseProviderKind(provider) {
	case ProviderOpenAI:
		switch model {
		case "gpt-4o":
			return 0.0000025, 0.00001
		case "gpt-4o-mini":
			return 0.00000015, 0.0000006
		case "o1-mini":
			return 0.000011, 0.000044
		}
	case ProviderAnthropic:
		switch {
		case strings.HasPrefix(model, "claude-3-5-sonnet"):
			return 0.000003, 0.000015
		case strings.HasPrefix(model, "claude-3-5-haiku"):
			return 0.0000008, 0.000004
		}
	}
	return 0, 0
}
