package cmd

import (
	"os"

	"github.com/spf13/viper"

	"github.com/joescharf/issueboard/internal/llm"
)

// newLLMClient returns the triage client, or nil when no Anthropic key is set.
// The key comes from anthropic.api_key (ISSUEBOARD_ANTHROPIC_API_KEY) and
// falls back to ANTHROPIC_API_KEY.
func newLLMClient() *llm.Client {
	apiKey := viper.GetString("anthropic.api_key")
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		return nil
	}
	return llm.NewClient(apiKey, viper.GetString("anthropic.model"))
}
