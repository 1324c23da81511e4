package cli

import (
	"context"
	"fmt"

	advisorx "github.com/tanpawarit/Chative-College-Advisor/agent/agents/advisor"
	catalogx "github.com/tanpawarit/Chative-College-Advisor/agent/catalog"
	contractx "github.com/tanpawarit/Chative-College-Advisor/agent/contract"
	gatewayx "github.com/tanpawarit/Chative-College-Advisor/agent/gateway"
	llmx "github.com/tanpawarit/Chative-College-Advisor/agent/llm"
	promptx "github.com/tanpawarit/Chative-College-Advisor/agent/prompt"
	toolx "github.com/tanpawarit/Chative-College-Advisor/agent/tool"
	configx "github.com/tanpawarit/Chative-College-Advisor/pkg/config"
)

func loadLLMConfig() (*llmx.Config, error) {
	cfg, err := configx.New[llmx.Config]("OPENROUTER")
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildAdvisor wires the model gateway, the tool dispatcher and the turn
// graph. It fails before any session exists when the credential is missing.
func buildAdvisor(ctx context.Context, notifier contractx.Notifier) (*advisorx.Advisor, error) {
	llmCfg, err := loadLLMConfig()
	if err != nil {
		return nil, err
	}

	prompts := promptx.LoadPromptSet()
	if err := prompts.Validate(); err != nil {
		return nil, err
	}

	orCfg := llmCfg.OpenRouter()
	chatModel, err := orCfg.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: create advisor model: %v", contractx.ErrModelInvoke, err)
	}

	gw, err := gatewayx.New(ctx, chatModel, prompts.Advisor)
	if err != nil {
		return nil, err
	}

	dispatcher, err := toolx.NewDispatcher(catalogx.Default(), notifier)
	if err != nil {
		return nil, err
	}

	advCfg, err := configx.New[advisorx.Config]("ADVISOR")
	if err != nil {
		return nil, err
	}
	return advisorx.New(gw, dispatcher, *advCfg)
}

// channelNotifier forwards notices without ever blocking a turn.
func channelNotifier(ch chan<- contractx.ToolNotice) contractx.Notifier {
	return contractx.NotifierFunc(func(n contractx.ToolNotice) {
		select {
		case ch <- n:
		default:
		}
	})
}
