// Package agent runs the credibility analyst: an ADK agent around the Gemini
// model with domain lookup, news search, and fact check tools.
package agent

import (
	"context"
	"fmt"

	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/runner"
	"google.golang.org/adk/session"
	"google.golang.org/genai"

	"github.com/google/uuid"

	"truthscope_backend/internal/analysis/transport"
	"truthscope_backend/platform/ai/gemini"
	"truthscope_backend/platform/logger"
)

const appName = "credibility_analyst"

// Input is everything the analyst needs for one verdict: the content and the
// pre-gathered tool context.
type Input struct {
	URL           string
	Title         string
	Text          string
	DomainVerdict string
	SearchResults []transport.SearchResult
	FactChecks    []transport.FactCheckClaim
}

// Analyst wraps the ADK agent and runner for credibility analysis.
type Analyst struct {
	agent          agent.Agent
	runner         *runner.Runner
	sessionService session.Service
	log            *logger.Logger
}

// New builds the analyst agent around the given model.
func New(model *gemini.Model, deps *ToolDependencies, log *logger.Logger) (*Analyst, error) {
	tools, err := buildTools(deps)
	if err != nil {
		return nil, fmt.Errorf("build analyst tools: %w", err)
	}

	adkAgent, err := llmagent.New(llmagent.Config{
		Name:        "CredibilityAnalyst",
		Model:       model,
		Description: "Misinformation analyst that weighs curated domain verdicts, news coverage, and published fact checks to rate content credibility.",
		Instruction: systemPrompt(),
		Tools:       tools,
	})
	if err != nil {
		return nil, fmt.Errorf("create analyst agent: %w", err)
	}

	sessionService := session.InMemoryService()

	r, err := runner.New(runner.Config{
		AppName:        appName,
		Agent:          adkAgent,
		SessionService: sessionService,
	})
	if err != nil {
		return nil, fmt.Errorf("create analyst runner: %w", err)
	}

	return &Analyst{
		agent:          adkAgent,
		runner:         r,
		sessionService: sessionService,
		log:            log,
	}, nil
}

// Analyze runs the agent over one input and returns the decoded verdict.
func (a *Analyst) Analyze(ctx context.Context, input Input) (transport.ModelVerdict, error) {
	userID := "analyst"
	sessionID := uuid.New().String()

	if _, err := a.sessionService.Create(ctx, &session.CreateRequest{
		AppName:   appName,
		UserID:    userID,
		SessionID: sessionID,
	}); err != nil {
		return transport.ModelVerdict{}, fmt.Errorf("create analyst session: %w", err)
	}
	defer func() {
		deleteReq := &session.DeleteRequest{
			AppName:   appName,
			UserID:    userID,
			SessionID: sessionID,
		}
		if err := a.sessionService.Delete(context.WithoutCancel(ctx), deleteReq); err != nil {
			a.log.UpstreamError("adk", "session.delete", err)
		}
	}()

	message := &genai.Content{
		Role: "user",
		Parts: []*genai.Part{
			{Text: buildUserMessage(input)},
		},
	}

	output, err := a.run(ctx, userID, sessionID, message)
	if err != nil {
		return transport.ModelVerdict{}, err
	}
	return DecodeVerdict(output)
}

func (a *Analyst) run(ctx context.Context, userID, sessionID string, message *genai.Content) (string, error) {
	var output string
	runConfig := agent.RunConfig{
		StreamingMode: agent.StreamingModeNone,
	}

	for event, err := range a.runner.Run(ctx, userID, sessionID, message, runConfig) {
		if err != nil {
			return "", fmt.Errorf("analyst run failed: %w", err)
		}
		if event.Content != nil {
			for _, part := range event.Content.Parts {
				output += part.Text
			}
		}
	}

	return output, nil
}
