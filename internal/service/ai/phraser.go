package ai

import (
	"context"
	"fmt"
	"log"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"github.com/wellchemy/wellchemy/backend/internal/config"
)

// Service phrases survey questions through the configured chat model. It is
// a pure text collaborator: the engine supplies the system instructions and
// the question, and falls back to the direct question when this fails.
type Service struct {
	chatModel model.ChatModel
	chain     compose.Runnable[map[string]any, *schema.Message]
}

// NewService compiles the phrasing chain against the configured model.
func NewService(ctx context.Context, cfg config.AIConfig) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile phrasing chain: %w", err)
	}

	return &Service{chatModel: chatModel, chain: runnable}, nil
}

// Phrase runs the system instructions and question through the chain and
// returns the generated wording.
func (s *Service) Phrase(ctx context.Context, system, query string) (string, error) {
	response, err := s.chain.Invoke(ctx, map[string]any{
		"system": system,
		"query":  query,
	})
	if err != nil {
		return "", fmt.Errorf("failed to run phrasing chain: %w", err)
	}

	log.Printf("[ai] phrased question, length=%d", len(response.Content))
	return response.Content, nil
}
