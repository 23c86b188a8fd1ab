package service

import (
	"context"
	"fmt"

	"quantumfinance/pkg/config"

	"github.com/Role1776/gigago"
	"go.uber.org/zap"
)

const advisorSystemInstruction = `You are a bank relationship advisor. You receive a customer's monthly
financial profile and the products a rule engine already selected for them, each with its
justification. Write a short, friendly paragraph (at most 120 words) explaining the suggestions.
Never add products that are not in the list, never change the numbers, and never promise returns.
If the list is empty, say that no product fits the profile right now and suggest reviewing it next month.`

// TextGenerator produces a completion for a single user prompt.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// LLMService is the GigaChat-backed TextGenerator.
type LLMService struct {
	client *gigago.Client
	model  *gigago.GenerativeModel
	logger *zap.Logger
}

func NewLLMService(cfg *config.GigaChatConfig, logger *zap.Logger) (*LLMService, error) {
	ctx := context.Background()

	opts := []gigago.Option{
		gigago.WithCustomScope(cfg.Scope),
	}
	if cfg.InsecureSkipVerify {
		opts = append(opts, gigago.WithCustomInsecureSkipVerify(true))
		logger.Warn("GigaChat TLS certificate verification is disabled")
	}

	client, err := gigago.NewClient(ctx, cfg.APIKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GigaChat client: %w", err)
	}

	model := client.GenerativeModel("GigaChat")
	model.SystemInstruction = advisorSystemInstruction
	model.Temperature = 0.2

	logger.Info("GigaChat advisor enabled")

	return &LLMService{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

func (s *LLMService) Generate(ctx context.Context, prompt string) (string, error) {
	messages := []gigago.Message{
		{Role: gigago.RoleUser, Content: prompt},
	}

	resp, err := s.model.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("failed to generate completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from LLM")
	}

	return resp.Choices[0].Message.Content, nil
}

func (s *LLMService) Close() error {
	if s.client != nil {
		s.client.Close()
	}
	return nil
}
