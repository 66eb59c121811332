package service

import "context"

// AIService is a text-generation backend: one prompt in, one reply out.
type AIService interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
