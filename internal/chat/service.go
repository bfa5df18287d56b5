package chat

import (
	"context"
	"errors"
	"strings"

	"github.com/tair/nutribakery/pkg/apperr"
	"github.com/tair/nutribakery/pkg/logger"
)

// Completer answers a single prompt
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Service proxies visitor questions to the model
type Service struct {
	completer Completer
}

func NewService(completer Completer) *Service {
	return &Service{completer: completer}
}

func (s *Service) Ask(ctx context.Context, query string) (*Reply, error) {
	if strings.TrimSpace(query) == "" {
		return nil, apperr.Validation("Query is required.")
	}

	reply, err := s.completer.Complete(ctx, query)
	if errors.Is(err, ErrMissingKey) {
		return nil, apperr.New(apperr.KindUnknown, ErrMissingKey.Error(), err)
	}
	if err != nil {
		logger.Error(ctx).Err(err).Msg("Chat completion failed")
		return nil, apperr.External("Error communicating with OpenAI.", err)
	}
	return &Reply{Reply: reply}, nil
}
