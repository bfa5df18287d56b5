// Package sequence allocates human readable display IDs such as NBP_001 and NBU_012.
package sequence

import (
	"context"
	"fmt"
	"strings"

	"github.com/tair/nutribakery/internal/sequence/domain"
	"github.com/tair/nutribakery/pkg/apperr"
	"github.com/tair/nutribakery/pkg/logger"
)

// Generator is the only component that hands out prefixed display IDs
type Generator struct {
	repo domain.CounterRepository
}

func NewGenerator(repo domain.CounterRepository) *Generator {
	return &Generator{repo: repo}
}

// Allocate returns the next "{prefix}_NNN" identifier. Values above 999 keep growing in width.
func (g *Generator) Allocate(ctx context.Context, prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", apperr.Validation("prefix is required")
	}

	value, err := g.repo.Increment(ctx, prefix)
	if err != nil {
		logger.Error(ctx).Err(err).Str("prefix", prefix).Msg("Failed to allocate display ID")
		if apperr.KindOf(err) == apperr.KindUnknown {
			err = apperr.Storage("error generating unique ID", err)
		}
		return "", err
	}

	return Format(prefix, value), nil
}

// Format renders a counter value with at least three digits
func Format(prefix string, value int64) string {
	return fmt.Sprintf("%s_%03d", prefix, value)
}
