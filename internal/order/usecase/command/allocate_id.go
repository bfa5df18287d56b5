package command

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/tair/nutribakery/internal/order/domain"
	"github.com/tair/nutribakery/pkg/apperr"
	"github.com/tair/nutribakery/pkg/logger"
)

const DefaultMaxAttempts = 5

// IDFormat is the prefix and zero padded suffix width of an order ID
type IDFormat struct {
	Prefix string
	Width  int
}

// CheckoutIDFormat produces NBO00001 style IDs
var CheckoutIDFormat = IDFormat{Prefix: "NBO", Width: 5}

func (f IDFormat) Format(n int) string {
	return fmt.Sprintf("%s%0*d", f.Prefix, f.Width, n)
}

// IDAllocator derives the next order ID from the highest existing one and checks for collisions.
// It is not atomic: a concurrent insert can still take the returned ID, which the unique
// index on order_id rejects.
type IDAllocator struct {
	repo        domain.OrderRepository
	maxAttempts int
}

func NewIDAllocator(repo domain.OrderRepository) *IDAllocator {
	return &IDAllocator{repo: repo, maxAttempts: DefaultMaxAttempts}
}

// Next returns an order ID not present when checked
func (a *IDAllocator) Next(ctx context.Context, f IDFormat) (string, error) {
	if f.Prefix == "" {
		return "", apperr.Validation("Prefix is required.")
	}

	floor := 0
	for attempt := 1; attempt <= a.maxAttempts; attempt++ {
		highest, err := a.repo.FindHighestOrderID(ctx, f.Prefix)
		if err != nil {
			return "", fmt.Errorf("failed to read latest order: %w", err)
		}

		next := suffix(highest, f.Prefix) + 1
		if next <= floor {
			next = floor + 1
		}
		candidate := f.Format(next)

		exists, err := a.repo.ExistsByOrderID(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check order id: %w", err)
		}
		if !exists {
			return candidate, nil
		}

		logger.Debug(ctx).
			Str("order_id", candidate).
			Int("attempt", attempt).
			Msg("Order ID already taken, recomputing")
		floor = next
	}
	return "", apperr.Conflict("failed to generate a unique order ID", nil)
}

// suffix parses the numeric part after prefix; anything unparsable counts as 0
func suffix(orderID, prefix string) int {
	if orderID == "" {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimPrefix(orderID, prefix))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
