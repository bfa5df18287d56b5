package query

import (
	"context"
	"strings"

	"github.com/tair/nutribakery/internal/order/usecase/command"
)

// CustomIDWidth is the suffix width of IDs handed out by the custom-id endpoint
const CustomIDWidth = 6

// NextIDHandler previews the next free order ID for a prefix without reserving it
type NextIDHandler struct {
	ids *command.IDAllocator
}

func NewNextIDHandler(ids *command.IDAllocator) *NextIDHandler {
	return &NextIDHandler{ids: ids}
}

func (h *NextIDHandler) Handle(ctx context.Context, prefix string) (string, error) {
	return h.ids.Next(ctx, command.IDFormat{Prefix: strings.TrimSpace(prefix), Width: CustomIDWidth})
}
