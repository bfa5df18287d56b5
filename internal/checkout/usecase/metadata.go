package usecase

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/tair/nutribakery/internal/checkout/domain"
	productdomain "github.com/tair/nutribakery/internal/product/domain"
	"github.com/tair/nutribakery/pkg/apperr"
)

// Stripe caps metadata at 50 keys with values of at most 500 characters
const (
	maxMetadataKeys  = 50
	maxMetadataValue = 500
	// user_id, total and items_parts take the other keys
	maxItemParts = maxMetadataKeys - 3
)

// metaItem keeps only what booking the order needs; name and price stay with the hosted line items
type metaItem struct {
	ProductID            productdomain.ProductID `json:"product_id"`
	Quantity             int                     `json:"quantity"`
	SubscriptionType     string                  `json:"subscription_type,omitempty"`
	CustomizationOptions map[string]interface{}  `json:"customization_options,omitempty"`
}

func itemPartKey(i int) string {
	if i == 0 {
		return domain.MetaItems
	}
	return fmt.Sprintf("%s_%d", domain.MetaItems, i)
}

// encodeItemsMetadata writes items into md as JSON split across items, items_1, ... on rune boundaries
func encodeItemsMetadata(items []domain.SessionItem, md map[string]string) error {
	compact := make([]metaItem, 0, len(items))
	for _, it := range items {
		compact = append(compact, metaItem{
			ProductID:            it.ProductID,
			Quantity:             it.Quantity,
			SubscriptionType:     it.SubscriptionType,
			CustomizationOptions: it.CustomizationOptions,
		})
	}
	raw, err := json.Marshal(compact)
	if err != nil {
		return fmt.Errorf("failed to encode session items: %w", err)
	}

	runes := []rune(string(raw))
	parts := (len(runes) + maxMetadataValue - 1) / maxMetadataValue
	if parts > maxItemParts {
		return apperr.Validation("Too many items for online checkout. Please split the order.")
	}
	for i := 0; i < parts; i++ {
		end := min((i+1)*maxMetadataValue, len(runes))
		md[itemPartKey(i)] = string(runes[i*maxMetadataValue : end])
	}
	md[domain.MetaItemParts] = strconv.Itoa(parts)
	return nil
}

// decodeItemsMetadata reassembles the item list. Metadata without items_parts is read from items alone.
func decodeItemsMetadata(md map[string]string) ([]domain.SessionItem, error) {
	raw := md[domain.MetaItems]
	if n, err := strconv.Atoi(md[domain.MetaItemParts]); err == nil && n > 1 {
		var b strings.Builder
		b.WriteString(raw)
		for i := 1; i < n; i++ {
			part, ok := md[itemPartKey(i)]
			if !ok {
				return nil, fmt.Errorf("missing metadata key %s", itemPartKey(i))
			}
			b.WriteString(part)
		}
		raw = b.String()
	}
	if raw == "" {
		return nil, nil
	}

	var items []domain.SessionItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("failed to decode session items: %w", err)
	}
	return items, nil
}
