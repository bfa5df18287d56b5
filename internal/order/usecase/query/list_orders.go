package query

import (
	"context"

	"github.com/tair/nutribakery/internal/order/domain"
	productdomain "github.com/tair/nutribakery/internal/product/domain"
	"github.com/tair/nutribakery/pkg/logger"
)

const unknown = "Unknown"

// Customer is the owner data shown next to an order
type Customer struct {
	Name        string
	Address     string
	PhoneNumber string
	Email       string
}

// CustomerDirectory looks up order owners by user ID; absent IDs are simply missing from the map
type CustomerDirectory interface {
	FindCustomers(ctx context.Context, userIDs []string) (map[string]Customer, error)
}

// ProductCatalog looks up products by internal ref
type ProductCatalog interface {
	FindByRefs(ctx context.Context, refs []productdomain.ProductRef) ([]productdomain.Product, error)
}

type ItemView struct {
	ProductID            string                 `json:"product_id"`
	Name                 string                 `json:"name"`
	Price                float64                `json:"price"`
	ImageURL             string                 `json:"image_url"`
	Quantity             int                    `json:"quantity"`
	CustomizationOptions map[string]interface{} `json:"customization_options"`
	SubscriptionType     string                 `json:"subscription_type"`
}

// OrderView is an order denormalized with owner and product data
type OrderView struct {
	OrderID         string     `json:"order_id"`
	UserName        string     `json:"user_name"`
	UserAddress     string     `json:"user_address"`
	UserPhoneNumber string     `json:"user_phone_number"`
	UserEmail       string     `json:"user_email"`
	TotalAmount     float64    `json:"total_amount"`
	PaymentMethod   string     `json:"payment_method"`
	OrderedItems    []ItemView `json:"ordered_items"`
}

type ListOrdersQuery struct {
	// UserID restricts the listing to one owner when set
	UserID string
}

// ListOrdersHandler renders unresolved owners and products as placeholders instead of failing
type ListOrdersHandler struct {
	repo      domain.OrderRepository
	customers CustomerDirectory
	products  ProductCatalog
}

func NewListOrdersHandler(repo domain.OrderRepository, customers CustomerDirectory, products ProductCatalog) *ListOrdersHandler {
	return &ListOrdersHandler{repo: repo, customers: customers, products: products}
}

func (h *ListOrdersHandler) Handle(ctx context.Context, q ListOrdersQuery) ([]OrderView, error) {
	var (
		orders []domain.Order
		err    error
	)
	if q.UserID != "" {
		orders, err = h.repo.FindByUserID(ctx, q.UserID)
	} else {
		orders, err = h.repo.FindAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	customers := h.lookupCustomers(ctx, orders)
	products := h.lookupProducts(ctx, orders)

	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		view := OrderView{
			OrderID:         o.OrderID,
			UserName:        unknown,
			UserAddress:     unknown,
			UserPhoneNumber: unknown,
			UserEmail:       unknown,
			TotalAmount:     o.TotalAmount,
			PaymentMethod:   o.PaymentMethod,
			OrderedItems:    make([]ItemView, 0, len(o.Items)),
		}
		if c, ok := customers[o.UserID]; ok {
			view.UserName = orUnknown(c.Name)
			view.UserAddress = orUnknown(c.Address)
			view.UserPhoneNumber = orUnknown(c.PhoneNumber)
			view.UserEmail = orUnknown(c.Email)
		}

		for _, it := range o.Items {
			item := ItemView{
				ProductID:            unknown,
				Name:                 unknown,
				Quantity:             it.Quantity,
				CustomizationOptions: it.CustomizationOptions,
				SubscriptionType:     it.SubscriptionType,
			}
			if item.CustomizationOptions == nil {
				item.CustomizationOptions = map[string]interface{}{}
			}
			if item.SubscriptionType == "" {
				item.SubscriptionType = domain.DefaultSubscriptionType
			}
			if p, ok := products[it.ProductRef]; ok {
				item.ProductID = string(p.ProductID)
				item.Name = p.Name
				item.Price = p.Price
				item.ImageURL = p.ImageURL
			}
			view.OrderedItems = append(view.OrderedItems, item)
		}
		views = append(views, view)
	}
	return views, nil
}

func (h *ListOrdersHandler) lookupCustomers(ctx context.Context, orders []domain.Order) map[string]Customer {
	seen := map[string]bool{}
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		if !seen[o.UserID] {
			seen[o.UserID] = true
			ids = append(ids, o.UserID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	customers, err := h.customers.FindCustomers(ctx, ids)
	if err != nil {
		logger.Warn(ctx).Err(err).Msg("Failed to load order owners, rendering placeholders")
		return nil
	}
	return customers
}

func (h *ListOrdersHandler) lookupProducts(ctx context.Context, orders []domain.Order) map[productdomain.ProductRef]productdomain.Product {
	seen := map[productdomain.ProductRef]bool{}
	var refs []productdomain.ProductRef
	for _, o := range orders {
		for _, it := range o.Items {
			if !seen[it.ProductRef] {
				seen[it.ProductRef] = true
				refs = append(refs, it.ProductRef)
			}
		}
	}
	if len(refs) == 0 {
		return nil
	}

	found, err := h.products.FindByRefs(ctx, refs)
	if err != nil {
		logger.Warn(ctx).Err(err).Msg("Failed to load ordered products, rendering placeholders")
		return nil
	}
	out := make(map[productdomain.ProductRef]productdomain.Product, len(found))
	for _, p := range found {
		out[p.Ref] = p
	}
	return out
}

func orUnknown(s string) string {
	if s == "" {
		return unknown
	}
	return s
}
