package domain

import (
	"context"
	"time"

	cartcommand "github.com/tair/nutribakery/internal/cart/usecase/command"
	orderdomain "github.com/tair/nutribakery/internal/order/domain"
	ordercommand "github.com/tair/nutribakery/internal/order/usecase/command"
	paymentdomain "github.com/tair/nutribakery/internal/payment/domain"
	paymentcommand "github.com/tair/nutribakery/internal/payment/usecase/command"
	productdomain "github.com/tair/nutribakery/internal/product/domain"
	"github.com/tair/nutribakery/kafka"
)

// State is how far a checkout attempt got
type State string

const (
	StateInitiated       State = "Initiated"
	StateSessionCreated  State = "SessionCreated"
	StateOrderPersisted  State = "OrderPersisted"
	StatePaymentRecorded State = "PaymentRecorded"
	StateCartReconciled  State = "CartReconciled"
)

// EventCheckoutCompleted is the only confirmation type that books an order
const EventCheckoutCompleted = "checkout.session.completed"

// Session metadata keys
const (
	MetaUserID = "user_id"
	MetaItems  = "items"
	MetaTotal  = "total"
	// MetaItemParts counts the items_N keys the encoded item list was split across
	MetaItemParts = "items_parts"
)

// SessionItem is a line the client wants to pay for online, priced in the source currency
type SessionItem struct {
	ProductID            productdomain.ProductID `json:"product_id"`
	Name                 string                  `json:"name"`
	Price                float64                 `json:"price"`
	Quantity             int                     `json:"quantity"`
	CustomizationOptions map[string]interface{}  `json:"customization_options,omitempty"`
	SubscriptionType     string                  `json:"subscription_type,omitempty"`
}

// LineItem is a hosted checkout line in the settlement currency's minor unit
type LineItem struct {
	Name       string
	UnitAmount int64
	Quantity   int64
}

type SessionParams struct {
	Currency   string
	LineItems  []LineItem
	SuccessURL string
	CancelURL  string
	Metadata   map[string]string
}

// Session is a created hosted checkout session
type Session struct {
	ID  string `json:"id"`
	URL string `json:"url,omitempty"`
}

// Confirmation is a verified asynchronous notice from the payment provider
type Confirmation struct {
	EventID   string
	Type      string
	SessionID string
	Metadata  map[string]string
}

// SessionProvider creates hosted checkout sessions and verifies their callbacks
type SessionProvider interface {
	CreateSession(ctx context.Context, params SessionParams) (*Session, error)
	ParseConfirmation(payload []byte, signature string) (*Confirmation, error)
}

// CurrencyConverter converts amount between ISO currency codes
type CurrencyConverter interface {
	Convert(ctx context.Context, amount float64, from, to string) (float64, error)
}

// ClaimStore records one-shot keys. A claim starts as a short lived processing marker
// and only becomes a long lived completion record once Complete is called.
type ClaimStore interface {
	Claim(ctx context.Context, scope, key string, ttl time.Duration) (bool, error)
	Complete(ctx context.Context, scope, key string, ttl time.Duration) error
	Completed(ctx context.Context, scope, key string) (bool, error)
	Release(ctx context.Context, scope, key string) error
}

// EventPublisher announces placed orders
type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, event kafka.OrderPlacedEvent) error
}

// OrderPlacer allocates an order ID and persists the order
type OrderPlacer interface {
	Handle(ctx context.Context, cmd ordercommand.PlaceOrderCommand) (*orderdomain.Order, error)
}

// PaymentRecorder persists a payment record
type PaymentRecorder interface {
	Handle(ctx context.Context, cmd paymentcommand.CreatePaymentCommand) (*paymentdomain.Payment, error)
}

// CartReconciler removes purchased lines and decrements stock
type CartReconciler interface {
	Handle(ctx context.Context, cmd cartcommand.ReconcileCommand) (*cartcommand.ReconcileReport, error)
}
