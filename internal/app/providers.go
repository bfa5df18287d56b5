package app

import (
	"time"

	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"github.com/tair/nutribakery/internal/blog"
	carthttp "github.com/tair/nutribakery/internal/cart/delivery/http"
	cartdomain "github.com/tair/nutribakery/internal/cart/domain"
	cartrepo "github.com/tair/nutribakery/internal/cart/repository"
	cartcommand "github.com/tair/nutribakery/internal/cart/usecase/command"
	cartquery "github.com/tair/nutribakery/internal/cart/usecase/query"
	"github.com/tair/nutribakery/internal/chat"
	"github.com/tair/nutribakery/internal/checkout/currency"
	checkouthttp "github.com/tair/nutribakery/internal/checkout/delivery/http"
	checkoutdomain "github.com/tair/nutribakery/internal/checkout/domain"
	"github.com/tair/nutribakery/internal/checkout/stripe"
	checkout "github.com/tair/nutribakery/internal/checkout/usecase"
	"github.com/tair/nutribakery/internal/config"
	"github.com/tair/nutribakery/internal/contact"
	"github.com/tair/nutribakery/internal/eventorder"
	"github.com/tair/nutribakery/internal/notification"
	orderhttp "github.com/tair/nutribakery/internal/order/delivery/http"
	orderdomain "github.com/tair/nutribakery/internal/order/domain"
	orderrepo "github.com/tair/nutribakery/internal/order/repository"
	ordercommand "github.com/tair/nutribakery/internal/order/usecase/command"
	orderquery "github.com/tair/nutribakery/internal/order/usecase/query"
	paymenthttp "github.com/tair/nutribakery/internal/payment/delivery/http"
	paymentdomain "github.com/tair/nutribakery/internal/payment/domain"
	paymentrepo "github.com/tair/nutribakery/internal/payment/repository"
	paymentcommand "github.com/tair/nutribakery/internal/payment/usecase/command"
	paymentquery "github.com/tair/nutribakery/internal/payment/usecase/query"
	producthttp "github.com/tair/nutribakery/internal/product/delivery/http"
	productdomain "github.com/tair/nutribakery/internal/product/domain"
	productrepo "github.com/tair/nutribakery/internal/product/repository"
	productcommand "github.com/tair/nutribakery/internal/product/usecase/command"
	productquery "github.com/tair/nutribakery/internal/product/usecase/query"
	"github.com/tair/nutribakery/internal/review"
	"github.com/tair/nutribakery/internal/sequence"
	seqrepo "github.com/tair/nutribakery/internal/sequence/repository"
	userhttp "github.com/tair/nutribakery/internal/user/delivery/http"
	userdomain "github.com/tair/nutribakery/internal/user/domain"
	userrepo "github.com/tair/nutribakery/internal/user/repository"
	usercommand "github.com/tair/nutribakery/internal/user/usecase/command"
	userquery "github.com/tair/nutribakery/internal/user/usecase/query"
	"github.com/tair/nutribakery/pkg/auth"
	"github.com/tair/nutribakery/pkg/breaker"
	"github.com/tair/nutribakery/pkg/idempotency"
	"github.com/tair/nutribakery/pkg/mailer"
	"github.com/tair/nutribakery/pkg/middleware"
	"github.com/tair/nutribakery/pkg/upload"
)

// Breaker settings shared by the outbound HTTP collaborators
const (
	breakerMaxFailures = 5
	breakerOpenTimeout = 30 * time.Second
)

// ==================== Infrastructure Providers ====================

func ProvideDB(infra *Infra) *gorm.DB {
	return infra.DB
}

func ProvideRegisterer(infra *Infra) prometheus.Registerer {
	return infra.Registry
}

func ProvideMailer(infra *Infra) mailer.Sender {
	return infra.Mailer
}

func ProvideUploads(infra *Infra) *upload.Store {
	return infra.Uploads
}

func ProvideTokenManager(infra *Infra) *auth.TokenManager {
	return infra.Tokens
}

// ProvideGuard builds the per-route auth and metrics wrapper
func ProvideGuard(tokens *auth.TokenManager, reg prometheus.Registerer) middleware.Guard {
	return middleware.Guard{
		Authn:   middleware.NewAuthenticator(tokens),
		Metrics: middleware.NewHTTPMetrics(reg),
	}
}

// Limiters groups the redis backed rate limiters by the surface they protect
type Limiters struct {
	Auth     *middleware.RateLimiter
	Contact  *middleware.RateLimiter
	Chat     *middleware.RateLimiter
	Checkout *middleware.RateLimiter
}

// ProvideLimiters returns pass-through limiters when redis is not configured
func ProvideLimiters(infra *Infra) *Limiters {
	if infra.Redis == nil {
		return &Limiters{}
	}
	return &Limiters{
		Auth:     middleware.NewRateLimiter(infra.Redis, "auth", 20, 15*time.Minute),
		Contact:  middleware.NewRateLimiter(infra.Redis, "contact", 5, time.Hour),
		Chat:     middleware.NewRateLimiter(infra.Redis, "chat", 30, time.Minute),
		Checkout: middleware.NewRateLimiter(infra.Redis, "checkout", 20, time.Minute),
	}
}

var InfraSet = wire.NewSet(
	ProvideDB,
	ProvideRegisterer,
	ProvideMailer,
	ProvideUploads,
	ProvideTokenManager,
	ProvideGuard,
	ProvideLimiters,
)

// ==================== Sequence Providers ====================

func ProvideSequenceGenerator(db *gorm.DB) *sequence.Generator {
	return sequence.NewGenerator(seqrepo.NewGormCounterRepository(db))
}

var SequenceSet = wire.NewSet(ProvideSequenceGenerator)

// ==================== Product Providers ====================

func ProvideProductRepository(db *gorm.DB) productdomain.ProductRepository {
	return productrepo.NewTracingProductRepository(productrepo.NewGormProductRepository(db))
}

func ProvideProductIDAllocator(ids *sequence.Generator) productcommand.IDAllocator {
	return ids
}

func ProvideProductImages(store *upload.Store) producthttp.ImageStore {
	return store
}

var ProductSet = wire.NewSet(
	ProvideProductRepository,
	ProvideProductIDAllocator,
	ProvideProductImages,
	productcommand.NewCreateProductHandler,
	productcommand.NewUpdateProductHandler,
	productcommand.NewDeleteProductHandler,
	productcommand.NewUpdateStockHandler,
	productcommand.NewToggleSpecialtyHandler,
	productcommand.NewDecrementStockHandler,
	productquery.NewGetProductHandler,
	productquery.NewListProductsHandler,
	productquery.NewGetStatsHandler,
	productquery.NewResolveRefHandler,
	producthttp.NewProductHandlerWithDI,
)

// ==================== Cart Providers ====================

func ProvideCartRepository(db *gorm.DB) cartdomain.CartRepository {
	return cartrepo.NewGormCartRepository(db)
}

func ProvideCartCatalog(repo productdomain.ProductRepository) cartdomain.Catalog {
	return repo
}

func ProvideStockKeeper(h *productcommand.DecrementStockHandler) cartdomain.StockKeeper {
	return h
}

var CartSet = wire.NewSet(
	ProvideCartRepository,
	ProvideCartCatalog,
	ProvideStockKeeper,
	cartcommand.NewAddItemHandler,
	cartcommand.NewUpdateQuantityHandler,
	cartcommand.NewUpdateSubscriptionHandler,
	cartcommand.NewRemoveItemHandler,
	cartcommand.NewReconcileHandler,
	cartquery.NewGetCartHandler,
	wire.Bind(new(carthttp.Reconciler), new(*checkout.Orchestrator)),
	carthttp.NewCartHandler,
)

// ==================== User Providers ====================

func ProvideUserRepository(db *gorm.DB) userdomain.UserRepository {
	return userrepo.NewTracingUserRepository(userrepo.NewGormUserRepository(db))
}

func ProvideUserIDAllocator(ids *sequence.Generator) userdomain.IDAllocator {
	return ids
}

func ProvideTokenIssuer(tokens *auth.TokenManager) userdomain.TokenIssuer {
	return tokens
}

func ProvideUserCommands(
	register *usercommand.RegisterUserHandler,
	login *usercommand.LoginUserHandler,
	forgot *usercommand.ForgotPasswordHandler,
	reset *usercommand.ResetPasswordHandler,
	promote *usercommand.PromoteUserHandler,
	address *usercommand.UpdateAddressHandler,
	update *usercommand.UpdateUserHandler,
) userhttp.UserCommands {
	return userhttp.UserCommands{
		Register: register,
		Login:    login,
		Forgot:   forgot,
		Reset:    reset,
		Promote:  promote,
		Address:  address,
		Update:   update,
	}
}

func ProvideUserQueries(
	get *userquery.GetUserHandler,
	exists *userquery.UserExistsHandler,
	list *userquery.ListUsersHandler,
	count *userquery.CountUsersHandler,
) userhttp.UserQueries {
	return userhttp.UserQueries{Get: get, Exists: exists, List: list, Count: count}
}

func ProvideUserHandler(cmds userhttp.UserCommands, queries userhttp.UserQueries, limiters *Limiters) *userhttp.UserHandler {
	return userhttp.NewUserHandlerWithDI(cmds, queries, limiters.Auth)
}

var UserSet = wire.NewSet(
	ProvideUserRepository,
	ProvideUserIDAllocator,
	ProvideTokenIssuer,
	usercommand.NewRegisterUserHandler,
	usercommand.NewLoginUserHandler,
	usercommand.NewForgotPasswordHandler,
	usercommand.NewResetPasswordHandler,
	usercommand.NewPromoteUserHandler,
	usercommand.NewUpdateAddressHandler,
	usercommand.NewUpdateUserHandler,
	userquery.NewGetUserHandler,
	userquery.NewUserExistsHandler,
	userquery.NewListUsersHandler,
	userquery.NewCountUsersHandler,
	userquery.NewCustomerDirectory,
	ProvideUserCommands,
	ProvideUserQueries,
	ProvideUserHandler,
)

// ==================== Order Providers ====================

func ProvideOrderRepository(db *gorm.DB) orderdomain.OrderRepository {
	return orderrepo.NewGormOrderRepository(db)
}

func ProvideProductResolver(h *productquery.ResolveRefHandler) orderdomain.ProductResolver {
	return h
}

func ProvideOrderCustomers(d *userquery.CustomerDirectory) orderquery.CustomerDirectory {
	return d
}

func ProvideOrderProducts(repo productdomain.ProductRepository) orderquery.ProductCatalog {
	return repo
}

func ProvidePlaceOrderHandler(repo orderdomain.OrderRepository, products orderdomain.ProductResolver, ids *ordercommand.IDAllocator) *ordercommand.PlaceOrderHandler {
	return ordercommand.NewPlaceOrderHandler(repo, products, ids, ordercommand.CheckoutIDFormat)
}

var OrderSet = wire.NewSet(
	ProvideOrderRepository,
	ProvideProductResolver,
	ProvideOrderCustomers,
	ProvideOrderProducts,
	ordercommand.NewIDAllocator,
	ordercommand.NewCreateOrderHandler,
	ProvidePlaceOrderHandler,
	orderquery.NewListOrdersHandler,
	orderquery.NewNextIDHandler,
	orderhttp.NewOrderHandler,
)

// ==================== Payment Providers ====================

func ProvidePaymentRepository(db *gorm.DB) paymentdomain.PaymentRepository {
	return paymentrepo.NewGormPaymentRepository(db)
}

var PaymentSet = wire.NewSet(
	ProvidePaymentRepository,
	paymentcommand.NewCreatePaymentHandler,
	paymentcommand.NewUpdateStatusHandler,
	paymentquery.NewGetPaymentHandler,
	paymentquery.NewListPaymentsHandler,
	paymentquery.NewGetMyPaymentsHandler,
	paymentquery.NewTotalRevenueHandler,
	paymenthttp.NewPaymentHandlerWithDI,
)

// ==================== Checkout Providers ====================

func ProvideCurrencyConverter(cfg *config.Config) checkoutdomain.CurrencyConverter {
	return currency.NewRapidAPIConverter(
		currency.Config{APIKey: cfg.Currency.RapidAPIKey},
		breaker.New("currency", breakerMaxFailures, breakerOpenTimeout),
	)
}

func ProvideSessionProvider(cfg *config.Config) checkoutdomain.SessionProvider {
	return stripe.NewProvider(
		stripe.Config{SecretKey: cfg.Stripe.SecretKey, WebhookSecret: cfg.Stripe.WebhookSecret},
		breaker.New("stripe", breakerMaxFailures, breakerOpenTimeout),
	)
}

// ProvideClaimStore returns a nil interface without redis so the orchestrator skips dedupe
func ProvideClaimStore(infra *Infra) checkoutdomain.ClaimStore {
	if infra.Redis == nil {
		return nil
	}
	return idempotency.NewRedisStore(infra.Redis, "nutribakery:claims")
}

// ProvideEventPublisher returns a nil interface when kafka is not configured
func ProvideEventPublisher(infra *Infra) checkoutdomain.EventPublisher {
	if infra.Publisher == nil {
		return nil
	}
	return infra.Publisher
}

func ProvideOrchestrator(
	orders *ordercommand.PlaceOrderHandler,
	payments *paymentcommand.CreatePaymentHandler,
	carts *cartcommand.ReconcileHandler,
	converter checkoutdomain.CurrencyConverter,
	sessions checkoutdomain.SessionProvider,
	claims checkoutdomain.ClaimStore,
	events checkoutdomain.EventPublisher,
	reg prometheus.Registerer,
) *checkout.Orchestrator {
	return checkout.NewOrchestrator(orders, payments, carts, converter, sessions, claims, events,
		checkout.NewMetrics(reg), checkout.DefaultConfig())
}

func ProvideCheckoutHandler(orch *checkout.Orchestrator, limiters *Limiters) *checkouthttp.CheckoutHandler {
	return checkouthttp.NewCheckoutHandler(orch, limiters.Checkout)
}

var CheckoutSet = wire.NewSet(
	ProvideCurrencyConverter,
	ProvideSessionProvider,
	ProvideClaimStore,
	ProvideEventPublisher,
	ProvideOrchestrator,
	ProvideCheckoutHandler,
)

// ==================== Content Providers ====================

func ProvideBlogHandler(db *gorm.DB, uploads *upload.Store) *blog.Handler {
	return blog.NewHandler(blog.NewService(blog.NewRepository(db)), uploads)
}

func ProvideReviewHandler(db *gorm.DB) *review.Handler {
	return review.NewHandler(review.NewService(review.NewRepository(db)))
}

func ProvideContactHandler(db *gorm.DB, sender mailer.Sender, cfg *config.Config, limiters *Limiters) *contact.Handler {
	service := contact.NewService(contact.NewRepository(db), sender, cfg.SMTP.ContactInbox)
	return contact.NewHandler(service, limiters.Contact)
}

func ProvideEventOrderHandler(db *gorm.DB, sender mailer.Sender, uploads *upload.Store) *eventorder.Handler {
	return eventorder.NewHandler(eventorder.NewService(eventorder.NewRepository(db), sender), uploads)
}

func ProvideChatHandler(cfg *config.Config, limiters *Limiters) *chat.Handler {
	client := chat.NewOpenAIClient(
		chat.OpenAIConfig{APIKey: cfg.OpenAI.APIKey, Model: cfg.OpenAI.Model},
		breaker.New("openai", breakerMaxFailures, breakerOpenTimeout),
	)
	return chat.NewHandler(chat.NewService(client), limiters.Chat)
}

func ProvideNotifier(users userdomain.UserRepository, sender mailer.Sender) *notification.Service {
	return notification.NewService(users, sender)
}

var ContentSet = wire.NewSet(
	ProvideBlogHandler,
	ProvideReviewHandler,
	ProvideContactHandler,
	ProvideEventOrderHandler,
	ProvideChatHandler,
	ProvideNotifier,
)

// AllHandlersSet is everything NewServer needs beyond config and infra
var AllHandlersSet = wire.NewSet(
	InfraSet,
	SequenceSet,
	ProductSet,
	CartSet,
	UserSet,
	OrderSet,
	PaymentSet,
	CheckoutSet,
	ContentSet,
	wire.Struct(new(Modules), "*"),
)
