package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	_ "github.com/tair/nutribakery/docs"
	"github.com/tair/nutribakery/internal/blog"
	carthttp "github.com/tair/nutribakery/internal/cart/delivery/http"
	"github.com/tair/nutribakery/internal/chat"
	checkouthttp "github.com/tair/nutribakery/internal/checkout/delivery/http"
	"github.com/tair/nutribakery/internal/config"
	"github.com/tair/nutribakery/internal/contact"
	"github.com/tair/nutribakery/internal/eventorder"
	"github.com/tair/nutribakery/internal/notification"
	orderhttp "github.com/tair/nutribakery/internal/order/delivery/http"
	paymenthttp "github.com/tair/nutribakery/internal/payment/delivery/http"
	producthttp "github.com/tair/nutribakery/internal/product/delivery/http"
	"github.com/tair/nutribakery/internal/review"
	userhttp "github.com/tair/nutribakery/internal/user/delivery/http"
	"github.com/tair/nutribakery/kafka"
	"github.com/tair/nutribakery/pkg/httpx"
	"github.com/tair/nutribakery/pkg/logger"
	"github.com/tair/nutribakery/pkg/middleware"
)

const shutdownTimeout = 15 * time.Second

// RouteRegistrar is implemented by every module's HTTP handler
type RouteRegistrar interface {
	RegisterRoutes(router *mux.Router, g middleware.Guard)
}

// Modules is the fully wired set of module handlers
type Modules struct {
	Guard       middleware.Guard
	Products    *producthttp.ProductHandler
	Cart        *carthttp.CartHandler
	Orders      *orderhttp.OrderHandler
	Payments    *paymenthttp.PaymentHandler
	Checkout    *checkouthttp.CheckoutHandler
	Users       *userhttp.UserHandler
	Blogs       *blog.Handler
	Reviews     *review.Handler
	Contact     *contact.Handler
	EventOrders *eventorder.Handler
	Chat        *chat.Handler
	Notifier    *notification.Service
}

func (m *Modules) registrars() []RouteRegistrar {
	return []RouteRegistrar{
		m.Users,
		m.Products,
		m.Cart,
		m.Orders,
		m.Checkout,
		m.Payments,
		m.Blogs,
		m.Reviews,
		m.Contact,
		m.EventOrders,
		m.Chat,
	}
}

type Server struct {
	cfg     *config.Config
	infra   *Infra
	modules *Modules
	router  *mux.Router
}

func NewServer(cfg *config.Config, infra *Infra, modules *Modules) *Server {
	s := &Server{cfg: cfg, infra: infra, modules: modules, router: mux.NewRouter()}
	s.routes()
	return s
}

func (s *Server) routes() {
	middleware.RegisterMiddlewares(s.router, middleware.Config{
		EnableLogging: true,
		EnableTracing: true,
	})

	s.router.HandleFunc("/health", s.health).Methods("GET")
	s.router.Handle("/metrics", promhttp.HandlerFor(s.infra.Registry, promhttp.HandlerOpts{})).Methods("GET")
	userhttp.RegisterSwaggerDocs(s.router, httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	s.router.PathPrefix("/uploads/").Handler(s.infra.Uploads.Handler())

	for _, r := range s.modules.registrars() {
		r.RegisterRoutes(s.router, s.modules.Guard)
	}
}

// Handler returns the router behind CORS and the otelhttp server span
func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{s.cfg.HTTP.FrontendURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "Idempotency-Key", "Stripe-Signature"},
		AllowCredentials: true,
	})
	return c.Handler(otelhttp.NewHandler(s.router, "nutribakery-http"))
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"database": "ok", "redis": "disabled", "kafka": "disabled"}
	code := http.StatusOK

	if sqlDB, err := s.infra.DB.DB(); err != nil || sqlDB.PingContext(r.Context()) != nil {
		status["database"] = "unavailable"
		code = http.StatusServiceUnavailable
	}
	if s.infra.Redis != nil {
		status["redis"] = "ok"
		if err := s.infra.Redis.Ping(r.Context()).Err(); err != nil {
			status["redis"] = "unavailable"
		}
	}
	if s.infra.Publisher != nil {
		status["kafka"] = "ok"
	}

	httpx.RespondJSON(w, code, httpx.Response{Success: code == http.StatusOK, Data: status})
}

// Run serves HTTP and, with brokers configured, the order notification consumer until ctx ends
func (s *Server) Run(ctx context.Context) error {
	if len(s.cfg.Kafka.Brokers) > 0 {
		consumer, err := kafka.NewConsumer(s.cfg.Kafka.Brokers, s.cfg.Kafka.GroupID, []string{kafka.TopicOrderPlaced})
		if err != nil {
			logger.Warn(ctx).Err(err).Msg("Order notification consumer disabled")
		} else {
			consumer.RegisterHandler(kafka.EventTypeOrderPlaced, s.modules.Notifier.HandleOrderPlaced)
			if err := consumer.Start(ctx); err != nil {
				return err
			}
			defer consumer.Close()
		}
	}

	srv := &http.Server{
		Addr:              ":" + s.cfg.HTTP.Port,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(ctx).Str("port", s.cfg.HTTP.Port).Msg("HTTP server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info(ctx).Msg("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
