package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/aaravmahajanofficial/storefront-backend/docs"
	"github.com/aaravmahajanofficial/storefront-backend/internal/api/handlers"
	"github.com/aaravmahajanofficial/storefront-backend/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-backend/internal/cache"
	"github.com/aaravmahajanofficial/storefront-backend/internal/config"
	"github.com/aaravmahajanofficial/storefront-backend/internal/health"
	"github.com/aaravmahajanofficial/storefront-backend/internal/metrics"
	"github.com/aaravmahajanofficial/storefront-backend/internal/pricing"
	repository "github.com/aaravmahajanofficial/storefront-backend/internal/repositories"
	service "github.com/aaravmahajanofficial/storefront-backend/internal/services"
	"github.com/aaravmahajanofficial/storefront-backend/internal/tracing"
	"github.com/aaravmahajanofficial/storefront-backend/pkg/sendgrid"
	"github.com/aaravmahajanofficial/storefront-backend/pkg/stripe"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

//	@title						Storefront API
//	@version					1.0
//	@description				Catalogue, carts, coupons, shipping, orders, invoices and payments for a single storefront.
//	@BasePath					/api/v1
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.MustLoad()

	ctx := context.Background()

	shutdownTracing, err := tracing.Init(ctx, cfg.Otel)
	if err != nil {
		slog.Error("Error initializing tracing", slog.Any("error", err))
		os.Exit(1)
	}

	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("Error accessing the database", slog.Any("error", err))
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("Error closing database connection", slog.Any("error", err))
		} else {
			slog.Info("Database connection closed")
		}
	}()

	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("Error accessing the redis instance", slog.Any("error", err))
		os.Exit(1)
	}

	defer redisClient.Close()

	taxRate, err := pricing.ParseTaxRate(cfg.Pricing.TaxRate)
	if err != nil {
		slog.Error("Invalid pricing configuration", slog.Any("error", err))
		os.Exit(1)
	}

	redisCache := cache.NewRedisCache(redisClient, &cfg.Cache)
	rateLimiter := repository.NewRateLimitRepo(redisClient, &cfg.RateConfig)
	stripeClient := stripe.NewStripeClient(cfg.Stripe.APIKey, cfg.Stripe.WebhookSecret)
	emailClient := sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)

	userService := service.NewUserService(repos.User)
	productService := service.NewProductService(repos.Product, redisCache)
	cartService := service.NewCartService(repos.Cart, repos.Product)
	couponService := service.NewCouponService(repos.Coupon, repos.Order, rateLimiter)
	shippingService := service.NewShippingService(repos.Shipping, redisCache)
	notificationService := service.NewNotificationService(emailClient)
	orderService := service.NewOrderService(repos.Order, cartService, shippingService, couponService, notificationService,
		service.OrderPricing{TaxRate: taxRate, DeliveryDays: cfg.Pricing.DeliveryDays})
	paymentService := service.NewPaymentService(repos.Order, stripeClient, cfg.Pricing.Currency)
	addressService := service.NewAddressService(repos.Address)
	invoiceService := service.NewInvoiceService(repos.Invoice, repos.Order)

	userHandler := handlers.NewUserHandler(userService)
	productHandler := handlers.NewProductHandler(productService)
	cartHandler := handlers.NewCartHandler(cartService)
	couponHandler := handlers.NewCouponHandler(couponService)
	shippingHandler := handlers.NewShippingHandler(shippingService)
	orderHandler := handlers.NewOrderHandler(orderService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	addressHandler := handlers.NewAddressHandler(addressService)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceService)
	auth := middleware.NewAuthMiddleware([]byte(cfg.Security.JWTKey))

	healthHandler, err := health.NewHealthHandler(cfg, &health.Endpoints{Stripe: stripeClient})
	if err != nil {
		slog.Error("Error creating health checks", slog.Any("error", err))
		os.Exit(1)
	}

	slog.Info("Storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	router := http.NewServeMux()
	router.Handle("GET /health", healthHandler.Handler())
	router.Handle("GET /metrics", metrics.Handler())
	router.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// Users
	router.HandleFunc("POST /api/v1/admin/users", auth.Admin(userHandler.CreateUser()))
	router.HandleFunc("GET /api/v1/admin/users", auth.Admin(userHandler.ListUsers()))
	router.HandleFunc("DELETE /api/v1/admin/users/{id}", auth.Admin(userHandler.DeleteUser()))
	router.HandleFunc("GET /api/v1/users/me", auth.Authenticate(userHandler.Profile()))
	router.HandleFunc("PUT /api/v1/users/me", auth.Authenticate(userHandler.UpdateProfile()))

	// Address book
	router.HandleFunc("GET /api/v1/users/me/addresses", auth.Authenticate(addressHandler.ListAddresses()))
	router.HandleFunc("POST /api/v1/users/me/addresses", auth.Authenticate(addressHandler.AddAddress()))
	router.HandleFunc("PUT /api/v1/users/me/addresses/{id}", auth.Authenticate(addressHandler.UpdateAddress()))
	router.HandleFunc("DELETE /api/v1/users/me/addresses/{id}", auth.Authenticate(addressHandler.DeleteAddress()))
	router.HandleFunc("PUT /api/v1/users/me/addresses/{id}/default", auth.Authenticate(addressHandler.SetDefaultAddress()))

	// Products
	router.HandleFunc("GET /api/v1/products", productHandler.ListProducts())
	router.HandleFunc("GET /api/v1/products/{id}", productHandler.GetProduct())
	router.HandleFunc("POST /api/v1/products", auth.Admin(productHandler.CreateProduct()))
	router.HandleFunc("PUT /api/v1/products/{id}", auth.Admin(productHandler.UpdateProduct()))
	router.HandleFunc("DELETE /api/v1/products/{id}", auth.Admin(productHandler.DeleteProduct()))

	// Carts
	router.HandleFunc("GET /api/v1/carts", auth.Authenticate(cartHandler.GetCart()))
	router.HandleFunc("GET /api/v1/carts/summary", auth.Authenticate(cartHandler.GetSummary()))
	router.HandleFunc("DELETE /api/v1/carts", auth.Authenticate(cartHandler.ClearCart()))
	router.HandleFunc("POST /api/v1/carts/items", auth.Authenticate(cartHandler.AddItem()))
	router.HandleFunc("PUT /api/v1/carts/items/{productId}", auth.Authenticate(cartHandler.UpdateQuantity()))
	router.HandleFunc("DELETE /api/v1/carts/items/{productId}", auth.Authenticate(cartHandler.RemoveItem()))

	// Coupons
	router.HandleFunc("POST /api/v1/coupons/apply", auth.Authenticate(couponHandler.ApplyCoupon()))
	router.HandleFunc("GET /api/v1/coupons/analytics", auth.Admin(couponHandler.Analytics()))
	router.HandleFunc("POST /api/v1/coupons", auth.Admin(couponHandler.CreateCoupon()))
	router.HandleFunc("GET /api/v1/coupons", auth.Admin(couponHandler.ListCoupons()))
	router.HandleFunc("GET /api/v1/coupons/{id}", auth.Admin(couponHandler.GetCoupon()))
	router.HandleFunc("PUT /api/v1/coupons/{id}", auth.Admin(couponHandler.UpdateCoupon()))
	router.HandleFunc("DELETE /api/v1/coupons/{id}", auth.Admin(couponHandler.DeleteCoupon()))
	router.HandleFunc("POST /api/v1/coupons/{id}/redemptions", auth.Admin(couponHandler.RecordUsage()))

	// Shipping
	router.HandleFunc("GET /api/v1/shipping/rates/{zipCode}", shippingHandler.CalculateRate())
	router.HandleFunc("POST /api/v1/shipping/rules", auth.Admin(shippingHandler.CreateRule()))
	router.HandleFunc("GET /api/v1/shipping/rules", auth.Admin(shippingHandler.ListRules()))
	router.HandleFunc("DELETE /api/v1/shipping/rules/{id}", auth.Admin(shippingHandler.DeleteRule()))
	router.HandleFunc("DELETE /api/v1/shipping/states/{stateCode}/rules", auth.Admin(shippingHandler.DeleteRulesByState()))

	// Orders
	router.HandleFunc("POST /api/v1/orders/quote", auth.Authenticate(orderHandler.QuoteOrder()))
	router.HandleFunc("POST /api/v1/orders", auth.Authenticate(orderHandler.CreateOrder()))
	router.HandleFunc("GET /api/v1/orders", auth.Authenticate(orderHandler.ListMyOrders()))
	router.HandleFunc("GET /api/v1/orders/{id}", auth.Authenticate(orderHandler.GetOrder()))
	router.HandleFunc("GET /api/v1/admin/orders", auth.Admin(orderHandler.ListOrders()))
	router.HandleFunc("PATCH /api/v1/orders/{id}/status", auth.Admin(orderHandler.UpdateOrderStatus()))
	router.HandleFunc("DELETE /api/v1/orders/{id}", auth.Admin(orderHandler.DeleteOrder()))

	// Invoices
	router.HandleFunc("POST /api/v1/admin/orders/{id}/invoice", auth.Admin(invoiceHandler.IssueInvoice()))
	router.HandleFunc("GET /api/v1/orders/{id}/invoice", auth.Authenticate(invoiceHandler.GetOrderInvoice()))
	router.HandleFunc("GET /api/v1/invoices/{invoiceId}", invoiceHandler.VerifyInvoice())

	// Payments
	router.HandleFunc("POST /api/v1/payments", auth.Authenticate(paymentHandler.CreatePayment()))
	router.HandleFunc("POST /api/v1/payments/webhook", paymentHandler.HandleStripeWebhook())

	var handler http.Handler = router
	handler = metrics.Middleware(handler)
	handler = middleware.Timeout(cfg.RequestTimeout)(handler)
	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, "storefront-http")

	server := http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	slog.Info("Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Failed to start server", slog.Any("error", err))
			done <- syscall.SIGTERM
		}
	}()

	<-done

	slog.Warn("Shutdown signal received. Preparing to stop the server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown encountered an issue", slog.Any("error", err))
	} else {
		slog.Info("Server shut down gracefully. All connections closed.")
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("Error flushing traces", slog.Any("error", err))
	}
}
