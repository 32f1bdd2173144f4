package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/hoteldesk/internal/audit"
	"github.com/smallbiznis/hoteldesk/internal/auth"
	authdomain "github.com/smallbiznis/hoteldesk/internal/auth/domain"
	"github.com/smallbiznis/hoteldesk/internal/auth/session"
	"github.com/smallbiznis/hoteldesk/internal/authorization"
	"github.com/smallbiznis/hoteldesk/internal/booking"
	bookingdomain "github.com/smallbiznis/hoteldesk/internal/booking/domain"
	"github.com/smallbiznis/hoteldesk/internal/catalog"
	catalogdomain "github.com/smallbiznis/hoteldesk/internal/catalog/domain"
	"github.com/smallbiznis/hoteldesk/internal/company"
	companydomain "github.com/smallbiznis/hoteldesk/internal/company/domain"
	"github.com/smallbiznis/hoteldesk/internal/config"
	"github.com/smallbiznis/hoteldesk/internal/documents"
	"github.com/smallbiznis/hoteldesk/internal/employee"
	employeedomain "github.com/smallbiznis/hoteldesk/internal/employee/domain"
	"github.com/smallbiznis/hoteldesk/internal/events"
	"github.com/smallbiznis/hoteldesk/internal/media"
	"github.com/smallbiznis/hoteldesk/internal/observability"
	obsmiddleware "github.com/smallbiznis/hoteldesk/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/hoteldesk/internal/observability/metrics"
	obstracing "github.com/smallbiznis/hoteldesk/internal/observability/tracing"
	"github.com/smallbiznis/hoteldesk/internal/payment"
	paymentdomain "github.com/smallbiznis/hoteldesk/internal/payment/domain"
	"github.com/smallbiznis/hoteldesk/internal/provider"
	providerdomain "github.com/smallbiznis/hoteldesk/internal/provider/domain"
	"github.com/smallbiznis/hoteldesk/internal/providers/pdf"
	"github.com/smallbiznis/hoteldesk/internal/ratelimit"
	"github.com/smallbiznis/hoteldesk/internal/stock"
	stockdomain "github.com/smallbiznis/hoteldesk/internal/stock/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	authorization.Module,
	audit.Module,
	events.Module,
	media.Module,
	auth.Module,
	catalog.Module,
	booking.Module,
	payment.Module,
	stock.Module,
	provider.Module,
	employee.Module,
	company.Module,
	pdf.Module,
	documents.Module,
	ratelimit.Module,
	fx.Provide(registerGin),
	fx.Provide(NewServer),
	fx.Invoke(func(s *Server) { s.RegisterRoutes() }),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(cfg config.Config, obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := NewEngine(obsCfg, httpMetrics)
	r.Static("/uploads", cfg.UploadDir)
	return r
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine       *gin.Engine
	cfg          config.Config
	authsvc      authdomain.Service
	sessions     *session.Manager
	authzSvc     authorization.Service
	loginLimiter *ratelimit.LoginLimiter
	bookingSvc   bookingdomain.Service
	catalogSvc   catalogdomain.Catalog
	paymentSvc   paymentdomain.Service
	stockSvc     stockdomain.Service
	providerSvc  providerdomain.Service
	employeeSvc  employeedomain.Service
	companySvc   companydomain.Service
	documentSvc  *documents.Service
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Cfg          config.Config
	Authsvc      authdomain.Service
	Sessions     *session.Manager
	AuthzSvc     authorization.Service
	LoginLimiter *ratelimit.LoginLimiter `optional:"true"`
	BookingSvc   bookingdomain.Service
	CatalogSvc   catalogdomain.Catalog
	PaymentSvc   paymentdomain.Service
	StockSvc     stockdomain.Service
	ProviderSvc  providerdomain.Service
	EmployeeSvc  employeedomain.Service
	CompanySvc   companydomain.Service
	DocumentSvc  *documents.Service
}

func NewServer(p ServerParams) *Server {
	return &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		authsvc:      p.Authsvc,
		sessions:     p.Sessions,
		authzSvc:     p.AuthzSvc,
		loginLimiter: p.LoginLimiter,
		bookingSvc:   p.BookingSvc,
		catalogSvc:   p.CatalogSvc,
		paymentSvc:   p.PaymentSvc,
		stockSvc:     p.StockSvc,
		providerSvc:  p.ProviderSvc,
		employeeSvc:  p.EmployeeSvc,
		companySvc:   p.CompanySvc,
		documentSvc:  p.DocumentSvc,
	}
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) RegisterRoutes() {
	s.registerAuthRoutes()
	s.registerAPIRoutes()
}

func (s *Server) registerAuthRoutes() {
	auth := s.engine.Group("/auth")

	auth.POST("/login", s.Login)
	auth.POST("/logout", s.Logout)
	auth.GET("/me", s.AuthRequired(), s.Me)
	auth.POST("/change-password", s.AuthRequired(), s.ChangePassword)
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api", s.AuthRequired())

	read := func(object string) gin.HandlerFunc { return s.authorize(object, authorization.ActionRead) }
	write := func(object string) gin.HandlerFunc { return s.authorize(object, authorization.ActionWrite) }
	remove := func(object string) gin.HandlerFunc { return s.authorize(object, authorization.ActionDelete) }

	// users
	api.GET("/users", read(authorization.ObjectUser), s.ListUsers)
	api.POST("/users", write(authorization.ObjectUser), s.CreateUser)
	api.DELETE("/users/:id", remove(authorization.ObjectUser), s.DeleteUser)

	// bookings
	api.GET("/bookings", read(authorization.ObjectBooking), s.ListBookings)
	api.POST("/bookings", write(authorization.ObjectBooking), s.CreateBooking)
	api.GET("/bookings/availability", read(authorization.ObjectBooking), s.BookingAvailability)
	api.GET("/bookings/:id", read(authorization.ObjectBooking), s.GetBooking)
	api.PATCH("/bookings/:id", write(authorization.ObjectBooking), s.UpdateBooking)
	api.DELETE("/bookings/:id", remove(authorization.ObjectBooking), s.DeleteBooking)
	api.GET("/bookings/:id/audit", read(authorization.ObjectAudit), s.ListBookingAudit)
	api.GET("/bookings/:id/payments", read(authorization.ObjectPayment), s.ListBookingPayments)
	api.POST("/bookings/:id/payments", write(authorization.ObjectPayment), s.CreateBookingPayment)
	api.GET("/bookings/:id/receipt.pdf", read(authorization.ObjectBooking), s.BookingReceipt)

	// services
	api.GET("/services", read(authorization.ObjectService), s.ListServices)
	api.POST("/services", write(authorization.ObjectService), s.CreateService)
	api.GET("/services/:id", read(authorization.ObjectService), s.GetService)
	api.PATCH("/services/:id", write(authorization.ObjectService), s.UpdateService)
	api.DELETE("/services/:id", remove(authorization.ObjectService), s.DeleteService)

	// payments
	api.GET("/payments", read(authorization.ObjectPayment), s.ListPayments)
	api.POST("/payments", write(authorization.ObjectPayment), s.CreatePayment)
	api.GET("/payments/:id", read(authorization.ObjectPayment), s.GetPayment)
	api.PATCH("/payments/:id", write(authorization.ObjectPayment), s.UpdatePayment)
	api.DELETE("/payments/:id", remove(authorization.ObjectPayment), s.DeletePayment)
	api.GET("/payments/:id/logs", read(authorization.ObjectPayment), s.ListPaymentLogs)
	api.POST("/payments/:id/logs", write(authorization.ObjectPayment), s.CreatePaymentLog)
	api.DELETE("/payments/:id/logs/:logId", remove(authorization.ObjectPayment), s.DeletePaymentLog)
	api.GET("/payments/:id/statement.pdf", read(authorization.ObjectPayment), s.PaymentStatement)

	// stock
	api.GET("/stock", read(authorization.ObjectStock), s.ListStock)
	api.POST("/stock", write(authorization.ObjectStock), s.CreateStock)
	api.GET("/stock/:id", read(authorization.ObjectStock), s.GetStock)
	api.PATCH("/stock/:id", write(authorization.ObjectStock), s.UpdateStock)
	api.DELETE("/stock/:id", remove(authorization.ObjectStock), s.DeleteStock)
	api.POST("/stock/:id/adjust", write(authorization.ObjectStock), s.AdjustStock)
	api.GET("/stock/:id/audit", read(authorization.ObjectAudit), s.ListStockAudit)

	// providers
	api.GET("/providers", read(authorization.ObjectProvider), s.ListProviders)
	api.POST("/providers", write(authorization.ObjectProvider), s.CreateProvider)
	api.GET("/providers/:id", read(authorization.ObjectProvider), s.GetProvider)
	api.PATCH("/providers/:id", write(authorization.ObjectProvider), s.UpdateProvider)
	api.DELETE("/providers/:id", remove(authorization.ObjectProvider), s.DeleteProvider)

	// employees
	api.GET("/employees", read(authorization.ObjectEmployee), s.ListEmployees)
	api.POST("/employees", write(authorization.ObjectEmployee), s.CreateEmployee)
	api.GET("/employees/:id", read(authorization.ObjectEmployee), s.GetEmployee)
	api.PATCH("/employees/:id", write(authorization.ObjectEmployee), s.UpdateEmployee)
	api.DELETE("/employees/:id", remove(authorization.ObjectEmployee), s.DeleteEmployee)

	// company
	api.GET("/company", read(authorization.ObjectCompany), s.GetCompany)
	api.PUT("/company", write(authorization.ObjectCompany), s.UpdateCompany)
	api.POST("/company/logo", write(authorization.ObjectCompany), s.UploadCompanyLogo)
}
