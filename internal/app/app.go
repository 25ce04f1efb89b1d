// Package app assembles the HTTP server from its infrastructure handles.
package app

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"loan-management-system/internal/adapter/events"
	httpadp "loan-management-system/internal/adapter/http"
	"loan-management-system/internal/adapter/middleware"
	"loan-management-system/internal/adapter/repository/mysql"
	"loan-management-system/internal/infrastructure/metrics"
	"loan-management-system/internal/usecase/auth"
	"loan-management-system/internal/usecase/customer"
	"loan-management-system/internal/usecase/loan"
	"loan-management-system/pkg/clock"
)

const eventStreamMaxLen = 10_000

type Deps struct {
	DB    *gorm.DB
	Redis *redis.Client
	Log   *zap.Logger

	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer

	JWTSecret  string
	JWTTTL     time.Duration
	IdempTTL   time.Duration
	BcryptCost int         // 0 = bcrypt.DefaultCost
	Clock      clock.Clock // nil = system clock
}

type App struct {
	Echo      *echo.Echo
	Auth      *auth.Service
	Customers *customer.Usecase
	Loans     *loan.Usecase
}

func New(d Deps) *App {
	clk := d.Clock
	if clk == nil {
		clk = clock.System()
	}

	users := mysql.NewUserRepository(d.DB)
	customers := mysql.NewCustomerRepository(d.DB)
	loans := mysql.NewLoanRepository(d.DB)
	tx := mysql.NewGormUoW(d.DB)

	m := metrics.New(d.Registerer)
	pub := events.NewPublisher(d.Redis, eventStreamMaxLen)

	authOpts := []auth.Option{auth.WithClock(clk), auth.WithLogger(d.Log.Named("auth"))}
	if d.BcryptCost > 0 {
		authOpts = append(authOpts, auth.WithBcryptCost(d.BcryptCost))
	}
	authSvc := auth.NewService(users, d.JWTSecret, d.JWTTTL, authOpts...)

	customerUC := customer.NewUsecase(tx, customers, authSvc,
		customer.WithLogger(d.Log.Named("customers")),
		customer.WithRecorder(m))
	loanUC := loan.NewUsecase(tx, loans, customerUC,
		loan.WithClock(clk),
		loan.WithPublisher(pub),
		loan.WithRecorder(m),
		loan.WithLogger(d.Log.Named("loans")))

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Recover(), requestLogger(d.Log))

	health := httpadp.NewHandler(map[string]httpadp.Check{
		"db": func(ctx context.Context) error {
			sqlDB, err := d.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		"redis": func(ctx context.Context) error { return d.Redis.Ping(ctx).Err() },
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))

	httpadp.RegisterRoutes(e, httpadp.Handlers{
		Health:    health,
		Auth:      httpadp.NewAuthHandler(authSvc, d.Log),
		Customers: httpadp.NewCustomerHandler(customerUC, d.Log),
		Loans:     httpadp.NewLoanHandler(loanUC, d.Log),
	},
		middleware.Authenticate(authSvc, d.Log.Named("auth")),
		middleware.IdempotencyMiddleware(d.Redis, d.IdempTTL, d.Log.Named("idempotency")),
	)

	return &App{Echo: e, Auth: authSvc, Customers: customerUC, Loans: loanUC}
}

func requestLogger(log *zap.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("remote_ip", v.RemoteIP),
			}
			if v.Error != nil {
				log.Error("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			log.Info("request", fields...)
			return nil
		},
	})
}
