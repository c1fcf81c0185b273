package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	httpx "order-demo/services/order-api/internal/http"
	"order-demo/services/order-api/internal/http/handlers"
	"order-demo/services/order-api/internal/notify"
	"order-demo/services/order-api/internal/server"
	"order-demo/shared/pkg/config"
	"order-demo/shared/pkg/metrics"
	"order-demo/shared/pkg/rabbit"
)

// App is the wired order-api process.
type App struct {
	Cfg      config.Config
	Log      zerolog.Logger
	Registry *prometheus.Registry

	Public http.Handler
	Admin  http.Handler

	announcer *notify.Announcer
	closers   []func() error
}

// Option customises New, mostly for tests.
type Option func(*options)

type options struct {
	publisher notify.Publisher
}

// WithPublisher replaces the RabbitMQ connection used for order
// announcements. Announcements are enabled regardless of RABBIT_URL.
func WithPublisher(p notify.Publisher) Option {
	return func(o *options) { o.publisher = p }
}

func New(cfg config.Config, log zerolog.Logger, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTP(reg)
	orderMetrics := metrics.NewOrders(reg)

	a := &App{Cfg: cfg, Log: log, Registry: reg}

	pub := o.publisher
	if pub == nil && cfg.AnnouncementsEnabled() {
		rc, err := rabbit.Connect(cfg.Rabbit.URL)
		if err != nil {
			return nil, err
		}
		if err := rabbit.DeclareExchange(rc.Ch, cfg.Rabbit.Exchange); err != nil {
			_ = rc.Close()
			return nil, err
		}
		a.closers = append(a.closers, rc.Close)
		pub = rabbit.NewPublisher(rc.Ch, cfg.Rabbit.Exchange)
		log.Info().Str("exchange", cfg.Rabbit.Exchange).Msg("order announcements enabled")
	}

	placeOrder := &handlers.PlaceOrderHandler{Placed: orderMetrics.Placed}
	if pub != nil {
		a.announcer = notify.NewAnnouncer(log, pub, orderMetrics, cfg.Rabbit.PublishTimeout, notify.DefaultBuffer)
		placeOrder.Announcer = a.announcer
	}

	a.Public = httpx.NewRouter(&httpx.Handlers{
		Health:          handlers.Health,
		OrdersProcessed: handlers.NewOrdersProcessedHandler().ServeHTTP,
		PlaceOrder:      placeOrder.ServeHTTP,
	}, httpx.RouterOptions{
		Service: cfg.Common.ServiceName,
		Log:     log,
		Metrics: httpMetrics,
	})
	if cfg.Admin.Enabled {
		a.Admin = httpx.NewAdminRouter(reg, handlers.Health)
	}
	return a, nil
}

// Units returns the listeners to run: public always, admin when enabled.
func (a *App) Units() []server.Unit {
	units := []server.Unit{{
		Name: "public",
		Server: &http.Server{
			Addr:              a.Cfg.HTTP.Addr,
			Handler:           a.Public,
			ReadHeaderTimeout: a.Cfg.HTTP.ReadHeaderTimeout,
		},
	}}
	if a.Admin != nil {
		units = append(units, server.Unit{
			Name: "admin",
			Server: &http.Server{
				Addr:              a.Cfg.Admin.Addr,
				Handler:           a.Admin,
				ReadHeaderTimeout: a.Cfg.HTTP.ReadHeaderTimeout,
			},
		})
	}
	return units
}

// Run serves until ctx is done, then releases the broker connection.
func (a *App) Run(ctx context.Context, units ...server.Unit) error {
	if len(units) == 0 {
		units = a.Units()
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	announcerDone := make(chan struct{})
	if a.announcer != nil {
		go func() {
			defer close(announcerDone)
			a.announcer.Run(runCtx)
		}()
	} else {
		close(announcerDone)
	}

	r := &server.Runner{Log: a.Log, ShutdownTimeout: a.Cfg.HTTP.ShutdownTimeout}
	err := r.Run(runCtx, units...)

	cancel()
	<-announcerDone
	if cerr := a.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("close: %w", cerr)
	}
	return err
}

func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}
