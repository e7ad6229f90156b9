// Package facade assembles every resource client over one configured
// transport.
package facade

import (
	"context"
	"log"
	"time"

	"golang.org/x/time/rate"

	"github.com/MikeMC777/pos-facade/internal/config"
	"github.com/MikeMC777/pos-facade/internal/customer"
	"github.com/MikeMC777/pos-facade/internal/httpx"
	"github.com/MikeMC777/pos-facade/internal/invoice"
	"github.com/MikeMC777/pos-facade/internal/mockapi"
	"github.com/MikeMC777/pos-facade/internal/order"
	"github.com/MikeMC777/pos-facade/internal/payment"
	"github.com/MikeMC777/pos-facade/internal/product"
	"github.com/MikeMC777/pos-facade/internal/report"
	"github.com/MikeMC777/pos-facade/internal/transaction"
)

type Facade struct {
	Client       *httpx.Client
	Products     *product.Service
	Orders       *order.Service
	Customers    *customer.Service
	Payments     *payment.Service
	Transactions *transaction.Service
	Invoices     *invoice.Service
	Reports      *report.Service
}

type Options struct {
	BarcodeRoute product.BarcodeRoute
	// Now stamps default dates; nil means time.Now.
	Now func() time.Time
}

// New builds the services on an already configured client.
func New(c *httpx.Client, opts Options) *Facade {
	return &Facade{
		Client:       c,
		Products:     product.NewService(c, opts.BarcodeRoute),
		Orders:       order.NewService(c, opts.Now),
		Customers:    customer.NewService(c),
		Payments:     payment.NewService(c, opts.Now),
		Transactions: transaction.NewService(c),
		Invoices:     invoice.NewService(c, opts.Now),
		Reports:      report.NewService(c),
	}
}

// Build wires the middleware chain from cfg: request ids, logging, metrics
// when rec is set, rate limiting, then the development mock fallback. A call
// the limiter rejects never reaches the fallback.
func Build(cfg config.Config, rec httpx.Recorder, logger *log.Logger) *Facade {
	if logger == nil {
		logger = log.Default()
	}
	mws := []httpx.Middleware{
		httpx.RequestID(),
		httpx.Logger(logger, cfg.Verbose),
	}
	if rec != nil {
		mws = append(mws, httpx.Metrics(rec))
	}
	if cfg.RateLimitRPS > 0 {
		mws = append(mws, httpx.RateLimit(rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)))
	}
	if cfg.MockFallbackEnabled() {
		st := mockapi.NewMemoryStore()
		if cfg.MockSeed {
			if _, err := mockapi.Seed(context.Background(), st); err != nil {
				logger.Printf("[facade] mock seed: %v", err)
			}
		}
		mock := mockapi.New(st, mockapi.WithLogger(logger))
		mws = append(mws, httpx.Fallback(mock.Handler(), logger))
		logger.Printf("[facade] mock fallback enabled")
	}

	c := httpx.NewClient(cfg.APIBaseURL, cfg.RequestTimeout, httpx.WithMiddleware(mws...))
	return New(c, Options{BarcodeRoute: barcodeRoute(cfg.BarcodeRoute)})
}

func barcodeRoute(v string) product.BarcodeRoute {
	if v == config.BarcodeRouteQuery {
		return product.BarcodeInQuery
	}
	return product.BarcodeInPath
}
