// Package mockapi is an in-process stand-in for the POS backend. It serves
// the same REST routes the facade calls, backed by a document Store.
package mockapi

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/MikeMC777/pos-facade/internal/httpx"
	_ "github.com/MikeMC777/pos-facade/internal/mockapi/docs"
)

// DeclinedCard is always refused with 402 so checkout error paths can be
// exercised.
const DeclinedCard = "4000000000000002"

type Server struct {
	store  Store
	logger *log.Logger
	now    func() time.Time
	outbox *outbox
}

type Option func(*Server)

func WithLogger(l *log.Logger) Option { return func(s *Server) { s.logger = l } }

func WithClock(now func() time.Time) Option { return func(s *Server) { s.now = now } }

func New(st Store, opts ...Option) *Server {
	s := &Server{store: st, logger: log.Default(), now: time.Now, outbox: &outbox{}}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Sent returns the invoice emails accepted so far.
func (s *Server) Sent() []Email { return s.outbox.all() }

// Handler builds the gin engine with every backend route.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), httpx.GinRequestID(), httpx.GinLogger(s.logger))

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	{
		api.GET("/products", s.listProducts)
		api.GET("/product/id/:id", s.getProduct)
		api.GET("/product/barcode/:barcode", s.getProductByBarcode)
		api.POST("/product", s.createProduct)
		api.PUT("/product/:id", s.updateProduct)
		api.DELETE("/product/:id", s.deleteProduct)
		api.GET("/product/:id/image", s.getProductImage)
		api.PATCH("/product/:id/image", s.updateProductImage)

		api.GET("/orders", s.listOrders)
		api.POST("/order", s.createOrder)
		api.GET("/order/:id", s.getOrder)
		api.PUT("/order/:id", s.updateOrder)
		api.DELETE("/order/:id", s.deleteOrder)

		api.GET("/customers", s.listCustomers)
		api.POST("/customer", s.createCustomer)
		api.GET("/customer/:id", s.getCustomer)
		api.PUT("/customer/:id", s.updateCustomer)
		api.DELETE("/customer/:id", s.deleteCustomer)

		api.POST("/transaction", s.createTransaction)
		api.GET("/transaction/:id", s.getTransaction)
		api.PUT("/transaction/:id", s.updateTransaction)
		api.DELETE("/transaction/:id", s.deleteTransaction)

		api.POST("/payment", s.processPayment)
		api.POST("/payment/refund", s.refundPayment)
		api.GET("/payment/status/:transactionId", s.paymentStatus)
		api.GET("/payment/:id", s.getPayment)
	}

	// older clients look barcodes up with a query string
	r.GET("/product", s.getProductByBarcode)

	r.POST("/invoice", s.createInvoice)
	r.GET("/invoice/:id", s.getInvoice)
	r.GET("/invoice/:id/download", s.downloadInvoice)
	r.POST("/invoice/:id/email", s.emailInvoice)

	r.GET("/endOfDayReport", s.endOfDayReport)
	r.GET("/endOfDayReport/date/:date", s.reportByDate)
	r.GET("/endOfDayReport/history", s.reportHistory)
	return r
}
