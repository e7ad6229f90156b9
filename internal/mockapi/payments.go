package mockapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/pos-facade/internal/coerce"
	"github.com/MikeMC777/pos-facade/internal/money"
	"github.com/MikeMC777/pos-facade/internal/payment"
	"github.com/MikeMC777/pos-facade/internal/transaction"
)

type paymentBody struct {
	TransactionID any                  `json:"transactionId" binding:"required"`
	OrderID       any                  `json:"orderId" binding:"required"`
	Amount        money.Amount         `json:"amount"`
	PaymentMethod payment.Method       `json:"paymentMethod" binding:"required,oneof=CARD CASH"`
	CardDetails   *payment.CardDetails `json:"cardDetails"`
	CashAmount    any                  `json:"cashAmount"`
}

type refundBody struct {
	TransactionID any    `json:"transactionId" binding:"required"`
	Reason        string `json:"reason"`
}

func txKey(v any) string { return strings.TrimSpace(fmt.Sprint(coerce.ID(v))) }

// latestPayment finds the most recent payment for a transaction.
func (s *Server) latestPayment(ctx context.Context, key string) (*payment.Payment, error) {
	all, err := loadAll[payment.Payment](ctx, s.store, KindPayment)
	if err != nil {
		return nil, err
	}
	for i := len(all) - 1; i >= 0; i-- {
		if txKey(all[i].TransactionID) == key {
			return &all[i], nil
		}
	}
	return nil, ErrNotFound
}

// settle marks the paid transaction as completed when it is one of ours.
func (s *Server) settle(ctx context.Context, p payment.Payment) error {
	id, ok := coerce.Int(p.TransactionID)
	if !ok {
		return nil
	}
	t, err := load[transaction.Transaction](ctx, s.store, KindTransaction, id)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	t.Status = p.Status
	t.PaymentMethod = string(p.PaymentMethod)
	return save(ctx, s.store, KindTransaction, id, t)
}

// @Summary Process a payment
// @Description Card 4000000000000002 is always declined with 402.
// @Accept json
// @Produce json
// @Success 201 {object} payment.Payment
// @Failure 400 {object} map[string]string
// @Failure 402 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/payment [post]
func (s *Server) processPayment(c *gin.Context) {
	var in paymentBody
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	if in.Amount.IsNegative() {
		badRequest(c, "amount must be non-negative")
		return
	}
	switch in.PaymentMethod {
	case payment.MethodCard:
		if in.CardDetails == nil {
			badRequest(c, "cardDetails are required for card payments")
			return
		}
		if payment.Digits(in.CardDetails.CardNumber) == DeclinedCard {
			c.JSON(http.StatusPaymentRequired, gin.H{"error": "card declined"})
			return
		}
	case payment.MethodCash:
		if cash, ok := money.Parse(in.CashAmount); ok && cash.LessThan(in.Amount.Decimal) {
			badRequest(c, "cash tendered is less than the amount due")
			return
		}
	}

	ctx := c.Request.Context()
	key := txKey(in.TransactionID)
	if prev, err := s.latestPayment(ctx, key); err == nil && prev.Status == StatusCompleted {
		c.JSON(http.StatusConflict, gin.H{"error": "transaction already paid"})
		return
	}
	id, err := s.store.NextID(ctx)
	if err != nil {
		fail(c, err)
		return
	}
	p := payment.Payment{
		ID:            id,
		TransactionID: coerce.ID(in.TransactionID),
		OrderID:       coerce.ID(in.OrderID),
		Amount:        in.Amount,
		PaymentMethod: in.PaymentMethod,
		Status:        StatusCompleted,
		Timestamp:     s.now().Format(time.RFC3339),
	}
	if err := save(ctx, s.store, KindPayment, id, p); err != nil {
		fail(c, err)
		return
	}
	if err := s.settle(ctx, p); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (s *Server) paymentStatus(c *gin.Context) {
	key := strings.TrimSpace(c.Param("transactionId"))
	p, err := s.latestPayment(c.Request.Context(), key)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, payment.Status{TransactionID: p.TransactionID, Status: p.Status})
}

func (s *Server) getPayment(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	p, err := load[payment.Payment](c.Request.Context(), s.store, KindPayment, id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) refundPayment(c *gin.Context) {
	var in refundBody
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "transactionId is required")
		return
	}
	ctx := c.Request.Context()
	p, err := s.latestPayment(ctx, txKey(in.TransactionID))
	if err != nil {
		fail(c, err)
		return
	}
	if p.Status == StatusRefunded {
		c.JSON(http.StatusConflict, gin.H{"error": "payment already refunded"})
		return
	}
	p.Status = StatusRefunded
	if err := save(ctx, s.store, KindPayment, p.ID, p); err != nil {
		fail(c, err)
		return
	}
	if err := s.settle(ctx, *p); err != nil {
		fail(c, err)
		return
	}
	s.logger.Printf("[mock] refund transaction=%s reason=%q", txKey(p.TransactionID), in.Reason)
	c.JSON(http.StatusOK, p)
}
