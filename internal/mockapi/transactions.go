package mockapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/pos-facade/internal/transaction"
)

const (
	StatusPending   = "PENDING"
	StatusCompleted = "COMPLETED"
	StatusRefunded  = "REFUNDED"
)

func checkTransaction(t transaction.Transaction) string {
	if t.OrderID == nil {
		return "orderId is required"
	}
	if t.TotalAmount.IsNegative() {
		return "totalAmount must be non-negative"
	}
	return ""
}

func (s *Server) createTransaction(c *gin.Context) {
	var t transaction.Transaction
	if err := c.ShouldBindJSON(&t); err != nil {
		badRequest(c, "invalid json")
		return
	}
	if msg := checkTransaction(t); msg != "" {
		badRequest(c, msg)
		return
	}
	ctx := c.Request.Context()
	id, err := s.store.NextID(ctx)
	if err != nil {
		fail(c, err)
		return
	}
	t.ID = id
	if t.Status == "" {
		t.Status = StatusPending
	}
	t.CreatedAt = s.now().Format(time.RFC3339)
	if err := save(ctx, s.store, KindTransaction, id, t); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (s *Server) getTransaction(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	t, err := load[transaction.Transaction](c.Request.Context(), s.store, KindTransaction, id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (s *Server) updateTransaction(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	cur, err := load[transaction.Transaction](ctx, s.store, KindTransaction, id)
	if err != nil {
		fail(c, err)
		return
	}
	var t transaction.Transaction
	if err := c.ShouldBindJSON(&t); err != nil {
		badRequest(c, "invalid json")
		return
	}
	if msg := checkTransaction(t); msg != "" {
		badRequest(c, msg)
		return
	}
	t.ID = id
	t.CreatedAt = cur.CreatedAt
	if t.Status == "" {
		t.Status = cur.Status
	}
	if err := save(ctx, s.store, KindTransaction, id, t); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (s *Server) deleteTransaction(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := s.store.Delete(c.Request.Context(), KindTransaction, id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
