package mockapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/pos-facade/internal/order"
	"github.com/MikeMC777/pos-facade/internal/product"
)

// stockError is a rejected stock movement; status is the HTTP status to use.
type stockError struct {
	status int
	msg    string
}

func (e *stockError) Error() string { return e.msg }

// adjustStock applies per-product quantity changes: positive takes stock,
// negative returns it. Nothing is written unless every product can move.
func (s *Server) adjustStock(ctx context.Context, delta map[int64]int) error {
	updated := make([]*product.Product, 0, len(delta))
	for pid, qty := range delta {
		if qty == 0 {
			continue
		}
		p, err := load[product.Product](ctx, s.store, KindProduct, pid)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return &stockError{http.StatusBadRequest, fmt.Sprintf("unknown product %d", pid)}
			}
			return err
		}
		if p.StockQuantity-qty < 0 {
			return &stockError{http.StatusConflict, fmt.Sprintf("insufficient stock for product %d", pid)}
		}
		p.StockQuantity -= qty
		updated = append(updated, p)
	}
	for _, p := range updated {
		if err := save(ctx, s.store, KindProduct, p.ID, p); err != nil {
			return err
		}
	}
	return nil
}

func itemDelta(add, remove []order.Item) map[int64]int {
	d := make(map[int64]int)
	for _, it := range add {
		d[it.ProductID] += it.Quantity
	}
	for _, it := range remove {
		d[it.ProductID] -= it.Quantity
	}
	return d
}

func checkOrder(o order.Order) string {
	if len(o.Items) == 0 {
		return "order has no items"
	}
	for _, it := range o.Items {
		if it.ProductID < 1 {
			return "item without productId"
		}
		if it.Quantity < 1 {
			return "quantity must be at least 1"
		}
		if it.Price.IsNegative() {
			return "price must be non-negative"
		}
	}
	return ""
}

func (s *Server) stockFailed(c *gin.Context, err error) {
	var se *stockError
	if errors.As(err, &se) {
		c.JSON(se.status, gin.H{"error": se.msg})
		return
	}
	fail(c, err)
}

func (s *Server) listOrders(c *gin.Context) {
	out, err := loadAll[order.Order](c.Request.Context(), s.store, KindOrder)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) getOrder(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	o, err := load[order.Order](c.Request.Context(), s.store, KindOrder, id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// @Summary Create an order
// @Description Takes stock for every line item; 409 when a product runs short.
// @Accept json
// @Produce json
// @Param order body order.Order true "order"
// @Success 201 {object} order.Order
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/order [post]
func (s *Server) createOrder(c *gin.Context) {
	var o order.Order
	if err := c.ShouldBindJSON(&o); err != nil {
		badRequest(c, "invalid json")
		return
	}
	if msg := checkOrder(o); msg != "" {
		badRequest(c, msg)
		return
	}
	ctx := c.Request.Context()
	if err := s.adjustStock(ctx, itemDelta(o.Items, nil)); err != nil {
		s.stockFailed(c, err)
		return
	}
	id, err := s.store.NextID(ctx)
	if err != nil {
		fail(c, err)
		return
	}
	o.ID = id
	if o.OrderDate.IsZero() {
		o.OrderDate = s.now()
	}
	if err := save(ctx, s.store, KindOrder, id, o); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

func (s *Server) updateOrder(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	cur, err := load[order.Order](ctx, s.store, KindOrder, id)
	if err != nil {
		fail(c, err)
		return
	}
	var o order.Order
	if err := c.ShouldBindJSON(&o); err != nil {
		badRequest(c, "invalid json")
		return
	}
	if msg := checkOrder(o); msg != "" {
		badRequest(c, msg)
		return
	}
	if err := s.adjustStock(ctx, itemDelta(o.Items, cur.Items)); err != nil {
		s.stockFailed(c, err)
		return
	}
	o.ID = id
	if o.OrderDate.IsZero() {
		o.OrderDate = cur.OrderDate
	}
	if err := save(ctx, s.store, KindOrder, id, o); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// deleteOrder cancels the order and puts its items back on the shelf.
func (s *Server) deleteOrder(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	cur, err := load[order.Order](ctx, s.store, KindOrder, id)
	if err != nil {
		fail(c, err)
		return
	}
	// products deleted since the sale are skipped
	restock := itemDelta(nil, cur.Items)
	for pid := range restock {
		if _, err := s.store.Get(ctx, KindProduct, pid); errors.Is(err, ErrNotFound) {
			delete(restock, pid)
		}
	}
	if err := s.adjustStock(ctx, restock); err != nil {
		s.stockFailed(c, err)
		return
	}
	if err := s.store.Delete(ctx, KindOrder, id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
