package mockapi

import (
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/pos-facade/internal/invoice"
)

type Email struct {
	InvoiceID int64
	To        string
}

type outbox struct {
	mu   sync.Mutex
	sent []Email
}

func (o *outbox) add(e Email) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.sent = append(o.sent, e)
}

func (o *outbox) all() []Email {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]Email(nil), o.sent...)
}

type emailBody struct {
	Email string `json:"email" binding:"required,email"`
}

func (s *Server) createInvoice(c *gin.Context) {
	var inv invoice.Invoice
	if err := c.ShouldBindJSON(&inv); err != nil {
		badRequest(c, "invalid json")
		return
	}
	if inv.FinalAmount.IsNegative() || inv.Subtotal.IsNegative() {
		badRequest(c, "amounts must be non-negative")
		return
	}
	ctx := c.Request.Context()
	id, err := s.store.NextID(ctx)
	if err != nil {
		fail(c, err)
		return
	}
	inv.ID = id
	if inv.InvoiceDate == "" {
		inv.InvoiceDate = s.now().UTC().Format(invoice.DateLayout)
	}
	if err := save(ctx, s.store, KindInvoice, id, inv); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, inv)
}

func (s *Server) getInvoice(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	inv, err := load[invoice.Invoice](c.Request.Context(), s.store, KindInvoice, id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, inv)
}

// downloadInvoice renders a plain text receipt.
func (s *Server) downloadInvoice(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	inv, err := load[invoice.Invoice](c.Request.Context(), s.store, KindInvoice, id)
	if err != nil {
		fail(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=invoice-%d.txt", id))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(receipt(inv)))
}

func receipt(inv *invoice.Invoice) string {
	var b strings.Builder
	fmt.Fprintf(&b, "INVOICE #%d\n", inv.ID)
	fmt.Fprintf(&b, "Date:      %s\n", inv.InvoiceDate)
	fmt.Fprintf(&b, "Order:     %v\n", inv.OrderID)
	fmt.Fprintf(&b, "Customer:  %d\n", inv.CustomerID)
	b.WriteString(strings.Repeat("-", 32) + "\n")
	line := func(label, v string) { fmt.Fprintf(&b, "%-16s%16s\n", label, v) }
	line("Subtotal", inv.Subtotal.StringFixed(2))
	line("Discount", inv.Discount.StringFixed(2))
	line("Tax", inv.TaxAmount.StringFixed(2))
	line("Service charge", inv.ServiceCharge.StringFixed(2))
	b.WriteString(strings.Repeat("-", 32) + "\n")
	line("TOTAL", inv.FinalAmount.StringFixed(2))
	return b.String()
}

func (s *Server) emailInvoice(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var in emailBody
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "a valid email is required")
		return
	}
	if _, err := s.store.Get(c.Request.Context(), KindInvoice, id); err != nil {
		fail(c, err)
		return
	}
	s.outbox.add(Email{InvoiceID: id, To: in.Email})
	s.logger.Printf("[mock] invoice %d emailed to %s", id, in.Email)
	c.JSON(http.StatusOK, gin.H{"message": "invoice sent"})
}
