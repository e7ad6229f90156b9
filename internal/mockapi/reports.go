package mockapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/pos-facade/internal/money"
	"github.com/MikeMC777/pos-facade/internal/order"
	"github.com/MikeMC777/pos-facade/internal/payment"
	"github.com/MikeMC777/pos-facade/internal/report"
	"github.com/MikeMC777/pos-facade/internal/transaction"
)

const maxHistoryDays = 366

func within(t, day time.Time) bool {
	return !t.Before(day) && t.Before(day.AddDate(0, 0, 1))
}

func parseStamp(s string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, s)
	return t, err == nil
}

// aggregate builds one end-of-day report per day, in order. Orders count by
// order date, payments by timestamp; refunded payments are excluded.
func (s *Server) aggregate(ctx context.Context, days []time.Time) ([]report.Report, error) {
	orders, err := loadAll[order.Order](ctx, s.store, KindOrder)
	if err != nil {
		return nil, err
	}
	txs, err := loadAll[transaction.Transaction](ctx, s.store, KindTransaction)
	if err != nil {
		return nil, err
	}
	pays, err := loadAll[payment.Payment](ctx, s.store, KindPayment)
	if err != nil {
		return nil, err
	}

	out := make([]report.Report, 0, len(days))
	for _, day := range days {
		r := report.Report{Date: day.Format(report.DateLayout)}
		for _, o := range orders {
			if !within(o.OrderDate.In(day.Location()), day) {
				continue
			}
			r.TotalOrders++
			r.TotalSales = money.New(r.TotalSales.Add(o.FinalAmount.Decimal))
			r.TotalDiscount = money.New(r.TotalDiscount.Add(o.DiscountAmount.Decimal))
			r.TotalTax = money.New(r.TotalTax.Add(o.TaxAmount.Decimal))
		}
		for _, t := range txs {
			if at, ok := parseStamp(t.CreatedAt); ok && within(at.In(day.Location()), day) {
				r.TotalTransactions++
			}
		}
		for _, p := range pays {
			at, ok := parseStamp(p.Timestamp)
			if !ok || p.Status != StatusCompleted || !within(at.In(day.Location()), day) {
				continue
			}
			switch p.PaymentMethod {
			case payment.MethodCash:
				r.CashTotal = money.New(r.CashTotal.Add(p.Amount.Decimal))
			case payment.MethodCard:
				r.CardTotal = money.New(r.CardTotal.Add(p.Amount.Decimal))
			}
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *Server) today() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func (s *Server) parseDay(v string) (time.Time, bool) {
	t, err := time.ParseInLocation(report.DateLayout, v, s.now().Location())
	return t, err == nil
}

func (s *Server) endOfDayReport(c *gin.Context) {
	reports, err := s.aggregate(c.Request.Context(), []time.Time{s.today()})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, reports[0])
}

func (s *Server) reportByDate(c *gin.Context) {
	day, ok := s.parseDay(c.Param("date"))
	if !ok {
		badRequest(c, "date must be YYYY-MM-DD")
		return
	}
	reports, err := s.aggregate(c.Request.Context(), []time.Time{day})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, reports[0])
}

// @Summary End-of-day reports for a date range
// @Param startDate query string true "YYYY-MM-DD"
// @Param endDate query string true "YYYY-MM-DD"
// @Success 200 {array} report.Report
// @Router /endOfDayReport/history [get]
func (s *Server) reportHistory(c *gin.Context) {
	start, ok1 := s.parseDay(c.Query("startDate"))
	end, ok2 := s.parseDay(c.Query("endDate"))
	if !ok1 || !ok2 {
		badRequest(c, "startDate and endDate must be YYYY-MM-DD")
		return
	}
	if end.Before(start) {
		badRequest(c, "endDate is before startDate")
		return
	}
	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if len(days) == maxHistoryDays {
			badRequest(c, "range is limited to one year")
			return
		}
		days = append(days, d)
	}
	reports, err := s.aggregate(c.Request.Context(), days)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, reports)
}
