// Package report reads end-of-day sales reports and exports them as
// spreadsheets.
package report

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/MikeMC777/pos-facade/internal/apierr"
	"github.com/MikeMC777/pos-facade/internal/httpx"
	"github.com/MikeMC777/pos-facade/internal/money"
)

const DateLayout = "2006-01-02"

var errRange = errors.New("end date before start date")

// Report is produced by the backend and never modified here.
type Report struct {
	Date              string       `json:"date,omitempty"`
	StartDate         string       `json:"startDate,omitempty"`
	EndDate           string       `json:"endDate,omitempty"`
	TotalOrders       int          `json:"totalOrders"`
	TotalTransactions int          `json:"totalTransactions"`
	TotalSales        money.Amount `json:"totalSales"`
	TotalDiscount     money.Amount `json:"totalDiscount"`
	TotalTax          money.Amount `json:"totalTax"`
	CashTotal         money.Amount `json:"cashTotal"`
	CardTotal         money.Amount `json:"cardTotal"`
}

type Service struct{ c *httpx.Client }

func NewService(c *httpx.Client) *Service { return &Service{c: c} }

func (s *Service) GetEndOfDay(ctx context.Context) (*Report, error) {
	var out Report
	if err := s.c.Get(ctx, "/endOfDayReport", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) GetByDate(ctx context.Context, day time.Time) (*Report, error) {
	if day.IsZero() {
		return nil, apierr.Validation("date", apierr.ErrMissingField)
	}
	var out Report
	if err := s.c.Get(ctx, "/endOfDayReport/date/"+day.Format(DateLayout), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetHistory returns one report per day between start and end, inclusive.
func (s *Service) GetHistory(ctx context.Context, start, end time.Time) ([]Report, error) {
	switch {
	case start.IsZero():
		return nil, apierr.Validation("startDate", apierr.ErrMissingField)
	case end.IsZero():
		return nil, apierr.Validation("endDate", apierr.ErrMissingField)
	case end.Before(start):
		return nil, apierr.Validation("endDate", errRange)
	}
	q := url.Values{
		"startDate": {start.Format(DateLayout)},
		"endDate":   {end.Format(DateLayout)},
	}
	var out []Report
	if err := s.c.Get(ctx, "/endOfDayReport/history", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}
