package payment

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MikeMC777/pos-facade/internal/apierr"
	"github.com/MikeMC777/pos-facade/internal/httpx"
)

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func validCard() *CardDetails {
	return &CardDetails{CardNumber: "4532 0151 1283 0366", ExpiryDate: "12/99", CVV: "123", CardholderName: "Ana Diaz"}
}

type upstream struct {
	srv   *httptest.Server
	calls atomic.Int32
	body  map[string]any
	path  string
}

func newUpstream(t *testing.T, status int, reply string) (*Service, *upstream) {
	t.Helper()
	u := &upstream{}
	u.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.calls.Add(1)
		u.path = r.Method + " " + r.URL.Path
		u.body = nil
		_ = json.NewDecoder(r.Body).Decode(&u.body)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(u.srv.Close)
	return NewService(httpx.NewClient(u.srv.URL, time.Second), func() time.Time { return now }), u
}

func TestProcess_MissingFieldsNeverReachServer(t *testing.T) {
	s, u := newUpstream(t, http.StatusOK, `{}`)
	full := Request{TransactionID: "T1", OrderID: 9, Amount: "10.00", PaymentMethod: "card", CardDetails: validCard()}

	cases := map[string]func(r *Request){
		"transactionId": func(r *Request) { r.TransactionID = nil },
		"orderId":       func(r *Request) { r.OrderID = "  " },
		"amount":        func(r *Request) { r.Amount = nil },
		"paymentMethod": func(r *Request) { r.PaymentMethod = "" },
	}
	for field, mutate := range cases {
		r := full
		mutate(&r)
		_, err := s.Process(context.Background(), r)
		var ae *apierr.Error
		if !errors.As(err, &ae) || ae.Kind != apierr.KindValidation || ae.Field != field {
			t.Fatalf("%s: err=%v", field, err)
		}
		if !errors.Is(err, apierr.ErrMissingField) {
			t.Fatalf("%s: should unwrap to ErrMissingField", field)
		}
	}
	if n := u.calls.Load(); n != 0 {
		t.Fatalf("server called %d times", n)
	}
}

func TestProcess_CardChecks(t *testing.T) {
	s, u := newUpstream(t, http.StatusOK, `{}`)
	cases := []struct {
		name   string
		card   *CardDetails
		reason error
	}{
		{"missing details", nil, apierr.ErrMissingField},
		{"bad checksum", &CardDetails{CardNumber: "4532015112830367", ExpiryDate: "12/99", CVV: "123"}, apierr.ErrInvalidCardNumber},
		{"expired", &CardDetails{CardNumber: "4532015112830366", ExpiryDate: "01/20", CVV: "123"}, apierr.ErrCardExpired},
		{"garbled expiry", &CardDetails{CardNumber: "4532015112830366", ExpiryDate: "soon", CVV: "123"}, apierr.ErrInvalidExpiry},
		{"short cvv", &CardDetails{CardNumber: "4532015112830366", ExpiryDate: "12/99", CVV: "12"}, apierr.ErrInvalidCVV},
		{"no cvv", &CardDetails{CardNumber: "4532015112830366", ExpiryDate: "12/99"}, apierr.ErrInvalidCVV},
	}
	for _, c := range cases {
		_, err := s.Process(context.Background(), Request{
			TransactionID: "T1", OrderID: 9, Amount: 10, PaymentMethod: "CARD", CardDetails: c.card,
		})
		if !apierr.IsValidation(err) || !errors.Is(err, c.reason) {
			t.Fatalf("%s: err=%v", c.name, err)
		}
	}
	if n := u.calls.Load(); n != 0 {
		t.Fatalf("server called %d times", n)
	}
}

func TestProcess_UnsupportedMethodAndAmount(t *testing.T) {
	s, _ := newUpstream(t, http.StatusOK, `{}`)
	_, err := s.Process(context.Background(), Request{TransactionID: 1, OrderID: 2, Amount: 5, PaymentMethod: "bitcoin"})
	if !errors.Is(err, apierr.ErrUnsupportedPaymentMethod) {
		t.Fatalf("err=%v", err)
	}
	for _, amount := range []any{"ten", math.NaN(), math.Inf(1)} {
		_, err = s.Process(context.Background(), Request{TransactionID: 1, OrderID: 2, Amount: amount, PaymentMethod: "cash"})
		if !errors.Is(err, apierr.ErrInvalidAmount) {
			t.Fatalf("amount %v: err=%v", amount, err)
		}
	}
}

func TestProcess_CardNormalizedBody(t *testing.T) {
	s, u := newUpstream(t, http.StatusCreated,
		`{"id":3,"transactionId":"T1","orderId":9,"amount":10.5,"paymentMethod":"CARD","status":"COMPLETED","timestamp":"2025-06-15T12:00:00Z"}`)

	card := validCard()
	card.CVV, card.CVC = "", "4321"
	p, err := s.Process(context.Background(), Request{
		TransactionID: "T1", OrderID: "9", Amount: "10.50", PaymentMethod: " card ", CardDetails: card,
	})
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if p.Status != "COMPLETED" || p.ID != 3 {
		t.Fatalf("payment=%+v", p)
	}
	if u.path != "POST /api/payment" {
		t.Fatalf("path=%s", u.path)
	}
	if u.body["orderId"] != float64(9) || u.body["transactionId"] != "T1" || u.body["amount"] != 10.5 || u.body["paymentMethod"] != "CARD" {
		t.Fatalf("body=%v", u.body)
	}
	cd := u.body["cardDetails"].(map[string]any)
	if cd["cardNumber"] != "4532015112830366" || cd["cvv"] != "4321" || cd["expiryDate"] != "12/99" {
		t.Fatalf("cardDetails=%v", cd)
	}
}

func TestProcess_CashCarriesCashAmount(t *testing.T) {
	s, u := newUpstream(t, http.StatusCreated, `{"status":"COMPLETED"}`)
	_, err := s.Process(context.Background(), Request{
		TransactionID: 7, OrderID: 9, Amount: 18.25, PaymentMethod: "Cash", CashAmount: "20",
	})
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if u.body["cashAmount"] != "20" || u.body["cardDetails"] != nil {
		t.Fatalf("body=%v", u.body)
	}
}

func TestProcess_DeclinedIsHTTPStatus(t *testing.T) {
	s, _ := newUpstream(t, http.StatusPaymentRequired, `{"message":"card declined"}`)
	_, err := s.Process(context.Background(), Request{
		TransactionID: "T1", OrderID: 9, Amount: 10, PaymentMethod: "CARD", CardDetails: validCard(),
	})
	if apierr.StatusCode(err) != http.StatusPaymentRequired || err.Error() != "payment declined" {
		t.Fatalf("err=%v", err)
	}
}

func TestStatusAndRefund(t *testing.T) {
	s, u := newUpstream(t, http.StatusOK, `{"transactionId":"T 1","status":"REFUNDED"}`)
	st, err := s.GetStatus(context.Background(), "T 1")
	if err != nil || st.Status != "REFUNDED" {
		t.Fatalf("status=%v err=%v", st, err)
	}
	if u.path != "GET /api/payment/status/T 1" {
		t.Fatalf("path=%s", u.path)
	}

	if _, err := s.Refund(context.Background(), "T1", " damaged "); err != nil {
		t.Fatalf("refund: %v", err)
	}
	if u.path != "POST /api/payment/refund" || u.body["reason"] != "damaged" || u.body["transactionId"] != "T1" {
		t.Fatalf("%s body=%v", u.path, u.body)
	}

	if _, err := s.Refund(context.Background(), nil, "x"); !apierr.IsValidation(err) {
		t.Fatalf("err=%v", err)
	}
	if _, err := s.GetStatus(context.Background(), " "); !apierr.IsValidation(err) {
		t.Fatalf("err=%v", err)
	}
}
