package invoice

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MikeMC777/pos-facade/internal/apierr"
	"github.com/MikeMC777/pos-facade/internal/httpx"
)

var fixedNow = time.Date(2024, 3, 9, 18, 30, 5, 0, time.UTC)

func newService(t *testing.T, h http.HandlerFunc) *Service {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewService(httpx.NewClient(srv.URL, time.Second), func() time.Time { return fixedNow })
}

func TestNormalize_RequiredAmounts(t *testing.T) {
	_, err := Normalize(Input{FinalAmount: 10}, fixedNow)
	var ae *apierr.Error
	if !errors.As(err, &ae) || ae.Field != "subtotal" || !errors.Is(err, apierr.ErrMissingField) {
		t.Fatalf("err=%v", err)
	}
	_, err = Normalize(Input{Subtotal: 10}, fixedNow)
	if !errors.As(err, &ae) || ae.Field != "finalAmount" {
		t.Fatalf("err=%v", err)
	}
	_, err = Normalize(Input{Subtotal: "ten", FinalAmount: 10}, fixedNow)
	if !errors.Is(err, apierr.ErrInvalidAmount) {
		t.Fatalf("err=%v", err)
	}
}

func TestNormalize_Defaults(t *testing.T) {
	inv, err := Normalize(Input{OrderID: "17", Subtotal: 25, FinalAmount: 27.5, Discount: "bogus"}, fixedNow)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if inv.CustomerID != DefaultCustomerID || inv.InvoiceDate != "2024-03-09T18:30:05.000Z" {
		t.Fatalf("defaults: %+v", inv)
	}
	if inv.OrderID != int64(17) || !inv.Discount.IsZero() || !inv.ServiceCharge.IsZero() {
		t.Fatalf("inv=%+v", inv)
	}

	inv, _ = Normalize(Input{CustomerID: 8, InvoiceDate: "2024-01-02", Subtotal: 1, FinalAmount: 1}, fixedNow)
	if inv.CustomerID != 8 || inv.InvoiceDate != "2024-01-02T00:00:00.000Z" {
		t.Fatalf("inv=%+v", inv)
	}
}

func TestCreate_SendsDecimalStringsAndEchoesID(t *testing.T) {
	var sent map[string]any
	s := newService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/invoice" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&sent)
		reply := map[string]any{"id": 501}
		for k, v := range sent {
			reply[k] = v
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(reply)
	})

	inv, err := s.Create(context.Background(), Input{
		OrderID: 17, Subtotal: 25.5, Discount: 2, TaxAmount: 1.25, ServiceCharge: 0.5, FinalAmount: 25.25,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	for field, want := range map[string]string{
		"subtotal": "25.5", "discount": "2", "taxAmount": "1.25", "serviceCharge": "0.5", "finalAmount": "25.25",
	} {
		if sent[field] != want {
			t.Fatalf("%s sent as %#v, want %q", field, sent[field], want)
		}
	}
	if sent["customerId"] != float64(1) || sent["invoiceDate"] != "2024-03-09T18:30:05.000Z" {
		t.Fatalf("sent=%v", sent)
	}
	if inv.ID != 501 || inv.FinalAmount.String() != "25.25" {
		t.Fatalf("invoice=%+v", inv)
	}
}

func TestDownload(t *testing.T) {
	pdf := []byte("%PDF-1.4 fake")
	s := newService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/invoice/9/download" {
			t.Errorf("path=%s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write(pdf)
	})
	b, ct, err := s.Download(context.Background(), 9)
	if err != nil || ct != "application/pdf" || string(b) != string(pdf) {
		t.Fatalf("ct=%s body=%q err=%v", ct, b, err)
	}
}

func TestEmail(t *testing.T) {
	var got string
	calls := 0
	s := newService(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		b, _ := io.ReadAll(r.Body)
		got = r.URL.Path + " " + string(b)
		_, _ = w.Write([]byte(`{"message":"sent"}`))
	})
	if err := s.Email(context.Background(), 9, "  "); !apierr.IsValidation(err) {
		t.Fatalf("err=%v", err)
	}
	if err := s.Email(context.Background(), 9, "nobody"); !errors.Is(err, apierr.ErrInvalidEmail) {
		t.Fatalf("err=%v", err)
	}
	if calls != 0 {
		t.Fatalf("server called %d times", calls)
	}
	if err := s.Email(context.Background(), 9, "ana@shop.example"); err != nil {
		t.Fatalf("email: %v", err)
	}
	if got != `/invoice/9/email {"email":"ana@shop.example"}` {
		t.Fatalf("got %s", got)
	}
}
