package order

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MikeMC777/pos-facade/internal/httpx"
	"github.com/MikeMC777/pos-facade/internal/money"
)

var fixedNow = time.Date(2024, 3, 9, 18, 30, 0, 0, time.UTC)

func TestNormalize_CoercesItems(t *testing.T) {
	var d Draft
	if err := json.Unmarshal([]byte(`{"items":[{"productId":5,"quantity":"3","price":"9.99"}]}`), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	o := Normalize(d, fixedNow)
	if len(o.Items) != 1 {
		t.Fatalf("items=%+v", o.Items)
	}
	it := o.Items[0]
	if it.ProductID != 5 || it.Quantity != 3 || !it.Price.Equal(money.MustParse("9.99").Decimal) {
		t.Fatalf("item=%+v", it)
	}
}

func TestNormalize_Defaults(t *testing.T) {
	d := Draft{
		Items: []DraftItem{
			{ProductID: "8"},
			{ProductID: 9, Quantity: "abc", Price: "-4"},
			{ProductID: 10, Quantity: 0, Price: nil},
			{ProductID: 11, Quantity: 2.5, Price: 1.2},
			{ProductID: 12, Quantity: math.Inf(1), Price: math.NaN()},
		},
		TotalAmount:    "12.50",
		DiscountAmount: -3,
		TaxAmount:      "n/a",
	}
	o := Normalize(d, fixedNow)

	if o.CustomerID != DefaultCustomerID {
		t.Fatalf("customerId=%d", o.CustomerID)
	}
	if !o.OrderDate.Equal(fixedNow) {
		t.Fatalf("orderDate=%s", o.OrderDate)
	}
	for i, it := range o.Items {
		if it.Quantity != 1 {
			t.Fatalf("item %d quantity=%d", i, it.Quantity)
		}
	}
	if o.Items[0].ProductID != 8 || !o.Items[1].Price.IsZero() || !o.Items[2].Price.IsZero() {
		t.Fatalf("items=%+v", o.Items)
	}
	if !o.TotalAmount.Equal(money.MustParse("12.5").Decimal) {
		t.Fatalf("total=%s", o.TotalAmount)
	}
	if !o.DiscountAmount.IsZero() || !o.TaxAmount.IsZero() || !o.FinalAmount.IsZero() {
		t.Fatalf("totals should clamp to zero: %+v", o)
	}
	if !o.Items[4].Price.IsZero() {
		t.Fatalf("NaN price should become zero: %+v", o.Items[4])
	}

	inf := Normalize(Draft{TotalAmount: math.Inf(1), FinalAmount: math.Inf(-1)}, fixedNow)
	if !inf.TotalAmount.IsZero() || !inf.FinalAmount.IsZero() {
		t.Fatalf("infinite totals should become zero: %+v", inf)
	}
}

func TestNormalize_KeepsSuppliedValues(t *testing.T) {
	o := Normalize(Draft{CustomerID: "42", OrderDate: "2024-01-02T10:00:00Z"}, fixedNow)
	if o.CustomerID != 42 {
		t.Fatalf("customerId=%d", o.CustomerID)
	}
	if o.OrderDate.Year() != 2024 || o.OrderDate.Month() != time.January || o.OrderDate.Day() != 2 {
		t.Fatalf("orderDate=%s", o.OrderDate)
	}
	if o.Items == nil {
		t.Fatalf("items should encode as an empty list")
	}
}

func TestCreate_SendsCanonicalBody(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/order" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":31,"customerId":1,"items":[{"productId":5,"quantity":3,"price":9.99}],"finalAmount":29.97}`))
	}))
	defer srv.Close()

	s := NewService(httpx.NewClient(srv.URL, time.Second), func() time.Time { return fixedNow })
	out, err := s.Create(context.Background(), Draft{
		Items:       []DraftItem{{ProductID: 5, Quantity: "3", Price: "9.99"}},
		FinalAmount: "29.97",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if out.ID != 31 || len(out.Items) != 1 {
		t.Fatalf("out=%+v", out)
	}

	items, _ := got["items"].([]any)
	if len(items) != 1 {
		t.Fatalf("body=%v", got)
	}
	item := items[0].(map[string]any)
	if item["productId"] != float64(5) || item["quantity"] != float64(3) || item["price"] != 9.99 {
		t.Fatalf("item=%v", item)
	}
	if got["customerId"] != float64(1) || got["orderDate"] != "2024-03-09T18:30:00Z" || got["finalAmount"] != 29.97 {
		t.Fatalf("body=%v", got)
	}
}

func TestListGetDelete(t *testing.T) {
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Method+" "+r.URL.Path)
		switch r.Method {
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		case http.MethodGet:
			if r.URL.Path == "/api/orders" {
				_, _ = w.Write([]byte(`[{"id":1},{"id":2}]`))
				return
			}
			_, _ = w.Write([]byte(`{"id":2}`))
		}
	}))
	defer srv.Close()

	s := NewService(httpx.NewClient(srv.URL, time.Second), nil)
	ctx := context.Background()
	list, err := s.List(ctx)
	if err != nil || len(list) != 2 {
		t.Fatalf("list=%v err=%v", list, err)
	}
	if o, err := s.GetByID(ctx, 2); err != nil || o.ID != 2 {
		t.Fatalf("get=%v err=%v", o, err)
	}
	if err := s.Delete(ctx, 2); err != nil {
		t.Fatalf("delete: %v", err)
	}
	want := []string{"GET /api/orders", "GET /api/order/2", "DELETE /api/order/2"}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("calls=%v", seen)
		}
	}
}
