package customer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MikeMC777/pos-facade/internal/apierr"
	"github.com/MikeMC777/pos-facade/internal/httpx"
)

func TestCreate_RequiresName(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { calls++ }))
	defer srv.Close()
	s := NewService(httpx.NewClient(srv.URL, time.Second))

	_, err := s.Create(context.Background(), Customer{Name: "  ", Email: "a@b.co"})
	if !apierr.IsValidation(err) || err.Error() != "missing required field: name" {
		t.Fatalf("err=%v", err)
	}
	_, err = s.Create(context.Background(), Customer{Name: "Ana", Email: "not-an-email"})
	if !apierr.IsValidation(err) {
		t.Fatalf("err=%v", err)
	}
	if calls != 0 {
		t.Fatalf("server called %d times", calls)
	}
}

func TestCRUD(t *testing.T) {
	var seen []string
	var body Customer
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Method+" "+r.URL.Path)
		switch r.Method {
		case http.MethodPost, http.MethodPut:
			_ = json.NewDecoder(r.Body).Decode(&body)
			body.ID = 4
			_ = json.NewEncoder(w).Encode(body)
		case http.MethodGet:
			if r.URL.Path == "/api/customers" {
				_, _ = w.Write([]byte(`[{"id":4,"name":"Ana"}]`))
				return
			}
			_, _ = w.Write([]byte(`{"id":4,"name":"Ana"}`))
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer srv.Close()
	s := NewService(httpx.NewClient(srv.URL, time.Second))
	ctx := context.Background()

	c, err := s.Create(ctx, Customer{Name: " Ana ", Email: " ana@shop.example "})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.ID != 4 || body.Name != "Ana" || body.Email != "ana@shop.example" {
		t.Fatalf("created=%+v sent=%+v", c, body)
	}
	if _, err := s.Update(ctx, 4, Customer{Name: "Ana B"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if list, err := s.List(ctx); err != nil || len(list) != 1 {
		t.Fatalf("list=%v err=%v", list, err)
	}
	if _, err := s.GetByID(ctx, 4); err != nil {
		t.Fatalf("get: %v", err)
	}
	if err := s.Delete(ctx, 4); err != nil {
		t.Fatalf("delete: %v", err)
	}
	want := []string{"POST /api/customer", "PUT /api/customer/4", "GET /api/customers", "GET /api/customer/4", "DELETE /api/customer/4"}
	if len(seen) != len(want) {
		t.Fatalf("calls=%v", seen)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("calls=%v", seen)
		}
	}
}
