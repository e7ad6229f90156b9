package scan

import (
	"bytes"
	"context"
	"net/http"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/MikeMC777/pos-facade/internal/apierr"
	"github.com/MikeMC777/pos-facade/internal/money"
	"github.com/MikeMC777/pos-facade/internal/product"
)

func catalog(calls *[]string) LookupFunc {
	return func(_ context.Context, code string) (*product.Product, error) {
		*calls = append(*calls, code)
		if code == "77501" {
			return &product.Product{ID: 7, Name: "Espresso", Price: money.MustParse("2.5"), StockQuantity: 9}, nil
		}
		return nil, apierr.HTTPStatus(http.StatusNotFound, nil)
	}
}

func TestRelay_SuppressesRepeatsInsideWindow(t *testing.T) {
	var calls []string
	r := NewRelay(catalog(&calls), DefaultRepeatWindow)
	clock := time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return clock }
	ctx := context.Background()

	if _, ok := r.Handle(ctx, "77501\r"); !ok {
		t.Fatalf("first scan should be looked up")
	}
	clock = clock.Add(500 * time.Millisecond)
	if _, ok := r.Handle(ctx, "77501"); ok {
		t.Fatalf("repeat inside the window should be dropped")
	}
	if _, ok := r.Handle(ctx, "99999"); !ok {
		t.Fatalf("a different code is a new scan")
	}
	clock = clock.Add(2 * time.Second)
	if _, ok := r.Handle(ctx, "77501"); !ok {
		t.Fatalf("repeat after the window is a new scan")
	}
	if _, ok := r.Handle(ctx, "   "); ok {
		t.Fatalf("blank lines are ignored")
	}
	if strings.Join(calls, ",") != "77501,99999,77501" {
		t.Fatalf("calls=%v", calls)
	}
	latest, ok := r.Latest()
	if !ok || latest.Barcode != "77501" || latest.Product == nil {
		t.Fatalf("latest=%+v", latest)
	}
}

func TestRelay_ForgetsCodesOutsideWindow(t *testing.T) {
	var calls []string
	r := NewRelay(catalog(&calls), DefaultRepeatWindow)
	clock := time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return clock }
	ctx := context.Background()

	for i := 0; i < 50; i++ {
		clock = clock.Add(2 * DefaultRepeatWindow)
		r.Handle(ctx, strconv.Itoa(1000+i))
	}
	if len(r.seen) != 1 {
		t.Fatalf("seen=%d, stale codes kept", len(r.seen))
	}
	clock = clock.Add(DefaultRepeatWindow / 2)
	r.Handle(ctx, "2000")
	if len(r.seen) != 2 {
		t.Fatalf("seen=%d, codes inside the window must stay", len(r.seen))
	}
}

func TestRelay_Run(t *testing.T) {
	var calls []string
	r := NewRelay(catalog(&calls), 0)
	var out bytes.Buffer
	if err := r.Run(context.Background(), strings.NewReader("77501\n\n404404\n"), &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("out=%q", out.String())
	}
	if !strings.Contains(lines[0], "Espresso") || !strings.Contains(lines[0], "2.50") {
		t.Fatalf("line0=%q", lines[0])
	}
	if lines[1] != "404404\tnot found" {
		t.Fatalf("line1=%q", lines[1])
	}
}

func TestRelay_StopsWhenContextEnds(t *testing.T) {
	var calls []string
	r := NewRelay(catalog(&calls), 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := r.Run(ctx, strings.NewReader("77501\n"), &bytes.Buffer{}); err == nil {
		t.Fatalf("expected context error")
	}
	if len(calls) != 0 {
		t.Fatalf("calls=%v", calls)
	}
}
