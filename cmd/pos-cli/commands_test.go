package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/MikeMC777/pos-facade/internal/facade"
	"github.com/MikeMC777/pos-facade/internal/httpx"
	"github.com/MikeMC777/pos-facade/internal/mockapi"
	"github.com/MikeMC777/pos-facade/internal/product"
	"github.com/MikeMC777/pos-facade/internal/report"
)

func newFacade(t *testing.T) *facade.Facade {
	t.Helper()
	gin.SetMode(gin.TestMode)
	st := mockapi.NewMemoryStore()
	if _, err := mockapi.Seed(context.Background(), st); err != nil {
		t.Fatalf("seed: %v", err)
	}
	m := mockapi.New(st, mockapi.WithLogger(log.New(io.Discard, "", 0)))
	srv := httptest.NewServer(m.Handler())
	t.Cleanup(srv.Close)
	return facade.New(httpx.NewClient(srv.URL, 2*time.Second), facade.Options{})
}

func TestRun_ProductsAndBarcode(t *testing.T) {
	f := newFacade(t)
	var out bytes.Buffer
	if err := run(context.Background(), f, []string{"products"}, nil, &out); err != nil {
		t.Fatalf("products: %v", err)
	}
	var list []product.Product
	if err := json.Unmarshal(out.Bytes(), &list); err != nil || len(list) == 0 {
		t.Fatalf("list=%s err=%v", out.String(), err)
	}

	out.Reset()
	if err := run(context.Background(), f, []string{"product", "-barcode", list[0].Barcode}, nil, &out); err != nil {
		t.Fatalf("product: %v", err)
	}
	if !strings.Contains(out.String(), list[0].Name) {
		t.Fatalf("out=%s", out.String())
	}
}

func TestRun_Scan(t *testing.T) {
	f := newFacade(t)
	var out bytes.Buffer
	in := strings.NewReader("7750100000017\n7750100000017\n0000\n")
	if err := run(context.Background(), f, []string{"scan"}, in, &out); err != nil {
		t.Fatalf("scan: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 || !strings.Contains(lines[0], "Espresso") || !strings.HasSuffix(lines[1], "not found") {
		t.Fatalf("out=%q", out.String())
	}
}

func TestRun_Export(t *testing.T) {
	f := newFacade(t)
	dest := filepath.Join(t.TempDir(), "eod.xlsx")
	today := time.Now().Format(report.DateLayout)
	if err := run(context.Background(), f, []string{"export", "-from", today, "-to", today, "-out", dest}, nil, io.Discard); err != nil {
		t.Fatalf("export: %v", err)
	}
	fh, err := os.Open(dest)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer fh.Close()
	x, err := excelize.OpenReader(fh)
	if err != nil {
		t.Fatalf("xlsx: %v", err)
	}
	rows, err := x.GetRows(report.SheetName)
	if err != nil || len(rows) < 2 {
		t.Fatalf("rows=%v err=%v", rows, err)
	}
}

func TestRun_UsageErrors(t *testing.T) {
	f := newFacade(t)
	for _, args := range [][]string{
		{"nope"},
		{"order"},
		{"product"},
		{"history", "-from", "2024-03-01"},
		{"export", "-from", "2024-03-01", "-to", "2024-03-02"},
	} {
		err := run(context.Background(), f, args, nil, io.Discard)
		if !errors.Is(err, errUsage) {
			t.Fatalf("%v: err=%v", args, err)
		}
	}
}
