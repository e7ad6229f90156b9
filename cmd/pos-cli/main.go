package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MikeMC777/pos-facade/internal/config"
	"github.com/MikeMC777/pos-facade/internal/facade"
	"github.com/MikeMC777/pos-facade/internal/telemetry"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	os.Exit(realMain(os.Args[1:]))
}

// realMain returns the exit code so deferred shutdowns run before exit.
func realMain(args []string) int {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mp, err := telemetry.InitProvider(ctx, cfg)
	if err != nil {
		log.Printf("metrics: %v", err)
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mp.Shutdown(shutdownCtx); err != nil {
			log.Printf("[metrics] shutdown: %v", err)
		}
	}()
	cm, err := telemetry.NewClientMetrics(mp.Meter(cfg.ServiceName), cfg.ServiceName)
	if err != nil {
		log.Printf("metrics: %v", err)
		return 1
	}

	f := facade.Build(cfg, cm, log.Default())
	if err := run(ctx, f, args, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		if errors.Is(err, errUsage) {
			usage()
			return 2
		}
		return 1
	}
	return 0
}

func usage() {
	fmt.Fprint(os.Stderr, `usage: pos-cli <command> [flags]

commands:
  products                          list the catalog
  product  -id N | -barcode CODE    show one product
  customers                         list customers
  orders                            list orders
  order    -id N                    show one order
  status   -tx ID                   payment status of a transaction
  refund   -tx ID [-reason TEXT]    refund a transaction's payment
  invoice  -id N [-email ADDR] [-download FILE]
  report   [-date YYYY-MM-DD]       end-of-day report (today by default)
  history  -from YYYY-MM-DD -to YYYY-MM-DD
  export   -from YYYY-MM-DD -to YYYY-MM-DD -out FILE.xlsx
  scan     [-window 2s]             look up barcodes read from stdin
`)
}
