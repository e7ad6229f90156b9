package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/MikeMC777/pos-facade/internal/facade"
	"github.com/MikeMC777/pos-facade/internal/report"
	"github.com/MikeMC777/pos-facade/internal/scan"
)

var errUsage = errors.New("invalid usage")

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseDay(name, v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, fmt.Errorf("-%s is required: %w", name, errUsage)
	}
	t, err := time.ParseInLocation(report.DateLayout, v, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("-%s must be YYYY-MM-DD: %w", name, errUsage)
	}
	return t, nil
}

func run(ctx context.Context, f *facade.Facade, args []string, in io.Reader, out io.Writer) error {
	cmd, rest := args[0], args[1:]
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	switch cmd {
	case "products":
		list, err := f.Products.List(ctx)
		if err != nil {
			return err
		}
		return printJSON(out, list)

	case "product":
		id := fs.Int64("id", 0, "product id")
		barcode := fs.String("barcode", "", "barcode")
		if err := fs.Parse(rest); err != nil {
			return fmt.Errorf("%v: %w", err, errUsage)
		}
		if *barcode != "" {
			p, err := f.Products.GetByBarcode(ctx, *barcode)
			if err != nil {
				return err
			}
			return printJSON(out, p)
		}
		if *id < 1 {
			return fmt.Errorf("product needs -id or -barcode: %w", errUsage)
		}
		p, err := f.Products.GetByID(ctx, *id)
		if err != nil {
			return err
		}
		return printJSON(out, p)

	case "customers":
		list, err := f.Customers.List(ctx)
		if err != nil {
			return err
		}
		return printJSON(out, list)

	case "orders":
		list, err := f.Orders.List(ctx)
		if err != nil {
			return err
		}
		return printJSON(out, list)

	case "order":
		id := fs.Int64("id", 0, "order id")
		if err := fs.Parse(rest); err != nil || *id < 1 {
			return fmt.Errorf("order needs -id: %w", errUsage)
		}
		o, err := f.Orders.GetByID(ctx, *id)
		if err != nil {
			return err
		}
		return printJSON(out, o)

	case "status":
		tx := fs.String("tx", "", "transaction id")
		if err := fs.Parse(rest); err != nil {
			return fmt.Errorf("%v: %w", err, errUsage)
		}
		st, err := f.Payments.GetStatus(ctx, *tx)
		if err != nil {
			return err
		}
		return printJSON(out, st)

	case "refund":
		tx := fs.String("tx", "", "transaction id")
		reason := fs.String("reason", "", "refund reason")
		if err := fs.Parse(rest); err != nil {
			return fmt.Errorf("%v: %w", err, errUsage)
		}
		p, err := f.Payments.Refund(ctx, *tx, *reason)
		if err != nil {
			return err
		}
		return printJSON(out, p)

	case "invoice":
		id := fs.Int64("id", 0, "invoice id")
		email := fs.String("email", "", "send the invoice to this address")
		download := fs.String("download", "", "save the printable invoice to this file")
		if err := fs.Parse(rest); err != nil || *id < 1 {
			return fmt.Errorf("invoice needs -id: %w", errUsage)
		}
		if *email != "" {
			if err := f.Invoices.Email(ctx, *id, *email); err != nil {
				return err
			}
			fmt.Fprintf(out, "invoice %d sent to %s\n", *id, *email)
		}
		if *download != "" {
			body, _, err := f.Invoices.Download(ctx, *id)
			if err != nil {
				return err
			}
			if err := os.WriteFile(*download, body, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(out, "invoice %d saved to %s\n", *id, *download)
		}
		if *email != "" || *download != "" {
			return nil
		}
		inv, err := f.Invoices.GetByID(ctx, *id)
		if err != nil {
			return err
		}
		return printJSON(out, inv)

	case "report":
		date := fs.String("date", "", "YYYY-MM-DD, today when empty")
		if err := fs.Parse(rest); err != nil {
			return fmt.Errorf("%v: %w", err, errUsage)
		}
		if *date == "" {
			r, err := f.Reports.GetEndOfDay(ctx)
			if err != nil {
				return err
			}
			return printJSON(out, r)
		}
		day, err := parseDay("date", *date)
		if err != nil {
			return err
		}
		r, err := f.Reports.GetByDate(ctx, day)
		if err != nil {
			return err
		}
		return printJSON(out, r)

	case "history", "export":
		from := fs.String("from", "", "first day, YYYY-MM-DD")
		to := fs.String("to", "", "last day, YYYY-MM-DD")
		dest := fs.String("out", "", "xlsx file to write")
		if err := fs.Parse(rest); err != nil {
			return fmt.Errorf("%v: %w", err, errUsage)
		}
		start, err := parseDay("from", *from)
		if err != nil {
			return err
		}
		end, err := parseDay("to", *to)
		if err != nil {
			return err
		}
		reports, err := f.Reports.GetHistory(ctx, start, end)
		if err != nil {
			return err
		}
		if cmd == "history" {
			return printJSON(out, reports)
		}
		if *dest == "" {
			return fmt.Errorf("export needs -out: %w", errUsage)
		}
		return writeXLSX(*dest, reports)

	case "scan":
		window := fs.Duration("window", scan.DefaultRepeatWindow, "ignore repeats of a barcode within this window")
		if err := fs.Parse(rest); err != nil {
			return fmt.Errorf("%v: %w", err, errUsage)
		}
		relay := scan.NewRelay(f.Products.GetByBarcode, *window)
		return relay.Run(ctx, in, out)
	}
	return fmt.Errorf("unknown command %q: %w", cmd, errUsage)
}

func writeXLSX(path string, reports []report.Report) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.ExportXLSX(file, reports...); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
