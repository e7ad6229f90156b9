// Package scan relays barcodes from a keyboard-wedge scanner to the
// product lookup. Each line on the input is one scan.
package scan

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/MikeMC777/pos-facade/internal/apierr"
	"github.com/MikeMC777/pos-facade/internal/product"
)

// DefaultRepeatWindow swallows the repeats a scanner emits while the same
// item stays under the beam.
const DefaultRepeatWindow = 2 * time.Second

type LookupFunc func(ctx context.Context, barcode string) (*product.Product, error)

type Result struct {
	Barcode string
	Product *product.Product
	Err     error
	At      time.Time
}

type Relay struct {
	lookup LookupFunc
	window time.Duration
	now    func() time.Time

	mu     sync.Mutex
	seen   map[string]time.Time
	latest *Result
}

func NewRelay(lookup LookupFunc, window time.Duration) *Relay {
	if window < 0 {
		window = 0
	}
	return &Relay{lookup: lookup, window: window, now: time.Now, seen: make(map[string]time.Time)}
}

// Handle looks one barcode up. ok is false when the scan was blank or a
// repeat inside the window.
func (r *Relay) Handle(ctx context.Context, raw string) (res Result, ok bool) {
	code := strings.TrimSpace(raw)
	if code == "" {
		return Result{}, false
	}
	now := r.now()

	r.mu.Lock()
	if last, seen := r.seen[code]; seen && now.Sub(last) < r.window {
		r.mu.Unlock()
		return Result{}, false
	}
	for c, t := range r.seen {
		if now.Sub(t) >= r.window {
			delete(r.seen, c)
		}
	}
	r.seen[code] = now
	r.mu.Unlock()

	p, err := r.lookup(ctx, code)
	res = Result{Barcode: code, Product: p, Err: err, At: now}

	r.mu.Lock()
	r.latest = &res
	r.mu.Unlock()
	return res, true
}

// Latest is the most recent scan that was looked up.
func (r *Relay) Latest() (Result, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.latest == nil {
		return Result{}, false
	}
	return *r.latest, true
}

// Run reads scans from in until EOF or ctx ends, writing one line per
// lookup to out. Lookup failures are reported and scanning continues;
// only input errors stop it.
func (r *Relay) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	lines := bufio.NewScanner(in)
	for lines.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		res, ok := r.Handle(ctx, lines.Text())
		if !ok {
			continue
		}
		fmt.Fprintln(out, describe(res))
	}
	return lines.Err()
}

func describe(res Result) string {
	switch {
	case res.Err == nil && res.Product != nil:
		p := res.Product
		return fmt.Sprintf("%s\t#%d %s\t%s\tstock=%d", res.Barcode, p.ID, p.Name, p.Price.StringFixed(2), p.StockQuantity)
	case apierr.StatusCode(res.Err) == 404:
		return fmt.Sprintf("%s\tnot found", res.Barcode)
	case res.Err != nil:
		var ae *apierr.Error
		if errors.As(res.Err, &ae) {
			return fmt.Sprintf("%s\terror kind=%s: %s", res.Barcode, ae.Kind, ae.Error())
		}
		return fmt.Sprintf("%s\terror: %v", res.Barcode, res.Err)
	}
	return res.Barcode
}
