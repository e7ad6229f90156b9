package httpx

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/MikeMC777/pos-facade/internal/apierr"
)

type ctxKey struct{}

// ContextWithRequestID makes RequestID reuse id instead of generating one.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// RequestID tags every outbound request with X-Request-ID.
func RequestID() Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, req *Request) (*Response, error) {
			if req.Header.Get(HeaderRequestID) == "" {
				rid := RequestIDFrom(ctx)
				if rid == "" {
					rid = uuid.NewString()
				}
				req.Header.Set(HeaderRequestID, rid)
			}
			return next(ctx, req)
		}
	}
}

// Logger is the request/response hook. Bodies are only written in verbose
// mode, with card data redacted.
func Logger(l *log.Logger, verbose bool) Middleware {
	if l == nil {
		l = log.Default()
	}
	return func(next Handler) Handler {
		return func(ctx context.Context, req *Request) (*Response, error) {
			rid := req.Header.Get(HeaderRequestID)
			if verbose && len(req.payload) > 0 {
				l.Printf("[http] rid=%s -> %s %s body=%s", rid, req.Method, req.Path, Redact(req.payload))
			} else {
				l.Printf("[http] rid=%s -> %s %s", rid, req.Method, req.Path)
			}

			start := time.Now()
			res, err := next(ctx, req)
			dur := time.Since(start)

			status := 0
			if res != nil {
				status = res.StatusCode
			}
			if err != nil {
				cause := errors.Unwrap(err)
				if cause == nil {
					cause = err
				}
				l.Printf("[http] rid=%s <- %s %s status=%d kind=%s dur=%s err=%q",
					rid, req.Method, req.Path, status, apierr.KindOf(err), dur, cause.Error())
				return res, err
			}
			if verbose && isJSON(res) {
				l.Printf("[http] rid=%s <- %s %s status=%d dur=%s body=%s", rid, req.Method, req.Path, status, dur, Redact(res.Body))
			} else {
				l.Printf("[http] rid=%s <- %s %s status=%d dur=%s", rid, req.Method, req.Path, status, dur)
			}
			return res, nil
		}
	}
}

func isJSON(res *Response) bool {
	if res == nil || len(res.Body) == 0 {
		return false
	}
	ct := res.Header.Get("Content-Type")
	return ct == "" || strings.Contains(ct, "json")
}

var sensitive = regexp.MustCompile(`(?i)"(cardNumber|cvv|cvc)"\s*:\s*"[^"]*"`)

const maxLoggedBody = 2048

// Redact masks card numbers and security codes in a JSON body.
func Redact(body []byte) string {
	s := sensitive.ReplaceAllString(string(body), `"$1":"***"`)
	if len(s) > maxLoggedBody {
		cut := maxLoggedBody
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut] + "...(truncated)"
	}
	return s
}

// Classify is the error hook: transport failures become Timeout or
// NetworkUnreachable, non-2xx responses become HttpStatus. The original
// error stays reachable through errors.Unwrap. A cancelled context is
// returned as is.
func Classify() Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, req *Request) (*Response, error) {
			res, err := next(ctx, req)
			if err != nil {
				return nil, classify(err)
			}
			return checkStatus(res)
		}
	}
}

func classify(err error) error {
	var ae *apierr.Error
	if errors.As(err, &ae) {
		return err
	}
	// caller gave up; nothing to report and nothing to retry
	if errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return apierr.Timeout(err)
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return apierr.Timeout(err)
	}
	return apierr.Network(err)
}

func checkStatus(res *Response) (*Response, error) {
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return res, apierr.HTTPStatus(res.StatusCode, res.Body)
	}
	return res, nil
}

// Recorder receives one observation per call.
type Recorder interface {
	RecordRequest(ctx context.Context, method, route string, status int, errKind string, d time.Duration)
}

func Metrics(r Recorder) Middleware {
	if r == nil {
		return nil
	}
	return func(next Handler) Handler {
		return func(ctx context.Context, req *Request) (*Response, error) {
			start := time.Now()
			res, err := next(ctx, req)
			status, kind := 0, ""
			if res != nil {
				status = res.StatusCode
			}
			switch {
			case errors.Is(err, context.Canceled):
				kind = "canceled"
			case err != nil:
				kind = apierr.KindOf(err).String()
			}
			r.RecordRequest(ctx, req.Method, Route(req.Path), status, kind, time.Since(start))
			return res, err
		}
	}
}

// Route replaces numeric path segments with {id} to keep metric labels
// bounded.
func Route(path string) string {
	parts := strings.Split(path, "/")
	for i, p := range parts {
		if p == "" {
			continue
		}
		if _, err := strconv.ParseInt(p, 10, 64); err == nil {
			parts[i] = "{id}"
		}
	}
	return strings.Join(parts, "/")
}

// RateLimit delays outbound calls to the limiter's rate. A wait that cannot
// finish before the context ends fails as Timeout.
func RateLimit(l *rate.Limiter) Middleware {
	if l == nil {
		return nil
	}
	return func(next Handler) Handler {
		return func(ctx context.Context, req *Request) (*Response, error) {
			if err := l.Wait(ctx); err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					err = ctxErr
				}
				if errors.Is(err, context.Canceled) {
					return nil, err
				}
				return nil, apierr.Timeout(fmt.Errorf("rate limit: %w", err))
			}
			return next(ctx, req)
		}
	}
}
