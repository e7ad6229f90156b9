package httpx

import (
	"bytes"
	"context"
	"log"
	"net/http"

	"github.com/MikeMC777/pos-facade/internal/apierr"
)

// Fallback serves requests that could not reach the backend (Timeout or
// NetworkUnreachable) from an in-process handler instead. It masks real
// outages and must only be installed in development.
func Fallback(h http.Handler, l *log.Logger) Middleware {
	if h == nil {
		return nil
	}
	if l == nil {
		l = log.Default()
	}
	return func(next Handler) Handler {
		return func(ctx context.Context, req *Request) (*Response, error) {
			res, err := next(ctx, req)
			if err == nil || !(apierr.IsTimeout(err) || apierr.IsNetwork(err)) {
				return res, err
			}
			l.Printf("[http] rid=%s mock fallback %s %s after %q",
				req.Header.Get(HeaderRequestID), req.Method, req.Path, err.Error())
			local, lerr := serveLocal(ctx, h, req)
			if lerr != nil {
				return nil, err
			}
			return checkStatus(local)
		}
	}
}

func serveLocal(ctx context.Context, h http.Handler, req *Request) (*Response, error) {
	target := req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}
	hreq, err := http.NewRequestWithContext(ctx, req.Method, "http://fallback.local"+target, bytes.NewReader(req.payload))
	if err != nil {
		return nil, err
	}
	hreq.Header.Set("Content-Type", ContentTypeJSON)
	for k, vs := range req.Header {
		hreq.Header[k] = vs
	}
	rec := &recorder{header: http.Header{}}
	h.ServeHTTP(rec, hreq)
	if rec.status == 0 {
		rec.status = http.StatusOK
	}
	return &Response{StatusCode: rec.status, Header: rec.header, Body: rec.body.Bytes()}, nil
}

type recorder struct {
	header http.Header
	status int
	body   bytes.Buffer
}

func (r *recorder) Header() http.Header { return r.header }

func (r *recorder) WriteHeader(code int) {
	if r.status == 0 {
		r.status = code
	}
}

func (r *recorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.body.Write(b)
}
