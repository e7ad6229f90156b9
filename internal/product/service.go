// Package product is the client for the product catalog endpoints.
package product

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/MikeMC777/pos-facade/internal/apierr"
	"github.com/MikeMC777/pos-facade/internal/httpx"
)

// BarcodeRoute selects how barcode lookups are addressed. The backend has
// shipped both conventions.
type BarcodeRoute int

const (
	BarcodeInPath  BarcodeRoute = iota // GET /api/product/barcode/{barcode}
	BarcodeInQuery                     // GET /product?barcode={barcode}
)

type Service struct {
	c       *httpx.Client
	barcode BarcodeRoute
}

func NewService(c *httpx.Client, barcode BarcodeRoute) *Service {
	return &Service{c: c, barcode: barcode}
}

func (s *Service) List(ctx context.Context) ([]Product, error) {
	var out []Product
	if err := s.c.Get(ctx, "/api/products", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Product, error) {
	var p Product
	if err := s.c.Get(ctx, fmt.Sprintf("/api/product/id/%d", id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Service) GetByBarcode(ctx context.Context, barcode string) (*Product, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, apierr.Validation("barcode", apierr.ErrMissingField)
	}
	var (
		p   Product
		err error
	)
	switch s.barcode {
	case BarcodeInQuery:
		err = s.c.Get(ctx, "/product", url.Values{"barcode": {barcode}}, &p)
	default:
		err = s.c.Get(ctx, "/api/product/barcode/"+url.PathEscape(barcode), nil, &p)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Service) Create(ctx context.Context, p Product) (*Product, error) {
	if err := validate(p); err != nil {
		return nil, err
	}
	var out Product
	if err := s.c.Post(ctx, "/api/product", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) Update(ctx context.Context, id int64, p Product) (*Product, error) {
	if err := validate(p); err != nil {
		return nil, err
	}
	var out Product
	if err := s.c.Put(ctx, fmt.Sprintf("/api/product/%d", id), p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.c.Delete(ctx, fmt.Sprintf("/api/product/%d", id), nil)
}

func (s *Service) GetImageURL(ctx context.Context, id int64) (string, error) {
	var img Image
	if err := s.c.Get(ctx, fmt.Sprintf("/api/product/%d/image", id), nil, &img); err != nil {
		return "", err
	}
	return img.ImageURL, nil
}

func (s *Service) UpdateImageURL(ctx context.Context, id int64, imageURL string) (*Product, error) {
	imageURL = strings.TrimSpace(imageURL)
	if imageURL == "" {
		return nil, apierr.Validation("imageUrl", apierr.ErrMissingField)
	}
	var out Product
	if err := s.c.Patch(ctx, fmt.Sprintf("/api/product/%d/image", id), Image{ImageURL: imageURL}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func validate(p Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return apierr.Validation("name", apierr.ErrMissingField)
	}
	if p.Price.IsNegative() {
		return apierr.Validation("price", apierr.ErrInvalidAmount)
	}
	if p.StockQuantity < 0 {
		return apierr.Validation("stockQuantity", errNegativeStock)
	}
	return nil
}

var errNegativeStock = fmt.Errorf("stock must be non-negative")
