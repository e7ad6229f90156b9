// Package customer is the client for the customer endpoints.
package customer

import (
	"context"
	"fmt"
	"strings"

	"github.com/MikeMC777/pos-facade/internal/apierr"
	"github.com/MikeMC777/pos-facade/internal/coerce"
	"github.com/MikeMC777/pos-facade/internal/httpx"
)

type Customer struct {
	ID      int64  `json:"id,omitempty"`
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

type Service struct{ c *httpx.Client }

func NewService(c *httpx.Client) *Service { return &Service{c: c} }

func (s *Service) List(ctx context.Context) ([]Customer, error) {
	var out []Customer
	if err := s.c.Get(ctx, "/api/customers", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Customer, error) {
	var out Customer
	if err := s.c.Get(ctx, fmt.Sprintf("/api/customer/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) Create(ctx context.Context, in Customer) (*Customer, error) {
	in, err := clean(in)
	if err != nil {
		return nil, err
	}
	var out Customer
	if err := s.c.Post(ctx, "/api/customer", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) Update(ctx context.Context, id int64, in Customer) (*Customer, error) {
	in, err := clean(in)
	if err != nil {
		return nil, err
	}
	var out Customer
	if err := s.c.Put(ctx, fmt.Sprintf("/api/customer/%d", id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.c.Delete(ctx, fmt.Sprintf("/api/customer/%d", id), nil)
}

// clean trims contact fields; a name is required and an email, when given,
// must be well formed.
func clean(c Customer) (Customer, error) {
	c.Name = strings.TrimSpace(c.Name)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Address = strings.TrimSpace(c.Address)
	if c.Name == "" {
		return c, apierr.Validation("name", apierr.ErrMissingField)
	}
	if strings.TrimSpace(c.Email) != "" {
		email, ok := coerce.Email(c.Email)
		if !ok {
			return c, apierr.Validation("email", apierr.ErrInvalidEmail)
		}
		c.Email = email
	}
	return c, nil
}
