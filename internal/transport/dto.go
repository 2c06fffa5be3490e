package transport

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Skotchmaster/gallery/internal/domain"
)

type CreateProductRequest struct {
	Name  string `json:"name"  form:"name"`
	Price *int64 `json:"price" form:"price"`
	Stock *int64 `json:"stock" form:"stock"`
	Image string `json:"image" form:"-"`
}

func (r CreateProductRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if r.Price == nil {
		return fmt.Errorf("%w: price is required", domain.ErrValidation)
	}
	if r.Stock == nil {
		return fmt.Errorf("%w: stock is required", domain.ErrValidation)
	}
	return nil
}

// ParseCreateProductForm builds a request from raw form values. Price and
// stock must parse as base-10 integers.
func ParseCreateProductForm(name, price, stock string) (CreateProductRequest, error) {
	req := CreateProductRequest{Name: strings.TrimSpace(name)}

	p, err := parseRequiredInt("price", price)
	if err != nil {
		return req, err
	}
	s, err := parseRequiredInt("stock", stock)
	if err != nil {
		return req, err
	}
	req.Price, req.Stock = p, s

	return req, req.Validate()
}

func parseRequiredInt(field, raw string) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("%w: %s is required", domain.ErrValidation, field)
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s is not an integer", domain.ErrValidation, field)
	}
	return &v, nil
}

// ContactRequest replaces every contact field at once; a nil field means the
// caller did not send it.
type ContactRequest struct {
	Phone1    *string `json:"phone1"    form:"phone1"`
	Phone2    *string `json:"phone2"    form:"phone2"`
	Instagram *string `json:"instagram" form:"instagram"`
	Email     *string `json:"email"     form:"email"`
}

func (r ContactRequest) Validate() error {
	fields := []struct {
		name string
		v    *string
	}{
		{"phone1", r.Phone1},
		{"phone2", r.Phone2},
		{"instagram", r.Instagram},
		{"email", r.Email},
	}
	for _, f := range fields {
		if f.v == nil {
			return fmt.Errorf("%w: %s is required", domain.ErrValidation, f.name)
		}
	}
	return nil
}

type CredentialRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

func (r CredentialRequest) Validate() error {
	if r.Username == "" || r.Password == "" {
		return fmt.Errorf("%w: username and password are required", domain.ErrValidation)
	}
	return nil
}

type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}
