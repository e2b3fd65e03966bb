package service

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"watch-storefront/internal/domain/catalog"

	"github.com/shopspring/decimal"
)

var ErrValidation = errors.New("validation failed")

func invalid(field, msg string) error {
	return fmt.Errorf("%w: %s %s", ErrValidation, field, msg)
}

// ProductInput carries product fields as submitted by a client. A nil field
// is left untouched; an empty optional field is cleared.
type ProductInput struct {
	TitleEn       *string
	TitleIt       *string
	DescriptionEn *string
	DescriptionIt *string
	Price         *string
	Status        *string
	Brand         *string
	Model         *string
	Year          *string
	Condition     *string
	ImageURL      *string
}

type opt[T any] struct {
	set bool
	v   T
}

func some[T any](v T) opt[T] {
	return opt[T]{set: true, v: v}
}

type productFields struct {
	titleEn, titleIt   opt[string]
	descEn, descIt     opt[string]
	price              opt[decimal.NullDecimal]
	status             opt[catalog.Status]
	brand, model, cond opt[*string]
	year               opt[*int]
	imageURL           string
}

const (
	minYear = 1800
	maxYear = 2100
)

// maxPrice is the first value that no longer fits the numeric(12,2) column.
var maxPrice = decimal.New(1, 10)

func (in ProductInput) parse() (productFields, error) {
	var f productFields

	if in.TitleEn != nil {
		v := strings.TrimSpace(*in.TitleEn)
		if v == "" {
			return f, invalid("titleEn", "must not be empty")
		}
		f.titleEn = some(v)
	}
	if in.TitleIt != nil {
		f.titleIt = some(strings.TrimSpace(*in.TitleIt))
	}
	if in.DescriptionEn != nil {
		f.descEn = some(strings.TrimSpace(*in.DescriptionEn))
	}
	if in.DescriptionIt != nil {
		f.descIt = some(strings.TrimSpace(*in.DescriptionIt))
	}

	if in.Price != nil {
		p, err := ParsePrice(*in.Price)
		if err != nil {
			return f, err
		}
		f.price = some(p)
	}

	if in.Status != nil {
		st, ok := catalog.ParseStatus(*in.Status)
		if !ok {
			return f, invalid("status", "must be one of AVAILABLE, SOLD, RESERVED")
		}
		f.status = some(st)
	}

	if in.Brand != nil {
		f.brand = some(optionalString(*in.Brand))
	}
	if in.Model != nil {
		f.model = some(optionalString(*in.Model))
	}
	if in.Condition != nil {
		f.cond = some(optionalString(*in.Condition))
	}

	if in.Year != nil {
		y, err := ParseYear(*in.Year)
		if err != nil {
			return f, err
		}
		f.year = some(y)
	}

	if in.ImageURL != nil && strings.TrimSpace(*in.ImageURL) != "" {
		raw := strings.TrimSpace(*in.ImageURL)
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return f, invalid("imageUrl", "must be an absolute http(s) URL")
		}
		f.imageURL = raw
	}

	return f, nil
}

// ParsePrice reads a non-negative decimal. The empty string means "price on
// request" and yields a NULL price.
func ParsePrice(s string) (decimal.NullDecimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, invalid("price", "must be a number")
	}
	if d.IsNegative() {
		return decimal.NullDecimal{}, invalid("price", "must not be negative")
	}
	if d.Exponent() < -2 && !d.Equal(d.Round(2)) {
		return decimal.NullDecimal{}, invalid("price", "must have at most 2 decimal places")
	}
	if d.GreaterThanOrEqual(maxPrice) {
		return decimal.NullDecimal{}, invalid("price", "must be less than "+maxPrice.String())
	}
	return decimal.NewNullDecimal(d.Round(2)), nil
}

// ParseYear reads a production year; the empty string clears it.
func ParseYear(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	y, err := strconv.Atoi(s)
	if err != nil {
		return nil, invalid("year", "must be an integer")
	}
	if y < minYear || y > maxYear {
		return nil, invalid("year", fmt.Sprintf("must be between %d and %d", minYear, maxYear))
	}
	return &y, nil
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// newProduct builds a product for creation. An empty Italian title falls
// back to the English one.
func (f productFields) newProduct() (*catalog.Product, error) {
	if !f.titleEn.set {
		return nil, invalid("titleEn", "is required")
	}

	p := &catalog.Product{
		TitleEn:       f.titleEn.v,
		TitleIt:       f.titleIt.v,
		DescriptionEn: f.descEn.v,
		DescriptionIt: f.descIt.v,
		Price:         f.price.v,
		Status:        catalog.StatusAvailable,
		Brand:         f.brand.v,
		Model:         f.model.v,
		Year:          f.year.v,
		Condition:     f.cond.v,
	}
	if p.TitleIt == "" {
		p.TitleIt = p.TitleEn
	}
	if f.status.set {
		p.Status = f.status.v
	}
	return p, nil
}

// columns maps the submitted fields to database columns for an update.
func (f productFields) columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if f.titleEn.set {
		cols["title_en"] = f.titleEn.v
	}
	if f.titleIt.set {
		cols["title_it"] = f.titleIt.v
	}
	if f.descEn.set {
		cols["description_en"] = f.descEn.v
	}
	if f.descIt.set {
		cols["description_it"] = f.descIt.v
	}
	if f.price.set {
		cols["price"] = f.price.v
	}
	if f.status.set {
		cols["status"] = f.status.v
	}
	if f.brand.set {
		cols["brand"] = f.brand.v
	}
	if f.model.set {
		cols["model"] = f.model.v
	}
	if f.cond.set {
		cols["condition"] = f.cond.v
	}
	if f.year.set {
		cols["year"] = f.year.v
	}
	return cols
}
