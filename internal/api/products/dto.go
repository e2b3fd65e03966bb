package products

import (
	"bytes"
	"encoding/json"
	"errors"

	"watch-storefront/internal/service"
)

// jsonField records whether a key was present in the request and keeps its
// value as text. Strings, numbers and null are accepted; null and "" clear
// optional fields.
type jsonField struct {
	Set   bool
	Value string
}

func (f *jsonField) UnmarshalJSON(b []byte) error {
	f.Set = true
	b = bytes.TrimSpace(b)

	switch {
	case bytes.Equal(b, []byte("null")):
		f.Value = ""
		return nil
	case len(b) > 0 && b[0] == '"':
		return json.Unmarshal(b, &f.Value)
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return errors.New("expected a string, a number or null")
	}
	f.Value = n.String()
	return nil
}

func (f jsonField) ptr() *string {
	if !f.Set {
		return nil
	}
	v := f.Value
	return &v
}

type ProductRequest struct {
	ID            string    `json:"id"`
	TitleEn       jsonField `json:"titleEn"`
	TitleIt       jsonField `json:"titleIt"`
	DescriptionEn jsonField `json:"descriptionEn"`
	DescriptionIt jsonField `json:"descriptionIt"`
	Price         jsonField `json:"price"`
	Status        jsonField `json:"status"`
	Brand         jsonField `json:"brand"`
	Model         jsonField `json:"model"`
	Year          jsonField `json:"year"`
	Condition     jsonField `json:"condition"`
	ImageURL      jsonField `json:"imageUrl"`
}

func (r ProductRequest) input() service.ProductInput {
	return service.ProductInput{
		TitleEn:       r.TitleEn.ptr(),
		TitleIt:       r.TitleIt.ptr(),
		DescriptionEn: r.DescriptionEn.ptr(),
		DescriptionIt: r.DescriptionIt.ptr(),
		Price:         r.Price.ptr(),
		Status:        r.Status.ptr(),
		Brand:         r.Brand.ptr(),
		Model:         r.Model.ptr(),
		Year:          r.Year.ptr(),
		Condition:     r.Condition.ptr(),
		ImageURL:      r.ImageURL.ptr(),
	}
}
