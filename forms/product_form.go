package forms

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
)

var (
	ErrNameRequired    = errors.New("name is required")
	ErrCategoryMissing = errors.New("category is required")
	ErrInvalidPrice    = errors.New("price must be a positive number")
	ErrNoImages        = errors.New("at least one image is required")
)

// ProductForm is the validated, canonical edit state assembled from an
// admin create/update request. Price stays raw until validation because the
// clients send it as either a number or a string.
type ProductForm struct {
	Name           string
	NameEn         string
	CategoryId     string
	Description    Description
	TechnicalSpecs TechnicalSpecs
	Price          any
	WarrantyPolicy string
	IsFeatured     *bool
	ImageCount     int
}

// Validate gates submission. Rules run in field order and the first
// violation wins: name, category, price, images.
func (f *ProductForm) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return ErrNameRequired
	}
	if strings.TrimSpace(f.CategoryId) == "" {
		return ErrCategoryMissing
	}
	if present, _, ok := ParsePrice(f.Price); present && !ok {
		return ErrInvalidPrice
	}
	if f.ImageCount < 1 {
		return ErrNoImages
	}
	return nil
}

// ParsePrice leniently coerces a submitted price. present reports whether a
// value was supplied at all; ok reports whether it resolved to a positive
// number.
func ParsePrice(raw any) (present bool, value float64, ok bool) {
	switch v := raw.(type) {
	case nil:
		return false, 0, false
	case float64:
		return true, v, v > 0
	case float32:
		return true, float64(v), v > 0
	case int:
		return true, float64(v), v > 0
	case int64:
		return true, float64(v), v > 0
	case json.Number:
		n, err := v.Float64()
		return true, n, err == nil && n > 0
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return false, 0, false
		}
		n, err := strconv.ParseFloat(s, 64)
		return true, n, err == nil && n > 0
	default:
		return true, 0, false
	}
}

// Document serializes the form into the outbound product document. Optional
// fields resolving to empty are omitted, not sent empty; isFeatured
// defaults to true when the form left it unset.
func (f *ProductForm) Document(categoryId bson.ObjectID, images []string) bson.M {
	doc := bson.M{
		"name":       strings.TrimSpace(f.Name),
		"categoryId": categoryId,
		"images":     images,
		"isFeatured": true,
	}
	if f.IsFeatured != nil {
		doc["isFeatured"] = *f.IsFeatured
	}
	if s := strings.TrimSpace(f.NameEn); s != "" {
		doc["nameEn"] = s
	}
	if d := f.Description.Document(); d != nil {
		doc["description"] = d
	}
	if t := f.TechnicalSpecs.Document(); t != nil {
		doc["technicalSpecs"] = t
	}
	if _, value, ok := ParsePrice(f.Price); ok {
		doc["price"] = value
	}
	if s := strings.TrimSpace(f.WarrantyPolicy); s != "" {
		doc["warrantyPolicy"] = s
	}
	return doc
}
