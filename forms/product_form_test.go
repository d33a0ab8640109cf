package forms

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func validForm() ProductForm {
	return ProductForm{
		Name:       "Bàn thao tác inox",
		CategoryId: "65f0c0ffee65f0c0ffee65f0",
		ImageCount: 1,
	}
}

func TestProductFormValidateOrder(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*ProductForm)
		want   error
	}{
		{"whitespace name", func(f *ProductForm) { f.Name = "   " }, ErrNameRequired},
		{"missing category", func(f *ProductForm) { f.CategoryId = "" }, ErrCategoryMissing},
		{"negative price", func(f *ProductForm) { f.Price = -5.0 }, ErrInvalidPrice},
		{"garbage price", func(f *ProductForm) { f.Price = "free" }, ErrInvalidPrice},
		{"zero images", func(f *ProductForm) { f.ImageCount = 0 }, ErrNoImages},
		{"valid", func(f *ProductForm) {}, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := validForm()
			tc.mutate(&f)
			assert.Equal(t, tc.want, f.Validate())
		})
	}
}

func TestProductFormValidateFirstErrorWins(t *testing.T) {
	// everything is wrong at once; the name error wins
	f := ProductForm{Name: "", CategoryId: "", Price: "free", ImageCount: 0}
	assert.Equal(t, ErrNameRequired, f.Validate())

	f.Name = "x"
	assert.Equal(t, ErrCategoryMissing, f.Validate())
}

func TestParsePrice(t *testing.T) {
	cases := []struct {
		name    string
		raw     any
		present bool
		value   float64
		ok      bool
	}{
		{"nil", nil, false, 0, false},
		{"empty string", "   ", false, 0, false},
		{"float", 1500000.0, true, 1500000, true},
		{"int", 42, true, 42, true},
		{"numeric string", "1500000", true, 1500000, true},
		{"json number", json.Number("99.5"), true, 99.5, true},
		{"zero", 0.0, true, 0, false},
		{"negative", -1.0, true, -1, false},
		{"garbage string", "call us", true, 0, false},
		{"bool", true, true, 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			present, value, ok := ParsePrice(tc.raw)
			assert.Equal(t, tc.present, present)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.value, value)
			}
		})
	}
}

func TestProductFormDocumentDefaults(t *testing.T) {
	catID := bson.NewObjectID()
	f := validForm()
	doc := f.Document(catID, []string{"https://cdn.test/a.jpg"})

	assert.Equal(t, "Bàn thao tác inox", doc["name"])
	assert.Equal(t, catID, doc["categoryId"])
	assert.Equal(t, []string{"https://cdn.test/a.jpg"}, doc["images"])
	assert.Equal(t, true, doc["isFeatured"])

	// untouched optionals never serialize as empty values
	assert.NotContains(t, doc, "nameEn")
	assert.NotContains(t, doc, "description")
	assert.NotContains(t, doc, "technicalSpecs")
	assert.NotContains(t, doc, "price")
	assert.NotContains(t, doc, "warrantyPolicy")
}

func TestProductFormDocumentFull(t *testing.T) {
	catID := bson.NewObjectID()
	featured := false
	f := validForm()
	f.NameEn = " Stainless workbench "
	f.Description = ParseDescription(`{"overview":"Heavy duty","features":["Foldable",""]}`)
	f.TechnicalSpecs = TechnicalSpecs{Dimensions: "1200x800", Customizable: true}
	f.Price = "2500000"
	f.WarrantyPolicy = "12 months"
	f.IsFeatured = &featured

	doc := f.Document(catID, []string{"u1", "u2"})
	assert.Equal(t, "Stainless workbench", doc["nameEn"])
	assert.Equal(t, false, doc["isFeatured"])
	assert.Equal(t, float64(2500000), doc["price"])
	assert.Equal(t, "12 months", doc["warrantyPolicy"])

	desc, ok := doc["description"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, "Heavy duty", desc["overview"])
	assert.Equal(t, []string{"Foldable"}, desc["features"])

	specs, ok := doc["technicalSpecs"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, bson.M{"dimensions": "1200x800", "customizable": true}, specs)
}

func TestProductFormDocumentAllEmptySpecsOmitted(t *testing.T) {
	f := validForm()
	f.TechnicalSpecs = ParseTechnicalSpecs(map[string]any{"dimensions": "", "weight": "  "})
	doc := f.Document(bson.NewObjectID(), []string{"u"})
	assert.NotContains(t, doc, "technicalSpecs")
}
