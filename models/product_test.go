package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vinhphat/vpmetalbackend/forms"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Older rows persisted images (and description/specs) as JSON-encoded
// strings. Those rows must still decode; normalization happens later in the
// forms package.
func TestProductDecodesLegacyStringFields(t *testing.T) {
	raw, err := bson.Marshal(bson.M{
		"_id":         bson.NewObjectID(),
		"name":        "Bàn thao tác",
		"slug":        "ban-thao-tac",
		"categoryId":  bson.NewObjectID(),
		"description": "Good table",
		"images":      `["https://cdn.test/products/a.png","https://cdn.test/products/b.png"]`,
		"isFeatured":  true,
	})
	require.NoError(t, err)

	var p Product
	require.NoError(t, bson.Unmarshal(raw, &p))

	assert.Equal(t, []string{
		"https://cdn.test/products/a.png",
		"https://cdn.test/products/b.png",
	}, forms.ParseImageList(p.Images))
	assert.Equal(t, "Good table", forms.ParseDescription(p.Description).Overview)
}

func TestProductDecodesArrayImages(t *testing.T) {
	raw, err := bson.Marshal(bson.M{
		"name":       "Kệ chứa hàng",
		"slug":       "ke-chua-hang",
		"categoryId": bson.NewObjectID(),
		"images":     bson.A{"https://cdn.test/products/a.png"},
	})
	require.NoError(t, err)

	var p Product
	require.NoError(t, bson.Unmarshal(raw, &p))
	assert.Equal(t, []string{"https://cdn.test/products/a.png"}, forms.ParseImageList(p.Images))
}
