package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Product is a catalog item. Description, TechnicalSpecs and Images are
// kept as raw bson values on ingest: older rows store them as JSON-encoded
// strings or bare strings while newer rows store structured documents and
// arrays. The forms package normalizes whatever is found; nothing past that
// boundary sees the raw shape.
type Product struct {
	Id             bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string        `bson:"name" json:"name"`
	NameEn         string        `bson:"nameEn,omitempty" json:"nameEn,omitempty"`
	Slug           string        `bson:"slug" json:"slug"`
	CategoryId     bson.ObjectID `bson:"categoryId" json:"categoryId"`
	Description    any           `bson:"description,omitempty" json:"-"`
	TechnicalSpecs any           `bson:"technicalSpecs,omitempty" json:"-"`
	Price          float64       `bson:"price,omitempty" json:"price,omitempty"`
	WarrantyPolicy string        `bson:"warrantyPolicy,omitempty" json:"warrantyPolicy,omitempty"`
	Images         any           `bson:"images" json:"-"`
	IsFeatured     bool          `bson:"isFeatured" json:"isFeatured"`
	CreatedAt      time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time     `bson:"updatedAt" json:"updatedAt"`
}
