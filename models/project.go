package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Project is a completed-work portfolio entry shown on the public site.
type Project struct {
	Id          bson.ObjectID  `bson:"_id,omitempty" json:"id"`
	Title       string         `bson:"title" json:"title"`
	TitleEn     string         `bson:"titleEn,omitempty" json:"titleEn,omitempty"`
	Slug        string         `bson:"slug" json:"slug"`
	Description string         `bson:"description,omitempty" json:"description,omitempty"`
	Client      string         `bson:"client,omitempty" json:"client,omitempty"`
	Location    string         `bson:"location,omitempty" json:"location,omitempty"`
	Year        int            `bson:"year,omitempty" json:"year,omitempty"`
	CategoryId  *bson.ObjectID `bson:"categoryId,omitempty" json:"categoryId,omitempty"`
	Images      []string       `bson:"images" json:"images"`
	IsFeatured  bool           `bson:"isFeatured" json:"isFeatured"`
	CreatedAt   time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time      `bson:"updatedAt" json:"updatedAt"`
}
