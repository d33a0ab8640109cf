package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type ServiceStatus string

const (
	ServiceStatusActive   ServiceStatus = "active"
	ServiceStatusDraft    ServiceStatus = "draft"
	ServiceStatusArchived ServiceStatus = "archived"
)

// Service is a fabrication service offering. The rich-text fields
// (Features, Technologies, Benefits, Customers) hold either an HTML blob or
// a plain string array converted to an unordered list; see forms.ParseRichText.
type Service struct {
	Id           bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string        `bson:"name" json:"name"`
	NameEn       string        `bson:"nameEn,omitempty" json:"nameEn,omitempty"`
	Slug         string        `bson:"slug" json:"slug"`
	Description  string        `bson:"description,omitempty" json:"description,omitempty"`
	Features     any           `bson:"features,omitempty" json:"-"`
	Technologies any           `bson:"technologies,omitempty" json:"-"`
	Benefits     any           `bson:"benefits,omitempty" json:"-"`
	Customers    any           `bson:"customers,omitempty" json:"-"`
	ImageUrls    []string      `bson:"imageUrls" json:"imageUrls"`
	Status       ServiceStatus `bson:"status" json:"status"`
	ThemeVariant string        `bson:"themeVariant,omitempty" json:"themeVariant,omitempty"`
	Tags         []string      `bson:"tags,omitempty" json:"tags,omitempty"`
	OrderIndex   int           `bson:"orderIndex" json:"orderIndex"`
	CreatedAt    time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time     `bson:"updatedAt" json:"updatedAt"`
}
