package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type ContactStatus string

const (
	ContactStatusNew        ContactStatus = "NEW"
	ContactStatusInProgress ContactStatus = "IN_PROGRESS"
	ContactStatusResolved   ContactStatus = "RESOLVED"
)

// Contact is a submission from the public contact/quote funnel. Deletion is
// soft: DeletedAt is set and the row drops out of default listings.
type Contact struct {
	Id        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName  string        `bson:"fullName" json:"fullName"`
	Email     string        `bson:"email" json:"email"`
	Phone     string        `bson:"phone" json:"phone"`
	Company   string        `bson:"company,omitempty" json:"company,omitempty"`
	Subject   string        `bson:"subject,omitempty" json:"subject,omitempty"`
	Message   string        `bson:"message" json:"message"`
	Status    ContactStatus `bson:"status" json:"status"`
	DeletedAt *time.Time    `bson:"deletedAt,omitempty" json:"deletedAt,omitempty"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt" json:"updatedAt"`
}
