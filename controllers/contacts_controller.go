package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/vinhphat/vpmetalbackend/database"
	"github.com/vinhphat/vpmetalbackend/dto"
	"github.com/vinhphat/vpmetalbackend/forms"
	"github.com/vinhphat/vpmetalbackend/models"
	"github.com/vinhphat/vpmetalbackend/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// CreateContact is the public contact/quote funnel entry point. The body
// is gated by the schema validator before anything touches the database.
func CreateContact() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var body dto.CreateContactDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json body"})
			return
		}
		if err := forms.ValidateStruct(body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		now := time.Now().UTC()
		contact := models.Contact{
			FullName:  strings.TrimSpace(body.FullName),
			Email:     strings.ToLower(strings.TrimSpace(body.Email)),
			Phone:     strings.TrimSpace(body.Phone),
			Company:   strings.TrimSpace(body.Company),
			Subject:   strings.TrimSpace(body.Subject),
			Message:   body.Message,
			Status:    models.ContactStatusNew,
			CreatedAt: now,
			UpdatedAt: now,
		}

		col := database.OpenCollection("contacts")
		res, err := col.InsertOne(ctx, contact)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		logrus.WithField("email", contact.Email).Info("contact received")
		c.JSON(http.StatusCreated, gin.H{"id": res.InsertedID})
	}
}

func GetContacts() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("contacts")

		page, limit, skip := utils.Pagination(c.Query("page"), c.Query("limit"), 20, 100)

		filter := bson.M{"deletedAt": bson.M{"$exists": false}}
		if b, err := utils.ParseBoolQuery(c.Query("includeDeleted")); err == nil && b != nil && *b {
			delete(filter, "deletedAt")
		}
		if st := strings.TrimSpace(c.Query("status")); st != "" {
			filter["status"] = st
		}

		opts := options.Find().
			SetSkip(skip).
			SetLimit(int64(limit)).
			SetSort(bson.D{{Key: "createdAt", Value: -1}})

		cursor, err := col.Find(ctx, filter, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer cursor.Close(ctx)

		items := make([]models.Contact, 0)
		for cursor.Next(ctx) {
			var ct models.Contact
			if err := cursor.Decode(&ct); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			items = append(items, ct)
		}
		if err := cursor.Err(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		total, err := col.CountDocuments(ctx, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"items": items,
			"page":  page,
			"limit": limit,
			"total": total,
		})
	}
}

func GetContact() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("contacts")

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contact id"})
			return
		}

		var ct models.Contact
		if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&ct); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "contact not found"})
			return
		}
		c.JSON(http.StatusOK, ct)
	}
}

func UpdateContactStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("contacts")

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contact id"})
			return
		}

		var body dto.UpdateContactStatusDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		status := models.ContactStatus(body.Status)
		switch status {
		case models.ContactStatusNew, models.ContactStatusInProgress, models.ContactStatusResolved:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}

		res, err := col.UpdateByID(ctx, id, bson.M{"$set": bson.M{
			"status":    status,
			"updatedAt": time.Now().UTC(),
		}})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "contact not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// DeleteContact soft-deletes: the row keeps its audit trail but drops out
// of default listings.
func DeleteContact() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("contacts")

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contact id"})
			return
		}

		now := time.Now().UTC()
		res, err := col.UpdateOne(ctx,
			bson.M{"_id": id, "deletedAt": bson.M{"$exists": false}},
			bson.M{"$set": bson.M{"deletedAt": now, "updatedAt": now}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "contact not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
