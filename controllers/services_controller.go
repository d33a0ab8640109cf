package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vinhphat/vpmetalbackend/database"
	"github.com/vinhphat/vpmetalbackend/dto"
	"github.com/vinhphat/vpmetalbackend/forms"
	"github.com/vinhphat/vpmetalbackend/models"
	"github.com/vinhphat/vpmetalbackend/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// serviceResponse renders a service with its rich-text fields normalized
// to HTML whichever persisted shape they were in.
func serviceResponse(s models.Service) gin.H {
	resp := gin.H{
		"id":           s.Id,
		"name":         s.Name,
		"slug":         s.Slug,
		"features":     forms.ParseRichText(s.Features),
		"technologies": forms.ParseRichText(s.Technologies),
		"benefits":     forms.ParseRichText(s.Benefits),
		"customers":    forms.ParseRichText(s.Customers),
		"imageUrls":    s.ImageUrls,
		"status":       s.Status,
		"orderIndex":   s.OrderIndex,
		"createdAt":    s.CreatedAt,
		"updatedAt":    s.UpdatedAt,
	}
	if s.NameEn != "" {
		resp["nameEn"] = s.NameEn
	}
	if s.Description != "" {
		resp["description"] = s.Description
	}
	if s.ThemeVariant != "" {
		resp["themeVariant"] = s.ThemeVariant
	}
	if len(s.Tags) > 0 {
		resp["tags"] = s.Tags
	}
	return resp
}

// GetServices lists services ordered by orderIndex. Public callers only see
// active services; the admin listing passes all statuses through.
func GetServices(adminView bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("services")

		filter := bson.M{"status": models.ServiceStatusActive}
		if adminView {
			filter = bson.M{}
			if st := strings.TrimSpace(c.Query("status")); st != "" {
				filter["status"] = st
			}
		}

		opts := options.Find().SetSort(bson.D{{Key: "orderIndex", Value: 1}, {Key: "name", Value: 1}})
		cursor, err := col.Find(ctx, filter, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer cursor.Close(ctx)

		items := make([]gin.H, 0)
		for cursor.Next(ctx) {
			var s models.Service
			if err := cursor.Decode(&s); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			items = append(items, serviceResponse(s))
		}
		if err := cursor.Err(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"items": items, "total": len(items)})
	}
}

func GetService() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("services")

		idOrSlug := c.Param("id")
		filter := bson.M{"slug": idOrSlug}
		if id, err := bson.ObjectIDFromHex(idOrSlug); err == nil {
			filter = bson.M{"_id": id}
		}

		var s models.Service
		if err := col.FindOne(ctx, filter).Decode(&s); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "service not found"})
			return
		}
		c.JSON(http.StatusOK, serviceResponse(s))
	}
}

func AddService() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("services")

		var body dto.CreateServiceDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json body"})
			return
		}
		if err := forms.ValidateStruct(body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		status := models.ServiceStatus(body.Status)
		if status == "" {
			status = models.ServiceStatusActive
		}

		now := time.Now().UTC()
		doc := bson.M{
			"name":       strings.TrimSpace(body.Name),
			"slug":       utils.GenerateSlug(body.Name),
			"imageUrls":  body.ImageUrls,
			"status":     status,
			"orderIndex": body.OrderIndex,
			"createdAt":  now,
			"updatedAt":  now,
		}
		if doc["imageUrls"] == nil {
			doc["imageUrls"] = []string{}
		}
		if s := strings.TrimSpace(body.NameEn); s != "" {
			doc["nameEn"] = s
		}
		if s := strings.TrimSpace(body.Description); s != "" {
			doc["description"] = s
		}
		if s := forms.ParseRichText(body.Features); s != "" {
			doc["features"] = s
		}
		if s := forms.ParseRichText(body.Technologies); s != "" {
			doc["technologies"] = s
		}
		if s := forms.ParseRichText(body.Benefits); s != "" {
			doc["benefits"] = s
		}
		if s := forms.ParseRichText(body.Customers); s != "" {
			doc["customers"] = s
		}
		if s := strings.TrimSpace(body.ThemeVariant); s != "" {
			doc["themeVariant"] = s
		}
		if len(body.Tags) > 0 {
			doc["tags"] = body.Tags
		}

		res, err := col.InsertOne(ctx, doc)
		if err != nil {
			if utils.IsDuplicateKey(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "slug already exists", "field": "slug"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"id": res.InsertedID, "slug": doc["slug"]})
	}
}

func UpdateService() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("services")

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid service id"})
			return
		}

		var body dto.UpdateServiceDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json body"})
			return
		}
		if err := forms.ValidateStruct(body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		set := bson.M{}
		if body.Name != nil {
			v := strings.TrimSpace(*body.Name)
			if v == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "name cannot be empty"})
				return
			}
			set["name"] = v
		}
		if body.NameEn != nil {
			set["nameEn"] = strings.TrimSpace(*body.NameEn)
		}
		if body.Description != nil {
			set["description"] = strings.TrimSpace(*body.Description)
		}
		if body.Features != nil {
			set["features"] = forms.ParseRichText(body.Features)
		}
		if body.Technologies != nil {
			set["technologies"] = forms.ParseRichText(body.Technologies)
		}
		if body.Benefits != nil {
			set["benefits"] = forms.ParseRichText(body.Benefits)
		}
		if body.Customers != nil {
			set["customers"] = forms.ParseRichText(body.Customers)
		}
		if body.ImageUrls != nil {
			set["imageUrls"] = *body.ImageUrls
		}
		if body.Status != nil {
			set["status"] = models.ServiceStatus(*body.Status)
		}
		if body.ThemeVariant != nil {
			set["themeVariant"] = strings.TrimSpace(*body.ThemeVariant)
		}
		if body.Tags != nil {
			set["tags"] = *body.Tags
		}
		if body.OrderIndex != nil {
			set["orderIndex"] = *body.OrderIndex
		}

		if len(set) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no updates provided"})
			return
		}
		set["updatedAt"] = time.Now().UTC()

		res, err := col.UpdateByID(ctx, id, bson.M{"$set": set})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "service not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// UpdateServiceOrder moves a service within the public listing.
func UpdateServiceOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("services")

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid service id"})
			return
		}

		var body dto.UpdateServiceOrderDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		res, err := col.UpdateByID(ctx, id, bson.M{"$set": bson.M{
			"orderIndex": body.OrderIndex,
			"updatedAt":  time.Now().UTC(),
		}})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "service not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

func DeleteService() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("services")

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid service id"})
			return
		}

		res, err := col.DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "service not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
