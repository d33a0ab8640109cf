package controllers

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vinhphat/vpmetalbackend/database"
	"github.com/vinhphat/vpmetalbackend/dto"
	"github.com/vinhphat/vpmetalbackend/models"
	"github.com/vinhphat/vpmetalbackend/uploads"
	"github.com/vinhphat/vpmetalbackend/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func GetProjects() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("projects")

		page, limit, skip := utils.Pagination(c.Query("page"), c.Query("limit"), 20, 100)

		filter := bson.M{}
		if b, err := utils.ParseBoolQuery(c.Query("featured")); err == nil && b != nil {
			filter["isFeatured"] = *b
		}
		if y := utils.ParseIntDefault(c.Query("year"), 0); y > 0 {
			filter["year"] = y
		}

		opts := options.Find().
			SetSkip(skip).
			SetLimit(int64(limit)).
			SetSort(bson.D{{Key: "year", Value: -1}, {Key: "createdAt", Value: -1}})

		cursor, err := col.Find(ctx, filter, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer cursor.Close(ctx)

		items := make([]models.Project, 0)
		for cursor.Next(ctx) {
			var p models.Project
			if err := cursor.Decode(&p); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			items = append(items, p)
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

func GetProject() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("projects")

		idOrSlug := c.Param("id")
		filter := bson.M{"slug": idOrSlug}
		if id, err := bson.ObjectIDFromHex(idOrSlug); err == nil {
			filter = bson.M{"_id": id}
		}

		var p models.Project
		if err := col.FindOne(ctx, filter).Decode(&p); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func AddProject(store uploads.ObjectStorage) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("projects")

		jsonData := c.PostForm("data")
		if jsonData == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing data"})
			return
		}
		var body dto.ProjectDataDTO
		if err := json.Unmarshal([]byte(jsonData), &body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid data json"})
			return
		}
		if strings.TrimSpace(body.Title) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
			return
		}

		var files []*multipart.FileHeader
		if form, err := c.MultipartForm(); err == nil && form != nil {
			files = form.File["images"]
		}

		batch := uploads.NewBatch(nil, files)
		if err := batch.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var categoryId *bson.ObjectID
		if s := strings.TrimSpace(body.CategoryId); s != "" {
			id, err := bson.ObjectIDFromHex(s)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
				return
			}
			categoryId = &id
		}

		slug := utils.GenerateSlug(body.Title)
		imageUrls, err := batch.Resolve(ctx, store, "projects/"+slug)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}

		isFeatured := false
		if body.IsFeatured != nil {
			isFeatured = *body.IsFeatured
		}

		now := time.Now().UTC()
		project := models.Project{
			Title:       strings.TrimSpace(body.Title),
			TitleEn:     strings.TrimSpace(body.TitleEn),
			Slug:        slug,
			Description: strings.TrimSpace(body.Description),
			Client:      strings.TrimSpace(body.Client),
			Location:    strings.TrimSpace(body.Location),
			Year:        body.Year,
			CategoryId:  categoryId,
			Images:      imageUrls,
			IsFeatured:  isFeatured,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		res, err := col.InsertOne(ctx, project)
		if err != nil {
			cleanupObjects(ctx, store, imageUrls)
			if utils.IsDuplicateKey(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "slug already exists", "field": "slug"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"id": res.InsertedID, "slug": slug, "images": imageUrls})
	}
}

func UpdateProject(store uploads.ObjectStorage) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("projects")

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
			return
		}

		jsonData := c.PostForm("data")
		if jsonData == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing data"})
			return
		}
		var body dto.ProjectDataDTO
		if err := json.Unmarshal([]byte(jsonData), &body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid data json"})
			return
		}
		if strings.TrimSpace(body.Title) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
			return
		}

		var project models.Project
		if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&project); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}

		kept := project.Images
		if body.KeepImages != nil {
			kept = utils.IntersectStrings(body.KeepImages, project.Images)
		}
		removed := diffStrings(project.Images, kept)

		var files []*multipart.FileHeader
		if form, err := c.MultipartForm(); err == nil && form != nil {
			files = form.File["images"]
		}

		batch := uploads.NewBatch(kept, files)
		if err := batch.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		resolved, err := batch.Resolve(ctx, store, "projects/"+project.Slug)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		newUrls := diffStrings(resolved, kept)
		imageUrls := utils.MergeImageUrls(project.Images, removed, newUrls)

		set := bson.M{
			"title":       strings.TrimSpace(body.Title),
			"titleEn":     strings.TrimSpace(body.TitleEn),
			"description": strings.TrimSpace(body.Description),
			"client":      strings.TrimSpace(body.Client),
			"location":    strings.TrimSpace(body.Location),
			"year":        body.Year,
			"images":      imageUrls,
			"updatedAt":   time.Now().UTC(),
		}
		if body.IsFeatured != nil {
			set["isFeatured"] = *body.IsFeatured
		}
		if s := strings.TrimSpace(body.CategoryId); s != "" {
			catId, err := bson.ObjectIDFromHex(s)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
				return
			}
			set["categoryId"] = catId
		}

		if _, err := col.UpdateByID(ctx, id, bson.M{"$set": set}); err != nil {
			cleanupObjects(ctx, store, newUrls)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db update failed"})
			return
		}

		cleanupObjects(ctx, store, removed)
		c.JSON(http.StatusOK, gin.H{"ok": true, "images": imageUrls})
	}
}

func DeleteProject(store uploads.ObjectStorage) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("projects")

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
			return
		}

		var project models.Project
		if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&project); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}

		res, err := col.DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}

		cleanupObjects(ctx, store, project.Images)
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
