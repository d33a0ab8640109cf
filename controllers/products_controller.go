package controllers

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/vinhphat/vpmetalbackend/database"
	"github.com/vinhphat/vpmetalbackend/dto"
	"github.com/vinhphat/vpmetalbackend/forms"
	"github.com/vinhphat/vpmetalbackend/models"
	"github.com/vinhphat/vpmetalbackend/uploads"
	"github.com/vinhphat/vpmetalbackend/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// productResponse renders a product with its raw description/specs fields
// normalized into their canonical shapes, whatever generation of row was
// read.
func productResponse(p models.Product) gin.H {
	resp := gin.H{
		"id":             p.Id,
		"name":           p.Name,
		"slug":           p.Slug,
		"categoryId":     p.CategoryId,
		"description":    forms.ParseDescription(p.Description),
		"technicalSpecs": forms.ParseTechnicalSpecs(p.TechnicalSpecs),
		"images":         forms.ParseImageList(p.Images),
		"isFeatured":     p.IsFeatured,
		"createdAt":      p.CreatedAt,
		"updatedAt":      p.UpdatedAt,
	}
	if p.NameEn != "" {
		resp["nameEn"] = p.NameEn
	}
	if p.Price > 0 {
		resp["price"] = p.Price
	}
	if p.WarrantyPolicy != "" {
		resp["warrantyPolicy"] = p.WarrantyPolicy
	}
	return resp
}

func GetProducts() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		productsCol := database.OpenCollection("products")

		page, limit, skip := utils.Pagination(c.Query("page"), c.Query("limit"), 20, 100)

		sortDoc := bson.D{{Key: "name", Value: 1}}
		switch strings.TrimSpace(c.Query("sort")) {
		case "price_asc":
			sortDoc = bson.D{{Key: "price", Value: 1}}
		case "price_desc":
			sortDoc = bson.D{{Key: "price", Value: -1}}
		case "newest":
			sortDoc = bson.D{{Key: "createdAt", Value: -1}}
		}

		filter := bson.M{}
		if categorySlug := strings.TrimSpace(c.Query("category")); categorySlug != "" {
			var cat models.Category
			categoriesCol := database.OpenCollection("categories")
			if err := categoriesCol.FindOne(ctx, bson.M{"slug": categorySlug}).Decode(&cat); err != nil {
				c.JSON(http.StatusOK, gin.H{"items": []gin.H{}, "page": page, "limit": limit, "total": 0})
				return
			}
			filter["categoryId"] = cat.Id
		}
		if b, err := utils.ParseBoolQuery(c.Query("featured")); err == nil && b != nil {
			filter["isFeatured"] = *b
		}
		if q := strings.TrimSpace(c.Query("q")); q != "" {
			filter["name"] = bson.M{"$regex": q, "$options": "i"}
		}

		findOpts := options.Find().SetSkip(skip).SetLimit(int64(limit)).SetSort(sortDoc)
		cursor, err := productsCol.Find(ctx, filter, findOpts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer cursor.Close(ctx)

		items := make([]gin.H, 0)
		for cursor.Next(ctx) {
			var p models.Product
			if err := cursor.Decode(&p); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			items = append(items, productResponse(p))
		}
		if err := cursor.Err(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		total, err := productsCol.CountDocuments(ctx, filter)
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

func GetProduct() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		productsCol := database.OpenCollection("products")

		idOrSlug := c.Param("id")
		filter := bson.M{"slug": idOrSlug}
		if id, err := bson.ObjectIDFromHex(idOrSlug); err == nil {
			filter = bson.M{"_id": id}
		}

		var p models.Product
		if err := productsCol.FindOne(ctx, filter).Decode(&p); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusOK, productResponse(p))
	}
}

// productFormFromData builds the canonical edit state out of the multipart
// "data" JSON field.
func productFormFromData(body dto.ProductDataDTO) forms.ProductForm {
	return forms.ProductForm{
		Name:           body.Name,
		NameEn:         body.NameEn,
		CategoryId:     body.CategoryId,
		Description:    forms.ParseDescription(body.Description),
		TechnicalSpecs: forms.ParseTechnicalSpecs(body.TechnicalSpecs),
		Price:          body.Price,
		WarrantyPolicy: body.WarrantyPolicy,
		IsFeatured:     body.IsFeatured,
	}
}

// unsetMissingOptionals clears optional product keys the serialized
// document no longer carries, so emptied fields don't linger on update.
func unsetMissingOptionals(doc bson.M) bson.M {
	unset := bson.M{}
	for _, key := range []string{"nameEn", "description", "technicalSpecs", "price", "warrantyPolicy"} {
		if _, ok := doc[key]; !ok {
			unset[key] = ""
		}
	}
	return unset
}

func AddProduct(store uploads.ObjectStorage) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		jsonData := c.PostForm("data")
		if jsonData == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing data"})
			return
		}
		var body dto.ProductDataDTO
		if err := json.Unmarshal([]byte(jsonData), &body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid data json"})
			return
		}

		var files []*multipart.FileHeader
		if form, err := c.MultipartForm(); err == nil && form != nil {
			files = form.File["images"]
		}

		batch := uploads.NewBatch(nil, files)
		pf := productFormFromData(body)
		pf.ImageCount = batch.Count()

		if err := pf.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := batch.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		categoryId, err := bson.ObjectIDFromHex(strings.TrimSpace(body.CategoryId))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
			return
		}

		slug := utils.GenerateSlug(body.Name)
		imageUrls, err := batch.Resolve(ctx, store, "products/"+slug)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}

		now := time.Now().UTC()
		doc := pf.Document(categoryId, imageUrls)
		doc["slug"] = slug
		doc["createdAt"] = now
		doc["updatedAt"] = now

		collection := database.OpenCollection("products")
		res, err := collection.InsertOne(ctx, doc)
		if err != nil {
			// the row never landed; don't leak the fresh uploads
			cleanupObjects(ctx, store, imageUrls)
			if utils.IsDuplicateKey(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "slug already exists", "field": "slug"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		logrus.WithFields(logrus.Fields{"slug": slug, "images": len(imageUrls)}).Info("product created")
		c.JSON(http.StatusCreated, gin.H{"id": res.InsertedID, "slug": slug, "images": imageUrls})
	}
}

func UpdateProduct(store uploads.ObjectStorage) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		collection := database.OpenCollection("products")

		prodID, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}

		jsonData := c.PostForm("data")
		if jsonData == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing data"})
			return
		}
		var body dto.ProductDataDTO
		if err := json.Unmarshal([]byte(jsonData), &body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid data json"})
			return
		}

		var product models.Product
		if err := collection.FindOne(ctx, bson.M{"_id": prodID}).Decode(&product); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}

		stored := forms.ParseImageList(product.Images)

		// keepImages absent means the form kept everything
		kept := stored
		if body.KeepImages != nil {
			kept = utils.IntersectStrings(body.KeepImages, stored)
		}
		removed := diffStrings(stored, kept)

		var files []*multipart.FileHeader
		if form, err := c.MultipartForm(); err == nil && form != nil {
			files = form.File["images"]
		}

		batch := uploads.NewBatch(kept, files)
		pf := productFormFromData(body)
		pf.ImageCount = batch.Count()

		if err := pf.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := batch.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		categoryId, err := bson.ObjectIDFromHex(strings.TrimSpace(body.CategoryId))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
			return
		}

		resolved, err := batch.Resolve(ctx, store, "products/"+product.Slug)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		newUrls := diffStrings(resolved, kept)
		imageUrls := utils.MergeImageUrls(stored, removed, newUrls)

		doc := pf.Document(categoryId, imageUrls)
		doc["updatedAt"] = time.Now().UTC()

		update := bson.M{"$set": doc}
		if unset := unsetMissingOptionals(doc); len(unset) > 0 {
			update["$unset"] = unset
		}

		if _, err := collection.UpdateByID(ctx, prodID, update); err != nil {
			cleanupObjects(ctx, store, newUrls)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db update failed"})
			return
		}

		// row updated; dropping the replaced objects is best effort
		cleanupObjects(ctx, store, removed)

		c.JSON(http.StatusOK, gin.H{"ok": true, "images": imageUrls})
	}
}

func DeleteProduct(store uploads.ObjectStorage) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		collection := database.OpenCollection("products")

		prodID, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}

		var product models.Product
		if err := collection.FindOne(ctx, bson.M{"_id": prodID}).Decode(&product); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}

		res, err := collection.DeleteOne(ctx, bson.M{"_id": prodID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}

		cleanupObjects(ctx, store, forms.ParseImageList(product.Images))
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
