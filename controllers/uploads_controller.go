package controllers

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/vinhphat/vpmetalbackend/uploads"
)

var folderPattern = regexp.MustCompile(`^[a-z0-9/_-]+$`)

// UploadImages is the standalone upload collaborator: each file is
// uploaded to the tagged destination folder and answered with its public
// URL plus metadata. Used by the service and category forms, which submit
// URLs rather than files.
func UploadImages(store uploads.ObjectStorage) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		form, err := c.MultipartForm()
		if err != nil || form == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form"})
			return
		}
		files := form.File["files"]
		if len(files) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no files provided"})
			return
		}

		folder := strings.Trim(strings.TrimSpace(c.PostForm("folder")), "/")
		if folder == "" {
			folder = "misc"
		}
		if !folderPattern.MatchString(folder) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid folder"})
			return
		}

		batch := uploads.NewBatch(nil, files)
		if err := batch.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		objs, err := uploads.UploadAll(ctx, store, folder, files)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"items": objs, "total": len(objs)})
	}
}
