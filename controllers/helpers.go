package controllers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/vinhphat/vpmetalbackend/models"
	"github.com/vinhphat/vpmetalbackend/uploads"
)

// cleanupObjects removes stored objects by public URL, best effort. URLs
// the driver doesn't recognise (external images) are skipped.
func cleanupObjects(ctx context.Context, store uploads.ObjectStorage, urls []string) {
	if len(urls) == 0 {
		return
	}
	names := make([]string, 0, len(urls))
	for _, u := range urls {
		if name, err := store.ObjectNameFromURL(u); err == nil {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return
	}
	if err := store.DeleteObjects(ctx, names); err != nil {
		logrus.WithError(err).Warn("storage cleanup incomplete")
	}
}

// diffStrings returns members of a not present in b, preserving order.
func diffStrings(a, b []string) []string {
	set := make(map[string]struct{}, len(b))
	for _, x := range b {
		set[x] = struct{}{}
	}
	out := make([]string, 0)
	for _, x := range a {
		if _, ok := set[x]; !ok {
			out = append(out, x)
		}
	}
	return out
}

func requireAdmin(c *gin.Context) bool {
	roleVal, ok := c.Get("role")
	if !ok {
		return false
	}
	role, _ := roleVal.(string)
	return role == string(models.RoleAdmin)
}
