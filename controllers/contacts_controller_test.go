package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postContact(t *testing.T, body any) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/contacts", CreateContact())

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/contacts", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp["error"]
}

// The funnel rejects bad bodies before the database is ever touched, so
// these run without a live connection.
func TestCreateContactRejectsInvalidBody(t *testing.T) {
	valid := map[string]any{
		"fullName": "Trần Thị B",
		"email":    "b@example.com",
		"phone":    "0901234567",
		"message":  "Cần báo giá kệ chứa hàng",
	}

	cases := []struct {
		name    string
		mutate  func(map[string]any)
		wantMsg string
	}{
		{"missing full name", func(m map[string]any) { m["fullName"] = "" }, "fullName is required"},
		{"invalid email", func(m map[string]any) { m["email"] = "b.example.com" }, "email must be a valid email address"},
		{"phone with letters", func(m map[string]any) { m["phone"] = "09-0123" }, "phone must contain digits only"},
		{"signed phone", func(m map[string]any) { m["phone"] = "+84901234567" }, "phone must contain digits only"},
		{"message too short", func(m map[string]any) { m["message"] = "hi" }, "message is too short"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body := map[string]any{}
			for k, v := range valid {
				body[k] = v
			}
			tc.mutate(body)

			w := postContact(t, body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tc.wantMsg, errorMessage(t, w))
		})
	}
}

func TestCreateContactFirstViolationWins(t *testing.T) {
	// everything wrong at once; only the first field error comes back
	w := postContact(t, map[string]any{
		"fullName": "",
		"email":    "nope",
		"phone":    "abc",
		"message":  "x",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "fullName is required", errorMessage(t, w))
}

func TestCreateContactRejectsMalformedJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/contacts", CreateContact())

	req := httptest.NewRequest(http.MethodPost, "/contacts", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
