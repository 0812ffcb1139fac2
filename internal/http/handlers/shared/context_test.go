package shared

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/oscoderuz/django-shablon/internal/http/response"

	"github.com/gin-gonic/gin"
)

func TestGetContextUintWithKeys(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name     string
		value    interface{}
		set      bool
		wantOK   bool
		wantID   uint
		wantCode int
	}{
		{name: "uint", value: uint(7), set: true, wantOK: true, wantID: 7},
		{name: "missing", set: false, wantCode: response.CodeUnauthorized},
		{name: "zero", value: uint(0), set: true, wantCode: response.CodeUnauthorized},
		{name: "negative", value: -1, set: true, wantCode: response.CodeBadRequest},
		{name: "wrong type", value: "7", set: true, wantCode: response.CodeInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("GET", "/", nil)
			if tc.set {
				c.Set(ContextKeyUserID, tc.value)
			}
			id, ok := GetContextUintWithKeys(c, ContextKeyUserID, "error.user_id_invalid", "error.user_id_type_invalid")
			if ok != tc.wantOK || id != tc.wantID {
				t.Fatalf("want (%d,%v) got (%d,%v)", tc.wantID, tc.wantOK, id, ok)
			}
			if tc.wantOK {
				return
			}
			var resp response.Response
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode response failed: %v", err)
			}
			if resp.StatusCode != tc.wantCode {
				t.Fatalf("code want %d got %d", tc.wantCode, resp.StatusCode)
			}
		})
	}
}

func TestContextStringAndBool(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Set(ContextKeyUsername, "  root ")
	c.Set(ContextKeyAdminIsSuper, "true")
	if got := ContextString(c, ContextKeyUsername); got != "root" {
		t.Fatalf("username want root got %q", got)
	}
	if ContextBool(c, ContextKeyAdminIsSuper) {
		t.Fatalf("non-bool value should read as false")
	}
	c.Set(ContextKeyAdminIsSuper, true)
	if !ContextBool(c, ContextKeyAdminIsSuper) {
		t.Fatalf("bool value should read as true")
	}
}
