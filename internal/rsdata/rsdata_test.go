package rsdata

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRsData_StatusCode(t *testing.T) {
	tests := []struct {
		name       string
		resultCode string
		want       int
	}{
		{"OK code", "200-OK", 200},
		{"Created code", "201-CREATED", 201},
		{"Logout code shares 200 prefix", "200-LOGOUT", 200},
		{"Wishlist created variant", "201-1", 201},
		{"Wishlist increased variant", "200-1", 200},
		{"Wishlist not found variant", "404-1", 404},
		{"Conflict code", "409-EMAIL-EXISTS", 409},
		{"Internal error code", "500-INTERNAL-SERVER-ERROR", 500},
		{"Multi-hyphen suffix", "400-BAD-REQUEST", 400},
		{"No hyphen defaults to 200", "FAILURE", 200},
		{"Non-numeric prefix defaults to 200", "OK-200", 200},
		{"Empty code defaults to 200", "", 200},
		{"Out of range prefix defaults to 200", "999-UNKNOWN", 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := New(tt.resultCode, "msg", nil)
			assert.Equal(t, tt.want, rs.StatusCode())
		})
	}
}

func TestSend_WritesEnvelopeWithDerivedStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Send(c, New(CodeCreated, "생성되었습니다", gin.H{"id": 1}))

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	assert.Equal(t, "201-CREATED", response["resultCode"])
	assert.Equal(t, "생성되었습니다", response["msg"])
	assert.Equal(t, float64(1), response["data"].(map[string]interface{})["id"])
}

func TestErrorHelpers_CarryNilData(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	NotFound(c, "상품을 찾을 수 없습니다")

	assert.Equal(t, http.StatusNotFound, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	assert.Equal(t, "404-NOT-FOUND", response["resultCode"])
	assert.Equal(t, "상품을 찾을 수 없습니다", response["msg"])
	assert.Nil(t, response["data"])
}
