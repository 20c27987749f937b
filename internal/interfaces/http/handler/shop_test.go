package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appcommerce "github.com/ruralsoc/backend/internal/application/commerce"
)

func newShopRouter(capacity int64) (*gin.Engine, uuid.UUID) {
	gin.SetMode(gin.TestMode)
	chapterID := uuid.New()
	svc := appcommerce.NewShopService(newStubShopRepo(capacity), &stubChapterRepo{},
		stubAuditRepo{}, uuid.Nil, zap.NewNop())
	h := NewShopHandler(svc, zap.NewNop())

	r := gin.New()
	r.POST("/api/v1/admin/shops", h.Create)
	return r, chapterID
}

func createShop(router *gin.Engine, chapterID uuid.UUID, name string) *httptest.ResponseRecorder {
	payload := `{"chapter_id":"` + chapterID.String() + `","name":"` + name + `","plan_tier":"free"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/shops", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateShopEndpointQuotaConflict(t *testing.T) {
	router, chapterID := newShopRouter(1)

	w := createShop(router, chapterID, "Almacén Uno")
	require.Equal(t, http.StatusCreated, w.Code)

	w = createShop(router, chapterID, "Almacén Dos")
	assert.Equal(t, http.StatusConflict, w.Code)

	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Code string `json:"code"`
		} `json:"error"`
		Data struct {
			ChapterID string `json:"chapter_id"`
			Used      int64  `json:"used"`
			Limit     int64  `json:"limit"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "ERR_QUOTA_EXCEEDED", body.Error.Code)
	assert.Equal(t, chapterID.String(), body.Data.ChapterID)
	assert.Equal(t, int64(1), body.Data.Used)
	assert.Equal(t, int64(1), body.Data.Limit)
}

func TestCreateShopEndpointValidation(t *testing.T) {
	router, _ := newShopRouter(10)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/shops",
		strings.NewReader(`{"plan_tier":"gold"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_VALIDATION")
}
