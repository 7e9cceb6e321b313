package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/MehmetDemirkok/yurtsever/internal/config"
	"github.com/MehmetDemirkok/yurtsever/internal/database"
	"github.com/MehmetDemirkok/yurtsever/internal/router"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.EnsureSchema(db))

	cfg := &config.Config{}
	cfg.Server.Mode = "test"
	cfg.App.PageSize = 2
	return router.SetupRouter(cfg, db)
}

func doJSON(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func validStayBody() map[string]interface{} {
	return map[string]interface{}{
		"guest_name":           "Ahmet Yılmaz",
		"guest_title":          "Bay",
		"country":              "Türkiye",
		"city":                 "İstanbul",
		"check_in_date":        "2024-03-20",
		"check_out_date":       "2024-03-25",
		"room_type":            "Single Oda",
		"hotel_name":           "Grand Otel",
		"hotel_purchase_price": 500,
		"hotel_sale_price":     600,
	}
}

func TestCreateStay_EndToEnd(t *testing.T) {
	h := newTestServer(t)

	w := doJSON(t, h, http.MethodPost, "/api/stays", validStayBody())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Code int `json:"code"`
		Data struct {
			Stay struct {
				ID                       uint    `json:"id"`
				HotelPurchaseTotalAmount float64 `json:"hotel_purchase_total_amount"`
				TotalSaleAmount          float64 `json:"total_sale_amount"`
			} `json:"stay"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Code)
	assert.NotZero(t, resp.Data.Stay.ID)
	assert.Equal(t, 2500.0, resp.Data.Stay.HotelPurchaseTotalAmount)
	assert.Equal(t, 3000.0, resp.Data.Stay.TotalSaleAmount)
}

func TestCreateStay_ValidationFailureIs400(t *testing.T) {
	h := newTestServer(t)

	body := validStayBody()
	body["check_out_date"] = "2024-03-19"
	w := doJSON(t, h, http.MethodPost, "/api/stays", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetStay_Missing404(t *testing.T) {
	h := newTestServer(t)

	w := doJSON(t, h, http.MethodGet, "/api/stays/99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteStay_MissingIs404_ExistingIsRemoved(t *testing.T) {
	h := newTestServer(t)

	w := doJSON(t, h, http.MethodDelete, "/api/stays/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	require.Equal(t, http.StatusOK, doJSON(t, h, http.MethodPost, "/api/stays", validStayBody()).Code)

	w = doJSON(t, h, http.MethodDelete, "/api/stays/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, h, http.MethodGet, "/api/stays/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListStays_UnknownSortKeyIs400(t *testing.T) {
	h := newTestServer(t)

	w := doJSON(t, h, http.MethodGet, "/api/stays?sort=favourite_colour", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListStays_PageParameterPaginates(t *testing.T) {
	h := newTestServer(t)

	for i := 0; i < 3; i++ {
		require.Equal(t, http.StatusOK, doJSON(t, h, http.MethodPost, "/api/stays", validStayBody()).Code)
	}

	// without page the whole set comes back
	w := doJSON(t, h, http.MethodGet, "/api/stays", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var full struct {
		Data struct {
			Items []json.RawMessage `json:"items"`
			Total int               `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &full))
	assert.Len(t, full.Data.Items, 3)

	// configured page size is 2, so page 2 holds the remainder
	w = doJSON(t, h, http.MethodGet, "/api/stays?page=2", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var paged struct {
		Data struct {
			Items    []json.RawMessage `json:"items"`
			Total    int               `json:"total"`
			Page     int               `json:"page"`
			PageSize int               `json:"page_size"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &paged))
	assert.Len(t, paged.Data.Items, 1)
	assert.Equal(t, 3, paged.Data.Total)
	assert.Equal(t, 2, paged.Data.Page)
	assert.Equal(t, 2, paged.Data.PageSize)

	w = doJSON(t, h, http.MethodGet, "/api/stays?page=0", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, h, http.MethodGet, "/api/stays?page=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateStay_PartialPatchRecomputes(t *testing.T) {
	h := newTestServer(t)

	require.Equal(t, http.StatusOK, doJSON(t, h, http.MethodPost, "/api/stays", validStayBody()).Code)

	w := doJSON(t, h, http.MethodPut, "/api/stays/1", map[string]interface{}{
		"check_out_date": "2024-03-23",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			Stay struct {
				HotelPurchaseTotalAmount float64 `json:"hotel_purchase_total_amount"`
			} `json:"stay"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1500.0, resp.Data.Stay.HotelPurchaseTotalAmount)
}

func TestTemplate_Download(t *testing.T) {
	h := newTestServer(t)

	w := doJSON(t, h, http.MethodGet, "/api/template", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "misafir_kayit_sablonu.xlsx")
	assert.NotEmpty(t, w.Body.Bytes())
}
