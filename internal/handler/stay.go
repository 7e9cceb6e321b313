package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/MehmetDemirkok/yurtsever/internal/store"
	"github.com/MehmetDemirkok/yurtsever/internal/util"

	"github.com/gin-gonic/gin"
)

// defaultPageSize applies when the configured page size is missing.
const defaultPageSize = 20

// StayHandler serves the stay CRUD and report endpoints consumed by the
// presentation layer.
type StayHandler struct {
	Store    *store.StayStore
	PageSize int
}

func NewStayHandler(s *store.StayStore, pageSize int) *StayHandler {
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	return &StayHandler{Store: s, PageSize: pageSize}
}

type stayReq struct {
	GuestName          string  `json:"guest_name"`
	GuestTitle         string  `json:"guest_title"`
	CompanyName        string  `json:"company_name"`
	Country            string  `json:"country"`
	City               string  `json:"city"`
	CheckInDate        string  `json:"check_in_date"`
	CheckOutDate       string  `json:"check_out_date"`
	RoomType           string  `json:"room_type"`
	HotelName          string  `json:"hotel_name"`
	HotelPurchasePrice float64 `json:"hotel_purchase_price"`
	HotelSalePrice     float64 `json:"hotel_sale_price"`
}

type stayPatchReq struct {
	GuestName          *string  `json:"guest_name"`
	GuestTitle         *string  `json:"guest_title"`
	CompanyName        *string  `json:"company_name"`
	Country            *string  `json:"country"`
	City               *string  `json:"city"`
	CheckInDate        *string  `json:"check_in_date"`
	CheckOutDate       *string  `json:"check_out_date"`
	RoomType           *string  `json:"room_type"`
	HotelName          *string  `json:"hotel_name"`
	HotelPurchasePrice *float64 `json:"hotel_purchase_price"`
	HotelSalePrice     *float64 `json:"hotel_sale_price"`
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "ID geçersiz")
		return 0, false
	}
	return uint(id), true
}

func (h *StayHandler) CreateStay(c *gin.Context) {
	var req stayReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "istek gövdesi çözümlenemedi")
		return
	}

	stay, err := h.Store.Create(store.StayInput{
		GuestName:          req.GuestName,
		GuestTitle:         req.GuestTitle,
		CompanyName:        req.CompanyName,
		Country:            req.Country,
		City:               req.City,
		CheckInDate:        req.CheckInDate,
		CheckOutDate:       req.CheckOutDate,
		RoomType:           req.RoomType,
		HotelName:          req.HotelName,
		HotelPurchasePrice: req.HotelPurchasePrice,
		HotelSalePrice:     req.HotelSalePrice,
	})
	if err != nil {
		if store.IsValidation(err) {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "kayıt eklenemedi")
		}
		return
	}

	util.Success(c, util.Response{"stay": stay})
}

func (h *StayHandler) GetStay(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	stay, err := h.Store.Get(id)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "sorgu başarısız")
		return
	}
	if stay == nil {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "kayıt bulunamadı")
		return
	}

	util.Success(c, util.Response{"stay": stay})
}

// listParams builds the store filter and sort from query parameters.
func listParams(c *gin.Context) (store.ListFilter, store.SortSpec) {
	f := store.ListFilter{
		GuestName: c.Query("guest_name"),
		Country:   c.Query("country"),
		City:      c.Query("city"),
		RoomType:  c.Query("room_type"),
	}
	sort := store.SortSpec{
		Key:        store.SortKey(c.Query("sort")),
		Descending: c.DefaultQuery("dir", "asc") == "desc",
	}
	return f, sort
}

// ListStays answers the full filtered set by default; a page query
// parameter switches to paged results with the configured page size.
func (h *StayHandler) ListStays(c *gin.Context) {
	f, sort := listParams(c)

	if pageParam := c.Query("page"); pageParam != "" {
		page, err := strconv.Atoi(pageParam)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "page geçersiz")
			return
		}
		stays, total, err := h.Store.ListPage(f, sort, page, h.PageSize)
		if err != nil {
			if store.IsValidation(err) {
				util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
			} else {
				util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "sorgu başarısız")
			}
			return
		}
		util.Success(c, util.Response{
			"items":     stays,
			"total":     total,
			"page":      page,
			"page_size": h.PageSize,
		})
		return
	}

	stays, err := h.Store.List(f, sort)
	if err != nil {
		if store.IsValidation(err) {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "sorgu başarısız")
		}
		return
	}

	util.Success(c, util.Response{
		"items": stays,
		"total": len(stays),
	})
}

func (h *StayHandler) UpdateStay(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req stayPatchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "istek gövdesi çözümlenemedi")
		return
	}

	updated, err := h.Store.Update(id, store.StayPatch{
		GuestName:          req.GuestName,
		GuestTitle:         req.GuestTitle,
		CompanyName:        req.CompanyName,
		Country:            req.Country,
		City:               req.City,
		CheckInDate:        req.CheckInDate,
		CheckOutDate:       req.CheckOutDate,
		RoomType:           req.RoomType,
		HotelName:          req.HotelName,
		HotelPurchasePrice: req.HotelPurchasePrice,
		HotelSalePrice:     req.HotelSalePrice,
	})
	if err != nil {
		if store.IsValidation(err) {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "kayıt güncellenemedi")
		}
		return
	}
	if !updated {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "kayıt bulunamadı veya değişiklik yok")
		return
	}

	stay, err := h.Store.Get(id)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "sorgu başarısız")
		return
	}
	util.Success(c, util.Response{"stay": stay})
}

func (h *StayHandler) DeleteStay(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	deleted, err := h.Store.Delete(id)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "kayıt silinemedi")
		return
	}
	if !deleted {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "kayıt bulunamadı")
		return
	}

	util.Success(c, util.Response{"deleted": true})
}

// reportRange resolves either an explicit start/end pair or a named period
// (week/month/year) from the query string.
func reportRange(c *gin.Context) (start, end *string, err error) {
	if period := c.Query("period"); period != "" {
		s, e, perr := store.PeriodRange(period, time.Now())
		if perr != nil {
			return nil, nil, perr
		}
		return &s, &e, nil
	}
	if s := c.Query("start"); s != "" {
		start = &s
	}
	if e := c.Query("end"); e != "" {
		end = &e
	}
	return start, end, nil
}

func (h *StayHandler) DetailedReport(c *gin.Context) {
	start, end, err := reportRange(c)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	report, err := h.Store.DetailedReport(start, end)
	if err != nil {
		if store.IsValidation(err) {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "rapor oluşturulamadı")
		}
		return
	}

	util.Success(c, util.Response{"report": report})
}
