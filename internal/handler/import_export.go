package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/MehmetDemirkok/yurtsever/internal/excel"
	"github.com/MehmetDemirkok/yurtsever/internal/store"
	"github.com/MehmetDemirkok/yurtsever/internal/util"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ImportExportHandler serves spreadsheet import, export, report and
// template downloads.
type ImportExportHandler struct {
	Store *store.StayStore
}

func NewImportExportHandler(s *store.StayStore) *ImportExportHandler {
	return &ImportExportHandler{Store: s}
}

func attachment(c *gin.Context, contentType, name string) {
	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
}

// ImportXLSX accepts a multipart upload under "file" and runs the import
// batch. Row failures never fail the request; they come back in the result.
func (h *ImportExportHandler) ImportXLSX(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "dosya yüklenmedi")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "dosya açılamadı")
		return
	}
	defer file.Close()

	result, err := excel.Import(file, h.Store)
	if err != nil {
		var ferr *excel.FormatError
		if errors.As(err, &ferr) {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "içe aktarma başarısız")
		}
		return
	}

	util.Success(c, util.Response{"result": result})
}

// ExportXLSX streams the filtered record set as an xlsx attachment. It
// honors the same filter/sort query parameters as the list endpoint so the
// export matches what the caller is looking at.
func (h *ImportExportHandler) ExportXLSX(c *gin.Context) {
	f, sort := listParams(c)
	stays, err := h.Store.List(f, sort)
	if err != nil {
		exportListError(c, err)
		return
	}

	attachment(c, xlsxContentType, fmt.Sprintf("konaklamalar_%s.xlsx", time.Now().Format("20060102")))
	if err := excel.ExportXLSX(c.Writer, stays); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "dışa aktarma başarısız")
	}
}

// ExportCSV streams the same record set as CSV.
func (h *ImportExportHandler) ExportCSV(c *gin.Context) {
	f, sort := listParams(c)
	stays, err := h.Store.List(f, sort)
	if err != nil {
		exportListError(c, err)
		return
	}

	attachment(c, "text/csv; charset=utf-8", fmt.Sprintf("konaklamalar_%s.csv", time.Now().Format("20060102")))
	if err := excel.ExportCSV(c.Writer, stays); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "dışa aktarma başarısız")
	}
}

// ReportXLSX streams the detailed report workbook.
func (h *ImportExportHandler) ReportXLSX(c *gin.Context) {
	start, end, err := reportRange(c)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	report, err := h.Store.DetailedReport(start, end)
	if err != nil {
		exportListError(c, err)
		return
	}

	attachment(c, xlsxContentType, fmt.Sprintf("konaklama_raporu_%s.xlsx", time.Now().Format("20060102")))
	if err := excel.WriteReport(c.Writer, report); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "rapor yazılamadı")
	}
}

// Template streams the static import template.
func (h *ImportExportHandler) Template(c *gin.Context) {
	attachment(c, xlsxContentType, "misafir_kayit_sablonu.xlsx")
	if err := excel.WriteTemplate(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "şablon oluşturulamadı")
	}
}

func exportListError(c *gin.Context, err error) {
	if store.IsValidation(err) {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
	} else {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "sorgu başarısız")
	}
}
