package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/MehmetDemirkok/yurtsever/internal/models"
	"github.com/MehmetDemirkok/yurtsever/internal/store"

	"github.com/xuri/excelize/v2"
)

// ExportSheet is the sheet name of record exports.
const ExportSheet = "Konaklama Kayıtları"

// exportHeaders is the fixed human-readable column order of exports.
var exportHeaders = []string{
	"ID",
	"Adı Soyadı",
	"Unvan",
	"Firma Adı",
	"Ülke",
	"Şehir",
	"Giriş Tarihi",
	"Çıkış Tarihi",
	"Oda Tipi",
	"Otel Adı",
	"Otel Alış Fiyatı",
	"Otel Alış Toplamı",
	"Otel Satış Fiyatı",
	"Toplam Satış Tutarı",
}

func stayCells(s *models.Stay) []interface{} {
	return []interface{}{
		s.ID,
		s.GuestName,
		s.GuestTitle,
		s.CompanyName,
		s.Country,
		s.City,
		s.CheckInDate,
		s.CheckOutDate,
		s.RoomType,
		s.HotelName,
		s.HotelPurchasePrice,
		s.HotelPurchaseTotalAmount,
		s.HotelSalePrice,
		s.TotalSaleAmount,
	}
}

func newHeaderStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
}

func writeHeaderRow(f *excelize.File, sheet string, headers []string) error {
	style, err := newHeaderStyle(f)
	if err != nil {
		return fmt.Errorf("başlık stili oluşturulamadı: %w", err)
	}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return err
		}
	}
	return nil
}

// ExportXLSX writes the given records (typically the caller's current
// filtered view) as a single-sheet workbook. Numeric columns stay numeric
// so the file remains machine-readable downstream.
func ExportXLSX(w io.Writer, stays []models.Stay) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(ExportSheet)
	if err != nil {
		return fmt.Errorf("sayfa oluşturulamadı: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	if err := writeHeaderRow(f, ExportSheet, exportHeaders); err != nil {
		return err
	}

	for rowIdx := range stays {
		for colIdx, v := range stayCells(&stays[rowIdx]) {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(ExportSheet, cell, v); err != nil {
				return err
			}
		}
	}

	_ = f.SetColWidth(ExportSheet, "A", "A", 6)
	_ = f.SetColWidth(ExportSheet, "B", "J", 18)
	_ = f.SetColWidth(ExportSheet, "K", "N", 16)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("dışa aktarma yazılamadı: %w", err)
	}
	return nil
}

// ExportCSV writes the same record set as CSV. The UTF-8 BOM lets Excel
// pick up the Turkish headers correctly.
func ExportCSV(w io.Writer, stays []models.Stay) error {
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(exportHeaders); err != nil {
		return err
	}
	for i := range stays {
		s := &stays[i]
		record := []string{
			strconv.FormatUint(uint64(s.ID), 10),
			s.GuestName,
			s.GuestTitle,
			s.CompanyName,
			s.Country,
			s.City,
			s.CheckInDate,
			s.CheckOutDate,
			s.RoomType,
			s.HotelName,
			formatAmount(s.HotelPurchasePrice),
			formatAmount(s.HotelPurchaseTotalAmount),
			formatAmount(s.HotelSalePrice),
			formatAmount(s.TotalSaleAmount),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Report sheets.
const (
	reportSheet    = "Detaylı Rapor"
	summarySheet   = "Özet"
	occupancySheet = "Oda Tipi Doluluk"
)

var reportHeaders = append(append([]string{}, exportHeaders...),
	"Gece Sayısı",
	"Sınıflandırma",
	"Toplam Misafir",
	"Toplam Konaklama",
	"Toplam Gece",
	"Toplam Alış Cirosu",
	"Toplam Satış Cirosu",
)

// WriteReport renders a detailed report workbook: one detail sheet with the
// classification and the global aggregates on every row, a key/value
// summary sheet and a room-type occupancy sheet.
func WriteReport(w io.Writer, report *store.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(reportSheet)
	if err != nil {
		return fmt.Errorf("sayfa oluşturulamadı: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	if err := writeHeaderRow(f, reportSheet, reportHeaders); err != nil {
		return err
	}

	for rowIdx := range report.Rows {
		row := &report.Rows[rowIdx]
		cells := stayCells(&row.Stay)
		cells = append(cells,
			row.Nights,
			row.Classification,
			row.Totals.DistinctGuests,
			row.Totals.TotalStays,
			row.Totals.TotalNights,
			row.Totals.PurchaseRevenue,
			row.Totals.SaleRevenue,
		)
		for colIdx, v := range cells {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(reportSheet, cell, v); err != nil {
				return err
			}
		}
	}

	if err := writeSummarySheet(f, report); err != nil {
		return err
	}
	if err := writeOccupancySheet(f, report); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("rapor yazılamadı: %w", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, report *store.Report) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}
	lines := []struct {
		label string
		value interface{}
	}{
		{"Toplam Misafir", report.Totals.DistinctGuests},
		{"Toplam Konaklama", report.Totals.TotalStays},
		{"Toplam Gece", report.Totals.TotalNights},
		{"Toplam Alış Cirosu", report.Totals.PurchaseRevenue},
		{"Toplam Satış Cirosu", report.Totals.SaleRevenue},
	}
	for i, line := range lines {
		row := i + 1
		if err := f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), line.label); err != nil {
			return err
		}
		if err := f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), line.value); err != nil {
			return err
		}
	}
	_ = f.SetColWidth(summarySheet, "A", "A", 24)
	return nil
}

func writeOccupancySheet(f *excelize.File, report *store.Report) error {
	if _, err := f.NewSheet(occupancySheet); err != nil {
		return err
	}

	type occupancy struct {
		stays       int
		nights      int
		saleRevenue float64
	}
	byRoom := make(map[string]*occupancy)
	for i := range report.Rows {
		row := &report.Rows[i]
		o, ok := byRoom[row.Stay.RoomType]
		if !ok {
			o = &occupancy{}
			byRoom[row.Stay.RoomType] = o
		}
		o.stays++
		o.nights += row.Nights
		o.saleRevenue += row.Stay.TotalSaleAmount
	}

	if err := writeHeaderRow(f, occupancySheet, []string{
		"Oda Tipi", "Konaklama Sayısı", "Gece Sayısı", "Satış Cirosu",
	}); err != nil {
		return err
	}

	// fixed room-type order keeps the sheet stable between runs
	row := 2
	for _, rt := range models.RoomTypes {
		o, ok := byRoom[rt]
		if !ok {
			continue
		}
		values := []interface{}{rt, o.stays, o.nights, o.saleRevenue}
		for colIdx, v := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(occupancySheet, cell, v); err != nil {
				return err
			}
		}
		row++
	}
	_ = f.SetColWidth(occupancySheet, "A", "D", 18)
	return nil
}
