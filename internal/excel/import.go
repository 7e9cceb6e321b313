package excel

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/MehmetDemirkok/yurtsever/internal/models"
	"github.com/MehmetDemirkok/yurtsever/internal/store"

	"github.com/xuri/excelize/v2"
)

// DataSheet is the sheet imports prefer when present; otherwise the first
// sheet of the workbook is read.
const DataSheet = "Misafir Kayıtları"

// maxReportedReasons caps the failure list in an ImportResult.
const maxReportedReasons = 10

// FormatError marks a problem with the uploaded file itself (unreadable
// workbook, missing required columns). Storage faults pass through as-is.
type FormatError struct {
	msg string
}

func (e *FormatError) Error() string { return e.msg }

func formatErrf(format string, args ...interface{}) *FormatError {
	return &FormatError{msg: fmt.Sprintf(format, args...)}
}

// ImportResult summarizes a finished import batch.
type ImportResult struct {
	Created int      `json:"created"`
	Failed  int      `json:"failed"`
	Reasons []string `json:"reasons"` // first 10, with a trailing "... ve N diğer hata"
}

func (r *ImportResult) addFailure(rowNum int, reason string) {
	r.Failed++
	if len(r.Reasons) < maxReportedReasons {
		r.Reasons = append(r.Reasons, fmt.Sprintf("satır %d: %s", rowNum, reason))
	}
}

func (r *ImportResult) finish() {
	if extra := r.Failed - maxReportedReasons; extra > 0 {
		r.Reasons = append(r.Reasons, fmt.Sprintf("... ve %d diğer hata", extra))
	}
}

// dateLayouts accepted for check-in/check-out cells. Excel-native date
// cells come back formatted, most commonly as m-d-yy.
var dateLayouts = []string{
	models.DateLayout,
	"02.01.2006",
	"02/01/2006",
	"1-2-06",
	"01-02-06",
}

func parseDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("tarih boş")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(models.DateLayout), nil
		}
	}
	return "", fmt.Errorf("geçersiz tarih: %s", s)
}

// dotGroupedPrice matches dot-grouped integers like "1.250" or "2.500.000"
// where every dot separates a group of exactly three digits.
var dotGroupedPrice = regexp.MustCompile(`^\d{1,3}(\.\d{3})+$`)

// parsePrice accepts plain numbers and comma-decimal strings with an
// optional currency marker, e.g. "1.250,50 ₺" or "500 TL". A dot-grouped
// value without a comma ("1.250") reads as thousands, not as a decimal.
// The value must be positive.
func parsePrice(s string) (float64, error) {
	raw := strings.TrimSpace(s)
	cleaned := strings.NewReplacer("₺", "", "TL", "", "tl", "", " ", "").Replace(raw)
	if strings.Contains(cleaned, ",") {
		// comma decimal; dots are thousands separators
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	} else if dotGroupedPrice.MatchString(cleaned) {
		cleaned = strings.ReplaceAll(cleaned, ".", "")
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("geçersiz fiyat: %s", raw)
	}
	if v <= 0 {
		return 0, fmt.Errorf("fiyat pozitif olmalı: %s", raw)
	}
	return v, nil
}

// Import reads an xlsx workbook and creates one stay per valid data row.
// A missing required column aborts the whole import before any row is
// touched; after that, rows succeed or fail independently and previously
// created rows stand.
func Import(r io.Reader, st *store.StayStore) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, formatErrf("excel dosyası açılamadı: %v", err)
	}
	defer f.Close()

	sheet := f.GetSheetList()[0]
	for _, name := range f.GetSheetList() {
		if name == DataSheet {
			sheet = name
			break
		}
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, formatErrf("sayfa okunamadı: %v", err)
	}
	if len(rows) == 0 {
		return nil, formatErrf("dosya boş: başlık satırı yok")
	}

	// map canonical header keys to their column index
	index := make(map[string]int)
	for i, h := range rows[0] {
		key := NormalizeHeader(h)
		if key == "" {
			continue
		}
		if _, seen := index[key]; !seen {
			index[key] = i
		}
	}

	var missing []string
	for _, c := range requiredColumns {
		if _, ok := index[c.Key]; !ok {
			missing = append(missing, c.Display)
		}
	}
	if len(missing) > 0 {
		return nil, formatErrf("Excel dosyasında eksik sütunlar var: %s", strings.Join(missing, ", "))
	}

	cell := func(row []string, c column) string {
		i := index[c.Key]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	result := &ImportResult{}
	for i, row := range rows[1:] {
		rowNum := i + 2

		if blankRow(row) {
			continue
		}

		checkIn, err := parseDate(cell(row, colCheckIn))
		if err != nil {
			result.addFailure(rowNum, "giriş tarihi: "+err.Error())
			continue
		}
		checkOut, err := parseDate(cell(row, colCheckOut))
		if err != nil {
			result.addFailure(rowNum, "çıkış tarihi: "+err.Error())
			continue
		}
		purchase, err := parsePrice(cell(row, colPurchasePrice))
		if err != nil {
			result.addFailure(rowNum, "alış fiyatı: "+err.Error())
			continue
		}
		sale, err := parsePrice(cell(row, colSalePrice))
		if err != nil {
			result.addFailure(rowNum, "satış fiyatı: "+err.Error())
			continue
		}

		company := ""
		if _, ok := index[colCompanyName.Key]; ok {
			company = cell(row, colCompanyName)
		}

		input := store.StayInput{
			GuestName:          cell(row, colGuestName),
			GuestTitle:         cell(row, colGuestTitle),
			CompanyName:        company,
			Country:            cell(row, colCountry),
			City:               cell(row, colCity),
			CheckInDate:        checkIn,
			CheckOutDate:       checkOut,
			RoomType:           cell(row, colRoomType),
			HotelName:          cell(row, colHotelName),
			HotelPurchasePrice: purchase,
			HotelSalePrice:     sale,
		}

		if _, err := st.Create(input); err != nil {
			if store.IsValidation(err) {
				result.addFailure(rowNum, err.Error())
				continue
			}
			// storage fault, not bad input: stop and surface it
			return nil, err
		}
		result.Created++
	}

	result.finish()
	return result, nil
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
