package excel

import (
	"fmt"
	"io"

	"github.com/MehmetDemirkok/yurtsever/internal/models"

	"github.com/xuri/excelize/v2"
)

const (
	roomTypesSheet    = "Oda Tipleri"
	instructionsSheet = "Kullanım Talimatları"
)

// templateHeaders is the import column set, in template order. Firma Adı is
// included even though its values may stay empty.
var templateHeaders = []string{
	colGuestName.Display,
	colGuestTitle.Display,
	colCompanyName.Display,
	colCountry.Display,
	colCity.Display,
	colCheckIn.Display,
	colCheckOut.Display,
	colRoomType.Display,
	colHotelName.Display,
	colPurchasePrice.Display,
	colSalePrice.Display,
}

var exampleRows = [][]interface{}{
	{"Ahmet Yılmaz", "Bay", "Yurtsever Turizm", "Türkiye", "İstanbul",
		"2024-03-20", "2024-03-25", "Single Oda", "Grand Otel", 500, 600},
	{"Ayşe Demir", "Bayan", "", "Türkiye", "Ankara",
		"2024-03-21", "2024-03-23", "Double Oda", "Park Otel", 750, 900},
}

var instructions = []string{
	"Excel Şablonu Kullanım Talimatları:",
	"",
	"1. Tüm sütunları doldurunuz (Firma Adı boş bırakılabilir):",
	"   - Adı Soyadı: Misafirin tam adı",
	"   - Unvan: Bay/Bayan",
	"   - Ülke / Şehir: Misafirin ülkesi ve şehri",
	"   - Giriş Tarihi / Çıkış Tarihi: YYYY-AA-GG formatında",
	"   - Oda Tipi: Açılır menüden seçiniz",
	"   - Otel Alış Fiyatı / Otel Satış Fiyatı: Gecelik, sayısal değer",
	"",
	"2. Örnek kayıtları silip kendi kayıtlarınızı ekleyebilirsiniz.",
	"3. Tarihleri Excel tarih formatında da girebilirsiniz.",
	"4. Çıkış tarihi giriş tarihinden sonra olmalıdır.",
	"",
	"Not: Bu şablonu doldurduktan sonra içe aktarma ekranından",
	"verileri sisteme aktarabilirsiniz.",
}

// WriteTemplate produces the static import template: the exact required
// headers, two example rows, a hidden room-type sheet wired as a dropdown
// on the Oda Tipi column, date and price range validations, and a separate
// instructions sheet. It does not touch stored records.
func WriteTemplate(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(DataSheet)
	if err != nil {
		return fmt.Errorf("sayfa oluşturulamadı: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	if err := writeHeaderRow(f, DataSheet, templateHeaders); err != nil {
		return err
	}
	for rowIdx, row := range exampleRows {
		for colIdx, v := range row {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(DataSheet, cell, v); err != nil {
				return err
			}
		}
	}
	_ = f.SetColWidth(DataSheet, "A", "K", 18)

	// hidden auxiliary sheet listing the valid room types
	if _, err := f.NewSheet(roomTypesSheet); err != nil {
		return err
	}
	for i, rt := range models.RoomTypes {
		if err := f.SetCellValue(roomTypesSheet, fmt.Sprintf("A%d", i+1), rt); err != nil {
			return err
		}
	}
	if err := f.SetSheetVisible(roomTypesSheet, false); err != nil {
		return err
	}

	// room-type dropdown bound to the hidden sheet
	dvRoom := excelize.NewDataValidation(true)
	dvRoom.Sqref = "H2:H200"
	dvRoom.SetSqrefDropList(fmt.Sprintf("'%s'!$A$1:$A$%d", roomTypesSheet, len(models.RoomTypes)))
	if err := f.AddDataValidation(DataSheet, dvRoom); err != nil {
		return err
	}

	// dates constrained to a sane window (Excel serials for 2000..2100)
	dvDate := excelize.NewDataValidation(true)
	dvDate.Sqref = "F2:G200"
	if err := dvDate.SetRange(36526, 73415, excelize.DataValidationTypeDate, excelize.DataValidationOperatorBetween); err != nil {
		return err
	}
	dvDate.SetError(excelize.DataValidationErrorStyleStop, "Geçersiz tarih", "Tarihi YYYY-AA-GG formatında giriniz.")
	if err := f.AddDataValidation(DataSheet, dvDate); err != nil {
		return err
	}

	// prices must be positive decimals
	dvPrice := excelize.NewDataValidation(true)
	dvPrice.Sqref = "J2:K200"
	if err := dvPrice.SetRange(0.01, 9999999.99, excelize.DataValidationTypeDecimal, excelize.DataValidationOperatorBetween); err != nil {
		return err
	}
	dvPrice.SetError(excelize.DataValidationErrorStyleStop, "Geçersiz fiyat", "Gecelik ücreti pozitif sayı olarak giriniz.")
	if err := f.AddDataValidation(DataSheet, dvPrice); err != nil {
		return err
	}

	// instructions sheet
	if _, err := f.NewSheet(instructionsSheet); err != nil {
		return err
	}
	for i, line := range instructions {
		if err := f.SetCellValue(instructionsSheet, fmt.Sprintf("A%d", i+1), line); err != nil {
			return err
		}
	}
	_ = f.SetColWidth(instructionsSheet, "A", "A", 70)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("şablon yazılamadı: %w", err)
	}
	return nil
}
