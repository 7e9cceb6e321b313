package excel

import (
	"strings"

	"github.com/gosimple/slug"
)

// NormalizeHeader canonicalizes a spreadsheet header: trims, collapses
// whitespace (including non-breaking spaces), transliterates Turkish and
// accented letters to ASCII, lowercases and joins the words with single
// underscores. "Giriş Tarihi", " giriş   tarihi " and "GIRIS_TARIHI" all
// normalize to "giris_tarihi". The function is idempotent.
func NormalizeHeader(header string) string {
	return strings.ReplaceAll(slug.Make(header), "-", "_")
}

// column pairs a human-readable header with its canonical key.
type column struct {
	Display string
	Key     string
}

func col(display string) column {
	return column{Display: display, Key: NormalizeHeader(display)}
}

// Import columns. The reference keys go through the exact same
// normalization as incoming headers, so matching stays tolerant of
// spacing, casing and diacritic variation.
var (
	colGuestName     = col("Adı Soyadı")
	colGuestTitle    = col("Unvan")
	colCompanyName   = col("Firma Adı")
	colCountry       = col("Ülke")
	colCity          = col("Şehir")
	colCheckIn       = col("Giriş Tarihi")
	colCheckOut      = col("Çıkış Tarihi")
	colRoomType      = col("Oda Tipi")
	colHotelName     = col("Otel Adı")
	colPurchasePrice = col("Otel Alış Fiyatı")
	colSalePrice     = col("Otel Satış Fiyatı")
)

// requiredColumns must all be present in an import file; Firma Adı is
// recognized but optional.
var requiredColumns = []column{
	colGuestName,
	colGuestTitle,
	colCountry,
	colCity,
	colCheckIn,
	colCheckOut,
	colRoomType,
	colHotelName,
	colPurchasePrice,
	colSalePrice,
}
