package models

import "time"

// DateLayout is the storage format for check-in/check-out dates.
const DateLayout = "2006-01-02"

// RoomTypes is the fixed set of valid room types, in display order.
var RoomTypes = []string{
	"Single Oda",
	"Double Oda",
	"Triple Oda",
	"Suit Oda",
	"Aile Odası",
}

// ValidRoomType reports whether s is one of the known room types.
func ValidRoomType(s string) bool {
	for _, rt := range RoomTypes {
		if s == rt {
			return true
		}
	}
	return false
}

// Stay is one hotel-stay transaction.
// Dates are stored as YYYY-MM-DD strings; both totals are derived
// (nights × per-night price) and recomputed on every write.
type Stay struct {
	ID                       uint      `gorm:"primaryKey" json:"id"`
	GuestName                string    `gorm:"size:128;not null" json:"guest_name"`
	GuestTitle               string    `gorm:"size:64;not null" json:"guest_title"`
	CompanyName              string    `gorm:"size:128;not null;default:''" json:"company_name"`
	Country                  string    `gorm:"size:64;not null" json:"country"`
	City                     string    `gorm:"size:64;not null" json:"city"`
	CheckInDate              string    `gorm:"size:10;not null;index" json:"check_in_date"`
	CheckOutDate             string    `gorm:"size:10;not null" json:"check_out_date"`
	RoomType                 string    `gorm:"size:32;not null" json:"room_type"`
	HotelName                string    `gorm:"size:128;not null;default:''" json:"hotel_name"`
	HotelPurchasePrice       float64   `gorm:"not null;default:0" json:"hotel_purchase_price"`
	HotelPurchaseTotalAmount float64   `gorm:"not null;default:0" json:"hotel_purchase_total_amount"`
	HotelSalePrice           float64   `gorm:"not null;default:0" json:"hotel_sale_price"`
	TotalSaleAmount          float64   `gorm:"not null;default:0" json:"total_sale_amount"`
	CreatedAt                time.Time `json:"created_at"`
	UpdatedAt                time.Time `json:"updated_at"`
}

func (Stay) TableName() string {
	return "stays"
}

// Nights returns the whole-day difference between check-out and check-in.
func (s *Stay) Nights() int {
	in, err := time.Parse(DateLayout, s.CheckInDate)
	if err != nil {
		return 0
	}
	out, err := time.Parse(DateLayout, s.CheckOutDate)
	if err != nil {
		return 0
	}
	return int(out.Sub(in).Hours() / 24)
}

// Classification buckets a stay by its night count.
func (s *Stay) Classification() string {
	switch s.Nights() {
	case 1:
		return "Single"
	case 2:
		return "Double"
	case 3:
		return "Triple"
	default:
		return "Multiple"
	}
}
