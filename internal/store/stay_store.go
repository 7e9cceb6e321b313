package store

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MehmetDemirkok/yurtsever/internal/models"

	"gorm.io/gorm"
)

// StayStore owns all reads and writes of stay records. The database handle
// is injected once at construction; there is no package-level state.
type StayStore struct {
	DB *gorm.DB
}

func NewStayStore(db *gorm.DB) *StayStore {
	return &StayStore{DB: db}
}

// StayInput carries every caller-supplied field of a stay.
type StayInput struct {
	GuestName          string
	GuestTitle         string
	CompanyName        string
	Country            string
	City               string
	CheckInDate        string
	CheckOutDate       string
	RoomType           string
	HotelName          string
	HotelPurchasePrice float64
	HotelSalePrice     float64
}

// StayPatch is a partial update: nil fields keep their stored value.
type StayPatch struct {
	GuestName          *string
	GuestTitle         *string
	CompanyName        *string
	Country            *string
	City               *string
	CheckInDate        *string
	CheckOutDate       *string
	RoomType           *string
	HotelName          *string
	HotelPurchasePrice *float64
	HotelSalePrice     *float64
}

// Empty reports whether the patch carries no fields at all.
func (p *StayPatch) Empty() bool {
	return p.GuestName == nil && p.GuestTitle == nil && p.CompanyName == nil &&
		p.Country == nil && p.City == nil && p.CheckInDate == nil &&
		p.CheckOutDate == nil && p.RoomType == nil && p.HotelName == nil &&
		p.HotelPurchasePrice == nil && p.HotelSalePrice == nil
}

// ListFilter narrows List results. Text filters are case-sensitive
// "contains" matches; an empty RoomType means no room-type filter.
type ListFilter struct {
	GuestName string
	Country   string
	City      string
	RoomType  string
}

// SortKey enumerates the sortable columns.
type SortKey string

const (
	SortByID            SortKey = "id"
	SortByGuestName     SortKey = "guest_name"
	SortByGuestTitle    SortKey = "guest_title"
	SortByCompanyName   SortKey = "company_name"
	SortByCountry       SortKey = "country"
	SortByCity          SortKey = "city"
	SortByCheckInDate   SortKey = "check_in_date"
	SortByCheckOutDate  SortKey = "check_out_date"
	SortByRoomType      SortKey = "room_type"
	SortByHotelName     SortKey = "hotel_name"
	SortByPurchasePrice SortKey = "hotel_purchase_price"
	SortByPurchaseTotal SortKey = "hotel_purchase_total_amount"
	SortBySalePrice     SortKey = "hotel_sale_price"
	SortBySaleTotal     SortKey = "total_sale_amount"
)

var sortColumns = map[SortKey]string{
	SortByID:            "id",
	SortByGuestName:     "guest_name",
	SortByGuestTitle:    "guest_title",
	SortByCompanyName:   "company_name",
	SortByCountry:       "country",
	SortByCity:          "city",
	SortByCheckInDate:   "check_in_date",
	SortByCheckOutDate:  "check_out_date",
	SortByRoomType:      "room_type",
	SortByHotelName:     "hotel_name",
	SortByPurchasePrice: "hotel_purchase_price",
	SortByPurchaseTotal: "hotel_purchase_total_amount",
	SortBySalePrice:     "hotel_sale_price",
	SortBySaleTotal:     "total_sale_amount",
}

// SortSpec selects a column and direction. A zero Key means the default
// ordering: check-in date, newest first.
type SortSpec struct {
	Key        SortKey
	Descending bool
}

// Nights returns the whole-day span between two already validated dates.
func Nights(checkIn, checkOut string) int {
	in, _ := time.Parse(models.DateLayout, checkIn)
	out, _ := time.Parse(models.DateLayout, checkOut)
	return int(out.Sub(in).Hours() / 24)
}

func (in *StayInput) trim() {
	in.GuestName = strings.TrimSpace(in.GuestName)
	in.GuestTitle = strings.TrimSpace(in.GuestTitle)
	in.CompanyName = strings.TrimSpace(in.CompanyName)
	in.Country = strings.TrimSpace(in.Country)
	in.City = strings.TrimSpace(in.City)
	in.CheckInDate = strings.TrimSpace(in.CheckInDate)
	in.CheckOutDate = strings.TrimSpace(in.CheckOutDate)
	in.RoomType = strings.TrimSpace(in.RoomType)
	in.HotelName = strings.TrimSpace(in.HotelName)
}

// validate checks a fully populated input. company_name may be empty.
func (in *StayInput) validate() error {
	required := []struct{ field, value string }{
		{"guest_name", in.GuestName},
		{"guest_title", in.GuestTitle},
		{"country", in.Country},
		{"city", in.City},
		{"hotel_name", in.HotelName},
	}
	for _, r := range required {
		if r.value == "" {
			return invalid(r.field, "boş bırakılamaz")
		}
	}
	if !models.ValidRoomType(in.RoomType) {
		return invalid("room_type", "geçersiz oda tipi: "+in.RoomType)
	}
	checkIn, err := time.Parse(models.DateLayout, in.CheckInDate)
	if err != nil {
		return invalid("check_in_date", "geçersiz tarih: "+in.CheckInDate)
	}
	checkOut, err := time.Parse(models.DateLayout, in.CheckOutDate)
	if err != nil {
		return invalid("check_out_date", "geçersiz tarih: "+in.CheckOutDate)
	}
	if !checkOut.After(checkIn) {
		return invalid("check_out_date", "çıkış tarihi giriş tarihinden sonra olmalı")
	}
	if in.HotelPurchasePrice < 0 {
		return invalid("hotel_purchase_price", "negatif olamaz")
	}
	if in.HotelSalePrice < 0 {
		return invalid("hotel_sale_price", "negatif olamaz")
	}
	return nil
}

// Create validates the input, computes both derived totals and inserts a
// new record. It returns the stored record with its assigned id.
func (s *StayStore) Create(in StayInput) (*models.Stay, error) {
	in.trim()
	if err := in.validate(); err != nil {
		return nil, err
	}

	nights := Nights(in.CheckInDate, in.CheckOutDate)
	stay := models.Stay{
		GuestName:                in.GuestName,
		GuestTitle:               in.GuestTitle,
		CompanyName:              in.CompanyName,
		Country:                  in.Country,
		City:                     in.City,
		CheckInDate:              in.CheckInDate,
		CheckOutDate:             in.CheckOutDate,
		RoomType:                 in.RoomType,
		HotelName:                in.HotelName,
		HotelPurchasePrice:       in.HotelPurchasePrice,
		HotelPurchaseTotalAmount: float64(nights) * in.HotelPurchasePrice,
		HotelSalePrice:           in.HotelSalePrice,
		TotalSaleAmount:          float64(nights) * in.HotelSalePrice,
	}

	if err := s.DB.Create(&stay).Error; err != nil {
		return nil, fmt.Errorf("insert stay: %w", err)
	}
	return &stay, nil
}

// Get returns the record with the given id, or nil when it does not exist.
func (s *StayStore) Get(id uint) (*models.Stay, error) {
	var stay models.Stay
	err := s.DB.First(&stay, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch stay %d: %w", id, err)
	}
	return &stay, nil
}

// orderClause resolves the sort spec to an ORDER BY expression. An
// unrecognized sort key is rejected rather than silently defaulted.
func (s *StayStore) orderClause(sort SortSpec) (string, error) {
	if sort.Key == "" {
		return "check_in_date DESC, id DESC", nil
	}
	col, ok := sortColumns[sort.Key]
	if !ok {
		return "", invalid("sort", "bilinmeyen sıralama anahtarı: "+string(sort.Key))
	}
	dir := "ASC"
	if sort.Descending {
		dir = "DESC"
	}
	return fmt.Sprintf("%s %s, id %s", col, dir, dir), nil
}

func (s *StayStore) filtered(f ListFilter) *gorm.DB {
	q := s.DB.Model(&models.Stay{})
	// SQLite LIKE is ASCII case-insensitive, instr keeps the match exact
	if f.GuestName != "" {
		q = q.Where("instr(guest_name, ?) > 0", f.GuestName)
	}
	if f.Country != "" {
		q = q.Where("instr(country, ?) > 0", f.Country)
	}
	if f.City != "" {
		q = q.Where("instr(city, ?) > 0", f.City)
	}
	if f.RoomType != "" {
		q = q.Where("room_type = ?", f.RoomType)
	}
	return q
}

// List returns every record matching the filter in the requested order.
func (s *StayStore) List(f ListFilter, sort SortSpec) ([]models.Stay, error) {
	orderBy, err := s.orderClause(sort)
	if err != nil {
		return nil, err
	}

	var stays []models.Stay
	if err := s.filtered(f).Order(orderBy).Find(&stays).Error; err != nil {
		return nil, fmt.Errorf("list stays: %w", err)
	}
	return stays, nil
}

// ListPage returns one page of the records matching the filter together
// with the total match count, so callers can render page controls. Page
// numbers start at 1.
func (s *StayStore) ListPage(f ListFilter, sort SortSpec, page, size int) ([]models.Stay, int64, error) {
	if page < 1 {
		return nil, 0, invalid("page", "1 veya daha büyük olmalı")
	}
	if size < 1 {
		return nil, 0, invalid("page_size", "1 veya daha büyük olmalı")
	}

	var total int64
	if err := s.filtered(f).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count stays: %w", err)
	}

	orderBy, err := s.orderClause(sort)
	if err != nil {
		return nil, 0, err
	}

	var stays []models.Stay
	err = s.filtered(f).Order(orderBy).Limit(size).Offset((page - 1) * size).Find(&stays).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list stays page %d: %w", page, err)
	}
	return stays, total, nil
}

// Update merges the patch into the stored record, re-validates the result
// and always recomputes both totals from the merged dates and prices.
// It returns false when the patch is empty or the id does not exist.
func (s *StayStore) Update(id uint, patch StayPatch) (bool, error) {
	if patch.Empty() {
		return false, nil
	}

	stay, err := s.Get(id)
	if err != nil {
		return false, err
	}
	if stay == nil {
		return false, nil
	}

	merged := StayInput{
		GuestName:          stay.GuestName,
		GuestTitle:         stay.GuestTitle,
		CompanyName:        stay.CompanyName,
		Country:            stay.Country,
		City:               stay.City,
		CheckInDate:        stay.CheckInDate,
		CheckOutDate:       stay.CheckOutDate,
		RoomType:           stay.RoomType,
		HotelName:          stay.HotelName,
		HotelPurchasePrice: stay.HotelPurchasePrice,
		HotelSalePrice:     stay.HotelSalePrice,
	}
	if patch.GuestName != nil {
		merged.GuestName = *patch.GuestName
	}
	if patch.GuestTitle != nil {
		merged.GuestTitle = *patch.GuestTitle
	}
	if patch.CompanyName != nil {
		merged.CompanyName = *patch.CompanyName
	}
	if patch.Country != nil {
		merged.Country = *patch.Country
	}
	if patch.City != nil {
		merged.City = *patch.City
	}
	if patch.CheckInDate != nil {
		merged.CheckInDate = *patch.CheckInDate
	}
	if patch.CheckOutDate != nil {
		merged.CheckOutDate = *patch.CheckOutDate
	}
	if patch.RoomType != nil {
		merged.RoomType = *patch.RoomType
	}
	if patch.HotelName != nil {
		merged.HotelName = *patch.HotelName
	}
	if patch.HotelPurchasePrice != nil {
		merged.HotelPurchasePrice = *patch.HotelPurchasePrice
	}
	if patch.HotelSalePrice != nil {
		merged.HotelSalePrice = *patch.HotelSalePrice
	}

	merged.trim()
	if err := merged.validate(); err != nil {
		return false, err
	}

	nights := Nights(merged.CheckInDate, merged.CheckOutDate)
	stay.GuestName = merged.GuestName
	stay.GuestTitle = merged.GuestTitle
	stay.CompanyName = merged.CompanyName
	stay.Country = merged.Country
	stay.City = merged.City
	stay.CheckInDate = merged.CheckInDate
	stay.CheckOutDate = merged.CheckOutDate
	stay.RoomType = merged.RoomType
	stay.HotelName = merged.HotelName
	stay.HotelPurchasePrice = merged.HotelPurchasePrice
	stay.HotelPurchaseTotalAmount = float64(nights) * merged.HotelPurchasePrice
	stay.HotelSalePrice = merged.HotelSalePrice
	stay.TotalSaleAmount = float64(nights) * merged.HotelSalePrice

	if err := s.DB.Save(stay).Error; err != nil {
		return false, fmt.Errorf("update stay %d: %w", id, err)
	}
	return true, nil
}

// Delete removes the record with the given id. A missing id is not an
// error: it returns false, nil.
func (s *StayStore) Delete(id uint) (bool, error) {
	res := s.DB.Delete(&models.Stay{}, id)
	if res.Error != nil {
		return false, fmt.Errorf("delete stay %d: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}
