package store

import (
	"fmt"
	"time"

	"github.com/MehmetDemirkok/yurtsever/internal/models"
)

// ReportTotals are the global aggregates of a detailed report.
type ReportTotals struct {
	DistinctGuests  int     `json:"distinct_guests"`
	TotalStays      int     `json:"total_stays"`
	TotalNights     int     `json:"total_nights"`
	PurchaseRevenue float64 `json:"purchase_revenue"`
	SaleRevenue     float64 `json:"sale_revenue"`
}

// ReportRow joins a stay with its night-count classification. The global
// totals are replicated onto every row so a flat sheet stays self-contained.
type ReportRow struct {
	Stay           models.Stay  `json:"stay"`
	Nights         int          `json:"nights"`
	Classification string       `json:"classification"`
	Totals         ReportTotals `json:"totals"`
}

// Report is the result of DetailedReport.
type Report struct {
	Rows   []ReportRow  `json:"rows"`
	Totals ReportTotals `json:"totals"`
}

// DetailedReport builds the classification report. When supplied, the range
// is inclusive on both sides: check_in_date >= start and
// check_out_date <= end.
func (s *StayStore) DetailedReport(start, end *string) (*Report, error) {
	q := s.DB.Model(&models.Stay{})
	if start != nil && *start != "" {
		if _, err := time.Parse(models.DateLayout, *start); err != nil {
			return nil, invalid("start_date", "geçersiz tarih: "+*start)
		}
		q = q.Where("check_in_date >= ?", *start)
	}
	if end != nil && *end != "" {
		if _, err := time.Parse(models.DateLayout, *end); err != nil {
			return nil, invalid("end_date", "geçersiz tarih: "+*end)
		}
		q = q.Where("check_out_date <= ?", *end)
	}

	var stays []models.Stay
	if err := q.Order("check_in_date DESC, id DESC").Find(&stays).Error; err != nil {
		return nil, fmt.Errorf("report query: %w", err)
	}

	var totals ReportTotals
	guests := make(map[string]struct{})
	for i := range stays {
		guests[stays[i].GuestName] = struct{}{}
		totals.TotalNights += stays[i].Nights()
		totals.PurchaseRevenue += stays[i].HotelPurchaseTotalAmount
		totals.SaleRevenue += stays[i].TotalSaleAmount
	}
	totals.TotalStays = len(stays)
	totals.DistinctGuests = len(guests)

	rows := make([]ReportRow, 0, len(stays))
	for i := range stays {
		rows = append(rows, ReportRow{
			Stay:           stays[i],
			Nights:         stays[i].Nights(),
			Classification: stays[i].Classification(),
			Totals:         totals,
		})
	}

	return &Report{Rows: rows, Totals: totals}, nil
}

// PeriodRange resolves a named period to an inclusive date range: the
// current week (Monday through Sunday), calendar month or calendar year.
func PeriodRange(period string, now time.Time) (start, end string, err error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch period {
	case "week":
		weekday := int(today.Weekday())
		if weekday == 0 {
			weekday = 7 // Sunday closes the week
		}
		from := today.AddDate(0, 0, -(weekday - 1))
		return from.Format(models.DateLayout), from.AddDate(0, 0, 6).Format(models.DateLayout), nil
	case "month":
		from := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		return from.Format(models.DateLayout), from.AddDate(0, 1, -1).Format(models.DateLayout), nil
	case "year":
		from := time.Date(today.Year(), 1, 1, 0, 0, 0, 0, today.Location())
		return from.Format(models.DateLayout), time.Date(today.Year(), 12, 31, 0, 0, 0, 0, today.Location()).Format(models.DateLayout), nil
	default:
		return "", "", invalid("period", "week, month veya year olmalı: "+period)
	}
}
