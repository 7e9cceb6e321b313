package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/MehmetDemirkok/yurtsever/internal/models"
	"github.com/MehmetDemirkok/yurtsever/internal/store"
)

var (
	firstNames = []string{"Ahmet", "Mehmet", "Ayşe", "Fatma", "Mustafa", "Zeynep", "Emre", "Elif", "Hasan", "Merve"}
	lastNames  = []string{"Yılmaz", "Demir", "Kaya", "Şahin", "Çelik", "Arslan", "Doğan", "Koç", "Aydın", "Öztürk"}
	titles     = []string{"Bay", "Bayan", "Çocuk"}
	companies  = []string{"", "Yurtsever Turizm", "Anadolu Seyahat", "Ege Tur", ""}
	countries  = []string{"Türkiye", "Almanya", "Fransa", "Hollanda", "İngiltere"}
	cities     = []string{"İstanbul", "Ankara", "İzmir", "Antalya", "Bursa", "Trabzon"}
	hotels     = []string{"Grand Otel", "Park Otel", "Marina Otel", "Saray Otel", "Liman Otel"}
)

// Populate inserts n demo stay records through the store so every record
// goes through the normal validation and derived-total computation.
func Populate(st *store.StayStore, n int) error {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for i := 0; i < n; i++ {
		checkIn := time.Now().AddDate(0, 0, -rng.Intn(730))
		nights := 1 + rng.Intn(10)
		purchase := 50 + rng.Float64()*450

		_, err := st.Create(store.StayInput{
			GuestName:          firstNames[rng.Intn(len(firstNames))] + " " + lastNames[rng.Intn(len(lastNames))],
			GuestTitle:         titles[rng.Intn(len(titles))],
			CompanyName:        companies[rng.Intn(len(companies))],
			Country:            countries[rng.Intn(len(countries))],
			City:               cities[rng.Intn(len(cities))],
			CheckInDate:        checkIn.Format(models.DateLayout),
			CheckOutDate:       checkIn.AddDate(0, 0, nights).Format(models.DateLayout),
			RoomType:           models.RoomTypes[rng.Intn(len(models.RoomTypes))],
			HotelName:          hotels[rng.Intn(len(hotels))],
			HotelPurchasePrice: float64(int(purchase*100)) / 100,
			HotelSalePrice:     float64(int(purchase*1.2*100)) / 100,
		})
		if err != nil {
			return fmt.Errorf("demo kaydı %d: %w", i+1, err)
		}
	}
	return nil
}
