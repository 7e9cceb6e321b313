package database_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/MehmetDemirkok/yurtsever/internal/database"
	"github.com/MehmetDemirkok/yurtsever/internal/store"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	return db
}

// firstGenerationSQL is the very first schema generation, before
// company_name/hotel_name and before either column rename.
const firstGenerationSQL = `
CREATE TABLE stays (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	guest_name TEXT NOT NULL,
	guest_title TEXT NOT NULL,
	country TEXT NOT NULL,
	city TEXT NOT NULL,
	check_in_date TEXT NOT NULL,
	check_out_date TEXT NOT NULL,
	room_type TEXT NOT NULL,
	nightly_rate REAL NOT NULL,
	total_amount REAL NOT NULL,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
)`

func columnNames(t *testing.T, db *gorm.DB) map[string]bool {
	t.Helper()
	var names []string
	require.NoError(t, db.Raw("SELECT name FROM pragma_table_info('stays')").Scan(&names).Error)
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}

func TestEnsureSchema_CreatesFreshTable(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, database.EnsureSchema(db))

	cols := columnNames(t, db)
	for _, want := range []string{
		"id", "guest_name", "guest_title", "company_name", "country", "city",
		"check_in_date", "check_out_date", "room_type", "hotel_name",
		"hotel_purchase_price", "hotel_purchase_total_amount",
		"hotel_sale_price", "total_sale_amount", "created_at", "updated_at",
	} {
		assert.True(t, cols[want], "missing column %s", want)
	}
	assert.False(t, cols["nightly_rate"])
	assert.False(t, cols["total_amount"])
}

func TestEnsureSchema_MigratesFirstGenerationLosslessly(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.Exec(firstGenerationSQL).Error)
	require.NoError(t, db.Exec(`INSERT INTO stays
		(id, guest_name, guest_title, country, city, check_in_date, check_out_date,
		 room_type, nightly_rate, total_amount, created_at, updated_at)
		VALUES
		(1, 'Ahmet Yılmaz', 'Bay', 'Türkiye', 'İstanbul', '2024-03-20', '2024-03-25',
		 'Single Oda', 500, 2500, '2024-03-01 10:00:00', '2024-03-01 10:00:00'),
		(7, 'Ayşe Demir', 'Bayan', 'Türkiye', 'Ankara', '2024-03-21', '2024-03-23',
		 'Double Oda', 750, 1500, '2024-03-02 11:00:00', '2024-03-02 11:00:00')`).Error)

	require.NoError(t, database.EnsureSchema(db))

	cols := columnNames(t, db)
	assert.True(t, cols["hotel_purchase_price"])
	assert.True(t, cols["hotel_purchase_total_amount"])
	assert.False(t, cols["nightly_rate"])
	assert.False(t, cols["total_amount"])

	type row struct {
		ID                       uint
		GuestName                string
		HotelPurchasePrice       float64
		HotelPurchaseTotalAmount float64
		HotelSalePrice           float64
		TotalSaleAmount          float64
	}
	var rows []row
	require.NoError(t, db.Raw(`SELECT id, guest_name, hotel_purchase_price,
		hotel_purchase_total_amount, hotel_sale_price, total_sale_amount
		FROM stays ORDER BY id`).Scan(&rows).Error)
	require.Len(t, rows, 2)

	// ids survive the rebuild, business fields land under their new names
	assert.Equal(t, uint(1), rows[0].ID)
	assert.Equal(t, 500.0, rows[0].HotelPurchasePrice)
	assert.Equal(t, 2500.0, rows[0].HotelPurchaseTotalAmount)
	assert.Equal(t, 0.0, rows[0].HotelSalePrice)
	assert.Equal(t, 0.0, rows[0].TotalSaleAmount)
	assert.Equal(t, uint(7), rows[1].ID)
	assert.Equal(t, "Ayşe Demir", rows[1].GuestName)
}

func TestEnsureSchema_IsIdempotent(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.Exec(firstGenerationSQL).Error)
	require.NoError(t, db.Exec(`INSERT INTO stays
		(guest_name, guest_title, country, city, check_in_date, check_out_date,
		 room_type, nightly_rate, total_amount, created_at, updated_at)
		VALUES ('Ahmet Yılmaz', 'Bay', 'Türkiye', 'İstanbul', '2024-03-20',
		 '2024-03-25', 'Single Oda', 500, 2500, '2024-03-01 10:00:00', '2024-03-01 10:00:00')`).Error)

	require.NoError(t, database.EnsureSchema(db))
	colsAfterFirst := columnNames(t, db)

	require.NoError(t, database.EnsureSchema(db))
	assert.Equal(t, colsAfterFirst, columnNames(t, db))

	var count int64
	require.NoError(t, db.Raw("SELECT COUNT(*) FROM stays").Scan(&count).Error)
	assert.Equal(t, int64(1), count)
	assert.False(t, db.Migrator().HasTable("old_stays"))
}

func TestEnsureSchema_RestoresTableWhenRebuildFails(t *testing.T) {
	db := newTestDB(t)

	// first-generation table without the NOT NULL constraints, holding a
	// row the rebuilt table must reject
	require.NoError(t, db.Exec(`CREATE TABLE stays (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		guest_name TEXT,
		guest_title TEXT,
		country TEXT,
		city TEXT,
		check_in_date TEXT,
		check_out_date TEXT,
		room_type TEXT,
		nightly_rate REAL,
		total_amount REAL,
		created_at TEXT,
		updated_at TEXT
	)`).Error)
	require.NoError(t, db.Exec(`INSERT INTO stays
		(guest_name, guest_title, country, city, check_in_date, check_out_date,
		 room_type, nightly_rate, total_amount, created_at, updated_at)
		VALUES (NULL, 'Bay', 'Türkiye', 'İstanbul', '2024-03-20', '2024-03-25',
		 'Single Oda', 500, 2500, '2024-03-01 10:00:00', '2024-03-01 10:00:00')`).Error)

	err := database.EnsureSchema(db)
	require.Error(t, err)
	var schemaErr *database.SchemaError
	assert.True(t, errors.As(err, &schemaErr))

	// the original table is back under its own name, nothing was lost
	assert.True(t, db.Migrator().HasTable("stays"))
	assert.False(t, db.Migrator().HasTable("old_stays"))

	cols := columnNames(t, db)
	assert.True(t, cols["nightly_rate"])
	assert.False(t, cols["hotel_purchase_price"])

	var count int64
	require.NoError(t, db.Raw("SELECT COUNT(*) FROM stays").Scan(&count).Error)
	assert.Equal(t, int64(1), count)

	var rate float64
	require.NoError(t, db.Raw("SELECT nightly_rate FROM stays").Scan(&rate).Error)
	assert.Equal(t, 500.0, rate)
}

func TestEnsureSchema_MigratedStoreServesTheRecordStore(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.Exec(firstGenerationSQL).Error)
	require.NoError(t, db.Exec(`INSERT INTO stays
		(guest_name, guest_title, country, city, check_in_date, check_out_date,
		 room_type, nightly_rate, total_amount, created_at, updated_at)
		VALUES ('Ahmet Yılmaz', 'Bay', 'Türkiye', 'İstanbul', '2024-03-20',
		 '2024-03-25', 'Single Oda', 500, 2500, '2024-03-01 10:00:00', '2024-03-01 10:00:00')`).Error)
	require.NoError(t, database.EnsureSchema(db))

	st := store.NewStayStore(db)

	stays, err := st.List(store.ListFilter{}, store.SortSpec{})
	require.NoError(t, err)
	require.Len(t, stays, 1)
	assert.Equal(t, 500.0, stays[0].HotelPurchasePrice)

	// new writes work against the migrated table
	sale := 600.0
	ok, err := st.Update(stays[0].ID, store.StayPatch{HotelSalePrice: &sale})
	require.NoError(t, err)
	require.True(t, ok)

	got, err := st.Get(stays[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 3000.0, got.TotalSaleAmount)
}
