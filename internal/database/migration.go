package database

import (
	"fmt"

	"gorm.io/gorm"
)

const (
	staysTable    = "stays"
	oldStaysTable = "old_stays"
)

// createStaysSQL is the latest generation of the stays table.
// AUTOINCREMENT keeps deleted ids from being reused.
const createStaysSQL = `
CREATE TABLE stays (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	guest_name TEXT NOT NULL,
	guest_title TEXT NOT NULL,
	company_name TEXT NOT NULL DEFAULT '',
	country TEXT NOT NULL,
	city TEXT NOT NULL,
	check_in_date TEXT NOT NULL,
	check_out_date TEXT NOT NULL,
	room_type TEXT NOT NULL,
	hotel_purchase_price REAL NOT NULL DEFAULT 0.0,
	hotel_purchase_total_amount REAL NOT NULL DEFAULT 0.0,
	hotel_name TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	hotel_sale_price REAL NOT NULL DEFAULT 0.0,
	total_sale_amount REAL NOT NULL DEFAULT 0.0
)`

// targetColumns is the insert column list used when rebuilding the table.
const targetColumns = `id, guest_name, guest_title, company_name, country, city,
	check_in_date, check_out_date, room_type, hotel_purchase_price,
	hotel_purchase_total_amount, hotel_name, created_at, updated_at,
	hotel_sale_price, total_sale_amount`

// SchemaError marks a failed migration step. It is fatal: the caller must
// not keep operating against the store.
type SchemaError struct {
	Step string
	Err  error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema migration: %s: %v", e.Step, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// EnsureSchema brings the stays table to the latest column set. It creates
// the table when absent, adds columns introduced by later generations, and
// performs the two historical column renames via rebuild-and-copy. Running
// it against an up-to-date store is a no-op.
func EnsureSchema(db *gorm.DB) error {
	if !db.Migrator().HasTable(staysTable) {
		if err := db.Exec(createStaysSQL).Error; err != nil {
			return &SchemaError{Step: "create stays", Err: err}
		}
		return nil
	}

	for _, c := range []struct{ name, definition string }{
		{"company_name", "TEXT NOT NULL DEFAULT ''"},
		{"hotel_name", "TEXT NOT NULL DEFAULT ''"},
	} {
		if err := addColumnIfMissing(db, c.name, c.definition); err != nil {
			return err
		}
	}

	// nightly_rate -> hotel_purchase_price (carries total_amount along)
	if err := migrateRenamedColumn(db, "nightly_rate", "hotel_purchase_price",
		`id, guest_name, guest_title, company_name, country, city,
		check_in_date, check_out_date, room_type, nightly_rate,
		total_amount, hotel_name, created_at, updated_at, 0.0, 0.0`); err != nil {
		return err
	}

	for _, c := range []struct{ name, definition string }{
		{"hotel_sale_price", "REAL NOT NULL DEFAULT 0.0"},
		{"total_sale_amount", "REAL NOT NULL DEFAULT 0.0"},
	} {
		if err := addColumnIfMissing(db, c.name, c.definition); err != nil {
			return err
		}
	}

	// total_amount -> hotel_purchase_total_amount
	if err := migrateRenamedColumn(db, "total_amount", "hotel_purchase_total_amount",
		`id, guest_name, guest_title, company_name, country, city,
		check_in_date, check_out_date, room_type, hotel_purchase_price,
		total_amount, hotel_name, created_at, updated_at,
		hotel_sale_price, total_sale_amount`); err != nil {
		return err
	}

	return nil
}

func columnExists(db *gorm.DB, column string) (bool, error) {
	var count int64
	err := db.Raw(
		"SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?",
		staysTable, column,
	).Scan(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func addColumnIfMissing(db *gorm.DB, column, definition string) error {
	exists, err := columnExists(db, column)
	if err != nil {
		return &SchemaError{Step: "inspect " + column, Err: err}
	}
	if exists {
		return nil
	}
	stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", staysTable, column, definition)
	if err := db.Exec(stmt).Error; err != nil {
		return &SchemaError{Step: "add column " + column, Err: err}
	}
	return nil
}

// migrateRenamedColumn rebuilds the stays table when the legacy column is
// still present and its successor is not: rename aside, create the target
// table, copy every row under the new names, drop the old table. Each step
// commits on its own; if anything fails after the rename the original table
// name is restored so no data is lost.
func migrateRenamedColumn(db *gorm.DB, legacy, successor, selectColumns string) error {
	hasLegacy, err := columnExists(db, legacy)
	if err != nil {
		return &SchemaError{Step: "inspect " + legacy, Err: err}
	}
	hasSuccessor, err := columnExists(db, successor)
	if err != nil {
		return &SchemaError{Step: "inspect " + successor, Err: err}
	}
	if !hasLegacy || hasSuccessor {
		return nil
	}

	step := fmt.Sprintf("rename %s to %s", legacy, successor)

	if err := db.Exec(fmt.Sprintf("ALTER TABLE %s RENAME TO %s", staysTable, oldStaysTable)).Error; err != nil {
		return &SchemaError{Step: step, Err: err}
	}

	fail := func(cause error) error {
		restoreRenamedTable(db)
		return &SchemaError{Step: step, Err: cause}
	}

	if err := db.Exec(createStaysSQL).Error; err != nil {
		return fail(err)
	}
	copySQL := fmt.Sprintf("INSERT INTO %s (%s) SELECT %s FROM %s",
		staysTable, targetColumns, selectColumns, oldStaysTable)
	if err := db.Exec(copySQL).Error; err != nil {
		return fail(err)
	}
	if err := db.Exec("DROP TABLE " + oldStaysTable).Error; err != nil {
		return fail(err)
	}
	return nil
}

// restoreRenamedTable puts the renamed table back when a rebuild step
// failed, dropping a half-built target table first if one exists.
func restoreRenamedTable(db *gorm.DB) {
	if !db.Migrator().HasTable(oldStaysTable) {
		return
	}
	if db.Migrator().HasTable(staysTable) {
		_ = db.Exec("DROP TABLE " + staysTable).Error
	}
	_ = db.Exec(fmt.Sprintf("ALTER TABLE %s RENAME TO %s", oldStaysTable, staysTable)).Error
}
