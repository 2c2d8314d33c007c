package mock

import (
	"fmt"
	"sort"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	dbOnce sync.Once
	db     *Db
)

// Db is a named in-memory SQLite database standing in for Postgres in feature runs.
type Db struct {
	DbConn *gorm.DB
	models map[string]any
}

// NewDb opens the shared database once and migrates models, keyed by table name.
func NewDb(name string, models map[string]any) *Db {
	dbOnce.Do(func() {
		db = open(name, models)
	})
	return db
}

func open(name string, models map[string]any) *Db {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to open test database. err: " + err.Error())
	}

	// One connection keeps the API server and the steps on the same memory database.
	sqlDB, err := conn.DB()
	if err != nil {
		panic("failed to access test database pool. err: " + err.Error())
	}
	sqlDB.SetMaxOpenConns(1)

	d := &Db{DbConn: conn, models: models}
	if err := conn.AutoMigrate(d.modelList()...); err != nil {
		panic("failed to migrate test database. err: " + err.Error())
	}
	return d
}

// ClearDB deletes every row from the migrated tables.
func (d *Db) ClearDB() error {
	return d.DbConn.Transaction(func(tx *gorm.DB) error {
		session := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped()
		for _, table := range d.tables() {
			if err := session.Delete(d.models[table]).Error; err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}
		return nil
	})
}

// GetModel returns the model registered for table.
func (d *Db) GetModel(table string) (any, bool) {
	model, ok := d.models[table]
	return model, ok
}

func (d *Db) tables() []string {
	tables := make([]string, 0, len(d.models))
	for table := range d.models {
		tables = append(tables, table)
	}
	sort.Strings(tables)
	return tables
}

func (d *Db) modelList() []any {
	list := make([]any, 0, len(d.models))
	for _, table := range d.tables() {
		list = append(list, d.models[table])
	}
	return list
}
