package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/angelmondragon/greatkart/pkg/db"
	"github.com/angelmondragon/greatkart/pkg/db/models"
	"github.com/angelmondragon/greatkart/pkg/migrate"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

// OpenSQLite returns a migrated, private in-memory database for one test.
func OpenSQLite(t *testing.T) *db.Client {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_foreign_keys=on", name, dbSeq.Add(1))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := migrate.RunEmbedded(context.Background(), sqlDB, "sqlite3", "up"); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db.NewFromConn(conn)
}

// MustCreateProduct inserts an available catalog product priced at price.
func MustCreateProduct(t *testing.T, conn *gorm.DB, slug, price string) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:        strings.ToUpper(slug[:1]) + slug[1:],
		Slug:        slug,
		Price:       decimal.RequireFromString(price),
		Stock:       10,
		IsAvailable: true,
	}
	if err := conn.Create(product).Error; err != nil {
		t.Fatalf("create product %s: %v", slug, err)
	}
	return product
}
