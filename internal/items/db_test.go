package items

import (
	"testing"

	"github.com/altamira-labs/stocktrack-backend/pkg/db/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.Invoice{}, &models.Item{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return conn
}
