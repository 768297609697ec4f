package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type keyed struct {
	ID   uint   `gorm:"primaryKey"`
	Code string `gorm:"uniqueIndex"`
}

func TestOpenSQLite_TranslatesUniqueViolations(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "config_test.db"), nil)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&keyed{}))

	require.NoError(t, db.Create(&keyed{ID: 1, Code: "a"}).Error)
	assert.ErrorIs(t, db.Create(&keyed{ID: 2, Code: "a"}).Error, gorm.ErrDuplicatedKey)
	assert.ErrorIs(t, db.Create(&keyed{ID: 1, Code: "b"}).Error, gorm.ErrDuplicatedKey)

	// Non-constraint errors pass through unchanged.
	err = db.First(&keyed{}, "code = ?", "missing").Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
