package database_test

import (
	"testing"

	"thunder-cargo/internal/database"
	"thunder-cargo/internal/models"
	"thunder-cargo/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedIsIdempotent(t *testing.T) {
	db, _ := testutil.NewDB(t)

	seeded, err := database.Seed(db)
	require.NoError(t, err)
	assert.False(t, seeded)

	var branches, cargos, logs int64
	require.NoError(t, db.Model(&models.Branch{}).Count(&branches).Error)
	require.NoError(t, db.Model(&models.Cargo{}).Count(&cargos).Error)
	require.NoError(t, db.Model(&models.TrackingLog{}).Count(&logs).Error)

	assert.Equal(t, int64(7), branches)
	assert.Equal(t, int64(5), cargos)
	assert.Equal(t, int64(13), logs)
}

func TestSeedReferencesResolve(t *testing.T) {
	db, _ := testutil.NewDB(t)

	var cargo models.Cargo
	require.NoError(t, db.Preload("Sender").Preload("OriginBranch").Preload("ServiceType").First(&cargo, "id = ?", "CG001").Error)

	assert.Equal(t, "Ahmet Yilmaz", cargo.Sender.FullName())
	assert.Equal(t, "Kadikoy Branch", cargo.OriginBranch.Name)
	assert.Equal(t, "Express", cargo.ServiceType.Name)
}
