package repository

import (
	"context"
	"testing"

	"health-management/config"
	"health-management/internal/domain/entity"
	domainRepo "health-management/internal/domain/repository"
	"health-management/internal/infrastructure/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func startPostgres(t *testing.T) *gorm.DB {
	t.Helper()

	port := startContainer(t, "postgres:16-alpine", "5432",
		"POSTGRES_USER=testuser",
		"POSTGRES_PASSWORD=testpass",
		"POSTGRES_DB=appointments",
	)
	cfg := config.DBConfig{
		Driver:   config.DriverPostgres,
		Host:     "localhost",
		Port:     port,
		User:     "testuser",
		Password: "testpass",
		Name:     "appointments",
	}

	var db *gorm.DB
	waitFor(t, "postgres", func(ctx context.Context) error {
		conn, err := database.NewPostgresConnection(cfg, "test")
		if err != nil {
			return err
		}
		db = conn
		return nil
	})
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestGormAppointmentRepository(t *testing.T) {
	db := startPostgres(t)

	runAppointmentStoreTests(t, func(t *testing.T) domainRepo.AppointmentRepository {
		require.NoError(t, db.Exec("TRUNCATE appointments").Error)
		return NewGormAppointmentRepository(db)
	}, uuid.NewString())

	t.Run("check constraint maps to ErrConstraintViolation", func(t *testing.T) {
		require.NoError(t, db.Exec("TRUNCATE appointments").Error)
		repo := NewGormAppointmentRepository(db)
		ctx := context.Background()

		a := newAppointment("p1", "2025-03-01")
		require.NoError(t, repo.Create(ctx, a))

		_, err := repo.UpdateStatus(ctx, a.ID, entity.AppointmentStatus("archived"))
		assert.ErrorIs(t, err, domainRepo.ErrConstraintViolation)

		stored, err := repo.FindByID(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.AppointmentStatusScheduled, stored.Status)

		bad := newAppointment("p1", "2025-03-02")
		bad.Status = "archived"
		assert.ErrorIs(t, repo.Create(ctx, bad), domainRepo.ErrConstraintViolation)
	})
}
