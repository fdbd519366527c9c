package main

import (
	"github.com/sangkips/logistics-api/internal/config"
	"github.com/sangkips/logistics-api/internal/domain/repository"
	"github.com/sangkips/logistics-api/internal/infrastructure/database"
	infraRepo "github.com/sangkips/logistics-api/internal/infrastructure/repository"
	"github.com/sangkips/logistics-api/internal/infrastructure/repository/memory"
	"github.com/sirupsen/logrus"
)

// repositories is the storage backend selected by DB_DRIVER
type repositories struct {
	transactor  repository.Transactor
	staff       repository.StaffRepository
	customers   repository.CustomerRepository
	categories  repository.CategoryRepository
	shipments   repository.ShipmentRepository
	receipts    repository.ReceiptRepository
	items       repository.ReceiptItemRepository
	sequences   repository.SequenceRepository
	idempotency repository.IdempotencyRepository
}

func openRepositories(cfg *config.DatabaseConfig, log *logrus.Logger) (*repositories, error) {
	if cfg.Driver == config.DriverMemory {
		log.Warn("using the in-memory store, data is lost on restart")
		store := memory.NewStore()
		return &repositories{
			transactor:  memory.NewTransactor(store),
			staff:       memory.NewStaffRepository(store),
			customers:   memory.NewCustomerRepository(store),
			categories:  memory.NewCategoryRepository(store),
			shipments:   memory.NewShipmentRepository(store),
			receipts:    memory.NewReceiptRepository(store),
			items:       memory.NewReceiptItemRepository(store),
			sequences:   memory.NewSequenceRepository(store),
			idempotency: memory.NewIdempotencyRepository(store),
		}, nil
	}

	db, err := database.NewPostgresDB(cfg, log)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(db, log); err != nil {
		return nil, err
	}

	return &repositories{
		transactor:  infraRepo.NewTransactor(db),
		staff:       infraRepo.NewStaffRepository(db),
		customers:   infraRepo.NewCustomerRepository(db),
		categories:  infraRepo.NewCategoryRepository(db),
		shipments:   infraRepo.NewShipmentRepository(db),
		receipts:    infraRepo.NewReceiptRepository(db),
		items:       infraRepo.NewReceiptItemRepository(db),
		sequences:   infraRepo.NewSequenceRepository(db),
		idempotency: infraRepo.NewIdempotencyRepository(db),
	}, nil
}
