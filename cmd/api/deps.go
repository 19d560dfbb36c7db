package main

import (
	"elephantbook/internal/domain/account"
	"elephantbook/internal/domain/category"
	"elephantbook/internal/domain/ledger"
	"elephantbook/internal/infrastructure/postgres"
	httphandlers "elephantbook/internal/interfaces/http"
	"elephantbook/internal/shared/auth"
	"elephantbook/internal/shared/config"

	"github.com/sirupsen/logrus"
)

// Dependencies holds all initialized application components.
type Dependencies struct {
	DB *postgres.DB

	// Handlers
	AuthHandler     *httphandlers.AuthHandler
	AccountHandler  *httphandlers.AccountHandler
	CategoryHandler *httphandlers.CategoryHandler
	LedgerHandler   *httphandlers.LedgerHandler
	TransferHandler *httphandlers.TransferHandler

	// Auth
	JWT *auth.JWT
}

// NewDependencies initializes all application dependencies.
func NewDependencies(cfg *config.Config, log *logrus.Logger) (*Dependencies, error) {
	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}
	log.Info("connected to database")

	if err := db.RunMigrations(); err != nil {
		db.Close()
		return nil, err
	}
	log.Info("migrations applied")

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	accountRepo := postgres.NewAccountRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	ledgerRepo := postgres.NewLedgerRepository(db)

	// Domain services
	accountService := account.NewService(accountRepo)
	categoryService := category.NewService(categoryRepo)
	ledgerService := ledger.NewService(ledgerRepo, accountRepo, categoryRepo, log)

	// Auth
	jwt := auth.NewJWT(cfg.JWT.Secret)

	// Handlers
	authHandler := httphandlers.NewAuthHandler(userRepo, jwt, log)
	accountHandler := httphandlers.NewAccountHandler(accountService, log)
	categoryHandler := httphandlers.NewCategoryHandler(categoryService, log)
	ledgerHandler := httphandlers.NewLedgerHandler(ledgerService, log)
	transferHandler := httphandlers.NewTransferHandler(ledgerService, log)

	return &Dependencies{
		DB:              db,
		AuthHandler:     authHandler,
		AccountHandler:  accountHandler,
		CategoryHandler: categoryHandler,
		LedgerHandler:   ledgerHandler,
		TransferHandler: transferHandler,
		JWT:             jwt,
	}, nil
}

// Close releases all resources held by dependencies.
func (d *Dependencies) Close() {
	if d.DB != nil {
		d.DB.Close()
	}
}
