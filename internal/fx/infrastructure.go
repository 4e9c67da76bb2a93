package fx

import (
	"phonebook/config"
	"phonebook/internal/domain/contact"
	"phonebook/internal/domain/user"
	"phonebook/internal/infrastructure"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

var InfrastructureModule = fx.Module("infrastructure",
	fx.Provide(
		newDatabase,
		newUserRepository,
		newContactRepository,
	),
)

func newDatabase(lc fx.Lifecycle, cfg *config.Config) (*gorm.DB, error) {
	db, err := infrastructure.NewDb(cfg)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.StopHook(func() error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}))
	return db, nil
}

func newUserRepository(db *gorm.DB) user.Repository {
	return &infrastructure.UserRepository{DB: db}
}

func newContactRepository(db *gorm.DB) contact.Repository {
	return &infrastructure.ContactRepository{DB: db}
}
