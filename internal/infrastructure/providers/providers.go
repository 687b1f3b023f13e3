package providers

import (
	"gorm.io/gorm"

	"github.com/slsfi/arkiva-oai/internal/config"
	"github.com/slsfi/arkiva-oai/internal/infrastructure/database"
	"github.com/slsfi/arkiva-oai/internal/infrastructure/repository"
	"github.com/slsfi/arkiva-oai/internal/mapping"
	"github.com/slsfi/arkiva-oai/internal/service"
	"github.com/slsfi/arkiva-oai/internal/usecase"
)

// NewDatabase opens the configured connection.
func NewDatabase(conf config.Database) (*gorm.DB, error) {
	return database.New(conf.Dialect, conf.Dsn)
}

// NewArkivaUsecase assembles the archive endpoint on top of db.
func NewArkivaUsecase(db *gorm.DB, conf config.Archive) *usecase.ArkivaUsecase {
	return usecase.NewArkivaUsecase(
		repository.NewArchiveRepository(db),
		mapping.Arkiva(conf.AccessBase),
	)
}

// NewLibraryUsecase assembles the library endpoint when a library
// section is configured. It reuses db unless the section carries its
// own DSN.
func NewLibraryUsecase(db *gorm.DB, conf *config.Library) (*usecase.LibraryUsecase, error) {
	if conf == nil {
		return nil, nil
	}

	libraryDB := db
	if conf.Database.Dsn != "" {
		var err error
		libraryDB, err = database.New(conf.Database.Dialect, conf.Database.Dsn)
		if err != nil {
			return nil, err
		}
	}

	repo := repository.NewLibraryRepository(libraryDB, conf.Table, conf.IDColumn, conf.DateColumn)
	return usecase.NewLibraryUsecase(repo, mapping.Library(conf.Descriptor())), nil
}

// NewResponseCache picks the configured cache backend. The none
// backend yields nil, which turns caching off at the handler.
func NewResponseCache(conf config.Cache) service.ResponseCache {
	switch conf.Backend {
	case "memory":
		return service.NewMemoryCache(conf.TTL())
	case "redis":
		rdb := database.NewRedis(conf.RedisAddr, conf.RedisPassword, conf.RedisDB)
		return service.NewRedisCache(rdb, conf.TTL())
	case "memcached":
		return service.NewMemcachedCache(database.NewMemcached(conf.MemcachedAddr), conf.TTL())
	}
	return nil
}
