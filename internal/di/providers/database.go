package providers

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/reviewaudit/internal/logger"
	"github.com/listenupapp/reviewaudit/internal/store/sqlite"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*sqlite.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the in-memory table store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	log, err := do.Invoke[*logger.Logger](i)
	if err != nil {
		return nil, err
	}

	db, err := sqlite.Open(sqlite.MemoryPath, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Debug("Table store initialized", "path", sqlite.MemoryPath)
	return &StoreHandle{Store: db}, nil
}
