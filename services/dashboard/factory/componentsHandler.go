package factory

import (
	"context"

	"github.com/plantops/maintenance-kpi-monitoring/services/dashboard/api"
	"github.com/plantops/maintenance-kpi-monitoring/services/dashboard/config"
	"github.com/plantops/maintenance-kpi-monitoring/services/dashboard/dataset"
	"github.com/plantops/maintenance-kpi-monitoring/services/dashboard/engine"
	"github.com/plantops/maintenance-kpi-monitoring/services/dashboard/storage"
)

type componentsHandler struct {
	store  api.Storage
	server Server
}

// NewComponentsHandler creates a new components handler
func NewComponentsHandler(
	serviceKeyApi string,
	cfg config.Config,
) (*componentsHandler, error) {
	store, err := storage.NewSQLiteStorage(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	// the dashboard starts from the built-in demonstration dataset until a file is imported
	err = store.ReplaceEquipments(context.Background(), dataset.EquipmentData)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	kpiEngine, err := engine.NewKPIEngine(dataset.DefaultTargets, dataset.TrendThreshold)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	serverArgs := api.ArgsWebServer{
		ServiceKeyApi:  serviceKeyApi,
		ListenAddress:  cfg.ListenAddress,
		Storage:        store,
		Engine:         kpiEngine,
		GeneralHandler: api.CORSMiddleware,
	}

	server, err := api.NewServer(serverArgs)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	return &componentsHandler{
		store:  store,
		server: server,
	}, nil
}

// GetStore returns the storage component
func (ch *componentsHandler) GetStore() api.Storage {
	return ch.store
}

// GetServer returns the server component
func (ch *componentsHandler) GetServer() Server {
	return ch.server
}

// Start starts the inner components
func (ch *componentsHandler) Start() {
	ch.server.Start()
}

// Close closes the inner components
func (ch *componentsHandler) Close() {
	_ = ch.server.Close()
	_ = ch.store.Close()
}
