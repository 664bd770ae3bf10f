// Command waymark is the wayfinding map editor.
package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/waymark/internal/adapters/driven/config/file"
	"github.com/custodia-labs/waymark/internal/adapters/driven/prompt"
	"github.com/custodia-labs/waymark/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/waymark/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/waymark/internal/adapters/driving/cli"
	"github.com/custodia-labs/waymark/internal/core/domain"
	"github.com/custodia-labs/waymark/internal/core/ports/driven"
	"github.com/custodia-labs/waymark/internal/core/ports/driving"
	"github.com/custodia-labs/waymark/internal/core/services"
	"github.com/custodia-labs/waymark/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetWiring(wire)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// wire builds the services from the configuration in opts.ConfigDir.
func wire(opts cli.Options) (*cli.Services, error) {
	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		logger.Warn("reading settings: %v, using defaults", err)
		defaults := domain.DefaultSettings()
		settings = &defaults
	}

	if settings.Verbose {
		logger.SetVerbose(true)
	}
	logger.SetColor(prompt.IsInteractive(os.Stderr))

	stores, closeFn, err := openStores(settings.Storage, opts.DataDir)
	if err != nil {
		return nil, err
	}

	canvas := settings.Canvas
	return &cli.Services{
		Buildings:  services.NewBuildingService(stores.Buildings, stores.Connectors),
		Tags:       services.NewTagService(stores.Tags, stores.Paths),
		Connectors: services.NewConnectorService(stores.Connectors),
		Settings:   settingsService,
		NewEditor: func(p driven.Prompter) driving.EditorService {
			return services.NewEditor(stores, p, canvas)
		},
		Prompter: commandPrompter(settings.Prompt),
		Config:   configStore,
		Close:    closeFn,
	}, nil
}

func openStores(backend domain.StorageBackend, dataDir string) (services.EditorStores, func() error, error) {
	if backend == domain.StorageMemory {
		logger.Debug("using in-memory storage")
		return services.EditorStores{
			Buildings:  memory.NewBuildingStore(),
			Tags:       memory.NewTagStore(),
			Connectors: memory.NewConnectorStore(),
			Paths:      memory.NewPathStore(),
			State:      memory.NewEditorStateStore(),
		}, nil, nil
	}

	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return services.EditorStores{}, nil, fmt.Errorf("opening storage: %w", err)
	}
	logger.Debug("using sqlite storage at %s", store.Path())
	return services.EditorStores{
		Buildings:  store.BuildingStore(),
		Tags:       store.TagStore(),
		Connectors: store.ConnectorStore(),
		Paths:      store.PathStore(),
		State:      store.EditorStateStore(),
	}, store.Close, nil
}

// commandPrompter answers connector questions for plain commands. Without
// a terminal every floor switch is declined.
func commandPrompter(style domain.PromptStyle) driven.Prompter {
	if style == domain.PromptLine || prompt.IsInteractive(os.Stdin) {
		return prompt.NewLinePrompter(os.Stdin, os.Stderr)
	}
	return prompt.NewScriptedPrompter(false, "")
}
