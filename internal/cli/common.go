package cli

import (
	"fmt"

	"github.com/Zigazou/DSM/internal/config"
	"github.com/Zigazou/DSM/internal/driver"
	"github.com/Zigazou/DSM/internal/executor"
	"github.com/Zigazou/DSM/internal/install"
	"github.com/Zigazou/DSM/internal/site"
)

// newManager loads the configuration and wires the drivers it selects.
// Flag overrides, when non-empty, replace the configured driver names.
func newManager(wwwName, dbName string) (*install.Manager, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	if wwwName == "" {
		wwwName = cfg.WWWDriver
	}
	if dbName == "" {
		dbName = cfg.DBDriver
	}

	env, err := driver.NewEnv(executor.NewSystemExecutor(), cfg)
	if err != nil {
		return nil, nil, err
	}

	www, err := driver.NewWWW(wwwName, env)
	if err != nil {
		return nil, nil, err
	}
	db, err := driver.NewDB(dbName, env)
	if err != nil {
		return nil, nil, err
	}

	return install.New(cfg, www, db), cfg, nil
}

// parseServices interprets an optional trailing service argument.
// Absent means both services.
func parseServices(args []string) ([]site.Service, error) {
	if len(args) < 2 {
		return []site.Service{site.WWW, site.DB}, nil
	}
	svc, err := site.ParseService(args[1])
	if err != nil {
		return nil, err
	}
	return []site.Service{svc}, nil
}
