package template

import (
	"embed"
	"fmt"
)

//go:embed apache2/*.tmpl
var apache2Templates embed.FS

//go:embed mysql/*.tmpl
var mysqlTemplates embed.FS

//go:embed pgsql/*.tmpl
var pgsqlTemplates embed.FS

// getTemplateFS returns the embed.FS for the given driver
func getTemplateFS(driverName string) (embed.FS, error) {
	switch driverName {
	case "apache2":
		return apache2Templates, nil
	case "mysql":
		return mysqlTemplates, nil
	case "pgsql":
		return pgsqlTemplates, nil
	default:
		return embed.FS{}, fmt.Errorf("unknown driver: %s", driverName)
	}
}
