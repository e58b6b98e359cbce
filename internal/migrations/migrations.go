// Package migrations embeds the versioned schema for each supported driver.
package migrations

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/JaimeStill/image-lab/pkg/database"
)

//go:embed postgres/*.sql sqlite/*.sql
var files embed.FS

// For returns the migration set for driver, rooted at its directory.
func For(driver database.Driver) (fs.FS, error) {
	switch driver {
	case database.DriverPostgres, database.DriverSQLite:
		return fs.Sub(files, string(driver))
	default:
		return nil, fmt.Errorf("no migrations for driver %q", driver)
	}
}
