package migrations

import "embed"

//go:embed postgres/*.sql sqlite/*.sql
var MigrationFiles embed.FS
