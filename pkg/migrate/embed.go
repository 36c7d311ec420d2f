package migrate

import "embed"

// Migrations holds the SQL files shipped with the binary.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// EmbeddedDir is the directory inside Migrations that goose reads from.
const EmbeddedDir = "migrations"
