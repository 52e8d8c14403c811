package postgres

import "embed"

// Migrations holds the goose SQL migrations for the schema the stores
// in this package read and write.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory inside Migrations that goose reads.
const MigrationsDir = "migrations"
