// Package db holds the SQL migrations shared by every supported store.
package db

import "embed"

// Migrations contains the goose migrations under migrations/.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory inside Migrations that goose reads from.
const MigrationsDir = "migrations"
