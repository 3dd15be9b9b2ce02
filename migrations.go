package bookingservice

import "embed"

// Migrations embedded SQL миграции схемы, применяются goose на старте
//
//go:embed migrations/*.sql
var Migrations embed.FS
