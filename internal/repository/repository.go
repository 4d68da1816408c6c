// Package repository handles all database access.
//
// Each repository owns the SQL for one domain area and returns domain
// structs, keeping query text out of the service layer. Not-found
// errors are wrapped with a "table:<name>:" prefix so the sqlerr
// package can produce entity-specific 404 messages.
package repository

import "fmt"

// notFound wraps a pgx.ErrNoRows so sqlerr.HandleError can name the
// missing entity in the 404 response.
func notFound(table string, err error) error {
	return fmt.Errorf("table:%s: %w", table, err)
}
