// Package sqlerr translates database driver errors into API errors.
//
// Postgres reports failures as SQLSTATE codes on pgconn.PgError. This
// package maps the ones a client can act on (unique, foreign key,
// not-null and check violations, missing rows) into errs.HTTPError
// values with stable machine codes and human-readable messages, and
// collapses everything else into a generic 500.
package sqlerr
