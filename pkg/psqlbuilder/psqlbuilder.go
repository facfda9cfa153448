package psqlbuilder

import "github.com/Masterminds/squirrel"

// Обёртки над squirrel с placeholder-форматом Postgres ($1, $2, ...),
// чтобы не повторять PlaceholderFormat в каждом репозитории.

// Select starts a SELECT builder with dollar placeholders.
func Select(columns ...string) squirrel.SelectBuilder {
	return squirrel.Select(columns...).PlaceholderFormat(squirrel.Dollar)
}

// Insert starts an INSERT builder with dollar placeholders.
func Insert(into string) squirrel.InsertBuilder {
	return squirrel.Insert(into).PlaceholderFormat(squirrel.Dollar)
}

// Update starts an UPDATE builder with dollar placeholders.
func Update(table string) squirrel.UpdateBuilder {
	return squirrel.Update(table).PlaceholderFormat(squirrel.Dollar)
}

// Delete starts a DELETE builder with dollar placeholders.
func Delete(from string) squirrel.DeleteBuilder {
	return squirrel.Delete(from).PlaceholderFormat(squirrel.Dollar)
}
