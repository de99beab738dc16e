package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"
)

const notesTable = "secret_notes"

// sqlite uses "?" placeholders
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

func buildInsertNoteQuery(title, category string, envelope []byte, createdAt time.Time) (string, []any, error) {
	return psql.Insert(notesTable).
		Columns("title", "content", "category", "created_at").
		Values(title, envelope, category, createdAt).
		ToSql()
}

// buildListNotesQuery never selects the content column.
func buildListNotesQuery() (string, []any, error) {
	return psql.Select("id", "title", "category", "created_at").
		From(notesTable).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
}

func buildGetEnvelopeQuery(id int64) (string, []any, error) {
	return psql.Select("content").
		From(notesTable).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func buildDeleteNoteQuery(id int64) (string, []any, error) {
	return psql.Delete(notesTable).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func buildUpdateEnvelopeQuery(id int64, envelope []byte) (string, []any, error) {
	return psql.Update(notesTable).
		Set("content", envelope).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func buildPurgeQuery() (string, []any, error) {
	return psql.Delete(notesTable).ToSql()
}
