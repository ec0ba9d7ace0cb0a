package index

import (
	"database/sql"
	"fmt"

	"github.com/curiocat/curio/internal/model"
	"github.com/curiocat/curio/internal/sqlutil"
)

// CollectionInfo describes one indexed collection.
type CollectionInfo struct {
	ID    string
	Type  model.CollectionType
	Title string
}

// EntryHit is one entry matched by a search.
type EntryHit struct {
	CollectionID string
	EntryID      int64
	Title        string
	FieldName    string
	Value        string
}

// Collections lists the indexed collections, newest identity last.
func (d *Database) Collections() ([]CollectionInfo, error) {
	rows, err := d.db.Query("SELECT id, type, title FROM collections ORDER BY title, id")
	if err != nil {
		return nil, fmt.Errorf("query collections: %w", err)
	}
	return sqlutil.ScanRows(rows, func(rows *sql.Rows) (CollectionInfo, error) {
		var info CollectionInfo
		var ctype int
		err := rows.Scan(&info.ID, &ctype, &info.Title)
		info.Type = model.CollectionType(ctype)
		return info, err
	})
}

// Collection returns one indexed collection.
func (d *Database) Collection(id string) (*CollectionInfo, error) {
	var info CollectionInfo
	var ctype int
	err := d.db.QueryRow("SELECT id, type, title FROM collections WHERE id = ?", id).
		Scan(&info.ID, &ctype, &info.Title)
	if err == sql.ErrNoRows {
		return nil, ErrCollectionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query collection: %w", err)
	}
	info.Type = model.CollectionType(ctype)
	return &info, nil
}

// Search finds entries with a field value containing the query,
// case-insensitive. When fieldNames is non-empty the search is limited
// to those fields.
func (d *Database) Search(query string, fieldNames ...string) ([]EntryHit, error) {
	sqlQuery := `
		SELECT e.collection_id, e.entry_id, e.title, v.field_name, v.value
		FROM field_values v
		JOIN entries e ON e.rowid = v.entry_rowid
		WHERE v.value LIKE ? ESCAPE '\'`
	args := []any{"%" + escapeLike(query) + "%"}

	if len(fieldNames) > 0 {
		ph, inArgs := sqlutil.InClauseArgs(fieldNames)
		sqlQuery += " AND v.field_name IN (" + ph + ")"
		args = append(args, inArgs...)
	}
	sqlQuery += " ORDER BY e.collection_id, e.entry_id, v.field_name, v.position"

	rows, err := d.db.Query(sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return sqlutil.ScanRows(rows, func(rows *sql.Rows) (EntryHit, error) {
		var hit EntryHit
		err := rows.Scan(&hit.CollectionID, &hit.EntryID, &hit.Title, &hit.FieldName, &hit.Value)
		return hit, err
	})
}

func escapeLike(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '%', '_', '\\':
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}

// GroupCount is one value of a grouped field with its entry count.
type GroupCount struct {
	Value string
	Count int
}

// GroupBy counts entries per distinct value of a field within one
// collection, most frequent first.
func (d *Database) GroupBy(collectionID, fieldName string) ([]GroupCount, error) {
	rows, err := d.db.Query(`
		SELECT v.value, COUNT(DISTINCT e.entry_id)
		FROM field_values v
		JOIN entries e ON e.rowid = v.entry_rowid
		WHERE e.collection_id = ? AND v.field_name = ?
		GROUP BY v.value
		ORDER BY COUNT(DISTINCT e.entry_id) DESC, v.value`, collectionID, fieldName)
	if err != nil {
		return nil, fmt.Errorf("group by %s: %w", fieldName, err)
	}
	return sqlutil.ScanRows(rows, func(rows *sql.Rows) (GroupCount, error) {
		var g GroupCount
		err := rows.Scan(&g.Value, &g.Count)
		return g, err
	})
}

// DuplicateValues finds entries sharing a field value with at least one
// other entry of the same collection. Used for citation key conflicts.
func (d *Database) DuplicateValues(collectionID, fieldName string) ([]EntryHit, error) {
	rows, err := d.db.Query(`
		SELECT e.collection_id, e.entry_id, e.title, v.field_name, v.value
		FROM field_values v
		JOIN entries e ON e.rowid = v.entry_rowid
		WHERE e.collection_id = ? AND v.field_name = ? AND v.value IN (
			SELECT v2.value
			FROM field_values v2
			JOIN entries e2 ON e2.rowid = v2.entry_rowid
			WHERE e2.collection_id = ? AND v2.field_name = ?
			GROUP BY v2.value
			HAVING COUNT(*) > 1
		)
		ORDER BY v.value, e.entry_id`,
		collectionID, fieldName, collectionID, fieldName)
	if err != nil {
		return nil, fmt.Errorf("duplicate values for %s: %w", fieldName, err)
	}
	return sqlutil.ScanRows(rows, func(rows *sql.Rows) (EntryHit, error) {
		var hit EntryHit
		err := rows.Scan(&hit.CollectionID, &hit.EntryID, &hit.Title, &hit.FieldName, &hit.Value)
		return hit, err
	})
}

// EntryCount returns the number of indexed entries for a collection.
func (d *Database) EntryCount(collectionID string) (int, error) {
	var n int
	err := d.db.QueryRow(
		"SELECT COUNT(*) FROM entries WHERE collection_id = ?", collectionID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}
	return n, nil
}
