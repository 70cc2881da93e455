package storage

import (
	"fmt"
	"regexp"
	"strings"

	"nhlpxp/pkg/errors"
)

// legacyUniqueClause is the constraint the per-game tables of the old
// ingestion path were missing; its presence marks a table as migrated.
const legacyUniqueClause = "UNIQUE(period, time, event, description)"

var identifierPattern = regexp.MustCompile(`^\w+$`)

// quoteIdentifier returns a safely double-quoted SQLite identifier.
// Names outside the word-character allow-list are rejected before they
// ever reach a SQL string.
func quoteIdentifier(name string) (string, error) {
	if !identifierPattern.MatchString(name) {
		return "", fmt.Errorf("invalid identifier: %q", name)
	}
	return `"` + name + `"`, nil
}

// DeduplicateLegacyTables repairs per-game tables written by the old
// ingestion path, which lacked a uniqueness constraint and accumulated
// duplicate rows. Each affected table is rebuilt with the constraint,
// exact duplicates collapsed via INSERT OR IGNORE, and renamed into
// place. Tables already bearing the constraint are left untouched, so
// the pass is safe to re-run before every ingestion. Returns the number
// of tables migrated.
func (r *Repository) DeduplicateLegacyTables() (int, error) {
	// The underscore is escaped: a bare 'game_%' pattern would also
	// match the games table itself.
	rows, err := r.db.Query(`SELECT name, sql FROM sqlite_master WHERE type='table' AND name LIKE 'game\_%' ESCAPE '\'`)
	if err != nil {
		return 0, errors.NewStorage("failed to list legacy tables", err)
	}

	type legacyTable struct {
		name      string
		createSQL string
	}
	var tables []legacyTable
	for rows.Next() {
		var t legacyTable
		if err := rows.Scan(&t.name, &t.createSQL); err != nil {
			rows.Close()
			return 0, errors.NewStorage("failed to scan legacy table row", err)
		}
		tables = append(tables, t)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return 0, errors.NewStorage("failed to iterate legacy tables", err)
	}
	rows.Close()

	migrated := 0
	for _, t := range tables {
		if strings.Contains(t.createSQL, legacyUniqueClause) {
			continue
		}

		if err := r.migrateLegacyTable(t.name); err != nil {
			return migrated, err
		}
		migrated++
	}

	return migrated, nil
}

func (r *Repository) migrateLegacyTable(name string) error {
	quoted, err := quoteIdentifier(name)
	if err != nil {
		return errors.NewStorage("refusing to migrate table", err)
	}
	quotedTemp, err := quoteIdentifier(name + "_dedup_tmp")
	if err != nil {
		return errors.NewStorage("refusing to migrate table", err)
	}

	r.logger.InfoWithFields("migrating legacy table", map[string]interface{}{
		"table": name,
	})

	tx, err := r.db.Begin()
	if err != nil {
		return errors.NewStorage("failed to begin migration transaction", err)
	}
	defer tx.Rollback()

	createSQL := fmt.Sprintf(`CREATE TABLE %s (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		period INTEGER,
		time TEXT,
		event TEXT,
		description TEXT,
		%s
	)`, quotedTemp, legacyUniqueClause)
	if _, err := tx.Exec(createSQL); err != nil {
		return errors.NewStorage(fmt.Sprintf("failed to create replacement for %s", name), err)
	}

	copySQL := fmt.Sprintf(
		"INSERT OR IGNORE INTO %s (period, time, event, description) SELECT period, time, event, description FROM %s",
		quotedTemp, quoted)
	if _, err := tx.Exec(copySQL); err != nil {
		return errors.NewStorage(fmt.Sprintf("failed to copy rows from %s", name), err)
	}

	if _, err := tx.Exec(fmt.Sprintf("DROP TABLE %s", quoted)); err != nil {
		return errors.NewStorage(fmt.Sprintf("failed to drop %s", name), err)
	}
	if _, err := tx.Exec(fmt.Sprintf("ALTER TABLE %s RENAME TO %s", quotedTemp, quoted)); err != nil {
		return errors.NewStorage(fmt.Sprintf("failed to rename replacement for %s", name), err)
	}

	if err := tx.Commit(); err != nil {
		return errors.NewStorage(fmt.Sprintf("failed to commit migration of %s", name), err)
	}
	return nil
}
