package report

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"popularvideogames/backend/internal/database"
)

// Null is how an SQL NULL appears in a Table cell.
const Null = "NULL"

// Table is the result of a report, every cell rendered as text.
type Table struct {
	Title   string     `json:"title" yaml:"title"`
	Columns []string   `json:"columns" yaml:"columns"`
	Rows    [][]string `json:"rows" yaml:"rows"`
}

type runFunc func(ctx context.Context, db *gorm.DB) ([][]string, error)

// Run executes the report id against db.
func Run(ctx context.Context, db *gorm.DB, id ID) (Table, error) {
	d, err := Get(id)
	if err != nil {
		return Table{}, err
	}
	return d.Run(ctx, db)
}

// Run executes the report. Reports only read.
func (d Definition) Run(ctx context.Context, db *gorm.DB) (Table, error) {
	rows, err := d.run(ctx, db.WithContext(ctx))
	if err != nil {
		return Table{}, fmt.Errorf("report %s: %w", d, err)
	}
	if rows == nil {
		rows = [][]string{}
	}
	return Table{Title: d.Title, Columns: d.Columns, Rows: rows}, nil
}

func sqlQuery(query string, args ...interface{}) runFunc {
	return func(ctx context.Context, db *gorm.DB) ([][]string, error) {
		return queryRows(db, query, args...)
	}
}

// topGamesBy ranks games by a numeric column, ignoring games without a value.
func topGamesBy(column string) runFunc {
	return sqlQuery(fmt.Sprintf(`
		SELECT game_title, %[1]s
		FROM videogames
		WHERE %[1]s IS NOT NULL
		ORDER BY %[1]s DESC, game_id
		LIMIT 10`, column))
}

func queryRows(db *gorm.DB, query string, args ...interface{}) ([][]string, error) {
	rows, err := db.Raw(query, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	var out [][]string
	for rows.Next() {
		values := make([]interface{}, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make([]string, len(values))
		for i, v := range values {
			row[i] = cell(v)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func cell(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return Null
	case []byte:
		return string(x)
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case time.Time:
		return x.Format("2006-01-02")
	default:
		return fmt.Sprint(x)
	}
}

func gamesPerDecade(ctx context.Context, db *gorm.DB) ([][]string, error) {
	var year string
	switch db.Dialector.Name() {
	case database.DriverSQLite:
		// The driver may store dates as ISO text or as Go's time.String form;
		// both start with the four-digit year.
		year = "CAST(substr(release_date, 1, 4) AS INTEGER)"
	case database.DriverMySQL:
		year = "YEAR(release_date)"
	default:
		year = "CAST(EXTRACT(YEAR FROM release_date) AS INTEGER)"
	}

	var years []struct {
		ReleaseYear *int64
		Games       int64
	}
	err := db.Raw(fmt.Sprintf(`
		SELECT %s AS release_year, COUNT(*) AS games
		FROM videogames
		GROUP BY release_year`, year)).Scan(&years).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[int64]int64)
	var unknown int64
	for _, y := range years {
		if y.ReleaseYear == nil {
			unknown += y.Games
			continue
		}
		counts[*y.ReleaseYear/10*10] += y.Games
	}
	decades := make([]int64, 0, len(counts))
	for d := range counts {
		decades = append(decades, d)
	}
	sort.Slice(decades, func(i, j int) bool { return decades[i] < decades[j] })

	out := make([][]string, 0, len(decades)+1)
	for _, d := range decades {
		out = append(out, []string{fmt.Sprintf("%ds", d), strconv.FormatInt(counts[d], 10)})
	}
	if unknown > 0 {
		out = append(out, []string{"unknown", strconv.FormatInt(unknown, 10)})
	}
	return out, nil
}

func tableName(db *gorm.DB, model interface{}) (string, error) {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(model); err != nil {
		return "", err
	}
	return stmt.Schema.Table, nil
}

func rowCounts(ctx context.Context, db *gorm.DB) ([][]string, error) {
	var out [][]string
	for _, m := range database.Models() {
		name, err := tableName(db, m)
		if err != nil {
			return nil, err
		}
		var n int64
		if err := db.Model(m).Count(&n).Error; err != nil {
			return nil, fmt.Errorf("count %s: %w", name, err)
		}
		out = append(out, []string{name, strconv.FormatInt(n, 10)})
	}
	return out, nil
}

func listTables(ctx context.Context, db *gorm.DB) ([][]string, error) {
	tables, err := db.WithContext(ctx).Migrator().GetTables()
	if err != nil {
		return nil, err
	}
	sort.Strings(tables)
	var out [][]string
	for _, t := range tables {
		if strings.HasPrefix(t, "sqlite_") {
			continue
		}
		out = append(out, []string{t})
	}
	return out, nil
}

func tableColumns(ctx context.Context, db *gorm.DB) ([][]string, error) {
	var out [][]string
	for _, m := range database.Models() {
		name, err := tableName(db, m)
		if err != nil {
			return nil, err
		}
		types, err := db.WithContext(ctx).Migrator().ColumnTypes(m)
		if err != nil {
			return nil, fmt.Errorf("columns of %s: %w", name, err)
		}
		cols := make([]string, len(types))
		for i, ct := range types {
			cols[i] = ct.Name()
		}
		out = append(out, []string{name, strings.Join(cols, ",")})
	}
	return out, nil
}

func indexes(ctx context.Context, db *gorm.DB) ([][]string, error) {
	var out [][]string
	for _, m := range database.Models() {
		name, err := tableName(db, m)
		if err != nil {
			return nil, err
		}
		idxs, err := db.WithContext(ctx).Migrator().GetIndexes(m)
		if err != nil {
			return nil, fmt.Errorf("indexes of %s: %w", name, err)
		}
		sort.Slice(idxs, func(i, j int) bool { return idxs[i].Name() < idxs[j].Name() })
		for _, idx := range idxs {
			for _, col := range idx.Columns() {
				out = append(out, []string{name, idx.Name(), col})
			}
		}
	}
	return out, nil
}

func databaseSize(ctx context.Context, db *gorm.DB) ([][]string, error) {
	var query string
	switch db.Dialector.Name() {
	case database.DriverPostgres:
		query = `SELECT ROUND(pg_database_size(current_database()) / 1048576.0, 2)`
	case database.DriverMySQL:
		query = `
			SELECT ROUND(SUM(data_length + index_length) / 1048576, 2)
			FROM information_schema.tables
			WHERE table_schema = DATABASE()`
	case database.DriverSQLite:
		query = `
			SELECT ROUND(page_count * page_size / 1048576.0, 2)
			FROM pragma_page_count(), pragma_page_size()`
	default:
		return nil, fmt.Errorf("database size is not supported on %s", db.Dialector.Name())
	}
	return queryRows(db, query)
}
