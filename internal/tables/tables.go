// Package tables exposes a raw dump of the application tables for super-admin
// inspection. Queries are composed from an allow list only, never from caller
// input directly.
package tables

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/adminboard/internal"
	"github.com/jmoiron/sqlx"
)

// allowedTables maps a table name to the columns callers may project. The
// hashed credential column is absent on purpose: it never leaves the server.
var allowedTables = map[string][]string{
	"users": {
		"id", "avatar", "first_name", "last_name", "email", "tester",
		"super_admin", "created_at", "updated_at", "created_by_id", "updated_by_id",
	},
	"sessions": {
		"id", "user_id", "user_name", "session_data", "request_info", "active",
		"expires_at", "created_at", "updated_at", "last_updated_at",
		"created_by_id", "updated_by_id",
	},
	"features": {
		"id", "name", "status", "created_at", "updated_at",
		"created_by_id", "updated_by_id",
	},
}

type Service struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewService(db *sqlx.DB, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{db: db, logger: logger}
}

// Names returns the allow-listed table names in stable order.
func (s *Service) Names() []string {
	return []string{"features", "sessions", "users"}
}

// Exists reports whether the table can be dumped.
func (s *Service) Exists(table string) bool {
	_, ok := allowedTables[table]
	return ok
}

// Dump returns every row of an allow-listed table, optionally projected to a
// subset of its columns. Requested columns outside the allow list are
// ignored; an empty surviving projection falls back to the full set.
func (s *Service) Dump(ctx context.Context, table string, columns []string) ([]map[string]any, error) {
	allowed, ok := allowedTables[table]
	if !ok {
		return nil, fmt.Errorf("table %s does not exist", table)
	}

	projection := filterColumns(allowed, columns)
	if len(projection) == 0 {
		projection = allowed
	}

	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(projection, ", "), table)

	rows, err := s.db.QueryxContext(ctx, query)
	if err != nil {
		s.logger.Error("table dump failed", "table", table, "error", err)
		return nil, internal.ErrDbConnection.WithCause(err)
	}
	defer rows.Close()

	results := []map[string]any{}
	for rows.Next() {
		row := map[string]any{}
		if err := rows.MapScan(row); err != nil {
			return nil, internal.ErrDbConnection.WithCause(err)
		}
		for k, v := range row {
			if b, ok := v.([]byte); ok {
				row[k] = string(b)
			}
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, internal.ErrDbConnection.WithCause(err)
	}

	return results, nil
}

func filterColumns(allowed, requested []string) []string {
	if len(requested) == 0 {
		return nil
	}
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, c := range allowed {
		allowedSet[c] = struct{}{}
	}

	var projection []string
	for _, c := range requested {
		c = strings.TrimSpace(c)
		if _, ok := allowedSet[c]; ok {
			projection = append(projection, c)
		}
	}
	return projection
}
