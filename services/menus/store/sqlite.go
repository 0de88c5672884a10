// Package store provides the persistence backends for per-date menu
// documents: a sqlite/libsql table for single-node deployments and an
// S3 bucket for deployments where the front end reads objects
// directly. Both satisfy the menus.Store contract.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"uscmenu-backend/lib/menu"
	"uscmenu-backend/lib/timezone"
	"uscmenu-backend/services/menus/db"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("uscmenu.services.menus.store")

type Sqlite struct {
	db *sql.DB
}

func NewSqlite(database *sql.DB) (Sqlite, error) {
	_, err := database.Exec(db.Schema)
	if err != nil {
		return Sqlite{}, fmt.Errorf("applying menus schema: %w", err)
	}
	return Sqlite{db: database}, nil
}

func (s Sqlite) Put(ctx context.Context, date string, doc menu.DailyMenu) error {
	ctx, span := tracer.Start(ctx, "sqlite.Put")
	defer span.End()

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding menu document: %w", err)
	}
	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO menus (date, document, updatedat) VALUES (?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			document = excluded.document,
			updatedat = excluded.updatedat`,
		date, string(data), timezone.Now().Unix(),
	)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("writing menu document for %s: %w", date, err)
	}
	return nil
}

func (s Sqlite) Get(ctx context.Context, date string) (menu.DailyMenu, bool, error) {
	ctx, span := tracer.Start(ctx, "sqlite.Get")
	defer span.End()

	var data string
	err := s.db.
		QueryRowContext(ctx, `SELECT document FROM menus WHERE date = ?`, date).
		Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return menu.DailyMenu{}, false, nil
	}
	if err != nil {
		span.RecordError(err)
		return menu.DailyMenu{}, false, fmt.Errorf("reading menu document for %s: %w", date, err)
	}

	var doc menu.DailyMenu
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return menu.DailyMenu{}, false, fmt.Errorf("decoding menu document for %s: %w", date, err)
	}
	return doc, true, nil
}

func (s Sqlite) List(ctx context.Context) ([]string, error) {
	ctx, span := tracer.Start(ctx, "sqlite.List")
	defer span.End()

	rows, err := s.db.QueryContext(ctx, `SELECT date FROM menus ORDER BY date`)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("listing menu documents: %w", err)
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var date string
		if err := rows.Scan(&date); err != nil {
			return nil, err
		}
		dates = append(dates, date)
	}
	return dates, rows.Err()
}

func (s Sqlite) Delete(ctx context.Context, date string) error {
	ctx, span := tracer.Start(ctx, "sqlite.Delete")
	defer span.End()

	_, err := s.db.ExecContext(ctx, `DELETE FROM menus WHERE date = ?`, date)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("deleting menu document for %s: %w", date, err)
	}
	return nil
}
