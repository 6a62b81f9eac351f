package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"aeroedu-service/internal/domain"
)

// ContentLoader loads learning module JSONB from Postgres.
type ContentLoader struct {
	pool *pgxpool.Pool
}

func NewContentLoader(pool *pgxpool.Pool) *ContentLoader {
	return &ContentLoader{pool: pool}
}

func (l *ContentLoader) LoadModule(ctx context.Context, moduleID int) (domain.LearningModule, error) {
	var raw []byte
	err := l.pool.QueryRow(ctx, `SELECT data FROM learning_modules WHERE id=$1`, moduleID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.LearningModule{}, domain.ErrModuleNotFound
	}
	if err != nil {
		return domain.LearningModule{}, fmt.Errorf("load module: %w", err)
	}
	var module domain.LearningModule
	if err := json.Unmarshal(raw, &module); err != nil {
		return domain.LearningModule{}, fmt.Errorf("unmarshal module: %w", err)
	}
	return module, nil
}

func (l *ContentLoader) LoadModules(ctx context.Context) ([]domain.LearningModule, error) {
	rows, err := l.pool.Query(ctx, `SELECT data FROM learning_modules ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("load modules: %w", err)
	}
	defer rows.Close()

	var modules []domain.LearningModule
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan module: %w", err)
		}
		var module domain.LearningModule
		if err := json.Unmarshal(raw, &module); err != nil {
			return nil, fmt.Errorf("unmarshal module: %w", err)
		}
		modules = append(modules, module)
	}
	return modules, rows.Err()
}
