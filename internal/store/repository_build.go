// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"

	"github.com/MKhiriev/frontkit/internal/logger"
	"github.com/MKhiriev/frontkit/models"
)

// DefaultHistoryLimit is the number of builds [BuildRepository.List] returns
// for a non-positive limit.
const DefaultHistoryLimit = 20

const buildsTable = "builds"

var buildColumns = []string{
	"id", "mode", "out_dir", "started_at", "duration_ms",
	"files", "total_bytes", "gzip_bytes", "warnings",
}

// buildRepository is the SQL implementation of [BuildRepository] for both
// SQLite and PostgreSQL. Queries are rendered with squirrel using the
// connection's placeholder format.
type buildRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewBuildRepository constructs a [BuildRepository] over db.
func NewBuildRepository(db *DB, logger *logger.Logger) BuildRepository {
	logger.Debug().Str("dialect", string(db.dialect)).Msg("creating build repository")
	return &buildRepository{
		db:     db,
		logger: logger,
	}
}

// Save inserts record.
//
// A duplicate ID is reported as [ErrBuildAlreadyExists] by both dialects.
func (r *buildRepository) Save(ctx context.Context, record models.BuildRecord) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.StatementBuilder().
		Insert(buildsTable).
		Columns(buildColumns...).
		Values(
			record.ID.String(),
			record.Mode,
			record.OutDir,
			record.StartedAt.UTC(),
			record.Duration.Milliseconds(),
			record.Files,
			record.TotalBytes,
			record.GzipBytes,
			record.Warnings,
		).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*buildRepository.Save").Msg("error building insert query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "*buildRepository.Save").
			Stringer("classification", r.db.Classify(err)).
			Msg("error inserting build record")

		if postgresError(err) == pgerrcode.UniqueViolation || isSQLiteConstraint(err) {
			return ErrBuildAlreadyExists
		}
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err == nil && affected == 0 {
		return ErrBuildNotSaved
	}
	return nil
}

// List returns the newest builds first.
func (r *buildRepository) List(ctx context.Context, limit int) ([]models.BuildRecord, error) {
	log := logger.FromContext(ctx)

	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	query, args, err := r.db.StatementBuilder().
		Select(buildColumns...).
		From(buildsTable).
		OrderBy("started_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*buildRepository.List").Msg("error building select query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "*buildRepository.List").
			Stringer("classification", r.db.Classify(err)).
			Msg("error querying build history")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]models.BuildRecord, 0, limit)
	for rows.Next() {
		var (
			record     models.BuildRecord
			durationMS int64
		)
		if err = rows.Scan(
			&record.ID,
			&record.Mode,
			&record.OutDir,
			&record.StartedAt,
			&durationMS,
			&record.Files,
			&record.TotalBytes,
			&record.GzipBytes,
			&record.Warnings,
		); err != nil {
			log.Err(err).Str("func", "*buildRepository.List").Msg("error scanning build row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		record.Duration = time.Duration(durationMS) * time.Millisecond
		record.StartedAt = record.StartedAt.UTC()
		records = append(records, record)
	}
	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "*buildRepository.List").Msg("error iterating build rows")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return records, nil
}
