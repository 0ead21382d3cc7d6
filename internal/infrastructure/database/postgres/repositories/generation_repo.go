// Package repositories holds the PostgreSQL implementations of the
// application's persistence ports.
package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/turtacn/molgen/internal/application/molgen"
	"github.com/turtacn/molgen/internal/domain/molecule"
	"github.com/turtacn/molgen/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/molgen/pkg/errors"
)

// Querier is satisfied by *pgxpool.Pool and pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

const (
	insertGenerationSQL = `
		INSERT INTO generations (
			id, base_smiles, functional_groups, smiles,
			mol_wt, log_p, hbd, hba, image_key, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		ON CONFLICT (id) DO NOTHING`

	listGenerationsSQL = `
		SELECT id, base_smiles, functional_groups, smiles,
		       mol_wt, log_p, hbd, hba, image_key, created_at
		FROM generations
		ORDER BY created_at DESC, id
		LIMIT $1`
)

// GenerationRepository persists generation history rows.
type GenerationRepository struct {
	db     Querier
	logger logging.Logger
}

func NewGenerationRepository(db Querier, log logging.Logger) *GenerationRepository {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &GenerationRepository{db: db, logger: log.Named("generation_repo")}
}

var _ molgen.HistoryRepository = (*GenerationRepository)(nil)

// Save inserts rec. Re-saving an existing id is a no-op.
func (r *GenerationRepository) Save(ctx context.Context, rec *molgen.GenerationRecord) error {
	if rec == nil || rec.ID == "" {
		return errors.InvalidParam("generation record requires an id")
	}
	d := rec.Descriptors
	tag, err := r.db.Exec(ctx, insertGenerationSQL,
		rec.ID, rec.BaseSMILES, rec.FunctionalGroups, rec.SMILES,
		d.MolWt, d.LogP, d.HBD, d.HBA, rec.ImageKey, rec.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to insert generation", logging.String("id", rec.ID), logging.Err(err))
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to insert generation")
	}
	r.logger.Debug("Saved generation", logging.String("id", rec.ID), logging.Int64("rows", tag.RowsAffected()))
	return nil
}

// ListRecent returns up to limit rows, newest first.
func (r *GenerationRepository) ListRecent(ctx context.Context, limit int) ([]*molgen.GenerationRecord, error) {
	if limit <= 0 {
		return []*molgen.GenerationRecord{}, nil
	}
	rows, err := r.db.Query(ctx, listGenerationsSQL, limit)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to list generations")
	}
	records, err := pgx.CollectRows(rows, scanGeneration)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan generations")
	}
	return records, nil
}

func scanGeneration(row pgx.CollectableRow) (*molgen.GenerationRecord, error) {
	var (
		rec molgen.GenerationRecord
		d   molecule.Descriptors
	)
	err := row.Scan(
		&rec.ID, &rec.BaseSMILES, &rec.FunctionalGroups, &rec.SMILES,
		&d.MolWt, &d.LogP, &d.HBD, &d.HBA, &rec.ImageKey, &rec.CreatedAt,
	)
	rec.Descriptors = d
	return &rec, err
}

//Personal.AI order the ending
