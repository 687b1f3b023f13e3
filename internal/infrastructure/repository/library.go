package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	oai "github.com/slsfi/arkiva-oai"
)

// LibraryRepository harvests a single catalog table described by
// configuration. Table and column names come from the operator's
// config file, never from the request; request values are bound.
type LibraryRepository struct {
	db         *gorm.DB
	table      string
	idColumn   string
	dateColumn string
}

func NewLibraryRepository(db *gorm.DB, table string, idColumn string, dateColumn string) *LibraryRepository {
	return &LibraryRepository{db: db, table: table, idColumn: idColumn, dateColumn: dateColumn}
}

func (r *LibraryRepository) scope(params oai.RequestParams) ([]string, []any) {
	var conds []string
	var args []any

	if params.From != "" {
		conds = append(conds, r.dateColumn+" >= ?")
		args = append(args, params.From)
	}
	if params.Until != "" {
		conds = append(conds, r.dateColumn+" <= ?")
		args = append(args, params.Until)
	}

	return conds, args
}

func (r *LibraryRepository) harvest(ctx context.Context, selectList string, params oai.RequestParams) ([]oai.Node, error) {
	conds, args := r.scope(params)
	if params.Identifier != "" {
		conds = append(conds, r.idColumn+" = ?")
		args = append(args, params.Identifier)
	}

	query := fmt.Sprintf("SELECT %s FROM %s", selectList, r.table)
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	var rows []map[string]any
	err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to query catalog")
	}

	nodes := make([]oai.Node, 0, len(rows))
	for _, row := range rows {
		nodes = append(nodes, oai.Node{Record: oai.NewRecord(row)})
	}

	return nodes, nil
}

func (r *LibraryRepository) EarliestDatestamp(ctx context.Context) (time.Time, error) {
	ctx, span := tracer.Start(ctx, "Oai.Repository.CatalogEarliestDatestamp")
	defer span.End()

	var row struct {
		Date sql.NullTime `gorm:"column:date"`
	}
	query := fmt.Sprintf("SELECT MIN(%s) AS date FROM %s", r.dateColumn, r.table)
	err := r.db.WithContext(ctx).Raw(query).Scan(&row).Error
	if err != nil {
		return time.Time{}, errors.Wrap(err, "failed to query catalog")
	}
	if !row.Date.Valid {
		return time.Time{}, nil
	}

	return row.Date.Time, nil
}

// HarvestHeaders fetches only the identifier and datestamp columns.
func (r *LibraryRepository) HarvestHeaders(ctx context.Context, params oai.RequestParams) ([]oai.Node, error) {
	ctx, span := tracer.Start(ctx, "Oai.Repository.CatalogHarvestHeaders")
	defer span.End()

	return r.harvest(ctx, r.idColumn+", "+r.dateColumn, params)
}

func (r *LibraryRepository) HarvestRecords(ctx context.Context, params oai.RequestParams) ([]oai.Node, error) {
	ctx, span := tracer.Start(ctx, "Oai.Repository.CatalogHarvestRecords")
	defer span.End()

	return r.harvest(ctx, "*", params)
}
