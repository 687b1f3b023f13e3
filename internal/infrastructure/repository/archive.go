package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"gorm.io/gorm"

	oai "github.com/slsfi/arkiva-oai"
	"github.com/slsfi/arkiva-oai/internal/mapping"
)

var tracer = otel.Tracer("repository")

// modifiedExpr is the change timestamp of a digital object. An object
// counts as modified when it, its intellectual entity or its collection
// was touched, so harvesters see cascading edits.
const modifiedExpr = "GREATEST(digitalObjects.date_modify, intellectualEntities.date_modify, samlingar.date_modify)"

const objectSelect = "SELECT *, " + modifiedExpr + " AS date_modified" +
	" FROM digitalObjects" +
	" JOIN intellectualEntities ON digitalObjects.c_ienummer = intellectualEntities.nummer" +
	" JOIN samlingar ON intellectualEntities.c_samlingsnummer = samlingar.nummer"

const collectionSelect = "SELECT DISTINCT samlingar.*, MAX(" + modifiedExpr + ") AS date_modified" +
	" FROM samlingar" +
	" LEFT JOIN intellectualEntities ON intellectualEntities.c_samlingsnummer = samlingar.nummer" +
	" LEFT JOIN digitalObjects ON digitalObjects.c_ienummer = intellectualEntities.nummer"

var setPredicates = map[string]string{
	"SLSeuropeana": "digitalObjects.to_europeana = 'europeana'",
	"SLSfinna":     "samlingar.to_ndb = 'finna'",
}

type ArchiveRepository struct {
	db *gorm.DB
}

func NewArchiveRepository(db *gorm.DB) *ArchiveRepository {
	return &ArchiveRepository{db: db}
}

// harvestScope translates the selective-harvest parameters into WHERE
// conditions. Dates are compared against modifiedExpr so a row is in
// range when any level of its hierarchy changed within it.
func harvestScope(params oai.RequestParams) ([]string, []any) {
	var conds []string
	var args []any

	if pred, ok := setPredicates[params.Set]; ok {
		conds = append(conds, pred)
	}
	if params.From != "" {
		conds = append(conds, modifiedExpr+" >= ?")
		args = append(args, params.From)
	}
	if params.Until != "" {
		conds = append(conds, modifiedExpr+" <= ?")
		args = append(args, params.Until)
	}

	return conds, args
}

func (r *ArchiveRepository) scan(ctx context.Context, query string, args ...any) ([]map[string]any, error) {
	var rows []map[string]any
	err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to query archive")
	}
	return rows, nil
}

func (r *ArchiveRepository) EarliestDatestamp(ctx context.Context) (time.Time, error) {
	ctx, span := tracer.Start(ctx, "Oai.Repository.EarliestDatestamp")
	defer span.End()

	query := "SELECT MIN(" + modifiedExpr + ") AS date" +
		" FROM digitalObjects" +
		" JOIN intellectualEntities ON digitalObjects.c_ienummer = intellectualEntities.nummer" +
		" JOIN samlingar ON intellectualEntities.c_samlingsnummer = samlingar.nummer"

	var row struct {
		Date sql.NullTime `gorm:"column:date"`
	}
	err := r.db.WithContext(ctx).Raw(query).Scan(&row).Error
	if err != nil {
		return time.Time{}, errors.Wrap(err, "failed to query archive")
	}
	if !row.Date.Valid {
		return time.Time{}, nil
	}

	return row.Date.Time, nil
}

// HarvestObjects returns one node per digital object, joined with its
// intellectual entity and collection so the flat formats can map
// columns from all three levels.
func (r *ArchiveRepository) HarvestObjects(ctx context.Context, params oai.RequestParams) ([]oai.Node, error) {
	ctx, span := tracer.Start(ctx, "Oai.Repository.HarvestObjects")
	defer span.End()

	conds, args := harvestScope(params)
	if params.Identifier != "" {
		conds = append(conds, "digitalObjects.identifier = ?")
		args = append(args, params.Identifier)
	}

	query := objectSelect
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	rows, err := r.scan(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	nodes := make([]oai.Node, 0, len(rows))
	for _, row := range rows {
		nodes = append(nodes, oai.Node{Record: oai.NewRecord(row)})
	}

	return nodes, nil
}

// HarvestCollections returns one node per collection with the change
// timestamp aggregated over everything beneath it. When expand is set
// the items, pids, objects and derivatives are attached as children,
// except under deleted collections which keep only their header.
func (r *ArchiveRepository) HarvestCollections(ctx context.Context, params oai.RequestParams, expand bool) ([]oai.Node, error) {
	ctx, span := tracer.Start(ctx, "Oai.Repository.HarvestCollections")
	defer span.End()

	conds, args := harvestScope(params)
	if params.Identifier != "" {
		conds = append(conds, "samlingar.c_signum = ?")
		args = append(args, params.Identifier)
	}

	query := collectionSelect
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " GROUP BY samlingar.c_signum"

	rows, err := r.scan(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	nodes := make([]oai.Node, 0, len(rows))
	for _, row := range rows {
		node := oai.Node{Record: oai.NewRecord(row)}
		if expand && !node.Deleted() {
			node.Children, err = r.collectionChildren(ctx, node.Value("nummer"))
			if err != nil {
				return nil, err
			}
		}
		nodes = append(nodes, node)
	}

	return nodes, nil
}

func (r *ArchiveRepository) collectionChildren(ctx context.Context, collection any) (map[string][]oai.Node, error) {
	rows, err := r.scan(ctx, "SELECT * FROM intellectualEntities WHERE c_samlingsnummer = ? ORDER BY nummer", collection)
	if err != nil {
		return nil, err
	}

	items := make([]oai.Node, 0, len(rows))
	for _, row := range rows {
		item := oai.Node{Record: oai.NewRecord(row), Children: map[string][]oai.Node{}}

		pids, err := r.scan(ctx, "SELECT * FROM URN WHERE id_IE = ?", item.Value("nummer"))
		if err != nil {
			return nil, err
		}
		for _, pid := range pids {
			item.Children[mapping.RelPIDs] = append(item.Children[mapping.RelPIDs], oai.Node{Record: oai.NewRecord(pid)})
		}

		objects, err := r.scan(ctx, "SELECT nummer, entity_label, entity_order FROM digitalObjects WHERE c_ienummer = ? ORDER BY entity_order", item.Value("nummer"))
		if err != nil {
			return nil, err
		}
		for _, object := range objects {
			group := oai.Node{Record: oai.NewRecord(object), Children: map[string][]oai.Node{}}

			derivatives, err := r.scan(ctx, "SELECT derivateObjects.roleTitle, derivateObjects.filePath, digitalObjects.entity_order"+
				" FROM derivateObjects JOIN digitalObjects ON derivateObjects.c_do = digitalObjects.nummer"+
				" WHERE derivateObjects.c_do = ? ORDER BY digitalObjects.entity_order", group.Value("nummer"))
			if err != nil {
				return nil, err
			}
			for _, derivative := range derivatives {
				group.Children[mapping.RelDerivatives] = append(group.Children[mapping.RelDerivatives], oai.Node{Record: oai.NewRecord(derivative)})
			}

			item.Children[mapping.RelObjects] = append(item.Children[mapping.RelObjects], group)
		}

		items = append(items, item)
	}

	return map[string][]oai.Node{mapping.RelItems: items}, nil
}
