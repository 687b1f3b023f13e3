package usecase

import (
	"context"
	"time"

	oai "github.com/slsfi/arkiva-oai"
)

// ArchiveRepository defines harvesting queries over the archive store.
// Object queries serve the flat formats, collection queries serve EAD;
// expand pulls in the dependent item rows for full records.
type ArchiveRepository interface {
	EarliestDatestamp(ctx context.Context) (time.Time, error)
	HarvestObjects(ctx context.Context, params oai.RequestParams) ([]oai.Node, error)
	HarvestCollections(ctx context.Context, params oai.RequestParams, expand bool) ([]oai.Node, error)
}

// CatalogRepository defines harvesting queries over a single
// configuration-described table.
type CatalogRepository interface {
	EarliestDatestamp(ctx context.Context) (time.Time, error)
	HarvestHeaders(ctx context.Context, params oai.RequestParams) ([]oai.Node, error)
	HarvestRecords(ctx context.Context, params oai.RequestParams) ([]oai.Node, error)
}
