package usecase

import (
	"context"
	"net/url"
	"time"

	oai "github.com/slsfi/arkiva-oai"
	"github.com/slsfi/arkiva-oai/internal/mapping"
	"github.com/slsfi/arkiva-oai/internal/xmlbuild"
)

// LibraryUsecase answers OAI-PMH requests for the library endpoint.
// Its catalog comes from configuration and its sets are nominal, so
// harvests only ever narrow on the date window.
type LibraryUsecase struct {
	repo    CatalogRepository
	catalog *mapping.Catalog
}

func NewLibraryUsecase(repo CatalogRepository, catalog *mapping.Catalog) *LibraryUsecase {
	return &LibraryUsecase{repo: repo, catalog: catalog}
}

func (uc *LibraryUsecase) Respond(ctx context.Context, baseURL string, query url.Values) ([]byte, int) {
	ctx, span := tracer.Start(ctx, "Oai.Usecase.LibraryRespond")
	defer span.End()

	params, protoErr := oai.Validate(query, uc.catalog.Sets, uc.catalog.Prefixes())
	if protoErr != nil {
		return errorReply(ctx, baseURL, params.Verb, protoErr)
	}

	resp := xmlbuild.NewResponse(uc.catalog.Envelope, baseURL, params, time.Now())

	switch params.Verb {
	case oai.VerbIdentify:
		earliest, err := uc.repo.EarliestDatestamp(ctx)
		if err != nil {
			return storeFailure(ctx, span, baseURL, params.Verb, catalogFailed(), err)
		}
		resp.AddIdentify(uc.catalog.Identity, baseURL, earliest)

	case oai.VerbListSets:
		resp.AddSets(uc.catalog.Sets)

	case oai.VerbListMetadataFormats:
		resp.AddFormats(uc.catalog.Formats())

	case oai.VerbListIdentifiers:
		nodes, err := uc.repo.HarvestHeaders(ctx, params)
		if err != nil {
			return storeFailure(ctx, span, baseURL, params.Verb, catalogFailed(), err)
		}
		if len(nodes) == 0 {
			return errorReply(ctx, baseURL, params.Verb, noCatalogMatch())
		}
		uc.renderAll(resp, nodes, params)

	default: // ListRecords, GetRecord
		nodes, err := uc.repo.HarvestRecords(ctx, params)
		if err != nil {
			return storeFailure(ctx, span, baseURL, params.Verb, catalogFailed(), err)
		}
		if len(nodes) == 0 {
			if params.Verb == oai.VerbGetRecord {
				return errorReply(ctx, baseURL, params.Verb,
					oai.NewError(oai.CodeIDDoesNotExist, "The given ID could not be found in the database."))
			}
			return errorReply(ctx, baseURL, params.Verb, noCatalogMatch())
		}
		uc.renderAll(resp, nodes, params)
	}

	return render(ctx, resp)
}

func (uc *LibraryUsecase) renderAll(resp *xmlbuild.Response, nodes []oai.Node, params oai.RequestParams) {
	table := uc.catalog.Table(params.MetadataPrefix)
	for _, node := range nodes {
		mapping.RenderRecord(resp.Container, table, node, params.Verb)
	}
}

func catalogFailed() *oai.Error {
	return oai.NewError(oai.CodeInternalError, "Could not retrieve metadata from database.")
}

func noCatalogMatch() *oai.Error {
	return oai.NewError(oai.CodeNoRecordsMatch, "No records match the given query.")
}
