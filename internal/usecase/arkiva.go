package usecase

import (
	"context"
	"net/url"
	"time"

	oai "github.com/slsfi/arkiva-oai"
	"github.com/slsfi/arkiva-oai/internal/mapping"
	"github.com/slsfi/arkiva-oai/internal/xmlbuild"
)

// ArkivaUsecase answers OAI-PMH requests for the archive endpoint.
type ArkivaUsecase struct {
	repo    ArchiveRepository
	catalog *mapping.Catalog
}

func NewArkivaUsecase(repo ArchiveRepository, catalog *mapping.Catalog) *ArkivaUsecase {
	return &ArkivaUsecase{repo: repo, catalog: catalog}
}

// Respond turns one request into a complete response body and HTTP
// status. Every outcome, including validation and store failures, is a
// single well-formed XML document.
func (uc *ArkivaUsecase) Respond(ctx context.Context, baseURL string, query url.Values) ([]byte, int) {
	ctx, span := tracer.Start(ctx, "Oai.Usecase.ArchiveRespond")
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
			return storeFailure(ctx, span, baseURL, params.Verb, queryFailed(), err)
		}
		resp.AddIdentify(uc.catalog.Identity, baseURL, earliest)

	case oai.VerbListSets:
		resp.AddSets(uc.catalog.Sets)

	case oai.VerbListMetadataFormats:
		if params.Identifier != "" {
			nodes, err := uc.repo.HarvestObjects(ctx, params)
			if err != nil {
				return storeFailure(ctx, span, baseURL, params.Verb, queryFailed(), err)
			}
			if len(nodes) == 0 {
				return errorReply(ctx, baseURL, params.Verb, noSuchID())
			}
		}
		resp.AddFormats(uc.catalog.Formats())

	default:
		nodes, err := uc.harvest(ctx, params)
		if err != nil {
			return storeFailure(ctx, span, baseURL, params.Verb, queryFailed(), err)
		}
		if len(nodes) == 0 {
			if params.Verb == oai.VerbGetRecord {
				return errorReply(ctx, baseURL, params.Verb, noSuchID())
			}
			return errorReply(ctx, baseURL, params.Verb,
				oai.NewError(oai.CodeNoRecordsMatch, "No records match the criteria given"))
		}
		table := uc.catalog.Table(params.MetadataPrefix)
		for _, node := range nodes {
			mapping.RenderRecord(resp.Container, table, node, params.Verb)
		}
	}

	return render(ctx, resp)
}

// harvest picks the query family for the prefix. EAD reads collections
// and expands their item tree for full records; the flat formats read
// the object join.
func (uc *ArkivaUsecase) harvest(ctx context.Context, params oai.RequestParams) ([]oai.Node, error) {
	if params.MetadataPrefix == "ead" {
		return uc.repo.HarvestCollections(ctx, params, params.Verb != oai.VerbListIdentifiers)
	}
	return uc.repo.HarvestObjects(ctx, params)
}

func queryFailed() *oai.Error {
	return oai.NewError(oai.CodeDatabaseError, "An error occurred when querying the database")
}

func noSuchID() *oai.Error {
	return oai.NewError(oai.CodeIDDoesNotExist, "No record with that id could be found")
}
