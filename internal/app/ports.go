package app

import (
	"context"

	"github.com/alexanderramin/horizon/internal/importer"
)

type EvaluateUseCase interface {
	Evaluate(ctx context.Context, req ValuationRequest) (*ValuationResponse, error)
}

// ImportResult counts what an import wrote.
type ImportResult struct {
	MilestoneCount int
	ParentCount    int
	ProfileUpdated bool
}

type ImportDocumentUseCase interface {
	ImportFile(ctx context.Context, filePath string) (*ImportResult, error)
	ImportDocument(ctx context.Context, doc *importer.Document) (*ImportResult, error)
}

type ExportDocumentUseCase interface {
	Export(ctx context.Context) (*importer.Document, error)
}
