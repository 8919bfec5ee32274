package service

import (
	"context"

	"github.com/alexanderramin/horizon/internal/app"
	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/importer"
)

type MilestoneService interface {
	Create(ctx context.Context, m *domain.Milestone) error
	GetByID(ctx context.Context, id string) (*domain.Milestone, error)
	// Find looks a milestone up by id, then by name.
	Find(ctx context.Context, ref string) (*domain.Milestone, error)
	List(ctx context.Context) ([]*domain.Milestone, error)
	ListByParent(ctx context.Context, parentID string) ([]*domain.Milestone, error)
	Update(ctx context.Context, m *domain.Milestone) error
	Delete(ctx context.Context, id string) error
}

type ParentService interface {
	Create(ctx context.Context, p *domain.ParentMilestone) error
	GetByID(ctx context.Context, id string) (*domain.ParentMilestone, error)
	List(ctx context.Context) ([]*domain.ParentMilestone, error)
	Update(ctx context.Context, p *domain.ParentMilestone) error
	Delete(ctx context.Context, id string) error
}

type ProfileService interface {
	Get(ctx context.Context) (*domain.Profile, error)
	Update(ctx context.Context, p *domain.Profile) error
}

type ImportService interface {
	ImportFile(ctx context.Context, filePath string) (*app.ImportResult, error)
	ImportDocument(ctx context.Context, doc *importer.Document) (*app.ImportResult, error)
	Export(ctx context.Context) (*importer.Document, error)
}

type ValuationService interface {
	Evaluate(ctx context.Context, req app.ValuationRequest) (*app.ValuationResponse, error)
}

var (
	_ app.EvaluateUseCase       = ValuationService(nil)
	_ app.ImportDocumentUseCase = ImportService(nil)
	_ app.ExportDocumentUseCase = ImportService(nil)
)
