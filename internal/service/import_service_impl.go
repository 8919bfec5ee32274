package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/horizon/internal/app"
	"github.com/alexanderramin/horizon/internal/db"
	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/importer"
	"github.com/alexanderramin/horizon/internal/repository"
)

type importService struct {
	milestones repository.MilestoneRepo
	parents    repository.ParentMilestoneRepo
	profiles   repository.ProfileRepo
	uow        db.UnitOfWork
	observer   UseCaseObserver
}

func NewImportService(
	milestones repository.MilestoneRepo,
	parents repository.ParentMilestoneRepo,
	profiles repository.ProfileRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) ImportService {
	return &importService{
		milestones: milestones,
		parents:    parents,
		profiles:   profiles,
		uow:        uow,
		observer:   useCaseObserverOrNoop(observers),
	}
}

func (s *importService) ImportFile(ctx context.Context, filePath string) (*app.ImportResult, error) {
	doc, err := importer.LoadDocument(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportDocument(ctx, doc)
}

// ImportDocument replaces every stored milestone and parent with the contents
// of doc in one transaction. The profile is only touched when doc sets it.
func (s *importService) ImportDocument(ctx context.Context, doc *importer.Document) (result *app.ImportResult, err error) {
	startedAt := time.Now().UTC()
	event := UseCaseEvent{Name: opImport}
	defer func() {
		observe(ctx, s.observer, &event, startedAt, err)
	}()

	if errs := importer.ValidateDocument(doc); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}
	snap := importer.Convert(doc)
	profileSet := doc.CurrentAge != nil || doc.InflationRate != nil

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txMilestones := repository.NewSQLiteMilestoneRepo(tx)
		txParents := repository.NewSQLiteParentMilestoneRepo(tx)
		txProfiles := repository.NewSQLiteProfileRepo(tx)

		if err := txMilestones.DeleteAll(ctx); err != nil {
			return err
		}
		if err := txParents.DeleteAll(ctx); err != nil {
			return err
		}
		for _, p := range snap.Parents {
			if err := txParents.Create(ctx, p); err != nil {
				return fmt.Errorf("creating parent milestone %q: %w", p.Name, err)
			}
		}
		for _, m := range snap.Milestones {
			if err := txMilestones.Create(ctx, m); err != nil {
				return fmt.Errorf("creating milestone %q: %w", m.Name, err)
			}
		}
		if !profileSet {
			return nil
		}

		profile, err := txProfiles.Get(ctx)
		if errors.Is(err, repository.ErrNotFound) {
			profile, err = domain.DefaultProfile(), nil
		}
		if err != nil {
			return err
		}
		if doc.CurrentAge != nil {
			profile.CurrentAge = *doc.CurrentAge
		}
		if doc.InflationRate != nil {
			profile.InflationRate = *doc.InflationRate
		}
		return txProfiles.Upsert(ctx, profile)
	})
	if err != nil {
		return nil, err
	}

	event.Milestones = len(snap.Milestones)
	event.Parents = len(snap.Parents)
	return &app.ImportResult{
		MilestoneCount: len(snap.Milestones),
		ParentCount:    len(snap.Parents),
		ProfileUpdated: profileSet,
	}, nil
}

// Export returns the stored state as a document that ImportDocument accepts.
func (s *importService) Export(ctx context.Context) (*importer.Document, error) {
	src := &repository.SnapshotSource{Milestones: s.milestones, Parents: s.parents, Profile: s.profiles}
	snap, err := src.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("exporting: %w", err)
	}
	return importer.Export(*snap), nil
}
