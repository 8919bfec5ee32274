package importer

import (
	"context"
	"fmt"

	"github.com/alexanderramin/horizon/internal/store"
)

// FileSource reads the milestone state from a JSON document on disk.
type FileSource struct {
	Path string
}

var _ store.Source = FileSource{}

func (s FileSource) Fetch(ctx context.Context) (*store.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := LoadDocument(s.Path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", s.Path, err)
	}
	if err := JoinErrors(ValidateDocument(doc)); err != nil {
		return nil, fmt.Errorf("%s: %w", s.Path, err)
	}
	return Convert(doc), nil
}
