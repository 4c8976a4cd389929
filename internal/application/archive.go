package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/linskybing/formflow/internal/domain/form"
	"github.com/linskybing/formflow/internal/repository"
	"github.com/linskybing/formflow/pkg/storage"
)

// FormArchive is the document kept for a completed form.
type FormArchive struct {
	Form       form.Form                    `json:"form"`
	TypeName   string                       `json:"formTypeName"`
	History    []form.FormSubmissionHistory `json:"history"`
	ArchivedAt time.Time                    `json:"archivedAt"`
}

func ArchiveFileName(f *form.Form) string {
	formType := "form"
	if f.FormType != "" {
		formType = strings.ToLower(string(f.FormType))
	}
	return fmt.Sprintf("form_%s_%s.json", formType, f.ID)
}

func ArchiveKey(f *form.Form) string {
	return fmt.Sprintf("forms/%s/%s", f.ID, ArchiveFileName(f))
}

type Archiver struct {
	Repos   *repository.Repos
	Store   storage.ObjectStore
	Catalog *form.Catalog
}

func NewArchiver(repos *repository.Repos, store storage.ObjectStore, catalog *form.Catalog) *Archiver {
	return &Archiver{Repos: repos, Store: store, Catalog: catalog}
}

func (a *Archiver) build(ctx context.Context, f *form.Form) ([]byte, error) {
	history, err := a.Repos.FormHistory.ListByForm(ctx, f.ID)
	if err != nil {
		return nil, fmt.Errorf("load history for archive: %w", err)
	}
	if history == nil {
		history = []form.FormSubmissionHistory{}
	}
	doc := FormArchive{
		Form:       *f,
		TypeName:   a.Catalog.DisplayName(f.FormType),
		History:    history,
		ArchivedAt: time.Now().UTC(),
	}
	return json.MarshalIndent(doc, "", "  ")
}

// Archive writes the form and its full history to the object store.
func (a *Archiver) Archive(ctx context.Context, f *form.Form) ([]byte, error) {
	data, err := a.build(ctx, f)
	if err != nil {
		return nil, err
	}
	if err := a.Store.Put(ctx, ArchiveKey(f), data, "application/json"); err != nil {
		return nil, err
	}
	return data, nil
}

// Fetch returns the stored archive, writing it first if it is missing.
func (a *Archiver) Fetch(ctx context.Context, f *form.Form) ([]byte, error) {
	data, err := a.Store.Get(ctx, ArchiveKey(f))
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, storage.ErrObjectNotFound) {
		return nil, err
	}
	return a.Archive(ctx, f)
}
