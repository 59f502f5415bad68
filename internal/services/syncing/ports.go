package syncing

import (
	"context"

	"granteval-go/internal/model"
)

type CatalogSource interface {
	Source() string
	Fetch(ctx context.Context) ([]model.CatalogProject, error)
}

// Notifier is told about projects seen for the first time.
type Notifier interface {
	SendAlert(project model.CatalogProject)
}

type nopNotifier struct{}

func (nopNotifier) SendAlert(model.CatalogProject) {}
