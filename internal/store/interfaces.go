package store

import (
	"context"

	"github.com/MKhiriev/frontkit/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/build_repository_mock.go -package=mock

// BuildRepository persists the build history.
type BuildRepository interface {
	// Save stores one finished build.
	Save(ctx context.Context, record models.BuildRecord) error
	// List returns up to limit most recent builds, newest first. A
	// non-positive limit means [DefaultHistoryLimit].
	List(ctx context.Context, limit int) ([]models.BuildRecord, error)
}

// ErrorClassificator decides whether a failed database operation is worth
// retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
