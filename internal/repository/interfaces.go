package repository

import (
	"context"

	"github.com/yourhostel/stat-syncer/internal/domain"
)

// ReportRepository defines report document access methods.
// The store is read-only at request time; ReplaceAll exists only for
// the startup import of a pre-generated report file.
type ReportRepository interface {
	// AllDocuments returns every stored report document, decoded.
	// One call is one store round trip.
	AllDocuments(ctx context.Context) ([]domain.ReportDocument, error)
	// ReplaceAll atomically swaps the stored collection for the given
	// raw documents.
	ReplaceAll(ctx context.Context, docs [][]byte) error
}

// UserRepository defines credential record access methods.
type UserRepository interface {
	CreateUser(ctx context.Context, username, passwordHash string, roles []string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}
