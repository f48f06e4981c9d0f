package importer

import (
	"context"
	"errors"

	"github.com/pocketledger/backend/pkg/models"
	"github.com/rs/zerolog/log"
)

// Ledger is the part of the transaction ledger the import needs.
type Ledger interface {
	Get(ctx context.Context, owner, id string) (models.Transaction, error)
	Create(ctx context.Context, owner string, t models.Transaction) (string, error)
}

// Result lists the outcome of an import.
type Result struct {
	Created    []string `json:"created"`    // IDs of the created transactions
	Duplicates []string `json:"duplicates"` // IDs of transactions that had already been imported
}

// Import creates the transactions in the ledger. Transactions that already exist are skipped.
//
// The import stops at the first error, transactions created before stay.
func Import(ctx context.Context, ledger Ledger, owner string, transactions []models.Transaction) (Result, error) {
	result := Result{Created: make([]string, 0), Duplicates: make([]string, 0)}

	for _, t := range transactions {
		_, err := ledger.Get(ctx, owner, t.ID)
		if err == nil {
			result.Duplicates = append(result.Duplicates, t.ID)
			continue
		}
		if !errors.Is(err, models.ErrResourceNotFound) {
			return result, err
		}

		id, err := ledger.Create(ctx, owner, t)
		if err != nil {
			return result, err
		}
		result.Created = append(result.Created, id)
	}

	log.Info().Str("owner", owner).Int("created", len(result.Created)).Int("duplicates", len(result.Duplicates)).Msg("import finished")
	return result, nil
}
