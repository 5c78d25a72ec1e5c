package businessRepo

import (
	"skillbridge/models"

	"go.mongodb.org/mongo-driver/bson"
)

// BusinessRepository defines methods for business account data access.
type BusinessRepository interface {
	// GetByID retrieves a business by its unique ID.
	GetByID(id string) (*models.Business, error)
	// GetByEmail retrieves a business by email; nil when absent.
	GetByEmail(email string) (*models.Business, error)
	// Create inserts a new business record.
	Create(b *models.Business) error
	// Update modifies an existing record.
	Update(b *models.Business) error
	// UpdateWithDocument applies a raw update document to a record.
	UpdateWithDocument(id string, update bson.M) error
	// Delete removes a record by its ID.
	Delete(id string) error
	// GetByEmailWithProjection retrieves a business by email with a projection.
	GetByEmailWithProjection(email string, projection bson.M) (*models.Business, error)
}
