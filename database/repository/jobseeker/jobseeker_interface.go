package jobseekerRepo

import (
	"skillbridge/models"

	"go.mongodb.org/mongo-driver/bson"
)

// JobSeekerRepository defines methods for job-seeker data access.
type JobSeekerRepository interface {
	// GetByID retrieves a job-seeker by its unique ID.
	GetByID(id string) (*models.JobSeeker, error)
	// GetByEmail retrieves a job-seeker by email; nil when absent.
	GetByEmail(email string) (*models.JobSeeker, error)
	// Create inserts a new job-seeker record.
	Create(js *models.JobSeeker) error
	// Update modifies an existing record.
	Update(js *models.JobSeeker) error
	// UpdateWithDocument applies a raw update document to a record.
	UpdateWithDocument(id string, update bson.M) error
	// Delete removes a record by its ID.
	Delete(id string) error
	// GetByEmailWithProjection retrieves a job-seeker by email with a projection.
	GetByEmailWithProjection(email string, projection bson.M) (*models.JobSeeker, error)
}
