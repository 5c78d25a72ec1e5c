package jobseekerRepo

import (
	"context"
	"fmt"
	"time"

	"skillbridge/database"
	"skillbridge/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoJobSeekerRepo implements JobSeekerRepository using MongoDB.
type MongoJobSeekerRepo struct {
	coll *mongo.Collection
}

// NewMongoJobSeekerRepo creates a new instance of JobSeekerRepository using MongoDB.
func NewMongoJobSeekerRepo() JobSeekerRepository {
	coll := database.MongoClient.Database(database.DatabaseName).Collection("job_seekers")
	repo := &MongoJobSeekerRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoJobSeekerRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByEmailWithProjection retrieves a job-seeker by email using a projection.
// Pass nil for projection to retrieve the full document. Returns nil when the
// email is unknown.
func (r *MongoJobSeekerRepo) GetByEmailWithProjection(email string, projection bson.M) (*models.JobSeeker, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.FindOne()
	if projection != nil {
		opts.SetProjection(projection)
	}

	var js models.JobSeeker
	if err := r.coll.FindOne(ctx, bson.M{"email": email}, opts).Decode(&js); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch job-seeker with email %s: %w", email, err)
	}
	return &js, nil
}

func (r *MongoJobSeekerRepo) GetByID(id string) (*models.JobSeeker, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var js models.JobSeeker
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&js); err != nil {
		return nil, fmt.Errorf("failed to fetch job-seeker with id %s: %w", id, err)
	}
	return &js, nil
}

func (r *MongoJobSeekerRepo) GetByEmail(email string) (*models.JobSeeker, error) {
	return r.GetByEmailWithProjection(email, nil)
}

func (r *MongoJobSeekerRepo) Create(js *models.JobSeeker) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, js); err != nil {
		return fmt.Errorf("failed to create job-seeker: %w", err)
	}
	return nil
}

func (r *MongoJobSeekerRepo) Update(js *models.JobSeeker) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	js.UpdatedAt = time.Now()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": js.ID}, js)
	if err != nil {
		return fmt.Errorf("failed to update job-seeker %s: %w", js.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("job-seeker %s not found", js.ID)
	}
	return nil
}

func (r *MongoJobSeekerRepo) UpdateWithDocument(id string, update bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update job-seeker %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("job-seeker %s not found", id)
	}
	return nil
}

func (r *MongoJobSeekerRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete job-seeker %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("job-seeker %s not found", id)
	}
	return nil
}
