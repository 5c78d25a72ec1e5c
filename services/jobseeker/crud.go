package jobseeker

import (
	"context"
	"fmt"
	"time"

	"skillbridge/models"
	"skillbridge/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// GetByID retrieves a job-seeker by ID, excluding sensitive fields.
func (s *DefaultJobSeekerService) GetByID(id string) (*models.JobSeeker, error) {
	rec, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get job-seeker: %w", err)
	}
	rec.PasswordHash = ""
	return rec, nil
}

// UpdateProfile updates non-empty profile fields using a partial update.
func (s *DefaultJobSeekerService) UpdateProfile(js models.JobSeeker) (*models.JobSeeker, error) {
	logger := utils.GetLogger()

	updateFields := bson.M{
		"updated_at": time.Now(),
	}
	if js.FullName != "" {
		updateFields["fullName"] = js.FullName
	}
	if js.Mobile != "" {
		updateFields["mobile"] = js.Mobile
	}
	if js.JobRole != "" {
		updateFields["jobRole"] = js.JobRole
	}
	if js.Sector != "" {
		updateFields["sector"] = js.Sector
	}
	if js.ExpectedSalary != 0 {
		updateFields["expectedSalary"] = js.ExpectedSalary
	}
	if js.Gender != "" {
		updateFields["gender"] = js.Gender
	}
	if js.Address != "" {
		updateFields["address"] = js.Address
	}
	if js.Bio != "" {
		updateFields["bio"] = js.Bio
	}
	if js.Education != nil {
		updateFields["education"] = js.Education
	}
	if js.Experiences != nil {
		updateFields["experiences"] = js.Experiences
	}

	if len(updateFields) == 1 {
		logger.Warn("UpdateProfile: no updatable fields provided")
		return nil, fmt.Errorf("no updatable fields provided")
	}
	if js.ID == "" {
		return nil, fmt.Errorf("job-seeker ID is required for update")
	}

	if err := s.Repo.UpdateWithDocument(js.ID, bson.M{"$set": updateFields}); err != nil {
		logger.Error("UpdateProfile: failed to update job-seeker", zap.String("id", js.ID), zap.Error(err))
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return s.GetByID(js.ID)
}

// Delete removes the account and revokes its auth session.
func (s *DefaultJobSeekerService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete job-seeker with id %s: %w", id, err)
	}
	if err := s.Tokens.Revoke(ctx, roleTag, id); err != nil {
		utils.GetLogger().Error("Delete: failed to clear auth token", zap.String("id", id), zap.Error(err))
	}
	return nil
}

// RevokeAuthToken logs the account out by discarding its token hash.
func (s *DefaultJobSeekerService) RevokeAuthToken(ctx context.Context, id string) error {
	if err := s.Tokens.Revoke(ctx, roleTag, id); err != nil {
		utils.GetLogger().Error("RevokeAuthToken: failed to clear auth token", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("failed to logout, please try again")
	}
	return nil
}
