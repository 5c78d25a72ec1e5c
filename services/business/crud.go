package business

import (
	"context"
	"fmt"
	"time"

	"skillbridge/models"
	"skillbridge/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// GetByID retrieves a business by ID, excluding sensitive fields.
func (s *DefaultBusinessService) GetByID(id string) (*models.Business, error) {
	rec, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get business: %w", err)
	}
	rec.PasswordHash = ""
	return rec, nil
}

// UpdateProfile updates non-empty profile fields using a partial update.
func (s *DefaultBusinessService) UpdateProfile(b models.Business) (*models.Business, error) {
	logger := utils.GetLogger()

	updateFields := bson.M{
		"updated_at": time.Now(),
	}
	if b.ContactName != "" {
		updateFields["contactName"] = b.ContactName
	}
	if b.Mobile != "" {
		updateFields["mobile"] = b.Mobile
	}
	if b.CompanyName != "" {
		updateFields["companyName"] = b.CompanyName
	}
	if b.Website != "" {
		updateFields["website"] = b.Website
	}
	if b.Openings != 0 {
		updateFields["openings"] = b.Openings
	}
	if b.About != "" {
		updateFields["about"] = b.About
	}

	if len(updateFields) == 1 {
		logger.Warn("UpdateProfile: no updatable fields provided")
		return nil, fmt.Errorf("no updatable fields provided")
	}
	if b.ID == "" {
		return nil, fmt.Errorf("business ID is required for update")
	}

	if err := s.Repo.UpdateWithDocument(b.ID, bson.M{"$set": updateFields}); err != nil {
		logger.Error("UpdateProfile: failed to update business", zap.String("id", b.ID), zap.Error(err))
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return s.GetByID(b.ID)
}

// Delete removes the account and revokes its auth session.
func (s *DefaultBusinessService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete business with id %s: %w", id, err)
	}
	if err := s.Tokens.Revoke(ctx, roleTag, id); err != nil {
		utils.GetLogger().Error("Delete: failed to clear auth token", zap.String("id", id), zap.Error(err))
	}
	return nil
}

// RevokeAuthToken logs the account out by discarding its token hash.
func (s *DefaultBusinessService) RevokeAuthToken(ctx context.Context, id string) error {
	if err := s.Tokens.Revoke(ctx, roleTag, id); err != nil {
		utils.GetLogger().Error("RevokeAuthToken: failed to clear auth token", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("failed to logout, please try again")
	}
	return nil
}
