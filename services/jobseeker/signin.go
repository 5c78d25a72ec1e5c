package jobseeker

import (
	"context"
	"fmt"

	"skillbridge/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Authenticate verifies email and password and returns a fresh auth token.
func (s *DefaultJobSeekerService) Authenticate(ctx context.Context, email, password string) (*AuthResponse, error) {
	rec, err := s.Repo.GetByEmailWithProjection(email, bson.M{})
	if err != nil {
		utils.GetLogger().Error("Authenticate: failed to fetch job-seeker", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if rec == nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	token, err := utils.GenerateToken(rec.ID, rec.Email, roleTag, utils.AuthTokenTTL)
	if err != nil {
		utils.GetLogger().Error("Authenticate: failed to generate token", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if err := s.Tokens.Save(ctx, roleTag, rec.ID, utils.HashToken(token)); err != nil {
		utils.GetLogger().Error("Authenticate: failed to save token hash", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}

	return &AuthResponse{
		ID:       rec.ID,
		Token:    token,
		FullName: rec.FullName,
		Email:    rec.Email,
		Mobile:   rec.Mobile,
	}, nil
}
