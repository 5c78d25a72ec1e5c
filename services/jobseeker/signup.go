package jobseeker

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"skillbridge/models"
	"skillbridge/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const roleTag = string(models.RoleJobSeeker)

// SendEmailOTP checks that the email is not already registered, issues a code
// and emails it.
func (s *DefaultJobSeekerService) SendEmailOTP(ctx context.Context, email string) error {
	existing, err := s.Repo.GetByEmailWithProjection(email, bson.M{"id": 1})
	if err != nil {
		utils.GetLogger().Error("SendEmailOTP: failed to check for existing job-seeker", zap.Error(err))
		return fmt.Errorf("could not send OTP, please try again")
	}
	if existing != nil {
		return fmt.Errorf("a job-seeker with this email already exists")
	}

	code, err := s.OTP.Issue(ctx, roleTag, email)
	if err != nil {
		return err
	}
	if err := s.Mailer.SendOTPEmail(ctx, email, code); err != nil {
		utils.GetLogger().Error("SendEmailOTP: failed to email code", zap.String("email", email), zap.Error(err))
		return fmt.Errorf("failed to send OTP")
	}
	return nil
}

// VerifyEmailOTP verifies the signup code for the email.
func (s *DefaultJobSeekerService) VerifyEmailOTP(ctx context.Context, email, otp string) error {
	return s.OTP.Verify(ctx, roleTag, email, otp)
}

// ResetEmailOTP clears code and attempt state for the email.
func (s *DefaultJobSeekerService) ResetEmailOTP(ctx context.Context, email string) error {
	return s.OTP.Reset(ctx, roleTag, email)
}

// Register validates a parsed registration payload, persists the account and
// returns a signed token.
func (s *DefaultJobSeekerService) Register(ctx context.Context, reg *models.RegistrationData) (*AuthResponse, error) {
	required := []string{
		models.FieldEmail, models.FieldMobile, models.FieldPassword,
		models.FieldFullName, models.FieldJobRole, models.FieldDOB,
	}
	for _, f := range required {
		if reg.Fields[f] == "" {
			return nil, fmt.Errorf("missing required field: %s", f)
		}
	}

	email := reg.Fields[models.FieldEmail]
	existing, err := s.Repo.GetByEmailWithProjection(email, bson.M{"id": 1})
	if err != nil {
		utils.GetLogger().Error("Register: failed to check for existing job-seeker", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if existing != nil {
		return nil, fmt.Errorf("a job-seeker with this email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reg.Fields[models.FieldPassword]), bcrypt.DefaultCost)
	if err != nil {
		utils.GetLogger().Error("Register: failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	var expectedSalary float64
	if v := reg.Fields[models.FieldExpectedSalary]; v != "" {
		expectedSalary, err = strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %q", models.FieldExpectedSalary, v)
		}
	}
	var age int
	if v := reg.Fields[models.FieldAge]; v != "" {
		age, err = strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %q", models.FieldAge, v)
		}
	}

	js := models.JobSeeker{
		ID:             uuid.New().String(),
		FullName:       reg.Fields[models.FieldFullName],
		Email:          email,
		Mobile:         reg.Fields[models.FieldMobile],
		PasswordHash:   string(hashedPassword),
		JobRole:        reg.Fields[models.FieldJobRole],
		Sector:         reg.Fields[models.FieldSector],
		ExpectedSalary: expectedSalary,
		DOB:            reg.Fields[models.FieldDOB],
		Age:            age,
		Gender:         reg.Fields[models.FieldGender],
		Address:        reg.Fields[models.FieldAddress],
		Bio:            reg.Fields[models.FieldBio],
		Education:      reg.Education,
		Experiences:    reg.Experiences,
		Fresher:        reg.Fresher,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if len(reg.Files) > 0 {
		js.Documents = map[string]string{}
		for slot, file := range reg.Files {
			ref, err := s.Storage.Upload(ctx, "documents/"+roleTag, file.FileName, file.ContentType, file.Data)
			if err != nil {
				utils.GetLogger().Error("Register: failed to store document", zap.String("slot", slot), zap.Error(err))
				return nil, fmt.Errorf("registration failed, please try again")
			}
			js.Documents[slot] = ref.ID
		}
	}

	if err := s.Repo.Create(&js); err != nil {
		utils.GetLogger().Error("Register: failed to create job-seeker", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	token, err := utils.GenerateToken(js.ID, js.Email, roleTag, utils.AuthTokenTTL)
	if err != nil {
		utils.GetLogger().Error("Register: failed to generate auth token", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if err := s.Tokens.Save(ctx, roleTag, js.ID, utils.HashToken(token)); err != nil {
		return nil, fmt.Errorf("registration failed, please try again")
	}

	return &AuthResponse{
		ID:       js.ID,
		Token:    token,
		FullName: js.FullName,
		Email:    js.Email,
		Mobile:   js.Mobile,
	}, nil
}
