package business

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

const roleTag = string(models.RoleBusiness)

// SendEmailOTP checks that the email is not already registered, issues a code
// and emails it.
func (s *DefaultBusinessService) SendEmailOTP(ctx context.Context, email string) error {
	existing, err := s.Repo.GetByEmailWithProjection(email, bson.M{"id": 1})
	if err != nil {
		utils.GetLogger().Error("SendEmailOTP: failed to check for existing business", zap.Error(err))
		return fmt.Errorf("could not send OTP, please try again")
	}
	if existing != nil {
		return fmt.Errorf("a business with this email already exists")
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
func (s *DefaultBusinessService) VerifyEmailOTP(ctx context.Context, email, otp string) error {
	return s.OTP.Verify(ctx, roleTag, email, otp)
}

// ResetEmailOTP clears code and attempt state for the email.
func (s *DefaultBusinessService) ResetEmailOTP(ctx context.Context, email string) error {
	return s.OTP.Reset(ctx, roleTag, email)
}

// Register validates a parsed registration payload, persists the account and
// returns a signed token.
func (s *DefaultBusinessService) Register(ctx context.Context, reg *models.RegistrationData) (*AuthResponse, error) {
	required := []string{
		models.FieldEmail, models.FieldMobile, models.FieldPassword,
		models.FieldContactName, models.FieldOrgType, models.FieldCompanyName,
	}
	for _, f := range required {
		if reg.Fields[f] == "" {
			return nil, fmt.Errorf("missing required field: %s", f)
		}
	}
	orgType := reg.Fields[models.FieldOrgType]
	valid := false
	for _, t := range models.OrganizationTypes {
		if t == orgType {
			valid = true
			break
		}
	}
	if !valid {
		return nil, fmt.Errorf("unknown organization type: %s", orgType)
	}

	email := reg.Fields[models.FieldEmail]
	existing, err := s.Repo.GetByEmailWithProjection(email, bson.M{"id": 1})
	if err != nil {
		utils.GetLogger().Error("Register: failed to check for existing business", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if existing != nil {
		return nil, fmt.Errorf("a business with this email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reg.Fields[models.FieldPassword]), bcrypt.DefaultCost)
	if err != nil {
		utils.GetLogger().Error("Register: failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	var openings int
	if v := reg.Fields[models.FieldOpenings]; v != "" {
		openings, err = strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %q", models.FieldOpenings, v)
		}
	}

	b := models.Business{
		ID:               uuid.New().String(),
		OrganizationType: orgType,
		ContactName:      reg.Fields[models.FieldContactName],
		Email:            email,
		Mobile:           reg.Fields[models.FieldMobile],
		PasswordHash:     string(hashedPassword),
		CompanyName:      reg.Fields[models.FieldCompanyName],
		Website:          reg.Fields[models.FieldWebsite],
		Openings:         openings,
		About:            reg.Fields[models.FieldAbout],
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	if len(reg.Files) > 0 {
		b.Documents = map[string]string{}
		for slot, file := range reg.Files {
			ref, err := s.Storage.Upload(ctx, "documents/"+roleTag, file.FileName, file.ContentType, file.Data)
			if err != nil {
				utils.GetLogger().Error("Register: failed to store document", zap.String("slot", slot), zap.Error(err))
				return nil, fmt.Errorf("registration failed, please try again")
			}
			b.Documents[slot] = ref.ID
		}
	}

	if err := s.Repo.Create(&b); err != nil {
		utils.GetLogger().Error("Register: failed to create business", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	token, err := utils.GenerateToken(b.ID, b.Email, roleTag, utils.AuthTokenTTL)
	if err != nil {
		utils.GetLogger().Error("Register: failed to generate auth token", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if err := s.Tokens.Save(ctx, roleTag, b.ID, utils.HashToken(token)); err != nil {
		return nil, fmt.Errorf("registration failed, please try again")
	}

	return &AuthResponse{
		ID:          b.ID,
		Token:       token,
		CompanyName: b.CompanyName,
		ContactName: b.ContactName,
		Email:       b.Email,
		Mobile:      b.Mobile,
	}, nil
}
