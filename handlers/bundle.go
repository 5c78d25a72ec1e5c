package handlers

import (
	"skillbridge/utils"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	Tokens *utils.TokenStore

	// Signup wizard endpoints.
	StartSessionHandler        gin.HandlerFunc
	GetSessionHandler          gin.HandlerFunc
	AdvanceHandler             gin.HandlerFunc
	RetreatHandler             gin.HandlerFunc
	SubmitHandler              gin.HandlerFunc
	AttachHandler              gin.HandlerFunc
	DetachHandler              gin.HandlerFunc
	AddEducationRowHandler     gin.HandlerFunc
	UpdateEducationRowHandler  gin.HandlerFunc
	RemoveEducationRowHandler  gin.HandlerFunc
	AddExperienceRowHandler    gin.HandlerFunc
	UpdateExperienceRowHandler gin.HandlerFunc
	RemoveExperienceRowHandler gin.HandlerFunc
	SetFresherHandler          gin.HandlerFunc

	// Job-seeker endpoints.
	JobSeekerSendEmailOTPHandler  gin.HandlerFunc
	JobSeekerVerifyEmailHandler   gin.HandlerFunc
	JobSeekerRegisterHandler      gin.HandlerFunc
	JobSeekerLoginHandler         gin.HandlerFunc
	JobSeekerResetPasswordHandler gin.HandlerFunc
	JobSeekerGetProfileHandler    gin.HandlerFunc
	JobSeekerUpdateProfileHandler gin.HandlerFunc
	JobSeekerDeleteHandler        gin.HandlerFunc
	JobSeekerLogoutHandler        gin.HandlerFunc

	// Business endpoints.
	BusinessSendEmailOTPHandler  gin.HandlerFunc
	BusinessVerifyEmailHandler   gin.HandlerFunc
	BusinessRegisterHandler      gin.HandlerFunc
	BusinessLoginHandler         gin.HandlerFunc
	BusinessResetPasswordHandler gin.HandlerFunc
	BusinessGetProfileHandler    gin.HandlerFunc
	BusinessUpdateProfileHandler gin.HandlerFunc
	BusinessDeleteHandler        gin.HandlerFunc
	BusinessLogoutHandler        gin.HandlerFunc
}
