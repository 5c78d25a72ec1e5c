package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"skillbridge/models"
	"skillbridge/services/wizard"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WizardHandler exposes the signup wizard over HTTP.
type WizardHandler struct {
	Service wizard.Service
}

// NewWizardHandler creates a WizardHandler backed by the given service.
func NewWizardHandler(svc wizard.Service) *WizardHandler {
	return &WizardHandler{Service: svc}
}

// wizardStatus maps wizard service errors to HTTP status codes.
func wizardStatus(err error) int {
	switch {
	case errors.Is(err, wizard.ErrSessionNotFound), errors.Is(err, wizard.ErrBlobNotFound):
		return http.StatusNotFound
	case errors.Is(err, wizard.ErrRequestInFlight):
		return http.StatusConflict
	case errors.Is(err, wizard.ErrInvalidSlot),
		errors.Is(err, wizard.ErrInvalidIndex),
		errors.Is(err, wizard.ErrWrongStep),
		errors.Is(err, wizard.ErrAtFirstStep),
		errors.Is(err, wizard.ErrAtPreview),
		errors.Is(err, wizard.ErrNotAtPreview):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// StartSessionHandler handles POST /api/signup/sessions.
func (h *WizardHandler) StartSessionHandler(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	role := models.Role(req.Role)
	if role != models.RoleJobSeeker && role != models.RoleBusiness {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown signup flow: " + req.Role})
		return
	}

	ses, err := h.Service.Start(c.Request.Context(), role)
	if err != nil {
		logger.Error("Failed to start wizard session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start signup session"})
		return
	}
	c.JSON(http.StatusCreated, ses)
}

// GetSessionHandler handles GET /api/signup/sessions/:id.
func (h *WizardHandler) GetSessionHandler(c *gin.Context) {
	ses, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(wizardStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ses)
}

// AdvanceHandler handles POST /api/signup/sessions/:id/advance. The body is a
// flat object of field values for the current step.
func (h *WizardHandler) AdvanceHandler(c *gin.Context) {
	logger := getLogger(c)

	stepData := map[string]string{}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&stepData); err != nil {
			logger.Error("Invalid advance request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}
	}

	res, err := h.Service.Advance(c.Request.Context(), c.Param("id"), stepData)
	if err != nil {
		c.JSON(wizardStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

// RetreatHandler handles POST /api/signup/sessions/:id/retreat.
func (h *WizardHandler) RetreatHandler(c *gin.Context) {
	res, err := h.Service.Retreat(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(wizardStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

// SubmitHandler handles POST /api/signup/sessions/:id/submit.
func (h *WizardHandler) SubmitHandler(c *gin.Context) {
	res, err := h.Service.Submit(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(wizardStatus(err), gin.H{"error": err.Error()})
		return
	}
	if res.Auth != nil {
		c.JSON(http.StatusCreated, res)
		return
	}
	c.JSON(http.StatusOK, res)
}

// AttachHandler handles POST /api/signup/sessions/:id/attachments/:slot with a
// multipart "file" part.
func (h *WizardHandler) AttachHandler(c *gin.Context) {
	logger := getLogger(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file part"})
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open uploaded file", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unreadable file part"})
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		logger.Error("Failed to read uploaded file", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unreadable file part"})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	att, err := h.Service.Attach(c.Request.Context(), c.Param("id"), c.Param("slot"), fileHeader.Filename, contentType, data)
	if err != nil {
		c.JSON(wizardStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, att)
}

// DetachHandler handles DELETE /api/signup/sessions/:id/attachments/:slot.
func (h *WizardHandler) DetachHandler(c *gin.Context) {
	if err := h.Service.Detach(c.Request.Context(), c.Param("id"), c.Param("slot")); err != nil {
		c.JSON(wizardStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Attachment removed"})
}

func pathIndex(c *gin.Context) (int, bool) {
	idx, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid row index"})
		return 0, false
	}
	return idx, true
}

// AddEducationRowHandler handles POST /api/signup/sessions/:id/education.
func (h *WizardHandler) AddEducationRowHandler(c *gin.Context) {
	res, err := h.Service.AddEducationRow(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(wizardStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

// UpdateEducationRowHandler handles PUT /api/signup/sessions/:id/education/:index.
func (h *WizardHandler) UpdateEducationRowHandler(c *gin.Context) {
	idx, ok := pathIndex(c)
	if !ok {
		return
	}
	var rec models.EducationRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	res, err := h.Service.UpdateEducationRow(c.Request.Context(), c.Param("id"), idx, rec)
	if err != nil {
		c.JSON(wizardStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

// RemoveEducationRowHandler handles DELETE /api/signup/sessions/:id/education/:index.
func (h *WizardHandler) RemoveEducationRowHandler(c *gin.Context) {
	idx, ok := pathIndex(c)
	if !ok {
		return
	}
	res, err := h.Service.RemoveEducationRow(c.Request.Context(), c.Param("id"), idx)
	if err != nil {
		c.JSON(wizardStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

// AddExperienceRowHandler handles POST /api/signup/sessions/:id/experience.
func (h *WizardHandler) AddExperienceRowHandler(c *gin.Context) {
	res, err := h.Service.AddExperienceRow(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(wizardStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

// UpdateExperienceRowHandler handles PUT /api/signup/sessions/:id/experience/:index.
func (h *WizardHandler) UpdateExperienceRowHandler(c *gin.Context) {
	idx, ok := pathIndex(c)
	if !ok {
		return
	}
	var rec models.ExperienceRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	res, err := h.Service.UpdateExperienceRow(c.Request.Context(), c.Param("id"), idx, rec)
	if err != nil {
		c.JSON(wizardStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

// RemoveExperienceRowHandler handles DELETE /api/signup/sessions/:id/experience/:index.
func (h *WizardHandler) RemoveExperienceRowHandler(c *gin.Context) {
	idx, ok := pathIndex(c)
	if !ok {
		return
	}
	res, err := h.Service.RemoveExperienceRow(c.Request.Context(), c.Param("id"), idx)
	if err != nil {
		c.JSON(wizardStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

// SetFresherHandler handles PUT /api/signup/sessions/:id/fresher.
func (h *WizardHandler) SetFresherHandler(c *gin.Context) {
	var req struct {
		Fresher bool `json:"fresher"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	res, err := h.Service.SetFresher(c.Request.Context(), c.Param("id"), req.Fresher)
	if err != nil {
		c.JSON(wizardStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}
