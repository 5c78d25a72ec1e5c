package wizard

import (
	"context"
	"fmt"
	"strings"

	"skillbridge/models"
	"skillbridge/utils"

	"go.uber.org/zap"
)

func slotsFor(role models.Role) []string {
	if role == models.RoleBusiness {
		return models.BusinessSlots
	}
	return models.JobSeekerSlots
}

func validSlot(role models.Role, slot string) bool {
	for _, s := range slotsFor(role) {
		if s == slot {
			return true
		}
	}
	return false
}

func previewFolder(role models.Role) string {
	return fmt.Sprintf("previews/%s", role)
}

// Attach stores a binary blob in the given slot. Any active preview for the
// slot is released first; a new preview resource is acquired only for image
// content types. At most one preview per slot is ever live.
func (e *Engine) Attach(ctx context.Context, id, slot, fileName, contentType string, data []byte) (*models.Attachment, error) {
	ses, err := e.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !validSlot(ses.Role, slot) {
		return nil, ErrInvalidSlot
	}

	if err := e.releasePreview(ctx, ses, slot); err != nil {
		return nil, err
	}

	if err := e.Store.SaveBlob(ctx, ses.ID, slot, data); err != nil {
		return nil, err
	}

	att := models.Attachment{
		Slot:        slot,
		FileName:    fileName,
		ContentType: contentType,
		Size:        int64(len(data)),
	}
	if strings.HasPrefix(contentType, "image/") {
		ref, err := e.Storage.Upload(ctx, previewFolder(ses.Role), fileName, contentType, data)
		if err != nil {
			// The blob is kept; the caller sees the filename instead of a preview.
			utils.GetLogger().Warn("Failed to acquire attachment preview", zap.String("slot", slot), zap.Error(err))
		} else {
			att.PreviewID = ref.ID
			att.PreviewURL = ref.URL
		}
	}

	if ses.Attachments == nil {
		ses.Attachments = map[string]models.Attachment{}
	}
	ses.Attachments[slot] = att
	if err := e.Store.Save(ctx, ses); err != nil {
		return nil, err
	}
	return &att, nil
}

// Detach releases the slot's preview resource, deletes the blob and clears the
// slot so a fresh attach can follow.
func (e *Engine) Detach(ctx context.Context, id, slot string) error {
	ses, err := e.Store.Get(ctx, id)
	if err != nil {
		return err
	}
	if !validSlot(ses.Role, slot) {
		return ErrInvalidSlot
	}
	if err := e.releasePreview(ctx, ses, slot); err != nil {
		return err
	}
	if err := e.Store.DeleteBlob(ctx, ses.ID, slot); err != nil {
		return err
	}
	delete(ses.Attachments, slot)
	return e.Store.Save(ctx, ses)
}

// releasePreview releases the slot's preview resource exactly once: the
// PreviewID is cleared from the session as soon as the release succeeds, so a
// repeated attach/detach never frees it twice.
func (e *Engine) releasePreview(ctx context.Context, ses *models.WizardSession, slot string) error {
	att, ok := ses.Attachments[slot]
	if !ok || att.PreviewID == "" {
		return nil
	}
	if err := e.Storage.Delete(ctx, att.PreviewID); err != nil {
		return fmt.Errorf("failed to release preview for slot %s: %w", slot, err)
	}
	att.PreviewID = ""
	att.PreviewURL = ""
	ses.Attachments[slot] = att
	return nil
}
