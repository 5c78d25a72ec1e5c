package wizard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/textproto"
	"sort"
	"strings"

	"skillbridge/models"
)

// BuildRegistrationPayload flattens a session into the multipart wire format:
// collected scalars as string fields (the record lists are already JSON
// strings inside Collected), attachment blobs as binary parts under their slot
// names. The payload is assembled once, at submission.
func BuildRegistrationPayload(ctx context.Context, store SessionStore, ses *models.WizardSession) (string, io.Reader, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	keys := make([]string, 0, len(ses.Collected))
	for k := range ses.Collected {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := w.WriteField(k, ses.Collected[k]); err != nil {
			return "", nil, fmt.Errorf("failed to write payload field %s: %w", k, err)
		}
	}

	slots := make([]string, 0, len(ses.Attachments))
	for slot := range ses.Attachments {
		slots = append(slots, slot)
	}
	sort.Strings(slots)
	for _, slot := range slots {
		att := ses.Attachments[slot]
		data, err := store.GetBlob(ctx, ses.ID, slot)
		if err != nil {
			return "", nil, fmt.Errorf("failed to read attachment %s: %w", slot, err)
		}
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, slot, att.FileName))
		header.Set("Content-Type", att.ContentType)
		part, err := w.CreatePart(header)
		if err != nil {
			return "", nil, fmt.Errorf("failed to create payload part %s: %w", slot, err)
		}
		if _, err := part.Write(data); err != nil {
			return "", nil, fmt.Errorf("failed to write payload part %s: %w", slot, err)
		}
	}

	if err := w.Close(); err != nil {
		return "", nil, fmt.Errorf("failed to finalize payload: %w", err)
	}
	return w.FormDataContentType(), &buf, nil
}

// ParseRegistrationPayload decodes the multipart wire format back into
// structured registration data. The record lists are decoded from their JSON
// string fields; the "Fresher" sentinel is honored for experiences.
func ParseRegistrationPayload(contentType string, body io.Reader) (*models.RegistrationData, error) {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil || !strings.HasPrefix(mediaType, "multipart/") {
		return nil, fmt.Errorf("invalid payload content type: %s", contentType)
	}
	reader := multipart.NewReader(body, params["boundary"])

	reg := &models.RegistrationData{
		Fields: map[string]string{},
		Files:  map[string]models.UploadedFile{},
	}
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read payload part: %w", err)
		}
		data, err := io.ReadAll(part)
		if err != nil {
			return nil, fmt.Errorf("failed to read payload part %s: %w", part.FormName(), err)
		}

		name := part.FormName()
		if part.FileName() != "" {
			reg.Files[name] = models.UploadedFile{
				FileName:    part.FileName(),
				ContentType: part.Header.Get("Content-Type"),
				Data:        data,
			}
			continue
		}

		value := string(data)
		switch name {
		case models.FieldEducation:
			if err := json.Unmarshal(data, &reg.Education); err != nil {
				return nil, fmt.Errorf("invalid education field: %w", err)
			}
		case models.FieldExperiences:
			if value == models.FresherSentinel {
				reg.Fresher = true
				continue
			}
			if err := json.Unmarshal(data, &reg.Experiences); err != nil {
				return nil, fmt.Errorf("invalid experiences field: %w", err)
			}
		default:
			reg.Fields[name] = value
		}
	}
	return reg, nil
}
