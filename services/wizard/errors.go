package wizard

import "errors"

var (
	// ErrSessionNotFound signals an unknown or expired wizard session.
	ErrSessionNotFound = errors.New("wizard session not found or expired")
	// ErrBlobNotFound signals a missing attachment blob.
	ErrBlobNotFound = errors.New("attachment not found")
	// ErrRequestInFlight refuses a second submission while a step's external
	// call has not completed.
	ErrRequestInFlight = errors.New("a request for this step is already in progress")
	// ErrInvalidSlot refuses an attachment slot the flow does not define.
	ErrInvalidSlot = errors.New("invalid attachment slot for this flow")
	// ErrInvalidIndex refuses a record index outside the list.
	ErrInvalidIndex = errors.New("record index out of range")
	// ErrNotAtPreview refuses submission from any step but the last.
	ErrNotAtPreview = errors.New("submission is only possible from the preview step")
	// ErrAtFirstStep refuses retreating before the first step.
	ErrAtFirstStep = errors.New("already at the first step")
	// ErrAtPreview refuses advancing past the last step.
	ErrAtPreview = errors.New("already at the preview step; submit instead")
	// ErrWrongStep refuses record-list operations while their step is not mounted.
	ErrWrongStep = errors.New("operation not available on the current step")
)
