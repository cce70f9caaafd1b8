package menu

import (
	"errors"
	"path/filepath"
	"strings"
)

// Upload lifecycle. The extract worker moves UPLOADED → EXTRACTING →
// TEXT_READY, the parse worker moves TEXT_READY → PARSING → PARSED.
// FAILED rows can be retried by staff.
const (
	StatusUploaded   = "UPLOADED"
	StatusExtracting = "EXTRACTING"
	StatusTextReady  = "TEXT_READY"
	StatusParsing    = "PARSING"
	StatusParsed     = "PARSED"
	StatusFailed     = "FAILED"
	StatusRejected   = "REJECTED"
)

// MenuUpload is one hall's weekly menu source file and its processing
// state. ParsedData is filled once a parser succeeds.
type MenuUpload struct {
	ID         int         `json:"id"`
	HallID     int         `json:"hall_id"`
	Filename   string      `json:"filename"`
	Status     string      `json:"status"`
	ParsedData *WeeklyMenu `json:"parsed_data,omitempty"`
}

// UploadStatus is the polling payload for the review UI.
type UploadStatus struct {
	Status string  `json:"status"`
	Reason *string `json:"reason,omitempty"`
}

var allowedExt = map[string]bool{
	".pdf":  true,
	".txt":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

func ValidateFileExtension(filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return errors.New("file extension missing")
	}
	if !allowedExt[ext] {
		return errors.New("file type not allowed")
	}
	return nil
}
