package models

import "fmt"

// Valid values for the Petstore status field.
const (
	StatusAvailable = "available"
	StatusPending   = "pending"
	StatusSold      = "sold"
)

// PetStatuses returns the documented status values in declaration order.
func PetStatuses() []string {
	return []string{StatusAvailable, StatusPending, StatusSold}
}

// IsDocumentedStatus reports whether the status is one of the documented
// enum values.
func IsDocumentedStatus(status string) bool {
	switch status {
	case StatusAvailable, StatusPending, StatusSold:
		return true
	}
	return false
}

// Petstore API path segments, appended to the base URL.
const (
	PetPath          = "/pet"
	FindByStatusPath = "/pet/findByStatus"
	FindByTagsPath   = "/pet/findByTags"
)

// PetByIDPath returns /pet/{petId} for GET, DELETE and form-POST.
// The id is a string so malformed path segments can be exercised too.
func PetByIDPath(petID string) string {
	return fmt.Sprintf("%s/%s", PetPath, petID)
}

// UploadImagePath returns /pet/{petId}/uploadImage.
func UploadImagePath(petID int64) string {
	return fmt.Sprintf("%s/%d/uploadImage", PetPath, petID)
}

// MIME types used in Content-Type / Accept headers.
const (
	ContentTypeJSON = "application/json"
	ContentTypeForm = "application/x-www-form-urlencoded"
	ContentTypeJPEG = "image/jpeg"
)
