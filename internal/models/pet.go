package models

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"
)

var validate = validator.New()

// Category groups pets in the Petstore catalog.
type Category struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// Tag is a free-form label attached to a pet.
type Tag struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// Pet mirrors the Petstore /pet JSON contract.
//
// The validate tags express the documented contract (name and photoUrls are
// the only required fields). The live service is lenient and does not always
// echo every field back, so response parsing never enforces these tags;
// Validate is called only where the full contract is expected to hold.
type Pet struct {
	ID        int64     `json:"id,omitempty"`
	Category  *Category `json:"category,omitempty"`
	Name      string    `json:"name,omitempty" validate:"required"`
	PhotoUrls []string  `json:"photoUrls,omitempty" validate:"required,min=1"`
	Tags      []Tag     `json:"tags,omitempty"`
	Status    string    `json:"status,omitempty" validate:"omitempty,oneof=available pending sold"`
}

// Validate checks the pet against the documented contract using
// go-playground/validator.
func (p *Pet) Validate() error {
	return validate.Struct(p)
}

// CheckStatus logs a warning when the status is outside the documented enum.
// It never rejects: the live service accepts and stores arbitrary strings.
func (p *Pet) CheckStatus(logger arbor.ILogger) {
	if p.Status == "" || IsDocumentedStatus(p.Status) {
		return
	}
	logger.Warn().
		Int64("pet_id", p.ID).
		Str("status", p.Status).
		Msg("Pet status is outside the documented enum (available | pending | sold)")
}

// APIResponse is the generic envelope returned by the upload and delete
// endpoints.
type APIResponse struct {
	Code    int    `json:"code,omitempty"`
	Type    string `json:"type,omitempty"`
	Message string `json:"message,omitempty"`
}

// UnmarshalPet decodes a JSON body into a Pet, surfacing type mismatches as
// schema errors.
func UnmarshalPet(body []byte) (*Pet, error) {
	var pet Pet
	if err := json.Unmarshal(body, &pet); err != nil {
		return nil, fmt.Errorf("body does not match Pet schema: %w", err)
	}
	return &pet, nil
}

// UnmarshalPets decodes a JSON array body into a pet list. Each item is
// decoded independently so a single call surfaces every malformed entry,
// not just the first.
func UnmarshalPets(body []byte) ([]Pet, []error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, []error{fmt.Errorf("body is not a JSON array: %w", err)}
	}

	var pets []Pet
	var errs []error
	for i, item := range raw {
		var pet Pet
		if err := json.Unmarshal(item, &pet); err != nil {
			errs = append(errs, fmt.Errorf("item %d: %w", i, err))
			continue
		}
		pets = append(pets, pet)
	}
	return pets, errs
}

// UnmarshalAPIResponse decodes a JSON body into an APIResponse envelope.
func UnmarshalAPIResponse(body []byte) (*APIResponse, error) {
	var resp APIResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("body does not match ApiResponse schema: %w", err)
	}
	return &resp, nil
}
