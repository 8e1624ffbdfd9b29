package api

import (
	"strings"
	"testing"

	"github.com/Awaveform/insider-one-assessment/internal/common"
	"github.com/Awaveform/insider-one-assessment/internal/models"
	"github.com/Awaveform/insider-one-assessment/internal/petstore"
)

// ValidatePet parses the result body as a single pet, failing the test with
// a readable message on schema violation instead of propagating a raw error.
func ValidatePet(t *testing.T, result *petstore.Result) *models.Pet {
	t.Helper()

	pet, err := result.Pet()
	if err != nil {
		t.Fatalf("Response body does not match Pet schema:\n%v\nbody: %s", err, result.Body)
	}
	pet.CheckStatus(common.GetLogger())
	return pet
}

// ValidateAPIResponse parses the result body as the generic response
// envelope.
func ValidateAPIResponse(t *testing.T, result *petstore.Result) *models.APIResponse {
	t.Helper()

	resp, err := result.APIResponse()
	if err != nil {
		t.Fatalf("Response body does not match ApiResponse schema:\n%v\nbody: %s", err, result.Body)
	}
	return resp
}

// ValidatePetList parses the result body as a pet list. Every malformed item
// is collected before failing, so a single call surfaces all broken entries,
// not just the first.
func ValidatePetList(t *testing.T, result *petstore.Result) []models.Pet {
	t.Helper()

	pets, errs := result.Pets()
	if len(errs) > 0 {
		messages := make([]string, 0, len(errs))
		for _, err := range errs {
			messages = append(messages, err.Error())
		}
		t.Fatalf("%d pet(s) failed schema validation:\n%s", len(errs), strings.Join(messages, "\n"))
	}

	logger := common.GetLogger()
	for i := range pets {
		pets[i].CheckStatus(logger)
	}
	return pets
}

// assertStatusIn documents the service's lenient behavior: the observed
// status must be one of the accepted set, and is logged for the record.
func assertStatusIn(t *testing.T, result *petstore.Result, accepted ...int) {
	t.Helper()

	for _, status := range accepted {
		if result.StatusCode == status {
			t.Logf("observed status %d (accepted set %v)", result.StatusCode, accepted)
			return
		}
	}
	t.Errorf("status %d outside accepted set %v, body: %s", result.StatusCode, accepted, result.Body)
}
