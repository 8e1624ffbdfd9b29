package api

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Awaveform/insider-one-assessment/internal/models"
)

// TestCreatePetFullPayload verifies POST /pet round-trips id, name, status,
// category, tags and photoUrls.
func TestCreatePetFullPayload(t *testing.T) {
	requireLive(t)

	pet := samplePet()
	result, err := client.CreatePet(context.Background(), pet)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, result.StatusCode,
		"expected 200, got %d: %s", result.StatusCode, result.Body)

	created := ValidatePet(t, result)
	t.Cleanup(func() { client.DeletePet(context.Background(), created.ID) })

	assert.Equal(t, pet.ID, created.ID)
	assert.Equal(t, pet.Name, created.Name)
	assert.Equal(t, pet.Status, created.Status)
	require.NotNil(t, created.Category)
	assert.Equal(t, pet.Category.Name, created.Category.Name)
	assert.Equal(t, pet.PhotoUrls, created.PhotoUrls)
	require.NotEmpty(t, created.Tags)
	assert.Equal(t, pet.Tags[0].Name, created.Tags[0].Name)

	// The full payload satisfies the documented contract.
	assert.NoError(t, created.Validate())
}

// TestCreatePetMinimalPayload verifies the API accepts a payload with the
// required fields only (name + photoUrls) and echoes the submitted values.
func TestCreatePetMinimalPayload(t *testing.T) {
	requireLive(t)

	pet := minimalPet()
	result, err := client.CreatePet(context.Background(), pet)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, result.StatusCode,
		"expected 200, got %d: %s", result.StatusCode, result.Body)

	created := ValidatePet(t, result)
	if created.ID != 0 {
		t.Cleanup(func() { client.DeletePet(context.Background(), created.ID) })
	}

	assert.Equal(t, pet.Name, created.Name)
	assert.Equal(t, pet.PhotoUrls, created.PhotoUrls)
}

// TestGetPetByID retrieves a pet that exists.
func TestGetPetByID(t *testing.T) {
	requireLive(t)

	created := createPet(t)
	result, err := client.GetPet(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, result.StatusCode)

	fetched := ValidatePet(t, result)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, created.Name, fetched.Name)
}

// TestUpdatePetPersists updates name and status via PUT and verifies via a
// subsequent GET that the change was stored, not just echoed back.
func TestUpdatePetPersists(t *testing.T) {
	requireLive(t)

	created := createPet(t)

	updated := *created
	updated.Name = "UpdatedDoggo"
	updated.Status = models.StatusSold

	putResult, err := client.UpdatePet(context.Background(), &updated)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, putResult.StatusCode)

	echoed := ValidatePet(t, putResult)
	assert.Equal(t, "UpdatedDoggo", echoed.Name)
	assert.Equal(t, models.StatusSold, echoed.Status)

	getResult, err := client.GetPet(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, getResult.StatusCode,
		"GET after PUT returned %d", getResult.StatusCode)

	stored := ValidatePet(t, getResult)
	assert.Equal(t, "UpdatedDoggo", stored.Name, "name not persisted")
	assert.Equal(t, models.StatusSold, stored.Status, "status not persisted")
}

// TestDeletePet removes a pet and verifies it is gone.
func TestDeletePet(t *testing.T) {
	requireLive(t)

	created := createPet(t)

	result, err := client.DeletePet(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, result.StatusCode)

	getResult, err := client.GetPet(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, getResult.StatusCode)
}

// TestFindPetsByStatus verifies each documented status returns a list in
// which every pet actually carries the requested status value.
func TestFindPetsByStatus(t *testing.T) {
	requireLive(t)

	for _, status := range models.PetStatuses() {
		t.Run(status, func(t *testing.T) {
			result, err := client.FindByStatus(context.Background(), status)
			require.NoError(t, err)
			require.Equal(t, http.StatusOK, result.StatusCode)

			pets := ValidatePetList(t, result)

			var mismatched []int64
			for _, pet := range pets {
				if pet.Status != status {
					mismatched = append(mismatched, pet.ID)
				}
			}
			assert.Empty(t, mismatched,
				"pets with wrong status returned for %q: %v", status, mismatched)
		})
	}
}

// TestFindPetsByMultipleStatuses verifies that querying two statuses returns
// only pets carrying one of the two requested values.
func TestFindPetsByMultipleStatuses(t *testing.T) {
	requireLive(t)

	queried := map[string]bool{
		models.StatusAvailable: true,
		models.StatusPending:   true,
	}

	result, err := client.FindByStatus(context.Background(),
		models.StatusAvailable, models.StatusPending)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, result.StatusCode)

	pets := ValidatePetList(t, result)

	var invalid [][2]any
	for _, pet := range pets {
		if !queried[pet.Status] {
			invalid = append(invalid, [2]any{pet.ID, pet.Status})
		}
	}
	assert.Empty(t, invalid, "pets outside requested statuses returned: %v", invalid)
}

// TestUpdatePetViaFormData exercises POST /pet/{petId}, which takes
// form-encoded name and status fields rather than a JSON body, and verifies
// the change persisted.
func TestUpdatePetViaFormData(t *testing.T) {
	requireLive(t)

	created := createPet(t)

	result, err := client.UpdatePetForm(context.Background(), created.ID,
		"FormUpdatedDoggo", models.StatusPending)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, result.StatusCode,
		"form update returned %d: %s", result.StatusCode, result.Body)

	getResult, err := client.GetPet(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, getResult.StatusCode)

	stored := ValidatePet(t, getResult)
	assert.Equal(t, "FormUpdatedDoggo", stored.Name, "form name update not persisted")
	assert.Equal(t, models.StatusPending, stored.Status, "form status update not persisted")
}

// TestFindPetsByTags verifies the (deprecated but functional) findByTags
// search returns the pet created with that tag.
func TestFindPetsByTags(t *testing.T) {
	requireLive(t)

	created := createPet(t)
	require.NotEmpty(t, created.Tags)

	result, err := client.FindByTags(context.Background(), created.Tags[0].Name)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, result.StatusCode,
		"findByTags returned %d", result.StatusCode)

	pets := ValidatePetList(t, result)

	found := false
	for _, pet := range pets {
		if pet.ID == created.ID {
			found = true
			break
		}
	}
	assert.True(t, found, "created pet %d not found in findByTags results", created.ID)
}

// TestUploadPetImage uploads a JPEG for an existing pet via
// multipart/form-data and verifies the acknowledgement envelope.
func TestUploadPetImage(t *testing.T) {
	requireLive(t)

	created := createPet(t)

	result, err := client.UploadImage(context.Background(), created.ID,
		"test_image.jpg", bytes.NewReader(fakeJPEG()), "")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, result.StatusCode,
		"image upload returned %d: %s", result.StatusCode, result.Body)

	envelope := ValidateAPIResponse(t, result)
	assert.NotEmpty(t, envelope.Message,
		"expected 'message' in upload response, got: %s", result.Body)
}

// TestUploadPetImageWithMetadata uploads an image together with the optional
// additionalMetadata form field.
func TestUploadPetImageWithMetadata(t *testing.T) {
	requireLive(t)

	created := createPet(t)

	result, err := client.UploadImage(context.Background(), created.ID,
		"photo.jpg", bytes.NewReader(fakeJPEG()), "front-view")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, result.StatusCode,
		"upload with metadata returned %d: %s", result.StatusCode, result.Body)

	envelope := ValidateAPIResponse(t, result)
	assert.NotEmpty(t, envelope.Message)
}
