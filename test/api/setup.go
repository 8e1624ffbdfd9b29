// Package api exercises the Swagger Petstore REST API end to end. The tests
// run against the live service and are opt-in: set API_TESTS=1 to enable
// them, and PETSTORE_BASE_URL to point at a different deployment.
package api

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Awaveform/insider-one-assessment/internal/common"
	"github.com/Awaveform/insider-one-assessment/internal/models"
	"github.com/Awaveform/insider-one-assessment/internal/petstore"
)

var (
	cfg    *common.Config
	client *petstore.Client
)

func TestMain(m *testing.M) {
	var err error
	cfg, err = common.LoadFromFiles(os.Getenv("SUITE_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	common.SetupLogger(cfg)

	client = petstore.NewClient(cfg.API.BaseURL, cfg.APIRequestTimeout())
	os.Exit(m.Run())
}

// requireLive skips the test unless live API testing is enabled.
func requireLive(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping live Petstore test in short mode")
	}
	if os.Getenv("API_TESTS") != "1" {
		t.Skip("set API_TESTS=1 to run live Petstore tests")
	}
}

// uniquePetID derives a process-unique pet id so parallel suite runs do not
// collide on the shared public service.
func uniquePetID() int64 {
	return 90000000000 + int64(uuid.New().ID())
}

// samplePet returns a valid pet payload with all fields populated.
func samplePet() *models.Pet {
	return &models.Pet{
		ID:        uniquePetID(),
		Category:  &models.Category{ID: 1, Name: "dog"},
		Name:      "TestDoggo",
		PhotoUrls: []string{"https://example.com/photo.jpg"},
		Tags:      []models.Tag{{ID: 1, Name: "test-tag"}},
		Status:    models.StatusAvailable,
	}
}

// minimalPet returns a pet payload with the required fields only.
func minimalPet() *models.Pet {
	return &models.Pet{
		Name:      "MinimalPet",
		PhotoUrls: []string{"https://example.com/minimal.jpg"},
	}
}

// createPet creates a pet via the API and registers its deletion for
// teardown, regardless of test outcome.
func createPet(t *testing.T) *models.Pet {
	t.Helper()

	pet := samplePet()
	result, err := client.CreatePet(context.Background(), pet)
	require.NoError(t, err, "failed to create pet")
	require.Equal(t, 200, result.StatusCode,
		"failed to create pet: %d %s", result.StatusCode, result.Body)

	created := ValidatePet(t, result)
	t.Cleanup(func() {
		client.DeletePet(context.Background(), created.ID)
	})
	return created
}

// fakeJPEG returns a minimal valid JPEG byte stream for upload tests.
func fakeJPEG() []byte {
	return []byte{
		0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 0x4a, 0x46,
		0x49, 0x46, 0x00, 0x01, 0x01, 0x00, 0x00, 0x00,
		0x01, 0x00, 0x01, 0x00,
	}
}
