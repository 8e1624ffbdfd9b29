// Package petstore is a thin typed client for the Swagger Petstore REST API.
// It exposes the raw status code and body on every call so tests can assert
// the service's lenient behavior instead of a strict contract.
package petstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/Awaveform/insider-one-assessment/internal/common"
	"github.com/Awaveform/insider-one-assessment/internal/models"
)

// Client talks to one Petstore deployment.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     arbor.ILogger
}

// NewClient creates a client with a bounded request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     common.GetLogger(),
	}
}

// WithHTTPClient replaces the underlying HTTP client. Used by tests to
// install a mock transport.
func (c *Client) WithHTTPClient(httpClient *http.Client) *Client {
	c.httpClient = httpClient
	return c
}

// HTTPClient returns the underlying HTTP client.
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// Result carries the raw outcome of one API call. Decode helpers convert the
// body into typed records on demand.
type Result struct {
	StatusCode int
	Body       []byte
}

// Pet decodes the body as a single pet.
func (r *Result) Pet() (*models.Pet, error) {
	return models.UnmarshalPet(r.Body)
}

// Pets decodes the body as a pet list, collecting every per-item error.
func (r *Result) Pets() ([]models.Pet, []error) {
	return models.UnmarshalPets(r.Body)
}

// APIResponse decodes the body as the generic response envelope.
func (r *Result) APIResponse() (*models.APIResponse, error) {
	return models.UnmarshalAPIResponse(r.Body)
}

// CreatePet POSTs a pet as JSON to /pet.
func (c *Client) CreatePet(ctx context.Context, pet *models.Pet) (*Result, error) {
	return c.sendJSON(ctx, http.MethodPost, models.PetPath, pet)
}

// UpdatePet PUTs a pet as JSON to /pet.
func (c *Client) UpdatePet(ctx context.Context, pet *models.Pet) (*Result, error) {
	return c.sendJSON(ctx, http.MethodPut, models.PetPath, pet)
}

// GetPet GETs /pet/{petId}.
func (c *Client) GetPet(ctx context.Context, petID int64) (*Result, error) {
	return c.GetPetRaw(ctx, strconv.FormatInt(petID, 10))
}

// GetPetRaw GETs /pet/{petId} with an arbitrary path segment, so malformed
// ids can be exercised.
func (c *Client) GetPetRaw(ctx context.Context, petID string) (*Result, error) {
	return c.send(ctx, http.MethodGet, models.PetByIDPath(petID), nil, nil)
}

// DeletePet DELETEs /pet/{petId}.
func (c *Client) DeletePet(ctx context.Context, petID int64) (*Result, error) {
	return c.DeletePetRaw(ctx, strconv.FormatInt(petID, 10))
}

// DeletePetRaw DELETEs /pet/{petId} with an arbitrary path segment, so
// malformed ids can be exercised.
func (c *Client) DeletePetRaw(ctx context.Context, petID string) (*Result, error) {
	return c.send(ctx, http.MethodDelete, models.PetByIDPath(petID), nil, nil)
}

// FindByStatus GETs /pet/findByStatus with one status parameter per value.
func (c *Client) FindByStatus(ctx context.Context, statuses ...string) (*Result, error) {
	query := url.Values{}
	for _, status := range statuses {
		query.Add("status", status)
	}
	return c.send(ctx, http.MethodGet, models.FindByStatusPath+"?"+query.Encode(), nil, nil)
}

// FindByTags GETs /pet/findByTags. The endpoint is marked deprecated in the
// Petstore spec but remains functional.
func (c *Client) FindByTags(ctx context.Context, tags ...string) (*Result, error) {
	query := url.Values{}
	for _, tag := range tags {
		query.Add("tags", tag)
	}
	return c.send(ctx, http.MethodGet, models.FindByTagsPath+"?"+query.Encode(), nil, nil)
}

// UpdatePetForm POSTs name and status as form fields to /pet/{petId}.
// This endpoint is distinct from PUT /pet: it takes
// application/x-www-form-urlencoded, not a JSON body.
func (c *Client) UpdatePetForm(ctx context.Context, petID int64, name, status string) (*Result, error) {
	form := url.Values{}
	if name != "" {
		form.Set("name", name)
	}
	if status != "" {
		form.Set("status", status)
	}
	headers := map[string]string{"Content-Type": models.ContentTypeForm}
	path := models.PetByIDPath(strconv.FormatInt(petID, 10))
	return c.send(ctx, http.MethodPost, path, strings.NewReader(form.Encode()), headers)
}

// UploadImage POSTs a multipart body to /pet/{petId}/uploadImage. The
// Content-Type header carries the boundary generated by the multipart
// writer; pre-setting it would break the upload.
func (c *Client) UploadImage(ctx context.Context, petID int64, filename string, file io.Reader, additionalMetadata string) (*Result, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if additionalMetadata != "" {
		if err := writer.WriteField("additionalMetadata", additionalMetadata); err != nil {
			return nil, fmt.Errorf("failed to write additionalMetadata field: %w", err)
		}
	}

	partHeader := textproto.MIMEHeader{}
	partHeader.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	partHeader.Set("Content-Type", models.ContentTypeJPEG)
	part, err := writer.CreatePart(partHeader)
	if err != nil {
		return nil, fmt.Errorf("failed to create multipart file part: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("failed to copy file into multipart body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	headers := map[string]string{"Content-Type": writer.FormDataContentType()}
	return c.send(ctx, http.MethodPost, models.UploadImagePath(petID), &body, headers)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, payload any) (*Result, error) {
	jsonBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	headers := map[string]string{"Content-Type": models.ContentTypeJSON}
	return c.send(ctx, method, path, bytes.NewReader(jsonBytes), headers)
}

func (c *Client) send(ctx context.Context, method, path string, body io.Reader, headers map[string]string) (*Result, error) {
	fullURL := c.baseURL + path
	c.logger.Debug().Str("method", method).Str("url", fullURL).Msg("Petstore request")

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", models.ContentTypeJSON)
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body for %s %s: %w", method, path, err)
	}

	c.logger.Debug().
		Str("method", method).
		Str("url", fullURL).
		Int("status", resp.StatusCode).
		Int("body_bytes", len(respBody)).
		Msg("Petstore response")

	return &Result{StatusCode: resp.StatusCode, Body: respBody}, nil
}
