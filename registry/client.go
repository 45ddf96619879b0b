// Package registry is the HTTP client for the solpm program registry:
// installing published programs, verifying API tokens, and publishing.
package registry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/0xsouravm/solpm/errors"
	"github.com/0xsouravm/solpm/internal/httpclient"
)

// DefaultBaseURL is the hosted registry.
const DefaultBaseURL = "https://solpm-registry-production.up.railway.app"

// PublishPermission is the token permission required to publish.
const PublishPermission = "publish:programs"

// Client talks to one registry instance.
type Client struct {
	baseURL string
	http    *httpclient.SaferClient
}

// NewClient returns a client for the given registry. An empty baseURL
// selects the hosted registry.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    httpclient.NewSaferClient(30 * time.Second),
	}
}

// NewClientWithHTTP returns a client using a caller-supplied transport.
// Tests use this with httptest servers, which the default client's
// SSRF protection would block.
func NewClientWithHTTP(baseURL string, client *http.Client) *Client {
	return &Client{
		baseURL: baseURL,
		http:    httpclient.WrapClient(client),
	}
}

// ProgramResponse is the registry's install payload: the program's
// resolved metadata plus its IDL document.
type ProgramResponse struct {
	Name      string          `json:"name"`
	Version   string          `json:"version"`
	ProgramID string          `json:"program_id"`
	IDL       json.RawMessage `json:"idl"`
}

// UploadRequest is the publish payload. Challenge, Signature, and
// AuthorityPubkey carry the ed25519 proof that the caller controls the
// program's upgrade authority.
type UploadRequest struct {
	Name            string          `json:"name"`
	Version         string          `json:"version"`
	ProgramID       string          `json:"program_id"`
	Network         string          `json:"network"`
	IDL             json.RawMessage `json:"idl"`
	Description     string          `json:"description"`
	Repository      string          `json:"repository"`
	Challenge       string          `json:"challenge"`
	Signature       string          `json:"signature"`
	AuthorityPubkey string          `json:"authority_pubkey"`
}

type verifyResponse struct {
	Valid       bool     `json:"valid"`
	Permissions []string `json:"permissions"`
}

// Install fetches a program from the registry. version may be empty
// for the latest release. The network and project hash ride along in
// the body for download tracking on the registry side.
func (c *Client) Install(name, version, network, projectHash string) (*ProgramResponse, error) {
	if version == "" {
		version = "latest"
	}
	url := fmt.Sprintf("%s/programs/%s/%s/install", c.baseURL, name, version)

	body, err := json.Marshal(map[string]string{
		"network":      network,
		"project_hash": projectHash,
	})
	if err != nil {
		return nil, errors.Wrap(err, "encoding install request")
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "building install request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "fetching %s from registry", name)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errors.Wrapf(errors.ErrProgramNotFound, "%s", name)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.Wrapf(errors.ErrUploadFailed, "registry returned %s: %s",
			resp.Status, readBody(resp.Body))
	}

	var program ProgramResponse
	if err := json.NewDecoder(resp.Body).Decode(&program); err != nil {
		return nil, errors.Wrap(err, "decoding registry response")
	}
	return &program, nil
}

// VerifyToken checks a token with the registry and reports whether it
// is valid and carries the publish permission.
func (c *Client) VerifyToken(token string) (bool, error) {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/auth/verify", nil)
	if err != nil {
		return false, errors.Wrap(err, "building verify request")
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return false, errors.Wrapf(err, "connecting to registry at %s", c.baseURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return false, nil
	}

	var verify verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&verify); err != nil {
		return false, errors.Wrap(err, "decoding verify response")
	}
	if !verify.Valid {
		return false, nil
	}
	for _, p := range verify.Permissions {
		if p == PublishPermission {
			return true, nil
		}
	}
	return false, nil
}

// Publish uploads a program release to the registry.
func (c *Client) Publish(upload *UploadRequest, token string) error {
	body, err := json.Marshal(upload)
	if err != nil {
		return errors.Wrap(err, "encoding publish request")
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/programs", bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "building publish request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "publishing to registry")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.Wrapf(errors.ErrUploadFailed, "failed to publish program (%s): %s",
			resp.Status, readBody(resp.Body))
	}
	return nil
}

func readBody(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return ""
	}
	return string(data)
}
