package registry

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xsouravm/solpm/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClientWithHTTP(server.URL, server.Client())
}

func TestInstall(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/programs/feedana/latest/install", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "devnet", body["network"])
		assert.NotEmpty(t, body["project_hash"])

		json.NewEncoder(w).Encode(ProgramResponse{
			Name:      "feedana",
			Version:   "0.1.0",
			ProgramID: "FeEdAnA111",
			IDL:       json.RawMessage(`{"instructions": []}`),
		})
	})

	program, err := client.Install("feedana", "", "devnet", "abc123")
	require.NoError(t, err)
	assert.Equal(t, "0.1.0", program.Version)
	assert.Equal(t, "FeEdAnA111", program.ProgramID)
	assert.JSONEq(t, `{"instructions": []}`, string(program.IDL))
}

func TestInstallPinnedVersion(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/programs/feedana/0.2.0/install", r.URL.Path)
		json.NewEncoder(w).Encode(ProgramResponse{Version: "0.2.0"})
	})

	program, err := client.Install("feedana", "0.2.0", "mainnet", "abc123")
	require.NoError(t, err)
	assert.Equal(t, "0.2.0", program.Version)
}

func TestInstallNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such program", http.StatusNotFound)
	})

	_, err := client.Install("missing", "", "devnet", "abc123")
	require.Error(t, err)
	assert.True(t, errors.IsProgramNotFound(err))
}

func TestInstallServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := client.Install("feedana", "", "devnet", "abc123")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUploadFailed))
	assert.Contains(t, err.Error(), "boom")
}

func TestVerifyToken(t *testing.T) {
	cases := []struct {
		name     string
		response verifyResponse
		status   int
		want     bool
	}{
		{"valid with permission", verifyResponse{Valid: true, Permissions: []string{"publish:programs"}}, http.StatusOK, true},
		{"valid without permission", verifyResponse{Valid: true, Permissions: []string{"read:programs"}}, http.StatusOK, false},
		{"invalid token", verifyResponse{Valid: false}, http.StatusOK, false},
		{"unauthorized", verifyResponse{}, http.StatusUnauthorized, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/auth/verify", r.URL.Path)
				assert.Equal(t, "Bearer spr_test", r.Header.Get("Authorization"))
				w.WriteHeader(tc.status)
				json.NewEncoder(w).Encode(tc.response)
			})

			got, err := client.VerifyToken("spr_test")
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPublish(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/programs", r.URL.Path)
		assert.Equal(t, "Bearer spr_test", r.Header.Get("Authorization"))

		var upload UploadRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&upload))
		assert.Equal(t, "feedana", upload.Name)
		assert.NotEmpty(t, upload.Challenge)
		assert.NotEmpty(t, upload.Signature)
		w.WriteHeader(http.StatusCreated)
	})

	err := client.Publish(&UploadRequest{
		Name:            "feedana",
		Version:         "0.1.0",
		ProgramID:       "FeEdAnA111",
		Network:         "devnet",
		IDL:             json.RawMessage(`{}`),
		Challenge:       "Publish program FeEdAnA111 to devnet registry at 1700000000",
		Signature:       "sig",
		AuthorityPubkey: "pub",
	}, "spr_test")
	require.NoError(t, err)
}

func TestPublishRejected(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "signature mismatch", http.StatusForbidden)
	})

	err := client.Publish(&UploadRequest{Name: "feedana"}, "spr_test")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUploadFailed))
	assert.Contains(t, err.Error(), "signature mismatch")
}
