package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prooflab/redline/internal/core/suggest"
)

func staticTokens(typ, token string) TokenProvider {
	return func() (TokenPair, bool) {
		return TokenPair{AccessToken: token, TokenType: typ}, true
	}
}

func noTokens() TokenProvider {
	return func() (TokenPair, bool) { return TokenPair{}, false }
}

func TestNewRejectsBadURL(t *testing.T) {
	_, err := New("://nope", nil)
	require.Error(t, err)

	_, err = New("ftp://host", nil)
	require.Error(t, err)
}

func TestAuthHeaderAttached(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(User{ID: "u1", Email: "a@b.c"})
	}))
	defer srv.Close()

	client, err := New(srv.URL, staticTokens("Bearer", "tok-123"))
	require.NoError(t, err)

	user, err := client.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "u1", user.ID)
}

func TestNoAuthHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client, err := New(srv.URL, noTokens())
	require.NoError(t, err)

	require.NoError(t, client.Health(context.Background()))
	assert.Empty(t, gotAuth)
}

func TestErrorDecoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"invalid credentials"}`))
	}))
	defer srv.Close()

	client, err := New(srv.URL, nil)
	require.NoError(t, err)

	_, err = client.Login(context.Background(), Credentials{Email: "a@b.c", Password: "bad"})
	require.Error(t, err)
	assert.True(t, IsAuth(err))
	assert.Contains(t, err.Error(), "invalid credentials")
}

func TestNotFoundError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	client, err := New(srv.URL, nil)
	require.NoError(t, err)

	_, err = client.GetRun(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.False(t, IsAuth(err))
}

func TestListSuggestionsStatusQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/suggestions/runs/run-1/suggestions", r.URL.Path)
		assert.Equal(t, "pending", r.URL.Query().Get("status"))
		_ = json.NewEncoder(w).Encode(SuggestionList{
			RunID: "run-1",
			Total: 1,
			Suggestions: []suggest.Suggestion{
				{ID: "s1", Before: "teh", After: "the", Status: suggest.StatusPending},
			},
		})
	}))
	defer srv.Close()

	client, err := New(srv.URL, nil)
	require.NoError(t, err)

	list, err := client.ListSuggestions(context.Background(), "run-1", suggest.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)
	require.Len(t, list.Suggestions, 1)
	assert.Equal(t, "teh", list.Suggestions[0].Before)
}

func TestBulkUpdateBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/suggestions/runs/run-1/suggestions/bulk-update", r.URL.Path)

		var body struct {
			SuggestionIDs []string `json:"suggestion_ids"`
			Status        string   `json:"status"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []string{"a", "b"}, body.SuggestionIDs)
		assert.Equal(t, "accepted", body.Status)

		_ = json.NewEncoder(w).Encode(BulkUpdateResult{Updated: 2, TotalRequested: 2})
	}))
	defer srv.Close()

	client, err := New(srv.URL, nil)
	require.NoError(t, err)

	result, err := client.BulkUpdate(context.Background(), "run-1", []string{"a", "b"}, suggest.StatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Updated)
}

func TestGetArtifactRawBytes(t *testing.T) {
	body := "{\"original\":\"teh\",\"corrected\":\"the\"}\nnot-json\n"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/runs/artifacts/run-1/doc.corrections.jsonl", r.URL.Path)
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	client, err := New(srv.URL, nil)
	require.NoError(t, err)

	data, err := client.GetArtifact(context.Background(), "run-1", "doc.corrections.jsonl")
	require.NoError(t, err)
	assert.Equal(t, body, string(data))

	rows := suggest.ParseJSONLString(string(data))
	require.Len(t, rows, 1)
	assert.Equal(t, "the", rows[0].Corrected)
}

func TestExportAcceptedIsPost(t *testing.T) {
	blob := []byte{0x50, 0x4b, 0x03, 0x04} // zip magic, as a DOCX body would start
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		_, _ = w.Write(blob)
	}))
	defer srv.Close()

	client, err := New(srv.URL, nil)
	require.NoError(t, err)

	data, err := client.ExportAccepted(context.Background(), "run-1")
	require.NoError(t, err)
	assert.Equal(t, blob, data)
}

func TestBaseURLTrailingSlash(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client, err := New(srv.URL+"/", nil)
	require.NoError(t, err)
	require.NoError(t, client.Health(context.Background()))
}
