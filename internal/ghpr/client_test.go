package ghpr

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-github/v68/github"

	"github.com/dshills/revmob/internal/filter"
)

// testClient points a Client at an httptest server.
func testClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	gh := github.NewClient(nil)
	base, err := url.Parse(srv.URL + "/")
	if err != nil {
		t.Fatalf("parsing server URL: %v", err)
	}
	gh.BaseURL = base
	c, err := New(gh, "acme/mobile-app")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestSplitRepository(t *testing.T) {
	tests := []struct {
		in      string
		owner   string
		repo    string
		wantErr bool
	}{
		{"acme/mobile-app", "acme", "mobile-app", false},
		{"acme", "", "", true},
		{"/repo", "", "", true},
		{"owner/", "", "", true},
		{"", "", "", true},
	}
	for _, tt := range tests {
		owner, repo, err := splitRepository(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("splitRepository(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if owner != tt.owner || repo != tt.repo {
			t.Errorf("splitRepository(%q) = %q/%q, want %q/%q", tt.in, owner, repo, tt.owner, tt.repo)
		}
	}
}

func TestChangedFilesPaginates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/repos/acme/mobile-app/pulls/7/files") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		page := r.URL.Query().Get("page")
		w.Header().Set("Content-Type", "application/json")
		if page == "" || page == "1" {
			w.Header().Set("Link", fmt.Sprintf(`<%s/repos/acme/mobile-app/pulls/7/files?page=2>; rel="next"`, "http://"+r.Host))
			json.NewEncoder(w).Encode([]map[string]any{
				{"filename": "App.kt", "status": "modified", "additions": 3, "deletions": 1, "patch": "@@ -1 +1 @@"},
			})
			return
		}
		json.NewEncoder(w).Encode([]map[string]any{
			{"filename": "Home.swift", "status": "added", "additions": 10, "deletions": 0, "patch": "@@ -0 +1 @@"},
		})
	}))
	defer srv.Close()

	got, err := testClient(t, srv).ChangedFiles(context.Background(), 7)
	if err != nil {
		t.Fatalf("ChangedFiles: %v", err)
	}

	want := []filter.File{
		{Path: "App.kt", Status: "modified", Additions: 3, Deletions: 1, Patch: "@@ -1 +1 @@"},
		{Path: "Home.swift", Status: "added", Additions: 10, Deletions: 0, Patch: "@@ -0 +1 @@"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ChangedFiles mismatch (-want +got):\n%s", diff)
	}
}

func TestChangedFilesNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message": "Not Found"}`))
	}))
	defer srv.Close()

	_, err := testClient(t, srv).ChangedFiles(context.Background(), 99)
	if !IsNotFound(err) {
		t.Errorf("ChangedFiles error = %v, want NotFoundError", err)
	}
}

func TestPostComment(t *testing.T) {
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || !strings.HasSuffix(r.URL.Path, "/repos/acme/mobile-app/issues/7/comments") {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var c github.IssueComment
		json.NewDecoder(r.Body).Decode(&c)
		gotBody = c.GetBody()
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": 1}`))
	}))
	defer srv.Close()

	if err := testClient(t, srv).PostComment(context.Background(), 7, "review body"); err != nil {
		t.Fatalf("PostComment: %v", err)
	}
	if gotBody != "review body" {
		t.Errorf("posted body = %q, want %q", gotBody, "review body")
	}
}

func TestPostCommentPermissionDenied(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message": "Resource not accessible by integration"}`))
	}))
	defer srv.Close()

	err := testClient(t, srv).PostComment(context.Background(), 7, "body")
	if !IsPermission(err) {
		t.Errorf("PostComment error = %v, want PermissionError", err)
	}
}

func TestNewTokenClientRequiresToken(t *testing.T) {
	if _, err := NewTokenClient("", "acme/mobile-app"); err == nil {
		t.Error("NewTokenClient with empty token should return an error")
	}
}
