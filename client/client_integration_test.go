//go:build integration

package client_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/adamwoolhether/quack/client"
)

type ghRepo struct {
	FullName string `json:"full_name" validate:"required"`
	Stars    int    `json:"stargazers_count"`
}

func (r *ghRepo) FromBytes(b []byte) bool { return client.DecodeStruct(r, b) }

func githubClient(t *testing.T) *client.Client {
	t.Helper()

	c, err := client.Build("https://api.github.com",
		client.WithUserAgent("quack-integration/1.0"),
		client.WithDefaultHeaders(map[string]string{"Accept": "application/vnd.github+json"}),
		client.WithThrottle(1, 2),
	)
	if err != nil {
		t.Fatalf("creating client: %v", err)
	}

	return c
}

func TestIntegration_Respond_GitHubRepo(t *testing.T) {
	c := githubClient(t)

	r, err := client.Respond[ghRepo](t.Context(), c, client.MethodGet, "/repos/golang/go")
	if err != nil {
		t.Fatalf("fetching repo: %v", err)
	}

	if r.FullName != "golang/go" {
		t.Errorf("expected full name %q, got %q", "golang/go", r.FullName)
	}
	if r.Stars == 0 {
		t.Error("expected a non-zero star count")
	}
}

func TestIntegration_RespondWithArray_GitHubOrgRepos(t *testing.T) {
	c := githubClient(t)

	path := c.BuildPath("/orgs/golang/repos", map[string]string{"per_page": "5"})
	repos, err := client.RespondWithArray[ghRepo](t.Context(), c, client.MethodGet, path)
	if err != nil {
		t.Fatalf("listing repos: %v", err)
	}

	if len(repos) == 0 || len(repos) > 5 {
		t.Errorf("expected 1 to 5 repos, got %d", len(repos))
	}
}

func TestIntegration_Respond_GitHubNotFound(t *testing.T) {
	c := githubClient(t)

	_, err := client.Respond[ghRepo](t.Context(), c, client.MethodGet, "/repos/golang/this-repo-does-not-exist")

	var sce *client.StatusCodeError
	if !errors.As(err, &sce) {
		t.Fatalf("expected *StatusCodeError, got: %v", err)
	}
	if sce.StatusCode != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, sce.StatusCode)
	}
}
