package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/alimgiray/secmetrics/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestSegmentAt(t *testing.T) {
	url := "https://api.github.com/orgA/repoB/branches/main/protection"

	testCases := []struct {
		name     string
		url      string
		index    int
		expected string
	}{
		{
			name:     "Org segment",
			url:      url,
			index:    urlSegmentOrg,
			expected: "orgA",
		},
		{
			name:     "Repo segment",
			url:      url,
			index:    urlSegmentRepo,
			expected: "repoB",
		},
		{
			name:     "Branch segment",
			url:      url,
			index:    urlSegmentBranch,
			expected: "main",
		},
		{
			name:     "Out of range returns empty string",
			url:      "https://api.github.com/orgA",
			index:    urlSegmentBranch,
			expected: "",
		},
		{
			name:     "Empty url",
			url:      "",
			index:    urlSegmentOrg,
			expected: "",
		},
		{
			name:     "Negative index",
			url:      url,
			index:    -1,
			expected: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, segmentAt(tc.url, tc.index))
		})
	}
}

func TestBranchProtectionProjection(t *testing.T) {
	service := &BranchProtectionService{}
	date := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)

	objects := []*models.GithubObject{
		models.NewGithubObject(date,
			"https://api.github.com/orgA/repoB/branches/main/protection",
			json.RawMessage(`{"name": "main", "protected": true}`)),
		models.NewGithubObject(date,
			"https://api.github.com/orgs/acme",
			json.RawMessage(`{"login": "acme", "has_organization_projects": true}`)),
		models.NewGithubObject(date,
			"https://api.github.com/orgC/repoD/branches/dev/protection",
			json.RawMessage(`{"name": "dev", "protected": null}`)),
	}

	statuses, err := service.project(objects)

	assert.NoError(t, err)
	assert.Len(t, statuses, 1, "only rows with a non-null protected flag should appear")

	status := statuses[0]
	assert.Equal(t, "main", status.Name)
	assert.True(t, status.Protected)
	assert.Equal(t, "https://api.github.com/orgA/repoB/branches/main/protection", status.URL)
	assert.Equal(t, "orgA", status.Org)
	assert.Equal(t, "repoB", status.Repo)
	assert.Equal(t, "main", status.Branch)
	assert.True(t, status.Date.Equal(date))
}

func TestBranchProtectionProjectionShortURL(t *testing.T) {
	service := &BranchProtectionService{}
	date := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)

	objects := []*models.GithubObject{
		models.NewGithubObject(date, "https://api.github.com/orgA",
			json.RawMessage(`{"name": "main", "protected": false}`)),
	}

	statuses, err := service.project(objects)

	assert.NoError(t, err)
	assert.Len(t, statuses, 1)
	assert.Equal(t, "orgA", statuses[0].Org)
	assert.Equal(t, "", statuses[0].Repo, "missing segments should be empty, not an error")
	assert.Equal(t, "", statuses[0].Branch)
	assert.False(t, statuses[0].Protected)
}

func TestBranchProtectionProjectionIdempotent(t *testing.T) {
	service := &BranchProtectionService{}
	date := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)

	objects := []*models.GithubObject{
		models.NewGithubObject(date,
			"https://api.github.com/orgA/repoB/branches/main/protection",
			json.RawMessage(`{"name": "main", "protected": true}`)),
		models.NewGithubObject(date,
			"https://api.github.com/orgC/repoD/branches/main/protection",
			json.RawMessage(`{"name": "main", "protected": false}`)),
	}

	first, err := service.project(objects)
	assert.NoError(t, err)
	second, err := service.project(objects)
	assert.NoError(t, err)

	assert.Equal(t, first, second, "re-running the projection over unchanged input should yield identical results")
}

func TestBranchProtectionProjectionMalformedBody(t *testing.T) {
	service := &BranchProtectionService{}
	date := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)

	objects := []*models.GithubObject{
		models.NewGithubObject(date, "https://api.github.com/x",
			json.RawMessage(`{"protected": "yes"}`)),
	}

	_, err := service.project(objects)

	assert.Error(t, err, "wrongly typed body fields should fail the report")
}

func TestBranchProtectionProjectionEmpty(t *testing.T) {
	service := &BranchProtectionService{}

	statuses, err := service.project(nil)

	assert.NoError(t, err)
	assert.Empty(t, statuses)
}
