package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/go-github/v57/github"
	"github.com/google/uuid"
)

// ObjectKind represents the kind of GitHub API snapshot stored in a row
type ObjectKind string

const (
	ObjectKindBranchProtection ObjectKind = "branch_protection"
	ObjectKindOrganization     ObjectKind = "organization"
	ObjectKindOther            ObjectKind = "other"
)

// GithubObject represents one timestamped snapshot of a GitHub API response.
// The table is append-only; rows are never updated or deleted by this service.
type GithubObject struct {
	ID        string          `json:"id"`
	Date      time.Time       `json:"date"`
	URL       string          `json:"url"`
	Body      json.RawMessage `json:"body"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewGithubObject creates a new GithubObject with a generated UUID
func NewGithubObject(date time.Time, url string, body json.RawMessage) *GithubObject {
	return &GithubObject{
		ID:        uuid.New().String(),
		Date:      date,
		URL:       url,
		Body:      body,
		CreatedAt: time.Now(),
	}
}

// ClassifiedObject holds the result of decoding a snapshot body into its
// concrete record type. Exactly one of Branch/Organization is set, matching Kind.
type ClassifiedObject struct {
	Kind         ObjectKind
	Branch       *github.Branch
	Organization *github.Organization
}

// Classify decodes the snapshot body into a branch-protection record, an
// organization record, or Other. The row kind is duck-typed by field presence:
// a non-null "protected" marks a branch record, a non-null
// "has_organization_projects" marks an organization record. Bodies matching
// neither shape are classified as Other, not rejected. A body whose fields
// carry the wrong types is a hard error.
func (o *GithubObject) Classify() (*ClassifiedObject, error) {
	var branch github.Branch
	if err := json.Unmarshal(o.Body, &branch); err != nil {
		return nil, fmt.Errorf("invalid snapshot body for %s: %w", o.URL, err)
	}
	if branch.Protected != nil {
		return &ClassifiedObject{Kind: ObjectKindBranchProtection, Branch: &branch}, nil
	}

	var org github.Organization
	if err := json.Unmarshal(o.Body, &org); err != nil {
		return nil, fmt.Errorf("invalid snapshot body for %s: %w", o.URL, err)
	}
	if org.HasOrganizationProjects != nil {
		return &ClassifiedObject{Kind: ObjectKindOrganization, Organization: &org}, nil
	}

	return &ClassifiedObject{Kind: ObjectKindOther}, nil
}
