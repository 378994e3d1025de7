package services

import (
	"fmt"
	"strings"

	"github.com/alimgiray/secmetrics/internal/models"
	"github.com/alimgiray/secmetrics/internal/repositories"
)

// Positions of the org, repo and branch segments in a slash-split snapshot
// URL, e.g. https://api.github.com/orgA/repoB/branches/main/protection
// splits to ["https:", "", "api.github.com", "orgA", "repoB", "branches",
// "main", "protection"].
const (
	urlSegmentOrg    = 3
	urlSegmentRepo   = 4
	urlSegmentBranch = 6
)

type BranchProtectionService struct {
	githubObjectRepo *repositories.GithubObjectRepository
}

func NewBranchProtectionService(githubObjectRepo *repositories.GithubObjectRepository) *BranchProtectionService {
	return &BranchProtectionService{
		githubObjectRepo: githubObjectRepo,
	}
}

// Report emits one row per snapshot whose body carries a non-null protected
// flag, across all snapshot dates. Rows are not deduplicated or ordered;
// callers sort if they need an order.
func (s *BranchProtectionService) Report() ([]*models.BranchProtectionStatus, error) {
	objects, err := s.githubObjectRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list github objects: %w", err)
	}

	return s.project(objects)
}

// project flattens branch-protection snapshots into report rows
func (s *BranchProtectionService) project(objects []*models.GithubObject) ([]*models.BranchProtectionStatus, error) {
	statuses := make([]*models.BranchProtectionStatus, 0, len(objects))

	for _, obj := range objects {
		classified, err := obj.Classify()
		if err != nil {
			return nil, fmt.Errorf("failed to classify snapshot %s: %w", obj.ID, err)
		}
		if classified.Kind != models.ObjectKindBranchProtection {
			continue
		}

		statuses = append(statuses, &models.BranchProtectionStatus{
			Name:      classified.Branch.GetName(),
			Protected: classified.Branch.GetProtected(),
			URL:       obj.URL,
			Org:       segmentAt(obj.URL, urlSegmentOrg),
			Repo:      segmentAt(obj.URL, urlSegmentRepo),
			Branch:    segmentAt(obj.URL, urlSegmentBranch),
			Date:      obj.Date,
		})
	}

	return statuses, nil
}

// segmentAt returns the i-th slash-delimited segment of url, or an empty
// string when the url has fewer segments. Short URLs must never fail the
// projection.
func segmentAt(url string, i int) string {
	segments := strings.Split(url, "/")
	if i < 0 || i >= len(segments) {
		return ""
	}
	return segments[i]
}
