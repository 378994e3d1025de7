package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/alimgiray/secmetrics/internal/models"
	"github.com/alimgiray/secmetrics/internal/repositories"
)

type TwoFactorService struct {
	githubObjectRepo *repositories.GithubObjectRepository
}

func NewTwoFactorService(githubObjectRepo *repositories.GithubObjectRepository) *TwoFactorService {
	return &TwoFactorService{
		githubObjectRepo: githubObjectRepo,
	}
}

// Report returns the 2FA enforcement status of every organization present at
// the most recent snapshot date, one row per distinct (date, organization,
// status) tuple, sorted ascending by organization login (byte-wise, not
// locale-aware). An empty table yields an empty report, not an error.
func (s *TwoFactorService) Report() ([]*models.OrgTwoFactorStatus, error) {
	latest, err := s.githubObjectRepo.GetLatestDate()
	if err != nil {
		return nil, fmt.Errorf("failed to get latest snapshot date: %w", err)
	}
	if latest == nil {
		return []*models.OrgTwoFactorStatus{}, nil
	}

	objects, err := s.githubObjectRepo.ListByDate(*latest)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots at %s: %w", latest, err)
	}

	return s.statusReport(objects)
}

type twoFactorKey struct {
	date         time.Time
	organization string
	status       models.TwoFactorStatus
}

// statusReport builds the report rows from the latest-date snapshots:
// organization records only, tri-state status mapping, duplicate tuples
// collapsed, sorted by organization login.
func (s *TwoFactorService) statusReport(objects []*models.GithubObject) ([]*models.OrgTwoFactorStatus, error) {
	statuses := make([]*models.OrgTwoFactorStatus, 0, len(objects))
	seen := make(map[twoFactorKey]bool)

	for _, obj := range objects {
		classified, err := obj.Classify()
		if err != nil {
			return nil, fmt.Errorf("failed to classify snapshot %s: %w", obj.ID, err)
		}
		if classified.Kind != models.ObjectKindOrganization {
			continue
		}

		org := classified.Organization
		key := twoFactorKey{
			date:         obj.Date.UTC(),
			organization: org.GetLogin(),
			status:       models.TwoFactorStatusFromFlag(org.TwoFactorRequirementEnabled),
		}
		if seen[key] {
			continue
		}
		seen[key] = true

		statuses = append(statuses, &models.OrgTwoFactorStatus{
			Date:         obj.Date,
			Organization: key.organization,
			TwoFactor:    key.status,
		})
	}

	sort.Slice(statuses, func(i, j int) bool {
		return statuses[i].Organization < statuses[j].Organization
	})

	return statuses, nil
}
