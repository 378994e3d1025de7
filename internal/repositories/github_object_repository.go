package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alimgiray/secmetrics/internal/models"
)

// Dates are stored as RFC3339 UTC strings so that MAX(date) compares
// chronologically without relying on driver-level time conversion.
const dateFormat = time.RFC3339

type GithubObjectRepository struct {
	db *sql.DB
}

func NewGithubObjectRepository(db *sql.DB) *GithubObjectRepository {
	return &GithubObjectRepository{db: db}
}

// Create appends a new snapshot row
func (r *GithubObjectRepository) Create(obj *models.GithubObject) error {
	query := `
		INSERT INTO github_object (id, date, url, body, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		obj.ID, obj.Date.UTC().Format(dateFormat), obj.URL, string(obj.Body),
		obj.CreatedAt.UTC().Format(dateFormat),
	)

	return err
}

// GetLatestDate returns the most recent snapshot date in the table, or nil
// when the table is empty
func (r *GithubObjectRepository) GetLatestDate() (*time.Time, error) {
	query := `SELECT MAX(date) FROM github_object`

	var raw sql.NullString
	if err := r.db.QueryRow(query).Scan(&raw); err != nil {
		return nil, err
	}
	if !raw.Valid {
		return nil, nil
	}

	date, err := time.Parse(dateFormat, raw.String)
	if err != nil {
		return nil, fmt.Errorf("unparseable date %q in github_object: %w", raw.String, err)
	}

	return &date, nil
}

// ListByDate retrieves all snapshots taken at the given date
func (r *GithubObjectRepository) ListByDate(date time.Time) ([]*models.GithubObject, error) {
	query := `
		SELECT id, date, url, body, created_at
		FROM github_object WHERE date = ?
	`

	rows, err := r.db.Query(query, date.UTC().Format(dateFormat))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanObjects(rows)
}

// ListAll retrieves every snapshot in the table
func (r *GithubObjectRepository) ListAll() ([]*models.GithubObject, error) {
	query := `
		SELECT id, date, url, body, created_at
		FROM github_object ORDER BY date ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanObjects(rows)
}

// Count returns the number of snapshot rows
func (r *GithubObjectRepository) Count() (int, error) {
	query := `SELECT COUNT(*) FROM github_object`

	var count int
	err := r.db.QueryRow(query).Scan(&count)
	return count, err
}

func scanObjects(rows *sql.Rows) ([]*models.GithubObject, error) {
	var objects []*models.GithubObject
	for rows.Next() {
		var rawDate, rawBody, rawCreatedAt string
		obj := &models.GithubObject{}
		err := rows.Scan(&obj.ID, &rawDate, &obj.URL, &rawBody, &rawCreatedAt)
		if err != nil {
			return nil, err
		}

		if obj.Date, err = time.Parse(dateFormat, rawDate); err != nil {
			return nil, fmt.Errorf("unparseable date %q in github_object: %w", rawDate, err)
		}
		if obj.CreatedAt, err = time.Parse(dateFormat, rawCreatedAt); err != nil {
			return nil, fmt.Errorf("unparseable created_at %q in github_object: %w", rawCreatedAt, err)
		}
		obj.Body = json.RawMessage(rawBody)

		objects = append(objects, obj)
	}

	return objects, rows.Err()
}
