package db

import (
	"context"
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jordan/talentbridge/internal/ats"
)

// maxSnippetChars bounds the job description excerpt stored with a report.
const maxSnippetChars = 500

// reportColumns is the shared SELECT list for report queries.
const reportColumns = `id, user_id, resume_name, score, level, keyword_match_percent,
	        breakdown_json, section_status_json, checklist_json, issues_json,
	        fixes_json, examples_json, job_desc_snippet, schema_version, created_at`

// Snippet truncates a job description to the stored excerpt length,
// never splitting a multibyte rune.
func Snippet(jobDescription string) string {
	if len(jobDescription) <= maxSnippetChars {
		return jobDescription
	}
	cut := maxSnippetChars
	for cut > 0 && !utf8.RuneStart(jobDescription[cut]) {
		cut--
	}
	return jobDescription[:cut]
}

// SaveReport persists a scoring result and returns the stored row. userID
// is nil for guest submissions.
func (db *DB) SaveReport(ctx context.Context, userID *uuid.UUID, resumeName, jobDescription string, result *ats.Result) (*Report, error) {
	breakdown, err := json.Marshal(result.Breakdown)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal breakdown: %w", err)
	}
	sections, err := json.Marshal(result.SectionStatus)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal section status: %w", err)
	}
	checklist, err := json.Marshal(result.Checklist)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal checklist: %w", err)
	}
	issues, err := json.Marshal(result.Issues)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal issues: %w", err)
	}
	fixes, err := json.Marshal(result.Fixes)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal fixes: %w", err)
	}
	examples, err := json.Marshal(result.Examples)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal examples: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO ats_reports (user_id, resume_name, score, level, keyword_match_percent,
		        breakdown_json, section_status_json, checklist_json, issues_json,
		        fixes_json, examples_json, job_desc_snippet, schema_version)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 RETURNING id`,
		userID, resumeName, result.Score, result.Level, result.KeywordMatchPercent,
		breakdown, sections, checklist, issues, fixes, examples,
		Snippet(jobDescription), result.SchemaVersion,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to save report: %w", err)
	}

	return db.GetReport(ctx, id, userID)
}

// GetReport retrieves a single report by ID. When userID is non-nil the
// report must belong to that user; guests can only read guest reports.
func (db *DB) GetReport(ctx context.Context, id uuid.UUID, userID *uuid.UUID) (*Report, error) {
	query := `SELECT ` + reportColumns + ` FROM ats_reports WHERE id = $1 AND user_id IS NULL`
	args := []any{id}
	if userID != nil {
		query = `SELECT ` + reportColumns + ` FROM ats_reports WHERE id = $1 AND user_id = $2`
		args = append(args, *userID)
	}

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if rows.Err() != nil {
			return nil, fmt.Errorf("failed to get report: %w", rows.Err())
		}
		return nil, nil
	}
	return scanReport(rows)
}

// ListReports returns the most recent reports, newest first, capped at
// limit. With a userID it lists that user's history; guests see the
// latest reports across all owners.
func (db *DB) ListReports(ctx context.Context, userID *uuid.UUID, limit int) ([]*Report, error) {
	query := `SELECT ` + reportColumns + `
		 FROM ats_reports
		 ORDER BY created_at DESC LIMIT $1`
	args := []any{limit}
	if userID != nil {
		query = `SELECT ` + reportColumns + `
		 FROM ats_reports WHERE user_id = $1
		 ORDER BY created_at DESC LIMIT $2`
		args = []any{*userID, limit}
	}

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var reports []*Report
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("failed to list reports: %w", rows.Err())
	}
	return reports, nil
}

func scanReport(rows pgx.Rows) (*Report, error) {
	var r Report
	var breakdown, sections, checklist, issues, fixes, examples []byte

	err := rows.Scan(&r.ID, &r.UserID, &r.ResumeName, &r.Score, &r.Level,
		&r.KeywordMatchPercent, &breakdown, &sections, &checklist, &issues,
		&fixes, &examples, &r.JobDescSnippet, &r.SchemaVersion, &r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to scan report: %w", err)
	}

	r.Breakdown = decodeJSON[ats.Breakdown](breakdown)
	r.Sections = decodeJSON[ats.SectionStatus](sections)
	r.Checklist = decodeJSON[[]ats.ChecklistItem](checklist)
	r.Issues = decodeJSON[[]ats.Issue](issues)
	r.Fixes = decodeJSON[[]string](fixes)
	r.Examples = decodeJSON[[]ats.Example](examples)
	return &r, nil
}
