package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jordan/talentbridge/internal/ats"
	"github.com/jordan/talentbridge/internal/db"
	"github.com/jordan/talentbridge/internal/ingestion"
	"github.com/jordan/talentbridge/internal/schemas"
	"github.com/jordan/talentbridge/internal/server/middleware"
)

// maxUploadBytes bounds resume uploads.
const maxUploadBytes = 2 << 20 // 2MB

// ReportStore is the subset of db.DB the resume and report handlers
// depend on.
type ReportStore interface {
	SaveReport(ctx context.Context, userID *uuid.UUID, resumeName, jobDescription string, result *ats.Result) (*db.Report, error)
	GetReport(ctx context.Context, id uuid.UUID, userID *uuid.UUID) (*db.Report, error)
	ListReports(ctx context.Context, userID *uuid.UUID, limit int) ([]*db.Report, error)
}

// ResumeHandler scores uploaded resumes and persists the reports.
type ResumeHandler struct {
	store ReportStore
	log   *zap.Logger
}

// NewResumeHandler creates a new ResumeHandler.
func NewResumeHandler(store ReportStore, log *zap.Logger) *ResumeHandler {
	return &ResumeHandler{store: store, log: log}
}

// ScoreResponse wraps a scoring result with upload metadata.
type ScoreResponse struct {
	OK             bool      `json:"ok"`
	ReportID       uuid.UUID `json:"reportId"`
	ExtractedChars int       `json:"extractedChars"`
	*ats.Result
}

// Score handles POST /resume/score: a multipart upload with a "resume"
// file and an optional "jobDescription" field. Works for guests; an
// authenticated user gets the report attached to their history.
func (h *ResumeHandler) Score(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		errorResponse(w, http.StatusBadRequest, "Resume file is required (PDF/DOCX)")
		return
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		errorResponse(w, http.StatusBadRequest, "Resume file is required (PDF/DOCX)")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		errorResponse(w, http.StatusBadRequest, "Failed to read uploaded file")
		return
	}

	jobDescription := r.FormValue("jobDescription")
	contentType := header.Header.Get("Content-Type")

	text, err := ingestion.ExtractResumeText(data, header.Filename, contentType)
	if err != nil {
		var unsupported *ingestion.UnsupportedFormatError
		var tooShort *ingestion.TooShortError
		switch {
		case errors.As(err, &unsupported):
			errorResponse(w, http.StatusBadRequest, "Only PDF/DOCX allowed")
		case errors.As(err, &tooShort):
			errorResponse(w, http.StatusBadRequest,
				"Could not extract readable text from resume. Try another PDF/DOCX.")
		default:
			h.log.Error("resume extraction failed",
				zap.String("filename", header.Filename), zap.Error(err))
			errorResponse(w, http.StatusBadRequest,
				"Could not extract readable text from resume. Try another PDF/DOCX.")
		}
		return
	}

	result := ats.Score(text, jobDescription)

	if payload, err := json.Marshal(result); err == nil {
		if err := schemas.ValidateReport(payload); err != nil {
			h.log.Error("scoring result failed schema validation", zap.Error(err))
			errorResponse(w, http.StatusInternalServerError, "Failed to score resume")
			return
		}
	}

	userID := middleware.OptionalUserID(r)
	report, err := h.store.SaveReport(r.Context(), userID, header.Filename, jobDescription, result)
	if err != nil {
		h.log.Error("failed to save report", zap.Error(err))
		errorResponse(w, http.StatusInternalServerError, "Failed to save report")
		return
	}

	h.log.Info("resume scored",
		zap.String("resume", header.Filename),
		zap.Int("score", result.Score),
		zap.String("level", string(result.Level)),
		zap.Bool("authenticated", userID != nil))

	jsonResponse(w, http.StatusOK, ScoreResponse{
		OK:             true,
		ReportID:       report.ID,
		ExtractedChars: len(text),
		Result:         result,
	})
}
