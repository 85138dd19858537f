package server

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jordan/talentbridge/internal/db"
	"github.com/jordan/talentbridge/internal/rendering"
	"github.com/jordan/talentbridge/internal/server/middleware"
)

// historyLimit caps how many reports a history listing returns.
const historyLimit = 10

// ReportHandler serves scoring history and PDF downloads.
type ReportHandler struct {
	store ReportStore
	log   *zap.Logger

	// renderPDF is swappable in tests so no browser is needed.
	renderPDF func(r *http.Request, report *db.Report) ([]byte, error)
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(store ReportStore, log *zap.Logger) *ReportHandler {
	return &ReportHandler{
		store: store,
		log:   log,
		renderPDF: func(r *http.Request, report *db.Report) ([]byte, error) {
			return rendering.ReportPDF(r.Context(), report)
		},
	}
}

// HistoryResponse is the payload for GET /reports.
type HistoryResponse struct {
	OK      bool         `json:"ok"`
	History []*db.Report `json:"history"`
}

// History handles GET /reports: a logged-in user sees their own latest
// reports, a guest sees the shared latest reports across all owners.
func (h *ReportHandler) History(w http.ResponseWriter, r *http.Request) {
	userID := middleware.OptionalUserID(r)

	reports, err := h.store.ListReports(r.Context(), userID, historyLimit)
	if err != nil {
		h.log.Error("failed to list reports", zap.Error(err))
		errorResponse(w, http.StatusInternalServerError, "Failed to load history")
		return
	}
	if reports == nil {
		reports = []*db.Report{}
	}

	jsonResponse(w, http.StatusOK, HistoryResponse{OK: true, History: reports})
}

// DownloadPDF handles GET /reports/{id}/pdf. Requires login; users can
// only download their own reports.
func (h *ReportHandler) DownloadPDF(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "Login required to download PDF")
		return
	}

	reportID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid report id")
		return
	}

	report, err := h.store.GetReport(r.Context(), reportID, &userID)
	if err != nil {
		h.log.Error("failed to get report", zap.Error(err))
		errorResponse(w, http.StatusInternalServerError, "Failed to load report")
		return
	}
	if report == nil {
		errorResponse(w, HTTPStatus(&ErrReportNotFound{ReportID: reportID}), "Report not found")
		return
	}

	pdf, err := h.renderPDF(r, report)
	if err != nil {
		h.log.Error("failed to render report PDF",
			zap.String("report_id", reportID.String()), zap.Error(err))
		errorResponse(w, http.StatusInternalServerError, "Failed to render PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="%s-ATS-%s.pdf"`, pdfFilenameBase(report.ResumeName), report.ID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9-_.]`)

// pdfFilenameBase derives a safe, short download filename from the
// uploaded resume name.
func pdfFilenameBase(resumeName string) string {
	base := strings.Join(strings.Fields(resumeName), "-")
	base = unsafeFilenameChars.ReplaceAllString(base, "")
	if len(base) > 40 {
		base = base[:40]
	}
	if base == "" {
		base = "ats-report"
	}
	return base
}
