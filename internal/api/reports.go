package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/history"
	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/logger"
	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/models"
	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/report"
	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/writer"
)

// HistoryResponse lists a user's recent reports.
type HistoryResponse struct {
	Success bool            `json:"success"`
	Reports []history.Entry `json:"reports"`
	Count   int             `json:"count"`
}

// handleCreateReport generates a report over the user's transactions and
// answers with the exported artifact.
func (s *Server) handleCreateReport(c *fiber.Ctx) error {
	var cfg models.ReportConfig
	if err := c.BodyParser(&cfg); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	userID := c.Params("userID")
	txns, err := s.repo.List(c.UserContext(), userID)
	if err != nil {
		return err
	}

	r, err := s.generator.Generate(cfg, txns, s.Now())
	if errors.Is(err, report.ErrNilTransactions) {
		return err
	}
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	art, err := writer.Export(r, r.Config.Format)
	if err != nil {
		return err
	}
	s.history.Add(userID, history.NewEntry(r, r.Config.Format, len(art.Body)))

	log := logger.FromContext(c.UserContext())
	log.Info().
		Str("report_id", r.ID).
		Str("type", string(r.Type)).
		Str("format", string(r.Config.Format)).
		Int("transactions", len(r.Transactions)).
		Msg("Report generated")
	return sendArtifact(c, r.ID, art)
}

func (s *Server) handleListReports(c *fiber.Ctx) error {
	entries := s.history.List(c.Params("userID"))
	return c.JSON(HistoryResponse{Success: true, Reports: entries, Count: len(entries)})
}

func (s *Server) handleClearReports(c *fiber.Ctx) error {
	s.history.Clear(c.Params("userID"))
	return c.JSON(fiber.Map{"success": true})
}

// handleDownloadReport re-exports a report from history without
// recomputing it. ?format= overrides the original format.
func (s *Server) handleDownloadReport(c *fiber.Ctx) error {
	entry, ok := s.history.Get(c.Params("userID"), c.Params("reportID"))
	if !ok || entry.Report == nil {
		return fiber.NewError(fiber.StatusNotFound, "report not found")
	}

	format := entry.Format
	if f := c.Query("format"); f != "" {
		format = models.Format(f)
	}
	art, err := writer.Export(entry.Report, format)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return sendArtifact(c, entry.ID, art)
}

func sendArtifact(c *fiber.Ctx, reportID string, art writer.Artifact) error {
	c.Attachment(art.Filename)
	c.Set(fiber.HeaderContentType, art.MIMEType)
	c.Set("X-Report-ID", reportID)
	return c.Send(art.Body)
}
