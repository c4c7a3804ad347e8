package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/jobs"
	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/logger"
	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/models"
	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/parser"
	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/stats"
	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/writer"
)

// ExtractResponse is the JSON response from the extract endpoints.
type ExtractResponse struct {
	Success      bool                 `json:"success"`
	Error        string               `json:"error,omitempty"`
	JobID        string               `json:"jobId,omitempty"`
	Source       models.SourceKind    `json:"source,omitempty"`
	Bank         string               `json:"bank,omitempty"`
	Transactions []models.Transaction `json:"transactions"`
	Placeholder  bool                 `json:"placeholder"`
	CSV          string               `json:"csv,omitempty"`
	TotalDebit   float64              `json:"totalDebit"`
	TotalCredit  float64              `json:"totalCredit"`
	Count        int                  `json:"count"`
	DebugLines   []models.DebugLine   `json:"debugLines,omitempty"`
}

// HandleHealth reports liveness.
func HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"engine":  "fiber",
		"version": Version,
	})
}

// upload is one extraction request, either a file or pasted text.
type upload struct {
	filename string
	data     []byte
	text     string
}

func readUpload(c *fiber.Ctx) (upload, error) {
	if text := c.FormValue("extractedText"); text != "" {
		return upload{filename: "extracted.txt", text: text}, nil
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return upload{}, fiber.NewError(fiber.StatusBadRequest, "No file uploaded. Use form field 'file' or 'extractedText'.")
	}
	if _, err := parser.DetectSource(fh.Filename); err != nil {
		return upload{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	f, err := fh.Open()
	if err != nil {
		return upload{}, fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return upload{}, fmt.Errorf("failed to read upload: %w", err)
	}
	return upload{filename: fh.Filename, data: data}, nil
}

func (u upload) parse() (*models.StatementInfo, error) {
	if u.text != "" {
		return parser.ParseText(u.text)
	}
	return parser.ParseUpload(u.filename, u.data)
}

func (u upload) input() []byte {
	if u.text != "" {
		return []byte(u.text)
	}
	return u.data
}

// handleExtract parses an upload into candidates. Under /users/:userID the
// candidates replace the user's pending review set; async=true queues the
// work and answers 202 with the job id.
func (s *Server) handleExtract(c *fiber.Ctx) error {
	log := logger.FromContext(c.UserContext())
	userID := c.Params("userID")

	up, err := readUpload(c)
	if err != nil {
		return err
	}

	if async, _ := strconv.ParseBool(c.FormValue("async")); async {
		if s.publisher == nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "Background extraction is not enabled.")
		}
		job := &jobs.ExtractJob{UserID: userID, Filename: up.filename, Input: up.input()}
		job.Source, _ = parser.DetectSource(up.filename)
		if err := s.publisher.Publish(c.UserContext(), job); err != nil {
			return fmt.Errorf("failed to queue extraction: %w", err)
		}
		log.Info().Str("job_id", job.JobID).Str("filename", up.filename).Msg("Extraction queued")
		return c.Status(fiber.StatusAccepted).JSON(ExtractResponse{
			Success:      true,
			JobID:        job.JobID,
			Transactions: []models.Transaction{},
		})
	}

	info, err := up.parse()
	if err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, fmt.Sprintf("Extraction failed: %v", err))
	}
	if userID != "" {
		s.reviews.Session(userID).Replace(info.Transactions)
	}
	log.Info().
		Str("filename", up.filename).
		Str("bank", info.Bank).
		Int("candidates", len(info.Transactions)).
		Bool("placeholder", info.Placeholder).
		Msg("Statement extracted")

	resp, err := extractResponse(info)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func extractResponse(info *models.StatementInfo) (ExtractResponse, error) {
	var csvBuf bytes.Buffer
	if err := (&writer.CSVWriter{}).WriteTransactions(&csvBuf, info.Transactions); err != nil {
		return ExtractResponse{}, fmt.Errorf("CSV generation failed: %w", err)
	}

	txns := info.Transactions
	if txns == nil {
		txns = []models.Transaction{}
	}
	sum := stats.Summarize(txns)
	return ExtractResponse{
		Success:      true,
		Source:       info.Source,
		Bank:         info.Bank,
		Transactions: txns,
		Placeholder:  info.Placeholder,
		CSV:          csvBuf.String(),
		TotalDebit:   sum.TotalDebit,
		TotalCredit:  sum.TotalCredit,
		Count:        len(txns),
		DebugLines:   info.DebugLines,
	}, nil
}

// HandleJob is the worker-side handler for queued extractions. Completed
// jobs with a user replace that user's pending candidates.
func (s *Server) HandleJob(ctx context.Context, job *jobs.ExtractJob) (*models.StatementInfo, error) {
	info, err := parser.ParseUpload(job.Filename, job.Input)
	if err != nil {
		return nil, err
	}
	if job.UserID != "" {
		s.reviews.Session(job.UserID).Replace(info.Transactions)
		log := logger.FromContext(ctx)
		log.Info().Str("job_id", job.JobID).Int("candidates", len(info.Transactions)).Msg("Candidates ready for review")
	}
	return info, nil
}

// JobResponse wraps a job for JSON output.
type JobResponse struct {
	Success bool             `json:"success"`
	Job     *jobs.ExtractJob `json:"job"`
}

func (s *Server) handleGetJob(c *fiber.Ctx) error {
	if s.jobs == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "Background extraction is not enabled.")
	}
	job, err := s.jobs.Get(c.UserContext(), c.Params("jobID"))
	if errors.Is(err, jobs.ErrJobNotFound) {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	if err != nil {
		return err
	}
	return c.JSON(JobResponse{Success: true, Job: job})
}

func (s *Server) handleListJobs(c *fiber.Ctx) error {
	if s.jobs == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "Background extraction is not enabled.")
	}
	list, err := s.jobs.List(c.UserContext(), jobs.Filter{
		UserID: c.Params("userID"),
		Status: jobs.Status(c.Query("status")),
		Limit:  c.QueryInt("limit", 0),
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "jobs": list, "count": len(list)})
}
