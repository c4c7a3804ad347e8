package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/logger"
	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/models"
	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/review"
)

func (s *Server) handleListCandidates(c *fiber.Ctx) error {
	txns := s.reviews.Session(c.Params("userID")).Candidates()
	return c.JSON(TransactionsResponse{Success: true, Transactions: txns, Count: len(txns)})
}

func (s *Server) handleEditCandidate(c *fiber.Ctx) error {
	var patch models.Patch
	if err := c.BodyParser(&patch); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	txn, err := s.reviews.Session(c.Params("userID")).Edit(c.Params("id"), patch)
	if errors.Is(err, review.ErrCandidateNotFound) {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return c.JSON(TransactionResponse{Success: true, Transaction: txn})
}

func (s *Server) handleDeleteCandidate(c *fiber.Ctx) error {
	err := s.reviews.Session(c.Params("userID")).Delete(c.Params("id"))
	if errors.Is(err, review.ErrCandidateNotFound) {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

// handleMergeCandidates saves the pending candidates as one batch. On a
// store failure the candidates stay pending for another attempt.
func (s *Server) handleMergeCandidates(c *fiber.Ctx) error {
	userID := c.Params("userID")
	n, err := s.reviews.Session(userID).Merge(c.UserContext(), s.repo, userID)
	if errors.Is(err, review.ErrNothingToMerge) {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err != nil {
		return storeError(err)
	}
	log := logger.FromContext(c.UserContext())
	log.Info().Int("saved", n).Msg("Candidates merged")
	return c.JSON(SavedResponse{Success: true, Saved: n})
}
