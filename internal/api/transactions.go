package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/filter"
	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/logger"
	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/models"
	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/store"
)

// TransactionsResponse lists transactions or candidates.
type TransactionsResponse struct {
	Success      bool                 `json:"success"`
	Transactions []models.Transaction `json:"transactions"`
	Count        int                  `json:"count"`
}

// TransactionResponse returns a single transaction.
type TransactionResponse struct {
	Success     bool               `json:"success"`
	Transaction models.Transaction `json:"transaction"`
}

// SavedResponse reports how many transactions were persisted.
type SavedResponse struct {
	Success bool `json:"success"`
	Saved   int  `json:"saved"`
}

// createRequest accepts either {"transactions": [...]} or a bare array.
type createRequest struct {
	Transactions []models.Transaction `json:"transactions"`
}

// handleListTransactions supports ?type=credit|debit and a
// case-insensitive ?search= over descriptions.
func (s *Server) handleListTransactions(c *fiber.Ctx) error {
	txns, err := s.repo.List(c.UserContext(), c.Params("userID"))
	if err != nil {
		return err
	}

	var preds []filter.Predicate
	if t := c.Query("type"); t != "" && !strings.EqualFold(t, models.FilterAll) {
		typ, err := models.ParseTxType(t)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		preds = append(preds, filter.ByType(typ))
	}
	if term := c.Query("search"); term != "" {
		preds = append(preds, filter.BySearch(term))
	}
	if len(preds) > 0 {
		txns = filter.Select(txns, filter.And(preds...))
	}

	return c.JSON(TransactionsResponse{Success: true, Transactions: txns, Count: len(txns)})
}

func (s *Server) handleCreateTransactions(c *fiber.Ctx) error {
	var req createRequest
	body := c.Body()
	if len(body) > 0 && body[0] == '[' {
		if err := c.BodyParser(&req.Transactions); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
	} else if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if len(req.Transactions) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "No transactions to save")
	}

	n, err := s.repo.Create(c.UserContext(), c.Params("userID"), req.Transactions)
	if err != nil {
		return storeError(err)
	}
	log := logger.FromContext(c.UserContext())
	log.Info().Int("saved", n).Msg("Transactions created")
	return c.Status(fiber.StatusCreated).JSON(SavedResponse{Success: true, Saved: n})
}

func (s *Server) handleUpdateTransaction(c *fiber.Ctx) error {
	var patch models.Patch
	if err := c.BodyParser(&patch); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	txn, err := s.repo.Update(c.UserContext(), c.Params("userID"), c.Params("id"), patch)
	if err != nil {
		return storeError(err)
	}
	return c.JSON(TransactionResponse{Success: true, Transaction: txn})
}

func (s *Server) handleDeleteTransaction(c *fiber.Ctx) error {
	if err := s.repo.Delete(c.UserContext(), c.Params("userID"), c.Params("id")); err != nil {
		return storeError(err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// storeError maps repository sentinels to HTTP errors.
func storeError(err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrInvalid):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return err
	}
}
