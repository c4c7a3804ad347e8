package review

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/models"
	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/store"
)

type failingRepo struct {
	store.Repository
}

func (failingRepo) Create(context.Context, string, []models.Transaction) (int, error) {
	return 0, errors.New("backend unavailable")
}

func candidates() []models.Transaction {
	return []models.Transaction{
		{ID: "ext-1", Date: models.MustParseDate("2024-03-05"), Description: "UPI DEBIT - Google Play", Amount: 250, Type: models.Debit, Frequency: models.Irregular},
		{ID: "ext-2", Date: models.MustParseDate("2024-03-06"), Description: "UPI CREDIT - Ravi", Amount: 1000, Type: models.Credit, Frequency: models.Irregular},
	}
}

func TestSession_EditAndDelete(t *testing.T) {
	var s Session
	s.Add(candidates())

	amount := 300.0
	typ := models.Credit
	got, err := s.Edit("ext-1", models.Patch{Amount: &amount, Type: &typ})
	require.NoError(t, err)
	assert.Equal(t, 300.0, got.Amount)
	assert.Equal(t, models.Credit, got.Type)

	_, err = s.Edit("missing", models.Patch{Amount: &amount})
	assert.ErrorIs(t, err, ErrCandidateNotFound)

	neg := -1.0
	_, err = s.Edit("ext-1", models.Patch{Amount: &neg})
	assert.Error(t, err)

	require.NoError(t, s.Delete("ext-2"))
	assert.ErrorIs(t, s.Delete("ext-2"), ErrCandidateNotFound)

	list := s.Candidates()
	require.Len(t, list, 1)
	assert.Equal(t, 300.0, list[0].Amount)
}

func TestSession_MergeSuccessClears(t *testing.T) {
	ctx := context.Background()
	repo := store.NewMemory()
	var s Session
	s.Add(candidates())

	n, err := s.Merge(ctx, repo, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Empty(t, s.Candidates())

	saved, err := repo.List(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, saved, 2)

	_, err = s.Merge(ctx, repo, "u1")
	assert.ErrorIs(t, err, ErrNothingToMerge)
}

func TestSession_FailedMergeKeepsCandidates(t *testing.T) {
	var s Session
	s.Add(candidates())

	_, err := s.Merge(context.Background(), failingRepo{}, "u1")
	require.Error(t, err)
	assert.Equal(t, candidates(), s.Candidates())
}

func TestSession_Replace(t *testing.T) {
	var s Session
	s.Add(candidates())
	s.Replace(candidates()[:1])
	assert.Len(t, s.Candidates(), 1)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	a := r.Session("u1")
	assert.Same(t, a, r.Session("u1"))
	assert.NotSame(t, a, r.Session("u2"))
}
