package repository_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nicolasbonaa/controle-compras/internal/model"
	"github.com/nicolasbonaa/controle-compras/internal/repository"
)

func setupRepo(t *testing.T) repository.SolicitacaoRepository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	repo := repository.NewSolicitacaoRepository(db)
	require.NoError(t, repo.EnsureSchema())
	return repo
}

func newSolicitacao(requester, department, costCenter, equipment, status string) *model.SolicitacaoModel {
	return &model.SolicitacaoModel{
		RequesterName: requester,
		Department:    department,
		CostCenter:    costCenter,
		Equipment:     equipment,
		Status:        status,
	}
}

func seed(t *testing.T, repo repository.SolicitacaoRepository, s *model.SolicitacaoModel) *model.SolicitacaoModel {
	t.Helper()
	require.NoError(t, repo.Create(s))
	return s
}

func TestCreateAssignsIDAndDefaults(t *testing.T) {
	repo := setupRepo(t)

	s := newSolicitacao("MARIA SILVA", "TI", "CC-100", "NOTEBOOK DELL", model.StatusPending)
	before := time.Now().UTC().Add(-time.Second)
	require.NoError(t, repo.Create(s))

	assert.Greater(t, s.ID, int64(0))
	assert.False(t, s.RequestedAt.IsZero())
	assert.True(t, s.RequestedAt.After(before))
}

func TestCreateKeepsSuppliedRequestedAt(t *testing.T) {
	repo := setupRepo(t)

	requestedAt := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	s := newSolicitacao("JOAO SOUZA", "FINANCEIRO", "CC-200", "MONITOR", model.StatusPending)
	s.RequestedAt = requestedAt
	require.NoError(t, repo.Create(s))

	found, err := repo.FindByID(s.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, requestedAt.Unix(), found.RequestedAt.Unix())
}

func TestCreateCollectsAllViolations(t *testing.T) {
	repo := setupRepo(t)

	err := repo.Create(newSolicitacao("", "", "CC-1", "TECLADO", "Unknown"))

	var verr *repository.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{
		"requesterName is required",
		"department is required",
		"status must be one of Pending, InProgress, Purchased, Cancelled",
	}, verr.Messages)
}

func TestFindByIDMissingReturnsNilNil(t *testing.T) {
	repo := setupRepo(t)

	found, err := repo.FindByID(9999)
	assert.NoError(t, err)
	assert.Nil(t, found)
}

func TestFindByFilterStatusAndDepartment(t *testing.T) {
	repo := setupRepo(t)
	seed(t, repo, newSolicitacao("ANA", "TI", "CC-1", "NOTEBOOK", model.StatusPending))
	seed(t, repo, newSolicitacao("BRUNO", "TI", "CC-1", "MOUSE", model.StatusPurchased))
	seed(t, repo, newSolicitacao("CARLA", "RH", "CC-2", "CADEIRA", model.StatusPending))

	items, err := repo.FindByFilter(repository.Filter{Status: model.StatusPending}, "", 0, 0)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	items, err = repo.FindByFilter(repository.Filter{Status: model.StatusPending, Department: "TI"}, "", 0, 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "ANA", items[0].RequesterName)
}

func TestFindByFilterSearchMatchesNameOrEquipment(t *testing.T) {
	repo := setupRepo(t)
	seed(t, repo, newSolicitacao("MARIA SILVA", "TI", "CC-1", "NOTEBOOK DELL", model.StatusPending))
	seed(t, repo, newSolicitacao("JOAO SOUZA", "TI", "CC-1", "MONITOR SILVA", model.StatusPending))
	seed(t, repo, newSolicitacao("PEDRO LIMA", "TI", "CC-1", "TECLADO", model.StatusPending))

	items, err := repo.FindByFilter(repository.Filter{Search: "silva"}, "", 0, 0)
	require.NoError(t, err)
	assert.Len(t, items, 2, "search is case-insensitive and matches either column")
}

func TestFindByFilterSearchEscapesWildcards(t *testing.T) {
	repo := setupRepo(t)
	seed(t, repo, newSolicitacao("ANA", "TI", "CC-1", "CABO 100% COBRE", model.StatusPending))
	seed(t, repo, newSolicitacao("BIA", "TI", "CC-1", "CABO 100 METROS", model.StatusPending))

	items, err := repo.FindByFilter(repository.Filter{Search: "100%"}, "", 0, 0)
	require.NoError(t, err)
	require.Len(t, items, 1, "%% must match literally, not as a wildcard")
	assert.Equal(t, "CABO 100% COBRE", items[0].Equipment)

	items, err = repo.FindByFilter(repository.Filter{Search: "100_"}, "", 0, 0)
	require.NoError(t, err)
	assert.Empty(t, items, "_ must match literally, not as a single-char wildcard")
}

func TestFindByFilterOrderingAndPagination(t *testing.T) {
	repo := setupRepo(t)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		s := newSolicitacao("REQ", "TI", "CC-1", "ITEM", model.StatusPending)
		s.RequestedAt = base.Add(time.Duration(i) * time.Hour)
		seed(t, repo, s)
	}

	items, err := repo.FindByFilter(repository.Filter{}, "", 2, 0)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.True(t, items[0].RequestedAt.After(items[1].RequestedAt), "default order is requested_at DESC")

	clause, err := repository.ParseOrderBy("requested_at:asc")
	require.NoError(t, err)
	items, err = repo.FindByFilter(repository.Filter{}, clause, 2, 2)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, base.Add(2*time.Hour).Unix(), items[0].RequestedAt.Unix())
}

func TestUpdatePartialFields(t *testing.T) {
	repo := setupRepo(t)
	s := seed(t, repo, newSolicitacao("ANA", "TI", "CC-1", "NOTEBOOK", model.StatusPending))

	department := "FINANCEIRO"
	require.NoError(t, repo.Update(s.ID, repository.UpdateFields{Department: &department}))

	found, err := repo.FindByID(s.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "FINANCEIRO", found.Department)
	assert.Equal(t, "ANA", found.RequesterName, "untouched fields keep their value")
}

func TestUpdateNoFieldsIsValidationError(t *testing.T) {
	repo := setupRepo(t)
	s := seed(t, repo, newSolicitacao("ANA", "TI", "CC-1", "NOTEBOOK", model.StatusPending))

	err := repo.Update(s.ID, repository.UpdateFields{})
	var verr *repository.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Error(), "no fields to update")
}

func TestUpdateMissingRowIsNotFound(t *testing.T) {
	repo := setupRepo(t)

	name := "ANA"
	err := repo.Update(12345, repository.UpdateFields{RequesterName: &name})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdateStatus(t *testing.T) {
	repo := setupRepo(t)
	s := seed(t, repo, newSolicitacao("ANA", "TI", "CC-1", "NOTEBOOK", model.StatusPending))

	require.NoError(t, repo.UpdateStatus(s.ID, model.StatusPurchased))

	found, err := repo.FindByID(s.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPurchased, found.Status)
}

func TestDelete(t *testing.T) {
	repo := setupRepo(t)
	s := seed(t, repo, newSolicitacao("ANA", "TI", "CC-1", "NOTEBOOK", model.StatusPending))

	require.NoError(t, repo.Delete(s.ID))

	found, err := repo.FindByID(s.ID)
	require.NoError(t, err)
	assert.Nil(t, found)

	assert.ErrorIs(t, repo.Delete(s.ID), repository.ErrNotFound)
}

func TestCountFollowsFilter(t *testing.T) {
	repo := setupRepo(t)
	seed(t, repo, newSolicitacao("ANA", "TI", "CC-1", "NOTEBOOK", model.StatusPending))
	seed(t, repo, newSolicitacao("BIA", "TI", "CC-1", "MOUSE", model.StatusPurchased))
	seed(t, repo, newSolicitacao("CAIO", "RH", "CC-2", "CADEIRA", model.StatusPending))

	total, err := repo.Count(repository.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	total, err = repo.Count(repository.Filter{Status: model.StatusPending})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestStatusBreakdownOrderedByCountDesc(t *testing.T) {
	repo := setupRepo(t)
	for i := 0; i < 3; i++ {
		seed(t, repo, newSolicitacao("A", "TI", "CC-1", "ITEM", model.StatusPending))
	}
	seed(t, repo, newSolicitacao("B", "TI", "CC-1", "ITEM", model.StatusPurchased))

	counts, err := repo.StatusBreakdown()
	require.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, model.StatusPending, counts[0].Status)
	assert.Equal(t, int64(3), counts[0].Count)
	assert.Equal(t, model.StatusPurchased, counts[1].Status)
	assert.Equal(t, int64(1), counts[1].Count)
}

func TestEnsureSchemaIsIdempotent(t *testing.T) {
	repo := setupRepo(t)

	require.NoError(t, repo.EnsureSchema())
	require.NoError(t, repo.EnsureSchema())

	seed(t, repo, newSolicitacao("ANA", "TI", "CC-1", "NOTEBOOK", model.StatusPending))
	require.NoError(t, repo.EnsureSchema())

	total, err := repo.Count(repository.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total, "existing data survives repeated schema runs")
}
