package service_test

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
	"github.com/nicolasbonaa/controle-compras/internal/service"
)

func setupService(t *testing.T) service.SolicitacaoService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	repo := repository.NewSolicitacaoRepository(db)
	require.NoError(t, repo.EnsureSchema())
	return service.NewSolicitacaoService(repo)
}

func createOne(t *testing.T, svc service.SolicitacaoService, requester string) *model.SolicitacaoModel {
	t.Helper()
	record, err := svc.Create(&service.CreateSolicitacaoInput{
		RequesterName: requester,
		Department:    "TI",
		CostCenter:    "CC-100",
		Equipment:     "Notebook Dell",
	})
	require.NoError(t, err)
	return record
}

func TestCreateNormalizesFields(t *testing.T) {
	svc := setupService(t)

	record, err := svc.Create(&service.CreateSolicitacaoInput{
		RequesterName: "  maria silva ",
		Department:    "ti",
		CostCenter:    " cc-100 ",
		Equipment:     "notebook dell <script>",
	})
	require.NoError(t, err)

	assert.Equal(t, "MARIA SILVA", record.RequesterName)
	assert.Equal(t, "TI", record.Department)
	assert.Equal(t, "CC-100", record.CostCenter)
	assert.Equal(t, "NOTEBOOK DELL SCRIPT", record.Equipment)
	assert.Equal(t, model.StatusPending, record.Status, "status defaults to Pending")
}

func TestCreateKeepsExplicitStatusAndDate(t *testing.T) {
	svc := setupService(t)

	requestedAt := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	record, err := svc.Create(&service.CreateSolicitacaoInput{
		RequesterName: "Ana",
		Department:    "RH",
		CostCenter:    "CC-2",
		Equipment:     "Cadeira",
		RequestedAt:   &requestedAt,
		Status:        model.StatusInProgress,
	})
	require.NoError(t, err)

	assert.Equal(t, model.StatusInProgress, record.Status)
	assert.Equal(t, requestedAt, record.RequestedAt)
}

func TestCreateRejectsInvalidStatus(t *testing.T) {
	svc := setupService(t)

	_, err := svc.Create(&service.CreateSolicitacaoInput{
		RequesterName: "Ana",
		Department:    "RH",
		CostCenter:    "CC-2",
		Equipment:     "Cadeira",
		Status:        "Approved",
	})

	var verr *repository.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Messages[0], "status must be one of")
}

func TestGetMissingIsNotFound(t *testing.T) {
	svc := setupService(t)

	_, err := svc.Get(42)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestListPaginates(t *testing.T) {
	svc := setupService(t)
	for i := 0; i < 25; i++ {
		createOne(t, svc, "REQ")
	}

	result, err := svc.List(repository.Filter{}, "", 1, 10)
	require.NoError(t, err)
	assert.Len(t, result.Items, 10)
	assert.Equal(t, int64(25), result.Total)

	result, err = svc.List(repository.Filter{}, "", 3, 10)
	require.NoError(t, err)
	assert.Len(t, result.Items, 5)

	result, err = svc.List(repository.Filter{}, "", 4, 10)
	require.NoError(t, err)
	assert.Empty(t, result.Items, "a page beyond the last is empty, not an error")
	assert.Equal(t, int64(25), result.Total)
}

func TestListRejectsUnknownOrderColumn(t *testing.T) {
	svc := setupService(t)

	_, err := svc.List(repository.Filter{}, "secret_column", 1, 10)
	var verr *repository.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestUpdateNormalizesSuppliedFields(t *testing.T) {
	svc := setupService(t)
	record := createOne(t, svc, "Ana")

	department := " financeiro "
	require.NoError(t, svc.Update(record.ID, &service.UpdateSolicitacaoInput{
		Department: &department,
	}))

	updated, err := svc.Get(record.ID)
	require.NoError(t, err)
	assert.Equal(t, "FINANCEIRO", updated.Department)
	assert.Equal(t, "ANA", updated.RequesterName)
}

func TestUpdateMissingIsNotFound(t *testing.T) {
	svc := setupService(t)

	name := "Ana"
	err := svc.Update(999, &service.UpdateSolicitacaoInput{RequesterName: &name})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdateStatusAcceptsOnlyTheFourStatuses(t *testing.T) {
	svc := setupService(t)
	record := createOne(t, svc, "Ana")

	for _, status := range model.ValidStatuses {
		assert.NoError(t, svc.UpdateStatus(record.ID, status), status)
	}

	err := svc.UpdateStatus(record.ID, "Done")
	var verr *repository.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestDeleteThenMutateIsNotFound(t *testing.T) {
	svc := setupService(t)
	record := createOne(t, svc, "Ana")

	require.NoError(t, svc.Delete(record.ID))

	assert.ErrorIs(t, svc.Delete(record.ID), repository.ErrNotFound)
	assert.ErrorIs(t, svc.UpdateStatus(record.ID, model.StatusPurchased), repository.ErrNotFound)

	name := "Bia"
	assert.ErrorIs(t, svc.Update(record.ID, &service.UpdateSolicitacaoInput{RequesterName: &name}), repository.ErrNotFound)
}

func TestPing(t *testing.T) {
	svc := setupService(t)
	assert.NoError(t, svc.Ping())
}
