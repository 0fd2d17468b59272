package model_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nicolasbonaa/controle-compras/internal/model"
)

func strPtr(s string) *string { return &s }

func TestIsValidStatus(t *testing.T) {
	for _, s := range model.ValidStatuses {
		assert.True(t, model.IsValidStatus(s), s)
	}

	assert.False(t, model.IsValidStatus("pending"))
	assert.False(t, model.IsValidStatus("Done"))
	assert.False(t, model.IsValidStatus(""))
}

func TestCollectViolationsAllValid(t *testing.T) {
	violations := model.CollectViolations(model.FieldValues{
		RequesterName: strPtr("MARIA SILVA"),
		Department:    strPtr("TI"),
		CostCenter:    strPtr("CC-100"),
		Equipment:     strPtr("NOTEBOOK DELL"),
		Status:        strPtr(model.StatusPending),
	}, true)

	assert.Empty(t, violations)
}

func TestCollectViolationsCollectsEveryFailure(t *testing.T) {
	violations := model.CollectViolations(model.FieldValues{
		RequesterName: strPtr(""),
		Department:    strPtr("   "),
		CostCenter:    strPtr(strings.Repeat("x", model.MaxCostCenterLen+1)),
		Equipment:     strPtr("NOTEBOOK"),
		Status:        strPtr("Unknown"),
	}, true)

	assert.Equal(t, []string{
		"requesterName is required",
		"department is required",
		"costCenter must be at most 50 characters",
		"status must be one of Pending, InProgress, Purchased, Cancelled",
	}, violations)
}

func TestCollectViolationsRequireAllReportsAbsentFields(t *testing.T) {
	violations := model.CollectViolations(model.FieldValues{
		RequesterName: strPtr("MARIA"),
		Equipment:     strPtr("MONITOR"),
	}, true)

	assert.Equal(t, []string{
		"department is required",
		"costCenter is required",
	}, violations)
}

func TestCollectViolationsPartialIgnoresAbsentFields(t *testing.T) {
	violations := model.CollectViolations(model.FieldValues{
		Department: strPtr("FINANCEIRO"),
	}, false)

	assert.Empty(t, violations)
}

func TestCollectViolationsBoundaryLengths(t *testing.T) {
	atLimit := model.CollectViolations(model.FieldValues{
		RequesterName: strPtr(strings.Repeat("a", model.MaxRequesterNameLen)),
		Department:    strPtr(strings.Repeat("b", model.MaxDepartmentLen)),
		CostCenter:    strPtr(strings.Repeat("c", model.MaxCostCenterLen)),
		Equipment:     strPtr(strings.Repeat("d", 10_000)),
	}, true)
	assert.Empty(t, atLimit, "values at the column limit are accepted; equipment is unbounded")

	overLimit := model.CollectViolations(model.FieldValues{
		RequesterName: strPtr(strings.Repeat("a", model.MaxRequesterNameLen+1)),
		Department:    strPtr("TI"),
		CostCenter:    strPtr("CC-1"),
		Equipment:     strPtr("TECLADO"),
	}, true)
	assert.Equal(t, []string{"requesterName must be at most 255 characters"}, overLimit)
}

func TestTableName(t *testing.T) {
	assert.Equal(t, "solicitacoes", model.SolicitacaoModel{}.TableName())
}
