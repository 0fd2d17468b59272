package repository_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nicolasbonaa/controle-compras/internal/repository"
)

func TestParseOrderByDefault(t *testing.T) {
	clause, err := repository.ParseOrderBy("")
	assert.NoError(t, err)
	assert.Equal(t, "requested_at DESC", clause)

	clause, err = repository.ParseOrderBy("   ")
	assert.NoError(t, err)
	assert.Equal(t, "requested_at DESC", clause)
}

func TestParseOrderByColumnAndDirection(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"id", "id DESC"},
		{"requester_name:asc", "requester_name ASC"},
		{"department:ASC", "department ASC"},
		{"status:desc", "status DESC"},
		{"created_at", "created_at DESC"},
		{" updated_at : asc ", "updated_at ASC"},
	}

	for _, tt := range tests {
		clause, err := repository.ParseOrderBy(tt.raw)
		assert.NoError(t, err, tt.raw)
		assert.Equal(t, tt.want, clause, tt.raw)
	}
}

func TestParseOrderByRejectsUnknownColumn(t *testing.T) {
	for _, raw := range []string{
		"password",
		"requested_at; DROP TABLE solicitacoes",
		"(SELECT 1)",
		"requester_name,department",
	} {
		_, err := repository.ParseOrderBy(raw)
		var verr *repository.ValidationError
		assert.ErrorAs(t, err, &verr, raw)
	}
}

func TestParseOrderByRejectsUnknownDirection(t *testing.T) {
	_, err := repository.ParseOrderBy("status:sideways")
	var verr *repository.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Error(), "asc or desc")
}
