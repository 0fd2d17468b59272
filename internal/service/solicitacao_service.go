package service

import (
	"time"

	"github.com/nicolasbonaa/controle-compras/internal/model"
	"github.com/nicolasbonaa/controle-compras/internal/repository"
	"github.com/nicolasbonaa/controle-compras/internal/utils"
)

// CreateSolicitacaoInput carries the client-supplied fields for creation.
type CreateSolicitacaoInput struct {
	RequesterName string     `json:"requesterName"`
	Department    string     `json:"department"`
	CostCenter    string     `json:"costCenter"`
	Equipment     string     `json:"equipment"`
	RequestedAt   *time.Time `json:"requestedAt"`
	Status        string     `json:"status"`
}

// UpdateSolicitacaoInput carries a partial update; nil fields are left
// untouched.
type UpdateSolicitacaoInput struct {
	RequesterName *string `json:"requesterName"`
	Department    *string `json:"department"`
	CostCenter    *string `json:"costCenter"`
	Equipment     *string `json:"equipment"`
	Status        *string `json:"status"`
}

// ListResult is a page of records plus the unpaginated total.
type ListResult struct {
	Items []*model.SolicitacaoModel
	Total int64
}

// SolicitacaoService sanitizes and normalizes input, pre-checks existence
// for mutations, and delegates persistence to the repository.
type SolicitacaoService interface {
	Create(input *CreateSolicitacaoInput) (*model.SolicitacaoModel, error)
	Get(id int64) (*model.SolicitacaoModel, error)
	List(filter repository.Filter, orderBy string, page, limit int) (*ListResult, error)
	Update(id int64, input *UpdateSolicitacaoInput) error
	UpdateStatus(id int64, status string) error
	Delete(id int64) error
	Ping() error
}

type solicitacaoService struct {
	repo repository.SolicitacaoRepository
}

// NewSolicitacaoService creates the service over the given repository.
func NewSolicitacaoService(repo repository.SolicitacaoRepository) SolicitacaoService {
	return &solicitacaoService{repo: repo}
}

// Create sanitizes and upper-cases the four text fields, defaults status
// to Pending and requestedAt to now, then issues the insert. Validation
// failures list every violation.
func (s *solicitacaoService) Create(input *CreateSolicitacaoInput) (*model.SolicitacaoModel, error) {
	record := &model.SolicitacaoModel{
		RequesterName: utils.NormalizeField(input.RequesterName),
		Department:    utils.NormalizeField(input.Department),
		CostCenter:    utils.NormalizeField(input.CostCenter),
		Equipment:     utils.NormalizeField(input.Equipment),
		Status:        utils.SanitizeField(input.Status),
	}
	if record.Status == "" {
		record.Status = model.StatusPending
	}
	if input.RequestedAt != nil {
		record.RequestedAt = *input.RequestedAt
	}

	if err := s.repo.Create(record); err != nil {
		return nil, err
	}
	return record, nil
}

// Get returns the record or repository.ErrNotFound.
func (s *solicitacaoService) Get(id int64) (*model.SolicitacaoModel, error) {
	record, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, repository.ErrNotFound
	}
	return record, nil
}

// List validates the ordering against the allow-list, then runs the count
// and page queries with the same predicates.
func (s *solicitacaoService) List(filter repository.Filter, orderBy string, page, limit int) (*ListResult, error) {
	clause, err := repository.ParseOrderBy(orderBy)
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Count(filter)
	if err != nil {
		return nil, err
	}

	offset := (page - 1) * limit
	items, err := s.repo.FindByFilter(filter, clause, limit, offset)
	if err != nil {
		return nil, err
	}

	return &ListResult{Items: items, Total: total}, nil
}

// Update sanitizes the supplied fields and applies a partial update. The
// existence pre-check turns the common miss into an explicit not-found
// before the statement; the repository still re-validates via affected
// rows because another caller may delete the row in between.
func (s *solicitacaoService) Update(id int64, input *UpdateSolicitacaoInput) error {
	fields := repository.UpdateFields{
		RequesterName: normalizePtr(input.RequesterName),
		Department:    normalizePtr(input.Department),
		CostCenter:    normalizePtr(input.CostCenter),
		Equipment:     normalizePtr(input.Equipment),
	}
	if input.Status != nil {
		status := utils.SanitizeField(*input.Status)
		fields.Status = &status
	}

	if err := s.checkExists(id); err != nil {
		return err
	}
	return s.repo.Update(id, fields)
}

// UpdateStatus applies a status-only update after validating membership
// in the four-value set.
func (s *solicitacaoService) UpdateStatus(id int64, status string) error {
	status = utils.SanitizeField(status)
	if !model.IsValidStatus(status) {
		return repository.NewValidationError("status must be one of Pending, InProgress, Purchased, Cancelled")
	}

	if err := s.checkExists(id); err != nil {
		return err
	}
	return s.repo.UpdateStatus(id, status)
}

// Delete hard-deletes the record.
func (s *solicitacaoService) Delete(id int64) error {
	if err := s.checkExists(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

// Ping issues a trivial repository read, used by the liveness probe.
func (s *solicitacaoService) Ping() error {
	_, err := s.repo.Count(repository.Filter{})
	return err
}

func (s *solicitacaoService) checkExists(id int64) error {
	record, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}
	if record == nil {
		return repository.ErrNotFound
	}
	return nil
}

func normalizePtr(v *string) *string {
	if v == nil {
		return nil
	}
	normalized := utils.NormalizeField(*v)
	return &normalized
}
