package repository

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/nicolasbonaa/controle-compras/internal/database"
	"github.com/nicolasbonaa/controle-compras/internal/model"
)

// Filter narrows list and count queries. Zero values mean no predicate;
// predicates combine with AND.
type Filter struct {
	Status     string
	Department string
	Search     string
}

// StatusCount is one row of the status breakdown, ordered by count
// descending.
type StatusCount struct {
	Status string
	Count  int64
}

// UpdateFields holds the five mutable columns. Nil pointers are left
// untouched by Update.
type UpdateFields struct {
	RequesterName *string
	Department    *string
	CostCenter    *string
	Equipment     *string
	Status        *string
}

// SolicitacaoRepository owns every SQL statement issued for the
// solicitacao entity.
type SolicitacaoRepository interface {
	Create(s *model.SolicitacaoModel) error
	FindByID(id int64) (*model.SolicitacaoModel, error)
	FindByFilter(filter Filter, orderBy string, limit, offset int) ([]*model.SolicitacaoModel, error)
	Update(id int64, fields UpdateFields) error
	UpdateStatus(id int64, status string) error
	Delete(id int64) error
	Count(filter Filter) (int64, error)
	StatusBreakdown() ([]StatusCount, error)
	EnsureSchema() error
}

type solicitacaoRepository struct {
	db *gorm.DB
}

// NewSolicitacaoRepository creates the gorm-backed repository.
func NewSolicitacaoRepository(db *gorm.DB) SolicitacaoRepository {
	return &solicitacaoRepository{db: db}
}

// Create validates the fully-populated model and issues a single insert.
// The store assigns the id; a missing id after insert is a persistence
// failure.
func (r *solicitacaoRepository) Create(s *model.SolicitacaoModel) error {
	violations := model.CollectViolations(model.FieldValues{
		RequesterName: &s.RequesterName,
		Department:    &s.Department,
		CostCenter:    &s.CostCenter,
		Equipment:     &s.Equipment,
		Status:        &s.Status,
	}, true)
	if len(violations) > 0 {
		return &ValidationError{Messages: violations}
	}

	if s.RequestedAt.IsZero() {
		s.RequestedAt = time.Now().UTC()
	}

	if err := r.db.Create(s).Error; err != nil {
		return classifyStoreError(err)
	}
	if s.ID == 0 {
		return &PersistenceError{Err: errors.New("insert returned no id")}
	}
	return nil
}

// FindByID returns the record, or (nil, nil) when no row matches.
func (r *solicitacaoRepository) FindByID(id int64) (*model.SolicitacaoModel, error) {
	var s model.SolicitacaoModel
	if err := r.db.Where("id = ?", id).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, classifyStoreError(err)
	}
	return &s, nil
}

// FindByFilter lists matching rows. orderBy must be a clause produced by
// ParseOrderBy; limit <= 0 returns all matching rows and ignores offset.
func (r *solicitacaoRepository) FindByFilter(filter Filter, orderBy string, limit, offset int) ([]*model.SolicitacaoModel, error) {
	if orderBy == "" {
		orderBy = DefaultOrder
	}

	var items []*model.SolicitacaoModel
	query := applyFilter(r.db.Model(&model.SolicitacaoModel{}), filter).Order(orderBy)
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&items).Error; err != nil {
		return nil, classifyStoreError(err)
	}
	return items, nil
}

// Update writes the supplied fields plus updated_at in one statement.
// Zero recognized fields is a validation failure; zero affected rows
// means the record vanished and maps to ErrNotFound even when the caller
// pre-checked existence.
func (r *solicitacaoRepository) Update(id int64, fields UpdateFields) error {
	violations := model.CollectViolations(model.FieldValues(fields), false)
	if len(violations) > 0 {
		return &ValidationError{Messages: violations}
	}

	values := map[string]interface{}{}
	if fields.RequesterName != nil {
		values["requester_name"] = *fields.RequesterName
	}
	if fields.Department != nil {
		values["department"] = *fields.Department
	}
	if fields.CostCenter != nil {
		values["cost_center"] = *fields.CostCenter
	}
	if fields.Equipment != nil {
		values["equipment"] = *fields.Equipment
	}
	if fields.Status != nil {
		values["status"] = *fields.Status
	}
	if len(values) == 0 {
		return NewValidationError("no fields to update")
	}
	values["updated_at"] = time.Now().UTC()

	result := r.db.Model(&model.SolicitacaoModel{}).Where("id = ?", id).Updates(values)
	if result.Error != nil {
		return classifyStoreError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateStatus is a convenience wrapper over Update touching only status.
func (r *solicitacaoRepository) UpdateStatus(id int64, status string) error {
	return r.Update(id, UpdateFields{Status: &status})
}

// Delete hard-deletes the row; zero affected rows maps to ErrNotFound.
func (r *solicitacaoRepository) Delete(id int64) error {
	result := r.db.Where("id = ?", id).Delete(&model.SolicitacaoModel{})
	if result.Error != nil {
		return classifyStoreError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of rows matching the filter, using the same
// predicate construction as FindByFilter.
func (r *solicitacaoRepository) Count(filter Filter) (int64, error) {
	var total int64
	if err := applyFilter(r.db.Model(&model.SolicitacaoModel{}), filter).Count(&total).Error; err != nil {
		return 0, classifyStoreError(err)
	}
	return total, nil
}

// StatusBreakdown returns one row per distinct status with its count,
// descending by count.
func (r *solicitacaoRepository) StatusBreakdown() ([]StatusCount, error) {
	var results []StatusCount
	err := r.db.Model(&model.SolicitacaoModel{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Order("count DESC").
		Scan(&results).Error
	if err != nil {
		return nil, classifyStoreError(err)
	}
	return results, nil
}

// EnsureSchema creates the table and its indexes when absent. Safe to
// call repeatedly; never drops or alters existing data.
func (r *solicitacaoRepository) EnsureSchema() error {
	if err := database.EnsureSchema(r.db); err != nil {
		return classifyStoreError(err)
	}
	return nil
}

// applyFilter adds the optional predicates. Search is a case-insensitive
// substring match over requester_name OR equipment; the same bound
// pattern serves both sides, with LIKE metacharacters escaped so "100%"
// matches literally.
func applyFilter(query *gorm.DB, f Filter) *gorm.DB {
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.Department != "" {
		query = query.Where("department = ?", f.Department)
	}
	if f.Search != "" {
		pattern := "%" + strings.ToLower(escapeLike(f.Search)) + "%"
		query = query.Where(
			`LOWER(requester_name) LIKE ? ESCAPE '\' OR LOWER(equipment) LIKE ? ESCAPE '\'`,
			pattern, pattern,
		)
	}
	return query
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
