package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/nicolasbonaa/controle-compras/internal/model"
	"github.com/nicolasbonaa/controle-compras/internal/repository"
)

var exportHeader = []string{
	"ID", "Solicitante", "Departamento", "Centro de Custo",
	"Equipamento", "Data da Solicitação", "Status", "Criado em", "Atualizado em",
}

// ExportService renders the filtered record set as a downloadable file.
type ExportService interface {
	ExportXLSX(filter repository.Filter, orderBy string) ([]byte, string, error)
	ExportCSV(filter repository.Filter, orderBy string) ([]byte, string, error)
}

type exportService struct {
	repo repository.SolicitacaoRepository
}

// NewExportService creates the export service.
func NewExportService(repo repository.SolicitacaoRepository) ExportService {
	return &exportService{repo: repo}
}

// ExportXLSX writes every matching record into a single-sheet workbook.
func (s *exportService) ExportXLSX(filter repository.Filter, orderBy string) ([]byte, string, error) {
	items, err := s.fetch(filter, orderBy)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Solicitações"
	f.SetSheetName("Sheet1", sheet)

	for col, title := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, "", fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, item := range items {
		for col, value := range exportRow(item) {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, "", fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to write workbook: %w", err)
	}

	return buf.Bytes(), exportFilename("xlsx"), nil
}

// ExportCSV writes every matching record as CSV.
func (s *exportService) ExportCSV(filter repository.Filter, orderBy string) ([]byte, string, error) {
	items, err := s.fetch(filter, orderBy)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportHeader); err != nil {
		return nil, "", fmt.Errorf("failed to write header: %w", err)
	}
	for _, item := range items {
		if err := w.Write(exportRow(item)); err != nil {
			return nil, "", fmt.Errorf("failed to write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", fmt.Errorf("failed to flush csv: %w", err)
	}

	return buf.Bytes(), exportFilename("csv"), nil
}

func (s *exportService) fetch(filter repository.Filter, orderBy string) ([]*model.SolicitacaoModel, error) {
	clause, err := repository.ParseOrderBy(orderBy)
	if err != nil {
		return nil, err
	}
	// limit 0: export the whole filtered set.
	return s.repo.FindByFilter(filter, clause, 0, 0)
}

func exportRow(s *model.SolicitacaoModel) []string {
	return []string{
		strconv.FormatInt(s.ID, 10),
		s.RequesterName,
		s.Department,
		s.CostCenter,
		s.Equipment,
		s.RequestedAt.Format("2006-01-02 15:04"),
		s.Status,
		s.CreatedAt.Format("2006-01-02 15:04"),
		s.UpdatedAt.Format("2006-01-02 15:04"),
	}
}

func exportFilename(ext string) string {
	return fmt.Sprintf("solicitacoes_%s.%s", time.Now().Format("20060102_150405"), ext)
}
