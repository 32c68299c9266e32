package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/360EntSecGroup-Skylar/excelize/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"sellerdesk/internal/repo"
	"sellerdesk/internal/utils"
	"sellerdesk/pkg/models"
)

// productImportColumns is the canonical column order for the import template
var productImportColumns = []string{
	"title", "group_sku", "sub_sku", "brand",
	"brand_real_price", "brand_miscellaneous", "msrp", "shipping_price",
	"length", "width", "height", "volume", "weight",
	"stock_quantity", "features",
}

// ProgressNotifier receives progress snapshots as a job advances
type ProgressNotifier func(progress models.ImportJobProgress)

// ImporterService runs async product imports from CSV or XLSX uploads
type ImporterService struct {
	jobRepo     *repo.ImportJobRepository
	productRepo *repo.ProductRepository
	brandRepo   *repo.BrandRepository
	notify      ProgressNotifier
}

// NewImporterService creates a new importer service
func NewImporterService(jobRepo *repo.ImportJobRepository, productRepo *repo.ProductRepository, brandRepo *repo.BrandRepository) *ImporterService {
	return &ImporterService{
		jobRepo:     jobRepo,
		productRepo: productRepo,
		brandRepo:   brandRepo,
	}
}

// SetNotifier wires progress push (websocket hub). Must be called before
// jobs are created.
func (s *ImporterService) SetNotifier(notify ProgressNotifier) {
	s.notify = notify
}

// CreateProductImportJob parses the upload, persists a job row and starts
// processing in the background.
func (s *ImporterService) CreateProductImportJob(ctx context.Context, userID uuid.UUID, file multipart.File, header *multipart.FileHeader) (*models.ImportJob, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	rows, numericSeparator, err := parseRows(header.Filename, data)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("file has no data rows")
	}

	headerMap := buildHeaderMap(rows[0])
	if _, ok := headerMap["title"]; !ok {
		return nil, fmt.Errorf("missing required column: title")
	}
	if _, ok := headerMap["group_sku"]; !ok {
		return nil, fmt.Errorf("missing required column: group_sku")
	}

	job := &models.ImportJob{
		UserID:       userID,
		Type:         models.ImportJobTypeProducts,
		Status:       models.ImportJobStatusPending,
		FileName:     header.Filename,
		TotalRecords: len(rows) - 1,
	}
	if err := s.jobRepo.Create(job); err != nil {
		return nil, fmt.Errorf("failed to create import job: %w", err)
	}

	go s.process(job.ID, rows[1:], headerMap, numericSeparator)

	return job, nil
}

// GetJobProgress returns the progress snapshot for a job
func (s *ImporterService) GetJobProgress(jobID uuid.UUID) (*models.ImportJobProgress, error) {
	job, err := s.jobRepo.GetByID(jobID)
	if err != nil {
		return nil, err
	}
	progress := job.ToProgress()
	return &progress, nil
}

// ListJobs lists a user's jobs
func (s *ImporterService) ListJobs(userID uuid.UUID, limit, offset int) ([]models.ImportJob, int64, error) {
	return s.jobRepo.ListByUser(userID, limit, offset)
}

func (s *ImporterService) process(jobID uuid.UUID, rows [][]string, headerMap map[string]int, numericSeparator string) {
	job, err := s.jobRepo.GetByID(jobID)
	if err != nil {
		log.Error().Err(err).Str("job_id", jobID.String()).Msg("import job vanished before processing")
		return
	}

	now := time.Now()
	job.Status = models.ImportJobStatusProcessing
	job.StartedAt = &now
	if err := s.jobRepo.Update(job); err != nil {
		log.Error().Err(err).Msg("failed to mark import job as processing")
		return
	}

	var errorDetails []string
	for i, record := range rows {
		product, err := s.parseProductRecord(record, headerMap, numericSeparator)
		if err == nil {
			err = s.productRepo.UpsertByGroupSKU(product)
		}

		job.ProcessedRecords++
		if err != nil {
			job.ErrorRecords++
			errorDetails = append(errorDetails, fmt.Sprintf("row %d: %v", i+2, err))
		} else {
			job.SuccessRecords++
		}

		// Persist and push progress every 25 rows to keep the DB quiet
		if job.ProcessedRecords%25 == 0 {
			s.saveProgress(job, errorDetails)
		}
	}

	done := time.Now()
	job.CompletedAt = &done
	if job.ErrorRecords == job.TotalRecords && job.TotalRecords > 0 {
		job.Status = models.ImportJobStatusFailed
	} else {
		job.Status = models.ImportJobStatusCompleted
	}
	s.saveProgress(job, errorDetails)

	log.Info().
		Str("job_id", job.ID.String()).
		Int("success", job.SuccessRecords).
		Int("errors", job.ErrorRecords).
		Msg("product import finished")
}

func (s *ImporterService) saveProgress(job *models.ImportJob, errorDetails []string) {
	if len(errorDetails) > 0 {
		if encoded, err := json.Marshal(errorDetails); err == nil {
			detail := string(encoded)
			job.ErrorDetails = &detail
		}
	}
	if err := s.jobRepo.Update(job); err != nil {
		log.Error().Err(err).Msg("failed to update import job progress")
	}
	if s.notify != nil {
		s.notify(job.ToProgress())
	}
}

func (s *ImporterService) parseProductRecord(record []string, headerMap map[string]int, numericSeparator string) (*models.Product, error) {
	field := func(name string) string {
		idx, ok := headerMap[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}
	numeric := func(name string) string {
		v := utils.NormalizeNumericValue(field(name), numericSeparator)
		if v == "" {
			return "0"
		}
		return v
	}

	title := field("title")
	groupSKU := field("group_sku")
	if title == "" || groupSKU == "" {
		return nil, fmt.Errorf("title and group_sku are required")
	}

	product := &models.Product{
		Title:              title,
		GroupSKU:           groupSKU,
		SubSKU:             field("sub_sku"),
		BrandRealPrice:     numeric("brand_real_price"),
		BrandMiscellaneous: numeric("brand_miscellaneous"),
		MSRP:               numeric("msrp"),
		ShippingPrice:      numeric("shipping_price"),
		Length:             numeric("length"),
		Width:              numeric("width"),
		Height:             numeric("height"),
		Volume:             numeric("volume"),
		Weight:             numeric("weight"),
		Features:           field("features"),
		IsActive:           true,
	}

	if qty := field("stock_quantity"); qty != "" {
		fmt.Sscanf(qty, "%d", &product.StockQuantity)
	}

	if brandName := field("brand"); brandName != "" {
		brand, err := s.brandRepo.GetByName(brandName)
		if err != nil {
			brand = &models.Brand{Name: brandName, IsActive: true}
			if err := s.brandRepo.Create(brand); err != nil {
				return nil, fmt.Errorf("failed to create brand %q: %w", brandName, err)
			}
		}
		product.BrandID = &brand.ID
	}

	return product, nil
}

// parseRows extracts raw rows from a CSV or XLSX upload. The second return
// is the numeric separator detected for CSVs ("." for XLSX).
func parseRows(filename string, data []byte) ([][]string, string, error) {
	if strings.EqualFold(filepath.Ext(filename), ".xlsx") {
		f, err := excelize.OpenReader(bytes.NewReader(data))
		if err != nil {
			return nil, "", fmt.Errorf("failed to open XLSX: %w", err)
		}
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, "", fmt.Errorf("XLSX has no sheets")
		}
		rows, err := f.GetRows(sheets[0])
		if err != nil {
			return nil, "", fmt.Errorf("failed to read XLSX rows: %w", err)
		}
		return rows, ".", nil
	}

	records, analysis, err := utils.ParseCSVWithDetectedDelimiter(bytes.NewReader(data))
	if err != nil {
		return nil, "", err
	}
	return records, analysis.NumericSeparator, nil
}

func buildHeaderMap(header []string) map[string]int {
	m := make(map[string]int, len(header))
	for i, col := range header {
		m[strings.ToLower(strings.TrimSpace(col))] = i
	}
	return m
}

// BuildProductImportTemplate builds the downloadable XLSX import template
// with the expected columns and one example row.
func BuildProductImportTemplate() (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := make([]interface{}, len(productImportColumns))
	for i, col := range productImportColumns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}

	example := []interface{}{
		"55in Smart TV", "TV-55", "TV-55-BLK,TV-55-GRY", "Acme",
		"299.99", "10", "499.99", "25",
		"130", "80", "12", "124800", "14500",
		"40", "4K panel\nHDR10",
	}
	if err := f.SetSheetRow(sheet, "A2", &example); err != nil {
		return nil, err
	}

	return f, nil
}

// BuildListingImagesTemplate builds the XLSX template for bulk listing image
// uploads: one row per listing SKU with the image file names to attach.
func BuildListingImagesTemplate() (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := []interface{}{"listing_sku", "image_file"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}
	example := []interface{}{"TV-55-AMZ", "tv-55-front.jpg"}
	if err := f.SetSheetRow(sheet, "A2", &example); err != nil {
		return nil, err
	}

	return f, nil
}
