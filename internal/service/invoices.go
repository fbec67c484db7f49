package service

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/greenbdg/africaesg/backend/internal/extraction"
	"github.com/greenbdg/africaesg/backend/internal/model"
	"github.com/greenbdg/africaesg/backend/internal/store"
)

// maxUploadBytes bounds one multipart upload.
const maxUploadBytes = 32 << 20

type uploadResponse struct {
	Success       bool             `json:"success"`
	UploadedCount int              `json:"uploaded_count"`
	Errors        []string         `json:"errors"`
	Invoices      []*model.Invoice `json:"invoices"`
}

func (s *Service) handleInvoiceUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	inv, err := s.ingestOne(r, file, header)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Upload failed: %v", err))
		return
	}

	s.pushLive()
	writeJSON(w, http.StatusOK, uploadResponse{
		Success:       true,
		UploadedCount: 1,
		Errors:        []string{},
		Invoices:      []*model.Invoice{inv},
	})
}

// handleInvoiceBulkUpload processes files sequentially. A file whose bytes
// cannot be read is recorded in the error list and the rest still go
// through; extraction itself never fails a file.
func (s *Service) handleInvoiceBulkUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	if r.MultipartForm == nil || len(r.MultipartForm.File["files"]) == 0 {
		writeError(w, http.StatusBadRequest, "missing files field")
		return
	}

	invoices := []*model.Invoice{}
	errs := []string{}
	for _, header := range r.MultipartForm.File["files"] {
		file, err := header.Open()
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", header.Filename, err))
			continue
		}
		inv, err := s.ingestOne(r, file, header)
		file.Close()
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", header.Filename, err))
			continue
		}
		invoices = append(invoices, inv)
	}

	s.pushLive()
	writeJSON(w, http.StatusOK, uploadResponse{
		Success:       len(errs) == 0,
		UploadedCount: len(invoices),
		Errors:        errs,
		Invoices:      invoices,
	})
}

// ingestOne extracts a summary from one uploaded file, records it in session
// state and upserts it into the store. Store failures are logged, not
// surfaced; the session copy is the source of truth for the dashboard.
func (s *Service) ingestOne(r *http.Request, file multipart.File, header *multipart.FileHeader) (*model.Invoice, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	filename := header.Filename
	if filename == "" {
		filename = "invoice.pdf"
	}

	result := s.extractor.Extract(data, filename)
	if result.Synthetic {
		s.log.Warn().Str("filename", filename).Str("reason", result.Reason).
			Msg("document could not be decoded, stored placeholder record")
	}

	s.state.AppendInvoice(result.Invoice)
	if _, err := s.store.UpsertInvoice(r.Context(), result.Invoice); err != nil {
		s.log.Warn().Err(err).Str("filename", filename).Msg("invoice store upsert failed")
	}
	return result.Invoice, nil
}

func (s *Service) handleListInvoices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.state.Invoices())
}

func (s *Service) handleQueryInvoices(w http.ResponseWriter, r *http.Request) {
	q := store.InvoiceQuery{
		Term:     r.URL.Query().Get("q"),
		Company:  r.URL.Query().Get("company"),
		Page:     1,
		PageSize: store.DefaultPageSize,
		Sort:     r.URL.Query().Get("sort"),
	}

	if v := r.URL.Query().Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusUnprocessableEntity, "page must be an integer >= 1")
			return
		}
		q.Page = n
	}
	if v := r.URL.Query().Get("page_size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > store.MaxPageSize {
			writeError(w, http.StatusUnprocessableEntity,
				fmt.Sprintf("page_size must be between 1 and %d", store.MaxPageSize))
			return
		}
		q.PageSize = n
	}

	items, total, err := s.store.QueryInvoices(r.Context(), q)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if items == nil {
		items = []*model.Invoice{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items":     items,
		"total":     total,
		"page":      q.Page,
		"page_size": q.PageSize,
	})
}

// groupedPrinter renders numbers with thousands separators for the
// narrative insight strings.
var groupedPrinter = message.NewPrinter(language.English)

func (s *Service) handleInvoiceEnvironmentalInsights(w http.ResponseWriter, r *http.Request) {
	lastN := 6
	if v := r.URL.Query().Get("last_n"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 100 {
			writeError(w, http.StatusUnprocessableEntity, "last_n must be between 1 and 100")
			return
		}
		lastN = n
	}

	recent := s.state.RecentInvoices(lastN)

	var totalEnergy, totalCharges, totalWater, totalWaterCost float64
	for _, inv := range recent {
		totalEnergy += inv.TotalEnergyKWh.Or(0)
		totalCharges += inv.TotalCurrentCharges.Or(0)
		totalWater += inv.WaterUsage.Or(0)
		totalWaterCost += inv.WaterCost.Or(0)
	}
	estimatedCO2 := totalEnergy * 0.99 / 1000

	out := []string{
		groupedPrinter.Sprintf("Total energy consumption from invoices: %.0f kWh", totalEnergy),
		groupedPrinter.Sprintf("Estimated carbon emissions: %.1f tCO₂e", estimatedCO2),
		groupedPrinter.Sprintf("Total water usage: %.0f m³", totalWater),
		groupedPrinter.Sprintf("Total water cost: R %.2f", totalWaterCost),
	}
	if totalEnergy > 0 {
		out = append(out, fmt.Sprintf("Average tariff: R %.2f/kWh", totalCharges/totalEnergy))
	} else {
		out = append(out, "No energy data")
	}
	if totalEnergy > 100000 {
		out = append(out, "High energy consumption detected. Consider an energy efficiency audit.")
	}
	if totalWater > 10000 {
		out = append(out, "Significant water usage. Water conservation measures recommended.")
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"metrics": map[string]any{
			"total_energy_kwh":     totalEnergy,
			"estimated_co2_tonnes": estimatedCO2,
			"total_water_m3":       totalWater,
			"total_water_cost":     totalWaterCost,
			"invoice_count":        len(recent),
		},
		"insights": out,
	})
}

type saveInvoicesRequest struct {
	Invoices []*model.Invoice `json:"invoices"`
}

// handleSaveInvoices bulk-upserts caller-provided records into the document
// store and refreshes the session list from it. The route name is kept for
// frontend compatibility.
func (s *Service) handleSaveInvoices(w http.ResponseWriter, r *http.Request) {
	var req saveInvoicesRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.Invoices) == 0 {
		writeError(w, http.StatusBadRequest, "No invoices provided")
		return
	}

	inserted, updated := 0, 0
	errs := []string{}
	now := s.now()
	for _, inv := range req.Invoices {
		extraction.Normalize(inv, now)
		created, err := s.store.UpsertInvoice(r.Context(), inv)
		if err != nil {
			s.log.Error().Err(err).Str("key", inv.UpsertKey()).Msg("invoice save failed")
			errs = append(errs, err.Error())
			continue
		}
		if created {
			inserted++
		} else {
			updated++
		}
	}

	if all, err := s.store.ListInvoices(r.Context()); err != nil {
		s.log.Error().Err(err).Msg("failed to refresh invoices after save")
	} else {
		s.state.ReplaceInvoices(all)
	}

	s.pushLive()
	writeJSON(w, http.StatusOK, map[string]any{
		"success":       len(errs) == 0,
		"insertedCount": inserted,
		"upsertedCount": updated,
		"errors":        errs,
	})
}

func (s *Service) handleLoadInvoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := s.store.ListInvoices(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if invoices == nil {
		invoices = []*model.Invoice{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"invoices": invoices,
		"count":    len(invoices),
	})
}

func (s *Service) handleInvoiceStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.Stats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":        true,
		"totalInvoices":  stats.TotalInvoices,
		"totalEnergyKwh": stats.TotalEnergyKWh,
		"estimatedCo2":   stats.EstimatedCO2,
		"lastUpdated":    s.nowISO(),
		"databaseName":   "esg_app",
	})
}

func (s *Service) handleClearInvoices(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.store.ClearInvoices(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.state.ReplaceInvoices(nil)
	s.pushLive()
	writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"message":       fmt.Sprintf("deleted %d invoices", deleted),
		"deleted_count": deleted,
	})
}
