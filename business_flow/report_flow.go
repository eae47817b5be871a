// Package businessflow contains use cases for daily dispatch reporting
package businessflow

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"dispatch-control-api/app/dto"
	"dispatch-control-api/models"
	"dispatch-control-api/repository"
	"dispatch-control-api/utils"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/xuri/excelize/v2"
)

// ReportFlow defines the daily aggregation and export use cases
type ReportFlow interface {
	DailyReport(ctx context.Context, date string, metadata *ClientMetadata) (*dto.DailyReportResponse, error)
	ExportDailyReportExcel(ctx context.Context, date string, metadata *ClientMetadata) (string, []byte, error)
}

type ReportFlowImpl struct {
	dispatchRepo  repository.DispatchRepository
	itemRepo      repository.DispatchItemRepository
	messengerRepo repository.MessengerRepository
	rc            *redis.Client
	cacheTTL      time.Duration
}

func NewReportFlow(
	dispatchRepo repository.DispatchRepository,
	itemRepo repository.DispatchItemRepository,
	messengerRepo repository.MessengerRepository,
	rc *redis.Client,
	cacheTTL time.Duration,
) ReportFlow {
	return &ReportFlowImpl{
		dispatchRepo:  dispatchRepo,
		itemRepo:      itemRepo,
		messengerRepo: messengerRepo,
		rc:            rc,
		cacheTTL:      cacheTTL,
	}
}

// DailyReport aggregates all dispatches of one calendar date, grouped by
// messenger. An empty date defaults to the current UTC date.
func (f *ReportFlowImpl) DailyReport(ctx context.Context, date string, metadata *ClientMetadata) (*dto.DailyReportResponse, error) {
	date, err := normalizeReportDate(date)
	if err != nil {
		return nil, err
	}

	if cached := f.fromCache(ctx, date); cached != nil {
		return cached, nil
	}

	report, _, err := f.buildReport(ctx, date)
	if err != nil {
		return nil, err
	}

	f.toCache(ctx, date, report)
	return report, nil
}

// buildReport runs the single grouping pass over the date's dispatches and
// resolves messenger contacts. The returned order preserves first appearance
// of each messenger so the Excel export is deterministic.
func (f *ReportFlowImpl) buildReport(ctx context.Context, date string) (*dto.DailyReportResponse, []uuid.UUID, error) {
	rows, err := f.dispatchRepo.ByFilter(ctx, models.DispatchFilter{Date: &date}, "created_at ASC", 0, 0)
	if err != nil {
		return nil, nil, NewBusinessError("DAILY_REPORT_FAILED", "Failed to fetch dispatches for report", err)
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, d := range rows {
		ids = append(ids, d.ID)
	}
	itemsByDispatch, err := f.itemRepo.ByDispatchIDs(ctx, ids)
	if err != nil {
		return nil, nil, NewBusinessError("DAILY_REPORT_FAILED", "Failed to fetch dispatch items for report", err)
	}

	grouped := make(map[string]*dto.MessengerReportDTO)
	order := make([]uuid.UUID, 0)
	totalCards := 0

	for _, d := range rows {
		key := d.MessengerID.String()
		entry, ok := grouped[key]
		if !ok {
			entry = &dto.MessengerReportDTO{
				MessengerName: d.MessengerName,
				Dispatches:    make([]dto.DispatchDetailDTO, 0, 4),
			}
			grouped[key] = entry
			order = append(order, d.MessengerID)
		}

		items := itemsByDispatch[d.ID]
		entry.TotalCards += d.TotalCards
		entry.Dispatches = append(entry.Dispatches, dto.DispatchDetailDTO{
			ID:    d.ID.String(),
			Time:  d.CreatedAt.UTC().Format(time.RFC3339),
			Cards: d.TotalCards,
			Items: ToDispatchItemDTOs(items),
		})
		totalCards += d.TotalCards
	}

	// Contact lookups must never fail the report; a messenger deleted after
	// creating dispatches is reported with a sentinel contact.
	for _, messengerID := range order {
		entry := grouped[messengerID.String()]
		messenger, err := f.messengerRepo.ByID(ctx, messengerID)
		if err != nil || messenger == nil {
			if err != nil {
				log.Printf("Report contact lookup failed for messenger %s: %v", messengerID, err)
			}
			entry.MessengerContact = utils.ContactUnavailable
			continue
		}
		entry.MessengerContact = messenger.ContactNumber
	}

	return &dto.DailyReportResponse{
		Date:            date,
		TotalMessengers: len(grouped),
		TotalDispatches: len(rows),
		TotalCards:      totalCards,
		Messengers:      grouped,
	}, order, nil
}

// ExportDailyReportExcel renders the daily aggregate as an xlsx workbook with
// one summary sheet plus one sheet per messenger
func (f *ReportFlowImpl) ExportDailyReportExcel(ctx context.Context, date string, metadata *ClientMetadata) (string, []byte, error) {
	date, err := normalizeReportDate(date)
	if err != nil {
		return "", nil, err
	}

	report, order, err := f.buildReport(ctx, date)
	if err != nil {
		return "", nil, err
	}

	xl := excelize.NewFile()
	defer func() { _ = xl.Close() }()

	// Summary sheet replaces the default sheet
	summary := "Summary"
	xl.SetSheetName(xl.GetSheetName(0), summary)
	summaryRows := [][]any{
		{"date", report.Date},
		{"total_messengers", report.TotalMessengers},
		{"total_dispatches", report.TotalDispatches},
		{"total_cards", report.TotalCards},
	}
	for ri, row := range summaryRows {
		cellRef, _ := excelize.CoordinatesToCellName(1, ri+1)
		_ = xl.SetSheetRow(summary, cellRef, &row)
	}

	usedNames := map[string]bool{summary: true}
	for _, messengerID := range order {
		entry := report.Messengers[messengerID.String()]

		baseName := sanitizeSheetName(entry.MessengerName)
		name := baseName
		idx := 1
		for usedNames[name] {
			idx++
			name = truncateSheetName(fmt.Sprintf("%s_%d", baseName, idx))
		}
		usedNames[name] = true
		_, _ = xl.NewSheet(name)

		header := []any{"SUMMARY " + entry.MessengerName, entry.MessengerContact, len(entry.Dispatches)}
		_ = xl.SetSheetRow(name, "A1", &header)

		// Row 2 stays blank as a separator
		rowIdx := 3
		for _, d := range entry.Dispatches {
			timeOfDay := ""
			if t, err := time.Parse(time.RFC3339, d.Time); err == nil {
				timeOfDay = t.UTC().Format("15:04:05")
			}
			for _, item := range d.Items {
				record := []any{
					entry.MessengerName,
					entry.MessengerContact,
					report.Date,
					timeOfDay,
					item.CardNumber,
					item.CardType,
				}
				cellRef, _ := excelize.CoordinatesToCellName(1, rowIdx)
				_ = xl.SetSheetRow(name, cellRef, &record)
				rowIdx++
			}
		}
	}

	buf, err := xl.WriteToBuffer()
	if err != nil {
		return "", nil, NewBusinessError("EXCEL_WRITE_ERROR", "Failed to write Excel file", err)
	}

	filename := fmt.Sprintf("dispatch_report_%s.xlsx", date)
	return filename, buf.Bytes(), nil
}

// fromCache returns a cached report payload or nil. Cache problems are logged
// and treated as misses.
func (f *ReportFlowImpl) fromCache(ctx context.Context, date string) *dto.DailyReportResponse {
	if f.rc == nil || f.cacheTTL <= 0 {
		return nil
	}

	raw, err := f.rc.Get(ctx, utils.ReportCacheKeyPrefix+date).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Report cache read failed for %s: %v", date, err)
		}
		return nil
	}

	var report dto.DailyReportResponse
	if err := json.Unmarshal(raw, &report); err != nil {
		log.Printf("Report cache payload corrupt for %s: %v", date, err)
		return nil
	}
	return &report
}

func (f *ReportFlowImpl) toCache(ctx context.Context, date string, report *dto.DailyReportResponse) {
	if f.rc == nil || f.cacheTTL <= 0 {
		return
	}

	raw, err := json.Marshal(report)
	if err != nil {
		return
	}
	if err := f.rc.Set(ctx, utils.ReportCacheKeyPrefix+date, raw, f.cacheTTL).Err(); err != nil {
		log.Printf("Report cache write failed for %s: %v", date, err)
	}
}

// normalizeReportDate defaults an empty date to today (UTC) and rejects
// anything not in YYYY-MM-DD form
func normalizeReportDate(date string) (string, error) {
	if date == "" {
		return utils.UTCNowFormat(models.DateLayout), nil
	}
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return "", ErrInvalidReportDate
	}
	return date, nil
}

func sanitizeSheetName(name string) string {
	// Excel sheet names cannot contain: : \ / ? * [ ] and must be <= 31 chars
	replacer := strings.NewReplacer(":", "_", "\\", "_", "/", "_", "?", "_", "*", "_", "[", "_", "]", "_")
	safe := replacer.Replace(name)
	return truncateSheetName(strings.TrimSpace(safe))
}

func truncateSheetName(name string) string {
	if len(name) > 31 {
		return name[:31]
	}
	if name == "" {
		return "Sheet"
	}
	return name
}
