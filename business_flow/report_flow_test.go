package businessflow

import (
	"bytes"
	"testing"
	"time"

	"dispatch-control-api/models"
	"dispatch-control-api/repository"
	testingutil "dispatch-control-api/testing"
	"dispatch-control-api/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newReportFlowForTest(testDB *testingutil.TestDB) ReportFlow {
	return NewReportFlow(
		repository.NewDispatchRepository(testDB.DB),
		repository.NewDispatchItemRepository(testDB.DB),
		repository.NewMessengerRepository(testDB.DB),
		nil,
		0,
	)
}

func TestNormalizeReportDate(t *testing.T) {
	t.Run("EmptyDefaultsToToday", func(t *testing.T) {
		date, err := normalizeReportDate("")
		require.NoError(t, err)
		assert.Equal(t, utils.UTCNowFormat(models.DateLayout), date)
	})

	t.Run("ValidPassesThrough", func(t *testing.T) {
		date, err := normalizeReportDate("2026-03-15")
		require.NoError(t, err)
		assert.Equal(t, "2026-03-15", date)
	})

	t.Run("Invalid", func(t *testing.T) {
		for _, bad := range []string{"15-03-2026", "2026/03/15", "2026-13-01", "yesterday"} {
			_, err := normalizeReportDate(bad)
			assert.True(t, IsInvalidReportDate(err), "expected invalid date error for %q", bad)
		}
	})
}

func TestSanitizeSheetName(t *testing.T) {
	assert.Equal(t, "Carlos Rodriguez", sanitizeSheetName("Carlos Rodriguez"))
	assert.Equal(t, "a_b_c_d_e_f_g", sanitizeSheetName("a:b\\c/d?e*f[g"))
	assert.Equal(t, "Sheet", sanitizeSheetName(""))

	long := sanitizeSheetName("messenger with a very long display name")
	assert.Len(t, long, 31)
}

func TestDailyReport(t *testing.T) {
	testDB := testingutil.RequireTestDB(t)
	fixtures := testingutil.NewTestFixtures(testDB)
	flow := newReportFlowForTest(testDB)
	ctx := testingutil.CreateTestContext()
	metadata := NewClientMetadata("127.0.0.1", "test-agent")

	carlos, err := fixtures.CreateTestMessenger("Carlos Rodriguez")
	require.NoError(t, err)
	maria, err := fixtures.CreateTestMessenger("Maria Gonzalez")
	require.NoError(t, err)

	day := time.Date(2026, 3, 15, 8, 30, 0, 0, time.UTC)
	_, err = fixtures.CreateTestDispatch(carlos, day, map[string]string{
		"4532-0001": models.CardTypeDebit,
		"4532-0002": models.CardTypeBulk,
	})
	require.NoError(t, err)
	_, err = fixtures.CreateTestDispatch(carlos, day.Add(3*time.Hour), map[string]string{
		"4532-0003": models.CardTypeTracking,
	})
	require.NoError(t, err)
	_, err = fixtures.CreateTestDispatch(maria, day.Add(time.Hour), map[string]string{
		"4532-0004": models.CardTypeDebit,
	})
	require.NoError(t, err)
	// Different date, must not leak into the report
	_, err = fixtures.CreateTestDispatch(maria, day.AddDate(0, 0, 1), map[string]string{
		"4532-0005": models.CardTypeDebit,
	})
	require.NoError(t, err)

	report, err := flow.DailyReport(ctx, "2026-03-15", metadata)
	require.NoError(t, err)

	assert.Equal(t, "2026-03-15", report.Date)
	assert.Equal(t, 2, report.TotalMessengers)
	assert.Equal(t, 3, report.TotalDispatches)
	assert.Equal(t, 4, report.TotalCards)

	carlosEntry := report.Messengers[carlos.ID.String()]
	require.NotNil(t, carlosEntry)
	assert.Equal(t, "Carlos Rodriguez", carlosEntry.MessengerName)
	assert.Equal(t, carlos.ContactNumber, carlosEntry.MessengerContact)
	assert.Equal(t, 3, carlosEntry.TotalCards)
	require.Len(t, carlosEntry.Dispatches, 2)
	// Dispatches within a messenger appear in chronological order
	assert.Equal(t, 2, carlosEntry.Dispatches[0].Cards)
	assert.Equal(t, 1, carlosEntry.Dispatches[1].Cards)

	mariaEntry := report.Messengers[maria.ID.String()]
	require.NotNil(t, mariaEntry)
	assert.Equal(t, 1, mariaEntry.TotalCards)
	require.Len(t, mariaEntry.Dispatches, 1)
	require.Len(t, mariaEntry.Dispatches[0].Items, 1)
	assert.Equal(t, "4532-0004", mariaEntry.Dispatches[0].Items[0].CardNumber)
}

func TestDailyReportEmptyDate(t *testing.T) {
	testDB := testingutil.RequireTestDB(t)
	flow := newReportFlowForTest(testDB)
	ctx := testingutil.CreateTestContext()
	metadata := NewClientMetadata("127.0.0.1", "test-agent")

	report, err := flow.DailyReport(ctx, "2026-01-01", metadata)
	require.NoError(t, err)
	assert.Zero(t, report.TotalMessengers)
	assert.Zero(t, report.TotalDispatches)
	assert.Zero(t, report.TotalCards)
	assert.Empty(t, report.Messengers)
}

func TestDailyReportDeletedMessengerContact(t *testing.T) {
	testDB := testingutil.RequireTestDB(t)
	fixtures := testingutil.NewTestFixtures(testDB)
	flow := newReportFlowForTest(testDB)
	ctx := testingutil.CreateTestContext()
	metadata := NewClientMetadata("127.0.0.1", "test-agent")

	messenger, err := fixtures.CreateTestMessenger("Luis Perez")
	require.NoError(t, err)

	day := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	dispatch, err := fixtures.CreateTestDispatch(messenger, day, map[string]string{
		"4532-0006": models.CardTypeDebit,
	})
	require.NoError(t, err)

	// Detach the dispatch from the FK cascade, then drop the messenger. The
	// report must still carry the snapshotted name with a sentinel contact.
	orphanID := dispatch.ID
	require.NoError(t, testDB.DB.Exec("ALTER TABLE dispatches DROP CONSTRAINT dispatches_messenger_id_fkey").Error)
	require.NoError(t, testDB.DB.Delete(&models.Messenger{}, "id = ?", messenger.ID).Error)

	report, err := flow.DailyReport(ctx, "2026-03-15", metadata)
	require.NoError(t, err)

	entry := report.Messengers[messenger.ID.String()]
	require.NotNil(t, entry)
	assert.Equal(t, "Luis Perez", entry.MessengerName)
	assert.Equal(t, utils.ContactUnavailable, entry.MessengerContact)
	require.Len(t, entry.Dispatches, 1)
	assert.Equal(t, orphanID.String(), entry.Dispatches[0].ID)
}

func TestExportDailyReportExcel(t *testing.T) {
	testDB := testingutil.RequireTestDB(t)
	fixtures := testingutil.NewTestFixtures(testDB)
	flow := newReportFlowForTest(testDB)
	ctx := testingutil.CreateTestContext()
	metadata := NewClientMetadata("127.0.0.1", "test-agent")

	carlos, err := fixtures.CreateTestMessenger("Carlos Rodriguez")
	require.NoError(t, err)

	day := time.Date(2026, 3, 15, 14, 45, 30, 0, time.UTC)
	_, err = fixtures.CreateTestDispatch(carlos, day, map[string]string{
		"4532-0007": models.CardTypeDebit,
	})
	require.NoError(t, err)

	filename, data, err := flow.ExportDailyReportExcel(ctx, "2026-03-15", metadata)
	require.NoError(t, err)
	assert.Equal(t, "dispatch_report_2026-03-15.xlsx", filename)
	require.NotEmpty(t, data)

	xl, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer xl.Close()

	sheets := xl.GetSheetList()
	assert.Contains(t, sheets, "Summary")
	assert.Contains(t, sheets, "Carlos Rodriguez")

	totalCards, err := xl.GetCellValue("Summary", "B4")
	require.NoError(t, err)
	assert.Equal(t, "1", totalCards)

	header, err := xl.GetCellValue("Carlos Rodriguez", "A1")
	require.NoError(t, err)
	assert.Equal(t, "SUMMARY Carlos Rodriguez", header)

	cardNumber, err := xl.GetCellValue("Carlos Rodriguez", "E3")
	require.NoError(t, err)
	assert.Equal(t, "4532-0007", cardNumber)

	timeOfDay, err := xl.GetCellValue("Carlos Rodriguez", "D3")
	require.NoError(t, err)
	assert.Equal(t, "14:45:30", timeOfDay)

	t.Run("InvalidDate", func(t *testing.T) {
		_, _, err := flow.ExportDailyReportExcel(ctx, "03/15/2026", metadata)
		assert.True(t, IsInvalidReportDate(err))
	})
}
