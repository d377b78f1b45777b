package importer_test

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/glekoz/rvdesk/internal/fixtures"
	"github.com/glekoz/rvdesk/internal/importer"
	"github.com/glekoz/rvdesk/internal/models"
	"github.com/glekoz/rvdesk/internal/query"
	"github.com/glekoz/rvdesk/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

func newImporter(t *testing.T) (*importer.Importer, *service.Service, string) {
	t.Helper()
	dir := t.TempDir()
	svc := service.New(fixtures.Set{}, testLogger, service.WithDelays(service.Delays{}))
	im, err := importer.New(importer.Config{Dir: dir, PollInterval: 20 * time.Millisecond, MaxWorkers: 2}, svc, testLogger)
	require.NoError(t, err)
	return im, svc, dir
}

func writeTSV(t *testing.T, dir, name string, lines ...string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(strings.Join(lines, "\n")+"\n"), 0644))
}

func allNotices(t *testing.T, svc *service.Service) []models.Notice {
	t.Helper()
	page, err := svc.ListNotices(context.Background(), query.Params[models.NoticeTarget]{Page: 1, PageSize: 100})
	require.NoError(t, err)
	return page.Items
}

// ===== New =====

func TestNew_CreatesSubdirs(t *testing.T) {
	im, _, dir := newImporter(t)

	assert.DirExists(t, filepath.Join(dir, "completed"))
	assert.DirExists(t, filepath.Join(dir, "errors"))
	assert.Equal(t, filepath.Join(dir, "completed"), im.CompletedPath)
}

func TestNew_MissingDir(t *testing.T) {
	_, err := importer.New(importer.Config{Dir: filepath.Join(t.TempDir(), "nope")}, nil, testLogger)

	assert.Error(t, err)
}

func TestNew_NotADir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.tsv")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	_, err := importer.New(importer.Config{Dir: path}, nil, testLogger)

	assert.Error(t, err)
}

// ===== ProcessFile =====

func TestProcessFile_Notices(t *testing.T) {
	im, svc, dir := newImporter(t)
	writeTSV(t, dir, "n.tsv",
		"title\tauthor\tdate\tcategory\tcontent",
		"출항 안내\t\t2025-11-01\t\t부산항 출항",
		"보고서 제출\t운영팀\t2025-11-02\t보고서\t",
	)

	n, err := im.ProcessFile(context.Background(), "n.tsv")

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	notices := allNotices(t, svc)
	require.Len(t, notices, 2)
	assert.Equal(t, "보고서 제출", notices[0].Title)
	assert.Equal(t, "관리자", notices[1].Author)
	assert.Equal(t, models.CategoryAnnouncement, notices[1].Category)
}

func TestProcessFile_PartsWithBOM(t *testing.T) {
	im, svc, dir := newImporter(t)
	writeTSV(t, dir, "p.tsv",
		"\ufeffname\tpartNo\tequipment\ttype\tunitPrice\ttotalQty\tusedQty\tfirstShipDate",
		"O-ring\tOR-1\tCTD 센서\tSparePart\t1200\t10\t2\t2025-01-01",
	)

	n, err := im.ProcessFile(context.Background(), "p.tsv")

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	page, err := svc.ListParts(context.Background(), query.Params[models.PartTarget]{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 8, page.Items[0].RemainQty)
	assert.Equal(t, models.PartSpare, page.Items[0].Type)
}

func TestProcessFile_UnknownHeader(t *testing.T) {
	im, _, dir := newImporter(t)
	writeTSV(t, dir, "x.tsv", "ship\tcaptain", "Araon\tKim")

	_, err := im.ProcessFile(context.Background(), "x.tsv")

	assert.ErrorIs(t, err, importer.ErrInvalidFileFormat)
}

func TestProcessFile_StopsAtBadLine(t *testing.T) {
	im, svc, dir := newImporter(t)
	writeTSV(t, dir, "e.tsv",
		"name\tstatus\tusage\tremaining\tlastCheck",
		"ADCP\tactive\t10\t100h\t2025-10-01",
		"\tactive\t10\t100h\t2025-10-01",
		"Winch\tstandby\t0\t0h\t2025-10-01",
	)

	n, err := im.ProcessFile(context.Background(), "e.tsv")

	assert.ErrorIs(t, err, service.ErrValidation)
	assert.Contains(t, err.Error(), "line 3")
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, svc.Counts()[models.EntityEquipment])
}

func TestProcessFile_BadNumber(t *testing.T) {
	im, _, dir := newImporter(t)
	writeTSV(t, dir, "p.tsv",
		"name\tpartNo\tequipment\ttype\tunitPrice\ttotalQty\tusedQty\tfirstShipDate",
		"O-ring\tOR-1\tCTD\tStore\tcheap\t1\t0\t",
	)

	_, err := im.ProcessFile(context.Background(), "p.tsv")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unitPrice given: cheap")
}

func TestProcessFile_WrongFieldCount(t *testing.T) {
	im, _, dir := newImporter(t)
	writeTSV(t, dir, "o.tsv",
		"equipment\tstartDate\tendDate\tuseTime\tactivity\tactualUser",
		"CTD\t2025-10-01",
	)

	_, err := im.ProcessFile(context.Background(), "o.tsv")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestProcessFile_Empty(t *testing.T) {
	im, _, dir := newImporter(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty.tsv"), nil, 0644))

	n, err := im.ProcessFile(context.Background(), "empty.tsv")

	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestProcessFile_ManyBatches(t *testing.T) {
	im, svc, dir := newImporter(t)
	lines := []string{"equipment\tstartDate\tinstitution\tuser\tuseStartDate\tuseEndDate\tregistrant\tpurpose"}
	for range 250 {
		lines = append(lines, "CTD\t\t극지연구소\t김연구\t\t\t\t관측")
	}
	writeTSV(t, dir, "i.tsv", lines...)

	n, err := im.ProcessFile(context.Background(), "i.tsv")

	require.NoError(t, err)
	assert.Equal(t, 250, n)
	assert.Equal(t, 250, svc.Counts()[models.EntityInspections])
}

func TestProcessFile_Cancelled(t *testing.T) {
	im, _, dir := newImporter(t)
	writeTSV(t, dir, "n.tsv", "title\tauthor\tdate\tcategory\tcontent", "a\t\t\t\t")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := im.ProcessFile(ctx, "n.tsv")

	assert.ErrorIs(t, err, context.Canceled)
}

// ===== Run =====

func TestRun_MovesFilesAndRecordsFailures(t *testing.T) {
	im, svc, dir := newImporter(t)
	writeTSV(t, dir, "good.tsv", "title\tauthor\tdate\tcategory\tcontent", "항해 일지\t\t\t\t")
	writeTSV(t, dir, "bad.tsv", "what\tever")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip me"), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		im.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		_, errGood := os.Stat(filepath.Join(dir, "completed", "good.tsv"))
		_, errBad := os.Stat(filepath.Join(dir, "errors", "bad.tsv"))
		return errGood == nil && errBad == nil
	}, 5*time.Second, 20*time.Millisecond)

	// файл, появившийся после старта, тоже подхватывается
	writeTSV(t, dir, "late.tsv", "title\tauthor\tdate\tcategory\tcontent", "늦은 공지\t\t\t\t")
	require.Eventually(t, func() bool {
		_, err := os.Stat(filepath.Join(dir, "completed", "late.tsv"))
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}

	assert.FileExists(t, filepath.Join(dir, "notes.txt"))
	assert.Len(t, allNotices(t, svc), 2)

	failures, err := svc.ListImportFailures(context.Background(), query.Params[models.ImportFailureTarget]{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, failures.Items, 1)
	assert.Equal(t, "bad.tsv", failures.Items[0].Filename)
	assert.Contains(t, failures.Items[0].Error, importer.ErrInvalidFileFormat.Error())
}

func TestParsers_HeadersAreDistinct(t *testing.T) {
	seen := map[string]models.Entity{}
	for _, p := range importer.Parsers() {
		key := strings.Join(p.Headers(), "\t")
		_, dup := seen[key]
		assert.False(t, dup, "duplicate layout for %s", p.Entity())
		seen[key] = p.Entity()
	}
	assert.Len(t, seen, 5)
}
