package fixtures_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/glekoz/rvdesk/internal/fixtures"
	"github.com/glekoz/rvdesk/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	s := fixtures.Default()

	assert.Len(t, s.Notices, 5)
	assert.Len(t, s.Equipment, 6)
	assert.Len(t, s.Parts, 5)
	assert.Len(t, s.InspectionLogs, 4)
	assert.Len(t, s.OperationLogs, 5)

	assert.Equal(t, models.Part{
		ID: 2, Name: "음향측심기 트랜스듀서", PartNo: "MB-T-002", Equipment: "멀티빔 음향측심기",
		Type: models.PartSpare, UnitPrice: 2800000, TotalQty: 5, UsedQty: 1, RemainQty: 4,
		FirstShipDate: "2024-06-20",
	}, s.Parts[1])
	assert.Equal(t, models.StatusInactive, s.Equipment[5].Status)
	assert.Equal(t, models.CategoryReport, s.Notices[4].Category)
}

func TestLoad_NormalizesPartType(t *testing.T) {
	s, err := fixtures.Load(strings.NewReader("parts:\n  - {id: 1, type: whatever}\n"))

	require.NoError(t, err)
	assert.Equal(t, models.PartStore, s.Parts[0].Type)
}

func TestLoad_Empty(t *testing.T) {
	s, err := fixtures.Load(strings.NewReader(""))

	require.NoError(t, err)
	assert.Empty(t, s.Notices)
}

func TestLoad_DuplicateID(t *testing.T) {
	_, err := fixtures.Load(strings.NewReader("equipment:\n  - {id: 1}\n  - {id: 1}\n"))

	assert.ErrorIs(t, err, fixtures.ErrDuplicateID)
}

func TestLoad_UnknownField(t *testing.T) {
	_, err := fixtures.Load(strings.NewReader("notices:\n  - {id: 1, colour: red}\n"))

	assert.Error(t, err)
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("operationLogs:\n  - {id: 9, equipment: CTD}\n"), 0644))

	s, err := fixtures.File{Path: path}.Seed(context.Background())

	require.NoError(t, err)
	require.Len(t, s.OperationLogs, 1)
	assert.Equal(t, "CTD", s.OperationLogs[0].Equipment)
}

func TestFileSource_Missing(t *testing.T) {
	_, err := fixtures.File{Path: filepath.Join(t.TempDir(), "nope.yaml")}.Seed(context.Background())

	assert.Error(t, err)
}
