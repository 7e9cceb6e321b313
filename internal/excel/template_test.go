package excel

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/MehmetDemirkok/yurtsever/internal/models"
)

func TestWriteTemplate_Content(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTemplate(&buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(DataSheet)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 3)
	assert.Equal(t, templateHeaders, rows[0])
	assert.Equal(t, "Ahmet Yılmaz", rows[1][0])

	// hidden auxiliary sheet enumerates the valid room types
	visible, err := f.GetSheetVisible(roomTypesSheet)
	require.NoError(t, err)
	assert.False(t, visible)

	roomRows, err := f.GetRows(roomTypesSheet)
	require.NoError(t, err)
	require.Len(t, roomRows, len(models.RoomTypes))
	assert.Equal(t, models.RoomTypes[0], roomRows[0][0])

	// the template must round-trip through the importer's header check
	assert.Contains(t, f.GetSheetList(), instructionsSheet)

	dvs, err := f.GetDataValidations(DataSheet)
	require.NoError(t, err)
	assert.Len(t, dvs, 3)
}

func TestWriteTemplate_HeadersSatisfyImport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTemplate(&buf))

	st := newTestStore(t)
	result, err := Import(&buf, st)
	require.NoError(t, err)

	// the two example rows are themselves valid records
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 0, result.Failed)
}
