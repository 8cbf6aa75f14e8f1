package services

import (
	"fmt"
	"testing"

	"github.com/localnerve/mparser-center/internal/models"
	"github.com/localnerve/mparser-center/internal/testutil"
	"github.com/localnerve/mparser-center/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func cellInput(cgi string, enb int64) CellInput {
	return CellInput{CGI: cgi, ENodeBID: flex(enb), PCI: flex(enb % 504), Earfcn: flex(1850)}
}

func seedCells(t *testing.T, db *gorm.DB) {
	t.Helper()
	for i, label := range []string{"north-1", "north-2", "south-1"} {
		in := cellInput(fmt.Sprintf("460-00-%d-1", 100+i), int64(100+i))
		in.ENBName = str(fmt.Sprintf("ENB-%d", 100+i))
		in.UserLabel = str(label)
		_, err := CreateCell(db, in)
		require.NoError(t, err)
	}
}

func TestCreateCell(t *testing.T) {
	db := testutil.NewDB(t)

	in := cellInput(" 460-00-1234-1 ", 1234)
	in.Longitude = floatPtr(116.397128)
	cell, err := CreateCell(db, in)
	require.NoError(t, err)
	assert.Equal(t, "460-00-1234-1", cell.CGI)
	assert.Nil(t, cell.Azimuth)

	var stored models.CellData
	require.NoError(t, db.First(&stored, "CGI = ?", "460-00-1234-1").Error)
	assert.Equal(t, 1234, stored.ENodeBID)
	require.NotNil(t, stored.Longitude)
	assert.InDelta(t, 116.397128, *stored.Longitude, 1e-6)

	_, err = CreateCell(db, cellInput("460-00-1234-1", 99))
	requireErrorType(t, err, types.TypeConflict, MessageCellExists)

	_, err = CreateCell(db, CellInput{CGI: "460-00-1-1", PCI: flex(1)})
	requireErrorType(t, err, types.TypeInvalidArgument, MessageCellFieldsMissing)
}

func TestListCells(t *testing.T) {
	db := testutil.NewDB(t)
	seedCells(t, db)

	page, err := ListCells(db, PageQuery{Page: 1, PageSize: 50}, "", "")
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.Total)
	require.Len(t, page.List, 3)
	assert.Equal(t, "460-00-100-1", page.List[0].CGI)

	page, err = ListCells(db, PageQuery{Page: 1, PageSize: 50}, "all", "north")
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Total)

	// The keyword also reaches eNBName without a field
	page, err = ListCells(db, PageQuery{Page: 1, PageSize: 50}, "", "ENB-102")
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)

	page, err = ListCells(db, PageQuery{Page: 1, PageSize: 50}, "eNodeBID", "101")
	require.NoError(t, err)
	require.Len(t, page.List, 1)
	assert.Equal(t, "460-00-101-1", page.List[0].CGI)

	// A narrowed field no longer matches other columns
	page, err = ListCells(db, PageQuery{Page: 1, PageSize: 50}, "cgi", "north")
	require.NoError(t, err)
	assert.EqualValues(t, 0, page.Total)

	page, err = ListCells(db, PageQuery{Page: 2, PageSize: 2}, "", "")
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.Total)
	require.Len(t, page.List, 1)
	assert.Equal(t, "460-00-102-1", page.List[0].CGI)

	_, err = ListCells(db, PageQuery{Page: 1, PageSize: 50}, "Password", "x")
	requireErrorType(t, err, types.TypeInvalidArgument, MessageCellFieldInvalid)
}

func TestUpdateCell(t *testing.T) {
	db := testutil.NewDB(t)
	seedCells(t, db)

	require.NoError(t, UpdateCell(db, CellInput{CGI: "460-00-100-1", PCI: flex(7), UserLabel: str("renamed")}))

	var stored models.CellData
	require.NoError(t, db.First(&stored, "CGI = ?", "460-00-100-1").Error)
	assert.Equal(t, 7, stored.PCI)
	assert.Equal(t, 100, stored.ENodeBID)
	require.NotNil(t, stored.UserLabel)
	assert.Equal(t, "renamed", *stored.UserLabel)

	err := UpdateCell(db, CellInput{CGI: "460-00-999-1", PCI: flex(7)})
	requireErrorType(t, err, types.TypeNotFound, MessageCellNotUpdated)

	err = UpdateCell(db, CellInput{CGI: "460-00-100-1"})
	requireErrorType(t, err, types.TypeNotFound, MessageCellNotUpdated)

	err = UpdateCell(db, CellInput{PCI: flex(7)})
	requireErrorType(t, err, types.TypeInvalidArgument, MessageCellFieldsMissing)
}

func TestRemoveCells(t *testing.T) {
	db := testutil.NewDB(t)
	seedCells(t, db)

	require.NoError(t, RemoveCell(db, "460-00-100-1"))
	requireErrorType(t, RemoveCell(db, "460-00-100-1"), types.TypeNotFound, MessageCellNotFound)

	exists, err := CellExists(db, "460-00-101-1")
	require.NoError(t, err)
	assert.True(t, exists)

	// Unknown and repeated CGIs are not counted
	deleted, err := BatchDeleteCells(db, []string{"460-00-101-1", "460-00-101-1", "460-00-102-1", "460-00-404-1"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, deleted)

	exists, err = CellExists(db, "460-00-101-1")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = BatchDeleteCells(db, []string{" ", ""})
	requireErrorType(t, err, types.TypeInvalidArgument, MessageCellListInvalid)
}

func floatPtr(v float64) *float64 {
	return &v
}
