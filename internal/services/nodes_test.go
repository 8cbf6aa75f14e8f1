package services

import (
	"testing"

	"github.com/localnerve/mparser-center/internal/models"
	"github.com/localnerve/mparser-center/internal/testutil"
	"github.com/localnerve/mparser-center/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeListPagination(t *testing.T) {
	db := testutil.NewDB(t)
	for i := 0; i < 5; i++ {
		seedGateway(t, db)
	}
	offline := seedGateway(t, db)
	require.NoError(t, GatewayView.Logout(db, offline.ID))

	page, err := GatewayView.List(db, PageQuery{Page: 1, PageSize: 4}, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 6, page.Total)
	assert.Len(t, page.List, 4)
	assert.Equal(t, offline.ID, page.List[0].ID, "newest first")

	page, err = GatewayView.List(db, PageQuery{Page: 2, PageSize: 4}, nil)
	require.NoError(t, err)
	assert.Len(t, page.List, 2)

	status := models.StatusOffline
	page, err = GatewayView.List(db, PageQuery{Page: 1, PageSize: 10}, &status)
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)
	require.Len(t, page.List, 1)
	assert.Equal(t, offline.ID, page.List[0].ID)
}

func TestScannerViewIncludesRelations(t *testing.T) {
	db := testutil.NewDB(t)
	gw := seedGateway(t, db)
	sc := seedScanner(t, db)
	nds := seedNDS(t, db, 2)

	_, err := ScannerView.SetGateway(db, sc.ID, gw.ID)
	require.NoError(t, err)
	_, err = ScannerNDS.AddMany(db, sc.ID, ids(nds))
	require.NoError(t, err)

	got, err := ScannerView.Get(db, sc.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Gateway)
	assert.Equal(t, gw.ID, got.Gateway.ID)
	assert.ElementsMatch(t, ids(nds), ids(got.NDSList))

	page, err := ScannerView.List(db, PageQuery{Page: 1, PageSize: 10}, nil)
	require.NoError(t, err)
	require.Len(t, page.List, 1)
	assert.Len(t, page.List[0].NDSList, 2)
}

func TestNodeUpdate(t *testing.T) {
	db := testutil.NewDB(t)
	p, err := RegisterParser(db, RegisterInput{Port: 7000}, "10.0.0.3")
	require.NoError(t, err)

	got, err := ParserView.Update(db, p.ID, NodeUpdate{NodeName: str("parser-east"), Switch: flex(0), Threads: flex(16)})
	require.NoError(t, err)
	assert.Equal(t, "parser-east", got.NodeName)
	assert.Equal(t, 0, got.Switch)
	assert.Equal(t, 16, got.Threads)
	assert.Equal(t, 7000, got.Port)

	_, err = ParserView.Update(db, p.ID, NodeUpdate{Status: flex(3)})
	requireErrorType(t, err, types.TypeInvalidArgument, MessageInvalidStatus)

	_, err = ParserView.Update(db, p.ID+1, NodeUpdate{Status: flex(1)})
	requireErrorType(t, err, types.TypeNotFound, "解析器不存在")

	// Gateways have no thread count; the field is ignored
	gw := seedGateway(t, db)
	_, err = GatewayView.Update(db, gw.ID, NodeUpdate{Threads: flex(3)})
	require.NoError(t, err)
}

func TestNodeLogout(t *testing.T) {
	db := testutil.NewDB(t)
	sc := seedScanner(t, db)

	require.NoError(t, ScannerView.Logout(db, sc.ID))
	got, err := ScannerView.Get(db, sc.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusOffline, got.Status)

	requireErrorType(t, ScannerView.Logout(db, 999), types.TypeNotFound, "扫描器不存在")
}

func TestSetGatewayAndGatewayDeletion(t *testing.T) {
	db := testutil.NewDB(t)
	gw := seedGateway(t, db)
	p, err := RegisterParser(db, RegisterInput{Port: 7000}, "10.0.0.3")
	require.NoError(t, err)

	_, err = ParserView.SetGateway(db, p.ID, gw.ID+10)
	requireErrorType(t, err, types.TypeNotFound, "网关不存在")

	_, err = ParserView.SetGateway(db, p.ID+10, gw.ID)
	requireErrorType(t, err, types.TypeNotFound, "解析器不存在")

	got, err := ParserView.SetGateway(db, p.ID, gw.ID)
	require.NoError(t, err)
	require.NotNil(t, got.GatewayID)
	assert.Equal(t, gw.ID, *got.GatewayID)

	require.NoError(t, GatewayView.Delete(db, gw.ID))
	got, err = ParserView.Get(db, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got.GatewayID)
	assert.Nil(t, got.Gateway)

	requireErrorType(t, GatewayView.Delete(db, gw.ID), types.TypeNotFound, "网关不存在")
}
