package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/localnerve/mparser-center/internal/models"
	"github.com/localnerve/mparser-center/internal/testutil"
	"github.com/localnerve/mparser-center/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterNewGateway(t *testing.T) {
	db := testutil.NewDB(t)

	gw, err := RegisterGateway(db, RegisterInput{ID: flex(-1), Port: 8080}, "10.0.0.5")
	require.NoError(t, err)

	assert.NotZero(t, gw.ID)
	assert.Equal(t, models.StatusOnline, gw.Status)
	assert.Equal(t, "10.0.0.5", gw.Host)
	assert.Equal(t, 8080, gw.Port)
	assert.Equal(t, 0, gw.Switch)
	assert.Equal(t, fmt.Sprintf("Gateway-%d", gw.ID), gw.NodeName)

	var stored models.Gateway
	require.NoError(t, db.First(&stored, gw.ID).Error)
	assert.Equal(t, gw.NodeName, stored.NodeName)
}

func TestRegisterNewMarkers(t *testing.T) {
	db := testutil.NewDB(t)

	for _, in := range []RegisterInput{
		{Port: 1},
		{ID: flex(0), Port: 2},
		{ID: flex(-1), Port: 3},
	} {
		_, err := RegisterGateway(db, in, "10.0.0.5")
		require.NoError(t, err)
	}

	var count int64
	require.NoError(t, db.Model(&models.Gateway{}).Count(&count).Error)
	assert.EqualValues(t, 3, count)
}

func TestRegisterExistingIsIdempotent(t *testing.T) {
	db := testutil.NewDB(t)

	first, err := RegisterScanner(db, RegisterInput{Port: 9000}, "10.0.0.2")
	require.NoError(t, err)
	require.NoError(t, db.Model(first).Update("Status", models.StatusOffline).Error)

	in := RegisterInput{ID: flex(int64(first.ID)), Port: 9100}
	a, err := RegisterScanner(db, in, "10.0.0.9")
	require.NoError(t, err)
	b, err := RegisterScanner(db, in, "10.0.0.9")
	require.NoError(t, err)

	assert.Equal(t, a.NodeBase, b.NodeBase)
	assert.Equal(t, first.ID, b.ID)
	assert.Equal(t, first.NodeName, b.NodeName)
	assert.Equal(t, models.StatusOnline, b.Status)
	assert.Equal(t, "10.0.0.9", b.Host)
	assert.Equal(t, 9100, b.Port)

	var count int64
	require.NoError(t, db.Model(&models.Scanner{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRegisterUnknownID(t *testing.T) {
	db := testutil.NewDB(t)

	_, err := RegisterGateway(db, RegisterInput{ID: flex(42), Port: 8080}, "10.0.0.5")
	requireErrorType(t, err, types.TypeNotFound, "网关不存在")

	_, err = RegisterParser(db, RegisterInput{ID: flex(42), Port: 8080}, "10.0.0.5")
	requireErrorType(t, err, types.TypeNotFound, "解析器不存在")

	var count int64
	require.NoError(t, db.Model(&models.Gateway{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRegisterRequiresPort(t *testing.T) {
	db := testutil.NewDB(t)

	_, err := RegisterGateway(db, RegisterInput{ID: flex(-1)}, "10.0.0.5")
	requireErrorType(t, err, types.TypeInvalidArgument, MessagePortRequired)
}

func TestRegisterParserThreads(t *testing.T) {
	db := testutil.NewDB(t)

	p, err := RegisterParser(db, RegisterInput{Port: 7000}, "10.0.0.3")
	require.NoError(t, err)
	assert.Equal(t, DefaultParserThreads, p.Threads)
	assert.Equal(t, 1, p.Switch)
	assert.Equal(t, fmt.Sprintf("Parser-%d", p.ID), p.NodeName)

	p, err = RegisterParser(db, RegisterInput{ID: flex(int64(p.ID)), Port: 7000, Threads: flex(8)}, "10.0.0.3")
	require.NoError(t, err)
	assert.Equal(t, 8, p.Threads)

	// A thread count set earlier survives a re-registration that omits it
	p, err = RegisterParser(db, RegisterInput{ID: flex(int64(p.ID)), Port: 7001}, "10.0.0.3")
	require.NoError(t, err)
	assert.Equal(t, 8, p.Threads)
	assert.Equal(t, 7001, p.Port)
}

func TestTemporaryName(t *testing.T) {
	name := temporaryName("Scanner")
	require.True(t, strings.HasPrefix(name, "Scanner-"))
	assert.Len(t, strings.TrimPrefix(name, "Scanner-"), 7)
	assert.NotEqual(t, name, temporaryName("Scanner"))
}
