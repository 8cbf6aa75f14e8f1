// handlers_test.go
//
// Management-plane data service for the MParser collection fleet
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of mparser-center.
// mparser-center is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// mparser-center is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with mparser-center.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/mparser-center/internal/config"
	"github.com/localnerve/mparser-center/internal/logger"
	"github.com/localnerve/mparser-center/internal/models"
	"github.com/localnerve/mparser-center/internal/probe"
	"github.com/localnerve/mparser-center/internal/testutil"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"
	"gorm.io/gorm"
)

type okFTP struct{}

func (okFTP) Login(string, string) error { return nil }
func (okFTP) ChangeDir(string) error     { return nil }
func (okFTP) Quit() error                { return nil }

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	log := logger.Discard()

	prober := probe.New(
		probe.WithLogger(log),
		probe.WithRegisterer(prometheus.NewRegistry()),
		probe.WithFTPDialer(func(context.Context, string) (probe.FTPConn, error) { return okFTP{}, nil }),
		probe.WithSSHDialer(func(context.Context, string, *ssh.ClientConfig) (probe.SSHConn, error) {
			return nil, errors.New("ssh: handshake failed: EOF")
		}),
	)

	app := NewApp(Deps{
		Config:    &config.Config{Env: "test", DBType: "sqlite", DBDatabase: "test", Port: "9002", ProbeTimeout: time.Second},
		DB:        db,
		Log:       log,
		Prober:    prober,
		StartedAt: time.Now(),
	})
	return app, db
}

func do(t *testing.T, app *fiber.App, method, path string, body interface{}, headers ...string) *http.Response {
	t.Helper()
	var req *http.Request
	if body != nil {
		var raw []byte
		switch b := body.(type) {
		case string:
			raw = []byte(b)
		default:
			var err error
			raw, err = json.Marshal(b)
			require.NoError(t, err)
		}
		req = httptest.NewRequest(method, path, bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func seedServers(t *testing.T, db *gorm.DB, n int) []uint {
	t.Helper()
	ids := make([]uint, 0, n)
	for i := 0; i < n; i++ {
		s := models.NDSServer{
			Name: fmt.Sprintf("NDS-%d", i+1), Address: fmt.Sprintf("10.9.0.%d", i+1), Port: 21,
			Protocol: models.ProtocolFTP, Account: "mr", Password: "secret",
			MROPath: models.DefaultMROPath, MDTPath: models.DefaultMDTPath, Switch: 1,
		}
		require.NoError(t, db.Create(&s).Error)
		ids = append(ids, s.ID)
	}
	return ids
}

func TestRegisterGateway(t *testing.T) {
	app, _ := newTestApp(t)

	resp := do(t, app, "POST", "/api/gateway/register", map[string]interface{}{"id": -1, "port": 8080},
		fiber.HeaderXForwardedFor, "10.0.0.5, 172.16.0.1")
	testutil.AssertStatus(t, resp, fiber.StatusOK)

	var gw models.Gateway
	env := testutil.ParseEnvelope(t, resp, &gw)
	assert.Equal(t, 200, env.Code)
	assert.NotZero(t, env.Timestamp)
	assert.Equal(t, fmt.Sprintf("Gateway-%d", gw.ID), gw.NodeName)
	assert.Equal(t, "10.0.0.5", gw.Host)
	assert.Equal(t, 8080, gw.Port)
	assert.Equal(t, models.StatusOnline, gw.Status)

	// Field names bind case-insensitively
	resp = do(t, app, "POST", "/api/gateway/register", fmt.Sprintf(`{"ID": %d, "Port": "9090"}`, gw.ID),
		"X-Real-IP", "10.0.0.6")
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	var again models.Gateway
	testutil.ParseEnvelope(t, resp, &again)
	assert.Equal(t, gw.ID, again.ID)
	assert.Equal(t, 9090, again.Port)
	assert.Equal(t, "10.0.0.6", again.Host)
}

func TestRegisterErrors(t *testing.T) {
	app, _ := newTestApp(t)

	resp := do(t, app, "POST", "/api/scanner/register", map[string]interface{}{"id": -1})
	testutil.AssertStatus(t, resp, fiber.StatusBadRequest)
	env := testutil.ParseEnvelope(t, resp, nil)
	assert.Equal(t, 400, env.Code)
	assert.Equal(t, "端口号不能为空", env.Message)
	assert.Equal(t, "null", string(env.Data))

	// No body, a non-JSON body and an unreadable port all read as a missing port
	for _, body := range []interface{}{nil, "", "port=8080", `{"port": "abc"}`} {
		resp = do(t, app, "POST", "/api/gateway/register", body)
		testutil.AssertStatus(t, resp, fiber.StatusBadRequest)
		assert.Equal(t, "端口号不能为空", testutil.ParseEnvelope(t, resp, nil).Message, "body %v", body)
	}

	resp = do(t, app, "POST", "/api/parser/register", map[string]interface{}{"id": 77, "port": 7000})
	testutil.AssertStatus(t, resp, fiber.StatusNotFound)
	env = testutil.ParseEnvelope(t, resp, nil)
	assert.Equal(t, "解析器不存在", env.Message)
}

func TestGatewaySingleAdd(t *testing.T) {
	app, db := newTestApp(t)
	ids := seedServers(t, db, 1)

	resp := do(t, app, "POST", "/api/gateway/register", map[string]interface{}{"port": 8080})
	var gw models.Gateway
	testutil.ParseEnvelope(t, resp, &gw)
	path := fmt.Sprintf("/api/gateway/%d/nds", gw.ID)

	resp = do(t, app, "POST", path, map[string]interface{}{"ndsId": ids[0]})
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	assert.Equal(t, "关联添加成功", testutil.ParseEnvelope(t, resp, nil).Message)

	resp = do(t, app, "POST", path, map[string]interface{}{"ndsId": ids[0]})
	testutil.AssertStatus(t, resp, fiber.StatusBadRequest)
	assert.Equal(t, "关联已存在", testutil.ParseEnvelope(t, resp, nil).Message)

	resp = do(t, app, "GET", path, nil)
	var list []models.NDSServer
	testutil.ParseEnvelope(t, resp, &list)
	require.Len(t, list, 1)
	assert.Equal(t, ids[0], list[0].ID)
}

func TestGatewayReplaceAndRemove(t *testing.T) {
	app, db := newTestApp(t)
	ids := seedServers(t, db, 3)

	resp := do(t, app, "POST", "/api/gateway/register", map[string]interface{}{"port": 8080})
	var gw models.Gateway
	testutil.ParseEnvelope(t, resp, &gw)
	path := fmt.Sprintf("/api/gateway/%d/nds", gw.ID)

	resp = do(t, app, "PUT", path, map[string]interface{}{"ndsIds": ids[0]})
	testutil.AssertStatus(t, resp, fiber.StatusBadRequest)
	assert.Equal(t, MessageNDSIDsNotArray, testutil.ParseEnvelope(t, resp, nil).Message)

	resp = do(t, app, "PUT", path, map[string]interface{}{"ndsIds": []uint{ids[0], 999}})
	testutil.AssertStatus(t, resp, fiber.StatusBadRequest)
	assert.Equal(t, "存在无效的NDS ID", testutil.ParseEnvelope(t, resp, nil).Message)

	resp = do(t, app, "PUT", path, map[string]interface{}{"ndsIds": []uint{ids[0], ids[1]}})
	testutil.AssertStatus(t, resp, fiber.StatusOK)

	resp = do(t, app, "PUT", path, map[string]interface{}{"ndsIds": []uint{ids[2]}})
	var list []models.NDSServer
	testutil.ParseEnvelope(t, resp, &list)
	require.Len(t, list, 1)
	assert.Equal(t, ids[2], list[0].ID)

	resp = do(t, app, "DELETE", fmt.Sprintf("%s/%d", path, ids[0]), nil)
	testutil.AssertStatus(t, resp, fiber.StatusNotFound)
	assert.Equal(t, "关联不存在", testutil.ParseEnvelope(t, resp, nil).Message)

	resp = do(t, app, "DELETE", fmt.Sprintf("%s/%d", path, ids[2]), nil)
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	assert.Equal(t, "关联删除成功", testutil.ParseEnvelope(t, resp, nil).Message)
}

func TestScannerBatchLinks(t *testing.T) {
	app, db := newTestApp(t)
	ids := seedServers(t, db, 2)

	resp := do(t, app, "POST", "/api/scanner/register", map[string]interface{}{"port": 9000})
	var sc models.Scanner
	testutil.ParseEnvelope(t, resp, &sc)

	resp = do(t, app, "POST", "/api/scanner/nds", map[string]interface{}{"scannerId": sc.ID, "ndsIds": []interface{}{ids[0], "x"}})
	testutil.AssertStatus(t, resp, fiber.StatusBadRequest)
	assert.Equal(t, MessageNDSIDsNotNumbers, testutil.ParseEnvelope(t, resp, nil).Message)

	resp = do(t, app, "POST", "/api/scanner/nds", map[string]interface{}{"scannerId": sc.ID, "ndsIds": []uint{ids[0]}})
	testutil.AssertStatus(t, resp, fiber.StatusOK)

	// Re-sending a linked id alongside a new one is not an error
	resp = do(t, app, "POST", fmt.Sprintf("/api/scanner/%d/nds", sc.ID), map[string]interface{}{"ndsIds": ids})
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	var got models.Scanner
	env := testutil.ParseEnvelope(t, resp, &got)
	assert.Equal(t, "关联添加成功", env.Message)
	assert.Len(t, got.NDSList, 2)

	resp = do(t, app, "POST", "/api/scanner/nds", map[string]interface{}{"scannerId": sc.ID, "ndsIds": []uint{999}})
	testutil.AssertStatus(t, resp, fiber.StatusNotFound)
	assert.Equal(t, "部分NDS服务器不存在", testutil.ParseEnvelope(t, resp, nil).Message)

	resp = do(t, app, "DELETE", "/api/scanner/nds", map[string]interface{}{"scannerId": sc.ID, "ndsIds": []uint{ids[0], 999}})
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	got = models.Scanner{}
	testutil.ParseEnvelope(t, resp, &got)
	require.Len(t, got.NDSList, 1)
	assert.Equal(t, ids[1], got.NDSList[0].ID)
}

func TestNodeCrud(t *testing.T) {
	app, _ := newTestApp(t)

	resp := do(t, app, "POST", "/api/parser/register", map[string]interface{}{"port": 7000})
	var p models.Parser
	env := testutil.ParseEnvelope(t, resp, &p)
	assert.Equal(t, "解析器注册成功", env.Message)
	assert.Equal(t, 4, p.Threads)

	resp = do(t, app, "GET", "/api/gateway/register", nil)
	testutil.AssertStatus(t, resp, fiber.StatusBadRequest)

	resp = do(t, app, "POST", "/api/gateway/register", map[string]interface{}{"port": 8080})
	var gw models.Gateway
	testutil.ParseEnvelope(t, resp, &gw)

	resp = do(t, app, "POST", "/api/parser/gateway", map[string]interface{}{"parserId": p.ID, "gatewayId": gw.ID})
	testutil.AssertStatus(t, resp, fiber.StatusOK)

	resp = do(t, app, "PUT", fmt.Sprintf("/api/parser/%d", p.ID), map[string]interface{}{"id": 999, "threads": 12})
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	p = models.Parser{}
	testutil.ParseEnvelope(t, resp, &p)
	assert.Equal(t, 12, p.Threads)
	require.NotNil(t, p.Gateway)
	assert.Equal(t, gw.ID, p.Gateway.ID)

	resp = do(t, app, "POST", fmt.Sprintf("/api/parser/%d/logout", p.ID), nil)
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	assert.Equal(t, "登出成功", testutil.ParseEnvelope(t, resp, nil).Message)

	resp = do(t, app, "GET", "/api/parser?status=0", nil)
	var page struct {
		Total int64           `json:"total"`
		List  []models.Parser `json:"list"`
	}
	testutil.ParseEnvelope(t, resp, &page)
	assert.EqualValues(t, 1, page.Total)

	resp = do(t, app, "DELETE", fmt.Sprintf("/api/parser/%d", p.ID), nil)
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	resp = do(t, app, "GET", fmt.Sprintf("/api/parser/%d", p.ID), nil)
	testutil.AssertStatus(t, resp, fiber.StatusNotFound)
}

func TestNDSRoutes(t *testing.T) {
	app, _ := newTestApp(t)

	body := map[string]interface{}{"name": "north", "address": "10.1.0.1", "port": 21, "protocol": "FTP", "account": "mr", "password": "secret"}
	resp := do(t, app, "POST", "/api/nds/add", body)
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	var raw map[string]interface{}
	testutil.ParseEnvelope(t, resp, &raw)
	assert.NotContains(t, raw, "password")
	id := uint(raw["id"].(float64))

	resp = do(t, app, "POST", "/api/nds/add", body)
	testutil.AssertStatus(t, resp, fiber.StatusBadRequest)
	assert.Equal(t, "服务器名称或地址端口组合已存在", testutil.ParseEnvelope(t, resp, nil).Message)

	resp = do(t, app, "GET", "/api/nds/list?keyword=nor", nil)
	var page struct {
		Total int64 `json:"total"`
	}
	testutil.ParseEnvelope(t, resp, &page)
	assert.EqualValues(t, 1, page.Total)

	resp = do(t, app, "POST", fmt.Sprintf("/api/nds/%d/test", id), nil)
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	var result probe.Result
	testutil.ParseEnvelope(t, resp, &result)
	assert.Equal(t, probe.Result{IsConnected: true, Message: "连接成功"}, result)

	resp = do(t, app, "PUT", fmt.Sprintf("/api/nds/%d", id), map[string]interface{}{"protocol": "sftp", "port": 22})
	testutil.AssertStatus(t, resp, fiber.StatusOK)

	// A failed probe is a result, not an HTTP error
	resp = do(t, app, "POST", fmt.Sprintf("/api/nds/%d/test", id), nil)
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	testutil.ParseEnvelope(t, resp, &result)
	assert.False(t, result.IsConnected)
	assert.Equal(t, "ssh: handshake failed: EOF", result.Message)

	resp = do(t, app, "POST", "/api/nds/999/test", nil)
	testutil.AssertStatus(t, resp, fiber.StatusNotFound)
	assert.Equal(t, "服务器不存在", testutil.ParseEnvelope(t, resp, nil).Message)

	resp = do(t, app, "DELETE", fmt.Sprintf("/api/nds/%d", id), nil)
	testutil.AssertStatus(t, resp, fiber.StatusOK)
}

func TestTaskRoutes(t *testing.T) {
	app, _ := newTestApp(t)

	resp := do(t, app, "POST", "/api/task/add", map[string]interface{}{"taskName": "t1", "eNodeBIDs": []int{}})
	testutil.AssertStatus(t, resp, fiber.StatusBadRequest)
	assert.Equal(t, "请提供有效的基站ID列表", testutil.ParseEnvelope(t, resp, nil).Message)

	resp = do(t, app, "POST", "/api/task/add", map[string]interface{}{
		"taskName": "t1", "dataType": "MDT",
		"startTime": "2026-03-01T00:00:00Z", "endTime": "2026-03-02T00:00:00Z",
		"eNodeBIDs": []int{11, 12},
	})
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	var created struct {
		TaskID uint64 `json:"taskId"`
	}
	testutil.ParseEnvelope(t, resp, &created)
	require.NotZero(t, created.TaskID)

	resp = do(t, app, "PUT", fmt.Sprintf("/api/task/%d/enbs", created.TaskID), map[string]interface{}{"addEnbs": []int{13}, "removeEnbs": []int{11}})
	testutil.AssertStatus(t, resp, fiber.StatusOK)

	resp = do(t, app, "GET", fmt.Sprintf("/api/task/detail/%d", created.TaskID), nil)
	var task models.Task
	testutil.ParseEnvelope(t, resp, &task)
	require.Len(t, task.EnbTasks, 2)
	assert.Equal(t, 12, task.EnbTasks[0].ENodeBID)
	assert.Equal(t, 13, task.EnbTasks[1].ENodeBID)

	resp = do(t, app, "DELETE", fmt.Sprintf("/api/task/%d", created.TaskID), nil)
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	resp = do(t, app, "GET", fmt.Sprintf("/api/task/detail/%d", created.TaskID), nil)
	testutil.AssertStatus(t, resp, fiber.StatusNotFound)
}

func TestCellRoutes(t *testing.T) {
	app, _ := newTestApp(t)

	// Upper-case keys from spreadsheet-shaped clients bind as well
	body := map[string]interface{}{"CGI": "460-00-500-1", "eNodeBID": "500", "PCI": 12, "Earfcn": 1850, "userLabel": "east-1"}
	resp := do(t, app, "POST", "/api/cell/add", body)
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	assert.Equal(t, "新增成功", testutil.ParseEnvelope(t, resp, nil).Message)

	resp = do(t, app, "POST", "/api/cell/add", body)
	testutil.AssertStatus(t, resp, fiber.StatusBadRequest)
	assert.Equal(t, "CGI已存在,不能重复添加", testutil.ParseEnvelope(t, resp, nil).Message)

	resp = do(t, app, "POST", "/api/cell/add", map[string]interface{}{"cgi": "460-00-501-1", "eNodeBID": 501, "pci": 3, "earfcn": 100})
	testutil.AssertStatus(t, resp, fiber.StatusOK)

	resp = do(t, app, "GET", "/api/cell/list?keyword=east", nil)
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	var page struct {
		Total    int64             `json:"total"`
		PageSize int               `json:"pageSize"`
		List     []models.CellData `json:"list"`
	}
	testutil.ParseEnvelope(t, resp, &page)
	assert.EqualValues(t, 1, page.Total)
	assert.Equal(t, 50, page.PageSize)
	require.Len(t, page.List, 1)
	assert.Equal(t, 500, page.List[0].ENodeBID)

	resp = do(t, app, "GET", "/api/cell/list?field=pci&keyword=3", nil)
	testutil.ParseEnvelope(t, resp, &page)
	require.Len(t, page.List, 1)
	assert.Equal(t, "460-00-501-1", page.List[0].CGI)

	resp = do(t, app, "POST", "/api/cell/update", map[string]interface{}{"cgi": "460-00-501-1", "azimuth": 120})
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	assert.Equal(t, "更新成功", testutil.ParseEnvelope(t, resp, nil).Message)

	resp = do(t, app, "POST", "/api/cell/update", map[string]interface{}{"cgi": "460-00-404-1", "azimuth": 120})
	testutil.AssertStatus(t, resp, fiber.StatusNotFound)
	assert.Equal(t, "没有字段需要更新", testutil.ParseEnvelope(t, resp, nil).Message)

	var check struct {
		Exists bool `json:"exists"`
	}
	resp = do(t, app, "GET", "/api/cell/check/460-00-500-1", nil)
	testutil.ParseEnvelope(t, resp, &check)
	assert.True(t, check.Exists)

	resp = do(t, app, "DELETE", "/api/cell/remove/460-00-500-1", nil)
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	resp = do(t, app, "DELETE", "/api/cell/remove/460-00-500-1", nil)
	testutil.AssertStatus(t, resp, fiber.StatusNotFound)
	assert.Equal(t, "未找到要删除的记录", testutil.ParseEnvelope(t, resp, nil).Message)

	resp = do(t, app, "GET", "/api/cell/check/460-00-500-1", nil)
	testutil.ParseEnvelope(t, resp, &check)
	assert.False(t, check.Exists)

	for _, bad := range []interface{}{
		map[string]interface{}{"cgis": "460-00-501-1"},
		map[string]interface{}{"cgis": []string{}},
		map[string]interface{}{},
	} {
		resp = do(t, app, "POST", "/api/cell/batch-delete", bad)
		testutil.AssertStatus(t, resp, fiber.StatusBadRequest)
		assert.Equal(t, "请提供有效的CGI列表", testutil.ParseEnvelope(t, resp, nil).Message)
	}

	resp = do(t, app, "POST", "/api/cell/batch-delete", map[string]interface{}{"cgis": []string{"460-00-501-1", "460-00-404-1"}})
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	var deleted struct {
		DeletedCount int64 `json:"deletedCount"`
	}
	env := testutil.ParseEnvelope(t, resp, &deleted)
	assert.Equal(t, "批量删除成功", env.Message)
	assert.EqualValues(t, 1, deleted.DeletedCount)
}

func TestAppRoutes(t *testing.T) {
	app, _ := newTestApp(t)

	resp := do(t, app, "GET", "/", nil)
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	var status struct {
		Status string `json:"status"`
	}
	testutil.ParseEnvelope(t, resp, &status)
	assert.Equal(t, "程序运行中", status.Status)

	resp = do(t, app, "GET", "/healthz", nil)
	testutil.AssertStatus(t, resp, fiber.StatusOK)

	resp = do(t, app, "GET", "/api/nowhere", nil)
	testutil.AssertStatus(t, resp, fiber.StatusNotFound)
	env := testutil.ParseEnvelope(t, resp, nil)
	assert.Equal(t, 404, env.Code)
	assert.Equal(t, MessageRouteNotFound, env.Message)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}
