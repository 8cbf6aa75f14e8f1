package services

import (
	"fmt"
	"testing"

	"github.com/localnerve/mparser-center/internal/models"
	"github.com/localnerve/mparser-center/internal/types"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func flex(v int64) *types.FlexInt64 {
	f := types.FlexInt64(v)
	return &f
}

func str(s string) *string {
	return &s
}

func seedNDS(t *testing.T, db *gorm.DB, n int) []models.NDSServer {
	t.Helper()
	servers := make([]models.NDSServer, 0, n)
	for i := 0; i < n; i++ {
		s := defaultNDS()
		s.Name = fmt.Sprintf("NDS-%d", i+1)
		s.Address = fmt.Sprintf("192.168.1.%d", i+1)
		s.Account = "mr"
		s.Password = "secret"
		require.NoError(t, db.Create(&s).Error)
		servers = append(servers, s)
	}
	return servers
}

func seedGateway(t *testing.T, db *gorm.DB) *models.Gateway {
	t.Helper()
	gw, err := RegisterGateway(db, RegisterInput{Port: 8080}, "10.0.0.1")
	require.NoError(t, err)
	return gw
}

func seedScanner(t *testing.T, db *gorm.DB) *models.Scanner {
	t.Helper()
	sc, err := RegisterScanner(db, RegisterInput{Port: 9000}, "10.0.0.2")
	require.NoError(t, err)
	return sc
}

func ids(servers []models.NDSServer) []uint {
	out := make([]uint, 0, len(servers))
	for _, s := range servers {
		out = append(out, s.ID)
	}
	return out
}

func requireErrorType(t *testing.T, err error, errType string, message string) {
	t.Helper()
	require.Error(t, err)
	var ce *types.CustomError
	require.ErrorAs(t, err, &ce)
	require.Equal(t, errType, ce.Type)
	require.Equal(t, message, ce.Message)
}
