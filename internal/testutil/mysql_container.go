package testutil

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/localnerve/mparser-center/data"
	"github.com/localnerve/mparser-center/internal/config"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	DefaultMySQLImage = "mysql:8.0"
	mysqlDatabase     = "mparser"
	mysqlUser         = "mparser"
	mysqlPassword     = "mparser"
)

// MySQLContainer is a running MySQL seeded with data.MySQLSchema
type MySQLContainer struct {
	Container testcontainers.Container
	Host      string
	Port      string
}

// StartMySQL starts a MySQL container and waits until it accepts connections
func StartMySQL(ctx context.Context, image string) (*MySQLContainer, error) {
	if image == "" {
		image = DefaultMySQLImage
	}

	tcpPort, err := nat.NewPort("tcp", "3306")
	if err != nil {
		return nil, fmt.Errorf("failed to create DB port: %w", err)
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        image,
			ExposedPorts: []string{string(tcpPort)},
			Env: map[string]string{
				"MYSQL_ROOT_PASSWORD": "rootpass",
				"MYSQL_DATABASE":      mysqlDatabase,
				"MYSQL_USER":          mysqlUser,
				"MYSQL_PASSWORD":      mysqlPassword,
			},
			Files: []testcontainers.ContainerFile{
				{
					Reader:            strings.NewReader(data.MySQLSchema),
					ContainerFilePath: "/docker-entrypoint-initdb.d/01-schema.sql",
					FileMode:          0o644,
				},
			},
			WaitingFor: wait.ForAll(
				wait.ForLog("ready for connections").WithOccurrence(2),
				wait.ForListeningPort(tcpPort),
			).WithDeadline(90 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start MySQL: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}
	port, err := container.MappedPort(ctx, tcpPort)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get container port: %w", err)
	}

	return &MySQLContainer{Container: container, Host: host, Port: port.Port()}, nil
}

// Config returns a service configuration pointing at the container
func (m *MySQLContainer) Config() *config.Config {
	return &config.Config{
		Env:               "test",
		LogLevel:          "warn",
		DBType:            "mysql",
		DBHost:            m.Host,
		DBPort:            m.Port,
		DBDatabase:        mysqlDatabase,
		DBUser:            mysqlUser,
		DBPassword:        mysqlPassword,
		DBConnectionLimit: 5,
		ProbeTimeout:      5 * time.Second,
	}
}

// Terminate stops and removes the container
func (m *MySQLContainer) Terminate(ctx context.Context) error {
	if m == nil || m.Container == nil {
		return nil
	}
	return m.Container.Terminate(ctx)
}
