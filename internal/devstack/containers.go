// Package devstack starts the MySQL and Redis containers a local server run
// needs. It is used by cmd/devstack as a standalone executable and expects
// environment variables to be loaded from .env files.
package devstack

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/docker/go-connections/nat"
	_ "github.com/go-sql-driver/mysql"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/network"
	"github.com/testcontainers/testcontainers-go/wait"
)

// DevContainers holds the running dev stack.
type DevContainers struct {
	Network        *testcontainers.DockerNetwork
	DBContainer    testcontainers.Container
	RedisContainer testcontainers.Container
}

// Terminate tears down every container that was started.
func (dc *DevContainers) Terminate() {
	ctx := context.Background()
	if dc.RedisContainer != nil {
		if err := dc.RedisContainer.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate Redis: %v\n", err)
		}
	}
	if dc.DBContainer != nil {
		if err := dc.DBContainer.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate database: %v\n", err)
		}
	}
	if dc.Network != nil {
		if err := dc.Network.Remove(ctx); err != nil {
			fmt.Printf("Failed to remove network: %v\n", err)
		}
	}
}

// CreateDevContainers starts MySQL and Redis and prints the mapped addresses
// for the server process to pick up.
func CreateDevContainers() (*DevContainers, error) {
	ctx := context.Background()
	dc := &DevContainers{}

	nw, err := network.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("create network: %w", err)
	}
	dc.Network = nw

	dbImage := getenv("DB_IMAGE", "mysql:8.4")
	tcpDbPort, err := nat.NewPort("tcp", getenv("DB_PORT", "3306"))
	if err != nil {
		dc.Terminate()
		return nil, fmt.Errorf("create db port: %w", err)
	}

	dbContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        dbImage,
			ExposedPorts: []string{string(tcpDbPort)},
			Env: map[string]string{
				"MYSQL_ROOT_PASSWORD": getenv("DB_ROOT_PASSWORD", "root"),
				"MYSQL_DATABASE":      getenv("DB_DATABASE", "certify"),
				"MYSQL_USER":          getenv("DB_USER", "certify"),
				"MYSQL_PASSWORD":      getenv("DB_PASSWORD", "certify"),
			},
			WaitingFor: wait.ForListeningPort(tcpDbPort).WithStartupTimeout(60 * time.Second),
			Networks:   []string{nw.Name},
		},
		Started: true,
	})
	if err != nil {
		dc.Terminate()
		return nil, fmt.Errorf("start database: %w", err)
	}
	dc.DBContainer = dbContainer

	dbHost, _ := dbContainer.Host(ctx)
	dbPort, _ := dbContainer.MappedPort(ctx, tcpDbPort)
	if err := waitForMySQL(dbHost, dbPort); err != nil {
		dc.Terminate()
		return nil, err
	}
	fmt.Printf("DB_HOST=%s\nDB_PORT=%s\n", dbHost, dbPort.Port())

	tcpRedisPort, err := nat.NewPort("tcp", "6379")
	if err != nil {
		dc.Terminate()
		return nil, fmt.Errorf("create redis port: %w", err)
	}
	redisContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        getenv("REDIS_IMAGE", "redis:7"),
			ExposedPorts: []string{string(tcpRedisPort)},
			WaitingFor:   wait.ForListeningPort(tcpRedisPort).WithStartupTimeout(30 * time.Second),
			Networks:     []string{nw.Name},
		},
		Started: true,
	})
	if err != nil {
		dc.Terminate()
		return nil, fmt.Errorf("start redis: %w", err)
	}
	dc.RedisContainer = redisContainer

	redisHost, _ := redisContainer.Host(ctx)
	redisPort, _ := redisContainer.MappedPort(ctx, tcpRedisPort)
	fmt.Printf("REDIS_ADDR=%s:%s\n", redisHost, redisPort.Port())

	fmt.Println("Dev containers started successfully")
	return dc, nil
}

// waitForMySQL pings until the server accepts connections, not just listens.
func waitForMySQL(host string, port nat.Port) error {
	dsn := fmt.Sprintf("root:%s@tcp(%s:%s)/", getenv("DB_ROOT_PASSWORD", "root"), host, port.Port())
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return fmt.Errorf("open mysql: %w", err)
	}
	defer db.Close()

	for i := 0; i < 30; i++ {
		if err = db.Ping(); err == nil {
			return nil
		}
		time.Sleep(1 * time.Second)
	}
	return fmt.Errorf("mysql not ready after 30 seconds: %w", err)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
