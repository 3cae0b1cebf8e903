// Helper for running the service and its database as containers.
// Used by the e2e tests and by the standalone cmd/testcontainers binary.
// Expects environment variables to be loaded from .env files.

package helpers

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/client"
	"github.com/docker/go-connections/nat"
	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/network"
	"github.com/testcontainers/testcontainers-go/wait"
)

const serverImageName = "cyberassess-test:latest"

// TestContainers groups the running containers of one environment.
type TestContainers struct {
	Network         *testcontainers.DockerNetwork
	DBContainer     testcontainers.Container
	ServerContainer testcontainers.Container

	// ServerURL is the host-reachable base URL of the service.
	ServerURL string
}

// Terminate tears the environment down in reverse start order.
func (tc *TestContainers) Terminate(t *testing.T) {
	ctx := context.Background()
	if tc.ServerContainer != nil {
		if err := tc.ServerContainer.Terminate(ctx); err != nil {
			logMessage(t, "Failed to terminate server: %v", err)
		}
	}
	if tc.DBContainer != nil {
		if err := tc.DBContainer.Terminate(ctx); err != nil {
			logMessage(t, "Failed to terminate database: %v", err)
		}
	}
	if tc.Network != nil {
		if err := tc.Network.Remove(ctx); err != nil {
			logMessage(t, "Failed to remove network: %v", err)
		}
	}
}

// CreateAllTestContainers brings up the database and the service image on a
// shared network. Environment variables configure images and credentials:
// DB_IMAGE (default mariadb:11), DB_DATABASE, DB_USER, DB_PASSWORD,
// DB_ROOT_PASSWORD, PORT, ADMIN_PASSWORD, SESSION_SECRET.
func CreateAllTestContainers(t *testing.T) (*TestContainers, error) {
	ctx := context.Background()
	tc := &TestContainers{}

	nw, err := network.New(ctx)
	if err != nil {
		exitWithError(t, err, "Failed to create network")
	}
	tc.Network = nw
	networkName := nw.Name

	dbImage := getenvDefault("DB_IMAGE", "mariadb:11")
	dbDatabase := getenvDefault("DB_DATABASE", "cyberassess")
	dbUser := getenvDefault("DB_USER", "cyberassess")
	dbPassword := getenvDefault("DB_PASSWORD", "cyberassess")
	dbRootPassword := getenvDefault("DB_ROOT_PASSWORD", "rootpass")
	dbNetworkAlias := "db"

	tcpDbPort, err := nat.NewPort("tcp", "3306")
	if err != nil {
		tc.Terminate(t)
		exitWithError(t, err, "Failed to create DB port")
	}

	dbContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        dbImage,
			ExposedPorts: []string{string(tcpDbPort)},
			Env: map[string]string{
				"MYSQL_ROOT_PASSWORD": dbRootPassword,
				"MYSQL_DATABASE":      dbDatabase,
				"MYSQL_USER":          dbUser,
				"MYSQL_PASSWORD":      dbPassword,
			},
			WaitingFor: wait.ForListeningPort(tcpDbPort).WithStartupTimeout(60 * time.Second),
			Networks:   []string{networkName},
			NetworkAliases: map[string][]string{
				networkName: {dbNetworkAlias},
			},
		},
		Started: true,
	})
	if err != nil {
		tc.Terminate(t)
		exitWithError(t, err, "Failed to start database")
	}
	tc.DBContainer = dbContainer

	dbHost, _ := dbContainer.Host(ctx)
	dbPort, _ := dbContainer.MappedPort(ctx, tcpDbPort)
	if err := waitForMySQL(dbHost, dbPort.Port(), dbUser, dbPassword, dbDatabase); err != nil {
		tc.Terminate(t)
		exitWithError(t, err, "Database never became ready")
	}

	serverPort := getenvDefault("PORT", "3000")
	tcpServerPort, err := nat.NewPort("tcp", serverPort)
	if err != nil {
		tc.Terminate(t)
		exitWithError(t, err, "Failed to create server port")
	}

	serverRequest := testcontainers.ContainerRequest{
		ExposedPorts: []string{string(tcpServerPort)},
		Env: map[string]string{
			"DB_TYPE":        "mysql",
			"DB_HOST":        dbNetworkAlias,
			"DB_PORT":        "3306",
			"DB_DATABASE":    dbDatabase,
			"DB_USER":        dbUser,
			"DB_PASSWORD":    dbPassword,
			"PORT":           serverPort,
			"ADMIN_PASSWORD": getenvDefault("ADMIN_PASSWORD", "admin-test-password"),
			"SESSION_SECRET": getenvDefault("SESSION_SECRET", uuid.New().String()),
		},
		WaitingFor: wait.ForHTTP("/metrics").WithPort(tcpServerPort).WithStartupTimeout(30 * time.Second),
		Networks:   []string{networkName},
	}

	exists, err := imageExists(ctx, serverImageName)
	if err != nil {
		tc.Terminate(t)
		exitWithError(t, err, "Failed to check if image exists")
	}

	if exists {
		serverRequest.Image = serverImageName
	} else {
		buildContext := os.Getenv("TESTCONTAINERS_BUILD_CONTEXT")
		if buildContext == "" {
			buildContext = "../.."
		}
		logMessage(t, "Image %s does not exist, building...", serverImageName)
		serverRequest.FromDockerfile = testcontainers.FromDockerfile{
			Context:       buildContext,
			Dockerfile:    "Dockerfile",
			Repo:          "cyberassess-test",
			Tag:           "latest",
			KeepImage:     true,
			PrintBuildLog: true,
		}
	}

	serverContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: serverRequest,
		Started:          true,
	})
	if err != nil {
		tc.Terminate(t)
		exitWithError(t, err, "Failed to start server")
	}
	tc.ServerContainer = serverContainer

	serverHost, _ := serverContainer.Host(ctx)
	mappedPort, _ := serverContainer.MappedPort(ctx, tcpServerPort)
	tc.ServerURL = fmt.Sprintf("http://%s:%s", serverHost, mappedPort.Port())
	logMessage(t, "SERVER_URL=%s", tc.ServerURL)

	return tc, nil
}

// waitForMySQL polls until the database accepts authenticated connections.
// The listening-port wait fires before MariaDB finishes its init scripts.
func waitForMySQL(host, port, user, password, database string) error {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s", user, password, host, port, database)
	deadline := time.Now().Add(60 * time.Second)

	var lastErr error
	for time.Now().Before(deadline) {
		db, err := sql.Open("mysql", dsn)
		if err == nil {
			err = db.Ping()
			db.Close()
			if err == nil {
				return nil
			}
		}
		lastErr = err
		time.Sleep(time.Second)
	}
	return fmt.Errorf("database not ready: %w", lastErr)
}

// imageExists checks the local docker daemon for the given image tag.
func imageExists(ctx context.Context, name string) (bool, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return false, err
	}
	defer cli.Close()

	images, err := cli.ImageList(ctx, image.ListOptions{})
	if err != nil {
		return false, err
	}
	for _, img := range images {
		for _, tag := range img.RepoTags {
			if tag == name {
				return true, nil
			}
		}
	}
	return false, nil
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// logMessage logs through t when running under go test, otherwise stdout.
func logMessage(t *testing.T, format string, args ...interface{}) {
	if t != nil {
		t.Logf(format, args...)
		return
	}
	fmt.Printf(format+"\n", args...)
}

// exitWithError fails the test or panics when running standalone.
func exitWithError(t *testing.T, err error, message string) {
	if t != nil {
		t.Fatalf("%s: %v", message, err)
		return
	}
	panic(fmt.Sprintf("%s: %v", message, err))
}
