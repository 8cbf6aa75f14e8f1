package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/localnerve/mparser-center/internal/testutil"
	"github.com/sirupsen/logrus"
)

func main() {
	var showHelp bool
	flag.BoolVar(&showHelp, "h", false, "show help")
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	var image string
	flag.StringVar(&image, "image", testutil.DefaultMySQLImage, "MySQL image to run")
	flag.Parse()

	usage := `
Run a MySQL container seeded with the mparser-center schema and print the
environment the server needs to use it.

Usage:

devdb [-h] [-f ENV_FILE_PATH] [-image IMAGE]

ENV_FILE_PATH: path to a .env file loaded before start (DOCKER_HOST and friends)

example
  devdb -f /path/to/something/.env
`
	// if -h flag print usage and return
	if showHelp {
		fmt.Println(usage)
		return
	}

	log := logrus.New()

	if envFilename != "" {
		log.Infof("Loading environment variables from %s", envFilename)
		if err := godotenv.Load(envFilename); err != nil {
			log.Fatalf("Failed to load environment variables: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	db, err := testutil.StartMySQL(ctx, image)
	if err != nil {
		log.Fatalf("Failed to start MySQL: %v", err)
	}

	cfg := db.Config()
	fmt.Fprintf(os.Stdout, "DB_TYPE=%s\nDB_HOST=%s\nDB_PORT=%s\nDB_DATABASE=%s\nDB_USER=%s\nDB_PASSWORD=%s\nDB_AUTO_MIGRATE=false\n",
		cfg.DBType, cfg.DBHost, cfg.DBPort, cfg.DBDatabase, cfg.DBUser, cfg.DBPassword)
	log.Info("MySQL is ready, press Ctrl-C to stop")

	<-ctx.Done()
	log.Info("Terminating MySQL container...")
	if err := db.Terminate(context.Background()); err != nil {
		log.Errorf("Failed to terminate container: %v", err)
		os.Exit(1)
	}
}
