// main.go
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

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	swagger "github.com/gofiber/swagger"
	"github.com/localnerve/mparser-center/internal/config"
	"github.com/localnerve/mparser-center/internal/database"
	"github.com/localnerve/mparser-center/internal/handlers"
	"github.com/localnerve/mparser-center/internal/logger"
	"github.com/localnerve/mparser-center/internal/probe"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	_ "github.com/localnerve/mparser-center/docs/api" // Swagger docs
)

// @title MParser Center API
// @version 1.0.0
// @description Management plane for the MParser gateway, scanner and parser fleet
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/localnerve/mparser-center
// @contact.email info@localnerve.com

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:9002
// @BasePath /api
// @schemes http https

func main() {
	startedAt := time.Now()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	log := logger.New(cfg)

	db, err := database.Connect(cfg, log)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		_ = database.Close(db)
	}()

	// The MySQL schema in data/ is authoritative in production; migrations are for dev and sqlite
	if cfg.AutoMigrate {
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	}

	prober := probe.New(
		probe.WithLogger(log),
		probe.WithRegisterer(prometheus.DefaultRegisterer),
	)

	app := handlers.NewApp(handlers.Deps{
		Config:    cfg,
		DB:        db,
		Log:       log,
		Prober:    prober,
		StartedAt: startedAt,
	}, func(app *fiber.App) {
		app.Use(compress.New())

		// Prometheus metrics
		metrics := fiberprometheus.New("mparser_center")
		metrics.RegisterAt(app, "/metrics")
		app.Use(metrics.Middleware)

		// Swagger documentation
		app.Get("/swagger/*", swagger.HandlerDefault)
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info("Gracefully shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ProbeTimeout+5*time.Second)
		defer cancel()
		_ = app.ShutdownWithContext(ctx)
	}()

	log.WithFields(logrus.Fields{
		"port": cfg.Port,
		"env":  cfg.Env,
	}).Info("Starting server")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Info("Server stopped")
}
