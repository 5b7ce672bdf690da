/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package main is the entry point for starting the portal server.
package main

import (
	"crypto/tls"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path"
	"time"

	"github.com/joho/godotenv"

	sessionstore "github.com/halport/portal/internal/session/store"
	"github.com/halport/portal/internal/system/cache"
	"github.com/halport/portal/internal/system/cert"
	"github.com/halport/portal/internal/system/config"
	"github.com/halport/portal/internal/system/database/provider"
	"github.com/halport/portal/internal/system/database/seeder"
	"github.com/halport/portal/internal/system/log"
	"github.com/halport/portal/internal/system/managers"
)

func main() {
	logger := log.GetLogger()

	portalHome := getPortalHome(logger)

	cfg := initPortalConfigurations(logger, portalHome)
	if cfg == nil {
		logger.Fatal("Failed to initialize configurations")
	}

	initDatabaseSchemas(logger)

	startSessionPurger(cfg)

	mux := initMultiplexer(logger)
	if mux == nil {
		logger.Fatal("Failed to initialize multiplexer")
	}

	if cfg.Server.HTTPOnly {
		logger.Info("TLS is not enabled, starting server without TLS")
		startHTTPServer(logger, cfg, mux)
	} else {
		startTLSServer(logger, cfg, mux, portalHome)
	}
}

// getPortalHome retrieves and returns the portal home directory.
func getPortalHome(logger *log.Logger) string {
	projectHome := ""
	projectHomeFlag := flag.String("portalHome", "", "Path to portal home directory")
	flag.Parse()

	if *projectHomeFlag != "" {
		logger.Info("Using portalHome from command line argument", log.String("portalHome", *projectHomeFlag))
		projectHome = *projectHomeFlag
	} else {
		// If no command line argument is provided, use the current working directory.
		dir, dirErr := os.Getwd()
		if dirErr != nil {
			logger.Fatal("Failed to get current working directory", log.Error(dirErr))
		}
		projectHome = dir
	}

	return projectHome
}

// initPortalConfigurations initializes the portal configurations.
func initPortalConfigurations(logger *log.Logger, portalHome string) *config.Config {
	// Seed the environment from an env file if one is present. Secrets
	// referenced by the configuration may live there in development.
	if err := godotenv.Load(path.Join(portalHome, ".env")); err != nil && !os.IsNotExist(err) {
		logger.Warn("Failed to load env file", log.Error(err))
	}

	configFilePath := path.Join(portalHome, "repository/conf/deployment.yaml")
	cfg, err := config.LoadConfig(configFilePath)
	if err != nil {
		logger.Fatal("Failed to load configurations", log.Error(err))
	}

	if err := config.InitializePortalRuntime(portalHome, cfg); err != nil {
		logger.Fatal("Failed to initialize portal runtime", log.Error(err))
	}

	initCacheManager(logger)

	return cfg
}

// initDatabaseSchemas ensures the required tables exist in both databases.
func initDatabaseSchemas(logger *log.Logger) {
	seederProvider := seeder.NewSeederProvider(provider.GetDBProvider())

	for _, dbName := range []string{"identity", "runtime"} {
		dbSeeder, err := seederProvider.GetSeeder(dbName)
		if err != nil {
			logger.Fatal("Failed to get database seeder", log.String("database", dbName), log.Error(err))
		}
		if err := dbSeeder.EnsureSchema(); err != nil {
			logger.Fatal("Failed to ensure database schema", log.String("database", dbName), log.Error(err))
		}
	}
}

// startSessionPurger starts the background purge of expired sessions.
func startSessionPurger(cfg *config.Config) {
	purger := sessionstore.NewSessionPurger(sessionstore.NewSessionStore(provider.GetDBProvider()))
	purger.Start(cfg.Session.PurgeInterval)
}

// initMultiplexer initializes the HTTP multiplexer and registers the services.
func initMultiplexer(logger *log.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	serviceManager := managers.NewServiceManager(mux)

	if err := serviceManager.RegisterServices(); err != nil {
		logger.Fatal("Failed to register the services", log.Error(err))
	}

	return mux
}

// initCacheManager initializes the cache manager with centralized cleanup.
func initCacheManager(logger *log.Logger) {
	cm := cache.GetCacheManager()
	if cm == nil {
		logger.Fatal("Failed to get cache manager instance")
	}
	cm.Init()
}

// startTLSServer starts the HTTPS server with TLS configuration.
func startTLSServer(logger *log.Logger, cfg *config.Config, mux *http.ServeMux, portalHome string) {
	server, serverAddr := createHTTPServer(logger, cfg, mux)

	sysCertSvc := cert.NewSystemCertificateService()
	tlsConfig, err := sysCertSvc.GetTLSConfig(cfg, portalHome)
	if err != nil {
		logger.Fatal("Failed to load TLS configuration", log.Error(err))
	}

	ln, err := tls.Listen("tcp", serverAddr, tlsConfig)
	if err != nil {
		logger.Fatal("Failed to start TLS listener", log.Error(err))
	}

	logger.Info("Portal server started (HTTPS)...", log.String("address", serverAddr))

	if err := server.Serve(ln); err != nil {
		logger.Fatal("Failed to serve requests", log.Error(err))
	}
}

// startHTTPServer starts the HTTP server without TLS.
func startHTTPServer(logger *log.Logger, cfg *config.Config, mux *http.ServeMux) {
	server, serverAddr := createHTTPServer(logger, cfg, mux)

	logger.Info("Portal server started (HTTP)...", log.String("address", serverAddr))

	if err := server.ListenAndServe(); err != nil {
		logger.Fatal("Failed to serve HTTP requests", log.Error(err))
	}
}

// createHTTPServer creates and configures an HTTP server with common settings.
func createHTTPServer(logger *log.Logger, cfg *config.Config, mux *http.ServeMux) (*http.Server, string) {
	// Wrap the multiplexer with AccessLogHandler.
	wrappedMux := log.AccessLogHandler(logger, mux)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Hostname, cfg.Server.Port)

	server := &http.Server{
		Addr:              serverAddr,
		Handler:           wrappedMux,
		ReadHeaderTimeout: 10 * time.Second, // Mitigate Slowloris attacks
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return server, serverAddr
}
