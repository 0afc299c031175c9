package database

import (
	"fmt"
	"strings"

	"github.com/aashari/go-ai-proxy-server/internal/config"
)

// Settings holds MongoDB connection settings derived from the application config
type Settings struct {
	// MongoDB connection URI (includes all connection details including auth)
	URI string
	// Normalized environment (local, development, production, or test)
	Environment string
	// Database name based on environment and service name
	DatabaseName string
	// Application name reported to the MongoDB server
	AppName string
}

// NewSettings builds connection settings. The database name is generated as
// {env-prefix}-{service-name} so environments never share a database.
func NewSettings(db config.DatabaseConfig, service config.ServiceConfig) *Settings {
	environment := strings.ToLower(service.Environment)

	var envPrefix string
	switch environment {
	case "production", "prod":
		envPrefix = "prod"
		environment = "production"
	case "local":
		envPrefix = "loc"
	case "test":
		envPrefix = "test"
	default:
		// staging and anything unknown share the development database
		envPrefix = "dev"
		environment = "development"
	}

	serviceName := service.Name
	if serviceName == "" {
		serviceName = "ai-proxy-server"
	}
	dbServiceName := strings.ReplaceAll(serviceName, "_", "-")
	dbServiceName = strings.TrimPrefix(dbServiceName, "go-")

	return &Settings{
		URI:          db.MongoURI,
		Environment:  environment,
		DatabaseName: fmt.Sprintf("%s-%s", envPrefix, dbServiceName),
		AppName:      serviceName,
	}
}

// MaskedURI returns the URI with credentials replaced, for logging
func (s *Settings) MaskedURI() string {
	at := strings.LastIndex(s.URI, "@")
	if at == -1 {
		return s.URI
	}
	scheme := strings.Index(s.URI, "//")
	if scheme == -1 || scheme > at {
		return s.URI
	}
	return s.URI[:scheme+2] + "***:***" + s.URI[at:]
}
