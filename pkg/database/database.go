package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/BartekS5/gamsync/pkg/logger"
	"github.com/BartekS5/gamsync/pkg/models"
	_ "github.com/microsoft/go-mssqldb"
	_ "github.com/sijms/go-ora/v2"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// BuildDSN turns the configured credentials into a driver URL. The
// instance is "host[:port][/service][?options]", e.g. "db:1521/ORCL".
func BuildDSN(cfg models.DatabaseConfig) (string, error) {
	instance := strings.TrimSpace(cfg.Instance)
	if instance == "" {
		return "", fmt.Errorf("database instance is empty")
	}

	rawQuery := ""
	if i := strings.IndexByte(instance, '?'); i >= 0 {
		instance, rawQuery = instance[:i], instance[i+1:]
	}
	host, path := instance, ""
	if i := strings.IndexByte(instance, '/'); i >= 0 {
		host, path = instance[:i], instance[i:]
	}
	if host == "" {
		return "", fmt.Errorf("database instance %q has no host", cfg.Instance)
	}

	u := url.URL{
		Scheme:   cfg.Driver,
		User:     url.UserPassword(cfg.Username, cfg.Password),
		Host:     host,
		Path:     path,
		RawQuery: rawQuery,
	}
	return u.String(), nil
}

// ConnectSQL opens and pings the target database. The driver name doubles
// as the URL scheme: "oracle" (go-ora) or "sqlserver" (go-mssqldb).
func ConnectSQL(ctx context.Context, cfg models.DatabaseConfig) (*sql.DB, error) {
	dsn, err := BuildDSN(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening %s database: %w", cfg.Driver, err)
	}
	db.SetMaxOpenConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = db.PingContext(pingCtx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to %s (ping failed): %w", cfg.Instance, err)
	}

	logger.Infof("Connection to %s successful", cfg.Instance)
	return db, nil
}

func ConnectMongo(ctx context.Context, connString string) (*mongo.Client, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(connString))
	if err != nil {
		return nil, fmt.Errorf("error creating MongoDB client: %w", err)
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()

	err = client.Ping(pingCtx, readpref.Primary())
	if err != nil {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		_ = client.Disconnect(disconnectCtx)

		return nil, fmt.Errorf("error connecting to MongoDB (ping failed): %w", err)
	}

	logger.Info("Successfully connected to MongoDB.")
	return client, nil
}
