package client

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/AliKaner/mc-case/internal/client/config"
	"github.com/AliKaner/mc-case/internal/client/migrations"
	"github.com/AliKaner/mc-case/internal/client/repositories/metadata"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"
)

// test seams
var (
	openSQL              = sql.Open
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig
)

// Storage is an opened key-value backend plus whatever must be closed with it.
type Storage struct {
	Metadata metadata.Repository
	closers  []func() error
}

func (s *Storage) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i]())
	}
	return errors.Join(errs...)
}

type sqlDialect struct {
	driverName string
	goose      string
	dir        string
}

var sqlDialects = map[string]sqlDialect{
	config.DriverSQLite:   {driverName: "sqlite", goose: "sqlite3", dir: migrations.SQLiteDir},
	config.DriverPostgres: {driverName: "pgx", goose: "postgres", dir: migrations.PostgresDir},
}

// RunMigrations applies the embedded goose migrations for the given storage
// driver (config.DriverSQLite or config.DriverPostgres).
func RunMigrations(ctx context.Context, db *sql.DB, driver string) error {
	d, ok := sqlDialects[driver]
	if !ok {
		return fmt.Errorf("no migrations for driver %q", driver)
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(d.goose); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, d.dir)
}

// InitDatabase opens a SQL database for driver and brings its schema up to date.
func InitDatabase(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	d, ok := sqlDialects[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}

	db, err := openSQL(d.driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if driver == config.DriverSQLite {
		// one writer at a time
		db.SetMaxOpenConns(1)
	}

	if err := RunMigrations(ctx, db, driver); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}
	return db, nil
}

// OpenStorage opens the key-value backend selected by cfg.StorageDriver.
func OpenStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	switch cfg.StorageDriver {
	case config.DriverSQLite:
		db, err := InitDatabase(ctx, cfg.StorageDriver, cfg.StorageDSN)
		if err != nil {
			return nil, err
		}
		return &Storage{Metadata: metadata.NewSQLiteRepository(db), closers: []func() error{db.Close}}, nil

	case config.DriverPostgres:
		db, err := InitDatabase(ctx, cfg.StorageDriver, cfg.StorageDSN)
		if err != nil {
			return nil, err
		}
		return &Storage{Metadata: metadata.NewPostgresRepository(db), closers: []func() error{db.Close}}, nil

	case config.DriverRedis:
		rc := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := rc.Ping(ctx).Err(); err != nil {
			_ = rc.Close()
			return nil, fmt.Errorf("redis ping error: %w", err)
		}
		return &Storage{Metadata: metadata.NewRedisRepository(rc, cfg.RedisPrefix), closers: []func() error{rc.Close}}, nil

	case config.DriverS3:
		api, err := newS3Client(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &Storage{Metadata: metadata.NewS3Repository(api, cfg.S3Bucket, cfg.S3Prefix)}, nil

	case config.DriverMemory:
		return &Storage{Metadata: metadata.NewMemoryRepository()}, nil
	}

	return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}

func newS3Client(ctx context.Context, cfg *config.Config) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.S3Region)}
	if cfg.S3AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("aws config error: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}
