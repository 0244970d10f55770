package client

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/AliKaner/mc-case/internal/client/config"
	"github.com/AliKaner/mc-case/internal/client/repositories/metadata"
	"github.com/alicebob/miniredis/v2"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&n)
	if err != nil {
		t.Fatalf("tableExists query failed: %v", err)
	}
	return n > 0
}

func testConfig(driver string) *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.StorageDriver = driver
	return cfg
}

func TestInitDatabase_CreatesMetadataAndGooseTables(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "app.db")

	db, err := InitDatabase(ctx, config.DriverSQLite, dsn)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.PingContext(ctx))
	assert.True(t, tableExists(t, db, "goose_db_version"))
	assert.True(t, tableExists(t, db, "metadata"))
}

func TestRunMigrations_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "app.db")

	db, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, RunMigrations(ctx, db, config.DriverSQLite), "first run")
	require.NoError(t, RunMigrations(ctx, db, config.DriverSQLite), "second run should be idempotent")
	assert.True(t, tableExists(t, db, "metadata"))
}

func TestRunMigrations_UnknownDriver(t *testing.T) {
	err := RunMigrations(context.Background(), nil, "bolt")
	require.ErrorContains(t, err, `no migrations for driver "bolt"`)
}

func TestInitDatabase_OpenError(t *testing.T) {
	orig := openSQL
	t.Cleanup(func() { openSQL = orig })
	openSQL = func(string, string) (*sql.DB, error) { return nil, errors.New("boom") }

	_, err := InitDatabase(context.Background(), config.DriverSQLite, "x.db")
	require.ErrorContains(t, err, "db open error: boom")
}

func TestOpenStorage_SQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(config.DriverSQLite)
	cfg.StorageDSN = filepath.Join(t.TempDir(), "cache.db")

	st, err := OpenStorage(ctx, cfg)
	require.NoError(t, err)
	defer st.Close()

	require.IsType(t, &metadata.SQLiteRepository{}, st.Metadata)
	require.NoError(t, st.Metadata.Set(ctx, "users_data", []byte(`{"users":[]}`)))
	v, err := st.Metadata.Get(ctx, "users_data")
	require.NoError(t, err)
	assert.Equal(t, `{"users":[]}`, string(v))
}

func TestOpenStorage_Memory(t *testing.T) {
	st, err := OpenStorage(context.Background(), testConfig(config.DriverMemory))
	require.NoError(t, err)
	assert.IsType(t, &metadata.MemoryRepository{}, st.Metadata)
	assert.NoError(t, st.Close())
}

func TestOpenStorage_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig(config.DriverRedis)
	cfg.RedisAddr = mr.Addr()

	st, err := OpenStorage(context.Background(), cfg)
	require.NoError(t, err)
	defer st.Close()

	require.NoError(t, st.Metadata.Set(context.Background(), "deleted_users", []byte("[]")))
	assert.True(t, mr.Exists(cfg.RedisPrefix+"deleted_users"))
}

func TestOpenStorage_RedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg := testConfig(config.DriverRedis)
	cfg.RedisAddr = addr

	_, err := OpenStorage(context.Background(), cfg)
	require.ErrorContains(t, err, "redis ping error")
}

func TestOpenStorage_S3UsesStaticCredentialsAndEndpoint(t *testing.T) {
	orig := loadDefaultAWSConfig
	t.Cleanup(func() { loadDefaultAWSConfig = orig })

	var gotOpts int
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		gotOpts = len(optFns)
		assert.Equal(t, "eu-central-1", lo.Region)
		require.NotNil(t, lo.Credentials)
		return aws.Config{Region: lo.Region, Credentials: lo.Credentials}, nil
	}

	cfg := testConfig(config.DriverS3)
	cfg.S3Bucket = "cache"
	cfg.S3Region = "eu-central-1"
	cfg.S3Endpoint = "http://127.0.0.1:9000"
	cfg.S3AccessKey = "minio"
	cfg.S3SecretKey = "minio123"

	st, err := OpenStorage(context.Background(), cfg)
	require.NoError(t, err)
	assert.IsType(t, &metadata.S3Repository{}, st.Metadata)
	assert.Equal(t, 2, gotOpts)
}

func TestOpenStorage_S3ConfigError(t *testing.T) {
	orig := loadDefaultAWSConfig
	t.Cleanup(func() { loadDefaultAWSConfig = orig })
	loadDefaultAWSConfig = func(context.Context, ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no profile")
	}

	cfg := testConfig(config.DriverS3)
	cfg.S3Bucket = "cache"

	_, err := OpenStorage(context.Background(), cfg)
	require.ErrorContains(t, err, "aws config error: no profile")
}

func TestOpenStorage_UnknownDriver(t *testing.T) {
	_, err := OpenStorage(context.Background(), testConfig("bolt"))
	require.ErrorContains(t, err, `unknown storage driver "bolt"`)
}

func TestStorage_CloseRunsClosersInReverse(t *testing.T) {
	var order []int
	st := &Storage{closers: []func() error{
		func() error { order = append(order, 1); return nil },
		func() error { order = append(order, 2); return errors.New("second") },
	}}

	err := st.Close()
	require.ErrorContains(t, err, "second")
	assert.Equal(t, []int{2, 1}, order)
}
