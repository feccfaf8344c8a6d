package db

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"

	"github.com/gaolamthuy/storefront/common/globals"
	"github.com/gaolamthuy/storefront/common/telemetry/attributes"
	commontrace "github.com/gaolamthuy/storefront/common/telemetry/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

// FileDatabase reads a JSON document from disk. The storefront uses it to
// serve a catalog snapshot when no upstream API is configured.
type FileDatabase struct {
	filePath string
	logger   *slog.Logger
}

func NewFileDatabase(filePath string) *FileDatabase {
	return &FileDatabase{
		filePath: filePath,
		logger:   globals.Logger(),
	}
}

// ReadRaw returns the file contents without decoding them.
func (db *FileDatabase) ReadRaw(ctx context.Context) (data []byte, opErr error) {
	ctx, span := commontrace.StartSpan(ctx,
		semconv.DBSystemKey.String("file"),
		semconv.DBOperationKey.String("READ"),
		attributes.AttrDBFilePathKey.String(db.filePath),
	)
	defer commontrace.EndSpan(span, &opErr, nil)

	db.logger.DebugContext(ctx, "FileDB: Reading data from file", slog.String("file_path", db.filePath))

	data, opErr = os.ReadFile(db.filePath)
	if opErr != nil {
		db.logger.ErrorContext(ctx, "FileDB: Failed to read data file", slog.String("file_path", db.filePath), slog.Any("error", opErr))
		return nil, opErr
	}
	return data, nil
}

// Read loads the file and unmarshals it into dest.
func (db *FileDatabase) Read(ctx context.Context, dest interface{}) error {
	data, err := db.ReadRaw(ctx)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		db.logger.ErrorContext(ctx, "FileDB: Failed to unmarshal JSON data", slog.String("file_path", db.filePath), slog.Any("error", err))
		return err
	}
	return nil
}

func (db *FileDatabase) FilePath() string {
	return db.filePath
}
