package history

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/haxorport/postman-rewrite/internal/domain/model"
	"github.com/haxorport/postman-rewrite/internal/domain/port"
)

// runRow is the table layout of a run record
type runRow struct {
	ID         string `gorm:"primaryKey;size:36"`
	Collection string
	InputPath  string
	OutputPath string
	RulesFiles []string `gorm:"serializer:json"`
	Passes     []string `gorm:"serializer:json"`
	Requests   int
	Status     string `gorm:"index"`
	Error      string
	CreatedAt  time.Time `gorm:"index"`
}

func (runRow) TableName() string { return "runs" }

// HistoryRepository is an implementation of port.HistoryRepository backed by sqlite
type HistoryRepository struct {
	db *gorm.DB
}

// NewHistoryRepository opens (and creates when needed) the history database at dsn
func NewHistoryRepository(dsn string) (*HistoryRepository, error) {
	if dir := filepath.Dir(dsn); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Wrap(err, "creating history directory")
		}
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "opening history database %s", dsn)
	}
	if err := db.AutoMigrate(&runRow{}); err != nil {
		return nil, errors.Wrap(err, "migrating history database")
	}
	return &HistoryRepository{db: db}, nil
}

// Create stores a run record, assigning an ID when it has none
func (r *HistoryRepository) Create(ctx context.Context, record *model.RunRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	row := toRow(record)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return errors.Wrap(err, "storing run record")
	}
	return nil
}

// List returns the newest records first
func (r *HistoryRepository) List(ctx context.Context, limit int) ([]*model.RunRecord, error) {
	var rows []runRow
	query := r.db.WithContext(ctx).Order("created_at desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "listing run records")
	}

	records := make([]*model.RunRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, fromRow(row))
	}
	return records, nil
}

// Close closes the database
func (r *HistoryRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func toRow(record *model.RunRecord) runRow {
	return runRow{
		ID:         record.ID,
		Collection: record.Collection,
		InputPath:  record.InputPath,
		OutputPath: record.OutputPath,
		RulesFiles: record.RulesFiles,
		Passes:     record.Passes,
		Requests:   record.Requests,
		Status:     string(record.Status),
		Error:      record.Error,
		CreatedAt:  record.CreatedAt,
	}
}

func fromRow(row runRow) *model.RunRecord {
	return &model.RunRecord{
		ID:         row.ID,
		Collection: row.Collection,
		InputPath:  row.InputPath,
		OutputPath: row.OutputPath,
		RulesFiles: row.RulesFiles,
		Passes:     row.Passes,
		Requests:   row.Requests,
		Status:     model.RunStatus(row.Status),
		Error:      row.Error,
		CreatedAt:  row.CreatedAt,
	}
}

// NopRepository is a port.HistoryRepository that keeps nothing
type NopRepository struct{}

// NewNopRepository creates a history repository for disabled history
func NewNopRepository() *NopRepository {
	return &NopRepository{}
}

// Create does nothing
func (NopRepository) Create(context.Context, *model.RunRecord) error { return nil }

// List returns no records
func (NopRepository) List(context.Context, int) ([]*model.RunRecord, error) { return nil, nil }

// Close does nothing
func (NopRepository) Close() error { return nil }

var (
	_ port.HistoryRepository = (*HistoryRepository)(nil)
	_ port.HistoryRepository = (*NopRepository)(nil)
)
