package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/dangerclosesec/geneql/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QueryAuditLogRepositoryIface is the storage contract for query audit logs
type QueryAuditLogRepositoryIface interface {
	Create(ctx context.Context, log *model.QueryAuditLog) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.QueryAuditLog, error)
	Query(ctx context.Context, params QueryParams) ([]model.QueryAuditLog, int64, error)
}

var _ QueryAuditLogRepositoryIface = (*QueryAuditLogRepository)(nil)

// QueryAuditLogRepository handles database operations for query audit logs
type QueryAuditLogRepository struct {
	db *gorm.DB
}

// NewQueryAuditLogRepository creates a new QueryAuditLogRepository
func NewQueryAuditLogRepository(db *gorm.DB) *QueryAuditLogRepository {
	return &QueryAuditLogRepository{
		db: db,
	}
}

// Migrate creates or updates the audit log table
func (r *QueryAuditLogRepository) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&model.QueryAuditLog{}); err != nil {
		return fmt.Errorf("failed to migrate query audit logs: %w", err)
	}
	return nil
}

// Create inserts a new audit log entry
func (r *QueryAuditLogRepository) Create(ctx context.Context, log *model.QueryAuditLog) error {
	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}

	if log.Timestamp.IsZero() {
		log.Timestamp = time.Now().UTC()
	}

	result := r.db.WithContext(ctx).Create(log)
	if result.Error != nil {
		return fmt.Errorf("failed to create query audit log: %w", result.Error)
	}

	return nil
}

// FindByID retrieves an audit log entry by its ID
func (r *QueryAuditLogRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.QueryAuditLog, error) {
	var log model.QueryAuditLog
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&log)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find query audit log: %w", result.Error)
	}

	return &log, nil
}

// QueryParams holds parameters for querying audit logs
type QueryParams struct {
	QueryType string
	Subject   string
	Success   *bool
	StartTime time.Time
	EndTime   time.Time
	Limit     int
	Offset    int
}

// DefaultLimit caps Query when QueryParams.Limit is unset
const DefaultLimit = 100

// Query retrieves audit logs based on the provided query parameters
func (r *QueryAuditLogRepository) Query(ctx context.Context, params QueryParams) ([]model.QueryAuditLog, int64, error) {
	var logs []model.QueryAuditLog
	var count int64

	query := r.db.WithContext(ctx).Model(&model.QueryAuditLog{})

	if params.QueryType != "" {
		query = query.Where("query_type = ?", params.QueryType)
	}
	if params.Subject != "" {
		query = query.Where("subject = ?", params.Subject)
	}
	if params.Success != nil {
		query = query.Where("success = ?", *params.Success)
	}
	if !params.StartTime.IsZero() {
		query = query.Where("timestamp >= ?", params.StartTime)
	}
	if !params.EndTime.IsZero() {
		query = query.Where("timestamp <= ?", params.EndTime)
	}

	// Total before pagination
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count query audit logs: %w", err)
	}

	if params.Limit > 0 {
		query = query.Limit(params.Limit)
	} else {
		query = query.Limit(DefaultLimit)
	}

	if params.Offset > 0 {
		query = query.Offset(params.Offset)
	}

	result := query.Order("timestamp DESC").Find(&logs)
	if result.Error != nil {
		return nil, 0, fmt.Errorf("failed to query query audit logs: %w", result.Error)
	}

	return logs, count, nil
}
