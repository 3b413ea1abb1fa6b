package sqlite

import (
	"context"
	"fmt"

	"portfolio-service/internal/contextkeys"
	"portfolio-service/internal/core/domain"
	"portfolio-service/internal/core/port"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// propertyRow - строка таблицы properties для gorm.
type propertyRow struct {
	ID           int64 `gorm:"primaryKey;autoIncrement"`
	Address      string
	Type         string
	Bedrooms     *int
	Bathrooms    *float64
	Valuation    *string
	EstateAgent  *string
	SellingAgent *string
	Occupied     string
}

func (propertyRow) TableName() string { return "properties" }

func (r propertyRow) toDomain() domain.Property {
	return domain.Property{
		ID:           r.ID,
		Address:      r.Address,
		Type:         domain.PropertyType(r.Type),
		Bedrooms:     r.Bedrooms,
		Bathrooms:    r.Bathrooms,
		Valuation:    r.Valuation,
		EstateAgent:  r.EstateAgent,
		SellingAgent: r.SellingAgent,
		Occupied:     domain.Occupancy(r.Occupied),
	}
}

func rowFromInput(in domain.PropertyInput) propertyRow {
	return propertyRow{
		Address:      in.Address,
		Type:         in.Type,
		Bedrooms:     in.Bedrooms,
		Bathrooms:    in.Bathrooms,
		Valuation:    domain.StringPtr(in.Valuation),
		EstateAgent:  domain.StringPtr(in.EstateAgent),
		SellingAgent: domain.StringPtr(in.SellingAgent),
		Occupied:     in.Occupied,
	}
}

// SQLiteStorageAdapter - локальное хранилище для разработки, без внешней базы.
type SQLiteStorageAdapter struct {
	db *gorm.DB
}

// Open открывает файл базы (":memory:" для тестов) и мигрирует таблицу.
func Open(path string) (*SQLiteStorageAdapter, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if path == ":memory:" {
		// каждое соединение к :memory: видит свою базу
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to access sqlite pool: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}
	if err := db.AutoMigrate(&propertyRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate properties table: %w", err)
	}
	return &SQLiteStorageAdapter{db: db}, nil
}

func (a *SQLiteStorageAdapter) Close() error {
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (a *SQLiteStorageAdapter) SelectAll(ctx context.Context) ([]domain.Property, error) {
	var rows []propertyRow
	if err := a.db.WithContext(ctx).Order("id asc").Find(&rows).Error; err != nil {
		contextkeys.ComponentLogger(ctx, "SQLiteStorageAdapter", "SelectAll").Error("Query failed", err, nil)
		return nil, fmt.Errorf("SQLiteStorageAdapter: failed to select properties: %w", err)
	}
	result := make([]domain.Property, len(rows))
	for i, r := range rows {
		result[i] = r.toDomain()
	}
	return result, nil
}

func (a *SQLiteStorageAdapter) Insert(ctx context.Context, in domain.PropertyInput) ([]domain.Property, error) {
	row := rowFromInput(in)
	if err := a.db.WithContext(ctx).Create(&row).Error; err != nil {
		contextkeys.ComponentLogger(ctx, "SQLiteStorageAdapter", "Insert").Error("Insert failed", err, nil)
		return nil, fmt.Errorf("SQLiteStorageAdapter: failed to insert property: %w", err)
	}
	return []domain.Property{row.toDomain()}, nil
}

// Update возвращает пустой срез, если строки с таким id нет.
func (a *SQLiteStorageAdapter) Update(ctx context.Context, id int64, in domain.PropertyInput) ([]domain.Property, error) {
	logger := contextkeys.ComponentLogger(ctx, "SQLiteStorageAdapter", "Update")
	row := rowFromInput(in)
	row.ID = id

	// Select("*") нужен, чтобы записать и нулевые значения (null, "")
	res := a.db.WithContext(ctx).Model(&propertyRow{ID: id}).Select("*").Omit("id").Updates(&row)
	if res.Error != nil {
		logger.Error("Update failed", res.Error, port.Fields{"property_id": id})
		return nil, fmt.Errorf("SQLiteStorageAdapter: failed to update property %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}

	var updated propertyRow
	if err := a.db.WithContext(ctx).First(&updated, id).Error; err != nil {
		return nil, fmt.Errorf("SQLiteStorageAdapter: failed to read back property %d: %w", id, err)
	}
	return []domain.Property{updated.toDomain()}, nil
}

func (a *SQLiteStorageAdapter) Delete(ctx context.Context, id int64) error {
	if err := a.db.WithContext(ctx).Delete(&propertyRow{}, id).Error; err != nil {
		contextkeys.ComponentLogger(ctx, "SQLiteStorageAdapter", "Delete").Error("Delete failed", err, port.Fields{"property_id": id})
		return fmt.Errorf("SQLiteStorageAdapter: failed to delete property %d: %w", id, err)
	}
	return nil
}
