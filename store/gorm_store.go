package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// entityRow is the physical row layout of an entity table. Properties
// are serialized as a JSON object so every logical table shares one schema.
type entityRow struct {
	PartitionKey string `gorm:"column:partition_key;primaryKey"`
	RowKey       string `gorm:"column:row_key;primaryKey"`
	Properties   string `gorm:"column:properties"`
}

// gormTableStore implements TableStore over one MySQL table via GORM.
type gormTableStore struct {
	db    *gorm.DB
	table string
}

// NewGormTableStore creates a TableStore backed by the named MySQL table.
func NewGormTableStore(db *gorm.DB, table string) TableStore {
	return &gormTableStore{db: db, table: table}
}

func (s *gormTableStore) Get(ctx context.Context, partitionKey, rowKey string) (*Entity, error) {
	var row entityRow
	err := s.db.WithContext(ctx).Table(s.table).
		Where("partition_key = ? AND row_key = ?", partitionKey, rowKey).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get entity %s/%s from %s: %w", partitionKey, rowKey, s.table, err)
	}
	return rowToEntity(&row)
}

func (s *gormTableStore) List(ctx context.Context) ([]*Entity, error) {
	var rows []entityRow
	if err := s.db.WithContext(ctx).Table(s.table).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list entities from %s: %w", s.table, err)
	}
	return rowsToEntities(rows)
}

func (s *gormTableStore) ListByRowKey(ctx context.Context, rowKey string) ([]*Entity, error) {
	var rows []entityRow
	err := s.db.WithContext(ctx).Table(s.table).
		Where("row_key = ?", rowKey).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list entities by row key %s from %s: %w", rowKey, s.table, err)
	}
	return rowsToEntities(rows)
}

func (s *gormTableStore) Upsert(ctx context.Context, entity *Entity) error {
	props, err := json.Marshal(entity.Properties)
	if err != nil {
		return fmt.Errorf("failed to marshal properties for %s/%s: %w", entity.PartitionKey, entity.RowKey, err)
	}

	row := entityRow{
		PartitionKey: entity.PartitionKey,
		RowKey:       entity.RowKey,
		Properties:   string(props),
	}
	err = s.db.WithContext(ctx).Table(s.table).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to upsert entity %s/%s into %s: %w", entity.PartitionKey, entity.RowKey, s.table, err)
	}
	return nil
}

func (s *gormTableStore) Delete(ctx context.Context, partitionKey, rowKey string) error {
	// Unconditional delete: zero affected rows means the entity was
	// already gone, which callers treat as success.
	err := s.db.WithContext(ctx).Table(s.table).
		Where("partition_key = ? AND row_key = ?", partitionKey, rowKey).
		Delete(&entityRow{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete entity %s/%s from %s: %w", partitionKey, rowKey, s.table, err)
	}
	return nil
}

func rowToEntity(row *entityRow) (*Entity, error) {
	props := map[string]string{}
	if row.Properties != "" {
		if err := json.Unmarshal([]byte(row.Properties), &props); err != nil {
			return nil, fmt.Errorf("failed to unmarshal properties for %s/%s: %w", row.PartitionKey, row.RowKey, err)
		}
	}
	return &Entity{
		PartitionKey: row.PartitionKey,
		RowKey:       row.RowKey,
		Properties:   props,
	}, nil
}

func rowsToEntities(rows []entityRow) ([]*Entity, error) {
	entities := make([]*Entity, 0, len(rows))
	for i := range rows {
		entity, err := rowToEntity(&rows[i])
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
