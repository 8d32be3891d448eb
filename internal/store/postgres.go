package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// sessionRow is the draft_sessions table.
type sessionRow struct {
	Code      string `gorm:"primaryKey;size:16"`
	Payload   string `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time
}

func (sessionRow) TableName() string { return "draft_sessions" }

type postgresRepository struct {
	db *gorm.DB
}

// OpenPostgres connects with dsn and migrates the sessions table.
func OpenPostgres(dsn string) (Repository, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return NewPostgres(db)
}

func NewPostgres(db *gorm.DB) (Repository, error) {
	if db == nil {
		return nil, errors.New("gorm db is required")
	}
	if err := db.AutoMigrate(&sessionRow{}); err != nil {
		return nil, fmt.Errorf("migrate draft_sessions: %w", err)
	}
	return &postgresRepository{db: db}, nil
}

var _ Repository = (*postgresRepository)(nil)

func (r *postgresRepository) Save(ctx context.Context, rec *Record) error {
	row, err := toRow(rec)
	if err != nil {
		return err
	}
	// Save upserts on the primary key.
	if err := r.db.WithContext(ctx).Save(row).Error; err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *postgresRepository) Load(ctx context.Context, code string) (*Record, error) {
	var row sessionRow
	err := r.db.WithContext(ctx).First(&row, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return fromRow(&row)
}

func (r *postgresRepository) Delete(ctx context.Context, code string) error {
	if err := r.db.WithContext(ctx).Delete(&sessionRow{}, "code = ?", code).Error; err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func toRow(rec *Record) (*sessionRow, error) {
	if rec == nil || rec.Code == "" {
		return nil, errors.New("session code cannot be empty")
	}
	rec.UpdatedAt = time.Now().UTC()
	payload, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("marshal session: %w", err)
	}
	return &sessionRow{Code: rec.Code, Payload: string(payload), UpdatedAt: rec.UpdatedAt}, nil
}

func fromRow(row *sessionRow) (*Record, error) {
	var rec Record
	if err := json.Unmarshal([]byte(row.Payload), &rec); err != nil {
		return nil, fmt.Errorf("unmarshal session %s: %w", row.Code, err)
	}
	return &rec, nil
}
