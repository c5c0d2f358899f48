package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"finsight/pkg/core/analyze"
	"finsight/pkg/core/dashboard"
	"finsight/pkg/core/extract"
)

// AnalysisRepo stores one analysis record per uploaded file: the source
// transcript metadata, the normalized AnalysisResult and the derived
// dashboard. Regeneration with a custom prompt upserts the same file id.
type AnalysisRepo struct{}

// NewAnalysisRepo creates a new repository instance.
func NewAnalysisRepo() *AnalysisRepo {
	return &AnalysisRepo{}
}

// AnalysisRecord is the stored shape.
//
// Schema assumption (managed by migrations):
//
//	CREATE TABLE IF NOT EXISTS document_analysis (
//	  file_id TEXT PRIMARY KEY,
//	  analysis_id TEXT NOT NULL,
//	  record_json JSONB NOT NULL,
//	  updated_at TIMESTAMPTZ NOT NULL
//	);
type AnalysisRecord struct {
	FileID     string                  `json:"file_id"`
	AnalysisID string                  `json:"analysis_id"`
	SourceText string                  `json:"source_text"`
	Metadata   extract.FileMetadata    `json:"metadata"`
	Analysis   *analyze.AnalysisResult `json:"analysis"`
	Dashboard  *dashboard.Dashboard    `json:"dashboard"`
}

// Save upserts the record keyed by file id.
func (r *AnalysisRepo) Save(ctx context.Context, record *AnalysisRecord) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	jsonData, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis record: %w", err)
	}

	query := `
		INSERT INTO document_analysis (file_id, analysis_id, record_json, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (file_id)
		DO UPDATE SET
			analysis_id = EXCLUDED.analysis_id,
			record_json = EXCLUDED.record_json,
			updated_at = EXCLUDED.updated_at;
	`

	_, err = pool.Exec(ctx, query, record.FileID, record.AnalysisID, jsonData, time.Now())
	if err != nil {
		return fmt.Errorf("failed to save analysis record: %w", err)
	}

	return nil
}

// LoadByFile retrieves the record for an uploaded file.
func (r *AnalysisRepo) LoadByFile(ctx context.Context, fileID string) (*AnalysisRecord, error) {
	return r.load(ctx, `SELECT record_json FROM document_analysis WHERE file_id = $1`, fileID)
}

// LoadByAnalysis retrieves the record owning an analysis id. Dashboard, chat
// and export requests are keyed this way.
func (r *AnalysisRepo) LoadByAnalysis(ctx context.Context, analysisID string) (*AnalysisRecord, error) {
	return r.load(ctx, `SELECT record_json FROM document_analysis WHERE analysis_id = $1`, analysisID)
}

func (r *AnalysisRepo) load(ctx context.Context, query, id string) (*AnalysisRecord, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	var jsonData []byte
	err := pool.QueryRow(ctx, query, id).Scan(&jsonData)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("no analysis found for %s", id)
		}
		return nil, fmt.Errorf("failed to load analysis record: %w", err)
	}

	var record AnalysisRecord
	if err := json.Unmarshal(jsonData, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal analysis record: %w", err)
	}

	return &record, nil
}

// Delete removes the record for a file. The caller owns cascade semantics for
// any stored artifacts.
func (r *AnalysisRepo) Delete(ctx context.Context, fileID string) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	_, err := pool.Exec(ctx, `DELETE FROM document_analysis WHERE file_id = $1`, fileID)
	if err != nil {
		return fmt.Errorf("failed to delete analysis record: %w", err)
	}
	return nil
}
