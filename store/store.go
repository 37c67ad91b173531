package store

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/oxhq/sgrep/internal/config"
)

// Store is the run-history audit log cmd/sgrep apply/rollback read and
// write against.
type Store struct {
	db            *gorm.DB
	retentionRuns int
}

// Open connects to cfg's store DSN, migrates the schema, and returns a
// ready Store.
func Open(cfg *config.Config, debug bool) (*Store, error) {
	db, err := connect(cfg.StoreDSN, debug)
	if err != nil {
		return nil, err
	}
	return &Store{db: db, retentionRuns: cfg.RetentionRuns}, nil
}

// Digest returns the sha256 hex digest of content, recorded on each
// Stage and Applied row. ApplyStage does not compare it against the file
// on disk.
func Digest(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// StartRun opens a new Run and persists it immediately so its ID can be
// referenced by stages as the walk progresses.
func (s *Store) StartRun(options datatypes.JSON) (*Run, error) {
	run := &Run{
		ID:        uuid.NewString(),
		StartedAt: time.Now(),
		Options:   options,
	}
	if err := s.db.Create(run).Error; err != nil {
		return nil, fmt.Errorf("store: start run: %w", err)
	}
	return run, nil
}

// EndRun marks a run finished, recording how many files the walk
// covered.
func (s *Store) EndRun(runID string, filesWalked int) error {
	now := time.Now()
	return s.db.Model(&Run{}).Where("id = ?", runID).
		Updates(map[string]any{"ended_at": now, "files_walked": filesWalked}).Error
}

// StageRewrite records a proposed rewrite for one file against one rule,
// before anything is written to disk.
func (s *Store) StageRewrite(runID, path, language, ruleID, original, modified, diff string, matchCount, constraintsPassed int) (*Stage, error) {
	stage := &Stage{
		ID:                uuid.NewString(),
		RunID:             runID,
		Path:              path,
		Language:          language,
		RuleID:            ruleID,
		BaseDigest:        Digest(original),
		AfterDigest:       Digest(modified),
		Original:          original,
		Modified:          modified,
		Diff:              diff,
		MatchCount:        matchCount,
		ConstraintsPassed: constraintsPassed,
		Status:            "staged",
		CreatedAt:         time.Now(),
	}
	if err := s.db.Create(stage).Error; err != nil {
		return nil, fmt.Errorf("store: stage rewrite for %s: %w", path, err)
	}
	if err := s.db.Model(&Run{}).Where("id = ?", runID).
		UpdateColumn("stages_count", gorm.Expr("stages_count + 1")).Error; err != nil {
		return nil, fmt.Errorf("store: update run stage count: %w", err)
	}
	return stage, nil
}

// ApplyStage marks a staged rewrite committed to disk, recording the
// backup path internal/apply.Writer produced (empty if the file didn't
// exist before the write) so rollback can undo it.
func (s *Store) ApplyStage(stageID, backupPath string) (*Applied, error) {
	var stage Stage
	if err := s.db.First(&stage, "id = ?", stageID).Error; err != nil {
		return nil, fmt.Errorf("store: apply stage %s: %w", stageID, err)
	}

	now := time.Now()
	applied := &Applied{
		ID:          uuid.NewString(),
		StageID:     stageID,
		BaseDigest:  stage.BaseDigest,
		AfterDigest: stage.AfterDigest,
		BackupPath:  backupPath,
		AppliedAt:   now,
	}
	if err := s.db.Create(applied).Error; err != nil {
		return nil, fmt.Errorf("store: record apply for stage %s: %w", stageID, err)
	}
	if err := s.db.Model(&Stage{}).Where("id = ?", stageID).
		Updates(map[string]any{"status": "applied", "applied_at": now}).Error; err != nil {
		return nil, fmt.Errorf("store: update stage status: %w", err)
	}
	if err := s.db.Model(&Run{}).Where("id = ?", stage.RunID).
		UpdateColumn("applies_count", gorm.Expr("applies_count + 1")).Error; err != nil {
		return nil, fmt.Errorf("store: update run apply count: %w", err)
	}
	return applied, nil
}

// RevertApplied marks a stage's Applied record reverted. The actual file
// restore is internal/apply.Writer.Restore's job; this only updates the
// bookkeeping once that restore succeeds.
func (s *Store) RevertApplied(stageID string) error {
	now := time.Now()
	res := s.db.Model(&Applied{}).Where("stage_id = ? AND reverted = ?", stageID, false).
		Updates(map[string]any{"reverted": true, "reverted_at": now})
	if res.Error != nil {
		return fmt.Errorf("store: revert stage %s: %w", stageID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("store: stage %s has no outstanding apply to revert", stageID)
	}
	return s.db.Model(&Stage{}).Where("id = ?", stageID).
		Update("status", "reverted").Error
}

// Run looks up a run by ID, including its stages and their applied
// records, for cmd/sgrep rollback <run-id>.
func (s *Store) Run(id string) (*Run, error) {
	var run Run
	err := s.db.Preload("Stages").Preload("Stages.Applied").First(&run, "id = ?", id).Error
	if err != nil {
		return nil, fmt.Errorf("store: load run %s: %w", id, err)
	}
	return &run, nil
}

// StagesForRun returns every stage recorded under runID, oldest first.
func (s *Store) StagesForRun(runID string) ([]Stage, error) {
	var stages []Stage
	err := s.db.Where("run_id = ?", runID).Order("created_at asc").Find(&stages).Error
	if err != nil {
		return nil, fmt.Errorf("store: list stages for run %s: %w", runID, err)
	}
	return stages, nil
}

// Prune deletes all but the retentionRuns most recent runs and their
// stages/applies, via cascading deletes driven from the run IDs.
func (s *Store) Prune() error {
	if s.retentionRuns <= 0 {
		return nil
	}
	var keep []string
	if err := s.db.Model(&Run{}).Order("started_at desc").
		Limit(s.retentionRuns).Pluck("id", &keep).Error; err != nil {
		return fmt.Errorf("store: prune: list retained runs: %w", err)
	}
	if len(keep) == 0 {
		return nil
	}

	var stale []string
	if err := s.db.Model(&Run{}).Where("id not in ?", keep).Pluck("id", &stale).Error; err != nil {
		return fmt.Errorf("store: prune: list stale runs: %w", err)
	}
	if len(stale) == 0 {
		return nil
	}

	var staleStages []string
	if err := s.db.Model(&Stage{}).Where("run_id in ?", stale).Pluck("id", &staleStages).Error; err != nil {
		return fmt.Errorf("store: prune: list stale stages: %w", err)
	}
	if len(staleStages) > 0 {
		if err := s.db.Where("stage_id in ?", staleStages).Delete(&Applied{}).Error; err != nil {
			return fmt.Errorf("store: prune: delete stale applies: %w", err)
		}
	}
	if err := s.db.Where("run_id in ?", stale).
		Delete(&Stage{}).Error; err != nil {
		return fmt.Errorf("store: prune: delete stale stages: %w", err)
	}
	if err := s.db.Where("id in ?", stale).Delete(&Run{}).Error; err != nil {
		return fmt.Errorf("store: prune: delete stale runs: %w", err)
	}
	return nil
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
