// Package store persists run history for cmd/sgrep's apply/rollback
// subcommands: one Run per walk, one Stage per file rewrite proposed
// during that run, and an Applied record once a stage is committed to
// disk. Adapted from the teacher's models.Session/models.Stage/
// models.Apply — same staged-then-committed shape and before/after
// digest pair (recorded only; nothing compares them against the file on
// disk before an apply), with the
// teacher's natural-language confidence score replaced by MatchCount/
// ConstraintsPassed (this engine has no confidence heuristic to report).
package store

import (
	"time"

	"gorm.io/datatypes"
)

// Run is one invocation of cmd/sgrep apply over a walked file set.
type Run struct {
	ID           string `gorm:"primaryKey"`
	StartedAt    time.Time
	EndedAt      *time.Time
	FilesWalked  int
	StagesCount  int
	AppliesCount int
	Options      datatypes.JSON // walk scope + rule ids, for audit/replay

	Stages []Stage `gorm:"foreignKey:RunID"`
}

func (Run) TableName() string { return "runs" }

// Stage is one rule's rewrite of one file within a Run (covering every
// match of that rule in the file), holding the rewrite the provider
// proposed before it is committed.
type Stage struct {
	ID       string `gorm:"primaryKey"`
	RunID    string `gorm:"index"`
	Path     string
	Language string
	RuleID   string

	BaseDigest  string // sha256 of the file content the match was found against
	AfterDigest string // sha256 of the content after rewriter.Build + splice

	Original string
	Modified string
	Diff     string

	MatchCount        int
	ConstraintsPassed int

	Status    string // "staged", "applied", "reverted"
	CreatedAt time.Time
	AppliedAt *time.Time

	Applied *Applied `gorm:"foreignKey:StageID"`
}

func (Stage) TableName() string { return "stages" }

// Applied records a Stage actually written to disk, with enough to
// undo it: the backup path internal/apply.Writer produced, if any.
type Applied struct {
	ID      string `gorm:"primaryKey"`
	StageID string `gorm:"uniqueIndex"`

	BaseDigest  string
	AfterDigest string
	BackupPath  string

	AppliedAt   time.Time
	Reverted    bool
	RevertedAt  *time.Time

	Stage Stage `gorm:"foreignKey:StageID"`
}

func (Applied) TableName() string { return "applies" }
