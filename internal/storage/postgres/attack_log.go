package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/dfcombat/internal/game/combat"
)

// AttackEntry is one resolved attack as stored in the attack log.
type AttackEntry struct {
	ID         uuid.UUID
	Round      int
	AttackerID string
	TargetID   string
	BodyPart   string
	Path       string
	Chance     int
	Hit        bool
	Damage     int
	Backstab   bool
	Critical   bool
	Blocked    bool
	Effects    []string
	TargetDead bool
	CreatedAt  time.Time
}

// EntryFromResult converts a resolved attack into a log entry with a fresh ID.
//
// Postcondition: Effects is non-nil.
func EntryFromResult(round int, res combat.Result) AttackEntry {
	effects := res.Effects
	if effects == nil {
		effects = []string{}
	}
	return AttackEntry{
		ID:         uuid.New(),
		Round:      round,
		AttackerID: res.AttackerID,
		TargetID:   res.TargetID,
		BodyPart:   string(res.BodyPart),
		Path:       string(res.Path),
		Chance:     res.Chance,
		Hit:        res.Hit,
		Damage:     res.Damage,
		Backstab:   res.Backstab,
		Critical:   res.Critical,
		Blocked:    res.Blocked,
		Effects:    effects,
		TargetDead: res.TargetDead,
	}
}

// AttackSummary aggregates an attacker's logged attacks.
type AttackSummary struct {
	AttackerID  string
	Attacks     int
	Hits        int
	TotalDamage int
	Criticals   int
	Backstabs   int
	Kills       int
}

// HitRate returns the fraction of attacks that hit, or 0 with no attacks.
func (s AttackSummary) HitRate() float64 {
	if s.Attacks == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Attacks)
}

// ErrInvalidEntry is returned when an entry is missing its participants.
var ErrInvalidEntry = errors.New("invalid attack log entry")

// AttackLogRepository provides attack log persistence operations.
type AttackLogRepository struct {
	db *pgxpool.Pool
}

// NewAttackLogRepository creates an AttackLogRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewAttackLogRepository(db *pgxpool.Pool) *AttackLogRepository {
	return &AttackLogRepository{db: db}
}

// Record inserts e.
//
// Precondition: e.AttackerID and e.TargetID must be non-empty; e.Damage >= 0.
// Postcondition: Returns e with ID and CreatedAt set by the database when
// they were zero, or ErrInvalidEntry.
func (r *AttackLogRepository) Record(ctx context.Context, e AttackEntry) (AttackEntry, error) {
	if e.AttackerID == "" || e.TargetID == "" || e.Damage < 0 {
		return AttackEntry{}, ErrInvalidEntry
	}
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.Effects == nil {
		e.Effects = []string{}
	}
	err := r.db.QueryRow(ctx,
		`INSERT INTO attack_log
		   (id, round, attacker_id, target_id, body_part, path, chance, hit, damage,
		    backstab, critical, blocked, effects, target_dead)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		 RETURNING created_at`,
		e.ID, e.Round, e.AttackerID, e.TargetID, e.BodyPart, e.Path, e.Chance, e.Hit, e.Damage,
		e.Backstab, e.Critical, e.Blocked, e.Effects, e.TargetDead,
	).Scan(&e.CreatedAt)
	if err != nil {
		return AttackEntry{}, fmt.Errorf("inserting attack log entry: %w", err)
	}
	return e, nil
}

// RecordAll inserts entries in one transaction.
//
// Postcondition: either every entry is stored or none is.
func (r *AttackLogRepository) RecordAll(ctx context.Context, entries []AttackEntry) error {
	for _, e := range entries {
		if e.AttackerID == "" || e.TargetID == "" || e.Damage < 0 {
			return ErrInvalidEntry
		}
	}
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, e := range entries {
			if e.ID == uuid.Nil {
				e.ID = uuid.New()
			}
			if e.Effects == nil {
				e.Effects = []string{}
			}
			batch.Queue(
				`INSERT INTO attack_log
				   (id, round, attacker_id, target_id, body_part, path, chance, hit, damage,
				    backstab, critical, blocked, effects, target_dead)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
				e.ID, e.Round, e.AttackerID, e.TargetID, e.BodyPart, e.Path, e.Chance, e.Hit, e.Damage,
				e.Backstab, e.Critical, e.Blocked, e.Effects, e.TargetDead,
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("inserting attack log batch: %w", err)
		}
		return nil
	})
}

// SummaryFor aggregates every logged attack made by attackerID.
//
// Postcondition: an attacker with no entries yields a zero summary, not an error.
func (r *AttackLogRepository) SummaryFor(ctx context.Context, attackerID string) (AttackSummary, error) {
	s := AttackSummary{AttackerID: attackerID}
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*),
		        COUNT(*) FILTER (WHERE hit),
		        COALESCE(SUM(damage), 0),
		        COUNT(*) FILTER (WHERE critical),
		        COUNT(*) FILTER (WHERE backstab),
		        COUNT(*) FILTER (WHERE target_dead)
		 FROM attack_log WHERE attacker_id = $1`,
		attackerID,
	).Scan(&s.Attacks, &s.Hits, &s.TotalDamage, &s.Criticals, &s.Backstabs, &s.Kills)
	if err != nil {
		return AttackSummary{}, fmt.Errorf("summarising attack log: %w", err)
	}
	return s, nil
}

// Recent returns up to limit entries, newest first.
//
// Precondition: limit > 0.
func (r *AttackLogRepository) Recent(ctx context.Context, limit int) ([]AttackEntry, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be > 0, got %d", limit)
	}
	rows, err := r.db.Query(ctx,
		`SELECT id, round, attacker_id, target_id, body_part, path, chance, hit, damage,
		        backstab, critical, blocked, effects, target_dead, created_at
		 FROM attack_log
		 ORDER BY created_at DESC, round DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying attack log: %w", err)
	}
	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (AttackEntry, error) {
		var e AttackEntry
		err := row.Scan(&e.ID, &e.Round, &e.AttackerID, &e.TargetID, &e.BodyPart, &e.Path,
			&e.Chance, &e.Hit, &e.Damage, &e.Backstab, &e.Critical, &e.Blocked,
			&e.Effects, &e.TargetDead, &e.CreatedAt)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("scanning attack log: %w", err)
	}
	return entries, nil
}
