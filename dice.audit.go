package dice

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/itsatony/go-cuserr"
)

// auditDigestSeparator joins the fields hashed into an audit digest
const auditDigestSeparator = ":"

// AuditRecord is a tamper-evident record of one roll. The digest lets a
// table verify later that the stored total belongs to the stored expression,
// actor, room and time.
type AuditRecord struct {
	ID         string    `json:"id"`
	ActorID    string    `json:"actor_id"`
	RoomID     string    `json:"room_id"`
	Expression string    `json:"expression"`
	Total      int       `json:"total"`
	Breakdown  string    `json:"breakdown"`
	Timestamp  time.Time `json:"timestamp"`
	Digest     string    `json:"digest"`
}

// NewAuditRecord builds an audit record for a roll result.
// The digest is the hex SHA-256 of "actor:room:expression:total:timestamp"
// with the timestamp in RFC 3339 with nanoseconds, UTC.
func NewAuditRecord(actorID, roomID string, result *Result, at time.Time) (*AuditRecord, error) {
	if result == nil {
		return nil, cuserr.NewValidationError(ErrCodeAudit, ErrMsgAuditMissingRoll)
	}
	at = at.UTC()
	return &AuditRecord{
		ID:         uuid.NewString(),
		ActorID:    actorID,
		RoomID:     roomID,
		Expression: result.Expression,
		Total:      result.Total,
		Breakdown:  result.Breakdown,
		Timestamp:  at,
		Digest:     AuditDigest(actorID, roomID, result.Expression, result.Total, at),
	}, nil
}

// AuditDigest computes the provenance digest of a roll
func AuditDigest(actorID, roomID, expression string, total int, at time.Time) string {
	payload := strings.Join([]string{
		actorID,
		roomID,
		expression,
		strconv.Itoa(total),
		at.UTC().Format(time.RFC3339Nano),
	}, auditDigestSeparator)
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}

// Verify reports whether the digest still matches the record's fields
func (r *AuditRecord) Verify() bool {
	return r.Digest == AuditDigest(r.ActorID, r.RoomID, r.Expression, r.Total, r.Timestamp)
}

// Auditor receives audit records.
type Auditor interface {
	Record(ctx context.Context, record *AuditRecord) error
}

// MemoryAuditor stores audit records in memory.
type MemoryAuditor struct {
	mu      sync.RWMutex
	records []*AuditRecord
	limit   int
}

// NewMemoryAuditor creates an in-memory auditor.
// If limit > 0, only the most recent records are kept.
func NewMemoryAuditor(limit int) *MemoryAuditor {
	return &MemoryAuditor{
		records: make([]*AuditRecord, 0),
		limit:   limit,
	}
}

// Record stores a record in memory.
func (a *MemoryAuditor) Record(ctx context.Context, record *AuditRecord) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.records = append(a.records, record)
	if a.limit > 0 && len(a.records) > a.limit {
		a.records = a.records[len(a.records)-a.limit:]
	}
	return nil
}

// Records returns all stored records.
func (a *MemoryAuditor) Records() []*AuditRecord {
	a.mu.RLock()
	defer a.mu.RUnlock()

	result := make([]*AuditRecord, len(a.records))
	copy(result, a.records)
	return result
}

// Count returns the number of stored records.
func (a *MemoryAuditor) Count() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.records)
}

// Last returns the most recent record, or nil if none.
func (a *MemoryAuditor) Last() *AuditRecord {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if len(a.records) == 0 {
		return nil
	}
	return a.records[len(a.records)-1]
}

// FuncAuditor wraps a function as an auditor.
type FuncAuditor struct {
	fn func(context.Context, *AuditRecord) error
}

// NewFuncAuditor creates an auditor from a function.
func NewFuncAuditor(fn func(context.Context, *AuditRecord) error) *FuncAuditor {
	return &FuncAuditor{fn: fn}
}

// Record calls the wrapped function.
func (a *FuncAuditor) Record(ctx context.Context, record *AuditRecord) error {
	return a.fn(ctx, record)
}

// timeNow is a variable for testing.
var timeNow = time.Now
