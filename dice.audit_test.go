package dice

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/itsatony/go-cuserr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAuditRecord(t *testing.T) {
	at := time.Date(2026, 5, 4, 20, 15, 30, 123456789, time.FixedZone("CEST", 2*60*60))
	result := &Result{Expression: "1d20+@STR", Total: 17, Breakdown: "1d20 (14) = 17"}

	record, err := NewAuditRecord("actor-1", "room-2", result, at)
	require.NoError(t, err)

	_, parseErr := uuid.Parse(record.ID)
	assert.NoError(t, parseErr)
	assert.Equal(t, "actor-1", record.ActorID)
	assert.Equal(t, "room-2", record.RoomID)
	assert.Equal(t, "1d20+@STR", record.Expression)
	assert.Equal(t, 17, record.Total)
	assert.Equal(t, "1d20 (14) = 17", record.Breakdown)
	assert.Equal(t, time.UTC, record.Timestamp.Location())

	sum := sha256.Sum256([]byte("actor-1:room-2:1d20+@STR:17:2026-05-04T18:15:30.123456789Z"))
	assert.Equal(t, hex.EncodeToString(sum[:]), record.Digest)
	assert.True(t, record.Verify())
}

func TestNewAuditRecord_UniqueIDs(t *testing.T) {
	result := &Result{Expression: "1d6", Total: 3}
	at := time.Now()

	a, err := NewAuditRecord("a", "r", result, at)
	require.NoError(t, err)
	b, err := NewAuditRecord("a", "r", result, at)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, a.Digest, b.Digest)
}

func TestNewAuditRecord_NilResult(t *testing.T) {
	_, err := NewAuditRecord("a", "r", nil, time.Now())
	require.Error(t, err)

	var customErr *cuserr.CustomError
	assert.True(t, errors.As(err, &customErr))
	assert.Contains(t, err.Error(), ErrMsgAuditMissingRoll)
}

func TestAuditRecord_VerifyDetectsTampering(t *testing.T) {
	record, err := NewAuditRecord("a", "r", &Result{Expression: "2d6", Total: 7}, time.Now())
	require.NoError(t, err)

	record.Total = 12

	assert.False(t, record.Verify())
}

func TestMemoryAuditor(t *testing.T) {
	auditor := NewMemoryAuditor(2)
	ctx := context.Background()

	assert.Nil(t, auditor.Last())
	for _, id := range []string{"1", "2", "3"} {
		require.NoError(t, auditor.Record(ctx, &AuditRecord{ID: id}))
	}

	assert.Equal(t, 2, auditor.Count())
	records := auditor.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "2", records[0].ID)
	assert.Equal(t, "3", auditor.Last().ID)
}

func TestFuncAuditor(t *testing.T) {
	var seen *AuditRecord
	auditor := NewFuncAuditor(func(ctx context.Context, record *AuditRecord) error {
		seen = record
		return nil
	})

	record := &AuditRecord{ID: "x"}
	require.NoError(t, auditor.Record(context.Background(), record))
	assert.Same(t, record, seen)
}
