package dice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHookData_Builder(t *testing.T) {
	result := &Result{Expression: "1d6", Total: 4}
	rollErr := errors.New("boom")

	data := NewHookData("1d6", map[string]int{"STR": 1}).
		WithExpanded("1d6").
		WithResult(result).
		WithError(rollErr)

	assert.Equal(t, "1d6", data.Expression)
	assert.Equal(t, "1d6", data.Expanded)
	assert.Equal(t, 1, data.Variables["STR"])
	assert.Same(t, result, data.Result)
	assert.Equal(t, rollErr, data.Error)
}

func TestHookData_Metadata(t *testing.T) {
	data := &HookData{}

	data.SetMetadata("key1", "value1")
	data.SetMetadata("key2", 42)

	v1, ok := data.GetMetadata("key1")
	assert.True(t, ok)
	assert.Equal(t, "value1", v1)

	v2, ok := data.GetMetadata("key2")
	assert.True(t, ok)
	assert.Equal(t, 42, v2)

	_, ok = data.GetMetadata("missing")
	assert.False(t, ok)
}

func TestHookRegistry_Register(t *testing.T) {
	registry := NewHookRegistry()

	called := false
	registry.Register(HookBeforeRoll, func(ctx context.Context, point HookPoint, data *HookData) error {
		called = true
		return nil
	})

	assert.Equal(t, 1, registry.Count(HookBeforeRoll))
	assert.True(t, registry.HasHooks(HookBeforeRoll))
	assert.False(t, registry.HasHooks(HookAfterRoll))

	require.NoError(t, registry.Run(context.Background(), HookBeforeRoll, &HookData{}))
	assert.True(t, called)
}

func TestHookRegistry_RegisterMultipleAndClear(t *testing.T) {
	registry := NewHookRegistry()

	calls := 0
	registry.RegisterMultiple(func(ctx context.Context, point HookPoint, data *HookData) error {
		calls++
		return nil
	}, HookBeforeRoll, HookAfterRoll)

	_ = registry.Run(context.Background(), HookBeforeRoll, &HookData{})
	_ = registry.Run(context.Background(), HookAfterRoll, &HookData{})
	assert.Equal(t, 2, calls)

	registry.Clear(HookBeforeRoll)
	assert.False(t, registry.HasHooks(HookBeforeRoll))
	assert.True(t, registry.HasHooks(HookAfterRoll))
}

func TestHookRegistry_BeforeHookStopsOnError(t *testing.T) {
	registry := NewHookRegistry()
	stop := errors.New("stop")

	second := false
	registry.Register(HookBeforeRoll, func(ctx context.Context, point HookPoint, data *HookData) error {
		return stop
	})
	registry.Register(HookBeforeRoll, func(ctx context.Context, point HookPoint, data *HookData) error {
		second = true
		return nil
	})

	err := registry.Run(context.Background(), HookBeforeRoll, &HookData{})

	assert.ErrorIs(t, err, stop)
	assert.False(t, second)
}

func TestHookRegistry_AfterHookContinuesOnError(t *testing.T) {
	registry := NewHookRegistry()

	calls := 0
	failing := func(ctx context.Context, point HookPoint, data *HookData) error {
		calls++
		return errors.New("after failed")
	}
	registry.Register(HookAfterRoll, failing)
	registry.Register(HookAfterRoll, failing)

	err := registry.Run(context.Background(), HookAfterRoll, &HookData{})
	assert.NoError(t, err)
	assert.Equal(t, 2, calls)

	errs := registry.RunWithErrors(context.Background(), HookAfterRoll, &HookData{})
	assert.Len(t, errs, 2)
}

func TestLoggingHook(t *testing.T) {
	var points []HookPoint
	hook := LoggingHook(func(point HookPoint, data *HookData) {
		points = append(points, point)
	})

	engine := MustNew(
		WithRandomSource(NewScriptedSource(2)),
		WithHook(HookBeforeRoll, hook),
		WithHook(HookAfterRoll, hook),
	)
	engine.Roll("1d4", nil)

	assert.Equal(t, []HookPoint{HookBeforeRoll, HookAfterRoll}, points)
}

func TestTimingHook(t *testing.T) {
	clock := withFrozenClock(t, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	hook, elapsed := TimingHook()
	data := NewHookData("1d6", nil)

	require.NoError(t, hook(context.Background(), HookBeforeRoll, data))
	*clock = clock.Add(250 * time.Millisecond)

	assert.Equal(t, 250*time.Millisecond, elapsed(data))
	assert.Equal(t, time.Duration(0), elapsed(&HookData{}))
}

func TestAuditHook_RecordsSuccessfulRolls(t *testing.T) {
	auditor := NewMemoryAuditor(0)
	engine := MustNew(
		WithRandomSource(NewScriptedSource(5, 2)),
		WithHook(HookAfterRoll, AuditHook(auditor, "actor-1", "room-9")),
	)

	engine.Roll("1d6+1", nil)
	engine.Roll("1d6/0", nil)

	require.Equal(t, 1, auditor.Count())
	record := auditor.Last()
	assert.Equal(t, "actor-1", record.ActorID)
	assert.Equal(t, "room-9", record.RoomID)
	assert.Equal(t, "1d6+1", record.Expression)
	assert.Equal(t, 6, record.Total)
	assert.True(t, record.Verify())
}
