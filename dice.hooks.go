package dice

import (
	"context"
	"sync"
	"time"
)

// HookPoint identifies when a hook is called during a roll.
type HookPoint string

// Hook points for the roll lifecycle.
const (
	// HookBeforeRoll is called after alias expansion and before lexing.
	HookBeforeRoll HookPoint = "before_roll"

	// HookAfterRoll is called once the result is built (success or failure).
	HookAfterRoll HookPoint = "after_roll"
)

// Hook is a function called at specific points during a roll.
// Return an error from a "before" hook to abort the roll. Errors from
// "after" hooks are logged but don't change the result.
type Hook func(ctx context.Context, point HookPoint, data *HookData) error

// HookData carries context information to hooks.
type HookData struct {
	// Expression is the input as given by the caller.
	Expression string

	// Expanded is the expression after alias expansion.
	Expanded string

	// Variables is the normalized variable table. Hooks must not modify it.
	Variables map[string]int

	// Result is the roll result (after_roll only).
	Result *Result

	// Error is the pipeline error, if any (after_roll only).
	Error error

	// Metadata allows hooks to pass data to each other.
	Metadata map[string]any
}

// NewHookData creates a new HookData for a roll.
func NewHookData(expression string, variables map[string]int) *HookData {
	return &HookData{
		Expression: expression,
		Variables:  variables,
		Metadata:   make(map[string]any),
	}
}

// WithExpanded sets the alias-expanded expression.
func (d *HookData) WithExpanded(expanded string) *HookData {
	d.Expanded = expanded
	return d
}

// WithResult sets the roll result.
func (d *HookData) WithResult(result *Result) *HookData {
	d.Result = result
	return d
}

// WithError sets the error.
func (d *HookData) WithError(err error) *HookData {
	d.Error = err
	return d
}

// SetMetadata sets a metadata value.
func (d *HookData) SetMetadata(key string, value any) {
	if d.Metadata == nil {
		d.Metadata = make(map[string]any)
	}
	d.Metadata[key] = value
}

// GetMetadata gets a metadata value.
func (d *HookData) GetMetadata(key string) (any, bool) {
	if d.Metadata == nil {
		return nil, false
	}
	v, ok := d.Metadata[key]
	return v, ok
}

// HookRegistry manages hook registration and execution.
type HookRegistry struct {
	mu    sync.RWMutex
	hooks map[HookPoint][]Hook
}

// NewHookRegistry creates a new hook registry.
func NewHookRegistry() *HookRegistry {
	return &HookRegistry{
		hooks: make(map[HookPoint][]Hook),
	}
}

// Register adds a hook for the specified point.
func (r *HookRegistry) Register(point HookPoint, hook Hook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hooks[point] = append(r.hooks[point], hook)
}

// RegisterMultiple adds a hook for multiple points.
func (r *HookRegistry) RegisterMultiple(hook Hook, points ...HookPoint) {
	for _, point := range points {
		r.Register(point, hook)
	}
}

// Clear removes all hooks for a specific point.
func (r *HookRegistry) Clear(point HookPoint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.hooks, point)
}

// Run executes all hooks for the specified point.
// For "before" hooks the first error stops execution and is returned.
// For "after" hooks every hook runs and errors are dropped; use
// RunWithErrors to see them.
func (r *HookRegistry) Run(ctx context.Context, point HookPoint, data *HookData) error {
	r.mu.RLock()
	hooks := r.hooks[point]
	r.mu.RUnlock()

	isBefore := isBeforeHook(point)
	for _, hook := range hooks {
		if err := hook(ctx, point, data); err != nil && isBefore {
			return err
		}
	}
	return nil
}

// RunWithErrors executes all hooks and returns all errors.
func (r *HookRegistry) RunWithErrors(ctx context.Context, point HookPoint, data *HookData) []error {
	r.mu.RLock()
	hooks := r.hooks[point]
	r.mu.RUnlock()

	var errs []error
	for _, hook := range hooks {
		if err := hook(ctx, point, data); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// Count returns the number of hooks registered for a point.
func (r *HookRegistry) Count(point HookPoint) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.hooks[point])
}

// HasHooks checks if any hooks are registered for a point.
func (r *HookRegistry) HasHooks(point HookPoint) bool {
	return r.Count(point) > 0
}

func isBeforeHook(point HookPoint) bool {
	return point == HookBeforeRoll
}

// LoggingHook creates a hook that hands every call to logFn.
func LoggingHook(logFn func(point HookPoint, data *HookData)) Hook {
	return func(ctx context.Context, point HookPoint, data *HookData) error {
		logFn(point, data)
		return nil
	}
}

// timingMetadataKey is where TimingHook stores the roll start time
const timingMetadataKey = "_timing_start"

// TimingHook creates a hook that records when a roll started. Register it on
// both points and call the returned function from an after_roll hook to get
// the elapsed time.
func TimingHook() (Hook, func(*HookData) time.Duration) {
	hook := func(ctx context.Context, point HookPoint, data *HookData) error {
		if isBeforeHook(point) {
			data.SetMetadata(timingMetadataKey, timeNow())
		}
		return nil
	}

	elapsed := func(data *HookData) time.Duration {
		start, ok := data.GetMetadata(timingMetadataKey)
		if !ok {
			return 0
		}
		startTime, ok := start.(time.Time)
		if !ok {
			return 0
		}
		return timeNow().Sub(startTime)
	}

	return hook, elapsed
}

// AuditHook creates an after_roll hook that records every successful roll
// into the auditor under the given actor and room.
func AuditHook(auditor Auditor, actorID, roomID string) Hook {
	return func(ctx context.Context, point HookPoint, data *HookData) error {
		if isBeforeHook(point) || data.Result == nil || data.Result.IsError() {
			return nil
		}
		record, err := NewAuditRecord(actorID, roomID, data.Result, timeNow())
		if err != nil {
			return err
		}
		return auditor.Record(ctx, record)
	}
}
