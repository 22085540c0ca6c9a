package runner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/stagekit/stage-go/internal/scenario/engine"
	"github.com/stagekit/stage-go/internal/scenario/loader"
	"github.com/stagekit/stage-go/pkg/config"
	"github.com/stagekit/stage-go/pkg/events"
	"github.com/stagekit/stage-go/pkg/jobs"
	"github.com/stagekit/stage-go/pkg/stage"
)

func (r *Runner) registerHandlers() {
	// Lifecycle handlers
	r.engine.RegisterHandler(ActionConnect, r.handleConnect)
	r.engine.RegisterHandler(ActionInitialize, r.handleInitialize)
	r.engine.RegisterHandler(ActionDisconnect, r.handleDisconnect)

	// Motion handlers
	r.engine.RegisterHandler(ActionMoveAxis, r.handleMoveAxis)
	r.engine.RegisterHandler(ActionMoveRelative, r.handleMoveRelative)
	r.engine.RegisterHandler(ActionMoveTo, r.handleMoveTo)
	r.engine.RegisterHandler(ActionPark, r.handlePark)
	r.engine.RegisterHandler(ActionRunSequence, r.handleRunSequence)
	r.engine.RegisterHandler(ActionRunSequenceAsync, r.handleRunSequenceAsync)
	r.engine.RegisterHandler(ActionCancelMotion, r.handleCancelMotion)
	r.engine.RegisterHandler(ActionWaitMotion, r.handleWaitMotion)

	// Utility handlers
	r.engine.RegisterHandler(ActionWait, r.handleWait)
	r.engine.RegisterHandler(ActionSetVelocity, r.handleSetVelocity)
	r.engine.RegisterHandler(ActionReadPosition, r.handleReadPosition)
	r.engine.RegisterHandler(ActionReadState, r.handleReadState)
	r.engine.RegisterHandler(ActionReadEvents, r.handleReadEvents)
}

// fixtureFrom extracts the stage fixture placed by setupScenario.
func fixtureFrom(state *engine.ExecutionState) (*stageFixture, error) {
	f, ok := state.Stage.(*stageFixture)
	if !ok || f == nil {
		return nil, errors.New("no stage fixture in execution state")
	}
	return f, nil
}

// finish resolves an operation error against the step's allow_failure
// param. Expected failures are recorded as error outputs so error_contains
// and error_kind expectations can inspect them.
func finish(params map[string]interface{}, outputs map[string]interface{}, err error) (map[string]interface{}, error) {
	if err == nil {
		return outputs, nil
	}
	if !paramBool(params, ParamAllowFailure, false) {
		return nil, err
	}
	if outputs == nil {
		outputs = make(map[string]interface{})
	}
	outputs[engine.KeyError] = err.Error()
	outputs[KeyErrorKind] = stage.KindOf(err).String()
	return outputs, nil
}

// runMotion collapses a submit-then-wait pair into one error.
func runMotion(h *jobs.Handle, err error) error {
	if err != nil {
		return err
	}
	return h.Wait()
}

// positionOutputs adds the current position of every axis.
func positionOutputs(f *stageFixture, outputs map[string]interface{}) error {
	snap, err := f.manager.PositionSnapshot()
	if err != nil {
		return err
	}
	for _, a := range stage.Axes() {
		outputs[KeyPositionPrefix+strings.ToLower(a.String())] = snap.Coord(a)
	}
	return nil
}

func (r *Runner) handleConnect(ctx context.Context, step *loader.Step, state *engine.ExecutionState) (map[string]interface{}, error) {
	f, err := fixtureFrom(state)
	if err != nil {
		return nil, err
	}

	opErr := f.conn.Connect().Wait()
	outputs := map[string]interface{}{
		KeyConnectionState: f.conn.ConnectionState().String(),
	}
	return finish(step.Params, outputs, opErr)
}

func (r *Runner) handleInitialize(ctx context.Context, step *loader.Step, state *engine.ExecutionState) (map[string]interface{}, error) {
	f, err := fixtureFrom(state)
	if err != nil {
		return nil, err
	}

	h, opErr := f.conn.Initialize()
	if opErr == nil {
		opErr = h.Wait()
	}
	outputs := map[string]interface{}{
		KeyConnectionState: f.conn.ConnectionState().String(),
		KeyInitState:       f.conn.InitState().String(),
	}
	return finish(step.Params, outputs, opErr)
}

func (r *Runner) handleDisconnect(ctx context.Context, step *loader.Step, state *engine.ExecutionState) (map[string]interface{}, error) {
	f, err := fixtureFrom(state)
	if err != nil {
		return nil, err
	}

	opErr := f.conn.Disconnect()
	outputs := map[string]interface{}{
		KeyConnectionState: f.conn.ConnectionState().String(),
		KeyInitState:       f.conn.InitState().String(),
	}
	return finish(step.Params, outputs, opErr)
}

func (r *Runner) handleMoveAxis(ctx context.Context, step *loader.Step, state *engine.ExecutionState) (map[string]interface{}, error) {
	f, err := fixtureFrom(state)
	if err != nil {
		return nil, err
	}
	params := engine.InterpolateParams(step.Params, state)

	a, err := paramAxis(params, ParamAxis)
	if err != nil {
		return nil, err
	}
	target, err := requireFloat(params, ParamTarget)
	if err != nil {
		return nil, err
	}

	opErr := runMotion(f.motion.MoveAxisAbsolute(a, target))
	outputs := make(map[string]interface{})
	if opErr == nil {
		if err := positionOutputs(f, outputs); err != nil {
			return nil, err
		}
	}
	return finish(params, outputs, opErr)
}

func (r *Runner) handleMoveRelative(ctx context.Context, step *loader.Step, state *engine.ExecutionState) (map[string]interface{}, error) {
	f, err := fixtureFrom(state)
	if err != nil {
		return nil, err
	}
	params := engine.InterpolateParams(step.Params, state)

	a, err := paramAxis(params, ParamAxis)
	if err != nil {
		return nil, err
	}
	delta, err := requireFloat(params, ParamDelta)
	if err != nil {
		return nil, err
	}

	opErr := runMotion(f.motion.MoveAxisRelative(a, delta))
	outputs := make(map[string]interface{})
	if opErr == nil {
		if err := positionOutputs(f, outputs); err != nil {
			return nil, err
		}
	}
	return finish(params, outputs, opErr)
}

func (r *Runner) handleMoveTo(ctx context.Context, step *loader.Step, state *engine.ExecutionState) (map[string]interface{}, error) {
	f, err := fixtureFrom(state)
	if err != nil {
		return nil, err
	}
	params := engine.InterpolateParams(step.Params, state)

	x, err := requireFloat(params, ParamX)
	if err != nil {
		return nil, err
	}
	y, err := requireFloat(params, ParamY)
	if err != nil {
		return nil, err
	}
	z, err := requireFloat(params, ParamZ)
	if err != nil {
		return nil, err
	}
	pos := stage.Position{X: x, Y: y, Z: z}

	var h *jobs.Handle
	var opErr error
	if paramBool(params, ParamDirect, false) {
		h, opErr = f.motion.MoveToPosition(pos, true)
	} else {
		h, opErr = f.motion.MoveToPositionSafeZ(pos)
	}
	opErr = runMotion(h, opErr)

	outputs := make(map[string]interface{})
	if opErr == nil {
		if err := positionOutputs(f, outputs); err != nil {
			return nil, err
		}
	}
	return finish(params, outputs, opErr)
}

func (r *Runner) handlePark(ctx context.Context, step *loader.Step, state *engine.ExecutionState) (map[string]interface{}, error) {
	f, err := fixtureFrom(state)
	if err != nil {
		return nil, err
	}

	opErr := runMotion(f.motion.ParkAll())
	outputs := make(map[string]interface{})
	if opErr == nil {
		if err := positionOutputs(f, outputs); err != nil {
			return nil, err
		}
	}
	return finish(step.Params, outputs, opErr)
}

func (r *Runner) handleRunSequence(ctx context.Context, step *loader.Step, state *engine.ExecutionState) (map[string]interface{}, error) {
	f, err := fixtureFrom(state)
	if err != nil {
		return nil, err
	}
	params := engine.InterpolateParams(step.Params, state)

	cfg, err := sequenceFromParams(params, f.profile)
	if err != nil {
		return nil, err
	}

	opErr := runMotion(f.motion.ExecuteSequence(cfg))
	outputs := map[string]interface{}{
		KeySequenceCount: len(cfg.Waypoints),
	}
	if opErr == nil {
		if err := positionOutputs(f, outputs); err != nil {
			return nil, err
		}
	}
	return finish(params, outputs, opErr)
}

func (r *Runner) handleRunSequenceAsync(ctx context.Context, step *loader.Step, state *engine.ExecutionState) (map[string]interface{}, error) {
	f, err := fixtureFrom(state)
	if err != nil {
		return nil, err
	}
	params := engine.InterpolateParams(step.Params, state)

	cfg, err := sequenceFromParams(params, f.profile)
	if err != nil {
		return nil, err
	}

	h, opErr := f.motion.ExecuteSequence(cfg)
	if opErr != nil {
		return finish(params, nil, opErr)
	}
	state.Custom[customMotionHandle] = h

	return map[string]interface{}{
		KeySequenceCount: len(cfg.Waypoints),
	}, nil
}

func (r *Runner) handleCancelMotion(ctx context.Context, step *loader.Step, state *engine.ExecutionState) (map[string]interface{}, error) {
	f, err := fixtureFrom(state)
	if err != nil {
		return nil, err
	}

	f.motion.CancelMotion()
	return nil, nil
}

func (r *Runner) handleWaitMotion(ctx context.Context, step *loader.Step, state *engine.ExecutionState) (map[string]interface{}, error) {
	f, err := fixtureFrom(state)
	if err != nil {
		return nil, err
	}

	v, ok := state.Custom[customMotionHandle]
	if !ok {
		return nil, errors.New("no pending motion to wait for")
	}
	h, ok := v.(*jobs.Handle)
	if !ok {
		return nil, fmt.Errorf("pending motion has unexpected type %T", v)
	}
	delete(state.Custom, customMotionHandle)

	waitErr := h.Wait()
	outputs := make(map[string]interface{})
	if err := positionOutputs(f, outputs); err != nil && waitErr == nil {
		return nil, err
	}
	return finish(step.Params, outputs, waitErr)
}

func (r *Runner) handleWait(ctx context.Context, step *loader.Step, state *engine.ExecutionState) (map[string]interface{}, error) {
	params := engine.InterpolateParams(step.Params, state)
	ms := paramInt(params, ParamDurationMs, 100)

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(time.Duration(ms) * time.Millisecond):
	}
	return nil, nil
}

func (r *Runner) handleSetVelocity(ctx context.Context, step *loader.Step, state *engine.ExecutionState) (map[string]interface{}, error) {
	f, err := fixtureFrom(state)
	if err != nil {
		return nil, err
	}
	params := engine.InterpolateParams(step.Params, state)

	a, err := paramAxis(params, ParamAxis)
	if err != nil {
		return nil, err
	}
	v, err := requireFloat(params, ParamVelocity)
	if err != nil {
		return nil, err
	}

	ctrl, err := f.manager.Controller(a)
	if err != nil {
		return nil, err
	}

	opErr := ctrl.SetVelocity(v)
	outputs := map[string]interface{}{
		KeyVelocityPrefix + strings.ToLower(a.String()): ctrl.Velocity(),
	}
	return finish(params, outputs, opErr)
}

func (r *Runner) handleReadPosition(ctx context.Context, step *loader.Step, state *engine.ExecutionState) (map[string]interface{}, error) {
	f, err := fixtureFrom(state)
	if err != nil {
		return nil, err
	}

	outputs := make(map[string]interface{})
	opErr := positionOutputs(f, outputs)
	if opErr != nil {
		return finish(step.Params, nil, opErr)
	}
	return outputs, nil
}

func (r *Runner) handleReadState(ctx context.Context, step *loader.Step, state *engine.ExecutionState) (map[string]interface{}, error) {
	f, err := fixtureFrom(state)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		KeyConnectionState: f.conn.ConnectionState().String(),
		KeyInitState:       f.conn.InitState().String(),
		KeySequenceRunning: f.motion.SequenceRunning(),
	}, nil
}

func (r *Runner) handleReadEvents(ctx context.Context, step *loader.Step, state *engine.ExecutionState) (map[string]interface{}, error) {
	f, err := fixtureFrom(state)
	if err != nil {
		return nil, err
	}

	outputs := make(map[string]interface{})
	for _, t := range events.Types() {
		outputs[KeyEventPrefix+strings.ToLower(t.String())] = f.eventCount(t)
	}
	return outputs, nil
}

// sequenceFromParams builds a sequence config from step params, starting
// from the profile's programmed sequence.
func sequenceFromParams(params map[string]interface{}, profile *config.Profile) (stage.SequenceConfig, error) {
	cfg := profile.Sequence

	if v, ok := params[ParamWaypoints]; ok {
		wps, err := parseWaypoints(v)
		if err != nil {
			return stage.SequenceConfig{}, err
		}
		cfg.Waypoints = wps
	}
	if v, ok := params[ParamPark]; ok {
		cfg.ParkWhenComplete = toBool(v)
	}
	if v, ok := params[ParamParkPosition]; ok {
		if p, numeric := engine.ToFloat64(v); numeric {
			cfg.ParkPosition = p
		}
	}

	if len(cfg.Waypoints) == 0 {
		return stage.SequenceConfig{}, errors.New("sequence has no waypoints")
	}
	return cfg, nil
}

// parseWaypoints converts a YAML waypoint list into stage waypoints.
func parseWaypoints(v interface{}) ([]stage.Waypoint, error) {
	list, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("waypoints must be a list, got %T", v)
	}

	wps := make([]stage.Waypoint, 0, len(list))
	for i, item := range list {
		m, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("waypoint %d must be a map, got %T", i+1, item)
		}
		x, err := requireFloat(m, ParamX)
		if err != nil {
			return nil, fmt.Errorf("waypoint %d: %w", i+1, err)
		}
		y, err := requireFloat(m, ParamY)
		if err != nil {
			return nil, fmt.Errorf("waypoint %d: %w", i+1, err)
		}
		z, err := requireFloat(m, ParamZ)
		if err != nil {
			return nil, fmt.Errorf("waypoint %d: %w", i+1, err)
		}
		wps = append(wps, stage.Waypoint{
			Position: stage.Position{X: x, Y: y, Z: z},
			Hold:     time.Duration(paramInt(m, ParamHoldMs, 0)) * time.Millisecond,
		})
	}
	return wps, nil
}

// paramAxis reads a required axis name parameter.
func paramAxis(params map[string]interface{}, key string) (stage.Axis, error) {
	name, _ := params[key].(string)
	if name == "" {
		return 0, fmt.Errorf("missing required param %q", key)
	}
	return stage.ParseAxis(name)
}

// requireFloat reads a required numeric parameter, handling the int,
// int64 and float64 types YAML decoding may produce.
func requireFloat(params map[string]interface{}, key string) (float64, error) {
	v, ok := params[key]
	if !ok {
		return 0, fmt.Errorf("missing required param %q", key)
	}
	f, numeric := engine.ToFloat64(v)
	if !numeric {
		return 0, fmt.Errorf("param %q is not numeric: %T", key, v)
	}
	return f, nil
}

// paramInt reads an optional integer parameter.
func paramInt(params map[string]interface{}, key string, defaultVal int) int {
	v, ok := params[key]
	if !ok {
		return defaultVal
	}
	f, numeric := engine.ToFloat64(v)
	if !numeric {
		return defaultVal
	}
	return int(f)
}

// paramBool reads an optional boolean parameter.
func paramBool(params map[string]interface{}, key string, defaultVal bool) bool {
	v, ok := params[key]
	if !ok {
		return defaultVal
	}
	return toBool(v)
}

// toBool converts a value to bool.
func toBool(v interface{}) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		return val == "true" || val == "yes" || val == "1"
	case int:
		return val != 0
	case float64:
		return val != 0
	default:
		return false
	}
}
