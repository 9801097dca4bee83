package game

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/google/uuid"

	"github.com/pthm-cable/basin/config"
	"github.com/pthm-cable/basin/input"
	"github.com/pthm-cable/basin/systems"
)

// ErrUnboundDial is returned by Start when a registered dial has no resource.
var ErrUnboundDial = errors.New("dial has no bound resource")

// ErrNotIdle is returned by Start outside the Idle state.
var ErrNotIdle = errors.New("session is not idle")

// State is the session lifecycle state.
type State uint8

const (
	StateIdle State = iota
	StateRunning
	StateTerminal
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateTerminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// Outcome is the immutable result of a finished session.
type Outcome struct {
	SessionID string
	Cause     systems.Cause
	IsVictory bool
	Message   string
	Elapsed   float64 // Seconds of playing time
}

// LogValue implements slog.LogValuer for structured logging.
func (o Outcome) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("session", o.SessionID),
		slog.String("cause", o.Cause.String()),
		slog.Bool("victory", o.IsVictory),
		slog.String("message", o.Message),
		slog.Float64("elapsed", o.Elapsed),
	)
}

// Session runs one plant from start to outcome and can be restarted.
//
// Simulated time only advances in StateRunning. Dials registered with the
// session are enabled on Start and disabled, cancelling any drag, on the way
// out of Running.
type Session struct {
	cfg *config.Config
	rng *rand.Rand

	id      string
	state   State
	plant   *Plant
	outcome Outcome
	report  systems.Report
	deltas  PoolDeltas

	tank       *Tank
	thermostat *Thermostat
	dials      []*input.Dial
	listeners  []func(Outcome)

	paused    bool
	timeScale float64
}

// NewSession creates an idle session with a fresh plant.
func NewSession(cfg *config.Config, rng *rand.Rand) *Session {
	s := &Session{
		cfg:       cfg,
		rng:       rng,
		plant:     NewPlant(cfg),
		timeScale: 1,
	}
	s.tank = &Tank{session: s}
	s.thermostat = &Thermostat{session: s}
	return s
}

// Tank returns the water supply the water dial drives.
func (s *Session) Tank() *Tank { return s.tank }

// Thermostat returns the heater the temperature dial drives.
func (s *Session) Thermostat() *Thermostat { return s.thermostat }

// AddDial registers a dial whose enabled state follows the session.
func (s *Session) AddDial(d *input.Dial) {
	d.SetEnabled(s.state == StateRunning)
	s.dials = append(s.dials, d)
}

// OnOutcome registers fn to receive the outcome when the session ends.
func (s *Session) OnOutcome(fn func(Outcome)) {
	s.listeners = append(s.listeners, fn)
}

// Start moves Idle to Running on a freshly built plant.
// Returns an error and stays Idle if the configuration is invalid or a dial is unbound.
func (s *Session) Start() error {
	if s.state != StateIdle {
		return fmt.Errorf("start from %s: %w", s.state, ErrNotIdle)
	}
	if err := s.cfg.Validate(); err != nil {
		slog.Error("session refused to start", "error", err)
		return err
	}
	for i, d := range s.dials {
		if !d.Bound() {
			err := fmt.Errorf("dial %d: %w", i, ErrUnboundDial)
			slog.Error("session refused to start", "error", err)
			return err
		}
	}

	s.plant = NewPlant(s.cfg)
	s.id = uuid.NewString()
	s.report = systems.Report{}
	s.deltas = PoolDeltas{}
	s.state = StateRunning

	for _, d := range s.dials {
		d.SetEnabled(true)
		d.Sync()
	}
	systems.ArmRetarget(s.plant.Thermo(), s.rng)

	slog.Info("session_started",
		"session", s.id,
		"water", s.plant.Water().Quantity,
		"minerals", s.plant.Minerals().Quantity,
		"desired", s.plant.Thermo().Desired,
		"retarget_in", s.plant.Thermo().Retarget.Remaining,
	)
	return nil
}

// SetPaused freezes or resumes simulated time. The retarget clock is unaffected.
func (s *Session) SetPaused(p bool) {
	if s.paused != p {
		slog.Info("session_paused", "session", s.id, "paused", p)
	}
	s.paused = p
}

// Paused reports whether simulated time is frozen.
func (s *Session) Paused() bool { return s.paused }

// SetTimeScale sets the multiplier applied to every tick's dt. Negative values are treated as 0.
func (s *Session) SetTimeScale(scale float64) {
	s.timeScale = max(scale, 0)
}

// TimeScale returns the tick dt multiplier.
func (s *Session) TimeScale() float64 { return s.timeScale }

// Tick advances the simulation by dt seconds scaled by the time scale.
// Outside Running, while paused, or for a non-positive scaled dt nothing happens.
// Dials being dragged forward their value first.
func (s *Session) Tick(dt float64) systems.Report {
	dt *= s.timeScale
	if s.state != StateRunning || s.paused || dt <= 0 {
		return systems.Report{}
	}

	for _, d := range s.dials {
		d.Update()
	}

	s.deltas = s.plant.Step(dt)
	slog.Debug("pool_deltas",
		"session", s.id,
		"water_added", s.deltas.Water.Added,
		"water_consumed", s.deltas.Water.Consumed,
		"minerals_consumed", s.deltas.Minerals.Consumed,
	)

	s.report = systems.Evaluate(s.plant.Snapshot())
	if s.report.Cause.Terminal() {
		s.finish(s.report.Cause)
	}
	return s.report
}

// AdvanceClock runs the desired-temperature retarget timer on wall-clock time.
// It keeps running while the session is paused. Returns the number of retargets.
func (s *Session) AdvanceClock(dt float64) int {
	th := s.plant.Thermo()
	n := systems.AdvanceRetarget(th, dt, s.rng)
	if n > 0 {
		slog.Info("desired_retarget", "session", s.id, "target", th.TargetDesired, "next_in", th.Retarget.Remaining)
	}
	return n
}

func (s *Session) finish(cause systems.Cause) {
	s.state = StateTerminal
	systems.StopRetarget(s.plant.Thermo())
	for _, d := range s.dials {
		d.SetEnabled(false)
	}
	s.outcome = Outcome{
		SessionID: s.id,
		Cause:     cause,
		IsVictory: cause.IsVictory(),
		Message:   cause.Message(),
		Elapsed:   s.plant.Growth().Elapsed,
	}
	slog.Info("session_outcome", "outcome", s.outcome)
	for _, fn := range s.listeners {
		fn(s.outcome)
	}
}

// Restart moves Terminal to Idle with a fresh plant and reset dials.
// Returns false and does nothing in any other state.
func (s *Session) Restart() bool {
	if s.state != StateTerminal {
		return false
	}
	systems.StopRetarget(s.plant.Thermo())

	s.plant = NewPlant(s.cfg)
	s.state = StateIdle
	s.paused = false
	s.outcome = Outcome{}
	s.report = systems.Report{}
	s.deltas = PoolDeltas{}
	for _, d := range s.dials {
		d.SetEnabled(false)
		d.Reset()
	}

	slog.Info("session_restarted", "previous", s.id)
	s.id = ""
	return true
}

// ApplyMinerals adds amount to the minerals pool. Only applies while Running.
func (s *Session) ApplyMinerals(amount float64) {
	if s.state != StateRunning {
		return
	}
	systems.ApplyQuantity(s.plant.Minerals(), amount)
	slog.Debug("minerals_applied", "session", s.id, "amount", amount, "minerals", s.plant.Minerals().Quantity)
}

// State returns the lifecycle state.
func (s *Session) State() State { return s.state }

// ID returns the running or last finished session ID, empty when Idle.
func (s *Session) ID() string { return s.id }

// Plant returns the current plant.
func (s *Session) Plant() *Plant { return s.plant }

// Outcome returns the outcome and whether the session has ended.
func (s *Session) Outcome() (Outcome, bool) {
	return s.outcome, s.state == StateTerminal
}

// Report returns the last evaluation.
func (s *Session) Report() systems.Report { return s.report }

// Deltas returns the pool changes of the last tick.
func (s *Session) Deltas() PoolDeltas { return s.deltas }
