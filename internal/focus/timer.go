// Package focus implements the pomodoro focus session: a countdown
// state machine alternating work and break periods, and the transient
// set of tasks selected for the session. Timer state is an explicit
// value with pure transitions; the host owns the single instance and
// drives Tick from an external one-second pulse.
package focus

// Config holds the configured timer durations.
type Config struct {
	WorkSeconds       int
	ShortBreakSeconds int
	LongBreakSeconds  int

	// LongBreakInterval is how many completed work sessions precede a
	// long break.
	LongBreakInterval int
}

// Default durations, in seconds.
const (
	DefaultWorkSeconds       = 25 * 60
	DefaultShortBreakSeconds = 5 * 60
	DefaultLongBreakSeconds  = 15 * 60
	DefaultLongBreakInterval = 4
)

// DefaultConfig returns the standard 25/5/15 pomodoro configuration.
func DefaultConfig() Config {
	return Config{
		WorkSeconds:       DefaultWorkSeconds,
		ShortBreakSeconds: DefaultShortBreakSeconds,
		LongBreakSeconds:  DefaultLongBreakSeconds,
		LongBreakInterval: DefaultLongBreakInterval,
	}
}

// Timer is the countdown state machine. The zero value is not useful;
// construct with NewTimer.
type Timer struct {
	Config Config

	// TimeLeft is the remaining seconds in the current period.
	TimeLeft int

	// Running reports whether the countdown is active. A paused timer
	// retains its remaining time.
	Running bool

	// OnBreak reports whether the current period is a break.
	OnBreak bool

	// PomodoroCount is the number of completed work sessions.
	PomodoroCount int
}

// NewTimer returns a paused work-period timer with a full countdown.
func NewTimer(cfg Config) Timer {
	if cfg.WorkSeconds <= 0 {
		cfg = DefaultConfig()
	}
	return Timer{Config: cfg, TimeLeft: cfg.WorkSeconds}
}

// Start resumes the countdown. Starting a running timer is a no-op.
func (t Timer) Start() Timer {
	t.Running = true
	return t
}

// Pause halts the countdown, retaining the remaining time.
func (t Timer) Pause() Timer {
	t.Running = false
	return t
}

// Reset returns the timer to a paused work period. A non-nil seconds
// overrides the configured work duration for this period only.
func (t Timer) Reset(seconds *int) Timer {
	t.Running = false
	t.OnBreak = false
	if seconds != nil {
		t.TimeLeft = *seconds
	} else {
		t.TimeLeft = t.Config.WorkSeconds
	}
	return t
}

// Tick advances the countdown by one elapsed second. When the period
// runs out the timer switches mode: finishing a work session counts a
// pomodoro and picks the short or long break, and finishing a break
// returns to work. The timer always lands paused after a switch, so
// the host decides when the next period begins. Ticking a paused timer
// changes nothing.
func (t Timer) Tick() Timer {
	if !t.Running {
		return t
	}

	if t.TimeLeft > 0 {
		t.TimeLeft--
	}
	if t.TimeLeft > 0 {
		return t
	}

	if t.OnBreak {
		t.OnBreak = false
		t.TimeLeft = t.Config.WorkSeconds
	} else {
		t.PomodoroCount++
		t.OnBreak = true
		if t.PomodoroCount%t.Config.LongBreakInterval == 0 {
			t.TimeLeft = t.Config.LongBreakSeconds
		} else {
			t.TimeLeft = t.Config.ShortBreakSeconds
		}
	}
	t.Running = false
	return t
}
