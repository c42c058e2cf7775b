package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// Storage keys for the two durable blobs.
const (
	StateKey    = "plan_tracker_data"
	ProjectsKey = "plan_tracker_projects"
)

// Persister is the durable key-value storage the store flushes its blobs to.
// Load returns (nil, nil) when the key has never been written.
type Persister interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
}

// Options tune the store. Zero values select the defaults.
type Options struct {
	// DayStartHour is the local hour of the day boundary (default 4).
	DayStartHour int
	// Debounce coalesces bursts of mutations into one write (default 100ms).
	Debounce time.Duration
	// AutosaveEvery is the unconditional persist safety net (default 5s,
	// negative disables).
	AutosaveEvery time.Duration
	// BoundaryEvery is how often the day-boundary crossing is checked
	// (default 1m, negative disables).
	BoundaryEvery time.Duration
	// Now is the clock; tests inject a fake one.
	Now func() time.Time
}

func (o Options) withDefaults() Options {
	if o.DayStartHour == 0 {
		o.DayStartHour = DefaultDayStartHour
	}
	if o.Debounce == 0 {
		o.Debounce = 100 * time.Millisecond
	}
	if o.AutosaveEvery == 0 {
		o.AutosaveEvery = 5 * time.Second
	}
	if o.BoundaryEvery == 0 {
		o.BoundaryEvery = time.Minute
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Store is the aggregate root owning all progression state. Mutations run
// synchronously against the in-memory state; persistence is decoupled
// behind a debounce, so observers must tolerate state that has not been
// flushed yet. Subscribers are notified synchronously after each mutation.
type Store struct {
	mu        sync.Mutex
	state     State
	projects  ProjectsState
	persister Persister
	opts      Options

	listeners map[int]func()
	nextSub   int

	saveTimer *time.Timer
	dirty     bool

	stop      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// Open loads both blobs, brings the current day up to date (archiving a
// stale one), and starts the autosave and boundary-watcher timers.
func Open(ctx context.Context, p Persister, opts Options) (*Store, error) {
	s := &Store{
		persister: p,
		opts:      opts.withDefaults(),
		listeners: map[int]func(){},
		stop:      make(chan struct{}),
	}
	if err := s.load(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if !s.state.CurrentDay.windowContains(s.opts.Now(), s.opts.DayStartHour) {
		s.transitionLocked(true)
		s.scheduleSaveLocked()
	}
	s.mu.Unlock()

	s.startTimers()
	return s, nil
}

func (s *Store) load(ctx context.Context) error {
	now := s.opts.Now()

	raw, err := s.persister.Load(ctx, StateKey)
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}
	if raw == nil {
		s.state = defaultState(now, s.opts.DayStartHour)
	} else if err := json.Unmarshal(raw, &s.state); err != nil {
		return fmt.Errorf("decode state: %w", err)
	}
	s.hydrateState(now)

	raw, err = s.persister.Load(ctx, ProjectsKey)
	if err != nil {
		return fmt.Errorf("load projects: %w", err)
	}
	if raw != nil {
		if err := json.Unmarshal(raw, &s.projects); err != nil {
			return fmt.Errorf("decode projects: %w", err)
		}
	}
	s.ensureReservedProjectsLocked()
	s.recomputeProjectsLocked()
	return nil
}

// hydrateState repairs fields that older blobs may be missing.
func (s *Store) hydrateState(now time.Time) {
	if s.state.TotalXP < 0 {
		s.state.TotalXP = 0
	}
	if s.state.CurrentLevel < 1 {
		s.state.CurrentLevel = 1
	}
	if s.state.NextLevelXP <= 0 {
		s.state.NextLevelXP = NextLevelThreshold(s.state.CurrentLevel)
	}
	if s.state.Streak < 0 {
		s.state.Streak = 0
	}
	if s.state.CurrentDay.ID == "" {
		s.state.CurrentDay = newDay(now, s.opts.DayStartHour)
	}
	s.recomputeAdherenceLocked()
}

func defaultState(now time.Time, startHour int) State {
	return State{
		TotalXP:      0,
		CurrentLevel: 1,
		NextLevelXP:  NextLevelThreshold(1),
		CurrentDay:   newDay(now, startHour),
	}
}

func (s *Store) startTimers() {
	if s.opts.AutosaveEvery > 0 {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			t := time.NewTicker(s.opts.AutosaveEvery)
			defer t.Stop()
			for {
				select {
				case <-t.C:
					s.flush()
				case <-s.stop:
					return
				}
			}
		}()
	}
	if s.opts.BoundaryEvery > 0 {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			t := time.NewTicker(s.opts.BoundaryEvery)
			defer t.Stop()
			for {
				select {
				case <-t.C:
					s.CheckDayBoundary()
				case <-s.stop:
					return
				}
			}
		}()
	}
}

// Close stops the background timers and performs a final flush.
func (s *Store) Close() error {
	s.closeOnce.Do(func() {
		close(s.stop)
	})
	s.wg.Wait()

	s.mu.Lock()
	if s.saveTimer != nil {
		s.saveTimer.Stop()
		s.saveTimer = nil
	}
	s.mu.Unlock()

	return s.flushErr()
}

// Subscribe registers a change callback, invoked after every successful
// mutation. The returned function unregisters it.
func (s *Store) Subscribe(fn func()) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *Store) notify() {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// scheduleSaveLocked (re)arms the debounce timer. Callers hold s.mu.
func (s *Store) scheduleSaveLocked() {
	s.dirty = true
	if s.saveTimer != nil {
		s.saveTimer.Stop()
	}
	s.saveTimer = time.AfterFunc(s.opts.Debounce, s.flush)
}

func (s *Store) flush() {
	_ = s.flushErr()
}

// flushErr writes both blobs. On failure the in-memory state stays
// authoritative and dirty, so the next debounce or autosave cycle retries.
func (s *Store) flushErr() error {
	s.mu.Lock()
	stateRaw, err := json.Marshal(s.state)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("encode state: %w", err)
	}
	projectsRaw, err := json.Marshal(s.projects)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("encode projects: %w", err)
	}
	s.dirty = false
	s.mu.Unlock()

	ctx := context.Background()
	if err := s.persister.Save(ctx, StateKey, stateRaw); err != nil {
		s.markDirty()
		return fmt.Errorf("save state: %w", err)
	}
	if err := s.persister.Save(ctx, ProjectsKey, projectsRaw); err != nil {
		s.markDirty()
		return fmt.Errorf("save projects: %w", err)
	}
	return nil
}

func (s *Store) markDirty() {
	s.mu.Lock()
	s.dirty = true
	s.mu.Unlock()
}

// Snapshot returns a deep copy of the progression state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneState(s.state)
}

// Stats derives the dashboard numbers for the current day.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	return Stats{
		CurrentXP:        st.TotalXP,
		NextLevelXP:      st.NextLevelXP,
		CurrentLevel:     st.CurrentLevel,
		TodayXP:          st.CurrentDay.Stats.DayXP,
		BestDayXP:        st.Records.HighestDayXP,
		TodayMinutes:     st.CurrentDay.Stats.DayMinutes,
		BestMinutes:      st.Records.MostWorkTimeInDay,
		TodayPureMinutes: st.CurrentDay.Stats.DayPureMinutes,
		BestPureMinutes:  st.Records.MostPureTimeInDay,
		Streak:           st.Streak,
		PlanAdherence:    st.CurrentDay.Stats.PlanAdherence,
	}
}

// AddXP adds to the total and the current day, crossing as many levels as
// the new total covers. Negative totals clamp to zero.
func (s *Store) AddXP(amount int) {
	s.mu.Lock()
	s.addXPLocked(amount)
	s.scheduleSaveLocked()
	s.mu.Unlock()
	s.notify()
}

func (s *Store) addXPLocked(amount int) {
	s.state.TotalXP += amount
	if s.state.TotalXP < 0 {
		s.state.TotalXP = 0
	}
	s.state.CurrentDay.Stats.DayXP += amount
	if s.state.CurrentDay.Stats.DayXP < 0 {
		s.state.CurrentDay.Stats.DayXP = 0
	}
	for s.state.TotalXP >= s.state.NextLevelXP {
		s.state.CurrentLevel++
		s.state.NextLevelXP = NextLevelThreshold(s.state.CurrentLevel)
	}
}

// UpdateStats adds tracked minutes and pure minutes to the current day.
func (s *Store) UpdateStats(minutes, pureMinutes Minutes) {
	s.mu.Lock()
	s.state.CurrentDay.Stats.DayMinutes += int(minutes)
	s.state.CurrentDay.Stats.DayPureMinutes += int(pureMinutes)
	s.scheduleSaveLocked()
	s.mu.Unlock()
	s.notify()
}

// ShouldShowReflection reports whether the daily reflection prompt is due:
// at most once per calendar day, and only at or after the boundary hour.
func (s *Store) ShouldShowReflection() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.opts.Now()
	if now.Hour() < s.opts.DayStartHour {
		return false
	}
	last := s.state.LastReflectionPrompt
	return last == nil || !sameDate(*last, now)
}

// SetReflection stores the day's free-text reflection and grants the fixed
// reflection bonus.
func (s *Store) SetReflection(text string) {
	s.mu.Lock()
	now := s.opts.Now()
	s.state.CurrentDay.Reflection = text
	s.state.LastReflectionPrompt = &now
	s.addXPLocked(ReflectionXP)
	s.scheduleSaveLocked()
	s.mu.Unlock()
	s.notify()
}

// CheckDayBoundary transitions automatically when the boundary hour has
// been crossed since the current day was created. Idempotent: once the new
// day's window contains now, further checks are no-ops.
func (s *Store) CheckDayBoundary() {
	s.mu.Lock()
	if s.state.CurrentDay.windowContains(s.opts.Now(), s.opts.DayStartHour) {
		s.mu.Unlock()
		return
	}
	s.transitionLocked(true)
	s.scheduleSaveLocked()
	s.mu.Unlock()
	s.notify()
}

// TransitionToNewDay archives the current day and starts a fresh one.
// Automatic transitions (clock crossing the boundary) feed the streak;
// manual ones forfeit the archived day's XP.
func (s *Store) TransitionToNewDay(automatic bool) {
	s.mu.Lock()
	s.transitionLocked(automatic)
	s.scheduleSaveLocked()
	s.mu.Unlock()
	s.notify()
}

func (s *Store) transitionLocked(automatic bool) {
	now := s.opts.Now()
	cur := s.state.CurrentDay
	next := newDay(now, s.opts.DayStartHour)

	// Pre-plan items due on the new day arrive in its plan; future-dated
	// ones carry forward; anything else stays with the archive.
	var arrived, carried, stale []Item
	for _, it := range cur.PrePlanItems {
		switch {
		case it.PlannedDate != nil && sameDate(*it.PlannedDate, next.Date):
			arrived = append(arrived, it)
		case it.PlannedDate != nil && it.PlannedDate.After(next.Date):
			carried = append(carried, it)
		default:
			stale = append(stale, it)
		}
	}

	// Unfinished plan items roll forward instead of being lost.
	var rolled []Item
	for _, it := range cur.PlanItems {
		if it.Completed {
			continue
		}
		it.Date = next.Date
		rolled = append(rolled, it)
	}

	cur.PlanItems = nil
	cur.PrePlanItems = stale
	s.state.Days = append([]Day{cur}, s.state.Days...)
	updateRecords(&s.state.Records, cur)

	if automatic {
		if cur.Stats.DayXP > 0 {
			s.state.Streak++
		} else {
			s.state.Streak = 0
		}
	} else {
		// Starting a day by hand forfeits its XP.
		s.state.TotalXP -= cur.Stats.DayXP
		if s.state.TotalXP < 0 {
			s.state.TotalXP = 0
		}
		for s.state.CurrentLevel > 1 && s.state.TotalXP < PreviousLevelThreshold(s.state.CurrentLevel) {
			s.state.CurrentLevel--
		}
		s.state.NextLevelXP = NextLevelThreshold(s.state.CurrentLevel)
	}

	next.PlanItems = rolled
	for _, it := range arrived {
		next.PlanItems = append(next.PlanItems, arrivePrePlanItem(it, next.Date))
	}
	next.PrePlanItems = carried
	s.state.CurrentDay = next
	s.recomputeAdherenceLocked()
}

// ClearAll hard-resets everything to the empty initial state.
func (s *Store) ClearAll() {
	s.mu.Lock()
	s.state = defaultState(s.opts.Now(), s.opts.DayStartHour)
	s.projects = ProjectsState{}
	s.ensureReservedProjectsLocked()
	s.recomputeProjectsLocked()
	s.scheduleSaveLocked()
	s.mu.Unlock()
	s.notify()
}

func (s *Store) recomputeAdherenceLocked() {
	s.state.CurrentDay.Stats.PlanAdherence = PlanAdherence(s.state.CurrentDay)
}

func cloneItems(items []Item) []Item {
	if items == nil {
		return nil
	}
	return append([]Item(nil), items...)
}

func cloneDay(d Day) Day {
	d.PlanItems = cloneItems(d.PlanItems)
	d.FactItems = cloneItems(d.FactItems)
	d.PrePlanItems = cloneItems(d.PrePlanItems)
	return d
}

func cloneState(st State) State {
	st.CurrentDay = cloneDay(st.CurrentDay)
	days := make([]Day, len(st.Days))
	for i := range st.Days {
		days[i] = cloneDay(st.Days[i])
	}
	st.Days = days
	return st
}
