package engine

import "github.com/google/uuid"

// CompleteResult reports what completing a plan item did to the
// progression state.
type CompleteResult struct {
	Item        Item
	XPAwarded   int
	LevelBefore int
	LevelAfter  int
	LevelUp     bool
	TaskRecord  bool // true when this beat the highest single-task XP
}

// CompletePlanItem runs the timer-finish chain as one atomic mutation:
// remove the plan item, add the scored fact record, credit the XP, and add
// the tracked minutes. Returns false when the id is not a pending plan
// item.
func (s *Store) CompletePlanItem(id string, actualDuration Minutes, timeQuality TimeQuality) (*CompleteResult, bool) {
	if !timeQuality.IsValid() {
		timeQuality = TimeNotPure
	}

	s.mu.Lock()
	var src *Item
	for i := range s.state.CurrentDay.PlanItems {
		if s.state.CurrentDay.PlanItems[i].ID == id {
			src = &s.state.CurrentDay.PlanItems[i]
			break
		}
	}
	if src == nil {
		s.mu.Unlock()
		return nil, false
	}

	levelBefore := s.state.CurrentLevel
	prevTaskRecord := s.state.Records.HighestTaskXP

	fact := s.factFromLocked(*src, actualDuration, timeQuality)
	s.state.CurrentDay.PlanItems = removeItem(s.state.CurrentDay.PlanItems, id)
	s.state.CurrentDay.FactItems = append([]Item{fact}, s.state.CurrentDay.FactItems...)
	if fact.XPValue > s.state.Records.HighestTaskXP {
		s.state.Records.HighestTaskXP = fact.XPValue
	}

	s.addXPLocked(fact.XPValue)
	s.state.CurrentDay.Stats.DayMinutes += int(actualDuration)
	if timeQuality == TimePure {
		s.state.CurrentDay.Stats.DayPureMinutes += int(actualDuration)
	}

	s.recomputeAdherenceLocked()
	s.recomputeProjectsLocked()
	s.scheduleSaveLocked()

	res := &CompleteResult{
		Item:        fact,
		XPAwarded:   fact.XPValue,
		LevelBefore: levelBefore,
		LevelAfter:  s.state.CurrentLevel,
		LevelUp:     s.state.CurrentLevel > levelBefore,
		TaskRecord:  fact.XPValue > prevTaskRecord,
	}
	s.mu.Unlock()
	s.notify()
	return res, true
}

// RepeatPlanItem re-queues a failed plan item: a fresh id, the estimate
// grown by the minutes already spent, and the original removed. Returns
// false when the id is not a pending plan item.
func (s *Store) RepeatPlanItem(id string, spent Minutes) (Item, bool) {
	s.mu.Lock()
	var src *Item
	for i := range s.state.CurrentDay.PlanItems {
		if s.state.CurrentDay.PlanItems[i].ID == id {
			src = &s.state.CurrentDay.PlanItems[i]
			break
		}
	}
	if src == nil {
		s.mu.Unlock()
		return Item{}, false
	}

	repeated := *src
	repeated.ID = uuid.NewString()
	repeated.EstimatedMinutes += spent
	repeated.CreatedTime = s.opts.Now()
	s.state.CurrentDay.PlanItems = append(removeItem(s.state.CurrentDay.PlanItems, id), repeated)

	s.recomputeAdherenceLocked()
	s.scheduleSaveLocked()
	s.mu.Unlock()
	s.notify()
	return repeated, true
}

// factFromLocked builds the completed record for a finished task. The fact
// gets its own id, independent of the originating plan item.
func (s *Store) factFromLocked(src Item, actualDuration Minutes, timeQuality TimeQuality) Item {
	now := s.opts.Now()
	fact := src
	fact.ID = uuid.NewString()
	fact.Completed = true
	fact.CompletedTime = &now
	fact.ActualDuration = &actualDuration
	fact.TimeQuality = timeQuality
	fact.XPValue = ScoreTask(src.Quality, timeQuality, src.Priority, src.ColumnOrigin, actualDuration)
	fact.ColumnOrigin = ColumnFact
	return fact
}
