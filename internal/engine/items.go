package engine

import (
	"time"

	"github.com/google/uuid"
)

// ItemInput is the normalized external input for creating items. Minute
// fields arriving as text are parsed with ParseMinutes before this struct
// is built; the internal model never carries the string form.
type ItemInput struct {
	Description      string
	TimeType         TimeType
	Quality          TaskQuality
	Priority         int
	EstimatedMinutes Minutes
	ProjectID        string
}

func (s *Store) newItemLocked(in ItemInput, creation Column, date time.Time) Item {
	return Item{
		ID:               uuid.NewString(),
		Description:      in.Description,
		TimeType:         in.TimeType,
		Quality:          in.Quality,
		Priority:         ClampPriority(in.Priority),
		EstimatedMinutes: in.EstimatedMinutes,
		Date:             date,
		ProjectID:        in.ProjectID,
		ColumnOrigin:     creation,
		CreationColumn:   creation,
		CreatedTime:      s.opts.Now(),
	}
}

// AddPlanItem materializes a pending item on the current day's plan.
func (s *Store) AddPlanItem(in ItemInput) Item {
	s.mu.Lock()
	it := s.newItemLocked(in, ColumnPlan, s.state.CurrentDay.Date)
	s.state.CurrentDay.PlanItems = append(s.state.CurrentDay.PlanItems, it)
	s.recomputeAdherenceLocked()
	s.scheduleSaveLocked()
	s.mu.Unlock()
	s.notify()
	return it
}

// RemovePlanItem deletes by id from the current day's plan; absent ids are
// a silent no-op.
func (s *Store) RemovePlanItem(id string) {
	s.mu.Lock()
	s.state.CurrentDay.PlanItems = removeItem(s.state.CurrentDay.PlanItems, id)
	s.recomputeAdherenceLocked()
	s.scheduleSaveLocked()
	s.mu.Unlock()
	s.notify()
}

// UpdatePlanItem replaces the plan item with the same id; absent ids are a
// silent no-op.
func (s *Store) UpdatePlanItem(item Item) {
	s.mu.Lock()
	replaceItem(s.state.CurrentDay.PlanItems, item)
	s.recomputeAdherenceLocked()
	s.scheduleSaveLocked()
	s.mu.Unlock()
	s.notify()
}

// PlanItem looks up a pending plan item by id.
func (s *Store) PlanItem(id string) (Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.state.CurrentDay.PlanItems {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// AddFactItem turns a finished task into a completed record with its own
// id, scores it, and prepends it to the fact collection so recent
// completions surface first. The originating plan item (if any) is the
// caller's to remove; XP is credited separately via AddXP.
func (s *Store) AddFactItem(src Item, actualDuration Minutes, timeQuality TimeQuality) Item {
	if !timeQuality.IsValid() {
		timeQuality = TimeNotPure
	}

	s.mu.Lock()
	fact := s.factFromLocked(src, actualDuration, timeQuality)
	s.state.CurrentDay.FactItems = append([]Item{fact}, s.state.CurrentDay.FactItems...)
	if fact.XPValue > s.state.Records.HighestTaskXP {
		s.state.Records.HighestTaskXP = fact.XPValue
	}
	s.recomputeAdherenceLocked()
	s.recomputeProjectsLocked()
	s.scheduleSaveLocked()
	s.mu.Unlock()
	s.notify()
	return fact
}

// AddPrePlanItem schedules an item against a date. An item for the current
// day goes straight into the plan (flagged as pre-planned) instead of
// living in two collections at once; any other date stays in the pre-plan
// collection until its day arrives.
func (s *Store) AddPrePlanItem(in ItemInput, plannedDate time.Time) Item {
	s.mu.Lock()
	date := time.Date(plannedDate.Year(), plannedDate.Month(), plannedDate.Day(), 0, 0, 0, 0, plannedDate.Location())
	it := s.newItemLocked(in, ColumnPrePlan, date)
	it.PlannedDate = &date
	it.WasPrePlanned = true

	if sameDate(date, s.state.CurrentDay.Date) {
		it.ColumnOrigin = ColumnPlan
		s.state.CurrentDay.PlanItems = append(s.state.CurrentDay.PlanItems, it)
	} else {
		s.state.CurrentDay.PrePlanItems = append(s.state.CurrentDay.PrePlanItems, it)
	}
	s.recomputeAdherenceLocked()
	s.scheduleSaveLocked()
	s.mu.Unlock()
	s.notify()
	return it
}

// RemovePrePlanItem deletes by id from the current pre-plan collection.
func (s *Store) RemovePrePlanItem(id string) {
	s.mu.Lock()
	s.state.CurrentDay.PrePlanItems = removeItem(s.state.CurrentDay.PrePlanItems, id)
	s.recomputeAdherenceLocked()
	s.scheduleSaveLocked()
	s.mu.Unlock()
	s.notify()
}

// UpdatePrePlanItem replaces the pre-plan item with the same id.
func (s *Store) UpdatePrePlanItem(item Item) {
	s.mu.Lock()
	replaceItem(s.state.CurrentDay.PrePlanItems, item)
	s.recomputeAdherenceLocked()
	s.scheduleSaveLocked()
	s.mu.Unlock()
	s.notify()
}

// PrePlannedItems returns the planning view for a date: for the current day
// the live plan merged with any pre-plan stragglers, for past days the
// archived day's items, for future days the pre-plan items scheduled for
// that date. Never returns duplicate ids.
func (s *Store) PrePlannedItems(date time.Time) []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.state.CurrentDay
	switch {
	case sameDate(date, cur.Date):
		merged := append(filterPlanned(cur.PrePlanItems, date), cur.PlanItems...)
		return dedupByID(merged)
	case date.After(cur.Date):
		return dedupByID(filterPlanned(cur.PrePlanItems, date))
	default:
		for _, d := range s.state.Days {
			if sameDate(d.Date, date) {
				merged := append(filterPlanned(d.PrePlanItems, date), d.PlanItems...)
				return dedupByID(merged)
			}
		}
		return nil
	}
}

// arrivePrePlanItem converts a pre-plan item into a plan item on the day it
// was scheduled for. Ownership transfer, not a copy.
func arrivePrePlanItem(it Item, date time.Time) Item {
	it.ColumnOrigin = ColumnPlan
	it.Date = date
	it.WasPrePlanned = true
	return it
}

func removeItem(items []Item, id string) []Item {
	for i := range items {
		if items[i].ID == id {
			return append(items[:i], items[i+1:]...)
		}
	}
	return items
}

func replaceItem(items []Item, item Item) {
	for i := range items {
		if items[i].ID == item.ID {
			items[i] = item
			return
		}
	}
}

func filterPlanned(items []Item, date time.Time) []Item {
	var out []Item
	for _, it := range items {
		if it.PlannedDate != nil && sameDate(*it.PlannedDate, date) {
			out = append(out, it)
		}
	}
	return out
}

func dedupByID(items []Item) []Item {
	seen := make(map[string]bool, len(items))
	var out []Item
	for _, it := range items {
		if seen[it.ID] {
			continue
		}
		seen[it.ID] = true
		out = append(out, it)
	}
	return out
}
