package engine

import (
	"testing"
	"time"
)

func TestAddPlanItemDefaults(t *testing.T) {
	s, _, _ := newTestStore(t)

	it := s.AddPlanItem(ItemInput{Description: "task", Quality: QualityB, Priority: 99, EstimatedMinutes: 30})
	if it.ID == "" {
		t.Fatalf("expected a generated id")
	}
	if it.Priority != 10 {
		t.Fatalf("priority=%d, want clamped to 10", it.Priority)
	}
	if it.ColumnOrigin != ColumnPlan || it.CreationColumn != ColumnPlan {
		t.Fatalf("origin=%q creation=%q, want plan/plan", it.ColumnOrigin, it.CreationColumn)
	}
	if it.Completed {
		t.Fatalf("new plan item must not be completed")
	}
	if !sameDate(it.Date, s.Snapshot().CurrentDay.Date) {
		t.Fatalf("date=%v, want the current day", it.Date)
	}
}

func TestRemovePlanItemAbsentIsNoOp(t *testing.T) {
	s, _, _ := newTestStore(t)
	s.AddPlanItem(ItemInput{Description: "keep", Quality: QualityC, Priority: 5})

	s.RemovePlanItem("nope")
	if got := len(s.Snapshot().CurrentDay.PlanItems); got != 1 {
		t.Fatalf("plan items=%d, want 1", got)
	}
}

func TestCompletePlanItem(t *testing.T) {
	s, _, _ := newTestStore(t)

	it := s.AddPlanItem(ItemInput{Description: "deep work", Quality: QualityA, Priority: 1, EstimatedMinutes: 30})
	res, ok := s.CompletePlanItem(it.ID, 45, TimePure)
	if !ok {
		t.Fatalf("CompletePlanItem returned ok=false")
	}

	// 8 quality + 3 pure + 3 priority + 2 planned, under an hour.
	if res.XPAwarded != 16 {
		t.Fatalf("XPAwarded=%d, want 16", res.XPAwarded)
	}
	if res.Item.ID == it.ID {
		t.Fatalf("fact item must get its own id")
	}
	if !res.Item.Completed || res.Item.CompletedTime == nil || res.Item.ActualDuration == nil {
		t.Fatalf("fact item incomplete: %+v", res.Item)
	}
	if *res.Item.ActualDuration != 45 {
		t.Fatalf("actual=%d, want 45", *res.Item.ActualDuration)
	}
	if res.Item.ColumnOrigin != ColumnFact {
		t.Fatalf("origin=%q, want fact", res.Item.ColumnOrigin)
	}
	if !res.TaskRecord {
		t.Fatalf("first completion must set the task record")
	}

	st := s.Snapshot()
	if len(st.CurrentDay.PlanItems) != 0 {
		t.Fatalf("plan items=%d, want 0", len(st.CurrentDay.PlanItems))
	}
	if len(st.CurrentDay.FactItems) != 1 {
		t.Fatalf("fact items=%d, want 1", len(st.CurrentDay.FactItems))
	}
	if st.TotalXP != 16 || st.CurrentDay.Stats.DayXP != 16 {
		t.Fatalf("xp=%d dayXP=%d, want 16/16", st.TotalXP, st.CurrentDay.Stats.DayXP)
	}
	if st.CurrentDay.Stats.DayMinutes != 45 || st.CurrentDay.Stats.DayPureMinutes != 45 {
		t.Fatalf("minutes=%d pure=%d, want 45/45", st.CurrentDay.Stats.DayMinutes, st.CurrentDay.Stats.DayPureMinutes)
	}
	if st.Records.HighestTaskXP != 16 {
		t.Fatalf("HighestTaskXP=%d, want 16", st.Records.HighestTaskXP)
	}
}

func TestCompletePlanItemUnknownID(t *testing.T) {
	s, _, _ := newTestStore(t)
	if _, ok := s.CompletePlanItem("missing", 10, TimeNotPure); ok {
		t.Fatalf("expected ok=false for an unknown id")
	}
}

func TestCompleteNotPureSkipsPureMinutes(t *testing.T) {
	s, _, _ := newTestStore(t)
	it := s.AddPlanItem(ItemInput{Description: "task", Quality: QualityC, Priority: 5, EstimatedMinutes: 20})

	if _, ok := s.CompletePlanItem(it.ID, 20, TimeNotPure); !ok {
		t.Fatalf("complete failed")
	}
	st := s.Snapshot()
	if st.CurrentDay.Stats.DayMinutes != 20 || st.CurrentDay.Stats.DayPureMinutes != 0 {
		t.Fatalf("minutes=%d pure=%d, want 20/0", st.CurrentDay.Stats.DayMinutes, st.CurrentDay.Stats.DayPureMinutes)
	}
}

func TestFactItemsNewestFirst(t *testing.T) {
	s, _, _ := newTestStore(t)

	a := s.AddPlanItem(ItemInput{Description: "first", Quality: QualityC, Priority: 5})
	b := s.AddPlanItem(ItemInput{Description: "second", Quality: QualityC, Priority: 5})
	s.CompletePlanItem(a.ID, 10, TimeNotPure)
	s.CompletePlanItem(b.ID, 10, TimeNotPure)

	facts := s.Snapshot().CurrentDay.FactItems
	if len(facts) != 2 || facts[0].Description != "second" {
		t.Fatalf("facts=%v, want most recent first", facts)
	}
}

func TestRepeatPlanItemGrowsEstimate(t *testing.T) {
	s, _, _ := newTestStore(t)

	it := s.AddPlanItem(ItemInput{Description: "stubborn", Quality: QualityB, Priority: 3, EstimatedMinutes: 30})
	repeated, ok := s.RepeatPlanItem(it.ID, 25)
	if !ok {
		t.Fatalf("RepeatPlanItem returned ok=false")
	}
	if repeated.ID == it.ID {
		t.Fatalf("repeated item must get a fresh id")
	}
	if repeated.EstimatedMinutes != 55 {
		t.Fatalf("estimate=%d, want 55", repeated.EstimatedMinutes)
	}

	plan := s.Snapshot().CurrentDay.PlanItems
	if len(plan) != 1 || plan[0].ID != repeated.ID {
		t.Fatalf("plan=%v, want only the repeated item", plan)
	}
}

func TestAddFactItemDirectly(t *testing.T) {
	s, _, _ := newTestStore(t)

	src := Item{Description: "ad hoc", Quality: QualityA, Priority: 1, ColumnOrigin: ColumnFact}
	fact := s.AddFactItem(src, 30, TimePure)

	// 8 + 3 pure + 3 priority, no planner bonus for ad hoc work.
	if fact.XPValue != 14 {
		t.Fatalf("XPValue=%d, want 14", fact.XPValue)
	}
	st := s.Snapshot()
	if len(st.CurrentDay.FactItems) != 1 {
		t.Fatalf("fact items=%d, want 1", len(st.CurrentDay.FactItems))
	}
	if st.Records.HighestTaskXP != 14 {
		t.Fatalf("HighestTaskXP=%d, want 14", st.Records.HighestTaskXP)
	}
	// XP is credited by the caller, not by AddFactItem.
	if st.TotalXP != 0 {
		t.Fatalf("totalXP=%d, want 0", st.TotalXP)
	}
}

func TestAddPrePlanItemForToday(t *testing.T) {
	s, clock, _ := newTestStore(t)

	it := s.AddPrePlanItem(ItemInput{Description: "today", Quality: QualityB, Priority: 2}, clock.Now())
	st := s.Snapshot()
	if len(st.CurrentDay.PlanItems) != 1 || len(st.CurrentDay.PrePlanItems) != 0 {
		t.Fatalf("plan=%d preplan=%d, want 1/0 (today goes straight to plan)",
			len(st.CurrentDay.PlanItems), len(st.CurrentDay.PrePlanItems))
	}
	if !it.WasPrePlanned || it.PlannedDate == nil {
		t.Fatalf("item must be flagged pre-planned: %+v", it)
	}
	if it.ColumnOrigin != ColumnPlan || it.CreationColumn != ColumnPrePlan {
		t.Fatalf("origin=%q creation=%q, want plan/pre-plan", it.ColumnOrigin, it.CreationColumn)
	}
}

func TestPrePlanItemArrivesOnItsDay(t *testing.T) {
	s, clock, _ := newTestStore(t)

	tomorrow := clock.Now().AddDate(0, 0, 1)
	it := s.AddPrePlanItem(ItemInput{Description: "tomorrow", Quality: QualityA, Priority: 1}, tomorrow)
	if got := len(s.Snapshot().CurrentDay.PrePlanItems); got != 1 {
		t.Fatalf("preplan items=%d, want 1", got)
	}

	clock.Advance(24 * time.Hour)
	s.CheckDayBoundary()

	st := s.Snapshot()
	if len(st.CurrentDay.PlanItems) != 1 || st.CurrentDay.PlanItems[0].ID != it.ID {
		t.Fatalf("plan=%v, want the arrived pre-plan item", st.CurrentDay.PlanItems)
	}
	arrived := st.CurrentDay.PlanItems[0]
	if arrived.ColumnOrigin != ColumnPlan || !arrived.WasPrePlanned {
		t.Fatalf("arrived item origin=%q prePlanned=%v", arrived.ColumnOrigin, arrived.WasPrePlanned)
	}
	if len(st.CurrentDay.PrePlanItems) != 0 {
		t.Fatalf("preplan items=%d after arrival, want 0", len(st.CurrentDay.PrePlanItems))
	}
}

func TestPrePlanItemsCarryForward(t *testing.T) {
	s, clock, _ := newTestStore(t)

	inTwoDays := clock.Now().AddDate(0, 0, 2)
	it := s.AddPrePlanItem(ItemInput{Description: "later", Quality: QualityC, Priority: 5}, inTwoDays)

	clock.Advance(24 * time.Hour)
	s.CheckDayBoundary()

	st := s.Snapshot()
	if len(st.CurrentDay.PrePlanItems) != 1 || st.CurrentDay.PrePlanItems[0].ID != it.ID {
		t.Fatalf("preplan=%v, want the future item carried forward", st.CurrentDay.PrePlanItems)
	}
	if len(st.CurrentDay.PlanItems) != 0 {
		t.Fatalf("plan=%d, want 0", len(st.CurrentDay.PlanItems))
	}
}

func TestPrePlannedItemsViews(t *testing.T) {
	s, clock, _ := newTestStore(t)

	today := clock.Now()
	tomorrow := today.AddDate(0, 0, 1)

	planned := s.AddPrePlanItem(ItemInput{Description: "planned today", Quality: QualityB, Priority: 3}, today)
	adhoc := s.AddPlanItem(ItemInput{Description: "ad hoc", Quality: QualityC, Priority: 5})
	future := s.AddPrePlanItem(ItemInput{Description: "for tomorrow", Quality: QualityA, Priority: 1}, tomorrow)

	got := s.PrePlannedItems(today)
	if len(got) != 2 {
		t.Fatalf("today view=%d items, want 2 (no duplicates)", len(got))
	}
	ids := map[string]bool{}
	for _, it := range got {
		ids[it.ID] = true
	}
	if !ids[planned.ID] || !ids[adhoc.ID] {
		t.Fatalf("today view missing items: %v", got)
	}

	got = s.PrePlannedItems(tomorrow)
	if len(got) != 1 || got[0].ID != future.ID {
		t.Fatalf("tomorrow view=%v, want only the future item", got)
	}
}

func TestPrePlannedItemsForArchivedDay(t *testing.T) {
	s, clock, _ := newTestStore(t)

	day1 := clock.Now()
	it := s.AddPlanItem(ItemInput{Description: "done that day", Quality: QualityB, Priority: 2})
	s.CompletePlanItem(it.ID, 10, TimeNotPure)
	s.AddPlanItem(ItemInput{Description: "left over", Quality: QualityC, Priority: 5})

	clock.Advance(24 * time.Hour)
	s.CheckDayBoundary()

	// The leftover rolled into the new day, so the archive holds no plan
	// items and the view for day 1 is empty.
	if got := s.PrePlannedItems(day1); len(got) != 0 {
		t.Fatalf("archived day view=%v, want empty", got)
	}
}

func TestRemovePrePlanItem(t *testing.T) {
	s, clock, _ := newTestStore(t)

	it := s.AddPrePlanItem(ItemInput{Description: "cancel me", Quality: QualityC, Priority: 5}, clock.Now().AddDate(0, 0, 3))
	s.RemovePrePlanItem(it.ID)
	if got := len(s.Snapshot().CurrentDay.PrePlanItems); got != 0 {
		t.Fatalf("preplan items=%d, want 0", got)
	}
}

func TestPlanAdherence(t *testing.T) {
	s, clock, _ := newTestStore(t)

	// Two pre-planned items for today, one ad hoc. Completing one of the
	// pre-planned ones yields 50%; the ad hoc item never counts.
	p1 := s.AddPrePlanItem(ItemInput{Description: "p1", Quality: QualityB, Priority: 2}, clock.Now())
	s.AddPrePlanItem(ItemInput{Description: "p2", Quality: QualityB, Priority: 2}, clock.Now())
	s.AddPlanItem(ItemInput{Description: "ad hoc", Quality: QualityC, Priority: 5})

	if got := s.Snapshot().CurrentDay.Stats.PlanAdherence; got != 0 {
		t.Fatalf("adherence=%d before any completion, want 0", got)
	}

	s.CompletePlanItem(p1.ID, 15, TimeNotPure)
	if got := s.Snapshot().CurrentDay.Stats.PlanAdherence; got != 50 {
		t.Fatalf("adherence=%d, want 50", got)
	}
}

func TestPlanAdherenceNoBaseline(t *testing.T) {
	s, _, _ := newTestStore(t)

	it := s.AddPlanItem(ItemInput{Description: "ad hoc only", Quality: QualityC, Priority: 5})
	s.CompletePlanItem(it.ID, 10, TimeNotPure)

	if got := s.Snapshot().CurrentDay.Stats.PlanAdherence; got != 0 {
		t.Fatalf("adherence=%d with no pre-planned baseline, want 0", got)
	}
}
