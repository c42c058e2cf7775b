package engine

import (
	"sort"

	"github.com/google/uuid"
)

// Projects returns the project ledgers, aggregate first, catch-all last.
func (s *Store) Projects() []Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Project, len(s.projects.Projects))
	copy(out, s.projects.Projects)
	return out
}

// SelectedProject returns the id of the currently selected project.
func (s *Store) SelectedProject() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.projects.Selected
}

// AddProject creates a user project with a fresh id.
func (s *Store) AddProject(name string) Project {
	s.mu.Lock()
	p := Project{
		ID:           uuid.NewString(),
		Name:         name,
		CurrentLevel: 1,
		NextLevelXP:  NextLevelThreshold(1),
	}
	s.projects.Projects = append(s.projects.Projects, p)
	s.sortProjectsLocked()
	s.scheduleSaveLocked()
	s.mu.Unlock()
	s.notify()
	return p
}

// DeleteProject removes a user project. The reserved aggregate and
// catch-all projects cannot be deleted; unknown ids are a no-op. XP of the
// deleted project's fact items flows back into the catch-all bucket on the
// next recompute.
func (s *Store) DeleteProject(id string) {
	if id == ProjectAll || id == ProjectOther {
		return
	}
	s.mu.Lock()
	kept := s.projects.Projects[:0]
	for _, p := range s.projects.Projects {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.projects.Projects = kept
	if s.projects.Selected == id {
		s.projects.Selected = ProjectAll
	}
	s.recomputeProjectsLocked()
	s.scheduleSaveLocked()
	s.mu.Unlock()
	s.notify()
}

// SelectProject marks a project as the active one; unknown ids are a no-op.
func (s *Store) SelectProject(id string) {
	s.mu.Lock()
	for _, p := range s.projects.Projects {
		if p.ID == id {
			s.projects.Selected = id
			s.scheduleSaveLocked()
			break
		}
	}
	s.mu.Unlock()
	s.notify()
}

func (s *Store) ensureReservedProjectsLocked() {
	has := map[string]bool{}
	for _, p := range s.projects.Projects {
		has[p.ID] = true
	}
	if !has[ProjectAll] {
		s.projects.Projects = append(s.projects.Projects, Project{ID: ProjectAll, Name: "All Projects"})
	}
	if !has[ProjectOther] {
		s.projects.Projects = append(s.projects.Projects, Project{ID: ProjectOther, Name: "Other Projects"})
	}
	if s.projects.Selected == "" {
		s.projects.Selected = ProjectAll
	}
	s.sortProjectsLocked()
}

// recomputeProjectsLocked re-derives every ledger from the full fact-item
// stream (history plus current day). Not incremental: simpler, and the
// stream is small.
func (s *Store) recomputeProjectsLocked() {
	xpByProject := map[string]int{}
	tasksByProject := map[string][]string{}
	totalXP := 0
	var allTasks []string

	known := map[string]bool{}
	for _, p := range s.projects.Projects {
		known[p.ID] = true
	}

	addFact := func(it Item) {
		pid := it.ProjectID
		if pid == "" || pid == ProjectAll || pid == ProjectOther || !known[pid] {
			pid = ProjectOther
		}
		xpByProject[pid] += it.XPValue
		tasksByProject[pid] = append(tasksByProject[pid], it.ID)
		totalXP += it.XPValue
		allTasks = append(allTasks, it.ID)
	}

	for _, it := range s.state.CurrentDay.FactItems {
		addFact(it)
	}
	for _, d := range s.state.Days {
		for _, it := range d.FactItems {
			addFact(it)
		}
	}

	for i := range s.projects.Projects {
		p := &s.projects.Projects[i]
		if p.ID == ProjectAll {
			p.CurrentXP = totalXP
			p.TaskIDs = allTasks
		} else {
			p.CurrentXP = xpByProject[p.ID]
			p.TaskIDs = tasksByProject[p.ID]
		}
		p.CurrentLevel, p.NextLevelXP = levelForXP(p.CurrentXP)
	}
}

func (s *Store) sortProjectsLocked() {
	rank := func(p Project) int {
		switch p.ID {
		case ProjectAll:
			return 0
		case ProjectOther:
			return 2
		default:
			return 1
		}
	}
	sort.SliceStable(s.projects.Projects, func(i, j int) bool {
		return rank(s.projects.Projects[i]) < rank(s.projects.Projects[j])
	})
}
