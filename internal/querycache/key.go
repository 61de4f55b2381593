package querycache

import "strings"

// Resource names used as the first key segment.
const (
	ResourceProjects     = "projects"
	ResourceProject      = "project"
	ResourceTasks        = "tasks"
	ResourceGantt        = "gantt"
	ResourceDependencies = "dependencies"
	ResourceStatistics   = "statistics"
)

// Key identifies one cached query. ProjectID is always the route's string form
// so invalidation and reads agree on the representation.
type Key struct {
	Resource  string
	ProjectID string
	Sub       string
}

func (k Key) String() string {
	parts := []string{k.Resource}
	if k.ProjectID != "" {
		parts = append(parts, k.ProjectID)
	}
	if k.Sub != "" {
		parts = append(parts, k.Sub)
	}
	return strings.Join(parts, "/")
}

// Matches reports whether k falls under the partial key p. Empty fields in p
// match anything, so {tasks, 3} covers {tasks, 3, "open"} as well.
func (k Key) Matches(p Key) bool {
	if p.Resource != "" && p.Resource != k.Resource {
		return false
	}
	if p.ProjectID != "" && p.ProjectID != k.ProjectID {
		return false
	}
	if p.Sub != "" && p.Sub != k.Sub {
		return false
	}
	return true
}

// ProjectKeys is the key set every task or dependency write on a project
// invalidates.
func ProjectKeys(projectID string) []Key {
	return []Key{
		{Resource: ResourceTasks, ProjectID: projectID},
		{Resource: ResourceGantt, ProjectID: projectID},
		{Resource: ResourceDependencies, ProjectID: projectID},
	}
}

// ProjectListKeys is invalidated by project writes; projectID may be empty for creates.
func ProjectListKeys(projectID string) []Key {
	keys := []Key{{Resource: ResourceProjects}, {Resource: ResourceStatistics}}
	if projectID != "" {
		keys = append(keys, Key{Resource: ResourceProject, ProjectID: projectID})
		keys = append(keys, ProjectKeys(projectID)...)
	}
	return keys
}
