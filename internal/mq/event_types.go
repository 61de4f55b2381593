package mq

const EventProjectChanged = "project.changed"

// 实体类型
const (
	EntityProject    = "project"
	EntityTask       = "task"
	EntityDependency = "dependency"
)

// 操作类型
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// ProjectChangedPayload is published after any write that affects a project's
// tasks, dependencies or statistics.
type ProjectChangedPayload struct {
	ProjectID int    `json:"project_id"`
	Entity    string `json:"entity"`
	Action    string `json:"action"`
	EntityID  int    `json:"entity_id"`
	UserID    int    `json:"user_id,omitempty"`
}
