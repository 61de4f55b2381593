package model

import "time"

type TaskType string

const (
	TaskTypePhase      TaskType = "phase"
	TaskTypeTask       TaskType = "task"
	TaskTypeDetailTask TaskType = "detail_task"
)

var TaskTypes = []TaskType{TaskTypePhase, TaskTypeTask, TaskTypeDetailTask}

func (t TaskType) Valid() bool {
	for _, v := range TaskTypes {
		if v == t {
			return true
		}
	}
	return false
}

type TaskStatus string

const (
	TaskNotStarted TaskStatus = "not_started"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskOnHold     TaskStatus = "on_hold"
)

var TaskStatuses = []TaskStatus{TaskNotStarted, TaskInProgress, TaskCompleted, TaskOnHold}

func (s TaskStatus) Valid() bool {
	for _, v := range TaskStatuses {
		if v == s {
			return true
		}
	}
	return false
}

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

func (p Priority) Valid() bool {
	for _, v := range Priorities {
		if v == p {
			return true
		}
	}
	return false
}

type Task struct {
	ID                 int        `json:"id"`
	Name               string     `json:"name"`
	Description        string     `json:"description,omitempty"`
	ProjectID          int        `json:"project_id"`
	ParentTaskID       *int       `json:"parent_task_id,omitempty"`
	TaskType           TaskType   `json:"task_type"`
	Status             TaskStatus `json:"status"`
	Priority           Priority   `json:"priority"`
	EstimatedHours     float64    `json:"estimated_hours"`
	ActualHours        float64    `json:"actual_hours"`
	ProgressPercentage int        `json:"progress_percentage"`
	StartDate          *Date      `json:"start_date"`
	EndDate            *Date      `json:"end_date"`
	AssigneeID         *int       `json:"assignee_id,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

type TaskCreate struct {
	Name           string     `json:"name"`
	Description    string     `json:"description,omitempty"`
	ProjectID      int        `json:"project_id"`
	ParentTaskID   *int       `json:"parent_task_id,omitempty"`
	TaskType       TaskType   `json:"task_type,omitempty"`
	Status         TaskStatus `json:"status,omitempty"`
	Priority       Priority   `json:"priority,omitempty"`
	EstimatedHours float64    `json:"estimated_hours"`
	ActualHours    float64    `json:"actual_hours"`
	StartDate      *Date      `json:"start_date,omitempty"`
	EndDate        *Date      `json:"end_date,omitempty"`
	AssigneeID     *int       `json:"assignee_id,omitempty"`
}

// ApplyDefaults fills the fields the server defaults when a create omits them.
func (c *TaskCreate) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "Untitled Task"
	}
	if c.TaskType == "" {
		c.TaskType = TaskTypeTask
	}
	if c.Status == "" {
		c.Status = TaskNotStarted
	}
	if c.Priority == "" {
		c.Priority = PriorityMedium
	}
}

// TaskUpdate is a partial update; nil fields are left untouched.
type TaskUpdate struct {
	Name               *string     `json:"name,omitempty"`
	Description        *string     `json:"description,omitempty"`
	ParentTaskID       *int        `json:"parent_task_id,omitempty"`
	TaskType           *TaskType   `json:"task_type,omitempty"`
	Status             *TaskStatus `json:"status,omitempty"`
	Priority           *Priority   `json:"priority,omitempty"`
	EstimatedHours     *float64    `json:"estimated_hours,omitempty"`
	ActualHours        *float64    `json:"actual_hours,omitempty"`
	ProgressPercentage *int        `json:"progress_percentage,omitempty"`
	StartDate          *Date       `json:"start_date,omitempty"`
	EndDate            *Date       `json:"end_date,omitempty"`
	AssigneeID         *int        `json:"assignee_id,omitempty"`
}

// Apply merges the non-nil fields of u into t.
func (u TaskUpdate) Apply(t *Task) {
	if u.Name != nil {
		t.Name = *u.Name
	}
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.ParentTaskID != nil {
		t.ParentTaskID = u.ParentTaskID
	}
	if u.TaskType != nil {
		t.TaskType = *u.TaskType
	}
	if u.Status != nil {
		t.Status = *u.Status
	}
	if u.Priority != nil {
		t.Priority = *u.Priority
	}
	if u.EstimatedHours != nil {
		t.EstimatedHours = *u.EstimatedHours
	}
	if u.ActualHours != nil {
		t.ActualHours = *u.ActualHours
	}
	if u.ProgressPercentage != nil {
		t.ProgressPercentage = *u.ProgressPercentage
	}
	if u.StartDate != nil {
		t.StartDate = u.StartDate
	}
	if u.EndDate != nil {
		t.EndDate = u.EndDate
	}
	if u.AssigneeID != nil {
		t.AssigneeID = u.AssigneeID
	}
}
