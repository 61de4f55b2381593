package model

type ProjectStats struct {
	TotalProjects     int `json:"total_projects"`
	ActiveProjects    int `json:"active_projects"`
	CompletedProjects int `json:"completed_projects"`
	PlanningProjects  int `json:"planning_projects"`
	OnHoldProjects    int `json:"on_hold_projects"`
}

type TaskStats struct {
	TotalTasks      int `json:"total_tasks"`
	CompletedTasks  int `json:"completed_tasks"`
	InProgressTasks int `json:"in_progress_tasks"`
	NotStartedTasks int `json:"not_started_tasks"`
	OnHoldTasks     int `json:"on_hold_tasks"`
	OverdueTasks    int `json:"overdue_tasks"`
}

type ProjectProgress struct {
	ID             int           `json:"id"`
	Name           string        `json:"name"`
	Status         ProjectStatus `json:"status"`
	TotalTasks     int           `json:"total_tasks"`
	CompletedTasks int           `json:"completed_tasks"`
	Progress       int           `json:"progress"`
}

type Statistics struct {
	ProjectStats    ProjectStats      `json:"project_stats"`
	TaskStats       TaskStats         `json:"task_stats"`
	ProjectProgress []ProjectProgress `json:"project_progress"`
}

// ProgressPercent is round(completed*100/total), 0 for an empty project.
func ProgressPercent(completed, total int) int {
	if total == 0 {
		return 0
	}
	return (completed*200 + total) / (total * 2)
}

// ProjectReportRow is one line of a project export.
type ProjectReportRow struct {
	Project
	TotalTasks     int `json:"total_tasks"`
	CompletedTasks int `json:"completed_tasks"`
	Progress       int `json:"progress"`
}
