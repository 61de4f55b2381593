package model

// GanttLink is a dependency in the shape the gantt endpoint returns.
// Type carries the dependency_type string, not the widget's numeric code.
type GanttLink struct {
	ID     int            `json:"id"`
	Source int            `json:"source"`
	Target int            `json:"target"`
	Type   DependencyType `json:"type"`
	Lag    int            `json:"lag"`
}

type GanttData struct {
	Tasks []Task      `json:"tasks"`
	Links []GanttLink `json:"links"`
}
