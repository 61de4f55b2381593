package model

type DependencyType string

const (
	FinishToStart  DependencyType = "finish_to_start"
	StartToStart   DependencyType = "start_to_start"
	FinishToFinish DependencyType = "finish_to_finish"
	StartToFinish  DependencyType = "start_to_finish"
)

var DependencyTypes = []DependencyType{FinishToStart, StartToStart, FinishToFinish, StartToFinish}

func (d DependencyType) Valid() bool {
	for _, v := range DependencyTypes {
		if v == d {
			return true
		}
	}
	return false
}

type TaskDependency struct {
	ID              int            `json:"id"`
	PredecessorID   int            `json:"predecessor_id"`
	SuccessorID     int            `json:"successor_id"`
	DependencyType  DependencyType `json:"dependency_type"`
	LagDays         int            `json:"lag_days"`
	PredecessorName string         `json:"predecessor_name,omitempty"`
	SuccessorName   string         `json:"successor_name,omitempty"`
}

type DependencyCreate struct {
	PredecessorID  int            `json:"predecessor_id"`
	SuccessorID    int            `json:"successor_id"`
	DependencyType DependencyType `json:"dependency_type"`
	LagDays        int            `json:"lag_days"`
}
