// Package gantt connects server tasks and dependencies to a scheduling widget
// and turns the widget's interaction events into task and dependency writes.
package gantt

// Widget event names.
const (
	EventAfterTaskDrag     = "onAfterTaskDrag"
	EventAfterProgressDrag = "onAfterProgressDrag"
	EventAfterTaskUpdate   = "onAfterTaskUpdate"
	EventAfterLinkAdd      = "onAfterLinkAdd"
	EventBeforeLinkDelete  = "onBeforeLinkDelete"
)

// Drag modes reported with EventAfterTaskDrag.
const (
	DragMove     = "move"
	DragResize   = "resize"
	DragProgress = "progress"
)

// ContainerClass is the class the widget adds to its container once it has rendered.
const ContainerClass = "gantt_container"

// WidgetTask is one bar in the widget's input format.
type WidgetTask struct {
	ID          int     `json:"id"`
	Text        string  `json:"text"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Duration    int     `json:"duration"`
	Progress    float64 `json:"progress"`
	Type        string  `json:"type"`
	Parent      int     `json:"parent"`
	Priority    string  `json:"priority,omitempty"`
	Status      string  `json:"status,omitempty"`
	Description string  `json:"description,omitempty"`
	Color       string  `json:"color,omitempty"`
}

// WidgetLink is a dependency arrow; Type is the widget's numeric code as a string.
type WidgetLink struct {
	ID     int    `json:"id"`
	Source int    `json:"source"`
	Target int    `json:"target"`
	Type   string `json:"type"`
	Lag    int    `json:"lag"`
}

// Data is what Widget.Parse accepts.
type Data struct {
	Data  []WidgetTask `json:"data"`
	Links []WidgetLink `json:"links"`
}

// RawEvent carries whatever the widget reports for an event. Only the fields
// relevant to the event name are set.
type RawEvent struct {
	Mode     string
	Task     *WidgetTask
	Link     *WidgetLink
	Progress float64
}

// Callback handles a widget event. For "before" events the return value
// tells the widget whether to go ahead.
type Callback func(RawEvent) bool

type EventID string

type Column struct {
	Name  string
	Label string
	Width int
	Tree  bool
}

type Scale struct {
	Unit   string
	Step   int
	Format string
}

// Config is applied to the widget before Init.
type Config struct {
	DateFormat   string
	Columns      []Column
	Scales       []Scale
	Types        map[string]string
	DragProgress bool
	DragResize   bool
	DragMove     bool
	DragLinks    bool
	ShowLinks    bool
}

// Widget is the capability set the adapter needs from a scheduling widget.
type Widget interface {
	Configure(cfg Config)
	Init(c Container) error
	Parse(d Data) error
	ClearAll()
	AttachEvent(name string, cb Callback) EventID
	DetachAllEvents()
	GetTaskCount() int
}

// Container is the node the widget renders into.
type Container interface {
	Clear()
	HasClass(name string) bool
	Attached() bool
}
