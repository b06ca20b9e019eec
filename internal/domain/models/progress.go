package models

// Stage is one sequential phase of the analysis pipeline.
type Stage struct {
	Name    string
	Label   string
	Percent int
}

var (
	StageInitializing = Stage{Name: "initializing", Label: "מאתחל ניתוח", Percent: 0}
	StageMarketData   = Stage{Name: "marketData", Label: "מנתח נתוני שוק", Percent: 25}
	StageAIAnalysis   = Stage{Name: "aiAnalysis", Label: "מבצע ניתוח AI", Percent: 50}
	StageProcessing   = Stage{Name: "processing", Label: "מעבד תוצאות", Percent: 75}
	StageDone         = Stage{Name: "done", Label: "מסיים", Percent: 100}
)

// Stages lists the pipeline phases in execution order.
var Stages = []Stage{StageInitializing, StageMarketData, StageAIAnalysis, StageProcessing, StageDone}

// ProgressEvent is emitted once per stage checkpoint.
type ProgressEvent struct {
	Stage   string `json:"stage"`
	Label   string `json:"label"`
	Percent int    `json:"percent"`
}

// Event returns the progress event for s.
func (s Stage) Event() ProgressEvent {
	return ProgressEvent{Stage: s.Name, Label: s.Label, Percent: s.Percent}
}

// ProgressObserver receives progress events synchronously, in order.
type ProgressObserver interface {
	OnProgress(ev ProgressEvent)
}

// ProgressFunc adapts a function to ProgressObserver.
type ProgressFunc func(ev ProgressEvent)

func (f ProgressFunc) OnProgress(ev ProgressEvent) { f(ev) }

// NopProgress discards events.
type NopProgress struct{}

func (NopProgress) OnProgress(ProgressEvent) {}

// ProgressRecorder collects events, e.g. for a JSON response body.
type ProgressRecorder struct {
	Events []ProgressEvent
}

func (r *ProgressRecorder) OnProgress(ev ProgressEvent) { r.Events = append(r.Events, ev) }
