package pipeline

import "sync"

// Progress stages emitted by Analyze, in completion order except that
// summary and keywords may arrive in either order.
const (
	StageChunk        = "chunk"
	StageSummary      = "summary"
	StageKeywords     = "keywords"
	StageSegmentation = "segmentation"
	StageClauses      = "clauses"
	StageRisks        = "risks"
	StageComplete     = "complete"
)

// ProgressEvent represents a progress update during analysis
type ProgressEvent struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
	RunID   string `json:"run_id,omitempty"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when analysis progress occurs
type ProgressCallback func(event ProgressEvent)

// progress serializes callback invocations from concurrent stages
type progress struct {
	mu    sync.Mutex
	runID string
	cb    ProgressCallback
}

func newProgress(runID string, cb ProgressCallback) *progress {
	return &progress{runID: runID, cb: cb}
}

func (p *progress) emit(stage, message string, content any) {
	if p.cb == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cb(ProgressEvent{
		Stage:   stage,
		Message: message,
		RunID:   p.runID,
		Content: content,
	})
}
