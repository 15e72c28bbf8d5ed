package corestate

type Stage string

const (
	StageNotReady Stage = "init"
	StagePreInit  Stage = "pre-init"
	StagePostInit Stage = "post-init"
	StageReady    Stage = "event"
)

const (
	StringsNone string = "none"
)

func NewCorestate(o *CoreState) *CoreState {
	if o.Stage == "" {
		o.Stage = StageNotReady
	}
	return o
}

// Advance moves cs to stage. Stages never go back.
func (cs *CoreState) Advance(stage Stage) {
	if stageOrder(stage) > stageOrder(cs.Stage) {
		cs.Stage = stage
	}
}

func stageOrder(s Stage) int {
	switch s {
	case StagePreInit:
		return 1
	case StagePostInit:
		return 2
	case StageReady:
		return 3
	default:
		return 0
	}
}
