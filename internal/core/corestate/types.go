package corestate

// CoreStateContract is interface for CoreState.
// CoreState is a structure that contains the meta-information of a single
// godoit invocation: what binary runs, which stage it reached and where its
// configuration and session come from.
type CoreStateContract interface {
	Advance(stage Stage)
}

type CoreState struct {
	StartTimestampUnix int64

	BinName string
	Version string

	Stage Stage

	// ConfigPath is the yaml file that was read, empty when only defaults apply.
	ConfigPath  string
	SessionFile string
}
