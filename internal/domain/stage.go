package domain

// Stage tracks where a single pipeline run currently is.
type Stage string

const (
	StageFetching     Stage = "fetching"
	StageConverting   Stage = "converting"
	StageTranscribing Stage = "transcribing"
	StageDelivering   Stage = "delivering"
	StageCleaning     Stage = "cleaning"
	StageDone         Stage = "done"
	StageFailed       Stage = "failed"
)
