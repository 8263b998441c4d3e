package domain

// Hook names one of the ten lifecycle transition points.
type Hook string

const (
	HookTrainStart  Hook = "on_train_start"
	HookTrainEnd    Hook = "on_train_end"
	HookInferStart  Hook = "on_infer_start"
	HookInferEnd    Hook = "on_infer_end"
	HookEpochStart  Hook = "on_epoch_start"
	HookEpochEnd    Hook = "on_epoch_end"
	HookLoaderStart Hook = "on_loader_start"
	HookLoaderEnd   Hook = "on_loader_end"
	HookBatchStart  Hook = "on_batch_start"
	HookBatchEnd    Hook = "on_batch_end"
)

// Hooks returns every lifecycle hook, start before end, outermost stage first.
func Hooks() []Hook {
	return []Hook{
		HookTrainStart, HookTrainEnd,
		HookInferStart, HookInferEnd,
		HookEpochStart, HookEpochEnd,
		HookLoaderStart, HookLoaderEnd,
		HookBatchStart, HookBatchEnd,
	}
}

// ModeHooks returns the start and end hooks that bracket a run in the given mode.
func ModeHooks(m Mode) (start, end Hook) {
	if m == ModeInfer {
		return HookInferStart, HookInferEnd
	}
	return HookTrainStart, HookTrainEnd
}
