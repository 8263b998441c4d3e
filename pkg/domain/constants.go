package domain

// Default keys read by the metric observers when none is configured.
const (
	// DefaultInputKey is the RunState.Input key holding the batch targets.
	DefaultInputKey = "targets"

	// DefaultOutputKey is the RunState.Output key holding the model outputs.
	DefaultOutputKey = "logits"
)

// Mode identifies what the driver is currently doing with the model.
type Mode string

const (
	ModeTrain Mode = "train"
	ModeInfer Mode = "infer"
)
