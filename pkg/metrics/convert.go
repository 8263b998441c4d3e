package metrics

import "fmt"

func toInts(v any) ([]int, error) {
	switch x := v.(type) {
	case []int:
		return x, nil
	case []int64:
		out := make([]int, len(x))
		for i, n := range x {
			out[i] = int(n)
		}
		return out, nil
	case []float64:
		out := make([]int, len(x))
		for i, f := range x {
			out[i] = int(f)
		}
		return out, nil
	}
	return nil, fmt.Errorf("targets: expected integer labels, got %T", v)
}

func toFloats(v any) ([]float64, error) {
	switch x := v.(type) {
	case []float64:
		return x, nil
	case []float32:
		out := make([]float64, len(x))
		for i, f := range x {
			out[i] = float64(f)
		}
		return out, nil
	case []int:
		out := make([]float64, len(x))
		for i, n := range x {
			out[i] = float64(n)
		}
		return out, nil
	}
	return nil, fmt.Errorf("expected a numeric vector, got %T", v)
}

func toMatrix(v any) ([][]float64, error) {
	switch x := v.(type) {
	case [][]float64:
		return x, nil
	case [][]float32:
		out := make([][]float64, len(x))
		for i, row := range x {
			out[i] = make([]float64, len(row))
			for j, f := range row {
				out[i][j] = float64(f)
			}
		}
		return out, nil
	}
	return nil, fmt.Errorf("outputs: expected a score matrix, got %T", v)
}

func sameLength(targets, outputs int) error {
	if targets != outputs {
		return fmt.Errorf("batch size mismatch: %d targets, %d outputs", targets, outputs)
	}
	if targets == 0 {
		return fmt.Errorf("empty batch")
	}
	return nil
}
