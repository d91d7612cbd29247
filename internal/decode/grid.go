package decode

// strides are the three feature-pyramid strides family A's grid is built
// from.
var strides = [3]int{8, 16, 32}

// GridCell is one precomputed (grid_x, grid_y, stride) entry. Family A's
// output row i corresponds to grid[i]; the enumeration order (stride
// outer, gy middle, gx inner) is load-bearing and must match the graph's
// own flattening — it is recomputed whenever the model's input
// resolution differs from the 640 default.
type GridCell struct {
	X, Y, Stride int
}

// BuildGrid enumerates the grid cells for a square input of side
// inputSize, in stride-major, row-major order.
func BuildGrid(inputSize int) []GridCell {
	var cells []GridCell
	for _, s := range strides {
		gridSize := inputSize / s
		for gy := 0; gy < gridSize; gy++ {
			for gx := 0; gx < gridSize; gx++ {
				cells = append(cells, GridCell{X: gx, Y: gy, Stride: s})
			}
		}
	}
	return cells
}
