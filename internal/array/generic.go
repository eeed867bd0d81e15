package array

import "fmt"

// genericRow implements the row-decomposition rule shared by every
// concrete array kind: row i of a rank->=1 array is shape[1:] with data
// data[i*rowLen : (i+1)*rowLen]; a rank-0 array's only row is itself.
func genericRow[T any](shape Shape, data []T, i int) (Shape, []T, error) {
	if shape.Rank() == 0 {
		if i != 0 {
			return nil, nil, fmt.Errorf("row index %d out of range for %s", i, shape.Describe())
		}
		return shape, data, nil
	}
	rowCount := shape.RowCount()
	if i < 0 || i >= rowCount {
		return nil, nil, fmt.Errorf("row index %d out of range for %s", i, shape.Describe())
	}
	rowLen := shape.RowLen()
	tail := shape.Tail()
	start := i * rowLen
	return tail, data[start : start+rowLen : start+rowLen], nil
}

// genericReassemble stacks row buffers into one contiguous buffer,
// prepending len(rows) as the new leading dimension.
func genericReassemble[T any](cellShape Shape, rowData [][]T) (Shape, []T) {
	rowLen := cellShape.FlatLen()
	out := make([]T, 0, rowLen*len(rowData))
	for _, d := range rowData {
		out = append(out, d...)
	}
	return cellShape.Prepend(len(rowData)), out
}
