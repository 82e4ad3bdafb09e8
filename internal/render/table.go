package render

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// Table is a parsed sample table. Rows hold one value per whitespace
// separated field; fields that are not numbers are NaN.
type Table struct {
	Rows [][]float64
}

// ReadTable parses a whitespace separated numeric table.
func ReadTable(r io.Reader) (Table, error) {
	var table Table
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		row := make([]float64, len(fields))
		for i, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				v = math.NaN()
			}
			row[i] = v
		}
		table.Rows = append(table.Rows, row)
	}
	if err := scanner.Err(); err != nil {
		return Table{}, fmt.Errorf("read table: %w", err)
	}
	return table, nil
}

// ReadTableFile parses the table stored at path.
func ReadTableFile(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return Table{}, fmt.Errorf("open table: %w", err)
	}
	defer f.Close()
	return ReadTable(f)
}

// Series returns the (x, y) pairs for two 1-based columns, skipping rows where
// either value is missing or not finite.
func (t Table) Series(xColumn, yColumn int) (xs, ys []float64) {
	xi, yi := xColumn-1, yColumn-1
	if xi < 0 || yi < 0 {
		return nil, nil
	}
	for _, row := range t.Rows {
		if xi >= len(row) || yi >= len(row) {
			continue
		}
		x, y := row[xi], row[yi]
		if !finite(x) || !finite(y) {
			continue
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}
	return xs, ys
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
