package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/patchwork-labs/patchplan/pkg/bom"
)

// bomColumns is the fixed bom.csv header.
var bomColumns = []string{"item_type", "description", "quantity"}

// BOMCSV writes the aggregated bill of materials.
func BOMCSV(w io.Writer, lines []bom.Line) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(bomColumns); err != nil {
		return fmt.Errorf("failed to write bom header: %w", err)
	}
	for _, line := range lines {
		row := []string{line.ItemType, line.Description, strconv.Itoa(line.Quantity)}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write bom line %s: %w", line.Key, err)
		}
	}
	writer.Flush()
	return writer.Error()
}
