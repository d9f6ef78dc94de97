// Copyright 2025 Anapaya Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package registry

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/sdnprobe/coloring/coloring/color"
)

// DiagnosticsWrite writes a table of all tracked switches to w. Colors are
// encoded for field.
func (r *Registry) DiagnosticsWrite(w io.Writer, field color.Field) {
	var rows [][]string
	r.Do(func(tx *Tx) {
		tx.Range(func(sw Switch) bool {
			rows = append(rows, []string{
				sw.ID,
				fmt.Sprintf("%d", sw.Color),
				color.Encode(sw.Color, field).String(),
				strings.Join(sw.Neighbors, " "),
				fmt.Sprintf("%d", len(sw.Flows)),
			})
			return true
		})
	})
	fmt.Fprintf(w, "SWITCHES: %d\n", len(rows))
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetHeaderLine(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader([]string{"SWITCH", "COLOR", strings.ToUpper(string(field)),
		"NEIGHBORS", "FLOWS"})
	table.AppendBulk(rows)
	table.Render()
}
