package shell

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/teslamotors/vehicle-assistant/pkg/account"
)

type renderer struct {
	w       io.Writer
	noColor bool
}

func newRenderer(w io.Writer) *renderer {
	return &renderer{w: w}
}

func (r *renderer) color(attributes ...color.Attribute) *color.Color {
	c := color.New(attributes...)
	if r.noColor {
		c.DisableColor()
	}
	return c
}

func (r *renderer) println(line string) {
	fmt.Fprintln(r.w, line)
}

func (r *renderer) prompt() {
	r.color(color.Bold).Fprint(r.w, Prompt)
}

func (r *renderer) success(format string, a ...interface{}) {
	r.println(r.color(color.FgGreen).Sprintf("✓ "+format, a...))
}

func (r *renderer) warning(format string, a ...interface{}) {
	r.println(r.color(color.FgYellow).Sprintf("⚠ "+format, a...))
}

func (r *renderer) failure(format string, a ...interface{}) {
	r.println(r.color(color.FgRed).Sprintf("✗ "+format, a...))
}

func (r *renderer) info(format string, a ...interface{}) {
	r.println(r.color(color.FgCyan).Sprintf(format, a...))
}

func (r *renderer) panel(title, body string) {
	r.println(r.color(color.FgCyan, color.Bold).Sprintf("── %s ──", title))
	r.println(strings.TrimRight(body, "\n"))
}

func (r *renderer) vehicles(vehicles []account.Vehicle, current *account.Vehicle) {
	if len(vehicles) == 0 {
		r.warning("No vehicles found")
		return
	}
	table := uitable.New()
	table.MaxColWidth = 40
	table.AddRow("#", "ID", "NAME", "VIN", "STATE", "ID_S")
	for i, v := range vehicles {
		table.AddRow(i+1, strconv.FormatInt(v.ID, 10), v.DisplayName, v.VIN, v.State, v.IDS)
	}
	r.println(table.String())
	if current != nil {
		r.info("Current: %s", current.DisplayName)
	}
}
