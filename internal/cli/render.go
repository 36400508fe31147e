package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	pkgstrings "vicare/pkg/strings"
	"vicare/pkg/vicare"
)

// Renderer writes human-facing tables for API resources.
type Renderer struct {
	out io.Writer
}

// NewRenderer creates a renderer writing to the given output.
func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

// createTable creates a new table with standard styling.
func (r *Renderer) createTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleRounded)
	return t
}

// Installations renders the installation list, with gateways inline when
// present.
func (r *Renderer) Installations(installations []vicare.Installation) {
	if len(installations) == 0 {
		fmt.Fprintln(r.out, text.FgYellow.Sprint("No installations found"))
		return
	}

	t := r.createTable()
	t.AppendHeader(table.Row{"ID", "DESCRIPTION", "CITY", "STATUS", "GATEWAYS"})

	for _, inst := range installations {
		serials := make([]string, 0, len(inst.Gateways))
		for _, gw := range inst.Gateways {
			serials = append(serials, gw.Serial)
		}

		t.AppendRow(table.Row{
			inst.ID,
			emptyDash(pkgstrings.TruncateDescription(inst.Description, pkgstrings.DefaultDescriptionMaxLen)),
			emptyDash(inst.Address.City),
			formatStatus(inst.AggregatedStatus),
			emptyDash(strings.Join(serials, ", ")),
		})
	}

	t.Render()
}

// Gateways renders the gateway list of one installation.
func (r *Renderer) Gateways(gateways []vicare.Gateway) {
	if len(gateways) == 0 {
		fmt.Fprintln(r.out, text.FgYellow.Sprint("No gateways found"))
		return
	}

	t := r.createTable()
	t.AppendHeader(table.Row{"SERIAL", "TYPE", "VERSION", "STATUS", "AUTO-UPDATE"})

	for _, gw := range gateways {
		t.AppendRow(table.Row{
			gw.Serial,
			emptyDash(gw.GatewayType),
			emptyDash(gw.Version),
			formatStatus(gw.AggregatedStatus),
			gw.AutoUpdate,
		})
	}

	t.Render()
}

// Devices renders the device list of one gateway.
func (r *Renderer) Devices(devices []vicare.Device) {
	if len(devices) == 0 {
		fmt.Fprintln(r.out, text.FgYellow.Sprint("No devices found"))
		return
	}

	t := r.createTable()
	t.AppendHeader(table.Row{"ID", "MODEL", "TYPE", "STATUS", "ROLES"})

	for _, dev := range devices {
		t.AppendRow(table.Row{
			dev.ID,
			emptyDash(dev.ModelID),
			emptyDash(dev.DeviceType),
			formatStatus(dev.Status),
			emptyDash(strings.Join(dev.Roles, ", ")),
		})
	}

	t.Render()
}

// Features renders the feature list of one device. Only the primary value
// of each feature is shown; use the single-feature view for commands and
// full property sets.
func (r *Renderer) Features(features []vicare.Feature) {
	if len(features) == 0 {
		fmt.Fprintln(r.out, text.FgYellow.Sprint("No features found"))
		return
	}

	t := r.createTable()
	t.AppendHeader(table.Row{"FEATURE", "VALUE", "ENABLED", "READY"})

	for _, f := range features {
		t.AppendRow(table.Row{
			f.Name,
			featureValue(f),
			formatBool(f.IsEnabled),
			formatBool(f.IsReady),
		})
	}

	t.Render()
}

// Feature renders one feature in full: every property and every command
// with its parameters.
func (r *Renderer) Feature(f *vicare.Feature) {
	fmt.Fprintf(r.out, "%s\n", text.FgHiCyan.Sprint(f.Name))
	fmt.Fprintf(r.out, "  Enabled: %s   Ready: %s\n", formatBool(f.IsEnabled), formatBool(f.IsReady))

	if len(f.Properties) > 0 {
		t := r.createTable()
		t.AppendHeader(table.Row{"PROPERTY", "TYPE", "VALUE", "UNIT"})
		for _, name := range sortedKeys(f.Properties) {
			prop := f.Properties[name]
			t.AppendRow(table.Row{name, prop.Type, fmt.Sprintf("%v", prop.Value), emptyDash(prop.Unit)})
		}
		t.Render()
	}

	if len(f.Commands) > 0 {
		fmt.Fprintln(r.out, "Commands:")
		for _, name := range sortedKeys(f.Commands) {
			cmd := f.Commands[name]
			params := make([]string, 0, len(cmd.Params))
			for _, p := range sortedKeys(cmd.Params) {
				if cmd.Params[p].Required {
					params = append(params, p+" (required)")
				} else {
					params = append(params, p)
				}
			}
			fmt.Fprintf(r.out, "  %s(%s)  executable: %s\n",
				name, strings.Join(params, ", "), formatBool(cmd.IsExecutable))
		}
	}
}

// featureValue picks the value to show in the feature overview: the "value"
// property when present, otherwise the first property alphabetically.
func featureValue(f vicare.Feature) string {
	if prop, ok := f.Properties["value"]; ok {
		return propString(prop)
	}
	for _, name := range sortedKeys(f.Properties) {
		if name == "active" || name == "status" {
			return propString(f.Properties[name])
		}
	}
	if keys := sortedKeys(f.Properties); len(keys) > 0 {
		return propString(f.Properties[keys[0]])
	}
	return "-"
}

func propString(prop vicare.FeatureProperty) string {
	if prop.Unit != "" {
		return fmt.Sprintf("%v %s", prop.Value, prop.Unit)
	}
	return fmt.Sprintf("%v", prop.Value)
}

// formatStatus colors the vendor's aggregated status values.
func formatStatus(status string) string {
	switch status {
	case "WorksProperly", "Online":
		return text.FgGreen.Sprint(status)
	case "Error", "Offline":
		return text.FgRed.Sprint(status)
	case "":
		return "-"
	default:
		return text.FgYellow.Sprint(status)
	}
}

func formatBool(b bool) string {
	if b {
		return text.FgGreen.Sprint("yes")
	}
	return text.FgHiBlack.Sprint("no")
}

func emptyDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
