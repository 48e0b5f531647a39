package internal

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"
)

// StdoutIsTerminal reports whether stdout is attached to a terminal.
// Text output is column-aligned only when a human is watching; piped
// output stays plainly machine-splittable.
func StdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// FormatInspectResults renders inspection results in the requested
// format: "text", "json", or "yaml".
func FormatInspectResults(results []InspectResult, format string) (string, error) {
	switch format {
	case "json":
		out, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encoding results as JSON: %w", err)
		}
		return string(out) + "\n", nil
	case "yaml":
		out, err := yaml.Marshal(results)
		if err != nil {
			return "", fmt.Errorf("encoding results as YAML: %w", err)
		}
		return string(out), nil
	case "text":
		return formatText(results, StdoutIsTerminal()), nil
	default:
		return "", fmt.Errorf("unsupported output format %q", format)
	}
}

func formatText(results []InspectResult, aligned bool) string {
	var sb strings.Builder
	for i, r := range results {
		if i > 0 {
			sb.WriteString("\n")
		}
		fields := textFields(r)
		if aligned {
			tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
			for _, f := range fields {
				fmt.Fprintf(tw, "%s:\t%s\n", f[0], f[1])
			}
			tw.Flush()
		} else {
			for _, f := range fields {
				fmt.Fprintf(&sb, "%s: %s\n", f[0], f[1])
			}
		}
	}
	return sb.String()
}

func textFields(r InspectResult) [][2]string {
	fields := [][2]string{
		{"Type", r.Type},
		{"Algorithm", r.Algorithm},
		{"Standard", r.Standard},
		{"Visibility", r.Visibility},
		{"PEM tag", r.PEMTag},
	}
	if r.BitLength > 0 {
		fields = append(fields, [2]string{"Bit length", fmt.Sprintf("%d", r.BitLength)})
	}
	if r.Curve != "" {
		fields = append(fields, [2]string{"Curve", r.Curve})
	}
	if r.Fingerprint != "" {
		fields = append(fields, [2]string{"Fingerprint", r.Fingerprint})
	}
	if r.Source != "" {
		fields = append(fields, [2]string{"Source", r.Source})
	}
	return fields
}
