package roon

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// FormatDuration renders seconds as zero-padded mm:ss. Fractions are truncated
// and negative values render as 00:00.
func FormatDuration(secs float64) string {
	if secs < 0 {
		secs = 0
	}
	total := int64(secs)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// Summary returns a one-line summary of the zone
func (z *Zone) Summary() string {
	s := fmt.Sprintf("%s [%s]", z.DisplayName, z.State)
	if np := z.NowPlaying; np != nil && np.Track != "" {
		s += fmt.Sprintf(" %s - %s", np.Artist, np.Track)
	}
	return s
}

// FormatCompact returns a compact single-line format for each zone.
func FormatCompact(zones []Zone) string {
	if len(zones) == 0 {
		return "No zones available\n"
	}
	var b strings.Builder
	for i := range zones {
		b.WriteString(zones[i].Summary())
		b.WriteString("\n")
	}
	return b.String()
}

// FormatDetailed returns a multi-section listing of every zone with its
// settings, outputs and current track.
func FormatDetailed(zones []Zone) string {
	if len(zones) == 0 {
		return "No zones available\nCheck Roon Core connection\n"
	}

	var b strings.Builder
	for i := range zones {
		z := &zones[i]
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(fmt.Sprintf("=== %s ===\n", z.DisplayName))
		b.WriteString(fmt.Sprintf("Zone ID:  %s\n", z.ZoneID))
		b.WriteString(fmt.Sprintf("State:    %s\n", z.State))
		b.WriteString(fmt.Sprintf("Settings: loop=%s shuffle=%v radio=%v\n",
			z.Settings.Loop, z.Settings.Shuffle, z.Settings.AutoRadio))
		if z.QueueItemsRemaining > 0 {
			b.WriteString(fmt.Sprintf("Queue:    %d items (%s)\n",
				z.QueueItemsRemaining, FormatDuration(float64(z.QueueTimeRemaining))))
		}

		if np := z.NowPlaying; np != nil {
			b.WriteString(fmt.Sprintf("Track:    %s\n", np.Track))
			b.WriteString(fmt.Sprintf("Artist:   %s\n", np.Artist))
			b.WriteString(fmt.Sprintf("Album:    %s\n", np.Album))
			b.WriteString(fmt.Sprintf("Position: %s / %s\n",
				FormatDuration(np.SeekPosition), FormatDuration(np.Length)))
		}

		if len(z.Outputs) == 0 {
			b.WriteString("Outputs:  (none)\n")
			continue
		}
		b.WriteString("Outputs:\n")
		for _, o := range z.Outputs {
			b.WriteString(fmt.Sprintf("  - %s %s\n", o.DisplayName, o.Volume.describe()))
		}
	}
	return b.String()
}

func (v *Volume) describe() string {
	if v == nil {
		return "(fixed volume)"
	}
	if v.IsMuted {
		return "(muted)"
	}
	return fmt.Sprintf("(%.0f, range %.0f..%.0f)", v.Value, v.Min, v.Max)
}

// FormatJSON re-encodes zones as indented JSON using the controller's field names.
func FormatJSON(zones []Zone) (string, error) {
	data, err := json.MarshalIndent(zones, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode zones: %w", err)
	}
	return string(data) + "\n", nil
}

// FormatYAML encodes zones as YAML with snake_case keys.
func FormatYAML(zones []Zone) (string, error) {
	data, err := yaml.Marshal(zones)
	if err != nil {
		return "", fmt.Errorf("failed to encode zones: %w", err)
	}
	return string(data), nil
}
