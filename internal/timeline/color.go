package timeline

// The fixed item palette plus per-category accents. Project colors index into
// the palette by a deterministic hash so a project keeps its color across
// renders and sessions.
var palette = [8]string{
	"#3b82f6", // blue
	"#10b981", // emerald
	"#f59e0b", // amber
	"#ef4444", // red
	"#8b5cf6", // violet
	"#ec4899", // pink
	"#14b8a6", // teal
	"#f97316", // orange
}

const (
	neutralColor  = "#6b7280"
	goalColor     = "#8b5cf6"
	reminderColor = "#f59e0b"
	eventColor    = "#3b82f6"
)

// ProjectColor maps a project name to a stable palette color using a rolling
// 31-multiplier hash over its characters, wrapped to signed 32-bit range.
func ProjectColor(name string) string {
	if name == "" {
		return neutralColor
	}
	var h int32
	for _, r := range name {
		h = h*31 + int32(r)
	}
	if h < 0 {
		h = -h
	}
	return palette[h%8]
}
