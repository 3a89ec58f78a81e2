package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/saarthak-dev/medtimer/internal/adherence"
	"github.com/saarthak-dev/medtimer/internal/clock"
	"github.com/saarthak-dev/medtimer/internal/config"
	"github.com/saarthak-dev/medtimer/internal/export"
	"github.com/saarthak-dev/medtimer/internal/medicine"
	"github.com/saarthak-dev/medtimer/internal/metrics"
)

var headerStyle = lipgloss.NewStyle().Bold(true)

func statusLabel(s medicine.Status) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.Color())).
		Render(string(s))
}

// HandleList prints today's checklist sorted by scheduled time.
func HandleList(st *medicine.Store) {
	now := clock.Now()
	st.RefreshAll(now)

	meds := st.SortedByTime(now)
	if len(meds) == 0 {
		fmt.Println("No medicines added yet. Add one with: medtimer add <name> <time> [remind-minutes]")
		return
	}

	fmt.Println(headerStyle.Render("Today's Medicines"))
	fmt.Println("=================")
	for _, m := range meds {
		fmt.Printf("%3d  %-8s %-20s [%s]  remind %dm before\n",
			m.ID, m.TimeStr, m.Name, statusLabel(m.Status), m.RemindMin)
	}
}

// HandleAdd adds a medicine: medtimer add <name> <time> [remind-minutes]
func HandleAdd(st *medicine.Store, args []string) {
	if len(args) < 2 {
		fmt.Println("Usage: medtimer add <name> <time> [remind-minutes]")
		os.Exit(1)
	}

	remindMin := 0
	if len(args) >= 3 {
		n, err := strconv.Atoi(args[2])
		if err != nil {
			fmt.Printf("Invalid reminder minutes %q\n", args[2])
			os.Exit(1)
		}
		remindMin = n
	}

	id, err := st.Add(args[0], args[1], remindMin)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✓ Added '%s' at %s (id %d)\n", strings.TrimSpace(args[0]), args[1], id)
}

// HandleEdit overwrites a medicine: medtimer edit <id> <name> <time> [remind-minutes]
func HandleEdit(st *medicine.Store, args []string) {
	if len(args) < 3 {
		fmt.Println("Usage: medtimer edit <id> <name> <time> [remind-minutes]")
		os.Exit(1)
	}

	id := parseID(args[0])
	remindMin := 0
	if len(args) >= 4 {
		n, err := strconv.Atoi(args[3])
		if err != nil {
			fmt.Printf("Invalid reminder minutes %q\n", args[3])
			os.Exit(1)
		}
		remindMin = n
	}

	if err := st.Edit(id, args[1], args[2], remindMin); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✓ Updated medicine %d\n", id)
}

// HandleTake marks a dose taken: medtimer take <id>
func HandleTake(st *medicine.Store, args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: medtimer take <id>")
		os.Exit(1)
	}

	id := parseID(args[0])
	st.MarkTaken(id)

	if m, ok := st.Get(id); ok {
		fmt.Printf("✓ Marked '%s' as taken\n", m.Name)
	} else {
		fmt.Printf("Medicine %d not found (nothing to do)\n", id)
	}
}

// HandleDelete removes a medicine: medtimer delete <id>
func HandleDelete(st *medicine.Store, args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: medtimer delete <id>")
		os.Exit(1)
	}

	id := parseID(args[0])
	st.Delete(id)
	fmt.Printf("✓ Deleted medicine %d\n", id)
}

// HandleStats prints today's adherence, the weekly table, and the streak.
func HandleStats(st *medicine.Store) {
	now := clock.Now()
	st.RefreshAll(now)

	scheduled, taken, pct := adherence.TodayCounts(st.Medicines())
	rows, weeklyPct := adherence.WeeklyTable(st.History(), now)
	streak := adherence.CurrentStreak(st.History(), now)

	fmt.Println(headerStyle.Render("Adherence"))
	fmt.Println("=========")
	fmt.Printf("Today: %d/%d taken (%d%%)\n", taken, scheduled, pct)
	fmt.Printf("Streak: %d day(s)\n", streak)
	fmt.Println()

	fmt.Println("Last 7 days:")
	for _, row := range rows {
		fmt.Printf("  %s  %d/%d  %3d%%\n", row.Date, row.Taken, row.Scheduled, row.Adherence)
	}
	fmt.Printf("Weekly average: %d%%\n", weeklyPct)
	fmt.Println()

	fmt.Println(adherence.EncouragementFor(pct))
	fmt.Println(adherence.TipFor(pct))
}

// HandleExport writes today's schedule to the export directory:
// medtimer export <csv|pdf>
func HandleExport(st *medicine.Store, cfg *config.Config, args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: medtimer export <csv|pdf>")
		os.Exit(1)
	}

	now := clock.Now()
	st.RefreshAll(now)

	var (
		data []byte
		name string
		err  error
	)
	switch args[0] {
	case "csv":
		data, err = export.CSV(st.Medicines())
		name = "medtimer_today.csv"
	case "pdf":
		data, err = export.PDF(st.Medicines(), now)
		name = "medtimer_today.pdf"
	default:
		fmt.Printf("Unknown export format %q (want csv or pdf)\n", args[0])
		os.Exit(1)
	}
	if err != nil {
		fmt.Printf("Error exporting: %v\n", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(cfg.Export.Dir, 0o755); err != nil {
		fmt.Printf("Error creating export directory: %v\n", err)
		os.Exit(1)
	}

	path := filepath.Join(cfg.Export.Dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		fmt.Printf("Error writing export: %v\n", err)
		os.Exit(1)
	}

	metrics.Exports.WithLabelValues(args[0]).Inc()
	fmt.Printf("✓ Exported %s\n", path)
}

// PrintHelp prints the command overview.
func PrintHelp() {
	fmt.Println(`MedTimer - daily medicine companion

Usage:
  medtimer                      Start the API server
  medtimer list                 Show today's checklist
  medtimer add <name> <time> [remind-minutes]
  medtimer edit <id> <name> <time> [remind-minutes]
  medtimer take <id>            Mark a dose taken
  medtimer delete <id>          Remove a medicine
  medtimer stats                Today's adherence, weekly table, streak
  medtimer export <csv|pdf>     Write today's schedule to the export dir
  medtimer version              Print the version

Flags (server mode):
  -config <path>   Config file (default <data-dir>/medtimer.yaml)
  -data <path>     Data directory`)
}

func parseID(s string) int {
	id, err := strconv.Atoi(s)
	if err != nil {
		fmt.Printf("Invalid id %q\n", s)
		os.Exit(1)
	}
	return id
}
