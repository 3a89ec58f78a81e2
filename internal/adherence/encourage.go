package adherence

// Encouragement copy shown next to today's percentage. The tip selection is
// deliberately deterministic (pct mod bucket size) so the same percentage
// always shows the same tip within a day.

var tipsGood = []string{
	"Consistency builds confidence. Keep it going!",
	"Your routine is your superpower.",
	"Great job - your future self is grateful.",
}

var tipsNeutral = []string{
	"You're on track. A small step right now helps.",
	"Take a breath and check what's next.",
	"Even one dose taken is progress.",
}

var tipsMissed = []string{
	"It happens. Reset and take the next dose when safe.",
	"No worries - refocus on the next scheduled dose.",
	"Forward is forward. You've got this.",
}

// EncouragementFor returns the headline message for an adherence percentage.
func EncouragementFor(pct int) string {
	switch {
	case pct >= 90:
		return "Fantastic consistency! You're building a winning streak."
	case pct >= 80:
		return "Great job! Your routine is strong."
	case pct >= 70:
		return "Good effort - keep nurturing your health."
	default:
		return "Every step counts. Tomorrow is a fresh chance."
	}
}

// TipFor returns a tip matched to the adherence percentage.
func TipFor(pct int) string {
	switch {
	case pct >= 80:
		return tipsGood[pct%len(tipsGood)]
	case pct >= 30:
		return tipsNeutral[pct%len(tipsNeutral)]
	default:
		return tipsMissed[pct%len(tipsMissed)]
	}
}
