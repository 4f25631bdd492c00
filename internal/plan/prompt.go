package plan

import (
	"fmt"
	"strings"
)

const notProvided = "non renseigné"

// BuildPlanPrompt assembles the system instruction for a structured plan
// generation. Pure function: no I/O, never fails. Missing optional fields get
// a placeholder instead of breaking the prompt.
func BuildPlanPrompt(level, goal string, availableDays []string, age, weight *int) string {
	var sb strings.Builder

	sb.WriteString("Tu es un coach sportif virtuel expert en course à pied.\n")
	sb.WriteString("Génère un plan d'entraînement structuré au format JSON.\n")
	fmt.Fprintf(&sb, "Niveau utilisateur : %s\n", level)
	fmt.Fprintf(&sb, "Objectif course : %s\n", goal)
	fmt.Fprintf(&sb, "Jours disponibles : %s\n", strings.Join(availableDays, ", "))
	if age != nil {
		fmt.Fprintf(&sb, "Age : %d\n", *age)
	} else {
		fmt.Fprintf(&sb, "Age : %s\n", notProvided)
	}
	if weight != nil {
		fmt.Fprintf(&sb, "Poids : %d kg\n", *weight)
	} else {
		fmt.Fprintf(&sb, "Poids : %s\n", notProvided)
	}
	sb.WriteString("Règles :\n")
	sb.WriteString("- Fournis un plan pour chaque semaine jusqu'à la date objectif\n")
	sb.WriteString("- Pour chaque jour disponible, indique :\n")
	sb.WriteString("  - seance : endurance, fractionné ou repos\n")
	sb.WriteString("  - exercices : toujours un tableau, même si un seul exercice\n")
	sb.WriteString("    - nom : description de l'exercice\n")
	sb.WriteString("    - duree : durée de l'exercice\n")
	sb.WriteString("    - repos : durée du repos\n")
	sb.WriteString("- Ne jamais changer le type des champs\n")
	sb.WriteString("- Répond uniquement en JSON valide, ASCII pour les clés, sans texte supplémentaire\n")

	return sb.String()
}

// PlanUserMessage is the fixed user turn that pins the model to strict JSON.
const PlanUserMessage = "Répond uniquement en JSON strict, ne rien ajouter d'autre"

// RecentRun is a compact view of a recorded run used for prompt building.
type RecentRun struct {
	Date         string
	DistanceKm   float64
	DurationMin  float64
	AvgHeartRate int
}

// CoachProfile is the input of the conversational coaching prompt.
type CoachProfile struct {
	Level      string
	Age        *int
	WeightKg   *int
	Goal       string
	RecentRuns []RecentRun
}

// BuildCoachPrompt assembles the persona instruction used by the chat
// endpoint. When run history is available, the derived level overrides the
// profile's declared level and recent pace/run lines are appended.
func BuildCoachPrompt(profile CoachProfile) string {
	level := profile.Level
	var extra strings.Builder

	if len(profile.RecentRuns) > 0 {
		level = levelFromRuns(profile.RecentRuns)

		extra.WriteString("Profil utilisateur :\n")
		fmt.Fprintf(&extra, "- Âge : %s\n", intOrPlaceholder(profile.Age))
		fmt.Fprintf(&extra, "- Poids : %s kg\n", intOrPlaceholder(profile.WeightKg))
		fmt.Fprintf(&extra, "- Objectif : %s\n", stringOrPlaceholder(profile.Goal))
		fmt.Fprintf(&extra, "Allure moyenne récente : %s\n", averagePace(profile.RecentRuns))
		extra.WriteString("Dernières courses :\n")
		for i, r := range lastRuns(profile.RecentRuns, 5) {
			fmt.Fprintf(&extra, "%d. %s - %g km en %g min (FC moy : %d)\n",
				i+1, r.Date, r.DistanceKm, r.DurationMin, r.AvgHeartRate)
		}
	} else {
		extra.WriteString("Profil utilisateur :\n")
		fmt.Fprintf(&extra, "- Âge : %s\n", intOrPlaceholder(profile.Age))
		fmt.Fprintf(&extra, "- Poids : %s kg\n", intOrPlaceholder(profile.WeightKg))
		fmt.Fprintf(&extra, "- Objectif : %s\n", stringOrPlaceholder(profile.Goal))
	}

	tone := coachingTone(level)

	var sb strings.Builder
	sb.WriteString("Tu es un coach sportif virtuel. Ton rôle est de conseiller des utilisateurs sur entraînement, nutrition et récupération.\n")
	sb.WriteString("Ton ton : motivant et clair.\n")
	fmt.Fprintf(&sb, "Niveau utilisateur : %s.\n", level)
	fmt.Fprintf(&sb, "Adapte tes conseils pour que l'utilisateur %s.\n", tone)
	sb.WriteString(extra.String())

	return sb.String()
}

func coachingTone(level string) string {
	switch level {
	case "débutant":
		return "comprenne facilement"
	case "intermédiaire":
		return "puisse améliorer ses performances"
	default:
		return "atteigne un haut niveau de performance"
	}
}

// levelFromRuns derives a coarse skill level from the average speed of the
// last 3 runs. Heuristic, not a guarantee; runs without a usable duration are
// skipped rather than dividing by zero.
func levelFromRuns(runs []RecentRun) string {
	var total float64
	var count int
	for _, r := range lastRuns(runs, 3) {
		if r.DurationMin <= 0 {
			continue
		}
		total += r.DistanceKm / (r.DurationMin / 60)
		count++
	}
	if count == 0 {
		return "débutant"
	}
	avgSpeed := total / float64(count)
	if avgSpeed > 13 {
		return "avancé"
	}
	if avgSpeed > 10 {
		return "intermédiaire"
	}
	return "débutant"
}

// averagePace formats the rolling pace (min/km) over the last 5 runs.
func averagePace(runs []RecentRun) string {
	var total float64
	var count int
	for _, r := range lastRuns(runs, 5) {
		if r.DistanceKm <= 0 {
			continue
		}
		total += r.DurationMin / r.DistanceKm
		count++
	}
	if count == 0 {
		return "non défini"
	}
	return fmt.Sprintf("%.1f min/km", total/float64(count))
}

func lastRuns(runs []RecentRun, n int) []RecentRun {
	if len(runs) <= n {
		return runs
	}
	return runs[len(runs)-n:]
}

func intOrPlaceholder(v *int) string {
	if v == nil {
		return notProvided
	}
	return fmt.Sprintf("%d", *v)
}

func stringOrPlaceholder(s string) string {
	if s == "" {
		return notProvided
	}
	return s
}
