package scoring

import (
	"math"
	"sort"
	"strings"
	"time"

	"taskhive/internal/domain/entity"
)

// Creation-time task analysis: difficulty, time estimate, priority and
// auto-category. All heuristic; the only hard rule is score in [1,10] with
// the level being the matching bucket.

const (
	LevelBeginner     = "BEGINNER"
	LevelIntermediate = "INTERMEDIATE"
	LevelAdvanced     = "ADVANCED"
	LevelExpert       = "EXPERT"

	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
	PriorityUrgent = "URGENT"
)

var technicalKeywords = []string{
	"api", "database", "backend", "frontend", "algorithm", "machine learning",
	"security", "authentication", "deployment", "docker", "kubernetes",
	"microservice", "websocket", "cache", "queue",
}

var integrationKeywords = []string{
	"integrate", "integration", "third-party", "webhook", "payment",
	"gateway", "oauth", "sync", "import", "export", "migration",
}

var skillKeywords = []string{
	"react", "node", "python", "golang", "java", "typescript", "swift",
	"flutter", "design", "figma", "seo", "copywriting", "devops",
}

var categoryKeywords = map[string][]string{
	"web_development":    {"website", "web", "frontend", "backend", "react", "node", "html", "css"},
	"mobile_development": {"mobile", "android", "ios", "flutter", "swift", "app"},
	"design":             {"design", "logo", "ui", "ux", "figma", "illustration", "branding"},
	"writing":            {"write", "writing", "article", "blog", "copy", "content", "translation"},
	"data":               {"data", "analysis", "scraping", "excel", "dashboard", "machine learning"},
	"marketing":          {"marketing", "seo", "ads", "campaign", "social media"},
}

// categoryDemand feeds the priority score; rough market demand per category.
var categoryDemand = map[string]float64{
	"web_development":    3,
	"mobile_development": 2.5,
	"data":               2.5,
	"design":             2,
	"marketing":          1.5,
	"writing":            1,
}

func countMatches(text string, keywords []string) int {
	count := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			count++
		}
	}
	return count
}

func difficultyLevel(score float64) string {
	switch {
	case score <= 3:
		return LevelBeginner
	case score <= 6:
		return LevelIntermediate
	case score <= 8:
		return LevelAdvanced
	default:
		return LevelExpert
	}
}

func priorityLevel(score float64) string {
	switch {
	case score <= 3:
		return PriorityLow
	case score <= 6:
		return PriorityMedium
	case score <= 8:
		return PriorityHigh
	default:
		return PriorityUrgent
	}
}

// ComputeDifficulty derives a 1-10 difficulty from weighted factors.
func ComputeDifficulty(task *entity.Task) *entity.Difficulty {
	text := strings.ToLower(task.Title + " " + task.Description)

	technical := clamp(1+float64(countMatches(text, technicalKeywords))*1.5, 1, 10)
	scope := clamp(float64(len(task.Description))/120, 1, 10)
	integration := clamp(1+float64(countMatches(text, integrationKeywords))*2, 1, 10)
	skills := clamp(1+float64(countMatches(text, skillKeywords))*1.5, 1, 10)

	score := technical*0.3 + scope*0.25 + integration*0.2 + skills*0.25
	score = math.Round(clamp(score, 1, 10)*10) / 10

	return &entity.Difficulty{
		Score: score,
		Level: difficultyLevel(score),
		Factors: map[string]float64{
			"technical_complexity":     technical,
			"scope_size":               scope,
			"integration_requirements": integration,
			"skill_requirements":       skills,
		},
	}
}

// EstimateTime derives an hour estimate from the difficulty score and
// description length: base 8h scaled by difficulty/5 and a length multiplier.
func EstimateTime(task *entity.Task, difficulty *entity.Difficulty) *entity.TimeEstimation {
	base := 8.0
	scaled := base * (difficulty.Score / 5)

	lengthMultiplier := 1.0
	switch {
	case len(task.Description) > 2000:
		lengthMultiplier = 2
	case len(task.Description) > 800:
		lengthMultiplier = 1.5
	}

	hours := math.Round(scaled*lengthMultiplier*10) / 10
	if hours < 1 {
		hours = 1
	}
	days := int(math.Ceil(hours / 8))

	confidence := "medium"
	switch {
	case len(task.Description) < 100:
		confidence = "low"
	case len(task.Description) > 800:
		confidence = "high"
	}

	return &entity.TimeEstimation{
		EstimatedHours: hours,
		EstimatedDays:  days,
		Confidence:     confidence,
		Breakdown: map[string]float64{
			"base_hours":        base,
			"difficulty_scale":  difficulty.Score / 5,
			"length_multiplier": lengthMultiplier,
		},
	}
}

// ComputePriority combines deadline urgency, budget attractiveness, inverse
// complexity, and category demand into a 1-10 priority.
func ComputePriority(task *entity.Task, difficulty *entity.Difficulty, now time.Time) *entity.Priority {
	urgency := 1.0
	days := DaysUntilDeadline(task.Deadline, now)
	switch {
	case days <= 1:
		urgency = 10
	case days <= 3:
		urgency = 8
	case days <= 7:
		urgency = 5
	case days <= 14:
		urgency = 3
	}

	budget := 1.0
	if task.Budget != nil {
		switch {
		case *task.Budget > 1000:
			budget = 8
		case *task.Budget > 500:
			budget = 5
		case *task.Budget > 100:
			budget = 3
		}
	}

	// Simpler tasks fill faster, so low difficulty nudges priority up.
	inverseComplexity := clamp(11-difficulty.Score, 1, 10)

	demand := categoryDemand[strings.ToLower(task.Category)]

	score := urgency*0.4 + budget*0.3 + inverseComplexity*0.2 + demand*0.1
	score = math.Round(clamp(score, 1, 10)*10) / 10

	return &entity.Priority{
		Score: score,
		Level: priorityLevel(score),
		Factors: map[string]float64{
			"deadline_urgency":   urgency,
			"budget_attractive":  budget,
			"inverse_complexity": inverseComplexity,
			"category_demand":    demand,
		},
	}
}

// AutoCategorize matches the description against per-category keyword
// lists; the top two hits become primary and secondary. Categories are
// scanned in sorted order so ties resolve the same way on every run.
func AutoCategorize(task *entity.Task) *entity.AutoCategory {
	text := strings.ToLower(task.Title + " " + task.Description)

	categories := make([]string, 0, len(categoryKeywords))
	for category := range categoryKeywords {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	type hit struct {
		category string
		matched  []string
	}

	var best, second hit
	for _, category := range categories {
		keywords := categoryKeywords[category]
		var matched []string
		for _, kw := range keywords {
			if strings.Contains(text, kw) {
				matched = append(matched, kw)
			}
		}
		if len(matched) > len(best.matched) {
			second = best
			best = hit{category: category, matched: matched}
		} else if len(matched) > len(second.matched) {
			second = hit{category: category, matched: matched}
		}
	}

	if len(best.matched) == 0 {
		return &entity.AutoCategory{Primary: "other", Confidence: 0}
	}

	confidence := clamp(float64(len(best.matched))/4, 0, 1)

	return &entity.AutoCategory{
		Primary:    best.category,
		Secondary:  second.category,
		Confidence: math.Round(confidence*100) / 100,
		Keywords:   best.matched,
	}
}
