// Package scoring holds the pure ranking heuristics used by task creation
// and the recommendation service. Nothing in here touches the store.
package scoring

import (
	"math"
	"strings"
	"time"

	"taskhive/internal/domain/entity"
)

// TaskWeights parameterizes the task relevance formula. Every
// recommendation endpoint keeps its own tunable weights but shares this
// one implementation, so the skill/budget/urgency bonuses cannot drift
// between call sites.
type TaskWeights struct {
	SkillMatch     float64 // per matching skill
	BudgetMid      float64 // budget > 500
	BudgetHigh     float64 // budget > 1000, cumulative with BudgetMid
	DeadlineUrgent float64 // deadline within 3 days
	DeadlineSoon   float64 // deadline within 7 days
	VerifiedPoster float64
	ClampMax       float64 // 0 disables clamping
}

var (
	// FeedWeights annotates the personalized feed: a heavy per-skill bonus
	// plus small budget and poster-verification nudges.
	FeedWeights = TaskWeights{
		SkillMatch:     10,
		BudgetMid:      1,
		BudgetHigh:     2,
		VerifiedPoster: 1,
	}

	// PriorityWeights re-ranks the priority endpoint on top of the task's
	// own priority score.
	PriorityWeights = TaskWeights{
		SkillMatch:     2,
		BudgetMid:      1,
		BudgetHigh:     2,
		DeadlineUrgent: 3,
		DeadlineSoon:   1,
		ClampMax:       10,
	}

	// RecommendWeights ranks the plain task recommendation list.
	RecommendWeights = TaskWeights{
		SkillMatch:     10,
		BudgetMid:      1,
		BudgetHigh:     2,
		DeadlineUrgent: 1,
		ClampMax:       10,
	}
)

type TaskScoreInput struct {
	Task           *entity.Task
	Skills         []string
	PosterVerified bool
	Now            time.Time
	Base           float64
}

// ScoreTask computes a relevance score for a task against a freelancer's
// skill set. It is a ranking heuristic, not a correctness-critical value.
func ScoreTask(in TaskScoreInput, w TaskWeights) float64 {
	score := in.Base

	score += float64(SkillMatchCount(in.Task, in.Skills)) * w.SkillMatch

	if in.Task.Budget != nil {
		if *in.Task.Budget > 500 {
			score += w.BudgetMid
		}
		if *in.Task.Budget > 1000 {
			score += w.BudgetHigh
		}
	}

	days := DaysUntilDeadline(in.Task.Deadline, in.Now)
	if days >= 0 {
		if days <= 3 {
			score += w.DeadlineUrgent
		} else if days <= 7 {
			score += w.DeadlineSoon
		}
	}

	if in.PosterVerified {
		score += w.VerifiedPoster
	}

	if w.ClampMax > 0 {
		score = clamp(score, 0, w.ClampMax)
	}
	return score
}

// SkillMatchCount counts the user's skills whose lowercased text appears
// as a substring of the task's title, description, category, or any tag.
func SkillMatchCount(task *entity.Task, skills []string) int {
	if len(skills) == 0 {
		return 0
	}

	haystacks := []string{
		strings.ToLower(task.Title),
		strings.ToLower(task.Description),
		strings.ToLower(task.Category),
	}
	for _, tag := range task.Tags {
		haystacks = append(haystacks, strings.ToLower(tag))
	}

	matches := 0
	for _, skill := range skills {
		needle := strings.ToLower(strings.TrimSpace(skill))
		if needle == "" {
			continue
		}
		for _, hay := range haystacks {
			if strings.Contains(hay, needle) {
				matches++
				break
			}
		}
	}
	return matches
}

// DaysUntilDeadline rounds up to whole days; past deadlines go negative.
func DaysUntilDeadline(deadline, now time.Time) int {
	return int(math.Ceil(deadline.Sub(now).Hours() / 24))
}

// FreelancerWeights parameterizes freelancer-vs-task matching.
type FreelancerWeights struct {
	SkillMatch float64
	LevelMatch float64 // experience level equals task difficulty level
	Verified   float64
	BudgetFit  float64
	ClampMax   float64
}

var DefaultFreelancerWeights = FreelancerWeights{
	SkillMatch: 3,
	LevelMatch: 2,
	Verified:   2,
	BudgetFit:  1,
	ClampMax:   10,
}

// ScoreFreelancer ranks a freelancer against a task: skill overlap with the
// task's keywords, experience-to-difficulty match, verification, the
// freelancer's aggregate rating, and rate-versus-budget compatibility.
func ScoreFreelancer(freelancer *entity.User, task *entity.Task, w FreelancerWeights) float64 {
	score := float64(keywordOverlap(taskKeywords(task), freelancer.Skills)) * w.SkillMatch

	if task.Difficulty != nil && freelancer.ExperienceLevel != "" &&
		strings.EqualFold(freelancer.ExperienceLevel, task.Difficulty.Level) {
		score += w.LevelMatch
	}

	if freelancer.IsVerified {
		score += w.Verified
	}

	score += freelancer.Rating

	if freelancer.HourlyRate > 0 && task.Budget != nil && task.TimeEstimation != nil {
		cost := freelancer.HourlyRate * task.TimeEstimation.EstimatedHours
		if cost <= *task.Budget*1.2 {
			score += w.BudgetFit
		}
	}

	if w.ClampMax > 0 {
		score = clamp(score, 0, w.ClampMax)
	}
	return score
}

func taskKeywords(task *entity.Task) []string {
	keywords := make([]string, 0, len(task.Tags)+2)
	if task.Category != "" {
		keywords = append(keywords, task.Category)
	}
	keywords = append(keywords, task.Tags...)
	keywords = append(keywords, strings.Fields(task.Title)...)
	return keywords
}

// keywordOverlap counts keywords matching any skill by substring
// containment in either direction.
func keywordOverlap(keywords, skills []string) int {
	count := 0
	for _, kw := range keywords {
		k := strings.ToLower(strings.TrimSpace(kw))
		if k == "" {
			continue
		}
		for _, skill := range skills {
			s := strings.ToLower(strings.TrimSpace(skill))
			if s == "" {
				continue
			}
			if strings.Contains(k, s) || strings.Contains(s, k) {
				count++
				break
			}
		}
	}
	return count
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
