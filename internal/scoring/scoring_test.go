package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"taskhive/internal/domain/entity"
)

func floatPtr(v float64) *float64 { return &v }

func TestSkillMatchCount(t *testing.T) {
	task := &entity.Task{
		Title:       "Build a React dashboard",
		Description: "Frontend work with charts and a REST API",
		Category:    "web_development",
		Tags:        []string{"javascript", "css"},
	}

	assert.Equal(t, 0, SkillMatchCount(task, nil))
	assert.Equal(t, 1, SkillMatchCount(task, []string{"react"}))
	assert.Equal(t, 2, SkillMatchCount(task, []string{"React", "CSS"}))
	// A skill matching several haystacks still counts once.
	assert.Equal(t, 1, SkillMatchCount(task, []string{"a"}))
	assert.Equal(t, 0, SkillMatchCount(task, []string{"", "  ", "golang"}))
}

func TestDaysUntilDeadline(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 3, DaysUntilDeadline(now.Add(61*time.Hour), now))
	assert.Equal(t, 1, DaysUntilDeadline(now.Add(2*time.Hour), now))
	assert.Equal(t, 0, DaysUntilDeadline(now, now))
	assert.Equal(t, -2, DaysUntilDeadline(now.Add(-49*time.Hour), now))
}

func TestScoreTaskBudgetTiers(t *testing.T) {
	now := time.Now()
	far := now.Add(30 * 24 * time.Hour)
	w := TaskWeights{BudgetMid: 1, BudgetHigh: 2}

	for _, tc := range []struct {
		budget *float64
		want   float64
	}{
		{nil, 0},
		{floatPtr(300), 0},
		{floatPtr(501), 1},
		{floatPtr(1000), 1},
		{floatPtr(1500), 3}, // high tier stacks on top of mid
	} {
		got := ScoreTask(TaskScoreInput{
			Task: &entity.Task{Budget: tc.budget, Deadline: far},
			Now:  now,
		}, w)
		assert.Equal(t, tc.want, got)
	}
}

func TestScoreTaskDeadlineBands(t *testing.T) {
	now := time.Now()
	w := TaskWeights{DeadlineUrgent: 3, DeadlineSoon: 1}

	urgent := ScoreTask(TaskScoreInput{
		Task: &entity.Task{Deadline: now.Add(48 * time.Hour)},
		Now:  now,
	}, w)
	assert.Equal(t, 3.0, urgent)

	soon := ScoreTask(TaskScoreInput{
		Task: &entity.Task{Deadline: now.Add(6 * 24 * time.Hour)},
		Now:  now,
	}, w)
	assert.Equal(t, 1.0, soon)

	far := ScoreTask(TaskScoreInput{
		Task: &entity.Task{Deadline: now.Add(30 * 24 * time.Hour)},
		Now:  now,
	}, w)
	assert.Equal(t, 0.0, far)

	// Past deadlines get no urgency bonus.
	past := ScoreTask(TaskScoreInput{
		Task: &entity.Task{Deadline: now.Add(-48 * time.Hour)},
		Now:  now,
	}, w)
	assert.Equal(t, 0.0, past)
}

func TestScoreTaskClamp(t *testing.T) {
	now := time.Now()
	task := &entity.Task{
		Title:    "golang react python devops consulting",
		Budget:   floatPtr(2000),
		Deadline: now.Add(24 * time.Hour),
	}
	skills := []string{"golang", "react", "python", "devops"}

	got := ScoreTask(TaskScoreInput{Task: task, Skills: skills, Now: now}, RecommendWeights)
	assert.Equal(t, 10.0, got)

	unclamped := ScoreTask(TaskScoreInput{Task: task, Skills: skills, Now: now}, FeedWeights)
	assert.Greater(t, unclamped, 10.0)
}

func TestScoreTaskRanking(t *testing.T) {
	now := time.Now()
	skills := []string{"golang", "postgres"}

	matched := &entity.Task{
		Title:    "Golang microservice with Postgres",
		Budget:   floatPtr(1200),
		Deadline: now.Add(2 * 24 * time.Hour),
	}
	partial := &entity.Task{
		Title:    "Golang CLI tool",
		Budget:   floatPtr(200),
		Deadline: now.Add(20 * 24 * time.Hour),
	}
	unrelated := &entity.Task{
		Title:    "Logo design for a bakery",
		Budget:   floatPtr(2000),
		Deadline: now.Add(1 * 24 * time.Hour),
	}

	score := func(task *entity.Task) float64 {
		return ScoreTask(TaskScoreInput{Task: task, Skills: skills, Now: now}, FeedWeights)
	}

	assert.Greater(t, score(matched), score(partial))
	assert.Greater(t, score(partial), score(unrelated))
}

func TestScoreFreelancer(t *testing.T) {
	task := &entity.Task{
		Title:    "React dashboard",
		Category: "web_development",
		Tags:     []string{"react", "typescript"},
		Budget:   floatPtr(1000),
		Difficulty: &entity.Difficulty{
			Score: 5.0,
			Level: LevelIntermediate,
		},
		TimeEstimation: &entity.TimeEstimation{EstimatedHours: 20},
	}

	strong := &entity.User{
		Skills:          []string{"react", "typescript"},
		ExperienceLevel: "intermediate",
		IsVerified:      true,
		Rating:          4.5,
		HourlyRate:      40, // 20h * 40 = 800 <= 1200
	}
	weak := &entity.User{
		Skills:     []string{"copywriting"},
		Rating:     3.0,
		HourlyRate: 100, // 2000 > 1200, no budget fit
	}

	strongScore := ScoreFreelancer(strong, task, DefaultFreelancerWeights)
	weakScore := ScoreFreelancer(weak, task, DefaultFreelancerWeights)

	assert.Greater(t, strongScore, weakScore)
	assert.LessOrEqual(t, strongScore, 10.0)
	assert.Equal(t, 3.0, weakScore) // rating only
}
