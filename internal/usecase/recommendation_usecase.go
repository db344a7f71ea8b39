package usecase

import (
	"context"
	"math"
	"sort"
	"time"

	"taskhive/internal/domain/entity"
	"taskhive/internal/domain/repository"
	"taskhive/internal/scoring"
)

const (
	recommendFetchSize = 50
	priorityFetchSize  = 100
	recommendCap       = 10
	minSkillMatches    = 5
)

type RecommendationUseCase struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
}

func NewRecommendationUseCase(
	taskRepo repository.TaskRepository,
	userRepo repository.UserRepository,
) *RecommendationUseCase {
	return &RecommendationUseCase{
		taskRepo: taskRepo,
		userRepo: userRepo,
	}
}

// ScoredTask is a task annotated with its relevance for the requesting user.
type ScoredTask struct {
	*entity.Task
	RelevanceScore float64 `json:"relevance_score"`
}

type TaskRecommendations struct {
	Recommendations []*ScoredTask `json:"recommendations"`
	UserSkills      []string      `json:"user_skills"`
	// TotalFound counts the skill-matched open tasks, before capping and
	// backfill. Zero for a user with no skills on record.
	TotalFound int `json:"total_found"`
}

// RecommendTasks returns up to ten open tasks for a freelancer, preferring
// skill matches and backfilling with the most recent tasks when fewer than
// five match.
func (uc *RecommendationUseCase) RecommendTasks(ctx context.Context, userID string) (*TaskRecommendations, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	tasks, _, err := uc.taskRepo.ListOpenForBidding(ctx, userID, repository.TaskQuery{
		Sort:  "createdAt_desc",
		Limit: recommendFetchSize,
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()

	if len(user.Skills) == 0 {
		recs := make([]*ScoredTask, 0, recommendCap)
		for _, task := range tasks {
			if len(recs) == recommendCap {
				break
			}
			recs = append(recs, &ScoredTask{Task: task})
		}
		return &TaskRecommendations{
			Recommendations: recs,
			UserSkills:      []string{},
			TotalFound:      0,
		}, nil
	}

	var matched []*ScoredTask
	var rest []*entity.Task
	for _, task := range tasks {
		if scoring.SkillMatchCount(task, user.Skills) > 0 {
			matched = append(matched, &ScoredTask{
				Task: task,
				RelevanceScore: scoring.ScoreTask(scoring.TaskScoreInput{
					Task:   task,
					Skills: user.Skills,
					Now:    now,
				}, scoring.RecommendWeights),
			})
		} else {
			rest = append(rest, task)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].RelevanceScore > matched[j].RelevanceScore
	})

	totalFound := len(matched)

	recs := matched
	if len(recs) < minSkillMatches {
		for _, task := range rest {
			if len(recs) == recommendCap {
				break
			}
			recs = append(recs, &ScoredTask{Task: task})
		}
	}
	if len(recs) > recommendCap {
		recs = recs[:recommendCap]
	}

	return &TaskRecommendations{
		Recommendations: recs,
		UserSkills:      user.Skills,
		TotalFound:      totalFound,
	}, nil
}

type PriorityFilters struct {
	Difficulty string
	Priority   string
	Category   string
	Limit      int
}

// RecommendTasksByPriority filters open tasks by difficulty/priority level
// and category, then ranks them by a relevance score seeded with each
// task's own priority score.
func (uc *RecommendationUseCase) RecommendTasksByPriority(ctx context.Context, userID string, filters PriorityFilters) (*TaskRecommendations, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	filter := make(map[string]interface{})
	if filters.Difficulty != "" {
		filter["difficulty.level"] = filters.Difficulty
	}
	if filters.Priority != "" {
		filter["priority.level"] = filters.Priority
	}
	if filters.Category != "" {
		filter["category"] = filters.Category
	}

	tasks, _, err := uc.taskRepo.ListOpenForBidding(ctx, userID, repository.TaskQuery{
		Filter: filter,
		Sort:   "createdAt_desc",
		Limit:  priorityFetchSize,
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	scored := make([]*ScoredTask, 0, len(tasks))
	for _, task := range tasks {
		base := 0.0
		if task.Priority != nil {
			base = task.Priority.Score
		}
		scored = append(scored, &ScoredTask{
			Task: task,
			RelevanceScore: scoring.ScoreTask(scoring.TaskScoreInput{
				Task:   task,
				Skills: user.Skills,
				Now:    now,
				Base:   base,
			}, scoring.PriorityWeights),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].RelevanceScore != scored[j].RelevanceScore {
			return scored[i].RelevanceScore > scored[j].RelevanceScore
		}
		return scored[i].CreatedAt.After(scored[j].CreatedAt)
	})

	limit := filters.Limit
	if limit <= 0 || limit > recommendCap {
		limit = recommendCap
	}
	if len(scored) > limit {
		scored = scored[:limit]
	}

	return &TaskRecommendations{
		Recommendations: scored,
		UserSkills:      user.Skills,
		TotalFound:      len(tasks),
	}, nil
}

type ScoredFreelancer struct {
	*entity.User
	RelevanceScore float64 `json:"relevance_score"`
}

type TaskInfo struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Category        string `json:"category,omitempty"`
	DifficultyLevel string `json:"difficulty_level,omitempty"`
}

type FreelancerRecommendations struct {
	Recommendations []*ScoredFreelancer `json:"recommendations"`
	TaskInfo        TaskInfo            `json:"task_info"`
}

// RecommendFreelancers ranks all freelancers against one task.
func (uc *RecommendationUseCase) RecommendFreelancers(ctx context.Context, taskID string, limit int) (*FreelancerRecommendations, error) {
	task, err := uc.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	freelancers, _, err := uc.userRepo.ListByRole(ctx, entity.RoleFreelancer, 0, 0)
	if err != nil {
		return nil, err
	}

	scored := make([]*ScoredFreelancer, 0, len(freelancers))
	for _, freelancer := range freelancers {
		scored = append(scored, &ScoredFreelancer{
			User:           freelancer,
			RelevanceScore: scoring.ScoreFreelancer(freelancer, task, scoring.DefaultFreelancerWeights),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].RelevanceScore > scored[j].RelevanceScore
	})

	if limit <= 0 {
		limit = recommendCap
	}
	if len(scored) > limit {
		scored = scored[:limit]
	}

	info := TaskInfo{
		ID:       task.ID,
		Title:    task.Title,
		Category: task.Category,
	}
	if task.Difficulty != nil {
		info.DifficultyLevel = task.Difficulty.Level
	}

	return &FreelancerRecommendations{
		Recommendations: scored,
		TaskInfo:        info,
	}, nil
}

type FeedInput struct {
	Page      int
	Limit     int
	Category  string
	MinBudget *float64
	MaxBudget *float64
	SortBy    string // newest | budget_high | budget_low | relevance
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

type Feed struct {
	Tasks      []*ScoredTask `json:"tasks"`
	Pagination Pagination    `json:"pagination"`
	UserSkills []string      `json:"user_skills"`
}

// PersonalizedFeed pages through open tasks for a user. Relevance is
// annotated on every page; when sortBy is "relevance" the re-sort applies
// to the current page only, so relevance ordering is page-local.
func (uc *RecommendationUseCase) PersonalizedFeed(ctx context.Context, userID string, input FeedInput) (*Feed, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Page <= 0 {
		input.Page = 1
	}
	if input.Limit <= 0 || input.Limit > 50 {
		input.Limit = 10
	}

	sortField := "createdAt_desc"
	switch input.SortBy {
	case "budget_high":
		sortField = "budget_desc"
	case "budget_low":
		sortField = "budget_asc"
	}

	filter := make(map[string]interface{})
	if input.Category != "" {
		filter["category"] = input.Category
	}

	tasks, total, err := uc.taskRepo.ListOpenForBidding(ctx, userID, repository.TaskQuery{
		Filter:    filter,
		MinBudget: input.MinBudget,
		MaxBudget: input.MaxBudget,
		Sort:      sortField,
		Limit:     input.Limit,
		Offset:    (input.Page - 1) * input.Limit,
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	posterVerified := make(map[string]bool)

	scored := make([]*ScoredTask, 0, len(tasks))
	for _, task := range tasks {
		verified, ok := posterVerified[task.PostedBy]
		if !ok {
			if poster, err := uc.userRepo.GetByID(ctx, task.PostedBy); err == nil {
				verified = poster.IsVerified
			}
			posterVerified[task.PostedBy] = verified
		}

		scored = append(scored, &ScoredTask{
			Task: task,
			RelevanceScore: scoring.ScoreTask(scoring.TaskScoreInput{
				Task:           task,
				Skills:         user.Skills,
				PosterVerified: verified,
				Now:            now,
			}, scoring.FeedWeights),
		})
	}

	if input.SortBy == "relevance" {
		sort.SliceStable(scored, func(i, j int) bool {
			return scored[i].RelevanceScore > scored[j].RelevanceScore
		})
	}

	return &Feed{
		Tasks: scored,
		Pagination: Pagination{
			Page:       input.Page,
			Limit:      input.Limit,
			Total:      total,
			TotalPages: int(math.Ceil(float64(total) / float64(input.Limit))),
		},
		UserSkills: user.Skills,
	}, nil
}
