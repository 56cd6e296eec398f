package services

import (
	"encoding/json"
	"math"
	"strings"
	"time"

	"learnai_go_backend/internal/models"

	"github.com/google/uuid"
)

// StructuredPlan is the schedule shape the exam-plan prompt asks the provider
// for. The provider does not always comply; ParsePlan falls back to freeform.
type StructuredPlan struct {
	Overview      string     `json:"overview"`
	DailySchedule []DayEntry `json:"dailySchedule"`
	Tips          []string   `json:"tips"`
}

type DayEntry struct {
	Day      int      `json:"day"`
	Topics   []string `json:"topics"`
	Duration int      `json:"duration"` // total minutes for the day
	Priority string   `json:"priority"`
}

// PlanOutcome is a tagged variant: exactly one of Structured or Freeform is set.
type PlanOutcome struct {
	Structured *StructuredPlan
	Freeform   string
}

// ParsePlan classifies the provider's output. Anything that does not decode
// into a schedule with at least one day entry is kept verbatim as freeform
// text — degraded mode, never an error.
func ParsePlan(raw string) PlanOutcome {
	jsonStr := extractJSON(raw)
	if jsonStr != "" {
		var plan StructuredPlan
		if err := json.Unmarshal([]byte(jsonStr), &plan); err == nil && len(plan.DailySchedule) > 0 {
			return PlanOutcome{Structured: &plan}
		}
	}
	return PlanOutcome{Freeform: raw}
}

// extractJSON strips markdown code fences and isolates the outermost JSON
// object, if any.
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```") {
		start := 3
		if newlineIdx := strings.Index(content[start:], "\n"); newlineIdx != -1 {
			start += newlineIdx + 1
		}
		if endIdx := strings.Index(content[start:], "```"); endIdx != -1 {
			content = content[start : start+endIdx]
		} else {
			content = content[start:]
		}
		content = strings.TrimSpace(content)
	}

	startIdx := strings.Index(content, "{")
	endIdx := strings.LastIndex(content, "}")
	if startIdx == -1 || endIdx <= startIdx {
		return ""
	}
	return content[startIdx : endIdx+1]
}

// DeriveTasks expands a structured schedule into dated tasks. Day indexes are
// assigned sequentially from 1 regardless of what the provider claimed; each
// topic of a day receives round(duration/len(topics)) minutes.
func DeriveTasks(plan PlanOutcome, startDate time.Time) []models.StudyTask {
	if plan.Structured == nil {
		return nil
	}

	day0 := dayStart(startDate)
	var tasks []models.StudyTask
	for i, entry := range plan.Structured.DailySchedule {
		if len(entry.Topics) == 0 {
			continue
		}
		minutes := int(math.Round(float64(entry.Duration) / float64(len(entry.Topics))))
		priority := entry.Priority
		if priority == "" {
			priority = models.PriorityMedium
		}
		date := day0.AddDate(0, 0, i)
		for _, topic := range entry.Topics {
			tasks = append(tasks, models.StudyTask{
				ID:       uuid.New().String(),
				Day:      i + 1,
				Date:     date,
				Topic:    topic,
				Duration: minutes,
				Priority: priority,
			})
		}
	}
	return tasks
}

// dayStart is midnight of t's calendar day in t's own location. Truncate is
// not used here: it works in absolute 24h blocks from the epoch and lands on
// the wrong calendar day in non-UTC zones.
func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysUntil is the ceiling of the distance to the exam in whole days.
func DaysUntil(examDate, now time.Time) int {
	return int(math.Ceil(examDate.Sub(now).Hours() / 24))
}

// RecomputeProgress is round(100 * completed/total); 0 for an empty task list.
func RecomputeProgress(tasks []models.StudyTask) int {
	if len(tasks) == 0 {
		return 0
	}
	completed := 0
	for _, t := range tasks {
		if t.Completed {
			completed++
		}
	}
	return int(math.Round(100 * float64(completed) / float64(len(tasks))))
}
