package services

import (
	"context"
	"math"
	"sort"
	"time"

	"baseballnote/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxSummaryDays bounds the range a summary may cover.
const MaxSummaryDays = 366

type AnalyticsService struct {
	db *gorm.DB
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: db}
}

type MenuTotal struct {
	TrainingID uuid.UUID `json:"training_id"`
	Menu       string    `json:"menu"`
	Total      int       `json:"total"`
	Notes      int       `json:"notes"`
	AvgPerDay  float64   `json:"avg_per_day"`
}

type NoteSummary struct {
	Range struct {
		From string `json:"from"`
		To   string `json:"to"`
	} `json:"range"`
	Metadata struct {
		DaysCounted        int  `json:"days_counted"`
		DaysWithNotes      int  `json:"days_with_notes"`
		IncludeMissingDays bool `json:"include_missing_days"`
	} `json:"metadata"`
	NoteCount int         `json:"note_count"`
	AvgWeight float64     `json:"avg_weight"`
	AvgSleep  float64     `json:"avg_sleep"`
	MinWeight float64     `json:"min_weight"`
	MaxWeight float64     `json:"max_weight"`
	Trainings []MenuTotal `json:"trainings"`
}

// Summary aggregates a player's notes written between from and to, both inclusive.
// Training averages are per counted day: days with a note, or every day of the
// range when includeMissing is set.
func (s *AnalyticsService) Summary(ctx context.Context, userID uuid.UUID, from, to time.Time, includeMissing bool) (*NoteSummary, error) {
	if err := checkRange(from, to); err != nil {
		return nil, err
	}
	notes, err := s.notesBetween(ctx, userID, dayStart(from), dayEnd(to))
	if err != nil {
		return nil, err
	}

	days := map[string]struct{}{}
	menus := map[uuid.UUID]*MenuTotal{}
	var weight, sleep float64
	out := &NoteSummary{Trainings: []MenuTotal{}}
	for i, n := range notes {
		days[dayKey(n.CreatedAt.In(from.Location()))] = struct{}{}
		weight += n.Weight
		sleep += n.Sleep
		if i == 0 || n.Weight < out.MinWeight {
			out.MinWeight = n.Weight
		}
		if n.Weight > out.MaxWeight {
			out.MaxWeight = n.Weight
		}
		for _, tn := range n.TrainingNotes {
			m, ok := menus[tn.TrainingID]
			if !ok {
				m = &MenuTotal{TrainingID: tn.TrainingID}
				if tn.Training != nil {
					m.Menu = tn.Training.Menu
				}
				menus[tn.TrainingID] = m
			}
			m.Total += tn.Count
			m.Notes++
		}
	}

	counted := len(days)
	if includeMissing {
		counted = daysBetween(from, to)
	}
	for _, m := range menus {
		m.AvgPerDay = avg(float64(m.Total), counted)
		out.Trainings = append(out.Trainings, *m)
	}
	sort.Slice(out.Trainings, func(i, j int) bool {
		if out.Trainings[i].Total != out.Trainings[j].Total {
			return out.Trainings[i].Total > out.Trainings[j].Total
		}
		return out.Trainings[i].Menu < out.Trainings[j].Menu
	})

	out.Range.From = dayKey(from)
	out.Range.To = dayKey(to)
	out.Metadata.DaysCounted = counted
	out.Metadata.DaysWithNotes = len(days)
	out.Metadata.IncludeMissingDays = includeMissing
	out.NoteCount = len(notes)
	out.AvgWeight = avg(weight, len(notes))
	out.AvgSleep = avg(sleep, len(notes))
	return out, nil
}

type DayOverview struct {
	Date      string   `json:"date"`
	Notes     int      `json:"notes"`
	Weight    *float64 `json:"weight"`
	Sleep     *float64 `json:"sleep"`
	Trainings int      `json:"trainings"`
}

type WeeklyOverview struct {
	WeekStart string        `json:"week_start"`
	Days      []DayOverview `json:"days"`
}

// WeeklyOverview lists seven days starting at weekStart. Weight and sleep come
// from the last note of each day and stay null on days without one.
func (s *AnalyticsService) WeeklyOverview(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*WeeklyOverview, error) {
	from := dayStart(weekStart)
	to := from.AddDate(0, 0, 6)

	notes, err := s.notesBetween(ctx, userID, from, dayEnd(to))
	if err != nil {
		return nil, err
	}

	idx := map[string]*DayOverview{}
	out := &WeeklyOverview{WeekStart: dayKey(from), Days: make([]DayOverview, 7)}
	for i := range out.Days {
		out.Days[i].Date = dayKey(from.AddDate(0, 0, i))
		idx[out.Days[i].Date] = &out.Days[i]
	}
	for _, n := range notes {
		d, ok := idx[dayKey(n.CreatedAt.In(from.Location()))]
		if !ok {
			continue
		}
		d.Notes++
		w, sl := n.Weight, n.Sleep
		d.Weight, d.Sleep = &w, &sl
		for _, tn := range n.TrainingNotes {
			d.Trainings += tn.Count
		}
	}
	return out, nil
}

// StartOfWeek returns the Monday on or before t.
func StartOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return dayStart(t).AddDate(0, 0, -offset)
}

// notesBetween loads notes oldest first with their training menus.
func (s *AnalyticsService) notesBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]models.Note, error) {
	var notes []models.Note
	err := s.db.WithContext(ctx).
		Preload("TrainingNotes.Training", func(tx *gorm.DB) *gorm.DB { return tx.Unscoped() }).
		Where("user_id = ? AND created_at BETWEEN ? AND ?", userID, from, to).
		Order("created_at ASC").
		Find(&notes).Error
	return notes, err
}

func checkRange(from, to time.Time) error {
	if to.Before(from) {
		return fail(ErrBadRequest, "期間の指定が不正です")
	}
	if daysBetween(from, to) > MaxSummaryDays {
		return fail(ErrBadRequest, "集計期間が長すぎます")
	}
	return nil
}

// daysBetween counts calendar days from from to to, inclusive.
func daysBetween(from, to time.Time) int {
	n := 0
	for d := dayStart(from); !d.After(to); d = d.AddDate(0, 0, 1) {
		n++
		if n > MaxSummaryDays {
			break
		}
	}
	return n
}

func avg(sum float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	return round2(sum / float64(n))
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func dayKey(t time.Time) string { return t.Format("2006-01-02") }

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dayEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
