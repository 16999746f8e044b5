package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"appraisal/internal/domain/notifications"
	"appraisal/internal/platform/config"
)

const JobDueReminder = "due_reminder"

type Service struct {
	DB       *pgxpool.Pool
	Cfg      config.Config
	Notifier *notifications.Service
	queue    chan job
}

type job struct {
	Type string
	Run  func(context.Context) (any, error)
}

func New(db *pgxpool.Pool, cfg config.Config, notifier *notifications.Service) *Service {
	return &Service{
		DB:       db,
		Cfg:      cfg,
		Notifier: notifier,
		queue:    make(chan job, 128),
	}
}

func (s *Service) Start(ctx context.Context) {
	go s.worker(ctx)
	if s.Cfg.DueReminderInterval > 0 {
		go s.scheduleDueReminders(ctx, s.Cfg.DueReminderInterval)
	}
}

func (s *Service) Enqueue(jobType string, run func(context.Context) (any, error)) {
	select {
	case s.queue <- job{Type: jobType, Run: run}:
	default:
		slog.Warn("job queue full", "jobType", jobType)
	}
}

func (s *Service) RunNow(ctx context.Context, jobType string, run func(context.Context) (any, error)) (any, error) {
	return s.runJob(ctx, job{Type: jobType, Run: run})
}

func (s *Service) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.queue:
			if _, err := s.runJob(ctx, j); err != nil {
				slog.Warn("job run failed", "jobType", j.Type, "err", err)
			}
		}
	}
}

func (s *Service) runJob(ctx context.Context, j job) (any, error) {
	runID := ""
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO job_runs (job_type, status)
    VALUES ($1,$2)
    RETURNING id
  `, j.Type, "running").Scan(&runID); err != nil {
		slog.Warn("job run insert failed", "err", err)
	}

	details, err := j.Run(ctx)
	status := "completed"
	if err != nil {
		status = "failed"
	}
	detailsJSON, marshalErr := json.Marshal(details)
	if marshalErr != nil {
		slog.Warn("job details marshal failed", "err", marshalErr)
		detailsJSON = []byte("{}")
	}
	if runID != "" {
		if _, updErr := s.DB.Exec(ctx, `
      UPDATE job_runs
      SET status = $1, details_json = $2, completed_at = now()
      WHERE id = $3
    `, status, detailsJSON, runID); updErr != nil {
			slog.Warn("job run update failed", "err", updErr)
		}
	}
	return details, err
}

func (s *Service) scheduleDueReminders(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Enqueue(JobDueReminder, s.SweepDueReminders)
		}
	}
}

type overdueAssignment struct {
	ID           string
	AppraiserID  string
	EmployeeName string
	PeriodName   string
	DueDate      time.Time
}

// SweepDueReminders notifies appraisers about open assignments past their
// due date. Each assignment is reminded at most once; reminded_at marks
// the ones already handled.
func (s *Service) SweepDueReminders(ctx context.Context) (any, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, appraiser_id, employee_name, period_name, due_date
    FROM assignments
    WHERE due_date IS NOT NULL
      AND due_date < now()
      AND status <> 'completed'
      AND reminded_at IS NULL
    ORDER BY due_date
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var overdue []overdueAssignment
	for rows.Next() {
		var a overdueAssignment
		if err := rows.Scan(&a.ID, &a.AppraiserID, &a.EmployeeName, &a.PeriodName, &a.DueDate); err != nil {
			return nil, err
		}
		overdue = append(overdue, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	reminded := 0
	for _, a := range overdue {
		body := fmt.Sprintf("Your appraisal of %s for %s was due on %s.",
			a.EmployeeName, a.PeriodName, a.DueDate.Format("2006-01-02"))
		if err := s.Notifier.Notify(ctx, a.AppraiserID, notifications.TypeDueReminder, "Appraisal overdue", body); err != nil {
			slog.Warn("due reminder notify failed", "assignment", a.ID, "err", err)
			continue
		}
		if _, err := s.DB.Exec(ctx, "UPDATE assignments SET reminded_at = now() WHERE id = $1", a.ID); err != nil {
			slog.Warn("due reminder mark failed", "assignment", a.ID, "err", err)
			continue
		}
		reminded++
	}
	return map[string]any{"overdue": len(overdue), "reminded": reminded}, nil
}
