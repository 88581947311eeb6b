package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/JohWeak/shifts-app-sub005/internal/compliance"
	"github.com/JohWeak/shifts-app-sub005/internal/constraint"
	"github.com/JohWeak/shifts-app-sub005/internal/domain"
	"github.com/JohWeak/shifts-app-sub005/internal/engine"
)

const dateLayout = "2006-01-02"

func (h *Handler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	site := r.Context().Value(WorkSiteCtx).(*domain.WorkSite)

	schedules, err := h.repository.GetSchedulesBySiteID(site.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "schedules fetched", schedules)
}

func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	schedule := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	assignments, err := h.repository.GetAssignmentsByScheduleID(schedule.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "schedule fetched", struct {
		Schedule    *domain.Schedule             `json:"schedule"`
		Assignments []*domain.ScheduleAssignment `json:"assignments"`
	}{
		Schedule:    schedule,
		Assignments: assignments,
	})
}

func (h *Handler) GenerateSchedule(w http.ResponseWriter, r *http.Request) {
	site := r.Context().Value(WorkSiteCtx).(*domain.WorkSite)

	var req struct {
		WeekStart        string  `json:"weekStart" validate:"required"`
		Algorithm        string  `json:"algorithm" validate:"omitempty,oneof=exact heuristic auto compare"`
		PositionIDs      []int64 `json:"positionIDs"`
		OptimizationMode string  `json:"optimizationMode" validate:"omitempty,oneof=fast balanced thorough"`
		FairnessWeight   *int32  `json:"fairnessWeight" validate:"omitempty,min=0,max=100"`
		AllowFallback    bool    `json:"allowFallback"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	requested, err := time.Parse(dateLayout, req.WeekStart)
	if err != nil {
		h.errorResponse(w, r, "weekStart must be a date in YYYY-MM-DD form")
		return
	}
	weekStart := constraint.NormalizeWeekStart(site, requested)

	// one generation per (site, week) at a time; the lock TTL outlives the
	// longest solver timeout so a crashed run cannot wedge the key forever
	lockKey := fmt.Sprintf("generation_lock:%d:%s", site.ID, weekStart.Format(dateLayout))
	lockCtx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.ConnectTimeout)*time.Second)
	defer cancel()

	locked, err := h.redisClient.SetNX(lockCtx, lockKey, "1", time.Duration(h.config.Generation.LockTTL)*time.Second).Result()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if !locked {
		h.errorResponse(w, r, "a generation for this week is already running")
		return
	}
	defer func() {
		h.redisClient.Del(context.Background(), lockKey)
	}()

	problem, err := h.loadProblem(site, weekStart, req.PositionIDs, req.OptimizationMode, req.FairnessWeight)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	result, err := h.engine.Generate(r.Context(), problem, engine.Options{
		Algorithm:     engine.Algorithm(req.Algorithm),
		AllowFallback: req.AllowFallback,
	})
	if err != nil {
		var inputErr *engine.InputError
		if errors.As(err, &inputErr) {
			h.errorResponse(w, r, inputErr.Reason)
			return
		}
		// solver failure with fallback disabled and the like: a clear
		// failure, not a server fault
		h.errorResponse(w, r, err.Error())
		return
	}

	schedule := &domain.Schedule{
		SiteID:    site.ID,
		StartDate: weekStart,
		EndDate:   weekStart.AddDate(0, 0, 6),
		Status:    domain.ScheduleDraft,
	}
	if err := h.repository.ReplaceSchedule(schedule, result.Assignments); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "schedule generated", struct {
		Algorithm          string                 `json:"algorithm"`
		RequestedAlgorithm string                 `json:"requestedAlgorithm"`
		Fallback           string                 `json:"fallback,omitempty"`
		Schedule           scheduleSummary        `json:"schedule"`
		Stats              engine.Stats           `json:"stats"`
		Violations         []compliance.Violation `json:"violations"`
		Warnings           []string               `json:"warnings"`
		Status             string                 `json:"status"`
		SolveTimeMs        int64                  `json:"solveTimeMs"`
	}{
		Algorithm:          result.Algorithm,
		RequestedAlgorithm: string(result.RequestedAlgorithm),
		Fallback:           result.Fallback,
		Schedule: scheduleSummary{
			ScheduleID:       schedule.ID,
			AssignmentsCount: result.Stats.AssignmentsCount,
		},
		Stats:       result.Stats,
		Violations:  result.Violations,
		Warnings:    problem.Constraints.Warnings,
		Status:      result.Status,
		SolveTimeMs: result.SolveTime.Milliseconds(),
	})
}

type scheduleSummary struct {
	ScheduleID       int64 `json:"scheduleID"`
	AssignmentsCount int   `json:"assignmentsCount"`
}

// loadProblem gathers everything one generation needs and compiles the
// constraint set.
func (h *Handler) loadProblem(site *domain.WorkSite, weekStart time.Time, positionIDs []int64, optimizationMode string, fairnessWeight *int32) (*engine.Problem, error) {
	positions, err := h.repository.GetPositionsBySiteID(site.ID)
	if err != nil {
		return nil, err
	}
	if len(positionIDs) > 0 {
		wanted := make(map[int64]bool, len(positionIDs))
		for _, id := range positionIDs {
			wanted[id] = true
		}
		filtered := positions[:0]
		for _, pos := range positions {
			if wanted[pos.ID] {
				filtered = append(filtered, pos)
			}
		}
		positions = filtered
	}

	shifts, err := h.repository.GetShiftsBySiteID(site.ID)
	if err != nil {
		return nil, err
	}
	requirements, err := h.repository.GetRequirementsBySiteID(site.ID)
	if err != nil {
		return nil, err
	}
	employees, err := h.repository.GetActiveEmployeesBySiteID(site.ID)
	if err != nil {
		return nil, err
	}
	constraints, err := h.repository.GetActiveConstraintsBySiteID(site.ID)
	if err != nil {
		return nil, err
	}
	legal, err := h.repository.GetLegalConstraintsBySiteID(site.ID)
	if err != nil {
		return nil, err
	}

	settings, err := h.repository.GetScheduleSettings(site.ID)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		settings = domain.DefaultScheduleSettings(site.ID)
	}

	compiled, err := constraint.Compile(&constraint.Input{
		Site:         site,
		WeekStart:    weekStart,
		Positions:    positions,
		Shifts:       shifts,
		Requirements: requirements,
		Employees:    employees,
		Constraints:  constraints,
		LegalRules:   legal,
		Settings:     settings,
	})
	if err != nil {
		return nil, err
	}

	fairness := 0.5
	if fairnessWeight != nil {
		fairness = float64(*fairnessWeight) / 100
	}
	if optimizationMode == "" {
		optimizationMode = "balanced"
	}

	return &engine.Problem{
		Site:             site,
		WeekStart:        weekStart,
		Employees:        employees,
		Positions:        positions,
		Shifts:           shifts,
		Constraints:      compiled,
		FairnessWeight:   fairness,
		OptimizationMode: optimizationMode,
	}, nil
}

func (h *Handler) PublishSchedule(w http.ResponseWriter, r *http.Request) {
	site := r.Context().Value(WorkSiteCtx).(*domain.WorkSite)
	schedule := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	if schedule.Status == domain.SchedulePublished {
		h.errorResponse(w, r, "schedule is already published")
		return
	}

	if err := h.repository.PublishSchedule(schedule); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "schedule was modified concurrently, reload and retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	assigned, err := h.repository.GetAssignedEmployees(schedule.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	for _, ae := range assigned {
		mailMessage := domain.MailMessage{
			Type: "schedule_published",
			To:   ae.Employee.Email,
			Data: domain.SchedulePublishedMailData{
				FullName:  ae.Employee.FullName,
				SiteName:  site.Name,
				WeekStart: schedule.StartDate.Format(dateLayout),
				WeekEnd:   schedule.EndDate.Format(dateLayout),
				Shifts:    ae.Shifts,
			},
		}

		emailData, err := json.Marshal(mailMessage)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
		err = h.mailChannel.PublishWithContext(
			ctx,
			"",
			"email_queue",
			true,
			false,
			amqp.Publishing{
				ContentType: "application/json",
				Body:        emailData,
			},
		)
		cancel()
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
	}

	h.successResponse(w, r, "schedule published", schedule)
}
