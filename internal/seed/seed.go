package seed

import (
	"log/slog"

	"github.com/JohWeak/shifts-app-sub005/internal/domain"
	"github.com/JohWeak/shifts-app-sub005/internal/repository"
	"github.com/JohWeak/shifts-app-sub005/internal/utils"
)

type shiftSpec struct {
	name      string
	startHour int
	endHour   int
}

// the four canonical archetypes; night crosses midnight
var demoShifts = []shiftSpec{
	{"Morning", 6, 14},
	{"Day", 9, 17},
	{"Evening", 14, 22},
	{"Night", 22, 6},
}

var demoPositions = []struct {
	name       string
	profession string
	numOfEmp   int32
}{
	{"Reception", "receptionist", 1},
	{"Security", "guard", 2},
}

// SeedDemoData creates a complete demo site: positions, the four shift
// archetypes per position, staffing requirements, legal constraints,
// settings, and a roster with a few random availability directives.
func SeedDemoData(r *repository.Repository, employeeCount int, password string, emailDomain string) {
	site := &domain.WorkSite{
		Name:         "Demo Site",
		Timezone:     "Asia/Jerusalem",
		WeekStartDay: 0,
	}
	if err := r.EnsureWorkSite(site); err != nil {
		slog.Error("failed to create demo site", slog.String("error", err.Error()))
		return
	}
	slog.Info("demo site ready", slog.Int64("site_id", site.ID))

	var shiftIDs []int64
	for i, ps := range demoPositions {
		pos := &domain.Position{
			SiteID:     site.ID,
			Name:       ps.name,
			Profession: ps.profession,
			NumOfEmp:   ps.numOfEmp,
			SortOrder:  int32(i),
			IsActive:   true,
		}
		if err := r.CreatePosition(pos); err != nil {
			slog.Error("failed to create position", slog.String("name", ps.name), slog.String("error", err.Error()))
			return
		}

		for j, ss := range demoShifts {
			shift := &domain.PositionShift{
				PositionID: pos.ID,
				Name:       ss.name,
				StartTime:  utils.FormatTimeOfDay(ss.startHour, 0),
				EndTime:    utils.FormatTimeOfDay(ss.endHour, 0),
				SortOrder:  int32(j),
				IsActive:   true,
			}
			if err := utils.ValidateShiftTimes(shift); err != nil {
				slog.Error("invalid demo shift", slog.String("error", err.Error()))
				return
			}
			if err := r.CreatePositionShift(shift); err != nil {
				slog.Error("failed to create shift", slog.String("name", ss.name), slog.String("error", err.Error()))
				return
			}
			shiftIDs = append(shiftIDs, shift.ID)

			// weekend day shift runs lighter than the position default
			if ss.name == "Day" {
				saturday := int32(6)
				req := &domain.ShiftRequirement{
					PositionID:    pos.ID,
					ShiftID:       shift.ID,
					DayOfWeek:     &saturday,
					RequiredStaff: 1,
					IsActive:      true,
				}
				if err := utils.ValidateRequirement(req, []*domain.PositionShift{shift}); err != nil {
					slog.Error("invalid demo requirement", slog.String("error", err.Error()))
					return
				}
				if err := r.CreateShiftRequirement(req); err != nil {
					slog.Error("failed to create requirement", slog.String("error", err.Error()))
					return
				}
			}
		}
	}

	legalRules := []*domain.LegalConstraint{
		{SiteID: site.ID, Name: "Statutory daily cap", Type: domain.LegalMaxDailyHours, Value: 12, IsActive: true},
		{SiteID: site.ID, Name: "Statutory rest floor", Type: domain.LegalMinRestBetweenShifts, Value: 11, IsActive: true},
		{SiteID: site.ID, Name: "Weekly day off", Type: domain.LegalMandatoryDayOff, Value: 1, IsActive: true},
		{SiteID: site.ID, Name: "Night shift cap", Type: domain.LegalMaxNightShifts, Value: 3, IsActive: true},
		{SiteID: site.ID, Name: "Weekly overtime cap", Type: domain.LegalMaxOvertimeWeekly, Value: 12, IsActive: true},
	}
	for _, rule := range legalRules {
		if err := r.CreateLegalConstraint(rule); err != nil {
			slog.Error("failed to create legal constraint", slog.String("name", rule.Name), slog.String("error", err.Error()))
			return
		}
	}

	settings := domain.DefaultScheduleSettings(site.ID)
	settings.RestMethod = domain.RestMethodDynamic
	if err := r.UpsertScheduleSettings(settings); err != nil {
		slog.Error("failed to store schedule settings", slog.String("error", err.Error()))
		return
	}

	created := 0
	for i := 0; i < employeeCount; i++ {
		emp, err := utils.GenerateRandomEmployee(site.ID, password, emailDomain)
		if err != nil {
			slog.Error("failed to generate employee", slog.String("error", err.Error()))
			continue
		}
		if err := r.CreateEmployee(emp); err != nil {
			slog.Error("failed to create employee", slog.String("username", emp.Username), slog.String("error", err.Error()))
			continue
		}
		created++

		// roughly every third employee gets recurring directives over a
		// random subset of the week
		if i%3 == 0 {
			for _, day := range utils.GenerateRandomDaysSubset() {
				ec := utils.GenerateRandomConstraint(emp.ID, day, shiftIDs)
				if err := utils.ValidateConstraint(ec); err != nil {
					slog.Error("invalid demo constraint", slog.String("error", err.Error()))
					continue
				}
				if err := r.CreateEmployeeConstraint(ec); err != nil {
					slog.Error("failed to create constraint", slog.String("error", err.Error()))
				}
			}
		}
	}

	slog.Info("demo roster created", slog.Int("employees", created))
}
