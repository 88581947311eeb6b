package utils

import (
	"fmt"
	"math/rand"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/JohWeak/shifts-app-sub005/internal/domain"
)

var commonFirstNames = []string{
	"Noa", "Yael", "Daniel", "Maya", "Itay", "Tamar", "Omer", "Shira",
	"Amit", "Lior", "Eden", "Yonatan", "Roni", "Michal", "Avi", "Dana",
	"Eli", "Noam", "Gal", "Rina",
}

var commonLastNames = []string{
	"Cohen", "Levi", "Mizrahi", "Peretz", "Biton", "Dahan", "Avraham",
	"Friedman", "Katz", "Azulay", "Malka", "Ohayon", "Gabay", "Shapiro",
	"Ben-David", "Amar", "Hazan", "Weiss", "Moyal", "Sharabi",
}

func GenerateRandomFullName() string {
	first := commonFirstNames[rand.Intn(len(commonFirstNames))]
	last := commonLastNames[rand.Intn(len(commonLastNames))]
	return first + " " + last
}

var digits = "0123456789"

func GenerateUsernameFromFullName(fullName string) string {
	parts := strings.Fields(strings.ToLower(fullName))
	username := ""

	for _, part := range parts {
		part = strings.ReplaceAll(part, "-", "")
		length := rand.Intn(len(part)) + 1
		username += part[:length]
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

func GenerateRandomEmployee(siteID int64, password string, emailDomainName string) (*domain.Employee, error) {
	fullName := GenerateRandomFullName()
	username := GenerateUsernameFromFullName(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &domain.Employee{
		SiteID:       siteID,
		Username:     username,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Email:        username + "@" + emailDomainName,
		Role:         domain.RoleEmployee,
		Locale:       "en",
		IsActive:     true,
	}, nil
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	password := make([]rune, length)
	for i := range password {
		password[i] = letters[rand.Intn(len(letters))]
	}
	return string(password)
}

// GenerateRandomDaysSubset returns a non-empty random subset of the week
// days 0..6, shuffled with Fisher-Yates.
func GenerateRandomDaysSubset() []int32 {
	days := []int32{0, 1, 2, 3, 4, 5, 6}

	for i := len(days) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		days[i], days[j] = days[j], days[i]
	}

	n := rand.Intn(len(days)) + 1

	return days[:n]
}

// GenerateRandomConstraint produces a recurring cannot_work or prefer_work
// directive for one employee on the given day of week.
func GenerateRandomConstraint(employeeID int64, day int32, shiftIDs []int64) *domain.EmployeeConstraint {
	kind := domain.ConstraintCannotWork
	if rand.Intn(2) == 1 {
		kind = domain.ConstraintPreferWork
	}

	ec := &domain.EmployeeConstraint{
		EmployeeID: employeeID,
		Type:       kind,
		DayOfWeek:  &day,
		Status:     domain.ConstraintActive,
	}

	// half of the directives are narrowed to a single shift
	if len(shiftIDs) > 0 && rand.Intn(2) == 1 {
		shiftID := shiftIDs[rand.Intn(len(shiftIDs))]
		ec.ShiftID = &shiftID
	}

	return ec
}

func FormatTimeOfDay(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d:00", hour, minute)
}
