package directory

import "time"

type Employee struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	RoleTitle string    `json:"roleTitle"`
	Level     string    `json:"level"`
	ManagerID string    `json:"managerId,omitempty"`
	TeamID    string    `json:"teamId,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Team struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	LeaderIDs   []string  `json:"leaderIds,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Profile struct {
	EmployeeID string    `json:"employeeId"`
	PhotoURL   string    `json:"photoUrl,omitempty"`
	Bio        string    `json:"bio,omitempty"`
	Skills     []string  `json:"skills,omitempty"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type ReviewPeriod struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Year      int       `json:"year"`
	Type      string    `json:"type"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}
