package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type SchedulePublishedMailData struct {
	FullName  string `json:"fullName"`
	SiteName  string `json:"siteName"`
	WeekStart string `json:"weekStart"`
	WeekEnd   string `json:"weekEnd"`
	Shifts    int    `json:"shifts"`
}

type NewAccountMailData struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Password string `json:"password"`
}
