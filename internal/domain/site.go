package domain

import "time"

type WorkSite struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Timezone     string    `json:"timezone"`
	WeekStartDay int32     `json:"weekStartDay"` // 0 = Sunday
	CreatedAt    time.Time `json:"createdAt"`
	Version      int32     `json:"-"`
}

type Position struct {
	ID         int64     `json:"id"`
	SiteID     int64     `json:"siteID"`
	Name       string    `json:"name"`
	Profession string    `json:"profession"`
	NumOfEmp   int32     `json:"numOfEmp"`
	SortOrder  int32     `json:"sortOrder"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
	Version    int32     `json:"-"`
}
