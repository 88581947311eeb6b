package handler

type ContextKey string

var (
	RoleCtxKey  ContextKey = "role"
	SubCtxKey   ContextKey = "sub"
	WorkSiteCtx ContextKey = "workSite"
	ScheduleCtx ContextKey = "schedule"
)
