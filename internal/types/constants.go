package types

const ContextUserKey = "user"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)
