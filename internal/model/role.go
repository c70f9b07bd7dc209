package model

type Role string

const (
	RoleTechnician    Role = "technician"
	RoleSupervisor    Role = "supervisor"
	RoleAdministrator Role = "administrator"
)

type Credentials struct {
	Username string
	Secret   string
}
