package models

type UserRole string

const (
	SalesAdminRole   UserRole = "SALES_ADMIN"
	SalesManagerRole UserRole = "SALES_MANAGER"
	SalesPersonRole  UserRole = "SALES_PERSON"
)

var roleHumanName = map[UserRole]string{
	SalesAdminRole:   "Администратор",
	SalesManagerRole: "Руководитель продаж",
	SalesPersonRole:  "Менеджер по продажам",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

func (r UserRole) IsAdmin() bool {
	return r == SalesAdminRole
}

const SystemUser = "Система"
