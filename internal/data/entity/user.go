package entity

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

type Verified string

const (
	VerifiedYes Verified = "yes"
	VerifiedNo  Verified = "no"
)

type User struct {
	Base
	Username     string   `db:"username"`
	FirstName    string   `db:"first_name"`
	LastName     string   `db:"last_name"`
	Email        string   `db:"email"`
	PasswordHash string   `db:"password"`
	Role         UserRole `db:"role"`
	Gender       *Gender  `db:"gender"`
	Avatar       *string  `db:"avatar"`
	Address      *string  `db:"address"`
	Contact      *string  `db:"contact"`
	KTP          *string  `db:"ktp"`
	IsVerified   Verified `db:"is_verified"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
