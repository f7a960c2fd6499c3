package entity

type UserType string

const (
	UserTypeUser    UserType = "user"
	UserTypeSpeaker UserType = "speaker"
)

type User struct {
	Base
	FirstName     string   `db:"first_name"`
	LastName      string   `db:"last_name"`
	Email         string   `db:"email"`
	PasswordHash  string   `db:"password"`
	UserType      UserType `db:"user_type"`
	EmailVerified bool     `db:"email_verified"`
	IsActive      bool     `db:"is_active"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
