package models

type User struct {
	ID    int64  `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Email string `db:"email" json:"email"`
}

// SameIdentity is true when both users are persisted and share an id.
func (u *User) SameIdentity(other *User) bool {
	if u == nil || other == nil {
		return false
	}
	return u.ID != 0 && u.ID == other.ID
}

// SameContent compares every field except the id.
func (u *User) SameContent(other *User) bool {
	if u == nil || other == nil {
		return u == other
	}
	return u.Name == other.Name && u.Email == other.Email
}

// UserInput is a create or partial update payload. Nil fields are left unchanged.
type UserInput struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

type UserView struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func NewUserView(u *User) UserView {
	return UserView{ID: u.ID, Name: u.Name, Email: u.Email}
}
