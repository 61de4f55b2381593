package views

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"wbsplanner/internal/i18n"
	"wbsplanner/internal/model"
)

// UserAdmin manages an in-memory user list; the server has no user CRUD.
type UserAdmin struct {
	env *Env

	mu     sync.Mutex
	users  []model.User
	nextID int
}

func NewUserAdmin(env *Env) *UserAdmin {
	return &UserAdmin{
		env: env,
		users: []model.User{{
			ID:        1,
			Username:  "admin",
			Email:     "admin@example.com",
			FullName:  "システム管理者",
			Role:      model.RoleSystemAdmin,
			IsActive:  true,
			CreatedAt: time.Date(2025, 7, 29, 0, 0, 0, 0, time.UTC),
		}},
		nextID: 2,
	}
}

func (s *UserAdmin) Users() []model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.User(nil), s.users...)
}

func (s *UserAdmin) Render() string {
	l := s.env.label
	users := s.Users()
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		active := l("user.inactive")
		if u.IsActive {
			active = l("user.active")
		}
		rows = append(rows, []string{
			strconv.Itoa(u.ID),
			u.Username,
			u.FullName,
			u.Email,
			tag(roleColors, string(u.Role), l(string(u.Role))),
			active,
			u.CreatedAt.Format(model.DateLayout),
		})
	}
	return s.env.Styles.Title.Render(l("title.users")) + "\n" + s.env.Styles.table([]string{
		l("col.id"), l("col.username"), l("col.full_name"), l("col.email"), l("col.role"), l("col.status"), l("col.created"),
	}, rows)
}

func (s *UserAdmin) EditForm(id int) (UserForm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			return UserFormFrom(u), nil
		}
	}
	return UserForm{}, fmt.Errorf("user %d not found", id)
}

func (s *UserAdmin) Create(f UserForm) (*model.User, error) {
	if err := f.Validate(s.env.Locale, true); err != nil {
		return nil, s.env.rejectInvalid(err)
	}
	s.mu.Lock()
	u := model.User{
		ID:        s.nextID,
		Username:  f.Username,
		FullName:  f.FullName,
		Email:     f.Email,
		Role:      model.Role(f.Role),
		IsActive:  f.IsActive,
		CreatedAt: time.Now(),
	}
	s.nextID++
	s.users = append(s.users, u)
	s.mu.Unlock()

	s.env.Notify.Success(s.env.Locale.T(i18n.UserCreatedDemo))
	return &u, nil
}

func (s *UserAdmin) Update(id int, f UserForm) (*model.User, error) {
	if err := f.Validate(s.env.Locale, false); err != nil {
		return nil, s.env.rejectInvalid(err)
	}
	s.mu.Lock()
	var out *model.User
	for i := range s.users {
		if s.users[i].ID == id {
			s.users[i].Username = f.Username
			s.users[i].FullName = f.FullName
			s.users[i].Email = f.Email
			s.users[i].Role = model.Role(f.Role)
			s.users[i].IsActive = f.IsActive
			u := s.users[i]
			out = &u
		}
	}
	s.mu.Unlock()
	if out == nil {
		return nil, fmt.Errorf("user %d not found", id)
	}
	s.env.Notify.Success(s.env.Locale.T(i18n.UserUpdatedDemo))
	return out, nil
}

func (s *UserAdmin) Delete(id int) bool {
	if !s.env.confirm(i18n.UserConfirmDel) {
		return false
	}
	s.mu.Lock()
	for i, u := range s.users {
		if u.ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	s.env.Notify.Success(s.env.Locale.T(i18n.UserDeletedDemo))
	return true
}
