package registry

import (
	"regexp"
	"strings"
	"sync"

	"roombook/internal/models"
)

// emailPattern is deliberately loose: local part, @, domain with a dot,
// no whitespace. Full RFC validation is not the point here.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// UserUpdate carries the fields of a partial user update.
type UserUpdate struct {
	Name  *string
	Email *string
}

// UserRegistry stores users in insertion order with a case-insensitive
// unique email index (lowercased email -> user ID).
type UserRegistry struct {
	mu      sync.RWMutex
	users   []models.User
	byEmail map[string]int64
	nextID  int64
}

func NewUserRegistry() *UserRegistry {
	return &UserRegistry{
		byEmail: make(map[string]int64),
		nextID:  1,
	}
}

// Create stores a new user. The duplicate-email check runs before the
// syntax check, so a repeat of an existing address reports a conflict
// even if the address itself would not validate.
func (r *UserRegistry) Create(name, email string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[strings.ToLower(email)]; taken {
		return models.User{}, models.Conflict("user", "a user with this email already exists")
	}
	if !emailPattern.MatchString(email) {
		return models.User{}, models.InvalidInput("user", "invalid email")
	}

	user := models.User{ID: r.nextID, Name: name, Email: email}
	r.nextID++
	r.users = append(r.users, user)
	r.byEmail[strings.ToLower(email)] = user.ID
	return user, nil
}

// List returns all users in insertion order.
func (r *UserRegistry) List() []models.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.User, len(r.users))
	copy(out, r.users)
	return out
}

// Get returns the user with the given ID.
func (r *UserRegistry) Get(id int64) (models.User, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return models.User{}, false
	}
	return r.users[i], true
}

// Update overwrites the supplied fields. A changed email is validated
// for syntax first, then for uniqueness against the other users.
func (r *UserRegistry) Update(id int64, upd UserUpdate) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return models.User{}, models.NotFound("user", "user not found")
	}
	user := &r.users[i]

	if upd.Email != nil && *upd.Email != user.Email {
		if !emailPattern.MatchString(*upd.Email) {
			return models.User{}, models.InvalidInput("user", "invalid email")
		}
		key := strings.ToLower(*upd.Email)
		if otherID, taken := r.byEmail[key]; taken && otherID != id {
			return models.User{}, models.Conflict("user", "a user with this email already exists")
		}
	}

	if upd.Name != nil {
		user.Name = *upd.Name
	}
	if upd.Email != nil {
		delete(r.byEmail, strings.ToLower(user.Email))
		user.Email = *upd.Email
		r.byEmail[strings.ToLower(user.Email)] = id
	}
	return *user, nil
}

// Delete removes and returns the user.
func (r *UserRegistry) Delete(id int64) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return models.User{}, models.NotFound("user", "user not found")
	}
	user := r.users[i]
	r.users = append(r.users[:i], r.users[i+1:]...)
	delete(r.byEmail, strings.ToLower(user.Email))
	return user, nil
}

// Reset clears all users and restarts the ID counter. Test hook only.
func (r *UserRegistry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users = nil
	r.byEmail = make(map[string]int64)
	r.nextID = 1
}

func (r *UserRegistry) indexOf(id int64) int {
	for i := range r.users {
		if r.users[i].ID == id {
			return i
		}
	}
	return -1
}
