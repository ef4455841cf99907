package patterns

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/aretw0/tutorcheck/internal/fsutil"
)

type userRecord struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	CreatedAt *string `json:"created_at"`
}

type userFile struct {
	Users  []userRecord `json:"users"`
	NextID int64        `json:"next_id"`
}

func emptyUserFile() userFile {
	return userFile{Users: []userRecord{}, NextID: 1}
}

// JSONFileUserRepository stores users in a single JSON document of the form
// {"users": [...], "next_id": N}. The file is re-read on every operation.
type JSONFileUserRepository struct {
	path string

	mu    sync.Mutex
	count int
	next  int64
}

var errEmptyStore = errors.New("empty user store")

// OpenJSONFileUserRepository opens the store at path. A missing, empty or
// syntactically invalid file is replaced by an empty store. Any other error,
// including a well-formed document with mistyped fields, is returned and the
// file is left alone.
func OpenJSONFileUserRepository(path string) (*JSONFileUserRepository, error) {
	r := &JSONFileUserRepository{path: path}
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := r.read()
	if err != nil {
		if !recoverable(err) {
			return nil, err
		}
		data = emptyUserFile()
		if err := r.write(data); err != nil {
			return nil, err
		}
	}
	r.remember(data)
	return r, nil
}

func recoverable(err error) bool {
	var syntax *json.SyntaxError
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, errEmptyStore) || errors.As(err, &syntax)
}

// Len returns the number of users seen by the last operation.
func (r *JSONFileUserRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// NextID returns the ID the next new user will receive.
func (r *JSONFileUserRepository) NextID() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.next
}

func (r *JSONFileUserRepository) remember(data userFile) {
	r.count = len(data.Users)
	r.next = data.NextID
}

// read loads the document and normalises next_id to at least max(id)+1.
func (r *JSONFileUserRepository) read() (userFile, error) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		return userFile{}, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return userFile{}, fmt.Errorf("%w: %s", errEmptyStore, r.path)
	}
	var data userFile
	if err := json.Unmarshal(raw, &data); err != nil {
		return userFile{}, fmt.Errorf("corrupt user store %s: %w", r.path, err)
	}
	if data.Users == nil {
		data.Users = []userRecord{}
	}
	next := max(data.NextID, 1)
	for _, u := range data.Users {
		next = max(next, u.ID+1)
	}
	data.NextID = next
	return data, nil
}

func (r *JSONFileUserRepository) write(data userFile) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	return fsutil.ReplaceFile(r.path, append(raw, '\n'))
}

func (r *JSONFileUserRepository) load() (userFile, error) {
	data, err := r.read()
	if err != nil {
		return userFile{}, err
	}
	r.remember(data)
	return data, nil
}

func toRecord(u *User) userRecord {
	rec := userRecord{ID: u.ID, Name: u.Name, Email: u.Email}
	if s := formatTime(u.CreatedAt); s != "" {
		rec.CreatedAt = &s
	}
	return rec
}

func (rec userRecord) user() (User, error) {
	u := User{ID: rec.ID, Name: rec.Name, Email: rec.Email}
	if rec.CreatedAt != nil && *rec.CreatedAt != "" {
		t, err := parseTime(*rec.CreatedAt)
		if err != nil {
			return User{}, err
		}
		u.CreatedAt = t
	}
	return u, nil
}

func (r *JSONFileUserRepository) Save(_ context.Context, u *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := r.load()
	if err != nil {
		return err
	}
	for _, rec := range data.Users {
		if rec.Email == u.Email && rec.ID != u.ID {
			return ErrDuplicateEmail
		}
	}

	if u.ID == 0 {
		u.ID = data.NextID
	}
	data.NextID = max(data.NextID, u.ID+1)

	replaced := false
	for i := range data.Users {
		if data.Users[i].ID == u.ID {
			data.Users[i] = toRecord(u)
			replaced = true
			break
		}
	}
	if !replaced {
		data.Users = append(data.Users, toRecord(u))
	}

	if err := r.write(data); err != nil {
		return err
	}
	r.remember(data)
	return nil
}

func (r *JSONFileUserRepository) find(match func(userRecord) bool) ([]User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := r.load()
	if err != nil {
		return nil, err
	}
	var out []User
	for _, rec := range data.Users {
		if !match(rec) {
			continue
		}
		u, err := rec.user()
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}

func (r *JSONFileUserRepository) findOne(match func(userRecord) bool) (*User, error) {
	users, err := r.find(match)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, ErrUserNotFound
	}
	return &users[0], nil
}

func (r *JSONFileUserRepository) FindByID(_ context.Context, id int64) (*User, error) {
	return r.findOne(func(rec userRecord) bool { return rec.ID == id })
}

func (r *JSONFileUserRepository) FindByEmail(_ context.Context, email string) (*User, error) {
	return r.findOne(func(rec userRecord) bool { return rec.Email == email })
}

func (r *JSONFileUserRepository) FindByName(_ context.Context, name string) ([]User, error) {
	return r.find(func(rec userRecord) bool { return rec.Name == name })
}

func (r *JSONFileUserRepository) FindAll(_ context.Context) ([]User, error) {
	return r.find(func(userRecord) bool { return true })
}

func (r *JSONFileUserRepository) Delete(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := r.load()
	if err != nil {
		return false, err
	}
	for i, rec := range data.Users {
		if rec.ID == id {
			data.Users = append(data.Users[:i], data.Users[i+1:]...)
			if err := r.write(data); err != nil {
				return false, err
			}
			r.remember(data)
			return true, nil
		}
	}
	return false, nil
}

var _ UserRepository = (*JSONFileUserRepository)(nil)
