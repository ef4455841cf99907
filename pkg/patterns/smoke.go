package patterns

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/aretw0/tutorcheck/pkg/smoke"
)

// Register adds the sample modules to reg. Each loader performs the module's
// most basic operation.
func Register(reg *smoke.Registry) {
	reg.Register("singleton", checkSingleton)
	reg.Register("factory", checkFactory)
	reg.Register("observer", checkObserver)
	reg.Register("builder", checkBuilder)
	reg.Register("repository", func(ctx context.Context) error {
		_, err := NewUserService(NewMemoryUserRepository()).RegisterUser(ctx, "Smoke", "smoke@example.com")
		return err
	})
}

// SmokeChecks returns the functional checks of the sample modules.
func SmokeChecks() []smoke.Check {
	return []smoke.Check{
		{Name: "Singleton", Run: checkSingleton},
		{Name: "Builder", Run: checkBuilder},
		{Name: "SQLite repository", Run: checkSQLiteRepository},
		{Name: "JSON repository (new file)", Run: withTempDir(checkJSONNewFile)},
		{Name: "JSON repository (existing file)", Run: withTempDir(checkJSONExistingFile)},
		{Name: "JSON repository (corrupted file)", Run: withTempDir(checkJSONCorruptedFile)},
		{Name: "Factory", Run: checkFactory},
		{Name: "Observer", Run: checkObserver},
	}
}

func withTempDir(fn func(ctx context.Context, dir string) error) func(context.Context) error {
	return func(ctx context.Context) error {
		dir, err := os.MkdirTemp("", "tutorcheck-smoke-")
		if err != nil {
			return err
		}
		defer os.RemoveAll(dir)
		return fn(ctx, dir)
	}
}

type service struct{ value int }

func checkSingleton(context.Context) error {
	s := NewSingleton(func() *service { return &service{value: 42} })
	if s.Get() != s.Get() {
		return errors.New("singleton returned two instances")
	}
	return nil
}

func checkBuilder(context.Context) error {
	c := NewComputerBuilder().SetCPU("Intel i7").SetMemory("16GB").Build()
	if c.CPU != "Intel i7" || c.Memory != "16GB" {
		return fmt.Errorf("unexpected computer %s", c)
	}
	return nil
}

func checkSQLiteRepository(ctx context.Context) error {
	repo, err := OpenSQLiteUserRepository(ctx, ":memory:")
	if err != nil {
		return err
	}
	defer repo.Close()

	u := NewUser("Test User", "test@example.com")
	if err := repo.Save(ctx, u); err != nil {
		return err
	}
	if u.ID != 1 {
		return fmt.Errorf("expected id 1, got %d", u.ID)
	}
	found, err := repo.FindByID(ctx, 1)
	if err != nil {
		return err
	}
	if found.Name != "Test User" {
		return fmt.Errorf("expected name %q, got %q", "Test User", found.Name)
	}
	return nil
}

func checkJSONNewFile(ctx context.Context, dir string) error {
	repo, err := OpenJSONFileUserRepository(filepath.Join(dir, "users.json"))
	if err != nil {
		return err
	}
	if repo.Len() != 0 || repo.NextID() != 1 {
		return fmt.Errorf("new store has %d users and next id %d", repo.Len(), repo.NextID())
	}
	u := NewUser("Test User", "test@example.com")
	if err := repo.Save(ctx, u); err != nil {
		return err
	}
	if u.ID != 1 {
		return fmt.Errorf("expected id 1, got %d", u.ID)
	}
	return nil
}

const aliceStore = `{"users": [{"id": 1, "name": "Alice", "email": "alice@example.com", "created_at": "2023-01-01T12:00:00"}], "next_id": 2}`

func checkJSONExistingFile(ctx context.Context, dir string) error {
	path := filepath.Join(dir, "users.json")
	if err := os.WriteFile(path, []byte(aliceStore), 0644); err != nil {
		return err
	}
	repo, err := OpenJSONFileUserRepository(path)
	if err != nil {
		return err
	}
	if repo.Len() != 1 || repo.NextID() != 2 {
		return fmt.Errorf("expected 1 user and next id 2, got %d and %d", repo.Len(), repo.NextID())
	}
	users, err := repo.FindAll(ctx)
	if err != nil {
		return err
	}
	if users[0].Name != "Alice" {
		return fmt.Errorf("expected Alice, got %q", users[0].Name)
	}
	return nil
}

func checkJSONCorruptedFile(_ context.Context, dir string) error {
	path := filepath.Join(dir, "users.json")
	if err := os.WriteFile(path, []byte("{invalid json"), 0644); err != nil {
		return err
	}
	repo, err := OpenJSONFileUserRepository(path)
	if err != nil {
		return err
	}
	if repo.Len() != 0 || repo.NextID() != 1 {
		return fmt.Errorf("corrupted store was not reset: %d users, next id %d", repo.Len(), repo.NextID())
	}
	return nil
}

func checkFactory(context.Context) error {
	shape, err := NewShape("circle", 5)
	if err != nil {
		return err
	}
	if c, ok := shape.(Circle); !ok || c.Radius != 5 {
		return fmt.Errorf("unexpected shape %#v", shape)
	}
	if math.Abs(shape.Area()-78.53981633974483) > 0.001 {
		return fmt.Errorf("unexpected circle area %f", shape.Area())
	}

	n, err := NewNotifier("email")
	if err != nil {
		return err
	}
	if email, ok := n.(EmailNotifier); !ok || email.SMTPServer != "smtp.gmail.com" {
		return fmt.Errorf("unexpected notifier %#v", n)
	}
	return nil
}

func checkObserver(context.Context) error {
	station := NewWeatherStation()
	display := &CurrentConditionsDisplay{}
	station.Register(display)
	if station.Observers() != 1 {
		return fmt.Errorf("expected 1 observer, got %d", station.Observers())
	}
	station.SetMeasurements(25.0, 65.0, 1013.0)
	if display.Updates != 1 || display.Temperature != 25.0 {
		return errors.New("display was not notified")
	}
	return nil
}
