package patterns

import (
	"context"
	"sync"
	"testing"

	"github.com/aretw0/tutorcheck/pkg/smoke"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingleton(t *testing.T) {
	calls := 0
	s := NewSingleton(func() *service {
		calls++
		return &service{value: 42}
	})

	var wg sync.WaitGroup
	got := make([]*service, 10)
	for i := range got {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got[i] = s.Get()
		}()
	}
	wg.Wait()

	for _, v := range got {
		assert.Same(t, got[0], v)
	}
	assert.Equal(t, 1, calls)
	assert.Equal(t, 42, got[0].value)
}

func TestComputerBuilder(t *testing.T) {
	b := NewComputerBuilder().SetCPU("Intel i7").SetMemory("16GB").SetGPU("RTX").EnableWiFi()
	c := b.Build()

	assert.Equal(t, "Intel i7", c.CPU)
	assert.Equal(t, "Computer(CPU: Intel i7, Memory: 16GB, GPU: RTX, WiFi)", c.String())

	b.Reset().SetCPU("ARM")
	assert.Equal(t, "Intel i7", c.CPU, "built computers are independent of the builder")
	assert.Equal(t, Computer{CPU: "ARM"}, b.Build())
}

func TestNewShape(t *testing.T) {
	tests := []struct {
		kind      string
		dims      []float64
		area      float64
		perimeter float64
	}{
		{"circle", []float64{5}, 78.53981633974483, 31.41592653589793},
		{"Rectangle", []float64{2, 3}, 6, 10},
		{"triangle", []float64{2}, 1.7320508075688772, 6},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			s, err := NewShape(tt.kind, tt.dims...)
			require.NoError(t, err)
			assert.InDelta(t, tt.area, s.Area(), 1e-9)
			assert.InDelta(t, tt.perimeter, s.Perimeter(), 1e-9)
		})
	}

	t.Run("Errors", func(t *testing.T) {
		_, err := NewShape("hexagon", 1)
		assert.ErrorContains(t, err, "unknown shape type")
		_, err = NewShape("circle")
		assert.Error(t, err)
		_, err = NewShape("rectangle", 2, -1)
		assert.Error(t, err)
	})
}

func TestNewNotifier(t *testing.T) {
	n, err := NewNotifier("EMAIL")
	require.NoError(t, err)
	email, ok := n.(EmailNotifier)
	require.True(t, ok)
	assert.Equal(t, "smtp.gmail.com", email.SMTPServer)
	assert.Contains(t, n.Send("bob@example.com", "hi"), "smtp.gmail.com:587")

	for _, kind := range NotifierKinds() {
		_, err := NewNotifier(kind)
		assert.NoError(t, err, kind)
	}

	_, err = NewNotifier("pigeon")
	assert.Error(t, err)
}

func TestWeatherStation(t *testing.T) {
	station := NewWeatherStation()
	display := &CurrentConditionsDisplay{}

	station.Register(display)
	station.Register(display)
	assert.Equal(t, 1, station.Observers())

	station.SetMeasurements(25, 65, 1013)
	assert.Equal(t, 1, display.Updates)
	assert.Equal(t, "Current conditions: 25.0°C and 65.0% humidity", display.Display())

	station.Remove(display)
	station.SetMeasurements(30, 40, 1000)
	assert.Equal(t, 0, station.Observers())
	assert.Equal(t, 1, display.Updates)
}

func TestSmokeChecks(t *testing.T) {
	res := smoke.RunChecks(context.Background(), "Functionality", SmokeChecks(), nil)
	assert.True(t, res.Passed(), "%v", res.Errors())
	assert.Empty(t, res.Errors())
}

func TestRegister(t *testing.T) {
	reg := smoke.NewRegistry()
	Register(reg)

	assert.Equal(t, []string{"builder", "factory", "observer", "repository", "singleton"}, reg.Names())

	r := &smoke.Runner{Registry: reg}
	res := r.Run(context.Background(), reg.Names())
	assert.True(t, res.Passed(), "%v", res.Errors())
}
