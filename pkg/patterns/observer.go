package patterns

import (
	"fmt"
	"slices"
	"sync"
)

// WeatherObserver receives every new set of measurements.
type WeatherObserver interface {
	Update(temperature, humidity, pressure float64)
}

// WeatherStation notifies its observers whenever measurements change.
type WeatherStation struct {
	mu          sync.Mutex
	observers   []WeatherObserver
	temperature float64
	humidity    float64
	pressure    float64
}

func NewWeatherStation() *WeatherStation {
	return &WeatherStation{}
}

// Register adds o. Registering the same observer twice is a no-op.
func (s *WeatherStation) Register(o WeatherObserver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !slices.Contains(s.observers, o) {
		s.observers = append(s.observers, o)
	}
}

func (s *WeatherStation) Remove(o WeatherObserver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := slices.Index(s.observers, o); i >= 0 {
		s.observers = slices.Delete(s.observers, i, i+1)
	}
}

// Observers returns the number of registered observers.
func (s *WeatherStation) Observers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.observers)
}

// SetMeasurements records new values and notifies every observer.
func (s *WeatherStation) SetMeasurements(temperature, humidity, pressure float64) {
	s.mu.Lock()
	s.temperature, s.humidity, s.pressure = temperature, humidity, pressure
	observers := slices.Clone(s.observers)
	s.mu.Unlock()

	for _, o := range observers {
		o.Update(temperature, humidity, pressure)
	}
}

// CurrentConditionsDisplay keeps the latest temperature and humidity.
type CurrentConditionsDisplay struct {
	Temperature float64
	Humidity    float64
	Updates     int
}

func (d *CurrentConditionsDisplay) Update(temperature, humidity, _ float64) {
	d.Temperature = temperature
	d.Humidity = humidity
	d.Updates++
}

func (d *CurrentConditionsDisplay) Display() string {
	return fmt.Sprintf("Current conditions: %.1f°C and %.1f%% humidity", d.Temperature, d.Humidity)
}
