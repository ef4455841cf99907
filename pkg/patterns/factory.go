package patterns

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Shape is a geometric shape created by NewShape.
type Shape interface {
	Area() float64
	Perimeter() float64
}

type Circle struct{ Radius float64 }

func (c Circle) Area() float64      { return math.Pi * c.Radius * c.Radius }
func (c Circle) Perimeter() float64 { return 2 * math.Pi * c.Radius }

type Rectangle struct{ Width, Height float64 }

func (r Rectangle) Area() float64      { return r.Width * r.Height }
func (r Rectangle) Perimeter() float64 { return 2 * (r.Width + r.Height) }

// Triangle is equilateral.
type Triangle struct{ Side float64 }

func (t Triangle) Area() float64      { return math.Sqrt(3) / 4 * t.Side * t.Side }
func (t Triangle) Perimeter() float64 { return 3 * t.Side }

// ShapeKinds lists the kinds accepted by NewShape.
func ShapeKinds() []string {
	return []string{"circle", "rectangle", "triangle"}
}

// NewShape creates a shape by kind. Circles take a radius, rectangles a
// width and a height, triangles a side. Every dimension must be positive.
func NewShape(kind string, dims ...float64) (Shape, error) {
	for _, d := range dims {
		if d <= 0 {
			return nil, errors.New("dimensions must be positive")
		}
	}
	switch strings.ToLower(kind) {
	case "circle":
		if len(dims) != 1 {
			return nil, errors.New("circle requires a radius")
		}
		return Circle{Radius: dims[0]}, nil
	case "rectangle":
		if len(dims) != 2 {
			return nil, errors.New("rectangle requires a width and a height")
		}
		return Rectangle{Width: dims[0], Height: dims[1]}, nil
	case "triangle":
		if len(dims) != 1 {
			return nil, errors.New("triangle requires a side")
		}
		return Triangle{Side: dims[0]}, nil
	}
	return nil, fmt.Errorf("unknown shape type: %s (supported: %s)", kind, strings.Join(ShapeKinds(), ", "))
}

// Notifier delivers a message to a recipient.
type Notifier interface {
	Send(recipient, message string) string
}

type EmailNotifier struct {
	SMTPServer string
	Port       int
}

func (n EmailNotifier) Send(recipient, message string) string {
	return fmt.Sprintf("email to %s via %s:%d: %s", recipient, n.SMTPServer, n.Port, message)
}

type SMSNotifier struct {
	APIKey string
}

func (n SMSNotifier) Send(recipient, message string) string {
	return fmt.Sprintf("sms to %s: %s", recipient, message)
}

type PushNotifier struct {
	AppID string
}

func (n PushNotifier) Send(recipient, message string) string {
	return fmt.Sprintf("push to %s (%s): %s", recipient, n.AppID, message)
}

// NotifierKinds lists the kinds accepted by NewNotifier.
func NotifierKinds() []string {
	return []string{"email", "sms", "push"}
}

// NewNotifier creates a notifier with default settings.
func NewNotifier(kind string) (Notifier, error) {
	switch strings.ToLower(kind) {
	case "email":
		return EmailNotifier{SMTPServer: "smtp.gmail.com", Port: 587}, nil
	case "sms":
		return SMSNotifier{APIKey: "default_key"}, nil
	case "push":
		return PushNotifier{AppID: "com.company.app"}, nil
	}
	return nil, fmt.Errorf("unknown notification type: %s (supported: %s)", kind, strings.Join(NotifierKinds(), ", "))
}
