package patterns

import (
	"fmt"
	"strings"
)

// Computer is the product assembled by ComputerBuilder.
type Computer struct {
	CPU      string
	Memory   string
	Storage  string
	GPU      string
	WiFi     bool
	Keyboard string
}

func (c Computer) String() string {
	parts := []string{fmt.Sprintf("CPU: %s", c.CPU), fmt.Sprintf("Memory: %s", c.Memory)}
	if c.Storage != "" {
		parts = append(parts, fmt.Sprintf("Storage: %s", c.Storage))
	}
	if c.GPU != "" {
		parts = append(parts, fmt.Sprintf("GPU: %s", c.GPU))
	}
	if c.WiFi {
		parts = append(parts, "WiFi")
	}
	if c.Keyboard != "" {
		parts = append(parts, fmt.Sprintf("Keyboard: %s", c.Keyboard))
	}
	return "Computer(" + strings.Join(parts, ", ") + ")"
}

// ComputerBuilder assembles a Computer with a fluent interface.
type ComputerBuilder struct {
	computer Computer
}

// NewComputerBuilder creates an empty builder.
func NewComputerBuilder() *ComputerBuilder {
	return &ComputerBuilder{}
}

func (b *ComputerBuilder) SetCPU(cpu string) *ComputerBuilder {
	b.computer.CPU = cpu
	return b
}

func (b *ComputerBuilder) SetMemory(memory string) *ComputerBuilder {
	b.computer.Memory = memory
	return b
}

func (b *ComputerBuilder) SetStorage(storage string) *ComputerBuilder {
	b.computer.Storage = storage
	return b
}

func (b *ComputerBuilder) SetGPU(gpu string) *ComputerBuilder {
	b.computer.GPU = gpu
	return b
}

func (b *ComputerBuilder) SetKeyboard(keyboard string) *ComputerBuilder {
	b.computer.Keyboard = keyboard
	return b
}

func (b *ComputerBuilder) EnableWiFi() *ComputerBuilder {
	b.computer.WiFi = true
	return b
}

// Reset discards everything set so far.
func (b *ComputerBuilder) Reset() *ComputerBuilder {
	b.computer = Computer{}
	return b
}

// Build returns the assembled computer. The builder can keep being used;
// later calls do not affect computers already built.
func (b *ComputerBuilder) Build() Computer {
	return b.computer
}
