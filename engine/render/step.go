package render

import "fmt"

// StepKind is what a render step identifier must provide: usable as a map key
// and nameable in error messages.
type StepKind interface {
	comparable
	fmt.Stringer
}

// SampledStep is a step that knows the sampler uniform its texture is bound
// to during the composite pass.
type SampledStep interface {
	StepKind
	SamplerName() string
}

// Step is the default step set: diffuse color and emissive glow.
type Step uint8

const (
	Diffuse Step = iota
	Emissive
)

// Steps returns every default step, in declaration order.
func Steps() []Step { return []Step{Diffuse, Emissive} }

func (s Step) String() string {
	switch s {
	case Diffuse:
		return "Diffuse"
	case Emissive:
		return "Emissive"
	default:
		return fmt.Sprintf("Step(%d)", uint8(s))
	}
}

func (s Step) SamplerName() string {
	switch s {
	case Diffuse:
		return "diffuse_texture"
	case Emissive:
		return "emissive_texture"
	default:
		panic(fmt.Sprintf("render: no sampler for %v", s))
	}
}
