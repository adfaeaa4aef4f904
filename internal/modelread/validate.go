package modelread

import (
	"context"

	"github.com/vk/dxmodel/internal/descriptor"
	"github.com/vk/dxmodel/internal/problem"
)

// Validator is the default descriptor.ModelValidator: checks the
// invariants that must hold at every validation gate, escalating checks
// introduced at later gates (V20, V30, ...) only when the request's
// validation level has reached them.
type Validator struct{}

// NewValidator returns a Validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate reports violations of invariant 1 (GAV derivability), checks
// dependencies declare a groupId and artifactId, and — at V20 and
// above — that every profile declares an id.
func (v *Validator) Validate(ctx context.Context, d *descriptor.Descriptor, level problem.Gate, problems *problem.Collector) {
	coords := d.EffectiveCoordinates()
	if coords.GroupID == "" {
		problems.Add(problem.Problem{Severity: problem.Error, Gate: problem.Base, Message: "'groupId' is missing"})
	}
	if d.ArtifactID == "" {
		problems.Add(problem.Problem{Severity: problem.Error, Gate: problem.Base, Message: "'artifactId' is missing"})
	}
	if coords.Version == "" {
		problems.Add(problem.Problem{Severity: problem.Error, Gate: problem.Base, Message: "'version' is missing"})
	}

	for i, dep := range d.Dependencies {
		validateDependency(dep, i, problems)
	}

	if level >= problem.V20 {
		for _, p := range d.Profiles {
			if p.ID == "" {
				problems.Add(problem.Problem{Severity: problem.Error, Gate: problem.V20, Message: "profile id is missing"})
			}
		}
	}
}

func validateDependency(dep *descriptor.Dependency, index int, problems *problem.Collector) {
	if dep.GroupID == "" {
		problems.Add(problem.Problem{Severity: problem.Error, Gate: problem.Base, Message: "dependency.groupId is missing"})
	}
	if dep.ArtifactID == "" {
		problems.Add(problem.Problem{Severity: problem.Error, Gate: problem.Base, Message: "dependency.artifactId is missing"})
	}
}

var _ descriptor.ModelValidator = (*Validator)(nil)
