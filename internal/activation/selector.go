package activation

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/dxmodel/internal/ctxlog"
	"github.com/vk/dxmodel/internal/descriptor"
	"github.com/vk/dxmodel/internal/problem"
)

// Selector is the default descriptor.ProfileSelector.
type Selector struct{}

// New returns a Selector.
func New() *Selector {
	return &Selector{}
}

// IsActive evaluates p.Activation against activation. A profile with no
// Activation block is inactive by default (explicit activation is
// required unless ActiveByDefault is set), mirroring the original's rule
// that an unconditional profile never auto-activates.
func (s *Selector) IsActive(ctx context.Context, p *descriptor.Profile, activation *descriptor.ActivationContext, problems *problem.Collector) bool {
	log := ctxlog.FromContext(ctx)

	if activation.ActiveIDs[p.ID] {
		log.Debug("profile forced active", "profile", p.ID)
		return true
	}
	if activation.InactiveIDs[p.ID] {
		log.Debug("profile forced inactive", "profile", p.ID)
		return false
	}

	a := p.Activation
	if a == nil {
		return false
	}

	if a.Property != nil && !evalProperty(a.Property, activation) {
		return false
	}
	if a.File != nil && !evalFile(a.File, activation) {
		return false
	}
	if a.Property == nil && a.File == nil {
		return a.ActiveByDefault
	}
	return true
}

func evalProperty(cond *descriptor.ActivationProperty, activation *descriptor.ActivationContext) bool {
	name := cond.Name
	negate := strings.HasPrefix(name, "!")
	if negate {
		name = strings.TrimPrefix(name, "!")
	}
	value, present := activation.Lookup(name)

	if cond.Value == "" {
		if negate {
			return !present
		}
		return present
	}

	wantNegate := strings.HasPrefix(cond.Value, "!")
	want := strings.TrimPrefix(cond.Value, "!")
	matches := present && value == want
	if negate || wantNegate {
		return !matches
	}
	return matches
}

func evalFile(cond *descriptor.ActivationFile, activation *descriptor.ActivationContext) bool {
	if cond.Exists != "" {
		if !exists(resolve(cond.Exists, activation.ProjectDirectory)) {
			return false
		}
	}
	if cond.Missing != "" {
		if exists(resolve(cond.Missing, activation.ProjectDirectory)) {
			return false
		}
	}
	return cond.Exists != "" || cond.Missing != ""
}

func resolve(path, projectDirectory string) string {
	if filepath.IsAbs(path) || projectDirectory == "" {
		return path
	}
	return filepath.Join(projectDirectory, path)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

var _ descriptor.ProfileSelector = (*Selector)(nil)
