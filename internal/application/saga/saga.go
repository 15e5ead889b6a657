// Package saga ejecuta operaciones de varios pasos contra el backend con acciones compensatorias.
// Si un paso falla, los pasos ya completados se compensan en orden inverso.
package saga

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/comandas-bff/internal/domain"
	"github.com/jhoicas/comandas-bff/pkg/logger"
)

// Step paso de la saga. Compensate puede ser nil: el paso no tiene vuelta atrás.
type Step struct {
	Name       string
	Action     func(ctx context.Context) error
	Compensate func(ctx context.Context) error
}

// Saga lista ordenada de pasos.
type Saga struct {
	name  string
	steps []Step
	log   *logger.Logger
}

// New crea una saga vacía.
func New(name string, log *logger.Logger) *Saga {
	if log == nil {
		log = logger.Nop()
	}
	return &Saga{name: name, log: log}
}

// Step agrega un paso al final.
func (s *Saga) Step(name string, action, compensate func(ctx context.Context) error) *Saga {
	s.steps = append(s.steps, Step{Name: name, Action: action, Compensate: compensate})
	return s
}

// CompensationFailure compensación que no se pudo ejecutar.
type CompensationFailure struct {
	Step string
	Err  error
}

// ExecutionError resultado de una saga que no terminó.
type ExecutionError struct {
	Saga       string
	FailedStep string
	Cause      error
	// Completed pasos que se ejecutaron antes de la falla.
	Completed []string
	// Compensated pasos revertidos con éxito.
	Compensated []string
	// NotCompensated pasos que quedaron aplicados (sin compensación o con compensación fallida).
	NotCompensated []string
	Failures       []CompensationFailure
}

func (e *ExecutionError) Error() string {
	msg := fmt.Sprintf("saga %s: falló el paso %q: %v", e.Saga, e.FailedStep, e.Cause)
	if len(e.NotCompensated) > 0 {
		msg += fmt.Sprintf(" (quedaron aplicados: %s)", strings.Join(e.NotCompensated, ", "))
	}
	return msg
}

// Partial indica que algún paso completado quedó aplicado: el estado en el backend es intermedio.
func (e *ExecutionError) Partial() bool { return len(e.NotCompensated) > 0 }

// Unwrap expone la causa y, si quedó a medias, domain.ErrPartialFailure.
func (e *ExecutionError) Unwrap() []error {
	if e.Partial() {
		return []error{domain.ErrPartialFailure, e.Cause}
	}
	return []error{e.Cause}
}

// Execute corre los pasos en orden. Ante una falla compensa los completados en orden inverso
// (con un contexto que no se cancela junto con la petición) y devuelve *ExecutionError.
func (s *Saga) Execute(ctx context.Context) error {
	done := make([]Step, 0, len(s.steps))
	for _, st := range s.steps {
		if err := st.Action(ctx); err != nil {
			s.log.Warn().Err(err).Str("saga", s.name).Str("step", st.Name).Msg("paso de saga falló")
			return s.rollback(ctx, st.Name, err, done)
		}
		done = append(done, st)
	}
	return nil
}

func (s *Saga) rollback(ctx context.Context, failed string, cause error, done []Step) *ExecutionError {
	execErr := &ExecutionError{Saga: s.name, FailedStep: failed, Cause: cause}
	for _, st := range done {
		execErr.Completed = append(execErr.Completed, st.Name)
	}

	cctx := context.WithoutCancel(ctx)
	for i := len(done) - 1; i >= 0; i-- {
		st := done[i]
		if st.Compensate == nil {
			execErr.NotCompensated = append(execErr.NotCompensated, st.Name)
			continue
		}
		if err := st.Compensate(cctx); err != nil {
			s.log.Error().Err(err).Str("saga", s.name).Str("step", st.Name).Msg("compensación falló")
			execErr.NotCompensated = append(execErr.NotCompensated, st.Name)
			execErr.Failures = append(execErr.Failures, CompensationFailure{Step: st.Name, Err: err})
			continue
		}
		s.log.Info().Str("saga", s.name).Str("step", st.Name).Msg("paso compensado")
		execErr.Compensated = append(execErr.Compensated, st.Name)
	}
	return execErr
}
