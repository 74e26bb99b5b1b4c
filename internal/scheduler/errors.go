package scheduler

import (
	"errors"
	"fmt"
)

var (
	ErrJobRunning = errors.New("job já em andamento")
	ErrUnknownJob = errors.New("job desconhecido")
)

// SchedulerJobError envolve falhas e pânicos de um job agendado.
// Nunca derruba o processo: é apenas registrada no log e no status do job.
type SchedulerJobError struct {
	Job   string
	Cause any
}

func (e *SchedulerJobError) Error() string {
	return fmt.Sprintf("erro no job %s: %v", e.Job, e.Cause)
}

func (e *SchedulerJobError) Unwrap() error {
	if err, ok := e.Cause.(error); ok {
		return err
	}
	return nil
}
