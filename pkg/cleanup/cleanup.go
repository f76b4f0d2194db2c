package cleanup

import (
	"sync"

	"go.uber.org/zap"
)

type Job struct {
	Name string
	F    func() error
}

var (
	mu   sync.Mutex
	jobs []*Job
)

func Register(j *Job) {
	mu.Lock()
	jobs = append(jobs, j)
	mu.Unlock()
}

// CleanUp runs registered jobs in reverse registration order and forgets them.
func CleanUp(logger *zap.Logger) {
	mu.Lock()
	pending := jobs
	jobs = nil
	mu.Unlock()
	if logger == nil {
		logger = zap.NewNop()
	}
	for i := len(pending) - 1; i >= 0; i-- {
		j := pending[i]
		if err := j.F(); err != nil {
			logger.Warn("cleanup job failed", zap.String("job", j.Name), zap.Error(err))
			continue
		}
		logger.Debug("cleanup job done", zap.String("job", j.Name))
	}
}
