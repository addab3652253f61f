package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/alexanderramin/steelbuild/internal/domain"
)

// MonitorCriticalEventsFunction is the registered name of the monitor function.
const MonitorCriticalEventsFunction = "monitorCriticalEvents"

type function func(ctx context.Context) (any, error)

type functionService struct {
	registry map[string]function
}

func NewFunctionService(monitor MonitorService) FunctionService {
	return &functionService{registry: map[string]function{
		MonitorCriticalEventsFunction: func(ctx context.Context) (any, error) {
			return monitor.MonitorCriticalEvents(ctx)
		},
	}}
}

func (s *functionService) Names() []string {
	names := make([]string, 0, len(s.registry))
	for name := range s.registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *functionService) Invoke(ctx context.Context, name string) (any, error) {
	fn, ok := s.registry[name]
	if !ok {
		return nil, fmt.Errorf("function %q: %w", name, domain.ErrNotFound)
	}
	return fn(ctx)
}
