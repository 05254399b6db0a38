// Package config defines the HCL scenario model for the demo runner: pool
// sizing plus the workloads to submit. Expressions in scenario files are
// evaluated against a small set of host facts (currently `cpus`), so a
// scenario can say `workers = cpus * 2` instead of hardcoding a count.
package config

import (
	"fmt"
)

// Scenario is the root of a scenario file.
type Scenario struct {
	Pool      *Pool       `hcl:"pool,block"`
	Workloads []*Workload `hcl:"workload,block"`
}

// Pool sizes the worker pool and its per-worker run queues.
type Pool struct {
	Workers       int `hcl:"workers,optional"`
	QueueCapacity int `hcl:"queue_capacity,optional"`
	StackSize     int `hcl:"stack_size,optional"`
}

// Workload describes one batch of identical fibers: how many to submit and
// how many times each suspends before finishing.
type Workload struct {
	Name   string `hcl:"name,label"`
	Fibers int    `hcl:"fibers"`
	Yields int    `hcl:"yields,optional"`
}

// Validate rejects scenarios the scheduler could not act on. Queue capacity
// is left to the scheduler's own validation so the power-of-two rule lives
// in one place.
func (s *Scenario) Validate() error {
	if len(s.Workloads) == 0 {
		return fmt.Errorf("config: scenario declares no workload blocks")
	}
	seen := make(map[string]bool, len(s.Workloads))
	for _, w := range s.Workloads {
		if seen[w.Name] {
			return fmt.Errorf("config: duplicate workload %q", w.Name)
		}
		seen[w.Name] = true
		if w.Fibers <= 0 {
			return fmt.Errorf("config: workload %q: fibers must be positive, got %d", w.Name, w.Fibers)
		}
		if w.Yields < 0 {
			return fmt.Errorf("config: workload %q: yields must not be negative, got %d", w.Name, w.Yields)
		}
	}
	return nil
}
