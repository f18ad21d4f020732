package api

import (
	"errors"
	"log"
	"time"

	"pscan/resolver"
	"pscan/scanner"
)

// StartWorkers launches background goroutines that pop queued scan tasks
// and run them through scanner.Sweep — the same entry point the CLI calls.
func StartWorkers(store TaskStore, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go workerLoop(store)
	}
}

func workerLoop(store TaskStore) {
	for {
		taskID, err := store.PopFromQueue()
		if err != nil {
			log.Printf("worker: failed to pop task: %v", err)
			time.Sleep(time.Second)
			continue
		}

		task, err := store.GetTask(taskID)
		if err != nil {
			if err == ErrTaskNotFound {
				log.Printf("worker: task %s disappeared", taskID)
				continue
			}
			log.Printf("worker: failed to load task %s: %v", taskID, err)
			continue
		}

		task.Status = "running"
		task.Error = ""
		task.Results = nil
		task.CompletedAt = nil
		if err := store.UpdateTask(task); err != nil {
			log.Printf("worker: failed to set task %s running: %v", taskID, err)
			continue
		}

		runTask(task, store)
	}
}

// runTask resolves the target, validates the requested techniques, and
// runs the sweep, persisting whichever outcome results. Fatal setup
// failures inside scanner.Sweep (missing interface, gateway lookup,
// datalink open) are not caught here — they abort the whole process,
// daemon included, not just this task.
func runTask(task *ScanTask, store TaskStore) {
	if requiresSyn(task.Techniques) && !scanner.IsSuperuser() {
		failTask(task, store, &scanner.ScanError{
			Kind: scanner.NormalUserRequired,
			Msg:  "SYN scanning needs CAP_NET_RAW; pscand must run as root",
		})
		return
	}

	ip, err := resolver.Lookup(task.Target)
	if err != nil {
		failTask(task, store, err)
		return
	}

	portSpec, err := parsePorts(task.Ports)
	if err != nil {
		failTask(task, store, err)
		return
	}

	techniques, err := parseTechniques(task.Techniques)
	if err != nil {
		failTask(task, store, err)
		return
	}
	if len(techniques) == 0 {
		failTask(task, store, errors.New("no scan techniques selected"))
		return
	}

	result := scanner.Sweep(ip, portSpec, techniques)

	task.Status = "completed"
	task.Results = toAPIResults(result)
	task.ElapsedSecs = result.Elapsed.Seconds()
	now := time.Now().UTC()
	task.CompletedAt = &now

	if err := store.UpdateTask(task); err != nil {
		log.Printf("worker: failed to update task %s: %v", task.ID, err)
	}
}

func toAPIResults(result scanner.ScanResult) []PortResult {
	out := make([]PortResult, 0, len(result.Ports))
	for _, p := range result.Ports {
		out = append(out, PortResult{
			Port:   p.Port,
			State:  p.State.String(),
			Method: p.Kind.String(),
		})
	}
	return out
}

func failTask(task *ScanTask, store TaskStore, err error) {
	log.Printf("worker: task %s failed: %v", task.ID, err)
	task.Status = "failed"
	task.Error = err.Error()
	task.Results = nil
	now := time.Now().UTC()
	task.CompletedAt = &now
	if updateErr := store.UpdateTask(task); updateErr != nil {
		log.Printf("worker: failed to persist failed task %s: %v", task.ID, updateErr)
	}
}
