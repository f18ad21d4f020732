package scanner

import (
	"net"
	"sync"
	"time"
)

// sweepWorkers bounds how many ports are probed concurrently: a bounded
// goroutine pool fed by a shared job channel stands in for a work-stealing
// thread pool.
const sweepWorkers = 64

type sweepJob struct {
	port       uint16
	techniques []Technique
}

// Sweep runs target across ports — the whole common-ports catalog, or an
// explicit list — through techniques in parallel, collecting every
// non-closed result. elapsed measures the full sweep, start to
// finish.
func Sweep(target net.IP, ports PortSpec, techniques []Technique) ScanResult {
	start := time.Now()

	jobs := buildJobs(ports, techniques)

	workers := sweepWorkers
	if workers > len(jobs) {
		workers = len(jobs)
	}
	if workers == 0 {
		return ScanResult{Elapsed: time.Since(start)}
	}

	jobCh := make(chan sweepJob)
	resultCh := make(chan *PortResult)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobCh {
				resultCh <- scanJob(target, job)
			}
		}()
	}

	go func() {
		defer close(jobCh)
		for _, j := range jobs {
			jobCh <- j
		}
	}()

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	var out []PortResult
	for r := range resultCh {
		if r != nil {
			out = append(out, *r)
		}
	}

	return ScanResult{Elapsed: time.Since(start), Ports: out}
}

// buildJobs resolves, per port, which technique(s) get tried and in what
// order. In All mode each catalog entry picks at most one
// technique: the first whose kind matches the entry's protocol tag. In
// Selected mode every port tries the full technique list, in input order —
// the caller opted those ports in explicitly, so no protocol filtering
// applies.
func buildJobs(ports PortSpec, techniques []Technique) []sweepJob {
	if ports.All {
		catalog := CommonPorts()
		jobs := make([]sweepJob, 0, len(catalog))
		for _, entry := range catalog {
			chosen := selectForCatalogEntry(entry, techniques)
			if len(chosen) == 0 {
				continue
			}
			jobs = append(jobs, sweepJob{port: entry.Port, techniques: chosen})
		}
		return jobs
	}

	jobs := make([]sweepJob, 0, len(ports.Ports))
	for _, p := range ports.Ports {
		jobs = append(jobs, sweepJob{port: p, techniques: techniques})
	}
	return jobs
}

func scanJob(target net.IP, job sweepJob) *PortResult {
	addr := &net.TCPAddr{IP: target, Port: int(job.port)}
	return firstNonClosed(addr, job.techniques)
}

// firstNonClosed tries techniques in order, skipping past any that report
// Closed (a definitive "not this one" from that probe) and stopping at the
// first that reports Open/Filtered/Unknown: Closed continues the search,
// anything else wins immediately.
func firstNonClosed(addr *net.TCPAddr, techniques []Technique) *PortResult {
	for _, t := range techniques {
		state := t.Executor.Scan(addr)
		if state == stateClosed {
			continue
		}
		return &PortResult{Port: uint16(addr.Port), State: state, Kind: t.Kind}
	}
	return nil
}

func matchesProtocol(kind ScanType, proto Protocol) bool {
	switch proto {
	case ProtoBoth:
		return true
	case ProtoTCP:
		return kind == ScanTCP || kind == ScanSYN
	case ProtoUDP:
		return kind == ScanUDP
	default:
		return false
	}
}

func selectForCatalogEntry(entry CommonPortEntry, techniques []Technique) []Technique {
	for _, t := range techniques {
		if matchesProtocol(t.Kind, entry.Protocol) {
			return []Technique{t}
		}
	}
	return nil
}
