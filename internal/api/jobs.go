package api

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sort"
	"sync"
	"time"
)

// Job tracks one asynchronous scan execution submitted over the API.
type Job struct {
	ID         string     `json:"id"`
	Type       string     `json:"type"`
	Status     string     `json:"status"`
	ScanID     string     `json:"scan_id,omitempty"`
	StartedAt  *time.Time `json:"started_at,omitempty"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	Error      string     `json:"error,omitempty"`
}

// JobRequest asks the server to execute an existing scan in the background.
type JobRequest struct {
	Type   string `json:"type"`
	ScanID string `json:"scan_id"`
}

// JobManager keeps in-memory job records and fans out updates to stream
// subscribers. Records are bounded; finished jobs beyond the cap are
// evicted oldest first.
type JobManager struct {
	mu          sync.RWMutex
	jobs        map[string]*Job
	subscribers map[chan Job]struct{}
	maxJobs     int
}

func NewJobManager() *JobManager {
	m := &JobManager{
		jobs:        make(map[string]*Job),
		subscribers: make(map[chan Job]struct{}),
		maxJobs:     1000,
	}
	go m.cleanupLoop()
	return m
}

func (m *JobManager) CreateJob(jobType, scanID string) *Job {
	m.mu.Lock()
	defer m.mu.Unlock()
	job := &Job{
		ID:     generateJobID(),
		Type:   jobType,
		Status: "pending",
		ScanID: scanID,
	}
	m.jobs[job.ID] = job
	m.broadcast(*job)
	return job
}

func (m *JobManager) UpdateJob(id string, update func(*Job)) *Job {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.jobs[id]
	if !ok {
		return nil
	}
	update(job)
	m.broadcast(*job)
	return job
}

func (m *JobManager) GetJob(id string) *Job {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if job, ok := m.jobs[id]; ok {
		copy := *job
		return &copy
	}
	return nil
}

func (m *JobManager) ListJobs(limit int) []Job {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if limit <= 0 || limit > len(m.jobs) {
		limit = len(m.jobs)
	}
	jobs := make([]Job, 0, len(m.jobs))
	for _, job := range m.jobs {
		jobs = append(jobs, *job)
	}

	// Newest first; unstarted jobs fall back to ID ordering.
	sort.Slice(jobs, func(i, j int) bool {
		if jobs[i].StartedAt == nil && jobs[j].StartedAt == nil {
			return jobs[i].ID > jobs[j].ID
		}
		if jobs[i].StartedAt == nil {
			return false
		}
		if jobs[j].StartedAt == nil {
			return true
		}
		return jobs[i].StartedAt.After(*jobs[j].StartedAt)
	})

	if limit < len(jobs) {
		jobs = jobs[:limit]
	}
	return jobs
}

func (m *JobManager) Subscribe() (chan Job, func()) {
	ch := make(chan Job, 10)
	m.mu.Lock()
	m.subscribers[ch] = struct{}{}
	m.mu.Unlock()
	return ch, func() {
		m.mu.Lock()
		if _, ok := m.subscribers[ch]; ok {
			delete(m.subscribers, ch)
			close(ch)
		}
		m.mu.Unlock()
	}
}

func (m *JobManager) broadcast(job Job) {
	for ch := range m.subscribers {
		select {
		case ch <- job:
		default:
			// Slow consumer; drop the update rather than block the scan.
		}
	}
}

func generateJobID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("job_%d", time.Now().UnixNano())
	}
	return "job_" + hex.EncodeToString(b)
}

// cleanupLoop evicts old finished jobs once the record count exceeds the cap.
func (m *JobManager) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		m.mu.Lock()

		if len(m.jobs) <= m.maxJobs {
			m.mu.Unlock()
			continue
		}

		type jobWithTime struct {
			id   string
			time time.Time
		}
		var finished []jobWithTime
		for id, job := range m.jobs {
			if job.Status == "done" || job.Status == "error" {
				finishTime := time.Now()
				if job.FinishedAt != nil {
					finishTime = *job.FinishedAt
				}
				finished = append(finished, jobWithTime{id: id, time: finishTime})
			}
		}

		sort.Slice(finished, func(i, j int) bool {
			return finished[i].time.Before(finished[j].time)
		})

		toRemove := len(m.jobs) - m.maxJobs
		if toRemove > len(finished) {
			toRemove = len(finished)
		}
		for i := 0; i < toRemove; i++ {
			delete(m.jobs, finished[i].id)
		}

		m.mu.Unlock()
	}
}

// SetMaxJobs configures how many job records to retain in memory.
func (m *JobManager) SetMaxJobs(max int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if max > 0 {
		m.maxJobs = max
	}
}
