package views

import tea "github.com/charmbracelet/bubbletea"

// Job is presenter work run off the bubbletea update loop
type Job func() tea.Msg

// resultMsg carries a finished job's message back to the update loop
type resultMsg struct {
	msg tea.Msg
}

// Runner executes jobs one at a time, in submission order, so key presses
// reach the presenter in the order they were typed even while a slide is
// rendering.
type Runner struct {
	jobs    chan Job
	results chan tea.Msg
}

// NewRunner starts the worker goroutine
func NewRunner() *Runner {
	r := &Runner{
		jobs:    make(chan Job, 64),
		results: make(chan tea.Msg, 64),
	}
	go r.loop()
	return r
}

func (r *Runner) loop() {
	for job := range r.jobs {
		r.results <- job()
	}
	close(r.results)
}

// Submit queues a job. It must be called from Update, never from a tea.Cmd,
// to keep ordering.
func (r *Runner) Submit(job Job) {
	r.jobs <- job
}

// Next waits for the next finished job
func (r *Runner) Next() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-r.results
		if !ok {
			return nil
		}
		return resultMsg{msg: msg}
	}
}

// Stop ends the worker once queued jobs have run
func (r *Runner) Stop() {
	close(r.jobs)
}
