package monitoring

import (
	"os"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/nvalente/bloglist-be/internal/services"
	"github.com/nvalente/bloglist-be/internal/stats"
)

// Reporter periodically logs a snapshot of the service: user/blog/like
// totals and the process's own resource usage.
type Reporter struct {
	users services.UserServiceProvider
	blogs services.BlogServiceProvider
	cron  *cron.Cron
}

// NewReporter creates a Reporter.
func NewReporter(users services.UserServiceProvider, blogs services.BlogServiceProvider) *Reporter {
	return &Reporter{users: users, blogs: blogs, cron: cron.New()}
}

// Run starts the periodic snapshots.
func (r *Reporter) Run() error {
	log.Info().Msg("Starting background snapshot reporter...")
	if _, err := r.cron.AddFunc("@every 1m", r.snapshot); err != nil {
		return err
	}
	r.cron.Start()
	return nil
}

// Stop halts the periodic snapshots.
func (r *Reporter) Stop() {
	log.Info().Msg("Stopping background snapshot reporter.")
	r.cron.Stop()
}

// snapshot logs one line of domain totals and process usage.
func (r *Reporter) snapshot() {
	users, err := r.users.GetAllUsers()
	if err != nil {
		log.Error().Err(err).Msg("Snapshot: failed to load users")
		return
	}
	blogs, err := r.blogs.GetAllBlogs()
	if err != nil {
		log.Error().Err(err).Msg("Snapshot: failed to load blogs")
		return
	}

	event := log.Info().
		Int("users", len(users)).
		Int("blogs", len(blogs)).
		Int("total_likes", stats.TotalLikes(blogs))

	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if mem, err := proc.MemoryInfo(); err == nil {
			event = event.Uint64("rss_bytes", mem.RSS)
		}
		if cpu, err := proc.CPUPercent(); err == nil {
			event = event.Float64("cpu_percent", cpu)
		}
	}

	event.Msg("Service snapshot")
}
