package statistics

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
)

// Statistics contains the counters for one icon generation run.
type Statistics struct {
	EntriesFound        int64
	NotRegularSkipped   int64
	ExistingSkipped     int64
	UnrecognizedSkipped int64
	IconsWritten        int64
	BytesWritten        int64
	DirectoriesCreated  int64

	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

// NewStatistics returns a new Statistics instance.
func NewStatistics() *Statistics {
	return &Statistics{
		StartTime: time.Now(),
	}
}

// IncrementEntriesFound increases the count of directory entries seen by 1.
func (s *Statistics) IncrementEntriesFound() {
	atomic.AddInt64(&s.EntriesFound, 1)
}

// IncrementNotRegularSkipped increases the count of skipped non-file entries by 1.
func (s *Statistics) IncrementNotRegularSkipped() {
	atomic.AddInt64(&s.NotRegularSkipped, 1)
}

// IncrementExistingSkipped increases the count of files whose icon already existed by 1.
func (s *Statistics) IncrementExistingSkipped() {
	atomic.AddInt64(&s.ExistingSkipped, 1)
}

// IncrementUnrecognizedSkipped increases the count of files that are not images by 1.
func (s *Statistics) IncrementUnrecognizedSkipped() {
	atomic.AddInt64(&s.UnrecognizedSkipped, 1)
}

// IncrementIconsWritten increases the count of generated icons by 1.
func (s *Statistics) IncrementIconsWritten() {
	atomic.AddInt64(&s.IconsWritten, 1)
}

// IncrementDirectoriesCreated increases the count of created directories by 1.
func (s *Statistics) IncrementDirectoriesCreated() {
	atomic.AddInt64(&s.DirectoriesCreated, 1)
}

// AddBytesWritten adds n to the total size of written icons.
func (s *Statistics) AddBytesWritten(n int64) {
	atomic.AddInt64(&s.BytesWritten, n)
}

// Skipped returns the total number of entries that produced no icon.
func (s *Statistics) Skipped() int64 {
	return atomic.LoadInt64(&s.NotRegularSkipped) +
		atomic.LoadInt64(&s.ExistingSkipped) +
		atomic.LoadInt64(&s.UnrecognizedSkipped)
}

// Finalize records the end time and duration.
func (s *Statistics) Finalize() {
	s.EndTime = time.Now()
	s.Duration = s.EndTime.Sub(s.StartTime)
}

// Fields returns the counters as structured log fields.
func (s *Statistics) Fields() logrus.Fields {
	return logrus.Fields{
		"entries":             atomic.LoadInt64(&s.EntriesFound),
		"written":             atomic.LoadInt64(&s.IconsWritten),
		"skipped":             s.Skipped(),
		"skipped_not_file":    atomic.LoadInt64(&s.NotRegularSkipped),
		"skipped_existing":    atomic.LoadInt64(&s.ExistingSkipped),
		"skipped_unsupported": atomic.LoadInt64(&s.UnrecognizedSkipped),
		"bytes":               atomic.LoadInt64(&s.BytesWritten),
		"duration":            s.Duration.String(),
	}
}

// GetSummary returns a formatted summary of all statistics.
func (s *Statistics) GetSummary() string {
	return fmt.Sprintf(`Icon Generation Summary:

Entries:
		Found: %d
		Written: %d
		Not a file: %d
		Icon exists: %d
		Not an image: %d

Output:
		Bytes Written: %s
		Directories Created: %d
		Duration: %v`,
		atomic.LoadInt64(&s.EntriesFound),
		atomic.LoadInt64(&s.IconsWritten),
		atomic.LoadInt64(&s.NotRegularSkipped),
		atomic.LoadInt64(&s.ExistingSkipped),
		atomic.LoadInt64(&s.UnrecognizedSkipped),
		humanize.Bytes(uint64(atomic.LoadInt64(&s.BytesWritten))),
		atomic.LoadInt64(&s.DirectoriesCreated),
		s.Duration)
}
