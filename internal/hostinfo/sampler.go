package hostinfo

import (
	"errors"
	"fmt"

	"github.com/prometheus/procfs"
)

// ErrSampleUnavailable is returned when process statistics cannot be read.
var ErrSampleUnavailable = errors.New("process sample unavailable")

// ProcessSample is a point-in-time reading of process resource usage.
type ProcessSample struct {
	ResidentMemoryBytes float64
	LoadAverage1        float64
}

//go:generate mockgen -source=sampler.go -destination=./mocks/sampler_mock.go -package=mocks
type Sampler interface {
	// Sample reads fresh values from the operating system on every call.
	Sample() (ProcessSample, error)
}

type procfsSampler struct {
	fs  procfs.FS
	err error
}

// NewSampler returns a Sampler backed by the proc filesystem at mountPoint.
// When the filesystem cannot be opened every Sample call fails with
// ErrSampleUnavailable.
func NewSampler(mountPoint string) Sampler {
	fs, err := procfs.NewFS(mountPoint)
	return &procfsSampler{fs: fs, err: err}
}

func (s *procfsSampler) Sample() (ProcessSample, error) {
	if s.err != nil {
		return ProcessSample{}, fmt.Errorf("%w: %w", ErrSampleUnavailable, s.err)
	}

	proc, err := s.fs.Self()
	if err != nil {
		return ProcessSample{}, fmt.Errorf("%w: read self: %w", ErrSampleUnavailable, err)
	}
	stat, err := proc.Stat()
	if err != nil {
		return ProcessSample{}, fmt.Errorf("%w: read process stat: %w", ErrSampleUnavailable, err)
	}
	load, err := s.fs.LoadAvg()
	if err != nil {
		return ProcessSample{}, fmt.Errorf("%w: read load average: %w", ErrSampleUnavailable, err)
	}

	return ProcessSample{
		ResidentMemoryBytes: float64(stat.ResidentMemory()),
		LoadAverage1:        load.Load1,
	}, nil
}
