//go:build !pprof

package profile

// Enabled reports whether profiling was compiled in.
func Enabled() bool { return false }

// Modes returns the supported profiling modes, none without build tag pprof.
func Modes() []string { return nil }

func start(Profiler) Stopper { return ignore{} }
