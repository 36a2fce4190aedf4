// Package profile provides optional runtime profiling of dslpatch.
//
// Profiling is compiled in only with the "pprof" build tag ([Tag]) and is
// backed by [github.com/pkg/profile]. Without the tag, [Profiler.Start]
// returns a no-op and [Modes] is empty.
//
// A profiler is configured and started with [Profiler]:
//
//	p := profile.Profiler{Mode: "cpu", Path: "/tmp/profiles"}
//	defer p.Start().Stop()
//
// Profiles are written to Path with names matching the mode, for example
// cpu.pprof or mem.pprof. The command line exposes the same settings:
//
//	go build -tags pprof ./
//	./dslpatch --pprof-mode=cpu --pprof-dir=./profiles patch -v values.yaml
//	go tool pprof -http=: ./profiles/cpu.pprof
//
// The default output directory is the "pprof" subdirectory of the dslpatch
// cache directory. Building with the tag also registers the [net/http/pprof]
// handlers on [net/http.DefaultServeMux].
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
