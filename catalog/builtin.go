package catalog

import (
	"embed"
	"io/fs"
	"sync"

	"github.com/ardnew/dslpatch/patch"
)

// NvidiaTuringPatch identifies the built-in GPU spoofing patch.
const NvidiaTuringPatch = "nvidiaTuringPatch"

//go:embed templates
var embedded embed.FS

// Templates holds the templates of the built-in entries, keyed by the
// entries' Template names.
//
//nolint:gochecknoglobals
var Templates = func() fs.FS {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		panic(err)
	}

	return sub
}()

// Builtin returns the catalog of entries shipped with dslpatch.
//
//nolint:gochecknoglobals
var Builtin = sync.OnceValue(func() *Catalog {
	c, err := New(
		&patch.Entry{
			ID:          NvidiaTuringPatch,
			Template:    "SSDT-GPU-SPOOF.dslpatch",
			Description: "Spoof device-id and model of NVIDIA Turing GPUs",
			Match:       `gpu?.architecture == "Turing"`,
			Types: patch.Types{
				"gpu": patch.Branch(patch.Types{
					"pciPath":  patch.Leaf(patch.TagText),
					"deviceId": patch.Leaf(patch.TagByteSequence),
					"model":    patch.Leaf(patch.TagText),
				}),
			},
		},
	)
	if err != nil {
		panic(err)
	}

	return c
})
