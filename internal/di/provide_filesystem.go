package di

import (
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

// hostFS is the native filesystem. Absolute paths are used as is and relative
// paths resolve against the working directory.
type hostFS struct {
	osfs.ChrootOS
}

func (h *hostFS) Chroot(path string) (billy.Filesystem, error) {
	return osfs.New(path), nil
}

func (h *hostFS) Root() string {
	return "/"
}

// ProvideFilesystem returns the filesystem artifacts are read from and the
// template configuration is written to
func ProvideFilesystem() billy.Filesystem {
	return &hostFS{}
}
