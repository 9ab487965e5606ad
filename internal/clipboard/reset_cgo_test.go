//go:build ((linux || freebsd || openbsd || netbsd || dragonfly) && cgo)

package clipboard

import "sync"

func resetInit() {
	initOnce = sync.Once{}
	initErr = nil
}
