//go:build !containers_safety

package containers

// Safety selects what happens when a push meets a full container or a pop,
// Front or Back meets an empty one. Without the containers_safety build tag
// such calls are undefined behaviour: the Go runtime usually panics on the
// out-of-range slot, but a circular deque may silently overwrite live
// elements instead. Out-of-range indexing is never checked.
const Safety = false
