//go:build containers_safety

package containers

// Safety is enabled by the containers_safety build tag: pushes on a full
// container and pops on an empty one become no-ops, and Front, Back and
// pops on an empty container return the zero value.
const Safety = true
