// Package blockreply synthesizes DNS answers for blocked queries. The
// answer shape follows the configured blocking mode: NXDOMAIN, empty
// NODATA, the unspecified addresses, or the configured blocking addresses.
// A separate policy governs replies sent while the sinkhole is still
// starting up.
package blockreply
