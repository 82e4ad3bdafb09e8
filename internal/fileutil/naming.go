package fileutil

import "strconv"

// NextAvailableName returns base+ext when exists reports it free. Otherwise it
// probes base_1+ext, base_2+ext, ... in order and returns the first free name.
// ext may be empty, in which case the counter goes at the end of the name.
func NextAvailableName(base, ext string, exists func(string) bool) string {
	candidate := base + ext
	if exists == nil || !exists(candidate) {
		return candidate
	}
	for n := 1; ; n++ {
		candidate = base + "_" + strconv.Itoa(n) + ext
		if !exists(candidate) {
			return candidate
		}
	}
}
