package classify

// AssignGroupColors extends a color map so every name in groups has a
// color. Existing assignments are never changed; that keeps plots
// visually stable when a re-run introduces one new group.
//
// The palette is scanned as a circular buffer, skipping colors already
// in use by other groups. Once a full lap finds nothing unused, the
// scan position resets to zero and reuse is permitted.
//
// The returned map is a copy; the input map is left untouched.
func AssignGroupColors(colorMap map[string]string, palette []string, groups []string) map[string]string {
	out := make(map[string]string, len(colorMap)+len(groups))
	used := map[string]bool{}
	for name, color := range colorMap {
		out[name] = color
		used[color] = true
	}

	if len(palette) == 0 {
		return out
	}

	pos := 0
	reuse := false
	for _, name := range groups {
		if name == "" {
			continue
		}
		if _, ok := out[name]; ok {
			continue
		}

		if !reuse {
			scanned := 0
			for used[palette[pos%len(palette)]] {
				pos++
				scanned++
				if scanned >= len(palette) {
					reuse = true
					pos = 0
					break
				}
			}
		}

		color := palette[pos%len(palette)]
		out[name] = color
		used[color] = true
		pos++
	}

	return out
}
