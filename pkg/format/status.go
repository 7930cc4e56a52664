package format

// Status is one entry of a status lookup table, e.g. a badge label and the
// style it renders with.
type Status struct {
	Key   int
	Value string
	Type  string
}

func findStatus(key int, list []Status) (Status, bool) {
	for _, s := range list {
		if s.Key == key {
			return s, true
		}
	}
	return Status{}, false
}

// StatusValue returns the Value of the first entry with key, or "".
func StatusValue(key int, list []Status) string {
	s, _ := findStatus(key, list)
	return s.Value
}

// StatusType returns the Type of the first entry with key, or "".
func StatusType(key int, list []Status) string {
	s, _ := findStatus(key, list)
	return s.Type
}
