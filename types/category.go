package types

// Category is an enumerated prompt tag shared between feed configuration and
// re-summarization requests. The reserved CategoryNone sentinel gives
// selection UIs a concrete "no category" option; it is never sent over the
// wire (see WireValue).
type Category string

// CategoryNone marks "no category" in selection UIs, distinct from the empty
// string so an unset selector cannot be confused with a deliberate choice.
const CategoryNone Category = "_none"

// CategoryOption pairs a category value with its display label.
type CategoryOption struct {
	Value Category
	Label string
}

var categoryOptions = []CategoryOption{
	{CategoryNone, "No category"},
	{"tech", "Technology"},
	{"news", "News & Politics"},
	{"business", "Business"},
	{"science", "Science"},
	{"health", "Health & Wellness"},
	{"interview", "Interviews"},
}

// CategoryOptions returns the fixed category enumeration in display order.
func CategoryOptions() []CategoryOption {
	out := make([]CategoryOption, len(categoryOptions))
	copy(out, categoryOptions)
	return out
}

// ParseCategory validates a category value, accepting the sentinel and the
// empty string.
func ParseCategory(value string) (Category, bool) {
	if value == "" {
		return "", true
	}
	for _, opt := range categoryOptions {
		if opt.Value == Category(value) {
			return opt.Value, true
		}
	}
	return "", false
}

// Label returns the display label for a category.
func (c Category) Label() string {
	for _, opt := range categoryOptions {
		if opt.Value == c {
			return opt.Label
		}
	}
	if c == "" {
		return "No category"
	}
	return string(c)
}

// WireValue translates the category for transmission: the sentinel becomes
// the empty string, which callers omit from request bodies and query strings.
func (c Category) WireValue() string {
	if c == CategoryNone {
		return ""
	}
	return string(c)
}
