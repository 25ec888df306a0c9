package core

// CustomCategory is the sentinel entry that prompts for a free-text category
// name. It is always the last selectable entry.
const CustomCategory = "Custom..."

// BaseCategories is the fixed category list new installs start with.
// Expense categories are free text, so data may contain values outside it.
var BaseCategories = []string{
	"Groceries",
	"Vegetables",
	"Snacks",
	"Utilities",
	"Dining",
	"Dairy",
	"Other",
	CustomCategory,
}

// Units lists the selectable quantity units.
var Units = []string{"g", "kg", "L", "ml", "pcs", "unit"}

// SelectableCategories derives the category choices for a new entry: the base
// list, then any category observed in existing data that the base list does
// not contain (first-seen order), with the custom sentinel last.
func SelectableCategories(base []string, observed []string) []string {
	known := make(map[string]bool, len(base))
	out := make([]string, 0, len(base)+len(observed))
	for _, c := range base {
		if c == CustomCategory {
			continue
		}
		known[c] = true
		out = append(out, c)
	}
	for _, c := range observed {
		if c == "" || c == CustomCategory || known[c] {
			continue
		}
		known[c] = true
		out = append(out, c)
	}
	return append(out, CustomCategory)
}

// ObservedCategories collects the distinct category strings present in the
// expense snapshot, in first-seen order.
func ObservedCategories(expenses []Expense) []string {
	seen := make(map[string]bool, len(expenses))
	var out []string
	for _, e := range expenses {
		if e.Category == "" || seen[e.Category] {
			continue
		}
		seen[e.Category] = true
		out = append(out, e.Category)
	}
	return out
}
