package domain

// Category pairs an activity category name with its base point value.
type Category struct {
	Name       string
	BasePoints int
}

// CategoryTable is the ordered list of known categories. Declaration order
// is significant: it breaks ties when ranking categories by summed points.
type CategoryTable []Category

// DefaultCategoryTable returns the built-in category configuration.
func DefaultCategoryTable() CategoryTable {
	return CategoryTable{
		{Name: "Energy Saving", BasePoints: 20},
		{Name: "Transportation", BasePoints: 15},
		{Name: "Recycling", BasePoints: 10},
		{Name: "Water Conservation", BasePoints: 12},
		{Name: "Food Waste Reduction", BasePoints: 8},
		{Name: "Other", BasePoints: 5},
	}
}

// BasePoints looks up the base value for a category name. Unknown names
// score at the lowest tier in the table.
func (t CategoryTable) BasePoints(name string) int {
	for _, c := range t {
		if c.Name == name {
			return c.BasePoints
		}
	}
	lowest := 0
	for i, c := range t {
		if i == 0 || c.BasePoints < lowest {
			lowest = c.BasePoints
		}
	}
	return lowest
}

// index returns the declaration position of a category name, or the table
// length when the name is unknown so unknown categories rank last.
func (t CategoryTable) index(name string) int {
	for i, c := range t {
		if c.Name == name {
			return i
		}
	}
	return len(t)
}
